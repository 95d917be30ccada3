package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgilissen/DemoscenePackBuilder/pkg/demozoo"
)

func platformList() []demozoo.Platform {
	return []demozoo.Platform{
		{ID: 1, Name: "Commodore 64"},
		{ID: 2, Name: "ZX Spectrum"},
		{ID: 4, Name: "Amiga AGA"},
		{ID: 5, Name: "Amiga OCS/ECS"},
		{ID: 11, Name: "Amiga PPC/RTG"},
		{ID: 26, Name: "Atari STé"},
	}
}

func TestMatchPlatform_Exact(t *testing.T) {
	result, ok := MatchPlatform("amiga aga", platformList())

	require.True(t, ok)
	assert.True(t, result.Exact)
	assert.Equal(t, 4, result.Platform.ID)
}

func TestMatchPlatform_FoldsAccents(t *testing.T) {
	result, ok := MatchPlatform("atari ste", platformList())

	require.True(t, ok)
	assert.True(t, result.Exact)
	assert.Equal(t, "Atari STé", result.Platform.Name)
}

func TestMatchPlatform_ShortestContaining(t *testing.T) {
	// Three platform names contain "amiga"; the shortest wins.
	result, ok := MatchPlatform("amiga", platformList())

	require.True(t, ok)
	assert.False(t, result.Exact)
	assert.Equal(t, "Amiga AGA", result.Platform.Name)
}

func TestMatchPlatform_Suggestion(t *testing.T) {
	result, ok := MatchPlatform("zx spektrum", platformList())

	require.False(t, ok)
	assert.Equal(t, "ZX Spectrum", result.Suggestion)
}

func TestMatchPlatform_NoMatch(t *testing.T) {
	result, ok := MatchPlatform("qqqq", platformList())

	require.False(t, ok)
	assert.Empty(t, result.Suggestion)
}

func TestMatchPlatform_EmptyQuery(t *testing.T) {
	_, ok := MatchPlatform("   ", platformList())
	assert.False(t, ok)
}
