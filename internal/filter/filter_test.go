package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgilissen/DemoscenePackBuilder/pkg/demozoo"
)

var (
	amigaAGA = demozoo.Platform{ID: 4, Name: "Amiga AGA"}
	msdos    = demozoo.Platform{ID: 7, Name: "MS-Dos"}
)

func intPtr(n int) *int { return &n }

func datePtr(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func prod(id int, title string, platform demozoo.Platform, placing *int, released string) demozoo.Production {
	return demozoo.Production{
		ID:                 id,
		Title:              title,
		Platforms:          []demozoo.Platform{platform},
		CompetitionPlacing: placing,
		ReleaseDate:        released,
	}
}

func titles(prods []demozoo.Production) []string {
	var out []string
	for _, p := range prods {
		out = append(out, p.Title)
	}
	return out
}

func TestApply_NoCriteria(t *testing.T) {
	prods := []demozoo.Production{
		prod(1, "One", amigaAGA, nil, ""),
		prod(2, "Two", msdos, nil, ""),
	}

	got := Apply(Criteria{}, prods)
	assert.Equal(t, prods, got, "no active filters keeps everything")
}

func TestApply_PlatformByName(t *testing.T) {
	prods := []demozoo.Production{
		prod(1, "One", amigaAGA, nil, ""),
		prod(2, "Two", msdos, nil, ""),
		prod(3, "Three", amigaAGA, nil, ""),
	}

	got := Apply(Criteria{Platform: ByName("amiga aga")}, prods)
	assert.Equal(t, []string{"One", "Three"}, titles(got), "name match is case-insensitive")
}

func TestApply_PlatformByName_FoldsAccents(t *testing.T) {
	ste := demozoo.Platform{ID: 26, Name: "Atari STé"}
	prods := []demozoo.Production{prod(1, "One", ste, nil, "")}

	got := Apply(Criteria{Platform: ByName("atari ste")}, prods)
	assert.Len(t, got, 1)
}

func TestApply_PlatformByID(t *testing.T) {
	prods := []demozoo.Production{
		prod(1, "One", amigaAGA, nil, ""),
		prod(2, "Two", msdos, nil, ""),
	}

	got := Apply(Criteria{Platform: ByID(7)}, prods)
	assert.Equal(t, []string{"Two"}, titles(got))
}

func TestApply_Placing(t *testing.T) {
	prods := []demozoo.Production{
		prod(1, "Winner", amigaAGA, intPtr(1), ""),
		prod(2, "Third", amigaAGA, intPtr(3), ""),
		prod(3, "Fourth", amigaAGA, intPtr(4), ""),
		prod(4, "Unranked", amigaAGA, nil, ""),
	}

	got := Apply(Criteria{MinPlacing: intPtr(3)}, prods)
	assert.Equal(t, []string{"Winner", "Third"}, titles(got),
		"placing <= 3 kept; unranked excluded once the filter is active")
}

func TestApply_ReleasedSince(t *testing.T) {
	prods := []demozoo.Production{
		prod(1, "Old", amigaAGA, nil, "1994-04-09"),
		prod(2, "Boundary", amigaAGA, nil, "2010-01-01"),
		prod(3, "New", amigaAGA, nil, "2013-07-30"),
		prod(4, "YearOnly", amigaAGA, nil, "2012"),
		prod(5, "Undated", amigaAGA, nil, ""),
	}

	got := Apply(Criteria{ReleasedSince: datePtr(2010, 1, 1)}, prods)
	assert.Equal(t, []string{"Boundary", "New", "YearOnly"}, titles(got),
		"boundary date kept, partial dates resolved, undated excluded")
}

// fixture is the five-production end-to-end set: exactly two satisfy
// {platform "Amiga AGA", placing <= 3, released >= 2010-01-01}.
func fixture() []demozoo.Production {
	return []demozoo.Production{
		prod(101, "Rink a Dink Redux", amigaAGA, intPtr(1), "2013-04-01"),
		prod(102, "Second Reality", msdos, intPtr(1), "1993-07-31"),
		prod(103, "Ephemera", amigaAGA, intPtr(5), "2012-08-05"),
		prod(104, "Elysian", amigaAGA, intPtr(1), "2014-04-21"),
		prod(105, "Nexus 7", amigaAGA, nil, "2010-04-04"),
	}
}

func endToEndCriteria() Criteria {
	return Criteria{
		Platform:      ByName("Amiga AGA"),
		MinPlacing:    intPtr(3),
		ReleasedSince: datePtr(2010, 1, 1),
	}
}

func TestApply_Conjunction(t *testing.T) {
	got := Apply(endToEndCriteria(), fixture())
	assert.Equal(t, []string{"Rink a Dink Redux", "Elysian"}, titles(got),
		"all active filters AND together, input order preserved")
}

func TestApply_Idempotent(t *testing.T) {
	criteria := endToEndCriteria()
	prods := fixture()

	first := Apply(criteria, prods)
	second := Apply(criteria, prods)
	assert.Equal(t, first, second)
}

func TestApply_Subsequence(t *testing.T) {
	criteria := endToEndCriteria()
	prods := fixture()
	got := Apply(criteria, prods)

	// Every kept production satisfies all predicates and appears in the
	// input; relative order is preserved.
	lastIdx := -1
	for _, kept := range got {
		idx := -1
		for i, p := range prods {
			if p.ID == kept.ID {
				idx = i
				break
			}
		}
		require.Greater(t, idx, lastIdx, "order preserved")
		lastIdx = idx

		require.NotNil(t, kept.CompetitionPlacing)
		assert.LessOrEqual(t, *kept.CompetitionPlacing, 3)
		released, ok := kept.ReleasedAt()
		require.True(t, ok)
		assert.False(t, released.Before(*criteria.ReleasedSince))
	}
}
