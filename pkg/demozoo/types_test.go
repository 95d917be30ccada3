package demozoo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReleasedAt(t *testing.T) {
	tests := []struct {
		name string
		date string
		want time.Time
		ok   bool
	}{
		{"full date", "2010-05-23", time.Date(2010, 5, 23, 0, 0, 0, 0, time.UTC), true},
		{"year and month", "1994-04", time.Date(1994, 4, 1, 0, 0, 0, 0, time.UTC), true},
		{"year only", "1991", time.Date(1991, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "sometime in the nineties", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Production{ReleaseDate: tt.date}.ReleasedAt()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "ReleasedAt(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestAuthor(t *testing.T) {
	assert.Equal(t, "", Production{}.Author())

	p := Production{AuthorNicks: []Nick{{Name: "The Black Lotus"}, {Name: "CNCD"}}}
	assert.Equal(t, "The Black Lotus", p.Author())
}
