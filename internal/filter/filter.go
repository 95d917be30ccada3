// Package filter applies user-supplied predicates to catalog
// productions. Filtering here is authoritative; any server-side
// narrowing the catalog client performs is only an optimization.
package filter

import (
	"time"

	"github.com/sgilissen/DemoscenePackBuilder/pkg/demozoo"
)

type platformFilterKind int

const (
	platformAny platformFilterKind = iota
	platformByName
	platformByID
)

// PlatformFilter selects productions by target platform. The zero
// value matches every platform. Construct with ByName or ByID; the
// two variants are mutually exclusive by construction.
type PlatformFilter struct {
	kind platformFilterKind
	name string
	id   int
}

// ByName filters by platform name, compared case-insensitively with
// accents folded.
func ByName(name string) PlatformFilter {
	return PlatformFilter{kind: platformByName, name: normalizeName(name)}
}

// ByID filters by catalog platform ID.
func ByID(id int) PlatformFilter {
	return PlatformFilter{kind: platformByID, id: id}
}

// IsZero reports whether no platform filtering is requested.
func (f PlatformFilter) IsZero() bool {
	return f.kind == platformAny
}

func (f PlatformFilter) matches(platforms []demozoo.Platform) bool {
	switch f.kind {
	case platformByName:
		for _, p := range platforms {
			if normalizeName(p.Name) == f.name {
				return true
			}
		}
		return false
	case platformByID:
		for _, p := range platforms {
			if p.ID == f.id {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// Criteria is the conjunction of active filters. Nil fields are
// inactive.
type Criteria struct {
	Platform      PlatformFilter
	MinPlacing    *int       // keep placings numerically <= this (lower is better)
	ReleasedSince *time.Time // keep releases on or after this date
}

// Apply returns the productions satisfying every active filter, in
// input order. It is a pure function: no side effects, and the same
// input always yields the same output.
func Apply(c Criteria, prods []demozoo.Production) []demozoo.Production {
	var kept []demozoo.Production
	for _, p := range prods {
		if matches(c, p) {
			kept = append(kept, p)
		}
	}
	return kept
}

func matches(c Criteria, p demozoo.Production) bool {
	if !c.Platform.matches(p.Platforms) {
		return false
	}
	// Productions without a recorded placing or date are excluded once
	// the corresponding filter is active.
	if c.MinPlacing != nil {
		if p.CompetitionPlacing == nil || *p.CompetitionPlacing > *c.MinPlacing {
			return false
		}
	}
	if c.ReleasedSince != nil {
		released, ok := p.ReleasedAt()
		if !ok || released.Before(*c.ReleasedSince) {
			return false
		}
	}
	return true
}
