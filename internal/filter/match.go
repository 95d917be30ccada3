package filter

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sgilissen/DemoscenePackBuilder/pkg/demozoo"
)

// suggestionThreshold is the minimum Jaro-Winkler similarity for a
// "did you mean" suggestion.
const suggestionThreshold = 0.8

// normalizeName lowercases a platform name and folds accents so that
// "Atari STé" and "atari ste" compare equal.
func normalizeName(s string) string {
	return strings.ToLower(removeAccents(strings.TrimSpace(s)))
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// MatchResult is the outcome of resolving a user-typed platform name.
type MatchResult struct {
	Platform   demozoo.Platform
	Exact      bool   // caseless exact match, not a substring match
	Suggestion string // nearest name when resolution failed
}

// MatchPlatform resolves query against the catalog's platform list.
// Resolution order: caseless exact match, then the shortest platform
// name containing the query (so "amiga" picks "Amiga AGA" over longer
// variants). When nothing matches, ok is false and Suggestion may
// carry the closest name by Jaro-Winkler similarity.
func MatchPlatform(query string, platforms []demozoo.Platform) (MatchResult, bool) {
	q := normalizeName(query)
	if q == "" {
		return MatchResult{}, false
	}

	var (
		best    MatchResult
		bestLen = -1
	)
	for _, p := range platforms {
		name := normalizeName(p.Name)
		if name == q {
			return MatchResult{Platform: p, Exact: true}, true
		}
		if strings.Contains(name, q) && (bestLen == -1 || len(name) < bestLen) {
			best = MatchResult{Platform: p}
			bestLen = len(name)
		}
	}
	if bestLen != -1 {
		return best, true
	}

	var (
		suggestion string
		bestScore  float32
	)
	for _, p := range platforms {
		score := edlib.JaroWinklerSimilarity(q, normalizeName(p.Name))
		if score > bestScore {
			bestScore = score
			suggestion = p.Name
		}
	}
	if bestScore >= suggestionThreshold {
		return MatchResult{Suggestion: suggestion}, false
	}
	return MatchResult{}, false
}
