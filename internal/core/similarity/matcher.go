// Package similarity implements the lexical matching used on the resolver's
// hot path. It is pure string work: no phonetics, no embeddings, no I/O.
package similarity

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Matcher compares name strings against a fixed threshold.
type Matcher struct {
	Threshold float64
}

func NewMatcher(threshold float64) *Matcher {
	return &Matcher{Threshold: threshold}
}

// Normalize lowercases and trims a name before comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Similarity returns a score in [0,1]. It is symmetric, and 1.0 exactly when
// the normalized strings are equal.
func (m *Matcher) Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}

	dist := levenshtein.ComputeDistance(na, nb)
	longest := len([]rune(na))
	if l := len([]rune(nb)); l > longest {
		longest = l
	}
	return 1.0 - float64(dist)/float64(longest)
}

// AreSimilar reports whether two names score at or above the threshold.
func (m *Matcher) AreSimilar(a, b string) bool {
	return m.Similarity(a, b) >= m.Threshold
}

// FindBestMatch returns the highest-scoring candidate at or above the
// threshold. Ties keep the earlier candidate. ok is false when nothing
// qualifies.
func (m *Matcher) FindBestMatch(name string, candidates []string) (best string, score float64, ok bool) {
	for _, candidate := range candidates {
		s := m.Similarity(name, candidate)
		if s > score && s >= m.Threshold {
			best = candidate
			score = s
			ok = true
		}
	}
	return best, score, ok
}
