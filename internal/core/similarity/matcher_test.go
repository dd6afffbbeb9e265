package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityReflexiveAndSymmetric(t *testing.T) {
	m := NewMatcher(0.85)

	pairs := [][2]string{
		{"Black Sabbath", "Black Sabath"},
		{"Iron Maiden", "iron maiden"},
		{"Slayer", "Bathory"},
		{"", "Venom"},
	}

	for _, pair := range pairs {
		assert.Equal(t, m.Similarity(pair[0], pair[1]), m.Similarity(pair[1], pair[0]),
			"similarity(%q,%q) must be symmetric", pair[0], pair[1])
	}

	assert.Equal(t, 1.0, m.Similarity("Black Sabbath", "Black Sabbath"))
	assert.Equal(t, 1.0, m.Similarity("", ""))
}

func TestSimilarityNormalizes(t *testing.T) {
	m := NewMatcher(0.85)

	// Case and surrounding whitespace never count against a match.
	assert.Equal(t, 1.0, m.Similarity("BLACK SABBATH", "black sabbath"))
	assert.Equal(t, 1.0, m.Similarity("  Venom  ", "venom"))
}

func TestSimilarityTypoTolerance(t *testing.T) {
	m := NewMatcher(0.85)

	// One dropped letter in a 13-char name: 1 - 1/13.
	assert.InDelta(t, 0.923, m.Similarity("Black Sabbath", "Black Sabath"), 0.001)
	assert.True(t, m.AreSimilar("Black Sabbath", "Black Sabath"))

	// Unrelated names stay far below the threshold.
	assert.False(t, m.AreSimilar("Slayer", "Bathory"))
}

func TestSimilarityEmptyOperand(t *testing.T) {
	m := NewMatcher(0.85)

	assert.Equal(t, 0.0, m.Similarity("Venom", ""))
	assert.Equal(t, 0.0, m.Similarity("", "Venom"))
}

func TestFindBestMatch(t *testing.T) {
	m := NewMatcher(0.80)

	best, score, ok := m.FindBestMatch("Black Sabbath", []string{"Black Sabath", "Black Sabbath", "Blue Cheer"})
	assert.True(t, ok)
	assert.Equal(t, "Black Sabbath", best)
	assert.Equal(t, 1.0, score)
}

func TestFindBestMatchNoCandidateQualifies(t *testing.T) {
	m := NewMatcher(0.85)

	_, _, ok := m.FindBestMatch("Burzum", []string{"Candlemass", "Trouble"})
	assert.False(t, ok)
}

func TestFindBestMatchTiesKeepFirst(t *testing.T) {
	m := NewMatcher(0.50)

	// Both candidates normalize to an exact match; the earlier one wins.
	best, score, ok := m.FindBestMatch("venom", []string{"VENOM", " Venom "})
	assert.True(t, ok)
	assert.Equal(t, "VENOM", best)
	assert.Equal(t, 1.0, score)
}
