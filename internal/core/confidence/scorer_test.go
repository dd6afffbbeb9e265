package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
)

func completeBand() model.Mention {
	return model.Mention{
		Category: model.CategoryBand,
		Name:     "Black Sabbath",
		Attributes: map[string]any{
			"formed_year":    1968,
			"origin_city":    "Birmingham",
			"origin_country": "England",
			"description":    "Pioneers of heavy metal.",
		},
	}
}

func TestScoreCompleteBandWithStrongSignal(t *testing.T) {
	score := NewScorer().Score(completeBand(),
		"Black Sabbath formed in 1968 in Birmingham, England.")
	assert.InDelta(t, 0.623, score, 0.001)
}

func TestScoreStaysInRange(t *testing.T) {
	s := NewScorer()

	texts := []string{
		"",
		"Some say the band possibly might have allegedly reportedly existed, though it is unclear and disputed.",
		"Formed in 1970, released in 1972, recorded at Rockfield, produced by Rodger Bain, member of the NWOBHM movement.",
	}
	for _, text := range texts {
		score := s.Score(completeBand(), text)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestStrongSignalOutscoresHedgedText(t *testing.T) {
	s := NewScorer()
	m := completeBand()

	strong := s.Score(m, "Black Sabbath formed in 1968 and pioneered heavy metal.")
	hedged := s.Score(m, "Black Sabbath possibly emerged around 1968.")
	bare := s.Score(m, "Black Sabbath played some shows.")

	assert.Greater(t, strong, hedged)
	assert.Greater(t, hedged, bare)
}

func TestCompletenessRaisesScore(t *testing.T) {
	s := NewScorer()
	text := "The band was known for its heavy sound."

	full := s.Score(completeBand(), text)
	sparse := s.Score(model.Mention{
		Category:   model.CategoryBand,
		Name:       "Black Sabbath",
		Attributes: map[string]any{},
	}, text)

	assert.Greater(t, full, sparse)
}

func TestEmptyAttributeValuesDoNotCount(t *testing.T) {
	s := NewScorer()
	text := "nothing notable here"

	padded := s.Score(model.Mention{
		Category: model.CategoryPerson,
		Name:     "Tony Iommi",
		Attributes: map[string]any{
			"instruments":      []string{},
			"associated_bands": " ",
			"description":      "",
		},
	}, text)
	empty := s.Score(model.Mention{
		Category:   model.CategoryPerson,
		Name:       "Tony Iommi",
		Attributes: map[string]any{},
	}, text)

	assert.Equal(t, empty, padded)
}

func TestImplausibleFormationYearPenalized(t *testing.T) {
	s := NewScorer()
	text := "formed in 1492 according to legend"

	plausible := completeBand()
	implausible := completeBand()
	implausible.Attributes["formed_year"] = 1492

	assert.Greater(t, s.Score(plausible, text), s.Score(implausible, text))
}

func TestAlbumWithArtistAndYearRewarded(t *testing.T) {
	s := NewScorer()
	text := "Paranoid was released in 1970."

	full := model.Mention{
		Category: model.CategoryAlbum,
		Name:     "Paranoid",
		Attributes: map[string]any{
			"artist":       "Black Sabbath",
			"release_year": 1970,
		},
	}
	partial := model.Mention{
		Category:   model.CategoryAlbum,
		Name:       "Paranoid",
		Attributes: map[string]any{"artist": "Black Sabbath"},
	}

	assert.Greater(t, s.Score(full, text), s.Score(partial, text))
}

func TestUnknownCategoryGetsNeutralCompleteness(t *testing.T) {
	s := NewScorer()
	m := model.Mention{Category: model.CategorySubgenre, Name: "doom metal"}

	score := s.Score(m, "doom metal emerged from the early Sabbath sound")
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 1.0)
}
