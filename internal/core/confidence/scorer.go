// Package confidence scores how much an extracted mention can be trusted,
// from language signals in its source text and the completeness of its
// attribute bag. The score is advisory metadata: resolution never branches
// on it.
package confidence

import (
	"regexp"
	"strings"
	"time"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
)

var highConfidencePatterns = compile([]string{
	`formed in \d{4}`,
	`released in \d{4}`,
	`founded in \d{4}`,
	`pioneered`,
	`invented`,
	`established`,
	`recorded at`,
	`produced by`,
	`member of`,
	`played (?:guitar|bass|drums|vocals) (?:for|in)`,
	`formed by`,
	`consists of`,
	`\d+\s*(?:bpm)`,
	`\d+\s*(?:hz|khz)`,
})

var mediumConfidencePatterns = compile([]string{
	`influenced by`,
	`similar to`,
	`emerged from`,
	`developed from`,
	`inspired by`,
	`associated with`,
	`known for`,
	`early \d{4}s`,
	`mid-?\d{4}s`,
	`late \d{4}s`,
	`around \d{4}`,
	`circa \d{4}`,
})

var lowConfidencePatterns = compile([]string{
	`possibly`,
	`might have`,
	`some say`,
	`allegedly`,
	`reportedly`,
	`believed to`,
	`thought to`,
	`may have`,
	`perhaps`,
	`unclear`,
	`disputed`,
})

// completenessWeights rewards mentions that carry the fields worth knowing
// for their category. Name is implicit and always counts.
var completenessWeights = map[model.Category]map[string]float64{
	model.CategoryBand: {
		"formed_year":    0.15,
		"origin_city":    0.10,
		"origin_country": 0.10,
		"description":    0.05,
	},
	model.CategoryPerson: {
		"instruments":      0.15,
		"associated_bands": 0.15,
		"description":      0.05,
	},
	model.CategoryAlbum: {
		"artist":       0.10,
		"release_year": 0.15,
		"label":        0.05,
		"studio":       0.05,
	},
	model.CategoryEquipment: {
		"type":           0.10,
		"specifications": 0.15,
	},
}

const nameWeight = 0.4

// Scorer is stateless and safe for concurrent use.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Score returns a confidence in [0,1] for one mention given the text it was
// extracted from.
func (s *Scorer) Score(m model.Mention, sourceText string) float64 {
	score := 0.5

	patternScore := scorePatterns(sourceText)
	score = 0.3*score + 0.3*patternScore

	completeness := scoreCompleteness(m)
	score = 0.7*score + 0.3*completeness

	score = applyCategoryRules(m, score)

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func scorePatterns(text string) float64 {
	lower := strings.ToLower(text)

	high := countMatches(highConfidencePatterns, lower)
	medium := countMatches(mediumConfidencePatterns, lower)
	low := countMatches(lowConfidencePatterns, lower)

	var base float64
	switch {
	case high > 0:
		base = 0.8
	case medium > 0:
		base = 0.5
	default:
		base = 0.3
	}

	if low > 0 {
		penalty := low
		if penalty > 3 {
			penalty = 3
		}
		base *= 1 - 0.1*float64(penalty)
	}
	if high > 1 {
		base += 0.1 * float64(high-1)
		if base > 1 {
			base = 1
		}
	}
	return base
}

func scoreCompleteness(m model.Mention) float64 {
	weights, ok := completenessWeights[m.Category]
	if !ok {
		return 0.5
	}

	total := nameWeight
	achieved := nameWeight
	for field, weight := range weights {
		total += weight
		value, present := m.Attributes[field]
		if !present || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				achieved += weight
			}
		case []string:
			if len(v) > 0 {
				achieved += weight
			}
		default:
			achieved += weight
		}
	}
	return achieved / total
}

func applyCategoryRules(m model.Mention, score float64) float64 {
	switch m.Category {
	case model.CategoryBand:
		if year, ok := m.Attributes["formed_year"].(int); ok {
			if year >= 1960 && year <= time.Now().Year() {
				score += 0.05
			} else {
				score -= 0.1
			}
		}
	case model.CategoryAlbum:
		_, hasArtist := m.Attributes["artist"]
		_, hasYear := m.Attributes["release_year"]
		if hasArtist && hasYear {
			score += 0.05
		}
	}
	return score
}

func countMatches(patterns []*regexp.Regexp, text string) int {
	n := 0
	for _, p := range patterns {
		if p.MatchString(text) {
			n++
		}
	}
	return n
}

func compile(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}
