package extraction

import (
	"context"
	"fmt"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/common"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/llm"
)

const defaultPrompt = `You are an expert at extracting structured information from text about metal music history.

Extract ALL entities and relationships from the following text. Be thorough and include:

1. BANDS: band names, formation years, cities of origin, and descriptions
2. PEOPLE: musician names, their instruments (guitar, bass, drums, vocals), and associated bands
3. ALBUMS: album titles, artists, release years/dates, labels, and studios
4. SONGS: song titles, artists, albums they appear on, and BPM if mentioned
5. SUBGENRES: genre names, era ranges, BPM ranges, tunings, vocal styles, and characteristics
6. LOCATIONS: cities, regions, countries, and descriptions of local scenes
7. EVENTS: event names, dates, types (festival/controversy/movement/other), and descriptions
8. EQUIPMENT: equipment names (pedals, guitars, amps), types, and specifications
9. STUDIOS: studio names, locations, and what they're famous for
10. LABELS: record label names and founding years
11. RELATIONSHIPS: all relationships between entities (who played in which band, which album was released by which band, where bands formed, etc.)

For dates, use YYYY-MM-DD format when the full date is known, otherwise just YYYY.
For missing information, use null rather than guessing.

Text to analyze:
%s

Respond with ONLY a valid JSON object of this shape:
{
  "bands": [{"name": "...", "formed_year": null, "origin_city": null, "origin_country": null, "description": "..."}],
  "people": [{"name": "...", "instruments": [], "associated_bands": [], "description": "..."}],
  "albums": [{"title": "...", "artist": "...", "release_year": null, "release_date": null, "label": null, "studio": null, "description": "..."}],
  "songs": [{"title": "...", "artist": "...", "album": null, "bpm": null}],
  "subgenres": [{"name": "...", "era_start": null, "era_end": null, "bpm_min": null, "bpm_max": null, "guitar_tuning": null, "vocal_style": null, "key_characteristics": "...", "parent_influences": []}],
  "locations": [{"city": null, "region": null, "country": "...", "scene_description": "..."}],
  "events": [{"name": "...", "date": null, "type": "festival", "description": "..."}],
  "equipment": [{"name": "...", "type": "...", "specifications": null}],
  "studios": [{"name": "...", "location": null, "famous_for": "..."}],
  "labels": [{"name": "...", "founded_year": null}],
  "relationships": [{"type": "MEMBER_OF", "from_entity_type": "person", "from_entity_name": "...", "to_entity_type": "band", "to_entity_name": "...", "year": null, "role": null, "context": "..."}]
}`

// Extractor turns one chunk of source text into a structured ExtractionResult
// via the LLM. Extraction failures are local to the chunk: the caller logs
// and moves on.
type Extractor struct {
	LLM    llm.LLMClient
	Prompt string
}

func NewExtractor(llmClient llm.LLMClient, prompt string) *Extractor {
	if prompt == "" {
		prompt = defaultPrompt
	}
	return &Extractor{
		LLM:    llmClient,
		Prompt: prompt,
	}
}

// Extract runs the extraction prompt for one chunk and parses the response.
func (e *Extractor) Extract(ctx context.Context, chunk model.Chunk) (*model.ExtractionResult, error) {
	prompt := fmt.Sprintf(e.Prompt, chunk.Text)

	response, err := e.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate extraction for chunk %s: %w", chunk.ID, err)
	}

	result, err := common.ParseJSON[model.ExtractionResult](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extraction for chunk %s: %w", chunk.ID, err)
	}

	return &result, nil
}
