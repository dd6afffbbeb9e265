package resolve

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/common"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/llm"
)

const defaultArbiterPrompt = `Are these the same %s?
Analyze the name variations and attributes to determine if they refer to the same real-world entity.

Entities to compare:
%s

Respond with ONLY a JSON object:
{
  "same_entity": true or false,
  "canonical_name": "the correct name if same, else empty",
  "merged_attributes": {merged attribute object} or null
}`

// LLMArbiter answers escalation requests with a structured comparison prompt.
type LLMArbiter struct {
	LLM    llm.LLMClient
	Prompt string
}

func NewLLMArbiter(client llm.LLMClient, prompt string) *LLMArbiter {
	if prompt == "" {
		prompt = defaultArbiterPrompt
	}
	return &LLMArbiter{LLM: client, Prompt: prompt}
}

// clusterEntry is the per-group payload serialized into the comparison
// request: everything the arbiter needs, nothing engine-internal.
type clusterEntry struct {
	Variations []string       `json:"variations"`
	Attributes map[string]any `json:"attributes"`
	Provenance []string       `json:"provenance"`
}

func (a *LLMArbiter) Compare(ctx context.Context, cluster []*CandidateGroup) (model.ArbiterVerdict, error) {
	if len(cluster) < 2 {
		return model.ArbiterVerdict{}, nil
	}

	entries := make([]clusterEntry, len(cluster))
	for i, g := range cluster {
		entries[i] = clusterEntry{
			Variations: g.Variations,
			Attributes: g.Canonical,
			Provenance: g.Provenance,
		}
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return model.ArbiterVerdict{}, fmt.Errorf("failed to serialize cluster: %w", err)
	}

	prompt := fmt.Sprintf(a.Prompt, cluster[0].Category, string(payload))
	response, err := a.LLM.Generate(ctx, prompt)
	if err != nil {
		return model.ArbiterVerdict{}, fmt.Errorf("arbiter generation failed: %w", err)
	}

	verdict, err := common.ParseJSON[model.ArbiterVerdict](response)
	if err != nil {
		return model.ArbiterVerdict{}, fmt.Errorf("failed to parse arbiter verdict: %w", err)
	}
	return verdict, nil
}
