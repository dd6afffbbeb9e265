package model

// CanonicalEntity is the resolved, deduplicated representation of one
// real-world entity, flattened for downstream consumers. It carries no
// resolver-internal state.
type CanonicalEntity struct {
	Category        Category            `json:"category"`
	Name            string              `json:"name"`
	Attributes      map[string]any      `json:"attributes,omitempty"`
	NameVariations  []string            `json:"name_variations"`
	Provenance      []string            `json:"provenance"`
	Conflicts       map[string][]any    `json:"conflicts,omitempty"`
	AlternateValues map[string][]string `json:"alternate_values,omitempty"`
}

// ResolvedGraph is the materialized output of one resolution run: canonical
// entities keyed by category plus the flat relationship list. Entity slices
// preserve group insertion order.
type ResolvedGraph struct {
	Entities      map[Category][]CanonicalEntity `json:"entities"`
	Relationships []CanonicalRelationship        `json:"relationships"`
	Stats         ResolutionStats                `json:"stats"`
}

// ResolutionStats summarizes one run.
type ResolutionStats struct {
	Entities               int `json:"entities"`
	Relationships          int `json:"relationships"`
	MentionsAccepted       int `json:"mentions_accepted"`
	MentionsSkipped        int `json:"mentions_skipped"`
	RelationshipsSkipped   int `json:"relationships_skipped"`
	DuplicateRelationships int `json:"duplicate_relationships"`
	GroupsAbsorbed         int `json:"groups_absorbed"`
}
