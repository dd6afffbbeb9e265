package model

// RelationshipRecord is one extracted relationship between two named
// entities, as reported for a single chunk.
type RelationshipRecord struct {
	Type         string  `json:"type"`
	FromCategory string  `json:"from_entity_type"`
	FromName     string  `json:"from_entity_name"`
	ToCategory   string  `json:"to_entity_type"`
	ToName       string  `json:"to_entity_name"`
	Year         *int    `json:"year"`
	Role         *string `json:"role"`
	Context      string  `json:"context"`
}

// RelationshipMention scopes a RelationshipRecord to the chunk it came from.
type RelationshipMention struct {
	RelationshipRecord
	SourceUnitID string `json:"source_unit_id"`
}

// CanonicalRelationship is the deduplicated edge kept in the final output.
// Deduplication is exact-key: the first mention of a given
// (type, from, to) triple wins verbatim; later duplicates are dropped.
type CanonicalRelationship struct {
	Type         string  `json:"type"`
	FromCategory string  `json:"from_entity_type"`
	FromName     string  `json:"from_entity_name"`
	ToCategory   string  `json:"to_entity_type"`
	ToName       string  `json:"to_entity_name"`
	Year         *int    `json:"year,omitempty"`
	Role         *string `json:"role,omitempty"`
	Context      string  `json:"context,omitempty"`
	SourceUnitID string  `json:"source_unit_id"`
}
