package resolve

import (
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
)

// Finalize flattens every surviving group into the output shape consumed by
// persistence and serving layers. Ordering is category (fixed order) then
// group insertion order, so repeated runs over the same stream produce
// identical snapshots. The store remains valid afterwards; partial progress
// is always a consistent snapshot.
func (s *Store) Finalize() *model.ResolvedGraph {
	s.mu.Lock()
	defer s.mu.Unlock()

	graph := &model.ResolvedGraph{
		Entities:      map[model.Category][]model.CanonicalEntity{},
		Relationships: append([]model.CanonicalRelationship(nil), s.relationships...),
	}

	total := 0
	for _, cat := range model.Categories {
		for _, g := range s.groups[cat] {
			graph.Entities[cat] = append(graph.Entities[cat], flatten(g))
			total++
		}
	}

	graph.Stats = model.ResolutionStats{
		Entities:               total,
		Relationships:          len(graph.Relationships),
		MentionsAccepted:       s.accepted,
		MentionsSkipped:        s.skipped,
		RelationshipsSkipped:   s.skippedRels,
		DuplicateRelationships: s.duplicateRels,
		GroupsAbsorbed:         s.absorbed,
	}
	return graph
}

func flatten(g *CandidateGroup) model.CanonicalEntity {
	entity := model.CanonicalEntity{
		Category:       g.Category,
		Name:           g.CanonicalName,
		NameVariations: append([]string(nil), g.Variations...),
		Provenance:     append([]string(nil), g.Provenance...),
	}
	if len(g.Canonical) > 0 {
		attrs := make(map[string]any, len(g.Canonical))
		for k, v := range g.Canonical {
			attrs[k] = v
		}
		entity.Attributes = attrs
	}
	if len(g.Conflicts) > 0 {
		conflicts := make(map[string][]any, len(g.Conflicts))
		for k, v := range g.Conflicts {
			conflicts[k] = append([]any(nil), v...)
		}
		entity.Conflicts = conflicts
	}
	if len(g.Alternates) > 0 {
		alternates := make(map[string][]string, len(g.Alternates))
		for k, v := range g.Alternates {
			alternates[k] = append([]string(nil), v...)
		}
		entity.AlternateValues = alternates
	}
	return entity
}
