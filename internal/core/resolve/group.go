package resolve

import (
	"github.com/google/uuid"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
)

// GroupID identifies a candidate group within one resolution run. It never
// appears in materialized output.
type GroupID string

// CandidateGroup is the mutable unit of resolution: the accumulating state
// for one presumed real-world entity. It is created by the first mention of
// an unseen name, mutated in place by every mention routed to it, and either
// absorbed during escalation or flattened by Finalize.
type CandidateGroup struct {
	ID        GroupID
	Category  model.Category
	Canonical map[string]any
	// CanonicalName is the founding mention's name unless an arbiter verdict
	// replaces it.
	CanonicalName string
	// Variations holds every distinct surface name seen, in first-seen order.
	Variations []string
	// Provenance holds every distinct source unit that contributed a mention,
	// in first-seen order. It grows monotonically and is never pruned.
	Provenance []string
	Conflicts  map[string][]any
	Alternates map[string][]string

	variationSet  map[string]struct{}
	provenanceSet map[string]struct{}
}

func newCandidateGroup(m model.Mention) *CandidateGroup {
	g := &CandidateGroup{
		ID:            GroupID(uuid.New().String()),
		Category:      m.Category,
		Canonical:     map[string]any{},
		CanonicalName: m.Name,
		Conflicts:     map[string][]any{},
		Alternates:    map[string][]string{},
		variationSet:  map[string]struct{}{},
		provenanceSet: map[string]struct{}{},
	}
	return g
}

func (g *CandidateGroup) addVariation(name string) {
	if _, seen := g.variationSet[name]; seen {
		return
	}
	g.variationSet[name] = struct{}{}
	g.Variations = append(g.Variations, name)
}

func (g *CandidateGroup) addProvenance(sourceUnitID string) {
	if sourceUnitID == "" {
		return
	}
	if _, seen := g.provenanceSet[sourceUnitID]; seen {
		return
	}
	g.provenanceSet[sourceUnitID] = struct{}{}
	g.Provenance = append(g.Provenance, sourceUnitID)
}

// absorb folds another group of the same category into g: provenance,
// variations, conflicts and alternates all union. Canonical attributes are
// the caller's concern (the arbiter supplies the merged bag).
func (g *CandidateGroup) absorb(other *CandidateGroup) {
	for _, v := range other.Variations {
		g.addVariation(v)
	}
	for _, p := range other.Provenance {
		g.addProvenance(p)
	}
	for field, values := range other.Conflicts {
		for _, v := range values {
			g.addConflict(field, v)
		}
	}
	for field, values := range other.Alternates {
		for _, v := range values {
			g.addAlternate(field, v)
		}
	}
}

func (g *CandidateGroup) addConflict(field string, value any) {
	for _, existing := range g.Conflicts[field] {
		if scalarEqual(existing, value) {
			return
		}
	}
	g.Conflicts[field] = append(g.Conflicts[field], value)
}

func (g *CandidateGroup) addAlternate(field, value string) {
	for _, existing := range g.Alternates[field] {
		if existing == value {
			return
		}
	}
	g.Alternates[field] = append(g.Alternates[field], value)
}
