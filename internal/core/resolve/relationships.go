package resolve

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/similarity"
)

// AddRelationship inserts a relationship mention unless its canonical key was
// seen before. Relationships dedupe by exact key rather than fuzzy matching:
// they tend to recur verbatim, and the first occurrence wins with its context
// intact. Returns whether the mention was newly inserted.
func (s *Store) AddRelationship(rm model.RelationshipMention) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(rm.Type) == "" ||
		strings.TrimSpace(rm.FromName) == "" ||
		strings.TrimSpace(rm.ToName) == "" {
		s.skippedRels++
		s.log.Debug("skipping malformed relationship mention",
			zap.String("type", rm.Type),
			zap.String("source_unit", rm.SourceUnitID))
		return false
	}

	key := relationshipKey(rm.Type, rm.FromName, rm.ToName)
	if _, seen := s.relSeen[key]; seen {
		s.duplicateRels++
		return false
	}
	s.relSeen[key] = struct{}{}

	s.relationships = append(s.relationships, model.CanonicalRelationship{
		Type:         rm.Type,
		FromCategory: rm.FromCategory,
		FromName:     rm.FromName,
		ToCategory:   rm.ToCategory,
		ToName:       rm.ToName,
		Year:         rm.Year,
		Role:         rm.Role,
		Context:      rm.Context,
		SourceUnitID: rm.SourceUnitID,
	})
	return true
}

func relationshipKey(relType, from, to string) string {
	return strings.Join([]string{
		relType,
		similarity.Normalize(from),
		similarity.Normalize(to),
	}, "|")
}
