package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
)

// PersistGraph writes one materialized resolution result into the graph
// store: a node per canonical entity and a RELATES_TO edge per canonical
// relationship. Structured bags go in as JSON strings; Memgraph property
// values stay flat.
func PersistGraph(ctx context.Context, d GraphDriver, graph *model.ResolvedGraph) error {
	now := time.Now().UTC().Format(time.RFC3339)

	for _, cat := range model.Categories {
		for _, entity := range graph.Entities[cat] {
			attrs, err := json.Marshal(entity.Attributes)
			if err != nil {
				return fmt.Errorf("failed to serialize attributes for %s: %w", entity.Name, err)
			}
			conflicts, err := json.Marshal(entity.Conflicts)
			if err != nil {
				return fmt.Errorf("failed to serialize conflicts for %s: %w", entity.Name, err)
			}
			alternates, err := json.Marshal(entity.AlternateValues)
			if err != nil {
				return fmt.Errorf("failed to serialize alternates for %s: %w", entity.Name, err)
			}

			params := map[string]interface{}{
				"uuid":             uuid.New().String(),
				"category":         string(entity.Category),
				"name":             entity.Name,
				"attributes":       string(attrs),
				"name_variations":  entity.NameVariations,
				"provenance":       entity.Provenance,
				"conflicts":        string(conflicts),
				"alternate_values": string(alternates),
				"updated_at":       now,
			}
			if _, err := d.ExecuteQuery(ctx, SaveCanonicalEntityQuery, params); err != nil {
				return fmt.Errorf("failed to persist entity %s/%s: %w", entity.Category, entity.Name, err)
			}
		}
	}

	for _, rel := range graph.Relationships {
		params := map[string]interface{}{
			"uuid":          uuid.New().String(),
			"type":          rel.Type,
			"from_category": rel.FromCategory,
			"from_name":     rel.FromName,
			"to_category":   rel.ToCategory,
			"to_name":       rel.ToName,
			"year":          nil,
			"role":          nil,
			"context":       rel.Context,
			"source_unit":   rel.SourceUnitID,
			"updated_at":    now,
		}
		if rel.Year != nil {
			params["year"] = *rel.Year
		}
		if rel.Role != nil {
			params["role"] = *rel.Role
		}
		if _, err := d.ExecuteQuery(ctx, SaveCanonicalRelationshipQuery, params); err != nil {
			return fmt.Errorf("failed to persist relationship %s %s->%s: %w", rel.Type, rel.FromName, rel.ToName, err)
		}
	}

	return nil
}
