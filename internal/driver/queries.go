package driver

const (
	SaveCanonicalEntityQuery = `
		MERGE (n:Entity {category: $category, name: $name})
		SET n.uuid = $uuid,
			n.attributes = $attributes,
			n.name_variations = $name_variations,
			n.provenance = $provenance,
			n.conflicts = $conflicts,
			n.alternate_values = $alternate_values,
			n.updated_at = $updated_at
		RETURN n.uuid AS uuid
	`

	SaveCanonicalRelationshipQuery = `
		MATCH (source:Entity {category: $from_category, name: $from_name})
		MATCH (target:Entity {category: $to_category, name: $to_name})
		MERGE (source)-[e:RELATES_TO {type: $type}]->(target)
		SET e.uuid = $uuid,
			e.year = $year,
			e.role = $role,
			e.context = $context,
			e.source_unit = $source_unit,
			e.updated_at = $updated_at
		RETURN e.uuid AS uuid
	`

	GetEntitiesByCategoryQuery = `
		MATCH (n:Entity {category: $category})
		RETURN n.uuid AS uuid, n.name AS name, n.attributes AS attributes
		ORDER BY n.name
	`
)
