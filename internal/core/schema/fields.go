// Package schema defines the closed, per-category attribute schema and the
// merge policy attached to each field. The merge engine consults this table
// instead of inspecting runtime types, so the set of merge behaviors is
// exhaustively enumerable.
package schema

import "github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"

// FieldKind selects the merge policy for one attribute field.
type FieldKind int

const (
	// Scalar keeps the first-seen value; a later differing value is recorded
	// as a conflict, never adopted.
	Scalar FieldKind = iota
	// List merges by set union, preserving first-seen order.
	List
	// FreeText concatenates substantially different values into the adopted
	// value (description-like prose).
	FreeText
	// FreeTextAlternates keeps the adopted value untouched and tracks
	// substantially different values as alternates (short strings where
	// disagreement is expected and both versions are worth keeping).
	FreeTextAlternates
)

var fields = map[model.Category]map[string]FieldKind{
	model.CategoryBand: {
		"formed_year":    Scalar,
		"origin_city":    FreeTextAlternates,
		"origin_country": FreeTextAlternates,
		"description":    FreeText,
	},
	model.CategoryPerson: {
		"instruments":      List,
		"associated_bands": List,
		"description":      FreeText,
	},
	model.CategoryAlbum: {
		"artist":       FreeTextAlternates,
		"release_year": Scalar,
		"release_date": Scalar,
		"label":        FreeTextAlternates,
		"studio":       FreeTextAlternates,
		"description":  FreeText,
	},
	model.CategorySong: {
		"artist": FreeTextAlternates,
		"album":  FreeTextAlternates,
		"bpm":    Scalar,
	},
	model.CategorySubgenre: {
		"era_start":           Scalar,
		"era_end":             Scalar,
		"bpm_min":             Scalar,
		"bpm_max":             Scalar,
		"guitar_tuning":       FreeTextAlternates,
		"vocal_style":         FreeTextAlternates,
		"key_characteristics": FreeText,
		"parent_influences":   List,
	},
	model.CategoryLocation: {
		"city":              FreeTextAlternates,
		"region":            FreeTextAlternates,
		"country":           FreeTextAlternates,
		"scene_description": FreeText,
	},
	model.CategoryEvent: {
		"date":        Scalar,
		"type":        Scalar,
		"description": FreeText,
	},
	model.CategoryEquipment: {
		"type":           Scalar,
		"specifications": FreeText,
	},
	model.CategoryStudio: {
		"location":   FreeTextAlternates,
		"famous_for": FreeText,
	},
	model.CategoryLabel: {
		"founded_year": Scalar,
	},
}

// KindOf returns the merge policy for a field of the given category. Unknown
// fields fall back to Scalar, the most conservative policy: the first value
// sticks and disagreements surface as conflicts.
func KindOf(cat model.Category, field string) FieldKind {
	if m, ok := fields[cat]; ok {
		if k, ok := m[field]; ok {
			return k
		}
	}
	return Scalar
}

// Fields returns the known field names for a category.
func Fields(cat model.Category) []string {
	m := fields[cat]
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}
