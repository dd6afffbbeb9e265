package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Scalar, KindOf(model.CategoryBand, "formed_year"))
	assert.Equal(t, FreeTextAlternates, KindOf(model.CategoryBand, "origin_city"))
	assert.Equal(t, FreeText, KindOf(model.CategoryBand, "description"))
	assert.Equal(t, List, KindOf(model.CategoryPerson, "instruments"))
	assert.Equal(t, Scalar, KindOf(model.CategorySong, "bpm"))
	assert.Equal(t, List, KindOf(model.CategorySubgenre, "parent_influences"))
}

func TestKindOfUnknownFieldDefaultsToScalar(t *testing.T) {
	assert.Equal(t, Scalar, KindOf(model.CategoryBand, "no_such_field"))
	assert.Equal(t, Scalar, KindOf(model.Category("no_such_category"), "anything"))
}

func TestEveryCategoryHasFields(t *testing.T) {
	for _, cat := range model.Categories {
		assert.NotEmpty(t, Fields(cat), "category %s has no schema", cat)
	}
}
