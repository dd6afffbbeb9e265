package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
)

func TestFinalizeSnapshot(t *testing.T) {
	s := testStore(t, Config{})

	m := bandMention("Black Sabbath", "chunk-1")
	m.Attributes = map[string]any{"formed_year": 1968, "genres": []string{"heavy metal"}}
	s.AddMention(m)
	s.AddMention(bandMention("Black Sabath", "chunk-2"))
	s.AddMention(model.Mention{
		Category:     model.CategoryPerson,
		Name:         "Ozzy Osbourne",
		SourceUnitID: "chunk-1",
	})
	s.AddRelationship(relMention("MEMBER_OF", "Ozzy Osbourne", "Black Sabbath", "", "chunk-1"))

	graph := s.Finalize()

	require.Len(t, graph.Entities[model.CategoryBand], 1)
	require.Len(t, graph.Entities[model.CategoryPerson], 1)
	require.Len(t, graph.Relationships, 1)

	band := graph.Entities[model.CategoryBand][0]
	assert.Equal(t, "Black Sabbath", band.Name)
	assert.ElementsMatch(t, []string{"Black Sabbath", "Black Sabath"}, band.NameVariations)
	assert.ElementsMatch(t, []string{"chunk-1", "chunk-2"}, band.Provenance)
	assert.Equal(t, 1968, band.Attributes["formed_year"])

	assert.Equal(t, 2, graph.Stats.Entities)
	assert.Equal(t, 1, graph.Stats.Relationships)
	assert.Equal(t, 3, graph.Stats.MentionsAccepted)
	assert.Equal(t, 0, graph.Stats.MentionsSkipped)
}

func TestFinalizeOrderingIsDeterministic(t *testing.T) {
	build := func() *model.ResolvedGraph {
		s := testStore(t, Config{})
		s.AddMention(model.Mention{Category: model.CategoryLocation, Name: "Birmingham", SourceUnitID: "c1"})
		s.AddMention(bandMention("Judas Priest", "c1"))
		s.AddMention(bandMention("Black Sabbath", "c2"))
		s.AddMention(model.Mention{Category: model.CategoryPerson, Name: "Rob Halford", SourceUnitID: "c2"})
		return s.Finalize()
	}

	first := build()
	second := build()
	assert.Equal(t, first, second)

	// Groups within a category appear in creation order.
	bands := first.Entities[model.CategoryBand]
	require.Len(t, bands, 2)
	assert.Equal(t, "Judas Priest", bands[0].Name)
	assert.Equal(t, "Black Sabbath", bands[1].Name)
}

func TestFinalizeReturnsIsolatedCopies(t *testing.T) {
	s := testStore(t, Config{})
	m := bandMention("Bathory", "c1")
	m.Attributes = map[string]any{"formed_year": 1983}
	s.AddMention(m)

	graph := s.Finalize()
	band := graph.Entities[model.CategoryBand][0]
	band.NameVariations[0] = "mutated"
	band.Attributes["formed_year"] = 99
	band.Provenance[0] = "mutated"

	fresh := s.Finalize().Entities[model.CategoryBand][0]
	assert.Equal(t, []string{"Bathory"}, fresh.NameVariations)
	assert.Equal(t, 1983, fresh.Attributes["formed_year"])
	assert.Equal(t, []string{"c1"}, fresh.Provenance)
}

func TestFinalizeCountsSkippedAndDuplicates(t *testing.T) {
	s := testStore(t, Config{})
	s.AddMention(bandMention("Venom", "c1"))
	s.AddMention(bandMention("", "c1"))
	s.AddMention(model.Mention{Name: "no category", SourceUnitID: "c1"})
	s.AddRelationship(relMention("FORMED_IN", "Venom", "Newcastle", "", "c1"))
	s.AddRelationship(relMention("FORMED_IN", "venom", "NEWCASTLE", "", "c2"))

	stats := s.Finalize().Stats
	assert.Equal(t, 1, stats.MentionsAccepted)
	assert.Equal(t, 2, stats.MentionsSkipped)
	assert.Equal(t, 1, stats.Relationships)
	assert.Equal(t, 1, stats.DuplicateRelationships)
}

func TestFinalizeEmptyStore(t *testing.T) {
	graph := testStore(t, Config{}).Finalize()
	assert.Empty(t, graph.Entities)
	assert.Empty(t, graph.Relationships)
	assert.Zero(t, graph.Stats.Entities)
}
