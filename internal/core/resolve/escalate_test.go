package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
)

// stubArbiter returns canned verdicts and records the clusters it saw.
type stubArbiter struct {
	Verdict  model.ArbiterVerdict
	Err      error
	Clusters [][]*CandidateGroup
}

func (a *stubArbiter) Compare(ctx context.Context, cluster []*CandidateGroup) (model.ArbiterVerdict, error) {
	a.Clusters = append(a.Clusters, cluster)
	if a.Err != nil {
		return model.ArbiterVerdict{}, a.Err
	}
	return a.Verdict, nil
}

// escalationStore seeds two band groups that miss the primary threshold but
// meet the secondary one.
func escalationStore(t *testing.T) *Store {
	t.Helper()
	s := testStore(t, Config{PrimaryThreshold: 0.95, SecondaryThreshold: 0.75})

	m1 := bandMention("Iron Maiden", "chunk-1")
	m1.Attributes = map[string]any{"formed_year": 1975}
	m2 := bandMention("Iron Maidn", "chunk-2")
	m2.Attributes = map[string]any{"origin_city": "London"}

	s.AddMention(m1)
	s.AddMention(m2)
	require.Equal(t, 2, s.GroupCount())
	return s
}

func TestEscalateMergesConfirmedCluster(t *testing.T) {
	s := escalationStore(t)
	arb := &stubArbiter{Verdict: model.ArbiterVerdict{
		SameEntity:    true,
		CanonicalName: "Iron Maiden",
		MergedAttributes: map[string]any{
			"formed_year": float64(1975),
			"origin_city": "London",
		},
	}}

	s.Escalate(context.Background(), arb)

	require.Len(t, arb.Clusters, 1)
	require.Equal(t, 1, s.GroupCount())

	groups := s.Groups(model.CategoryBand)
	survivor := groups[0]
	assert.Equal(t, "Iron Maiden", survivor.CanonicalName)
	assert.ElementsMatch(t, []string{"Iron Maiden", "Iron Maidn"}, survivor.Variations)
	assert.ElementsMatch(t, []string{"chunk-1", "chunk-2"}, survivor.Provenance)
	// JSON-decoded whole floats normalize back to ints.
	assert.Equal(t, 1975, survivor.Canonical["formed_year"])
	assert.Equal(t, "London", survivor.Canonical["origin_city"])
}

func TestEscalateLeavesGroupsOnNotSame(t *testing.T) {
	s := escalationStore(t)
	arb := &stubArbiter{Verdict: model.ArbiterVerdict{SameEntity: false}}

	s.Escalate(context.Background(), arb)

	assert.Len(t, arb.Clusters, 1)
	assert.Equal(t, 2, s.GroupCount())
}

func TestEscalateNeverMergesOnArbiterFailure(t *testing.T) {
	s := escalationStore(t)
	arb := &stubArbiter{Err: errors.New("arbiter unavailable")}

	s.Escalate(context.Background(), arb)

	assert.Equal(t, 2, s.GroupCount())
}

func TestEscalateNeverMergesAcrossCategories(t *testing.T) {
	s := testStore(t, Config{PrimaryThreshold: 0.95, SecondaryThreshold: 0.75})
	s.AddMention(model.Mention{Category: model.CategoryBand, Name: "Venom", SourceUnitID: "chunk-1"})
	s.AddMention(model.Mention{Category: model.CategoryLocation, Name: "Venom", SourceUnitID: "chunk-2"})

	arb := &stubArbiter{Verdict: model.ArbiterVerdict{SameEntity: true, CanonicalName: "Venom"}}
	s.Escalate(context.Background(), arb)

	// Identical names in different categories never even form a cluster.
	assert.Empty(t, arb.Clusters)
	assert.Equal(t, 2, s.GroupCount())
}

func TestEscalateSkipsDistantGroups(t *testing.T) {
	s := testStore(t, Config{PrimaryThreshold: 0.95, SecondaryThreshold: 0.75})
	s.AddMention(bandMention("Slayer", "chunk-1"))
	s.AddMention(bandMention("Bathory", "chunk-2"))

	arb := &stubArbiter{Verdict: model.ArbiterVerdict{SameEntity: true}}
	s.Escalate(context.Background(), arb)

	assert.Empty(t, arb.Clusters)
	assert.Equal(t, 2, s.GroupCount())
}

func TestEscalateUnionsConflicts(t *testing.T) {
	s := testStore(t, Config{PrimaryThreshold: 0.95, SecondaryThreshold: 0.75})

	m1 := bandMention("Iron Maiden", "chunk-1")
	m1.Attributes = map[string]any{"formed_year": 1975}
	m1b := bandMention("Iron Maiden", "chunk-2")
	m1b.Attributes = map[string]any{"formed_year": 1976}
	m2 := bandMention("Iron Maidn", "chunk-3")
	m2.Attributes = map[string]any{"formed_year": 1977}
	m2b := bandMention("Iron Maidn", "chunk-4")
	m2b.Attributes = map[string]any{"formed_year": 1978}

	s.AddMention(m1)
	s.AddMention(m1b)
	s.AddMention(m2)
	s.AddMention(m2b)
	require.Equal(t, 2, s.GroupCount())

	arb := &stubArbiter{Verdict: model.ArbiterVerdict{SameEntity: true, CanonicalName: "Iron Maiden"}}
	s.Escalate(context.Background(), arb)

	groups := s.Groups(model.CategoryBand)
	require.Len(t, groups, 1)
	assert.Equal(t, 1975, groups[0].Canonical["formed_year"])
	assert.ElementsMatch(t, []any{1976, 1977, 1978}, groups[0].Conflicts["formed_year"])
	assert.Len(t, groups[0].Provenance, 4)
}

func TestNilArbiterIsNoOp(t *testing.T) {
	s := escalationStore(t)
	s.Escalate(context.Background(), nil)
	assert.Equal(t, 2, s.GroupCount())
}
