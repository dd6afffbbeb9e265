package resolve

import (
	"context"

	"go.uber.org/zap"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/similarity"
)

// Arbiter decides whether the groups of one escalated cluster describe the
// same real-world entity. Implementations may be an LLM, a remote service or
// a test stub; the engine only sees the verdict.
type Arbiter interface {
	Compare(ctx context.Context, cluster []*CandidateGroup) (model.ArbiterVerdict, error)
}

// Escalate runs the secondary disambiguation pass over the now-stable store.
// Per category it links groups whose variation sets are pairwise similar at
// the secondary threshold, asks the arbiter about every connected component
// of two or more groups, and absorbs components the arbiter confirms. An
// arbiter error or malformed verdict leaves that cluster untouched and never
// aborts the pass; the pass never merges across categories.
//
// The store must be quiescent: nothing may ingest mentions while Escalate
// runs, since it removes groups.
func (s *Store) Escalate(ctx context.Context, arb Arbiter) {
	if arb == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	secondary := similarity.NewMatcher(s.cfg.SecondaryThreshold)

	for _, cat := range model.Categories {
		groups := s.groups[cat]
		if len(groups) < 2 {
			continue
		}

		for _, cluster := range similarClusters(groups, secondary) {
			verdict, err := arb.Compare(ctx, cluster)
			if err != nil {
				s.log.Warn("arbiter failed, leaving cluster unmerged",
					zap.String("category", string(cat)),
					zap.Int("cluster_size", len(cluster)),
					zap.Error(err))
				continue
			}
			if !verdict.SameEntity {
				continue
			}
			s.absorbCluster(cat, cluster, verdict)
		}
	}
}

// similarClusters builds the undirected "possibly same" graph over groups and
// returns its connected components of size >= 2, in group encounter order.
func similarClusters(groups []*CandidateGroup, matcher *similarity.Matcher) [][]*CandidateGroup {
	adj := make(map[int][]int)
	for i := 0; i < len(groups); i++ {
		for j := i + 1; j < len(groups); j++ {
			if anyVariationSimilar(groups[i], groups[j], matcher) {
				adj[i] = append(adj[i], j)
				adj[j] = append(adj[j], i)
			}
		}
	}

	visited := make([]bool, len(groups))
	var clusters [][]*CandidateGroup

	for start := range groups {
		if visited[start] {
			continue
		}
		visited[start] = true

		component := []int{start}
		queue := []int{start}
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			for _, next := range adj[node] {
				if visited[next] {
					continue
				}
				visited[next] = true
				component = append(component, next)
				queue = append(queue, next)
			}
		}

		if len(component) >= 2 {
			cluster := make([]*CandidateGroup, len(component))
			for i, idx := range component {
				cluster[i] = groups[idx]
			}
			clusters = append(clusters, cluster)
		}
	}

	return clusters
}

func anyVariationSimilar(a, b *CandidateGroup, matcher *similarity.Matcher) bool {
	for _, va := range a.Variations {
		for _, vb := range b.Variations {
			if matcher.AreSimilar(va, vb) {
				return true
			}
		}
	}
	return false
}

// absorbCluster merges every group of a confirmed cluster into the first one
// (the earliest created), applying the arbiter's canonical name and merged
// attributes when supplied. Attribute bags merge under the regular field
// policy; provenance, variations, conflicts and alternates union.
func (s *Store) absorbCluster(cat model.Category, cluster []*CandidateGroup, verdict model.ArbiterVerdict) {
	survivor := cluster[0]
	removed := make(map[GroupID]struct{}, len(cluster)-1)

	for _, other := range cluster[1:] {
		outcome := s.merger.Merge(cat, survivor.Canonical, other.Canonical)
		for field, values := range outcome.Conflicts {
			for _, v := range values {
				survivor.addConflict(field, v)
			}
		}
		for field, values := range outcome.Alternates {
			for _, v := range values {
				survivor.addAlternate(field, v)
			}
		}
		survivor.absorb(other)
		removed[other.ID] = struct{}{}
		s.absorbed++
	}

	if verdict.CanonicalName != "" {
		survivor.CanonicalName = verdict.CanonicalName
		survivor.addVariation(verdict.CanonicalName)
	}
	if len(verdict.MergedAttributes) > 0 {
		survivor.Canonical = normalizeAttributes(verdict.MergedAttributes)
	}

	kept := s.groups[cat][:0]
	for _, g := range s.groups[cat] {
		if _, gone := removed[g.ID]; !gone {
			kept = append(kept, g)
		}
	}
	s.groups[cat] = kept

	s.log.Info("absorbed cluster",
		zap.String("category", string(cat)),
		zap.String("canonical_name", survivor.CanonicalName),
		zap.Int("groups_merged", len(cluster)))
}

// normalizeAttributes coerces a generically decoded JSON bag into the value
// shapes the rest of the engine uses: whole floats become ints and homogenous
// string arrays become []string.
func normalizeAttributes(attrs map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		switch val := v.(type) {
		case float64:
			if val == float64(int(val)) {
				out[k] = int(val)
			} else {
				out[k] = val
			}
		case []any:
			if list := toStringList(val); len(list) == len(val) {
				out[k] = list
			} else {
				out[k] = val
			}
		case nil:
			// dropped
		default:
			out[k] = v
		}
	}
	return out
}
