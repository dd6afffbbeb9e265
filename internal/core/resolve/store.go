// Package resolve implements the incremental entity resolution engine:
// category-scoped candidate groups, similarity routing, attribute merging,
// relationship deduplication, arbiter escalation and result materialization.
package resolve

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/similarity"
)

// RouterPolicy selects how a mention picks among multiple matching groups.
type RouterPolicy string

const (
	// FirstFit routes to the first group (in encounter order) with any
	// matching variation. This is the default: it keeps routing a single
	// O(groups x variations) scan, and changing it changes merge outcomes on
	// ambiguous input.
	FirstFit RouterPolicy = "first_fit"
	// BestFit routes to the group holding the highest-scoring variation.
	BestFit RouterPolicy = "best_fit"
)

// Config holds the resolver's policy knobs. Zero values fall back to the
// package defaults.
type Config struct {
	// PrimaryThreshold gates mention-to-group routing.
	PrimaryThreshold float64
	// SecondaryThreshold gates the "possibly same" graph built during
	// escalation.
	SecondaryThreshold float64
	// FreeTextThreshold decides when two free-text values are near-duplicates
	// during merging.
	FreeTextThreshold float64
	Policy            RouterPolicy
}

const (
	defaultPrimaryThreshold   = 0.85
	defaultSecondaryThreshold = 0.75
	defaultFreeTextThreshold  = 0.90
)

func (c Config) withDefaults() Config {
	if c.PrimaryThreshold == 0 {
		c.PrimaryThreshold = defaultPrimaryThreshold
	}
	if c.SecondaryThreshold == 0 {
		c.SecondaryThreshold = defaultSecondaryThreshold
	}
	if c.FreeTextThreshold == 0 {
		c.FreeTextThreshold = defaultFreeTextThreshold
	}
	if c.Policy == "" {
		c.Policy = FirstFit
	}
	return c
}

// Store is the entity group registry for one resolution run. It is an owned,
// injectable object with an explicit lifecycle: NewStore, AddMention /
// AddRelationship any number of times, optionally Escalate, then Finalize.
//
// All mutation funnels through a single mutex, which is the engine's one
// synchronization boundary: upstream extraction may fan out, but every
// mention observes the effects of all previously applied mentions.
type Store struct {
	mu sync.Mutex

	cfg     Config
	matcher *similarity.Matcher
	merger  *MergePolicy
	log     *zap.Logger

	groups map[model.Category][]*CandidateGroup

	relationships []model.CanonicalRelationship
	relSeen       map[string]struct{}

	accepted      int
	skipped       int
	skippedRels   int
	duplicateRels int
	absorbed      int
}

func NewStore(cfg Config, logger *zap.Logger) *Store {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		cfg:     cfg,
		matcher: similarity.NewMatcher(cfg.PrimaryThreshold),
		merger:  NewMergePolicy(cfg.FreeTextThreshold),
		log:     logger,
		groups:  map[model.Category][]*CandidateGroup{},
		relSeen: map[string]struct{}{},
	}
}

// AddMention routes one mention to a candidate group, creating the group when
// nothing matches, and merges its attributes in. Mentions with a blank name
// or a category outside the known set are skipped: counted and logged, never
// fatal. The returned bool reports whether the mention was accepted.
func (s *Store) AddMention(m model.Mention) (GroupID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(m.Name) == "" || !m.Category.Known() {
		s.skipped++
		s.log.Debug("skipping malformed mention",
			zap.String("category", string(m.Category)),
			zap.String("source_unit", m.SourceUnitID))
		return "", false
	}

	group := s.findGroup(m.Category, m.Name)
	if group == nil {
		group = newCandidateGroup(m)
		s.groups[m.Category] = append(s.groups[m.Category], group)
	}

	outcome := s.merger.Merge(group.Category, group.Canonical, m.Attributes)
	for field, values := range outcome.Conflicts {
		for _, v := range values {
			group.addConflict(field, v)
		}
	}
	for field, values := range outcome.Alternates {
		for _, v := range values {
			group.addAlternate(field, v)
		}
	}

	group.addVariation(m.Name)
	group.addProvenance(m.SourceUnitID)
	s.accepted++
	return group.ID, true
}

// findGroup scans the category's groups in encounter order. A match against
// any accumulated variation counts as a group match, so paraphrase tolerance
// grows as variations accumulate.
func (s *Store) findGroup(cat model.Category, name string) *CandidateGroup {
	if s.cfg.Policy == BestFit {
		var best *CandidateGroup
		var bestScore float64
		for _, group := range s.groups[cat] {
			if _, score, ok := s.matcher.FindBestMatch(name, group.Variations); ok && score > bestScore {
				best = group
				bestScore = score
			}
		}
		return best
	}

	for _, group := range s.groups[cat] {
		for _, variation := range group.Variations {
			if s.matcher.AreSimilar(name, variation) {
				return group
			}
		}
	}
	return nil
}

// Groups returns the live groups for one category in insertion order. The
// slice is a snapshot; the groups themselves are the store's own state.
func (s *Store) Groups(cat model.Category) []*CandidateGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*CandidateGroup, len(s.groups[cat]))
	copy(out, s.groups[cat])
	return out
}

// GroupCount reports the number of open groups across all categories.
func (s *Store) GroupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, groups := range s.groups {
		n += len(groups)
	}
	return n
}
