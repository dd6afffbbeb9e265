package resolve

import (
	"sort"
	"strings"

	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/model"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/schema"
	"github.com/mikkelkrogsholm/metal-history-graph/internal/core/similarity"
)

// MergePolicy folds an incoming attribute bag into an existing canonical bag,
// one field at a time, according to the category's schema table. It never
// discards information: losing scalar values land in conflicts, diverging
// short strings in alternates.
type MergePolicy struct {
	// freeText decides whether two free-text values are near-duplicates.
	freeText *similarity.Matcher
}

// MergeOutcome reports what a single Merge call recorded beyond the updated
// bag itself.
type MergeOutcome struct {
	Conflicts  map[string][]any
	Alternates map[string][]string
}

func NewMergePolicy(freeTextThreshold float64) *MergePolicy {
	return &MergePolicy{freeText: similarity.NewMatcher(freeTextThreshold)}
}

// Merge applies the per-field policy for every key present in the incoming
// bag, mutating existing in place. Keys present only in existing are left
// untouched; nil incoming values never overwrite known values. Keys are
// visited in sorted order so a single call is deterministic regardless of map
// iteration.
func (p *MergePolicy) Merge(cat model.Category, existing, incoming map[string]any) MergeOutcome {
	outcome := MergeOutcome{
		Conflicts:  map[string][]any{},
		Alternates: map[string][]string{},
	}

	keys := make([]string, 0, len(incoming))
	for k := range incoming {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, field := range keys {
		value := incoming[field]
		if value == nil {
			continue
		}

		current, present := existing[field]
		if !present || current == nil {
			existing[field] = value
			continue
		}

		switch schema.KindOf(cat, field) {
		case schema.List:
			existing[field] = unionLists(toStringList(current), toStringList(value))

		case schema.FreeText:
			merged, ok := p.concatFreeText(toString(current), toString(value))
			if ok {
				existing[field] = merged
			}

		case schema.FreeTextAlternates:
			// adopted value stays put; a divergent incoming value is kept as
			// an alternate rather than merged in
			cur, inc := toString(current), toString(value)
			if p.freeText.Similarity(cur, inc) < p.freeText.Threshold {
				outcome.recordAlternate(field, inc)
			}

		case schema.Scalar:
			if !scalarEqual(current, value) {
				outcome.recordConflict(field, value)
			}
		}
	}

	return outcome
}

// concatFreeText combines two prose values. Near-duplicates and already
// contained text are dropped; anything substantially new is appended.
func (p *MergePolicy) concatFreeText(current, incoming string) (string, bool) {
	if incoming == "" {
		return current, false
	}
	if p.freeText.Similarity(current, incoming) >= p.freeText.Threshold {
		return current, false
	}
	if strings.Contains(current, incoming) {
		return current, false
	}
	return current + " " + incoming, true
}

func (o *MergeOutcome) recordConflict(field string, value any) {
	for _, existing := range o.Conflicts[field] {
		if scalarEqual(existing, value) {
			return
		}
	}
	o.Conflicts[field] = append(o.Conflicts[field], value)
}

func (o *MergeOutcome) recordAlternate(field, value string) bool {
	for _, existing := range o.Alternates[field] {
		if existing == value {
			return false
		}
	}
	o.Alternates[field] = append(o.Alternates[field], value)
	return true
}

// scalarEqual compares scalar values across the numeric representations that
// show up in practice: typed ints from the extractor and float64 from
// generic JSON decoding.
func scalarEqual(a, b any) bool {
	if a == b {
		return true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// toStringList accepts both []string (typed extraction output) and []any
// (generic JSON, e.g. arbiter merge results).
func toStringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// unionLists merges two lists preserving first-seen order and dropping
// duplicates.
func unionLists(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, item := range list {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}
