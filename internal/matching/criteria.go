// internal/matching/criteria.go

// Package matching implements criteria normalization and the match
// evaluation used to pair events with sponsorship providers.
package matching

import (
	"sort"
	"strings"
)

// DefaultGenericTerms are placeholder tags that carry no matching signal.
var DefaultGenericTerms = []string{"event", "events"}

// Normalizer lower-cases, trims, and strips generic terms from criteria
// lists. Zero state beyond the configured generic set.
type Normalizer struct {
	generic map[string]struct{}
}

// NewNormalizer builds a normalizer. An empty terms slice falls back to
// DefaultGenericTerms.
func NewNormalizer(genericTerms []string) *Normalizer {
	if len(genericTerms) == 0 {
		genericTerms = DefaultGenericTerms
	}
	generic := make(map[string]struct{}, len(genericTerms))
	for _, term := range genericTerms {
		generic[strings.ToLower(strings.TrimSpace(term))] = struct{}{}
	}
	return &Normalizer{generic: generic}
}

// Normalize returns the lower-cased, trimmed criteria with generic terms
// and empty entries removed. Nil input yields an empty result. Idempotent.
func (n *Normalizer) Normalize(criteria []string) []string {
	out := make([]string, 0, len(criteria))
	for _, c := range criteria {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if _, ok := n.generic[c]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

// NormalizeEventCriteria applies Normalize with one extra rule for match
// input: when the raw list is non-empty but every entry was filtered out,
// the first raw entry is re-admitted in normalized form so the event still
// has a matching key.
func (n *Normalizer) NormalizeEventCriteria(criteria []string) []string {
	out := n.Normalize(criteria)
	if len(out) == 0 && len(criteria) > 0 {
		first := strings.ToLower(strings.TrimSpace(criteria[0]))
		if first != "" {
			out = append(out, first)
		}
	}
	return out
}

// Intersect returns the set intersection of two normalized criteria lists
// in sorted order, duplicates collapsed. Empty if either side is empty.
func Intersect(eventCriteria, providerCriteria []string) []string {
	if len(eventCriteria) == 0 || len(providerCriteria) == 0 {
		return nil
	}
	providerSet := make(map[string]struct{}, len(providerCriteria))
	for _, c := range providerCriteria {
		providerSet[c] = struct{}{}
	}
	seen := make(map[string]struct{})
	var matched []string
	for _, c := range eventCriteria {
		if _, ok := providerSet[c]; !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		matched = append(matched, c)
	}
	sort.Strings(matched)
	return matched
}
