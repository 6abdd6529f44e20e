package partition

import (
	"sort"
	"strings"

	"fairaudit/domain/fairness"
)

// Partitioner groups candidate indices by protected-attribute value.
// Every candidate lands in exactly one group for a given scheme: groups
// are a strict partition, never overlapping, never dropping members.
type Partitioner struct{}

// NewPartitioner creates a partitioner
func NewPartitioner() *Partitioner {
	return &Partitioner{}
}

// ByAttribute builds the single-attribute partition: category -> indices.
// One O(n) scan; group order is sorted by key for deterministic output.
func (p *Partitioner) ByAttribute(values []string) []fairness.Group {
	byKey := make(map[string][]int)
	for i, v := range values {
		byKey[v] = append(byKey[v], i)
	}
	return sortedGroups(byKey)
}

// Intersectional builds the cartesian-product partition over several
// attributes. The composite key concatenates each attribute's value in
// the caller-supplied attribute order, so the same inputs always yield
// the same keys. O(n*k) for k attributes.
func (p *Partitioner) Intersectional(attributeOrder []string, attributes map[string][]string) []fairness.Group {
	if len(attributeOrder) == 0 {
		return nil
	}

	n := len(attributes[attributeOrder[0]])
	byKey := make(map[string][]int)
	parts := make([]string, len(attributeOrder))

	for i := 0; i < n; i++ {
		for j, attr := range attributeOrder {
			parts[j] = attributes[attr][i]
		}
		key := strings.Join(parts, fairness.CompositeKeySeparator)
		byKey[key] = append(byKey[key], i)
	}

	return sortedGroups(byKey)
}

// SortedAttributeNames returns the attribute names in stable sorted order.
// Used as the canonical attribute order when the caller supplies none.
func SortedAttributeNames(attributes map[string][]string) []string {
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GroupOutcomeStats computes per-group selection statistics against the
// outcome vector.
func GroupOutcomeStats(groups []fairness.Group, outcomes []bool) []fairness.GroupStats {
	stats := make([]fairness.GroupStats, len(groups))
	for gi, g := range groups {
		selected := 0
		for _, idx := range g.Indices {
			if outcomes[idx] {
				selected++
			}
		}
		rate := 0.0
		if len(g.Indices) > 0 {
			rate = float64(selected) / float64(len(g.Indices))
		}
		stats[gi] = fairness.GroupStats{
			Key:           g.Key,
			Size:          len(g.Indices),
			Selected:      selected,
			SelectionRate: rate,
			RejectionRate: 1 - rate,
		}
	}
	return stats
}

func sortedGroups(byKey map[string][]int) []fairness.Group {
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]fairness.Group, len(keys))
	for i, k := range keys {
		groups[i] = fairness.Group{Key: k, Indices: byKey[k]}
	}
	return groups
}
