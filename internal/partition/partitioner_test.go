package partition

import (
	"testing"

	"fairaudit/domain/fairness"
)

func TestByAttribute_StrictPartition(t *testing.T) {
	p := NewPartitioner()
	values := []string{"a", "b", "a", "c", "b", "a"}

	groups := p.ByAttribute(values)

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}

	seen := map[int]int{}
	total := 0
	for _, g := range groups {
		for _, idx := range g.Indices {
			seen[idx]++
			total++
		}
	}
	if total != len(values) {
		t.Errorf("partition dropped members: covered %d of %d", total, len(values))
	}
	for idx, count := range seen {
		if count != 1 {
			t.Errorf("index %d appears in %d groups, want exactly 1", idx, count)
		}
	}
}

func TestByAttribute_DeterministicOrder(t *testing.T) {
	p := NewPartitioner()
	values := []string{"z", "a", "m", "a", "z"}

	groups := p.ByAttribute(values)

	want := []string{"a", "m", "z"}
	for i, g := range groups {
		if g.Key != want[i] {
			t.Errorf("group %d key = %q, want %q", i, g.Key, want[i])
		}
	}
}

func TestIntersectional_RefinesSingleAttribute(t *testing.T) {
	p := NewPartitioner()
	attrs := map[string][]string{
		"gender":   {"f", "m", "f", "m", "f"},
		"age_band": {"young", "young", "old", "old", "young"},
	}
	order := SortedAttributeNames(attrs)

	groups := p.Intersectional(order, attrs)

	// Union of indices must equal the full index set, no overlaps.
	seen := map[int]bool{}
	for _, g := range groups {
		for _, idx := range g.Indices {
			if seen[idx] {
				t.Fatalf("index %d appears in two intersectional groups", idx)
			}
			seen[idx] = true
		}
	}
	if len(seen) != 5 {
		t.Fatalf("intersectional partition covers %d of 5 candidates", len(seen))
	}

	// Composite keys follow the attribute order (age_band sorts first).
	wantKeys := map[string]bool{
		"young" + fairness.CompositeKeySeparator + "f": true,
		"young" + fairness.CompositeKeySeparator + "m": true,
		"old" + fairness.CompositeKeySeparator + "f":   true,
		"old" + fairness.CompositeKeySeparator + "m":   true,
	}
	for _, g := range groups {
		if !wantKeys[g.Key] {
			t.Errorf("unexpected composite key %q", g.Key)
		}
	}
}

func TestGroupOutcomeStats(t *testing.T) {
	groups := []fairness.Group{
		{Key: "a", Indices: []int{0, 1, 2, 3}},
		{Key: "b", Indices: []int{4, 5}},
	}
	outcomes := []bool{true, true, false, false, true, false}

	stats := GroupOutcomeStats(groups, outcomes)

	if stats[0].SelectionRate != 0.5 {
		t.Errorf("group a rate = %v, want 0.5", stats[0].SelectionRate)
	}
	if stats[1].SelectionRate != 0.5 {
		t.Errorf("group b rate = %v, want 0.5", stats[1].SelectionRate)
	}
	if stats[0].Selected != 2 || stats[1].Selected != 1 {
		t.Errorf("selected counts = %d,%d want 2,1", stats[0].Selected, stats[1].Selected)
	}
	if stats[0].RejectionRate != 0.5 {
		t.Errorf("rejection rate = %v, want 0.5", stats[0].RejectionRate)
	}
}
