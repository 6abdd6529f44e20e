package inference

import (
	"context"
	"math"
	"testing"

	"fairaudit/adapters/rng"
	"fairaudit/domain/fairness"
)

func newTestEngine(permutations int) *Engine {
	return NewEngine(0.05, permutations, rng.NewDeterministicRNG(42))
}

func groupStats(key string, size, selected int) fairness.GroupStats {
	rate := float64(selected) / float64(size)
	return fairness.GroupStats{
		Key:           key,
		Size:          size,
		Selected:      selected,
		SelectionRate: rate,
		RejectionRate: 1 - rate,
	}
}

func TestChiSquare_KnownTable(t *testing.T) {
	e := newTestEngine(1000)

	// 50/100 vs 20/100 selected: chi-square = 19.78, df = 1.
	groups := []fairness.GroupStats{
		groupStats("a", 100, 50),
		groupStats("b", 100, 20),
	}

	result, err := e.ChiSquare("gender", groups)
	if err != nil {
		t.Fatalf("ChiSquare failed: %v", err)
	}

	if math.Abs(result.Statistic-19.78) > 0.01 {
		t.Errorf("chi-square statistic = %v, want ~19.78", result.Statistic)
	}
	if result.DegreesOfFreedom != 1 {
		t.Errorf("df = %v, want 1", result.DegreesOfFreedom)
	}
	if result.PValue > 0.001 {
		t.Errorf("p-value = %v, want < 0.001 for this effect", result.PValue)
	}
}

func TestChiSquare_NoAssociation(t *testing.T) {
	e := newTestEngine(1000)

	groups := []fairness.GroupStats{
		groupStats("a", 100, 40),
		groupStats("b", 100, 40),
	}

	result, err := e.ChiSquare("gender", groups)
	if err != nil {
		t.Fatalf("ChiSquare failed: %v", err)
	}
	if result.Statistic > 1e-9 {
		t.Errorf("identical rates should give statistic ~0, got %v", result.Statistic)
	}
	if result.PValue < 0.99 {
		t.Errorf("identical rates should give p ~1, got %v", result.PValue)
	}
}

func TestChiSquare_LowCellCountFallsBackToFisher(t *testing.T) {
	e := newTestEngine(1000)

	// Expected selected cells are below 5, chi-square precondition fails.
	groups := []fairness.GroupStats{
		groupStats("a", 6, 1),
		groupStats("b", 6, 2),
	}

	if _, err := e.ChiSquare("gender", groups); err == nil {
		t.Fatal("expected chi-square precondition error for small cells")
	}

	result := e.TestAttribute("gender", groups)
	if result.TestName != "fisher_exact" {
		t.Errorf("fallback test = %q, want fisher_exact", result.TestName)
	}
	if result.Inconclusive {
		t.Errorf("fisher fallback should be conclusive, note=%q", result.Note)
	}
	if result.PValue < 0 || result.PValue > 1 {
		t.Errorf("p-value out of [0,1]: %v", result.PValue)
	}
}

func TestFisherExact_KnownTable(t *testing.T) {
	e := newTestEngine(1000)

	// 3/3 vs 0/3 selected: two-sided exact p = 0.1.
	groups := []fairness.GroupStats{
		groupStats("a", 3, 3),
		groupStats("b", 3, 0),
	}

	result, err := e.FisherExact("gender", groups)
	if err != nil {
		t.Fatalf("FisherExact failed: %v", err)
	}
	if math.Abs(result.PValue-0.1) > 1e-9 {
		t.Errorf("exact p = %v, want 0.1", result.PValue)
	}
}

func TestFisherExact_SingleGroup(t *testing.T) {
	e := newTestEngine(1000)

	_, err := e.FisherExact("gender", []fairness.GroupStats{groupStats("a", 10, 5)})
	if err == nil {
		t.Fatal("expected precondition error for single group")
	}
}

func TestPermutationTest_StrongEffect(t *testing.T) {
	e := newTestEngine(1000)

	// Group a all selected, group b all rejected: maximal parity difference.
	labels := make([]string, 40)
	outcomes := make([]bool, 40)
	for i := 0; i < 20; i++ {
		labels[i] = "a"
		outcomes[i] = true
	}
	for i := 20; i < 40; i++ {
		labels[i] = "b"
	}

	result := e.PermutationTest(context.Background(), labels, outcomes)

	if result.Statistic != 1.0 {
		t.Errorf("observed parity difference = %v, want 1.0", result.Statistic)
	}
	if result.PValue > 0.05 {
		t.Errorf("p-value = %v, want small for maximal effect", result.PValue)
	}
	if result.Iterations != 1000 {
		t.Errorf("iterations = %d, want 1000", result.Iterations)
	}
}

func TestPermutationTest_Deterministic(t *testing.T) {
	labels := []string{"a", "a", "a", "b", "b", "b", "a", "b", "a", "b", "a", "b"}
	outcomes := []bool{true, false, true, false, true, false, true, false, false, true, true, false}

	p1 := newTestEngine(500).PermutationTest(context.Background(), labels, outcomes)
	p2 := newTestEngine(500).PermutationTest(context.Background(), labels, outcomes)

	if p1.PValue != p2.PValue {
		t.Errorf("same seed should reproduce p-value: %v vs %v", p1.PValue, p2.PValue)
	}
	if p1.PValue < 0 || p1.PValue > 1 {
		t.Errorf("p-value out of [0,1]: %v", p1.PValue)
	}
}

func TestPermutationTest_Cancelled(t *testing.T) {
	e := newTestEngine(10000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	labels := []string{"a", "b", "a", "b"}
	outcomes := []bool{true, false, false, true}
	result := e.PermutationTest(ctx, labels, outcomes)

	if result.Iterations >= 10000 {
		t.Errorf("cancelled test completed all iterations")
	}
	if result.Note == "" {
		t.Error("cancelled test should note the early stop")
	}
	if result.PValue < 0 || result.PValue > 1 {
		t.Errorf("best-effort p-value out of [0,1]: %v", result.PValue)
	}
}

func TestBonferroni(t *testing.T) {
	e := newTestEngine(1000)

	results := []fairness.StatisticalTestResult{
		{TestName: "chi_square", Attribute: "gender", PValue: 0.01},
		{TestName: "chi_square", Attribute: "age_band", PValue: 0.2},
		{TestName: "chi_square", Attribute: "ethnicity", PValue: 1.0, Inconclusive: true},
	}

	summary := e.Bonferroni(results)

	if summary.CorrectedAlpha != 0.025 {
		t.Errorf("corrected alpha = %v, want 0.05/2 = 0.025", summary.CorrectedAlpha)
	}
	if !summary.OverallSignificant {
		t.Error("p=0.01 < 0.025 should be significant after correction")
	}
}

func TestBonferroni_FamilySizeIsAttributeCount(t *testing.T) {
	e := newTestEngine(1000)

	// Two tests per attribute must not shrink the threshold beyond
	// alpha/attributes: two attributes give 0.025, not 0.0125.
	results := []fairness.StatisticalTestResult{
		{TestName: "chi_square", Attribute: "gender", PValue: 0.0219},
		{TestName: "permutation", Attribute: "gender", PValue: 0.3},
		{TestName: "chi_square", Attribute: "age_band", PValue: 0.4},
		{TestName: "permutation", Attribute: "age_band", PValue: 0.5},
	}

	summary := e.Bonferroni(results)

	if summary.CorrectedAlpha != 0.025 {
		t.Errorf("corrected alpha = %v, want 0.05/2 = 0.025", summary.CorrectedAlpha)
	}
	if !summary.OverallSignificant {
		t.Error("gender p=0.0219 < 0.025 should be significant after correction")
	}
}

func TestBonferroni_InconclusiveOnly(t *testing.T) {
	e := newTestEngine(1000)

	summary := e.Bonferroni([]fairness.StatisticalTestResult{
		{TestName: "chi_square", PValue: 0.001, Inconclusive: true},
	})

	if summary.OverallSignificant {
		t.Error("inconclusive results must not drive significance")
	}
}
