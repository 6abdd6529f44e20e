package inference

import (
	"context"
	"sort"

	"fairaudit/domain/fairness"
	"fairaudit/ports"
)

// Engine runs the hypothesis tests backing the fairness metrics:
// chi-square independence on k×2 contingency tables, Fisher's exact as
// the small-sample fallback, and a label-shuffling permutation test.
// Stateless; safe for concurrent use.
type Engine struct {
	alpha        float64
	permutations int
	rng          ports.RNGPort
}

// NewEngine creates a test engine with the given significance level and
// permutation iteration budget.
func NewEngine(alpha float64, permutations int, rng ports.RNGPort) *Engine {
	if alpha <= 0 || alpha >= 1 {
		alpha = 0.05
	}
	if permutations < 100 {
		permutations = 1000
	}
	return &Engine{alpha: alpha, permutations: permutations, rng: rng}
}

// Alpha returns the uncorrected significance level
func (e *Engine) Alpha() float64 {
	return e.alpha
}

// TestAttribute runs the selection-independence test for one protected
// attribute: chi-square first, Fisher's exact when the chi-square
// precondition (all expected cells >= 5) fails. A test that cannot run at
// all comes back marked inconclusive rather than as an error.
func (e *Engine) TestAttribute(attribute string, groups []fairness.GroupStats) fairness.StatisticalTestResult {
	result, err := e.ChiSquare(attribute, groups)
	if err == nil {
		return result
	}

	// Chi-square precondition unmet; fall back to the exact test.
	result, err = e.FisherExact(attribute, groups)
	if err == nil {
		return result
	}

	return fairness.StatisticalTestResult{
		TestName:     "chi_square",
		Attribute:    attribute,
		PValue:       1.0,
		Inconclusive: true,
		Note:         err.Error(),
	}
}

// TestAllAttributes tests every attribute and applies the Bonferroni
// correction across the family.
func (e *Engine) TestAllAttributes(ctx context.Context, attributes map[string][]string, outcomes []bool, statsByAttr map[string][]fairness.GroupStats) fairness.TestSummary {
	results := make([]fairness.StatisticalTestResult, 0, len(attributes)*2)

	for _, attr := range sortedKeys(attributes) {
		results = append(results, e.TestAttribute(attr, statsByAttr[attr]))

		perm := e.PermutationTest(ctx, attributes[attr], outcomes)
		perm.Attribute = attr
		results = append(results, perm)
	}

	return e.Bonferroni(results)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
