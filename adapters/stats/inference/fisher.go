package inference

import (
	"fmt"
	"math"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// FisherExact runs Fisher's exact test of independence on a 2×2 table.
// More reliable than chi-square for small samples. With more than two
// groups the table is collapsed to the extreme pair (lowest vs highest
// selection rate) since that contrast drives the parity finding; the
// collapse is noted on the result.
func (e *Engine) FisherExact(attribute string, groups []fairness.GroupStats) (fairness.StatisticalTestResult, error) {
	if len(groups) < 2 {
		return fairness.StatisticalTestResult{}, core.NewTestPreconditionError(
			"fisher_exact", fmt.Sprintf("need at least 2 groups, got %d", len(groups)))
	}

	a, b := groups[0], groups[1]
	note := ""
	if len(groups) > 2 {
		lo, hi := groups[0], groups[0]
		for _, g := range groups[1:] {
			if g.SelectionRate < lo.SelectionRate {
				lo = g
			}
			if g.SelectionRate > hi.SelectionRate {
				hi = g
			}
		}
		a, b = lo, hi
		note = fmt.Sprintf("collapsed %d groups to extreme pair %s vs %s", len(groups), lo.Key, hi.Key)
	}

	if a.Size == 0 || b.Size == 0 {
		return fairness.StatisticalTestResult{}, core.NewTestPreconditionError(
			"fisher_exact", "empty group")
	}

	// 2x2 table: rows = groups, cols = selected/rejected
	x := a.Selected
	rowA := a.Size
	rowB := b.Size
	colSelected := a.Selected + b.Selected

	pObserved := hypergeometricPMF(x, rowA, rowB, colSelected)

	// Two-sided p: sum of all tables as or less probable than observed.
	// Margins fix the support of the selected-count in group A.
	min := colSelected - rowB
	if min < 0 {
		min = 0
	}
	max := colSelected
	if max > rowA {
		max = rowA
	}

	const tol = 1e-12
	pValue := 0.0
	for k := min; k <= max; k++ {
		p := hypergeometricPMF(k, rowA, rowB, colSelected)
		if p <= pObserved+tol {
			pValue += p
		}
	}
	if pValue > 1 {
		pValue = 1
	}

	// Odds ratio as the reported statistic (0.5 continuity correction
	// keeps it finite for zero cells).
	oa := float64(a.Selected) + 0.5
	ob := float64(a.Size-a.Selected) + 0.5
	oc := float64(b.Selected) + 0.5
	od := float64(b.Size-b.Selected) + 0.5
	oddsRatio := (oa * od) / (ob * oc)

	return fairness.StatisticalTestResult{
		TestName:  "fisher_exact",
		Attribute: attribute,
		Statistic: oddsRatio,
		PValue:    pValue,
		Note:      note,
	}, nil
}

// hypergeometricPMF returns P(X = k) for the number of selected
// candidates in group A, given fixed table margins.
func hypergeometricPMF(k, rowA, rowB, colSelected int) float64 {
	total := rowA + rowB
	logP := logChoose(rowA, k) +
		logChoose(rowB, colSelected-k) -
		logChoose(total, colSelected)
	return math.Exp(logP)
}

func logChoose(n, k int) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	return logFactorial(n) - logFactorial(k) - logFactorial(n-k)
}

func logFactorial(n int) float64 {
	lg, _ := math.Lgamma(float64(n) + 1)
	return lg
}
