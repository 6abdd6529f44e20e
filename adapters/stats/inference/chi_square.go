package inference

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// ChiSquare tests independence between group membership and outcome on a
// k×2 contingency table (selected / rejected per group). Returns a
// precondition error when any expected cell count falls below 5; callers
// should fall back to FisherExact in that case.
func (e *Engine) ChiSquare(attribute string, groups []fairness.GroupStats) (fairness.StatisticalTestResult, error) {
	if len(groups) < 2 {
		return fairness.StatisticalTestResult{}, core.NewTestPreconditionError(
			"chi_square", fmt.Sprintf("need at least 2 groups, got %d", len(groups)))
	}

	total := 0
	totalSelected := 0
	for _, g := range groups {
		total += g.Size
		totalSelected += g.Selected
	}
	if total == 0 {
		return fairness.StatisticalTestResult{}, core.NewTestPreconditionError(
			"chi_square", "empty contingency table")
	}
	totalRejected := total - totalSelected

	// Expected cell counts under independence; the chi-square
	// approximation breaks down when any falls below 5.
	chiSq := 0.0
	for _, g := range groups {
		expSelected := float64(g.Size*totalSelected) / float64(total)
		expRejected := float64(g.Size*totalRejected) / float64(total)
		if expSelected < 5 || expRejected < 5 {
			return fairness.StatisticalTestResult{}, core.ErrLowCellCount
		}

		obsSelected := float64(g.Selected)
		obsRejected := float64(g.Size - g.Selected)
		chiSq += (obsSelected - expSelected) * (obsSelected - expSelected) / expSelected
		chiSq += (obsRejected - expRejected) * (obsRejected - expRejected) / expRejected
	}

	df := float64(len(groups) - 1)
	dist := distuv.ChiSquared{K: df}
	pValue := dist.Survival(chiSq)
	if pValue < 0 {
		pValue = 0
	}
	if pValue > 1 {
		pValue = 1
	}

	return fairness.StatisticalTestResult{
		TestName:         "chi_square",
		Attribute:        attribute,
		Statistic:        chiSq,
		PValue:           pValue,
		DegreesOfFreedom: df,
	}, nil
}
