package inference

import (
	"fairaudit/domain/fairness"
)

// Bonferroni applies the Bonferroni correction across a family of tests.
// The family size is the number of attributes with at least one conclusive
// result, so running several tests per attribute does not shrink the
// threshold further: corrected alpha is alpha/k for k such attributes, and
// the family is significant when any conclusive p-value falls below it.
// Inconclusive results never contribute to the decision.
func (e *Engine) Bonferroni(results []fairness.StatisticalTestResult) fairness.TestSummary {
	attrs := make(map[string]struct{})
	for _, r := range results {
		if !r.Inconclusive {
			attrs[r.Attribute] = struct{}{}
		}
	}
	k := len(attrs)

	corrected := e.alpha
	if k > 0 {
		corrected = e.alpha / float64(k)
	}

	significant := false
	for _, r := range results {
		if !r.Inconclusive && r.PValue < corrected {
			significant = true
			break
		}
	}

	return fairness.TestSummary{
		Results:            results,
		Alpha:              e.alpha,
		CorrectedAlpha:     corrected,
		CorrectionMethod:   "bonferroni",
		OverallSignificant: significant,
	}
}
