package engine

import (
	"github.com/montanaflynn/stats"

	"fairaudit/domain/fairness"
)

// Aggregate combines per-metric scores into the overall fairness score
// and compliance classification. Failed metrics are excluded from the
// mean, never treated as zero. Classification couples the score with the
// Bonferroni-corrected significance decision: a pool with a high score
// but statistically significant disparity is not compliant.
func Aggregate(results []fairness.MetricResult, tests fairness.TestSummary) (float64, fairness.ComplianceTier) {
	scores := make([]float64, 0, len(results))
	for _, r := range results {
		if !r.Failed {
			scores = append(scores, r.Score)
		}
	}

	if len(scores) == 0 {
		return 0, fairness.TierRequiresIntervention
	}

	overall, _ := stats.Mean(scores)
	if overall < 0 {
		overall = 0
	}
	if overall > 1 {
		overall = 1
	}

	var tier fairness.ComplianceTier
	switch {
	case overall >= 0.8 && !tests.OverallSignificant:
		tier = fairness.TierCompliant
	case overall >= 0.6:
		tier = fairness.TierRequiresMonitoring
	default:
		tier = fairness.TierRequiresIntervention
	}

	return overall, tier
}
