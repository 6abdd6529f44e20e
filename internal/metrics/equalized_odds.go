package metrics

import (
	"context"
	"fmt"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// proxyNote flags the shared limitation of the odds-based metrics: with
// no ground-truth label distinct from the selection decision, selection
// rate stands in for the true-positive rate and rejection rate for the
// false-positive rate. An approximation, not the textbook metric.
const proxyNote = "proxy approximation: selection decision used in place of ground-truth outcome"

// EqualizedOdds checks equality of (proxy) true-positive and
// false-positive rates across groups.
type EqualizedOdds struct{}

// NewEqualizedOdds creates the calculator
func NewEqualizedOdds() *EqualizedOdds {
	return &EqualizedOdds{}
}

// Kind identifies the metric
func (c *EqualizedOdds) Kind() fairness.MetricKind {
	return fairness.MetricEqualizedOdds
}

// Compute scores 1 - max(tprDifference, fprDifference), taking the worst
// spread across attributes.
func (c *EqualizedOdds) Compute(_ context.Context, in *Inputs) (fairness.MetricResult, error) {
	result := fairness.MetricResult{
		Metric:  c.Kind(),
		Details: map[string]float64{},
	}

	worstSpread := 0.0
	computed := 0

	for _, attr := range in.AttributeOrder {
		groupStats := in.StatsByAttr[attr]
		if len(groupStats) < 2 {
			continue
		}

		tprDiff, fprDiff := oddsSpreads(groupStats)
		spread := tprDiff
		if fprDiff > spread {
			spread = fprDiff
		}

		result.Details[attr+"_tpr_difference"] = tprDiff
		result.Details[attr+"_fpr_difference"] = fprDiff
		result.GroupStats = append(result.GroupStats, prefixedStats(attr, groupStats)...)

		if spread > worstSpread {
			worstSpread = spread
		}
		computed++
	}

	if computed == 0 {
		return fairness.MetricResult{}, core.NewMetricError("equalized_odds", core.ErrTooFewGroups)
	}

	result.Score = 1 - worstSpread
	result.Tier = tierForScore(result.Score)
	result.Details["max_rate_difference"] = worstSpread
	result.Interpretation = fmt.Sprintf(
		"worst TPR/FPR spread %.3f across %d attribute(s); %s", worstSpread, computed, proxyNote)

	return result, nil
}

// oddsSpreads returns the max-min spreads of the proxy TPR (selection
// rate) and proxy FPR (rejection rate) across groups.
func oddsSpreads(groupStats []fairness.GroupStats) (tprDiff, fprDiff float64) {
	minSel, maxSel := rateSpread(groupStats)
	tprDiff = maxSel - minSel

	minRej, maxRej := groupStats[0].RejectionRate, groupStats[0].RejectionRate
	for _, s := range groupStats[1:] {
		if s.RejectionRate < minRej {
			minRej = s.RejectionRate
		}
		if s.RejectionRate > maxRej {
			maxRej = s.RejectionRate
		}
	}
	fprDiff = maxRej - minRej
	return tprDiff, fprDiff
}
