package metrics

import (
	"context"
	"fmt"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// PredictiveEquality focuses on the false-positive-rate spread across
// groups, under the same selection-decision proxy as equalized odds.
type PredictiveEquality struct{}

// NewPredictiveEquality creates the calculator
func NewPredictiveEquality() *PredictiveEquality {
	return &PredictiveEquality{}
}

// Kind identifies the metric
func (c *PredictiveEquality) Kind() fairness.MetricKind {
	return fairness.MetricPredictiveEquality
}

// Compute scores 1 - max(fprDifference, rejectionRateDifference) per
// attribute, reporting the worst case.
func (c *PredictiveEquality) Compute(_ context.Context, in *Inputs) (fairness.MetricResult, error) {
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

		_, fprDiff := oddsSpreads(groupStats)
		rejectionDiff := fprDiff // rejection rate is the proxy FPR here

		spread := fprDiff
		if rejectionDiff > spread {
			spread = rejectionDiff
		}

		result.Details[attr+"_fpr_difference"] = fprDiff
		result.Details[attr+"_rejection_rate_difference"] = rejectionDiff
		result.GroupStats = append(result.GroupStats, prefixedStats(attr, groupStats)...)

		if spread > worstSpread {
			worstSpread = spread
		}
		computed++
	}

	if computed == 0 {
		return fairness.MetricResult{}, core.NewMetricError("predictive_equality", core.ErrTooFewGroups)
	}

	result.Score = 1 - worstSpread
	result.Tier = tierForScore(result.Score)
	result.Details["max_fpr_difference"] = worstSpread
	result.Interpretation = fmt.Sprintf(
		"worst rejection-rate spread %.3f across %d attribute(s); %s", worstSpread, computed, proxyNote)

	return result, nil
}
