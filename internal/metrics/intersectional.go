package metrics

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// IntersectionalFairness evaluates fairness over the cartesian product
// of all protected attributes, where disparities hidden within single
// attributes tend to surface.
type IntersectionalFairness struct{}

// NewIntersectionalFairness creates the calculator
func NewIntersectionalFairness() *IntersectionalFairness {
	return &IntersectionalFairness{}
}

// Kind identifies the metric
func (c *IntersectionalFairness) Kind() fairness.MetricKind {
	return fairness.MetricIntersectional
}

// Compute scores 1 - coefficientOfVariation of the intersectional
// selection rates, alongside the parity ratio and difference.
func (c *IntersectionalFairness) Compute(_ context.Context, in *Inputs) (fairness.MetricResult, error) {
	groupStats := in.IntersectionalStats
	if len(groupStats) < 2 {
		return fairness.MetricResult{}, core.NewMetricError("intersectional_fairness", core.ErrTooFewGroups)
	}

	rates := selectionRates(groupStats)
	mean, _ := stats.Mean(rates)
	if mean == 0 {
		return fairness.MetricResult{}, core.NewMetricError("intersectional_fairness", core.ErrUndefinedRatio)
	}
	stdDev, _ := stats.StandardDeviation(rates)

	minRate, maxRate := rateSpread(groupStats)
	ratio := 0.0
	if maxRate > 0 {
		ratio = minRate / maxRate
	}
	diff := maxRate - minRate

	cv := stdDev / mean
	score := 1 - cv
	if score < 0 {
		score = 0
	}

	return fairness.MetricResult{
		Metric:     c.Kind(),
		Score:      score,
		Tier:       tierForScore(score),
		GroupStats: groupStats,
		Details: map[string]float64{
			"intersectional_parity_ratio":      ratio,
			"intersectional_parity_difference": diff,
			"coefficient_of_variation":         cv,
			"group_count":                      float64(len(groupStats)),
		},
		Interpretation: fmt.Sprintf(
			"%d intersectional groups; rate variation %.3f (ratio %.3f, difference %.3f)",
			len(groupStats), cv, ratio, diff),
	}, nil
}
