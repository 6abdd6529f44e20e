package metrics

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// DemographicParity checks equality of selection rates across the groups
// of each protected attribute. Significance comes from the statistical
// test engine (chi-square, with the exact-test fallback inside).
type DemographicParity struct{}

// NewDemographicParity creates the calculator
func NewDemographicParity() *DemographicParity {
	return &DemographicParity{}
}

// Kind identifies the metric
func (c *DemographicParity) Kind() fairness.MetricKind {
	return fairness.MetricDemographicParity
}

// Compute evaluates parity per attribute and reports the worst case.
// The parity ratio is undefined when the highest group rate is zero.
func (c *DemographicParity) Compute(_ context.Context, in *Inputs) (fairness.MetricResult, error) {
	result := fairness.MetricResult{
		Metric:  c.Kind(),
		Tier:    fairness.TierCompliant,
		Details: map[string]float64{},
	}

	worstRatio := 1.0
	worstDiff := 0.0
	worstP := 1.0
	computed := 0
	partitioned := 0

	for _, attr := range in.AttributeOrder {
		groupStats := in.StatsByAttr[attr]
		if len(groupStats) < 2 {
			continue
		}
		partitioned++

		minRate, maxRate := rateSpread(groupStats)
		if maxRate == 0 {
			// No group selected anyone: the ratio is undefined, skip
			// rather than reporting a misleading zero.
			continue
		}

		ratio := minRate / maxRate
		diff := maxRate - minRate
		stdDev, _ := stats.StandardDeviation(selectionRates(groupStats))

		test := in.Tests.TestAttribute(attr, groupStats)
		pValue := test.PValue
		if test.Inconclusive {
			pValue = 1.0
		}

		tier := fairness.TierRequiresIntervention
		switch {
		case ratio >= 0.8 && diff <= 0.2 && pValue > in.Tests.Alpha():
			tier = fairness.TierCompliant
		case ratio >= 0.6:
			tier = fairness.TierRequiresMonitoring
		}
		result.Tier = worseTier(result.Tier, tier)

		result.Details[attr+"_parity_ratio"] = ratio
		result.Details[attr+"_parity_difference"] = diff
		result.Details[attr+"_rate_stddev"] = stdDev
		result.Details[attr+"_p_value"] = pValue
		result.GroupStats = append(result.GroupStats, prefixedStats(attr, groupStats)...)

		if ratio < worstRatio {
			worstRatio = ratio
		}
		if diff > worstDiff {
			worstDiff = diff
		}
		if pValue < worstP {
			worstP = pValue
		}
		computed++
	}

	if computed == 0 {
		if partitioned == 0 {
			return fairness.MetricResult{}, core.NewMetricError("demographic_parity", core.ErrTooFewGroups)
		}
		return fairness.MetricResult{}, core.NewMetricError("demographic_parity", core.ErrUndefinedRatio)
	}

	result.Score = worstRatio
	result.Details["parity_ratio"] = worstRatio
	result.Details["parity_difference"] = worstDiff
	result.Details["min_p_value"] = worstP
	result.Interpretation = fmt.Sprintf(
		"worst-case selection-rate ratio %.3f (difference %.3f) across %d attribute(s); min p=%.4f",
		worstRatio, worstDiff, computed, worstP)

	return result, nil
}
