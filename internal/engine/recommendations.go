package engine

import (
	"fmt"

	"fairaudit/domain/fairness"
)

// recommendation thresholds per metric; a score below the threshold
// appends the matching remediation suggestion.
const (
	parityThreshold       = 0.8
	oddsThreshold         = 0.8
	calibrationThreshold  = 0.85
	individualThreshold   = 0.8
	intersectionThreshold = 0.75
)

// Recommendations inspects each metric against fixed thresholds and
// builds the remediation list. Two standing recommendations always
// close the list.
func Recommendations(results []fairness.MetricResult, compliance fairness.ComplianceTier) []string {
	var recs []string

	for _, r := range results {
		if r.Failed {
			recs = append(recs, fmt.Sprintf(
				"metric %s could not be computed (%s); review input coverage for this analysis",
				r.Metric, r.FailureReason))
			continue
		}

		switch r.Metric {
		case fairness.MetricDemographicParity:
			if r.Score < parityThreshold {
				recs = append(recs, "selection rates diverge across protected groups; review screening criteria and sourcing for the disadvantaged groups")
			}
		case fairness.MetricEqualizedOdds, fairness.MetricPredictiveEquality:
			if r.Score < oddsThreshold {
				recs = append(recs, "error-rate proxies differ across groups; collect an independent ground-truth outcome signal to confirm and localize the gap")
			}
		case fairness.MetricCalibration:
			if r.Score < calibrationThreshold {
				recs = append(recs, "screening scores are miscalibrated for at least one group; recalibrate the scoring model per group or stop using raw scores as cutoffs")
			}
		case fairness.MetricIndividualFairness:
			if r.Score < individualThreshold {
				recs = append(recs, "similar candidates received different outcomes; audit the surfaced candidate pairs for inconsistent manual decisions")
			}
		case fairness.MetricCounterfactual:
			if r.Score < individualThreshold {
				recs = append(recs, "outcomes shift with protected-attribute category among otherwise-similar candidates; investigate the surfaced pairs before the next hiring round")
			}
		case fairness.MetricIntersectional:
			if r.Score < intersectionThreshold {
				recs = append(recs, "disparities concentrate in specific attribute combinations; review outcomes for the smallest intersectional groups individually")
			}
		}
	}

	if compliance == fairness.TierRequiresIntervention {
		recs = append(recs, "pause automated screening decisions for affected groups until disparities are remediated")
	}

	// Standing recommendations, always present.
	recs = append(recs,
		"schedule regular fairness audits to track metric trends over time",
		"consider bias-mitigation strategies (blind screening, structured interviews, diverse panels)",
	)

	return recs
}
