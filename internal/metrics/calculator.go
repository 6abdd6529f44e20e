package metrics

import (
	"context"

	"fairaudit/adapters/stats/inference"
	"fairaudit/domain/fairness"
	"fairaudit/internal/similarity"
)

// Inputs is the read-only bundle every calculator receives. Partitions
// and the similarity matrix are built once by the engine and shared;
// calculators never mutate them.
type Inputs struct {
	Candidates     []fairness.FeatureRecord
	Outcomes       []bool
	Attributes     map[string][]string
	AttributeOrder []string

	GroupsByAttr map[string][]fairness.Group
	StatsByAttr  map[string][]fairness.GroupStats

	IntersectionalGroups []fairness.Group
	IntersectionalStats  []fairness.GroupStats

	// Similarity is nil when the pool exceeded the configured ceiling;
	// similarity-based calculators must fail explicitly in that case.
	Similarity          *similarity.Matrix
	SimilarityThreshold float64

	ScoreBins int

	Tests *inference.Engine
}

// Calculator computes one fairness metric. Implementations are pure:
// an error means the metric's preconditions were unmet and the engine
// records an explicit failed marker in its place.
type Calculator interface {
	Kind() fairness.MetricKind
	Compute(ctx context.Context, in *Inputs) (fairness.MetricResult, error)
}

// All returns every calculator in report order
func All() []Calculator {
	return []Calculator{
		NewDemographicParity(),
		NewEqualizedOdds(),
		NewPredictiveEquality(),
		NewCalibration(),
		NewIndividualFairness(),
		NewCounterfactualFairness(),
		NewIntersectionalFairness(),
	}
}

// tierForScore maps a [0,1] metric score onto the standard tiers
func tierForScore(score float64) fairness.ComplianceTier {
	switch {
	case score >= 0.8:
		return fairness.TierCompliant
	case score >= 0.6:
		return fairness.TierRequiresMonitoring
	default:
		return fairness.TierRequiresIntervention
	}
}

// worseTier returns the more severe of two tiers
func worseTier(a, b fairness.ComplianceTier) fairness.ComplianceTier {
	rank := map[fairness.ComplianceTier]int{
		fairness.TierCompliant:            0,
		fairness.TierRequiresMonitoring:   1,
		fairness.TierRequiresIntervention: 2,
	}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// prefixedStats copies group stats with the attribute name folded into
// the key, so multi-attribute results stay distinguishable.
func prefixedStats(attribute string, stats []fairness.GroupStats) []fairness.GroupStats {
	out := make([]fairness.GroupStats, len(stats))
	for i, s := range stats {
		s.Key = attribute + "=" + s.Key
		out[i] = s
	}
	return out
}

// rateSpread returns the min and max selection rates across groups
func rateSpread(stats []fairness.GroupStats) (minRate, maxRate float64) {
	for i, s := range stats {
		if i == 0 {
			minRate, maxRate = s.SelectionRate, s.SelectionRate
			continue
		}
		if s.SelectionRate < minRate {
			minRate = s.SelectionRate
		}
		if s.SelectionRate > maxRate {
			maxRate = s.SelectionRate
		}
	}
	return minRate, maxRate
}

// selectionRates extracts the rate vector from group stats
func selectionRates(stats []fairness.GroupStats) []float64 {
	rates := make([]float64, len(stats))
	for i, s := range stats {
		rates[i] = s.SelectionRate
	}
	return rates
}
