package metrics

import (
	"context"
	"fmt"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// maxBiasIndicators caps how many divergent similar pairs a result surfaces
const maxBiasIndicators = 20

// IndividualFairness checks that similar candidates received similar
// outcomes: for each candidate, the fraction of its similar peers
// (similarity >= threshold) sharing its outcome.
type IndividualFairness struct{}

// NewIndividualFairness creates the calculator
func NewIndividualFairness() *IndividualFairness {
	return &IndividualFairness{}
}

// Kind identifies the metric
func (c *IndividualFairness) Kind() fairness.MetricKind {
	return fairness.MetricIndividualFairness
}

// Compute averages per-candidate consistency over candidates with at
// least one similar peer. Candidates with no peers are excluded and
// counted separately.
func (c *IndividualFairness) Compute(_ context.Context, in *Inputs) (fairness.MetricResult, error) {
	if in.Similarity == nil {
		return fairness.MetricResult{}, core.NewMetricError("individual_fairness", core.ErrPoolTooLarge)
	}

	n := in.Similarity.Size()
	threshold := in.SimilarityThreshold

	totalConsistency := 0.0
	withPeers := 0
	withoutPeers := 0
	var indicators []fairness.BiasIndicator

	for i := 0; i < n; i++ {
		peers := 0
		matching := 0
		for j := 0; j < n; j++ {
			if j == i || in.Similarity.At(i, j) < threshold {
				continue
			}
			peers++
			if in.Outcomes[j] == in.Outcomes[i] {
				matching++
			} else if j > i && len(indicators) < maxBiasIndicators {
				indicators = append(indicators, fairness.BiasIndicator{
					CandidateA: i,
					CandidateB: j,
					Similarity: in.Similarity.At(i, j),
					Description: fmt.Sprintf(
						"candidates %d and %d are %.0f%% similar but received different outcomes",
						i, j, in.Similarity.At(i, j)*100),
				})
			}
		}

		if peers == 0 {
			withoutPeers++
			continue
		}
		totalConsistency += float64(matching) / float64(peers)
		withPeers++
	}

	if withPeers == 0 {
		return fairness.MetricResult{}, core.NewMetricError("individual_fairness", core.ErrNoSimilarPeers)
	}

	score := totalConsistency / float64(withPeers)
	return fairness.MetricResult{
		Metric: c.Kind(),
		Score:  score,
		Tier:   tierForScore(score),
		Details: map[string]float64{
			"candidates_with_peers":    float64(withPeers),
			"candidates_without_peers": float64(withoutPeers),
			"similarity_threshold":     threshold,
		},
		BiasIndicators: indicators,
		Interpretation: fmt.Sprintf(
			"mean outcome consistency %.3f across %d candidates with similar peers (%d had none)",
			score, withPeers, withoutPeers),
	}, nil
}
