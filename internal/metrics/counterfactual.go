package metrics

import (
	"context"
	"fmt"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// counterfactualNote labels the heuristic for what it is. This analysis
// substitutes similar candidates from other protected categories; it is
// not a causal model with a protected-attribute intervention.
const counterfactualNote = "similarity-based heuristic, not causal inference"

// CounterfactualFairness asks whether a candidate's outcome would likely
// differ had only their protected attribute differed, approximated by
// comparing each candidate against similar candidates from the other
// categories of the same attribute.
type CounterfactualFairness struct{}

// NewCounterfactualFairness creates the calculator
func NewCounterfactualFairness() *CounterfactualFairness {
	return &CounterfactualFairness{}
}

// Kind identifies the metric
func (c *CounterfactualFairness) Kind() fairness.MetricKind {
	return fairness.MetricCounterfactual
}

// Compute averages cross-category outcome consistency per attribute,
// then averages across attributes for the overall score.
func (c *CounterfactualFairness) Compute(_ context.Context, in *Inputs) (fairness.MetricResult, error) {
	if in.Similarity == nil {
		return fairness.MetricResult{}, core.NewMetricError("counterfactual_fairness", core.ErrPoolTooLarge)
	}

	n := in.Similarity.Size()
	threshold := in.SimilarityThreshold

	result := fairness.MetricResult{
		Metric:  c.Kind(),
		Details: map[string]float64{},
	}

	attributeScoreSum := 0.0
	attributesScored := 0
	multiCategory := 0
	var indicators []fairness.BiasIndicator

	for _, attr := range in.AttributeOrder {
		values := in.Attributes[attr]
		categories := distinctValues(values)
		if len(categories) < 2 {
			continue
		}
		multiCategory++

		consistencySum := 0.0
		comparisons := 0

		for i := 0; i < n; i++ {
			for _, alt := range categories {
				if alt == values[i] {
					continue
				}

				alternates := 0
				matching := 0
				for j := 0; j < n; j++ {
					if values[j] != alt || in.Similarity.At(i, j) < threshold {
						continue
					}
					alternates++
					if in.Outcomes[j] == in.Outcomes[i] {
						matching++
					} else if len(indicators) < maxBiasIndicators {
						indicators = append(indicators, fairness.BiasIndicator{
							CandidateA: i,
							CandidateB: j,
							Similarity: in.Similarity.At(i, j),
							Attribute:  attr,
							Description: fmt.Sprintf(
								"candidate %d (%s=%s) and similar candidate %d (%s=%s) received different outcomes",
								i, attr, values[i], j, attr, alt),
						})
					}
				}

				if alternates == 0 {
					continue
				}
				consistencySum += float64(matching) / float64(alternates)
				comparisons++
			}
		}

		if comparisons == 0 {
			continue
		}
		attrScore := consistencySum / float64(comparisons)
		result.Details[attr+"_consistency"] = attrScore
		result.Details[attr+"_comparisons"] = float64(comparisons)
		attributeScoreSum += attrScore
		attributesScored++
	}

	if attributesScored == 0 {
		if multiCategory == 0 {
			return fairness.MetricResult{}, core.NewMetricError("counterfactual_fairness", core.ErrTooFewGroups)
		}
		return fairness.MetricResult{}, core.NewMetricError("counterfactual_fairness", core.ErrNoSimilarPeers)
	}

	score := attributeScoreSum / float64(attributesScored)
	result.Score = score
	result.Tier = tierForScore(score)
	result.BiasIndicators = indicators
	result.Interpretation = fmt.Sprintf(
		"cross-category outcome consistency %.3f over %d attribute(s); %s",
		score, attributesScored, counterfactualNote)

	return result, nil
}

func distinctValues(values []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
