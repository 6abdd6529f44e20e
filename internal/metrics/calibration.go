package metrics

import (
	"context"
	"fmt"
	"math"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// Calibration checks agreement between the screening score and the
// observed selection rate within fixed-width score bins, per group.
// Requires every candidate to carry a match score.
type Calibration struct{}

// NewCalibration creates the calculator
func NewCalibration() *Calibration {
	return &Calibration{}
}

// Kind identifies the metric
func (c *Calibration) Kind() fairness.MetricKind {
	return fairness.MetricCalibration
}

// Compute bins each group's scores into deciles (bin count configurable),
// takes the population-weighted |bin midpoint - observed selection rate|
// per group, and scores 1 - maxGroupCalibrationError.
func (c *Calibration) Compute(_ context.Context, in *Inputs) (fairness.MetricResult, error) {
	for i, cand := range in.Candidates {
		if !cand.HasMatchScore() {
			return fairness.MetricResult{}, core.NewMetricError("calibration",
				fmt.Errorf("%w: candidate %d has none", core.ErrMissingScores, i))
		}
	}

	bins := in.ScoreBins
	if bins < 2 {
		bins = 10
	}

	result := fairness.MetricResult{
		Metric:  c.Kind(),
		Details: map[string]float64{},
	}

	maxError := 0.0
	worstGroup := ""
	computed := 0

	for _, attr := range in.AttributeOrder {
		for _, group := range in.GroupsByAttr[attr] {
			if group.Size() == 0 {
				continue
			}

			groupError := c.groupCalibrationError(group, in, bins)
			key := attr + "=" + group.Key
			result.Details[key+"_calibration_error"] = groupError

			if groupError > maxError {
				maxError = groupError
				worstGroup = key
			}
			computed++
		}
	}

	if computed == 0 {
		return fairness.MetricResult{}, core.NewMetricError("calibration", core.ErrTooFewGroups)
	}

	result.Score = 1 - maxError
	result.Tier = tierForScore(result.Score)
	result.Details["max_calibration_error"] = maxError
	result.Interpretation = fmt.Sprintf(
		"largest score-vs-outcome gap %.3f (group %s) over %d-bin analysis", maxError, worstGroup, bins)

	return result, nil
}

// groupCalibrationError is the population-weighted mean of
// |binMidpoint - selectionRateInBin| over non-empty bins.
func (c *Calibration) groupCalibrationError(group fairness.Group, in *Inputs, bins int) float64 {
	binCounts := make([]int, bins)
	binSelected := make([]int, bins)

	for _, idx := range group.Indices {
		score := *in.Candidates[idx].MatchScore
		bin := int(score * float64(bins))
		if bin >= bins {
			bin = bins - 1 // score of exactly 1.0 lands in the top bin
		}
		if bin < 0 {
			bin = 0
		}
		binCounts[bin]++
		if in.Outcomes[idx] {
			binSelected[bin]++
		}
	}

	totalError := 0.0
	totalSamples := 0
	for b := 0; b < bins; b++ {
		if binCounts[b] == 0 {
			continue
		}
		midpoint := (float64(b) + 0.5) / float64(bins)
		observedRate := float64(binSelected[b]) / float64(binCounts[b])
		totalError += math.Abs(midpoint-observedRate) * float64(binCounts[b])
		totalSamples += binCounts[b]
	}

	if totalSamples == 0 {
		return 0
	}
	return totalError / float64(totalSamples)
}
