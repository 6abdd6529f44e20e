package fairness

import (
	"time"

	"fairaudit/domain/core"
)

// CalculationVersion stamps every report with the formula revision that
// produced it. Bump when any metric or threshold changes.
const CalculationVersion = "2.1.0"

// Report is the engine's sole output: every metric result, every
// statistical test, the overall score and classification, and the
// recommendation list. Created once per invocation, never mutated.
type Report struct {
	ID                 core.ReportID  `json:"id"`
	CalculationVersion string         `json:"calculation_version"`
	GeneratedAt        core.Timestamp `json:"generated_at"`
	ProcessingTime     time.Duration  `json:"processing_time_ns"`
	Context            Context        `json:"context"`
	SampleSize         int            `json:"sample_size"`
	Attributes         []string       `json:"attributes"`
	Warnings           []string       `json:"warnings,omitempty"`
	Metrics            []MetricResult `json:"metrics"`
	StatisticalTests   TestSummary    `json:"statistical_tests"`
	OverallScore       float64        `json:"overall_fairness_score"`
	Compliance         ComplianceTier `json:"compliance_status"`
	Recommendations    []string       `json:"recommendations"`
	MethodNotes        []string       `json:"method_notes,omitempty"`
}

// Metric returns the result for one calculator, if present
func (r *Report) Metric(kind MetricKind) (MetricResult, bool) {
	for _, m := range r.Metrics {
		if m.Metric == kind {
			return m, true
		}
	}
	return MetricResult{}, false
}

// SucceededMetrics returns results that computed without a failure marker
func (r *Report) SucceededMetrics() []MetricResult {
	out := make([]MetricResult, 0, len(r.Metrics))
	for _, m := range r.Metrics {
		if !m.Failed {
			out = append(out, m)
		}
	}
	return out
}

// FailedMetrics returns results that carry an explicit failed marker
func (r *Report) FailedMetrics() []MetricResult {
	out := make([]MetricResult, 0)
	for _, m := range r.Metrics {
		if m.Failed {
			out = append(out, m)
		}
	}
	return out
}
