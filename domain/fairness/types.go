package fairness

import (
	"fmt"
	"strings"
)

// ============================================================================
// CANDIDATE FEATURES
// ============================================================================

// EducationLevel is an ordered categorical education ranking
type EducationLevel int

const (
	EducationUnknown EducationLevel = iota
	EducationHighSchool
	EducationAssociate
	EducationBachelor
	EducationMaster
	EducationDoctorate
)

// educationLabels maps levels to their canonical names
var educationLabels = map[EducationLevel]string{
	EducationUnknown:    "unknown",
	EducationHighSchool: "high_school",
	EducationAssociate:  "associate",
	EducationBachelor:   "bachelor",
	EducationMaster:     "master",
	EducationDoctorate:  "doctorate",
}

// String returns the canonical label for the level
func (e EducationLevel) String() string {
	if label, ok := educationLabels[e]; ok {
		return label
	}
	return "unknown"
}

// ParseEducationLevel maps a free-form label to an EducationLevel
func ParseEducationLevel(s string) EducationLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high_school", "high school", "highschool", "secondary":
		return EducationHighSchool
	case "associate", "associates":
		return EducationAssociate
	case "bachelor", "bachelors", "bsc", "ba", "bs":
		return EducationBachelor
	case "master", "masters", "msc", "ma", "ms", "mba":
		return EducationMaster
	case "doctorate", "phd", "doctoral":
		return EducationDoctorate
	default:
		return EducationUnknown
	}
}

// MaxEducationDistance is the widest possible ordinal gap between two levels
const MaxEducationDistance = float64(EducationDoctorate - EducationUnknown)

// FeatureRecord is one candidate's anonymized feature bag.
// Immutable by convention: constructed by the caller, never modified here.
type FeatureRecord struct {
	Skills          []string       `json:"skills"`
	ExperienceYears float64        `json:"experience_years"`
	Education       EducationLevel `json:"education"`

	// MatchScore is an optional screening score in [0,1]. Required for
	// calibration analysis; nil when the upstream pipeline produced none.
	MatchScore *float64 `json:"match_score,omitempty"`

	// Extra carries attributes no calculator interprets. Passed through
	// untouched so callers can round-trip provenance fields.
	Extra map[string]interface{} `json:"extra,omitempty"`
}

// HasMatchScore reports whether a screening score is present
func (r FeatureRecord) HasMatchScore() bool {
	return r.MatchScore != nil
}

// ============================================================================
// GROUPS
// ============================================================================

// CompositeKeySeparator joins attribute values into an intersectional group key
const CompositeKeySeparator = "|"

// Group is one cell of a partition: a key plus the candidate indices in it.
// Constructed fresh per invocation, never mutated after construction.
type Group struct {
	Key     string `json:"key"`
	Indices []int  `json:"indices"`
}

// Size returns the number of candidates in the group
func (g Group) Size() int {
	return len(g.Indices)
}

// GroupStats summarizes outcomes within one group
type GroupStats struct {
	Key           string  `json:"key"`
	Size          int     `json:"size"`
	Selected      int     `json:"selected"`
	SelectionRate float64 `json:"selection_rate"`
	RejectionRate float64 `json:"rejection_rate"`
}

// ============================================================================
// COMPLIANCE
// ============================================================================

// ComplianceTier classifies a metric or report outcome
type ComplianceTier string

const (
	TierCompliant            ComplianceTier = "compliant"
	TierRequiresMonitoring   ComplianceTier = "requires_monitoring"
	TierRequiresIntervention ComplianceTier = "requires_intervention"
)

// MetricKind identifies one of the fairness metric calculators
type MetricKind string

const (
	MetricDemographicParity  MetricKind = "demographic_parity"
	MetricEqualizedOdds      MetricKind = "equalized_odds"
	MetricPredictiveEquality MetricKind = "predictive_equality"
	MetricCalibration        MetricKind = "calibration"
	MetricIndividualFairness MetricKind = "individual_fairness"
	MetricCounterfactual     MetricKind = "counterfactual_fairness"
	MetricIntersectional     MetricKind = "intersectional_fairness"
)

// AllMetricKinds lists every calculator in report order
func AllMetricKinds() []MetricKind {
	return []MetricKind{
		MetricDemographicParity,
		MetricEqualizedOdds,
		MetricPredictiveEquality,
		MetricCalibration,
		MetricIndividualFairness,
		MetricCounterfactual,
		MetricIntersectional,
	}
}

// ============================================================================
// RESULTS
// ============================================================================

// BiasIndicator surfaces a concrete pair of similar candidates whose
// outcomes diverged. Evidence for individual/counterfactual findings.
type BiasIndicator struct {
	CandidateA  int     `json:"candidate_a"`
	CandidateB  int     `json:"candidate_b"`
	Similarity  float64 `json:"similarity"`
	Attribute   string  `json:"attribute,omitempty"`
	Description string  `json:"description"`
}

// MetricResult is the structured output of one calculator.
// A failed metric carries Failed=true and a reason instead of values;
// failed metrics are excluded from aggregation, never treated as zero.
type MetricResult struct {
	Metric         MetricKind         `json:"metric"`
	Score          float64            `json:"score"`
	Tier           ComplianceTier     `json:"tier,omitempty"`
	GroupStats     []GroupStats       `json:"group_stats,omitempty"`
	Details        map[string]float64 `json:"details,omitempty"`
	Interpretation string             `json:"interpretation,omitempty"`
	BiasIndicators []BiasIndicator    `json:"bias_indicators,omitempty"`
	Failed         bool               `json:"failed"`
	FailureReason  string             `json:"failure_reason,omitempty"`
}

// FailedMetric builds the explicit failed marker for a calculator
func FailedMetric(kind MetricKind, reason string) MetricResult {
	return MetricResult{
		Metric:        kind,
		Failed:        true,
		FailureReason: reason,
	}
}

// StatisticalTestResult reports one hypothesis test
type StatisticalTestResult struct {
	TestName         string  `json:"test_name"`
	Attribute        string  `json:"attribute"`
	Statistic        float64 `json:"statistic"`
	PValue           float64 `json:"p_value"`
	DegreesOfFreedom float64 `json:"degrees_of_freedom,omitempty"`
	Iterations       int     `json:"iterations,omitempty"`
	Inconclusive     bool    `json:"inconclusive,omitempty"`
	Note             string  `json:"note,omitempty"`
}

// TestSummary aggregates all per-attribute hypothesis tests with the
// Bonferroni-corrected significance decision.
type TestSummary struct {
	Results            []StatisticalTestResult `json:"results"`
	Alpha              float64                 `json:"alpha"`
	CorrectedAlpha     float64                 `json:"corrected_alpha"`
	CorrectionMethod   string                  `json:"correction_method"`
	OverallSignificant bool                    `json:"overall_significant"`
}

// ============================================================================
// CONTEXT
// ============================================================================

// Context carries provenance for one audit invocation. Passed through
// untouched into the report; the engine never interprets it.
type Context struct {
	ProcessType   string                 `json:"process_type"`
	PipelineStage string                 `json:"pipeline_stage"`
	WindowStart   string                 `json:"window_start,omitempty"`
	WindowEnd     string                 `json:"window_end,omitempty"`
	ScopeFilters  map[string]string      `json:"scope_filters,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// Validate checks the minimal context fields
func (c Context) Validate() error {
	if strings.TrimSpace(c.ProcessType) == "" {
		return fmt.Errorf("context process_type cannot be empty")
	}
	return nil
}
