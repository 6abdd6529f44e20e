package reportdoc

import (
	"context"
	"strings"
	"testing"

	"fairaudit/adapters/rng"
	"fairaudit/domain/fairness"
	"fairaudit/internal/config"
	"fairaudit/internal/engine"
	"fairaudit/internal/testkit"
)

func sampleReport(t *testing.T) *fairness.Report {
	t.Helper()

	pool := testkit.NewApplicantGenerator(testkit.DefaultApplicantConfig()).Generate()
	e := engine.New(config.EngineConfig{
		SimilarityThreshold: 0.8,
		SignificanceLevel:   0.05,
		PermutationCount:    100,
		SimilarityCeiling:   5000,
		SmallSampleFloor:    10,
		ScoreBins:           10,
	}, rng.NewDeterministicRNG(42), nil)

	report, err := e.ComputeReport(context.Background(), pool.Candidates, pool.Outcomes, pool.Attributes,
		fairness.Context{ProcessType: "software_engineer_hiring", PipelineStage: "screening"})
	if err != nil {
		t.Fatalf("ComputeReport failed: %v", err)
	}
	return report
}

func TestMarkdown_Sections(t *testing.T) {
	report := sampleReport(t)
	doc := NewRenderer().Markdown(report)

	for _, want := range []string{
		"# Fairness Audit Report",
		"## Overall Assessment",
		"## Metrics",
		"## Statistical Tests",
		"## Recommendations",
		"## Method Notes",
		string(report.ID),
		"demographic_parity",
		"bonferroni",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	if !strings.Contains(doc, "1. ") {
		t.Error("recommendations should be a numbered list")
	}
}

func TestMarkdown_FailedMetricRow(t *testing.T) {
	report := sampleReport(t)
	report.Metrics = []fairness.MetricResult{
		fairness.FailedMetric(fairness.MetricIndividualFairness, "candidate pool exceeds similarity ceiling"),
	}

	doc := NewRenderer().Markdown(report)
	if !strings.Contains(doc, "failed") || !strings.Contains(doc, "similarity ceiling") {
		t.Error("failed metric row should surface the failure reason")
	}
}

func TestHTML_CompletePage(t *testing.T) {
	report := sampleReport(t)
	page := string(NewRenderer().HTML(report))

	if !strings.Contains(page, "<html") {
		t.Error("HTML output is not a complete page")
	}
	if !strings.Contains(page, "<table") {
		t.Error("metrics table did not render as HTML")
	}
}
