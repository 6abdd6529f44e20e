package engine

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"fairaudit/adapters/stats/inference"
	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
	"fairaudit/internal"
	"fairaudit/internal/config"
	"fairaudit/internal/metrics"
	"fairaudit/internal/partition"
	"fairaudit/internal/similarity"
	"fairaudit/internal/validation"
	"fairaudit/ports"
)

// Engine is the fairness-metrics computation engine: one dependency-
// injected value constructed with its configuration, exposing a single
// pure entry point. No global mutable state, no I/O, nothing retained
// across invocations.
type Engine struct {
	cfg         config.EngineConfig
	validator   *validation.InputValidator
	partitioner *partition.Partitioner
	similarity  *similarity.Engine
	tests       *inference.Engine
	logger      *internal.Logger
}

// New wires the engine from its configuration and RNG port
func New(cfg config.EngineConfig, rng ports.RNGPort, logger *internal.Logger) *Engine {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Engine{
		cfg:         cfg,
		validator:   validation.NewInputValidator(cfg.SmallSampleFloor),
		partitioner: partition.NewPartitioner(),
		similarity:  similarity.NewEngine(similarity.DefaultWeights(), cfg.SimilarityCeiling),
		tests:       inference.NewEngine(cfg.SignificanceLevel, cfg.PermutationCount, rng),
		logger:      logger,
	}
}

// ComputeReport audits one candidate pool and returns the immutable
// report. Validation failures abort before any metric runs; individual
// metric failures are recovered into explicit failed markers and the
// rest of the report still computes.
func (e *Engine) ComputeReport(
	ctx context.Context,
	candidates []fairness.FeatureRecord,
	outcomes []bool,
	protectedAttributes map[string][]string,
	auditContext fairness.Context,
) (*fairness.Report, error) {
	start := time.Now()

	warnings, err := e.validator.Validate(candidates, outcomes, protectedAttributes)
	if err != nil {
		return nil, err
	}

	attributeOrder := partition.SortedAttributeNames(protectedAttributes)

	groupsByAttr := make(map[string][]fairness.Group, len(attributeOrder))
	statsByAttr := make(map[string][]fairness.GroupStats, len(attributeOrder))
	for _, attr := range attributeOrder {
		groups := e.partitioner.ByAttribute(protectedAttributes[attr])
		groupsByAttr[attr] = groups
		statsByAttr[attr] = partition.GroupOutcomeStats(groups, outcomes)
	}

	intersectional := e.partitioner.Intersectional(attributeOrder, protectedAttributes)
	intersectionalStats := partition.GroupOutcomeStats(intersectional, outcomes)

	// The similarity matrix is O(n^2); above the configured ceiling we
	// skip it and let the similarity-based metrics fail explicitly
	// rather than exhausting memory.
	matrix, err := e.similarity.BuildMatrix(ctx, candidates)
	if err != nil {
		if !errors.Is(err, core.ErrPoolTooLarge) {
			return nil, err
		}
		e.logger.Warn("[Engine] %v; similarity-based metrics will be skipped", err)
		warnings = append(warnings, err.Error())
		matrix = nil
	}

	testSummary := e.tests.TestAllAttributes(ctx, protectedAttributes, outcomes, statsByAttr)

	inputs := &metrics.Inputs{
		Candidates:           candidates,
		Outcomes:             outcomes,
		Attributes:           protectedAttributes,
		AttributeOrder:       attributeOrder,
		GroupsByAttr:         groupsByAttr,
		StatsByAttr:          statsByAttr,
		IntersectionalGroups: intersectional,
		IntersectionalStats:  intersectionalStats,
		Similarity:           matrix,
		SimilarityThreshold:  e.cfg.SimilarityThreshold,
		ScoreBins:            e.cfg.ScoreBins,
		Tests:                e.tests,
	}

	metricResults := e.runCalculators(ctx, inputs)

	overallScore, compliance := Aggregate(metricResults, testSummary)
	recommendations := Recommendations(metricResults, compliance)

	report := &fairness.Report{
		ID:                 core.ReportID(core.NewID()),
		CalculationVersion: fairness.CalculationVersion,
		GeneratedAt:        core.Now(),
		ProcessingTime:     time.Since(start),
		Context:            auditContext,
		SampleSize:         len(candidates),
		Attributes:         attributeOrder,
		Warnings:           warnings,
		Metrics:            metricResults,
		StatisticalTests:   testSummary,
		OverallScore:       overallScore,
		Compliance:         compliance,
		Recommendations:    recommendations,
		MethodNotes:        methodNotes(),
	}

	e.logger.Info("[Engine] audit complete: n=%d score=%.3f compliance=%s in %s",
		len(candidates), overallScore, compliance, report.ProcessingTime)

	return report, nil
}

// runCalculators fans the seven independent calculators out in parallel.
// Each receives read-only inputs and writes only its own result slot, so
// no locking is needed. A calculator error becomes an explicit failed
// marker, never an aborted audit.
func (e *Engine) runCalculators(ctx context.Context, inputs *metrics.Inputs) []fairness.MetricResult {
	calculators := metrics.All()
	results := make([]fairness.MetricResult, len(calculators))

	g, ctx := errgroup.WithContext(ctx)
	for i, calc := range calculators {
		slot, calc := i, calc
		g.Go(func() error {
			result, err := calc.Compute(ctx, inputs)
			if err != nil {
				e.logger.Warn("[Engine] metric %s failed: %v", calc.Kind(), err)
				results[slot] = fairness.FailedMetric(calc.Kind(), err.Error())
				return nil
			}
			e.logger.Debug("[Engine] metric %s score=%.3f tier=%s", calc.Kind(), result.Score, result.Tier)
			results[slot] = result
			return nil
		})
	}
	// Calculators recover their own failures; Wait cannot return an error here.
	_ = g.Wait()

	return results
}

// methodNotes documents the engine's known approximations in every report
func methodNotes() []string {
	return []string{
		"equalized odds and predictive equality use the selection decision as a proxy for both prediction and ground truth; supply an independent outcome signal for the textbook metrics",
		"counterfactual fairness is a similarity-based heuristic over the empirical pool, not causal inference",
	}
}
