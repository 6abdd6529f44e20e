package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Validation errors (fatal: raised before any metric runs)
	ErrValidation     = errors.New("input validation failed")
	ErrEmptyInput     = fmt.Errorf("%w: no candidates supplied", ErrValidation)
	ErrLengthMismatch = fmt.Errorf("%w: array length mismatch", ErrValidation)

	// Metric errors (recovered locally per metric)
	ErrMetricComputation = errors.New("metric computation failed")
	ErrTooFewGroups      = fmt.Errorf("%w: fewer than two groups", ErrMetricComputation)
	ErrUndefinedRatio    = fmt.Errorf("%w: zero-rate denominator", ErrMetricComputation)
	ErrMissingScores     = fmt.Errorf("%w: match scores required", ErrMetricComputation)
	ErrNoSimilarPeers    = fmt.Errorf("%w: no candidate has similar peers", ErrMetricComputation)

	// Statistical test errors (recovered by substituting a test)
	ErrTestPrecondition = errors.New("statistical test precondition unmet")
	ErrLowCellCount     = fmt.Errorf("%w: expected cell count below 5", ErrTestPrecondition)
	ErrTestInconclusive = errors.New("statistical test inconclusive")

	// Resource errors
	ErrPoolTooLarge = errors.New("candidate pool exceeds similarity ceiling")
)

// Error constructors with context
func NewLengthMismatchError(field string, got, want int) error {
	return fmt.Errorf("%w: %s has %d entries, expected %d", ErrLengthMismatch, field, got, want)
}

func NewMetricError(metric string, err error) error {
	return fmt.Errorf("metric %s: %w", metric, err)
}

func NewTestPreconditionError(test string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrTestPrecondition, test, reason)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsMetricError(err error) bool {
	return errors.Is(err, ErrMetricComputation)
}

func IsTestPreconditionError(err error) bool {
	return errors.Is(err, ErrTestPrecondition)
}
