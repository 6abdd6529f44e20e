package validation

import (
	"fmt"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

// InputValidator checks array-length consistency and sample-size adequacy
// before any metric runs. Length mismatches are fatal; a small sample only
// produces a warning that surfaces in the final report.
type InputValidator struct {
	smallSampleFloor int
}

// NewInputValidator creates a validator with the given small-sample floor
func NewInputValidator(smallSampleFloor int) *InputValidator {
	if smallSampleFloor <= 0 {
		smallSampleFloor = 10
	}
	return &InputValidator{smallSampleFloor: smallSampleFloor}
}

// Validate checks the inputs and returns non-fatal warnings.
// A returned error wraps core.ErrValidation and aborts the audit.
func (v *InputValidator) Validate(
	candidates []fairness.FeatureRecord,
	outcomes []bool,
	protectedAttributes map[string][]string,
) ([]string, error) {
	n := len(candidates)
	if n == 0 {
		return nil, core.ErrEmptyInput
	}

	if len(outcomes) != n {
		return nil, core.NewLengthMismatchError("outcomes", len(outcomes), n)
	}

	if len(protectedAttributes) == 0 {
		return nil, fmt.Errorf("%w: no protected attributes supplied", core.ErrValidation)
	}

	for name, values := range protectedAttributes {
		if len(values) != n {
			return nil, core.NewLengthMismatchError(
				fmt.Sprintf("protected attribute %q", name), len(values), n)
		}
	}

	var warnings []string
	if n < v.smallSampleFloor {
		warnings = append(warnings, fmt.Sprintf(
			"small sample: %d candidates (below %d); statistical tests have low power",
			n, v.smallSampleFloor))
	}

	return warnings, nil
}
