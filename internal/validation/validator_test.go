package validation

import (
	"errors"
	"testing"

	"fairaudit/domain/core"
	"fairaudit/domain/fairness"
)

func pool(n int) ([]fairness.FeatureRecord, []bool, map[string][]string) {
	candidates := make([]fairness.FeatureRecord, n)
	outcomes := make([]bool, n)
	labels := make([]string, n)
	for i := range labels {
		labels[i] = []string{"a", "b"}[i%2]
	}
	return candidates, outcomes, map[string][]string{"gender": labels}
}

func TestValidate_EmptyInput(t *testing.T) {
	v := NewInputValidator(10)

	_, err := v.Validate(nil, nil, map[string][]string{})
	if !errors.Is(err, core.ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}
}

func TestValidate_OutcomeLengthMismatch(t *testing.T) {
	v := NewInputValidator(10)
	candidates, outcomes, attrs := pool(20)

	_, err := v.Validate(candidates, outcomes[:19], attrs)
	if !errors.Is(err, core.ErrLengthMismatch) {
		t.Errorf("error = %v, want ErrLengthMismatch", err)
	}
	if !core.IsValidationError(err) {
		t.Error("length mismatch should classify as a validation error")
	}
}

func TestValidate_AttributeLengthMismatch(t *testing.T) {
	v := NewInputValidator(10)
	candidates, outcomes, attrs := pool(20)
	attrs["age_band"] = []string{"18-29"}

	_, err := v.Validate(candidates, outcomes, attrs)
	if !errors.Is(err, core.ErrLengthMismatch) {
		t.Errorf("error = %v, want ErrLengthMismatch", err)
	}
}

func TestValidate_NoAttributes(t *testing.T) {
	v := NewInputValidator(10)
	candidates, outcomes, _ := pool(20)

	_, err := v.Validate(candidates, outcomes, map[string][]string{})
	if !core.IsValidationError(err) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestValidate_SmallSampleWarns(t *testing.T) {
	v := NewInputValidator(10)
	candidates, outcomes, attrs := pool(5)

	warnings, err := v.Validate(candidates, outcomes, attrs)
	if err != nil {
		t.Fatalf("small sample must not be fatal: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
}

func TestValidate_CleanInput(t *testing.T) {
	v := NewInputValidator(10)
	candidates, outcomes, attrs := pool(50)

	warnings, err := v.Validate(candidates, outcomes, attrs)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
}
