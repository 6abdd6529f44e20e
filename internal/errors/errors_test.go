package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestWrapPreservesCode(t *testing.T) {
	base := ConfigInvalid("threshold out of range")
	wrapped := Wrap(base, "loading configuration")

	appErr, ok := wrapped.(*AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T", wrapped)
	}
	if appErr.Code != CodeConfigInvalid {
		t.Errorf("expected code %s, got %s", CodeConfigInvalid, appErr.Code)
	}
	if !stderrors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to the original")
	}
}

func TestWrapPlainError(t *testing.T) {
	base := fmt.Errorf("connection refused")
	wrapped := Wrap(base, "connecting to database")

	appErr, ok := wrapped.(*AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T", wrapped)
	}
	if appErr.Code != CodeInternalError {
		t.Errorf("expected code %s, got %s", CodeInternalError, appErr.Code)
	}
	want := "connecting to database: connection refused"
	if wrapped.Error() != want {
		t.Errorf("expected %q, got %q", want, wrapped.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "context"); err != nil {
		t.Errorf("wrapping nil should return nil, got %v", err)
	}
}
