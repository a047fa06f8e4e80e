package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	plain := Validation("Please provide a place name.", nil)
	if got := plain.Error(); got != "VALIDATION: Please provide a place name." {
		t.Errorf("unexpected message: %q", got)
	}

	cause := stderrors.New("connection refused")
	wrapped := External("language model request failed", cause)
	if got := wrapped.Error(); got != "EXTERNAL_SERVICE: language model request failed: connection refused" {
		t.Errorf("unexpected message: %q", got)
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorType
	}{
		{Validation("bad input", nil), ErrTypeValidation},
		{NotFound("missing", nil), ErrTypeNotFound},
		{Unavailable("down", nil), ErrTypeUnavailable},
		{External("upstream", nil), ErrTypeExternal},
		{MalformedResponse("garbled", nil), ErrTypeMalformedResponse},
		{Internal("oops", nil), ErrTypeInternal},
		{stderrors.New("plain"), ErrTypeInternal},
		{fmt.Errorf("wrapped: %w", NotFound("missing", nil)), ErrTypeNotFound},
	}
	for _, tc := range tests {
		if got := TypeOf(tc.err); got != tc.want {
			t.Errorf("TypeOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}

	if !IsType(Validation("bad", nil), ErrTypeValidation) {
		t.Error("IsType should match the constructor's type")
	}
	if IsType(stderrors.New("plain"), ErrTypeValidation) {
		t.Error("plain errors are not validation errors")
	}
}

func TestStackCapture(t *testing.T) {
	err := Internal("boom", nil)
	if len(err.StackTrace()) == 0 {
		t.Fatal("expected a captured stack")
	}
	if !strings.Contains(string(err.StackTrace()), "errors_test.go") {
		t.Error("stack should start at the caller")
	}
}
