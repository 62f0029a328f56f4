package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorMatchesByCode(t *testing.T) {
	err := New(CodeQuizInvalidState, "submit before start")
	target := New(CodeQuizInvalidState, "different message")

	if !stderrors.Is(err, target) {
		t.Error("expected errors with the same code to match")
	}
	if stderrors.Is(err, New(CodeNotFound, "other")) {
		t.Error("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("no such row")
	err := Wrap(CodeNotFound, "quiz missing", cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped cause to be matchable")
	}
	if err.Error() != "quiz missing" {
		t.Errorf("Error() = %q, want %q", err.Error(), "quiz missing")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(CodeSandboxInvalidTimeout, "bad timeout")); got != CodeSandboxInvalidTimeout {
		t.Errorf("GetCode = %s, want %s", got, CodeSandboxInvalidTimeout)
	}
	if got := GetCode(stderrors.New("plain")); got != CodeUnknown {
		t.Errorf("GetCode = %s, want %s", got, CodeUnknown)
	}
}

func TestWithMetadata(t *testing.T) {
	err := WithMetadata(CodeQuizMaxAttempts, "too many attempts", map[string]string{"max": "3"})
	if err.Metadata["max"] != "3" {
		t.Errorf("metadata max = %q, want %q", err.Metadata["max"], "3")
	}
	if !IsCode(err, CodeQuizMaxAttempts) {
		t.Error("expected IsCode to match")
	}
}
