package reactive

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapEvaluationErrorCreatesMetadata(t *testing.T) {
	base := errors.New("boom")
	err := wrapEvaluationError("expr", "count > 0 && missing", "Counter", base)

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" {
		t.Fatalf("expected engine expr, got %q", evalErr.Engine)
	}
	if evalErr.Expr != "count > 0 && missing" {
		t.Fatalf("expected expression metadata, got %q", evalErr.Expr)
	}
	if evalErr.Class != "Counter" {
		t.Fatalf("expected class metadata, got %q", evalErr.Class)
	}
	if !errors.Is(evalErr.Err, base) {
		t.Fatalf("wrapped error should unwrap to base error")
	}
}

func TestWrapEvaluationErrorAugmentsExisting(t *testing.T) {
	base := errors.New("compile failure")
	existing := &EvaluationError{
		Engine: "expr",
		Err:    base,
	}

	err := wrapEvaluationError("cel", "rule", "Profile", existing)
	if !errors.Is(err, base) {
		t.Fatalf("expected base error to unwrap")
	}
	if existing.Engine != "expr" {
		t.Fatalf("existing engine should not be overwritten, got %q", existing.Engine)
	}
	if existing.Expr != "rule" {
		t.Fatalf("expression should be filled, got %q", existing.Expr)
	}
	if existing.Class != "Profile" {
		t.Fatalf("class should be filled, got %q", existing.Class)
	}
}

func TestWrapEvaluatorErrorKeepsPrefixedErrors(t *testing.T) {
	prefixed := errors.New("reactive: already described")
	if got := wrapEvaluatorError("expr", prefixed); got != prefixed {
		t.Fatalf("expected prefixed error to pass through, got %v", got)
	}
	got := wrapEvaluatorError("cel", errors.New("bad"))
	if !strings.HasPrefix(got.Error(), "reactive: cel evaluator:") {
		t.Fatalf("unexpected wrapped message %q", got.Error())
	}
	if wrapEvaluatorError("expr", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	var err error = &DirectMutationError{Class: "Counter", Field: "count"}
	if !errors.Is(err, ErrDirectMutation) {
		t.Fatalf("expected ErrDirectMutation, got %v", err)
	}
	if !strings.Contains(err.Error(), "not allowed. Use Update") {
		t.Fatalf("unexpected message %q", err.Error())
	}

	err = &UnregisteredFieldError{Field: "ghost"}
	if !errors.Is(err, ErrUnregisteredField) {
		t.Fatalf("expected ErrUnregisteredField, got %v", err)
	}
	if !strings.Contains(err.Error(), "<anonymous>") {
		t.Fatalf("expected anonymous class label, got %q", err.Error())
	}

	err = &GuardError{Class: "Counter", Expr: "count >= 0", Err: ErrGuardRejected}
	if !errors.Is(err, ErrGuardRejected) {
		t.Fatalf("expected ErrGuardRejected, got %v", err)
	}
}
