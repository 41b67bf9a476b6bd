package reactive

import (
	"errors"
	"fmt"
)

var ErrNoEvaluator = errors.New("reactive: evaluator not configured")

// Guards returns the guard expressions that apply to this instance.
func (m *Module) Guards() []string {
	return append([]string{}, m.guards...)
}

// checkGuards evaluates every guard against the proposed state. The first
// guard that does not yield true rejects the update.
func (m *Module) checkGuards(next State, changed []string) error {
	if len(m.guards) == 0 {
		return nil
	}
	evaluator, err := m.resolveEvaluator()
	if err != nil {
		return err
	}
	ctx := RuleContext{
		State:   next.Map(),
		Prev:    m.store.Map(),
		Changed: append([]string{}, changed...),
		Class:   m.class.Name(),
	}.withDefaults()

	for _, expr := range m.guards {
		result, err := evaluator.Evaluate(ctx, expr)
		if err != nil {
			err = wrapEvaluationError(evaluatorEngineName(evaluator), expr, ctx.Class, err)
			return &GuardError{Class: ctx.Class, Expr: expr, Err: err}
		}
		ok, isBool := result.(bool)
		if !isBool {
			return &GuardError{Class: ctx.Class, Expr: expr, Err: fmt.Errorf("%w: result %T is not a bool", ErrGuardRejected, result)}
		}
		if !ok {
			return &GuardError{Class: ctx.Class, Expr: expr, Err: ErrGuardRejected}
		}
	}
	return nil
}

func (m *Module) resolveEvaluator() (Evaluator, error) {
	if m.cfg.evaluator != nil {
		return m.cfg.evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if m.cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(m.cfg.programCache))
	}
	if m.cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(m.cfg.functions))
	}
	evaluator := NewExprEvaluator(exprOpts...)
	if evaluator == nil {
		return nil, ErrNoEvaluator
	}
	m.cfg.evaluator = evaluator
	return evaluator, nil
}

// evaluatorEngineName reports which built-in engine backs e.
func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch e.(type) {
	case *exprEvaluator:
		return "expr"
	case *celEvaluator:
		return "cel"
	default:
		if fmt.Sprintf("%T", e) == "*reactive.jsEvaluator" {
			return "js"
		}
		return "custom"
	}
}
