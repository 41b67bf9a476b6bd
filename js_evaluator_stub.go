//go:build !js_eval

package reactive

// NewJSEvaluator returns nil without the js_eval build tag. WithEvaluator(nil)
// leaves guards on the default expr evaluator.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	_ = applyJSEvaluatorOptions(opts)
	return nil
}

func jsEvaluatorAvailable() bool {
	return false
}
