// Package reactive keeps the watched fields of an object in a private store
// and changes them only through batch updates that report what changed.
//
// A Class names the identity fields are registered under. Instances embed a
// Module and call Init, which copies the initial value of every watched
// field into the store:
//
//	var counterClass = reactive.DefineClass("Counter").
//		Field("count", 0).
//		Field("message", "Hello")
//
//	type Counter struct {
//		reactive.Module
//	}
//
//	func (c *Counter) ModuleDidUpdate(prev reactive.State, keys []string) {
//		// react to keys
//	}
//
// Update applies a Patch in one step. Values that are the Same as the stored
// ones are skipped; when anything changed, the hook runs once with a snapshot
// of the previous state and the changed keys in patch order. Assign exists
// only to refuse direct writes with a DirectMutationError.
//
// Optional layers:
//   - Guards: class-level expressions (expr by default, CEL or JS through
//     WithEvaluator) that must hold for the proposed state.
//   - Activity: pkg/activity hooks receive one event per changed field plus a
//     summary event per update.
//   - Class files: LoadClasses declares classes from YAML.
//   - Decode: typed views of the store through JSON tags.
package reactive
