package reactive

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Function represents a callable exposed to guard expressions.
type Function func(args ...any) (any, error)

var reservedBindings = map[string]struct{}{
	"now":      {},
	"prev":     {},
	"changed":  {},
	"args":     {},
	"metadata": {},
	"class":    {},
	"call":     {},
}

// FunctionRegistry stores guard functions keyed by name. Names are bound as
// identifiers inside expressions, so they must be valid identifiers and must
// not shadow the built-in bindings.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
	// revision changes on every Register; clones share it until they diverge.
	revision string
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// Register stores fn under name guarding against duplicates.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("reactive: function %q is nil", name)
	}
	if !isIdentifier(name) {
		return fmt.Errorf("reactive: function name %q is not a valid identifier", name)
	}
	if _, reserved := reservedBindings[name]; reserved {
		return fmt.Errorf("reactive: function name %q is reserved", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	if _, exists := r.functions[name]; exists {
		return fmt.Errorf("reactive: function %q already registered", name)
	}
	r.functions[name] = fn
	r.revision = uuid.NewString()
	return nil
}

// Clone returns a shallow copy of the registry.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{
		functions: make(map[string]Function, len(r.functions)),
		revision:  r.revision,
	}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call executes the function registered for name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("reactive: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[name]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("reactive: function %q not registered", name)
	}
	return fn(args...)
}

func (r *FunctionRegistry) Has(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.functions[name]
	return ok
}

// cacheKey identifies the function set bound into compiled programs. It is
// empty when no functions are registered.
func (r *FunctionRegistry) cacheKey() string {
	if r == nil {
		return ""
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.functions) == 0 {
		return ""
	}
	return r.revision
}

// Names returns registered function names sorted alphabetically.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithFunctionRegistry exposes the functions in registry to guards.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *moduleConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithCustomFunction registers fn under name for the module's guards.
// Invalid names are dropped.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *moduleConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}
