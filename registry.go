package reactive

import (
	"fmt"
	"sync"
	"unicode"
)

// Registry records, per class, which field names are watched. Entries are
// append-only and live as long as the registry.
type Registry struct {
	mu       sync.RWMutex
	fields   map[*Class][]string
	defaults map[*Class]map[string]any
	guards   map[*Class][]string
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by DefineClass.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		fields:   make(map[*Class][]string),
		defaults: make(map[*Class]map[string]any),
		guards:   make(map[*Class][]string),
	}
}

// Register appends field to the ordered list for class. Declaring the same
// field twice keeps both entries; Resolve collapses them.
func (r *Registry) Register(class *Class, field string) error {
	if class == nil {
		return ErrNilClass
	}
	if err := validateFieldName(field); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure()
	r.fields[class] = append(r.fields[class], field)
	return nil
}

// SetDefault registers field on class together with the value instances
// start from when their source does not provide one.
func (r *Registry) SetDefault(class *Class, field string, value any) error {
	if err := r.Register(class, field); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.defaults[class] == nil {
		r.defaults[class] = make(map[string]any)
	}
	r.defaults[class][field] = value
	return nil
}

// RegisterGuard attaches a guard expression to class.
func (r *Registry) RegisterGuard(class *Class, expr string) error {
	if class == nil {
		return ErrNilClass
	}
	if expr == "" {
		return fmt.Errorf("reactive: guard expression must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure()
	r.guards[class] = append(r.guards[class], expr)
	return nil
}

// Lookup returns the fields registered for exactly class, in declaration
// order. It returns an empty slice when nothing was registered.
func (r *Registry) Lookup(class *Class) []string {
	if r == nil || class == nil {
		return []string{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.fields[class]...)
}

// Resolve returns the fields visible on instances of class: ancestors first,
// then the class itself, each name once.
func (r *Registry) Resolve(class *Class) []string {
	if r == nil || class == nil {
		return []string{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	out := []string{}
	for _, c := range class.lineage() {
		for _, field := range r.fields[c] {
			if _, ok := seen[field]; ok {
				continue
			}
			seen[field] = struct{}{}
			out = append(out, field)
		}
	}
	return out
}

// Defaults returns the default values visible on class. Closer classes win
// over their ancestors.
func (r *Registry) Defaults(class *Class) map[string]any {
	out := map[string]any{}
	if r == nil || class == nil {
		return out
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range class.lineage() {
		for field, value := range r.defaults[c] {
			out[field] = value
		}
	}
	return out
}

// Guards returns the guard expressions for class including inherited ones.
func (r *Registry) Guards(class *Class) []string {
	if r == nil || class == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, c := range class.lineage() {
		out = append(out, r.guards[c]...)
	}
	return out
}

// Classes returns every class that has at least one registered field.
func (r *Registry) Classes() []*Class {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	classes := make([]*Class, 0, len(r.fields))
	for class := range r.fields {
		classes = append(classes, class)
	}
	return classes
}

func (r *Registry) ensure() {
	if r.fields == nil {
		r.fields = make(map[*Class][]string)
	}
	if r.defaults == nil {
		r.defaults = make(map[*Class]map[string]any)
	}
	if r.guards == nil {
		r.guards = make(map[*Class][]string)
	}
}

// guardKeywords cannot be read as variables by at least one guard engine.
var guardKeywords = map[string]struct{}{
	"true": {}, "false": {}, "null": {}, "nil": {},
	"in": {}, "not": {}, "and": {}, "or": {}, "let": {},
	"matches": {}, "contains": {}, "startsWith": {}, "endsWith": {},
	"as": {}, "break": {}, "const": {}, "continue": {}, "else": {},
	"for": {}, "function": {}, "if": {}, "import": {}, "loop": {},
	"package": {}, "namespace": {}, "return": {}, "var": {}, "void": {},
	"while": {},
}

// validateFieldName rejects names that are not identifiers, that guard
// bindings (now, prev, changed, ...) would shadow, or that guard engines
// parse as keywords.
func validateFieldName(name string) error {
	if !isIdentifier(name) {
		return fmt.Errorf("reactive: field name %q is not a valid identifier", name)
	}
	if _, reserved := reservedBindings[name]; reserved {
		return fmt.Errorf("reactive: field name %q is reserved for guard bindings", name)
	}
	if _, keyword := guardKeywords[name]; keyword {
		return fmt.Errorf("reactive: field name %q is a guard keyword", name)
	}
	return nil
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
