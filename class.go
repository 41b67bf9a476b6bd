package reactive

import "fmt"

// Class is the identity token watched fields are registered under. Two
// classes never share registrations, even when their names match.
type Class struct {
	name     string
	parent   *Class
	registry *Registry
}

// ClassOption configures a class at definition time.
type ClassOption func(*classConfig)

type classConfig struct {
	parent   *Class
	registry *Registry
}

// Extends makes the new class inherit the watched fields, defaults and guards
// of parent.
func Extends(parent *Class) ClassOption {
	return func(cfg *classConfig) {
		cfg.parent = parent
	}
}

// WithRegistry registers the class in registry instead of Default().
func WithRegistry(registry *Registry) ClassOption {
	return func(cfg *classConfig) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// DefineClass creates a new class identity. Fields are declared on the
// returned value:
//
//	var counterClass = reactive.DefineClass("Counter").
//		Field("count", 0).
//		Field("message", "Hello")
func DefineClass(name string, opts ...ClassOption) *Class {
	cfg := classConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	registry := cfg.registry
	if registry == nil && cfg.parent != nil {
		registry = cfg.parent.registry
	}
	if registry == nil {
		registry = Default()
	}
	return &Class{
		name:     name,
		parent:   cfg.parent,
		registry: registry,
	}
}

// Watch registers fields as watched. It panics on invalid names since
// declarations run at package initialization.
func (c *Class) Watch(fields ...string) *Class {
	for _, field := range fields {
		if err := c.registry.Register(c, field); err != nil {
			panic(fmt.Sprintf("reactive: class %s: %v", describeClassName(c.name), err))
		}
	}
	return c
}

// Field registers a watched field with the initial value instances start
// from when their source does not set it.
func (c *Class) Field(name string, initial any) *Class {
	if err := c.registry.SetDefault(c, name, initial); err != nil {
		panic(fmt.Sprintf("reactive: class %s: %v", describeClassName(c.name), err))
	}
	return c
}

// Guard adds expressions that every accepted update must satisfy. Watched
// fields are bound by name next to now, prev, changed, args, metadata and
// class; field names that would collide with those are refused at
// registration.
func (c *Class) Guard(exprs ...string) *Class {
	for _, expr := range exprs {
		if err := c.registry.RegisterGuard(c, expr); err != nil {
			panic(fmt.Sprintf("reactive: class %s: %v", describeClassName(c.name), err))
		}
	}
	return c
}

func (c *Class) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

func (c *Class) Parent() *Class {
	if c == nil {
		return nil
	}
	return c.parent
}

func (c *Class) Registry() *Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Fields returns the watched fields of the class including inherited ones.
func (c *Class) Fields() []string {
	if c == nil {
		return []string{}
	}
	return c.registry.Resolve(c)
}

// Watches reports whether field is watched on the class or an ancestor.
func (c *Class) Watches(field string) bool {
	for _, name := range c.Fields() {
		if name == field {
			return true
		}
	}
	return false
}

// IsA reports whether c is other or descends from it.
func (c *Class) IsA(other *Class) bool {
	for cur := c; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

func (c *Class) String() string {
	return describeClassName(c.Name())
}

// lineage returns the chain from the root ancestor down to c.
func (c *Class) lineage() []*Class {
	var chain []*Class
	for cur := c; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
