package reactive

import (
	"sort"
	"time"

	"github.com/goliatone/go-reactive/pkg/activity"
)

// RuleContext carries inputs needed when evaluating a guard expression.
// State is the proposed state after the update, Prev the state before it.
type RuleContext struct {
	State    map[string]any
	Prev     map[string]any
	Changed  []string
	Class    string
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.State == nil {
		ctx.State = map[string]any{}
	}
	if ctx.Prev == nil {
		ctx.Prev = map[string]any{}
	}
	if ctx.Changed == nil {
		ctx.Changed = []string{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

// bindings flattens the context into expression variables. Built-in names
// shadow fields of the same name.
func (ctx RuleContext) bindings() map[string]any {
	env := make(map[string]any, len(ctx.State)+6)
	for key, value := range ctx.State {
		env[key] = value
	}
	env["now"] = ctx.timestamp()
	env["prev"] = ctx.Prev
	env["changed"] = ctx.Changed
	env["args"] = ctx.Args
	env["metadata"] = ctx.Metadata
	env["class"] = ctx.Class
	return env
}

// fields returns the state keys bound as variables, sorted. Keys that
// collide with built-in bindings are left out.
func (ctx RuleContext) fields() []string {
	fields := make([]string, 0, len(ctx.State))
	for key := range ctx.State {
		if _, reserved := reservedBindings[key]; reserved {
			continue
		}
		fields = append(fields, key)
	}
	sort.Strings(fields)
	return fields
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

// UnknownKeyPolicy decides what Update does with keys that are not watched.
type UnknownKeyPolicy int

const (
	// IgnoreUnknown drops unknown keys; they never reach the store or the
	// updated keys.
	IgnoreUnknown UnknownKeyPolicy = iota
	// RejectUnknown fails the whole batch with an UnregisteredFieldError.
	RejectUnknown
	// AdmitUnknown stores unknown keys and reports them as changed.
	AdmitUnknown
)

func (p UnknownKeyPolicy) String() string {
	switch p {
	case IgnoreUnknown:
		return "ignore"
	case RejectUnknown:
		return "reject"
	case AdmitUnknown:
		return "admit"
	default:
		return "unknown"
	}
}

// Option configures a Module.
type Option func(*moduleConfig)

type moduleConfig struct {
	id             string
	hook           UpdateHook
	unknownKeys    UnknownKeyPolicy
	evaluator      Evaluator
	programCache   ProgramCache
	functions      *FunctionRegistry
	logger         UpdateLogger
	activityHooks  activity.Hooks
	activityConfig *activity.Config
}

func applyOptions(opts []Option) moduleConfig {
	cfg := moduleConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithID overrides the generated instance identifier.
func WithID(id string) Option {
	return func(cfg *moduleConfig) {
		cfg.id = id
	}
}

// WithUpdateHook sets the notification hook explicitly. It takes precedence
// over a ModuleDidUpdate method on the owner.
func WithUpdateHook(hook UpdateHook) Option {
	return func(cfg *moduleConfig) {
		cfg.hook = hook
	}
}

// WithUnknownKeys selects how Update treats keys that are not watched.
func WithUnknownKeys(policy UnknownKeyPolicy) Option {
	return func(cfg *moduleConfig) {
		cfg.unknownKeys = policy
	}
}

// WithEvaluator configures the evaluator used for guards.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *moduleConfig) {
		cfg.evaluator = e
	}
}

func (m *Module) updateLogger() UpdateLogger {
	if m.cfg.logger != nil {
		return m.cfg.logger
	}
	return noopUpdateLogger{}
}
