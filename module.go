package reactive

import (
	"context"
	"time"

	"github.com/goliatone/go-reactive/pkg/activity"
	"github.com/google/uuid"
)

// UpdateHook is notified once per Update call that changed at least one
// field. prev holds every watched field as it was before the call and
// updatedKeys lists the changed fields in the order the patch named them.
type UpdateHook interface {
	ModuleDidUpdate(prev State, updatedKeys []string)
}

// UpdateHookFunc adapts a function to UpdateHook.
type UpdateHookFunc func(prev State, updatedKeys []string)

// ModuleDidUpdate implements UpdateHook.
func (f UpdateHookFunc) ModuleDidUpdate(prev State, updatedKeys []string) {
	if f != nil {
		f(prev, updatedKeys)
	}
}

// Module holds the watched state of one instance. Embed it in a struct and
// call Init from the struct's constructor:
//
//	type Counter struct {
//		reactive.Module
//	}
//
//	func NewCounter() *Counter {
//		c := &Counter{}
//		c.Init(c, counterClass, nil)
//		return c
//	}
//
// A ModuleDidUpdate method declared on the embedding struct replaces the
// no-op one promoted from Module.
//
// Module performs no locking. Callers that share an instance across
// goroutines must serialize access to it.
type Module struct {
	id      string
	class   *Class
	store   State
	fields  map[string]struct{}
	hook    UpdateHook
	guards  []string
	cfg     moduleConfig
	emitter *activity.Emitter
	ready   bool
}

// New constructs and initializes a standalone module.
func New(class *Class, src Source, opts ...Option) (*Module, error) {
	m := &Module{}
	if err := m.Init(nil, class, src, opts...); err != nil {
		return nil, err
	}
	return m, nil
}

// Init migrates the initial value of every watched field of class into the
// module's store. Values come from src first, then from class defaults, and
// are nil otherwise. owner receives update notifications when it implements
// UpdateHook; pass the embedding struct.
func (m *Module) Init(owner any, class *Class, src Source, opts ...Option) error {
	if class == nil {
		return ErrNilClass
	}
	if m.ready {
		return ErrAlreadyInitialized
	}

	cfg := applyOptions(opts)
	fields := class.Fields()
	defaults := class.registry.Defaults(class)

	store := State{
		keys:   make([]string, 0, len(fields)),
		values: make(map[string]any, len(fields)),
	}
	watched := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		value, ok := lookupSource(src, field)
		if !ok {
			value = defaults[field]
		}
		store.set(field, value)
		watched[field] = struct{}{}
	}

	m.id = cfg.id
	if m.id == "" {
		m.id = uuid.NewString()
	}
	m.class = class
	m.store = store
	m.fields = watched
	m.guards = class.registry.Guards(class)
	m.cfg = cfg
	m.hook = resolveHook(m, owner, cfg.hook)
	m.emitter = newEmitter(cfg)
	m.ready = true
	return nil
}

func resolveHook(m *Module, owner any, explicit UpdateHook) UpdateHook {
	if explicit != nil {
		return explicit
	}
	if hook, ok := owner.(UpdateHook); ok && hook != nil {
		return hook
	}
	return m
}

// ModuleDidUpdate is the default notification hook. It does nothing.
func (m *Module) ModuleDidUpdate(State, []string) {}

func (m *Module) ID() string {
	return m.id
}

func (m *Module) Class() *Class {
	return m.class
}

// Initialized reports whether Init completed.
func (m *Module) Initialized() bool {
	return m != nil && m.ready
}

// Fields returns the watched fields in store order.
func (m *Module) Fields() []string {
	return m.store.Keys()
}

// Watches reports whether field is watched by this instance.
func (m *Module) Watches(field string) bool {
	_, ok := m.fields[field]
	return ok
}

// Get returns the current value of field.
func (m *Module) Get(field string) (any, bool) {
	return m.store.Get(field)
}

// Value returns the current value of field, or nil when it is not stored.
func (m *Module) Value(field string) any {
	return m.store.Value(field)
}

// State returns a snapshot of the store. Later updates do not affect it.
func (m *Module) State() State {
	return m.store.clone()
}

// Assign always fails: watched fields change only through Update. It exists
// for callers that address fields dynamically and need the refusal as an
// error value.
func (m *Module) Assign(field string, _ any) error {
	if m.Watches(field) {
		return &DirectMutationError{Class: m.class.Name(), Field: field}
	}
	return &UnregisteredFieldError{Class: m.class.Name(), Field: field}
}

// Update applies patch with a background context.
func (m *Module) Update(patch Patch) error {
	return m.UpdateContext(context.Background(), patch)
}

// UpdateContext applies patch in one step. Fields whose proposed value is
// the Same as the current one are left alone. When at least one field
// changed, the hook runs once with the previous state and the changed keys.
// An error means nothing was applied; ctx is only handed to activity hooks.
func (m *Module) UpdateContext(ctx context.Context, patch Patch) error {
	start := time.Now()
	if !m.Initialized() {
		return ErrNotInitialized
	}

	changes := patch.normalize()
	changed, next, err := m.diff(changes)
	if err == nil && len(changed) > 0 {
		err = m.checkGuards(next, changed)
	}
	if err != nil {
		m.logUpdate(changes, nil, start, err)
		return err
	}
	if len(changed) == 0 {
		m.logUpdate(changes, nil, start, nil)
		return nil
	}

	prev := m.store.clone()
	for _, key := range changed {
		m.store.set(key, next.values[key])
	}
	for _, key := range changed {
		if _, ok := m.fields[key]; !ok {
			m.fields[key] = struct{}{}
		}
	}

	m.hook.ModuleDidUpdate(prev.clone(), append([]string{}, changed...))

	emitErr := m.emitActivity(ctx, prev, changed)
	m.logUpdate(changes, changed, start, emitErr)
	return nil
}

// diff returns the keys that would change, in patch order, and the state the
// store would hold afterwards. The store itself is untouched.
func (m *Module) diff(changes Patch) ([]string, State, error) {
	next := m.store.clone()
	changed := []string{}
	for _, change := range changes {
		if !m.Watches(change.Key) {
			switch m.cfg.unknownKeys {
			case RejectUnknown:
				return nil, State{}, &UnregisteredFieldError{Class: m.class.Name(), Field: change.Key}
			case AdmitUnknown:
			default:
				continue
			}
		}
		current, _ := next.Get(change.Key)
		if Same(current, change.Value) {
			continue
		}
		next.set(change.Key, change.Value)
		changed = append(changed, change.Key)
	}
	return changed, next, nil
}

func (m *Module) logUpdate(requested Patch, changed []string, start time.Time, err error) {
	if changed == nil {
		changed = []string{}
	}
	m.updateLogger().LogUpdate(UpdateLogEvent{
		Class:     m.class.Name(),
		Instance:  m.id,
		Requested: requested.Keys(),
		Changed:   append([]string{}, changed...),
		Duration:  time.Since(start),
		Err:       err,
	})
}
