package reactive

import (
	"context"
	"time"

	"github.com/goliatone/go-reactive/pkg/activity"
)

// WithActivityHooks attaches activity hooks that receive one event per
// changed field plus a summary event after every effective update. Hooks are
// cloned and nil entries dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	normalized := hooks.Clone()
	return func(cfg *moduleConfig) {
		cfg.activityHooks = normalized
	}
}

// WithActivityConfig overrides the emitter configuration. Without it,
// emission is enabled whenever hooks are attached.
func WithActivityConfig(config activity.Config) Option {
	return func(cfg *moduleConfig) {
		c := config
		cfg.activityConfig = &c
	}
}

// ActivityHooks returns a cloned slice of the activity hooks configured on
// the module.
func (m *Module) ActivityHooks() activity.Hooks {
	if m == nil {
		return nil
	}
	return m.cfg.activityHooks.Clone()
}

func newEmitter(cfg moduleConfig) *activity.Emitter {
	if len(cfg.activityHooks) == 0 {
		return nil
	}
	config := activity.Config{Enabled: true}
	if cfg.activityConfig != nil {
		config = *cfg.activityConfig
	}
	return activity.NewEmitter(cfg.activityHooks, config)
}

func (m *Module) emitActivity(ctx context.Context, prev State, changed []string) error {
	if !m.emitter.Enabled() {
		return nil
	}

	now := time.Now()
	className := m.class.Name()
	events := make([]activity.Event, 0, len(changed)+1)
	for _, key := range changed {
		events = append(events, activity.BuildFieldUpdatedEvent(activity.FieldEventInput{
			Class:       className,
			Instance:    m.id,
			Field:       key,
			OldValue:    prev.Value(key),
			NewValue:    m.store.Value(key),
			UpdatedKeys: changed,
			OccurredAt:  now,
		}))
	}
	events = append(events, activity.BuildModuleUpdatedEvent(activity.ModuleEventInput{
		Class:       className,
		Instance:    m.id,
		UpdatedKeys: changed,
		Previous:    prev.Map(),
		Current:     m.store.Map(),
		OccurredAt:  now,
	}))
	return m.emitter.EmitAll(ctx, events...)
}
