package reactive

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-reactive/pkg/activity"
)

func TestWithActivityHooksClonesAndFiltersNil(t *testing.T) {
	hook := activity.HookFunc(func(context.Context, activity.Event) error { return nil })

	m, err := New(newCounterClass(), nil, WithActivityHooks(activity.Hooks{nil, hook}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	hooks := m.ActivityHooks()
	if len(hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(hooks))
	}

	hooks[0] = nil
	again := m.ActivityHooks()
	if len(again) != 1 || again[0] == nil {
		t.Fatalf("expected cloned hooks unaffected by mutation, got %+v", again)
	}
}

func TestActivityHooksDefaultNil(t *testing.T) {
	m, err := New(newCounterClass(), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if hooks := m.ActivityHooks(); hooks != nil {
		t.Fatalf("expected nil hooks by default, got %+v", hooks)
	}
}

func TestUpdateEmitsFieldAndModuleEvents(t *testing.T) {
	capture := &activity.CaptureHook{}
	m, err := New(newCounterClass(), nil,
		WithID("counter-1"),
		WithActivityHooks(activity.Hooks{capture}),
		WithActivityConfig(activity.Config{Enabled: true, ActorID: "user-1", TenantID: "tenant-1"}),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := m.Update(Patch{}.Set("message", "World").Set("count", 5)); err != nil {
		t.Fatalf("update: %v", err)
	}

	want := []string{activity.VerbFieldUpdated, activity.VerbFieldUpdated, activity.VerbModuleUpdated}
	if got := capture.Verbs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected verbs %v", got)
	}

	first := capture.Events[0]
	if first.ObjectID != "Counter.message" || first.ObjectType != activity.ObjectTypeField {
		t.Fatalf("unexpected field event %+v", first)
	}
	if first.Metadata["old_value"] != "Hello" || first.Metadata["new_value"] != "World" {
		t.Fatalf("unexpected field metadata %+v", first.Metadata)
	}
	if first.ActorID != "user-1" || first.TenantID != "tenant-1" || first.Channel != activity.DefaultChannel {
		t.Fatalf("expected emitter defaults applied, got %+v", first)
	}

	summary := capture.Events[2]
	if summary.ObjectID != "counter-1" {
		t.Fatalf("expected instance id on summary, got %q", summary.ObjectID)
	}
	if keys, _ := summary.Metadata["updated_keys"].([]string); !reflect.DeepEqual(keys, []string{"message", "count"}) {
		t.Fatalf("unexpected updated keys %v", summary.Metadata["updated_keys"])
	}

	capture.Reset()
	if err := m.Update(Patch{}.Set("count", 5)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("no-op update must not emit, got %d events", len(capture.Events))
	}
}

func TestActivityDisabledByConfig(t *testing.T) {
	capture := &activity.CaptureHook{}
	m, err := New(newCounterClass(), nil,
		WithActivityHooks(activity.Hooks{capture}),
		WithActivityConfig(activity.Config{Enabled: false}),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := m.Update(Patch{}.Set("count", 1)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events, got %d", len(capture.Events))
	}
}

func TestActivityFailureIsLoggedNotReturned(t *testing.T) {
	hookErr := errors.New("sink down")
	capture := &activity.CaptureHook{Err: hookErr}
	var logged []UpdateLogEvent

	m, err := New(newCounterClass(), nil,
		WithActivityHooks(activity.Hooks{capture}),
		WithUpdateLogger(UpdateLoggerFunc(func(event UpdateLogEvent) {
			logged = append(logged, event)
		})),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if err := m.Update(Patch{}.Set("count", 2)); err != nil {
		t.Fatalf("activity failure must not fail the update, got %v", err)
	}
	if m.Value("count") != 2 {
		t.Fatalf("expected update applied, got %v", m.Value("count"))
	}
	if len(logged) != 1 || !errors.Is(logged[0].Err, hookErr) {
		t.Fatalf("expected hook error in log event, got %+v", logged)
	}
}

func TestUpdateLoggerReceivesEveryCall(t *testing.T) {
	var logged []UpdateLogEvent
	m, err := New(newCounterClass(), nil,
		WithUnknownKeys(RejectUnknown),
		WithUpdateLogger(UpdateLoggerFunc(func(event UpdateLogEvent) {
			logged = append(logged, event)
		})),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	_ = m.Update(Patch{}.Set("count", 1).Set("count", 2))
	_ = m.Update(Patch{}.Set("count", 2))
	_ = m.Update(Patch{}.Set("ghost", 1))

	if len(logged) != 3 {
		t.Fatalf("expected 3 log events, got %d", len(logged))
	}
	if !reflect.DeepEqual(logged[0].Requested, []string{"count"}) || !reflect.DeepEqual(logged[0].Changed, []string{"count"}) {
		t.Fatalf("unexpected first event %+v", logged[0])
	}
	if len(logged[1].Changed) != 0 || logged[1].Err != nil {
		t.Fatalf("expected silent no-op event, got %+v", logged[1])
	}
	if !errors.Is(logged[2].Err, ErrUnregisteredField) {
		t.Fatalf("expected rejection logged, got %+v", logged[2])
	}
	if logged[0].Class != "Counter" || logged[0].Instance != m.ID() {
		t.Fatalf("unexpected identity %+v", logged[0])
	}
}

func TestWithUpdateLoggerNilFallsBackToNoop(t *testing.T) {
	m, err := New(newCounterClass(), nil, WithUpdateLogger(nil))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := m.Update(Patch{}.Set("count", 1)); err != nil {
		t.Fatalf("update: %v", err)
	}
}
