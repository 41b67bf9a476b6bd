package reactive

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const counterClassFile = `
classes:
  - name: Entity
    fields: [id]
    defaults:
      id: none
  - name: Counter
    extends: Entity
    fields: [count, message]
    defaults:
      count: 0
      message: Hello
      step: 1
    guards:
      - count >= 0
`

func TestLoadClasses(t *testing.T) {
	registry := NewRegistry()
	classes, err := LoadClasses([]byte(counterClassFile), WithRegistry(registry))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	counter := classes["Counter"]
	if counter == nil {
		t.Fatalf("expected Counter class, got %v", classes)
	}
	if counter.Parent() != classes["Entity"] {
		t.Fatalf("expected Counter to extend Entity")
	}
	if got := counter.Fields(); !reflect.DeepEqual(got, []string{"id", "count", "message", "step"}) {
		t.Fatalf("unexpected fields %v", got)
	}

	m, err := New(counter, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if m.Value("count") != 0 || m.Value("message") != "Hello" || m.Value("id") != "none" || m.Value("step") != 1 {
		t.Fatalf("unexpected initial state %v", m.State().Map())
	}
	if err := m.Update(Patch{}.Set("count", -1)); !errors.Is(err, ErrGuardRejected) {
		t.Fatalf("expected guard from class file, got %v", err)
	}
}

func TestLoadClassesValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "missing name",
			data: "classes:\n  - fields: [a]\n",
			want: "has no name",
		},
		{
			name: "duplicate",
			data: "classes:\n  - name: A\n  - name: A\n",
			want: "declared twice",
		},
		{
			name: "forward parent",
			data: "classes:\n  - name: B\n    extends: A\n  - name: A\n",
			want: "not declared before it",
		},
		{
			name: "invalid field",
			data: "classes:\n  - name: A\n    fields: [\"bad name\"]\n",
			want: "not a valid identifier",
		},
		{
			name: "invalid default key",
			data: "classes:\n  - name: A\n    defaults:\n      \"9lives\": 1\n",
			want: "not a valid identifier",
		},
		{
			name: "reserved field",
			data: "classes:\n  - name: A\n    fields: [prev]\n",
			want: "reserved for guard bindings",
		},
		{
			name: "keyword default key",
			data: "classes:\n  - name: A\n    defaults:\n      \"null\": 1\n",
			want: "guard keyword",
		},
		{
			name: "empty guard",
			data: "classes:\n  - name: A\n    guards: [\"  \"]\n",
			want: "guard expression must not be empty",
		},
		{
			name: "malformed yaml",
			data: "classes: [",
			want: "parse class file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry()
			_, err := LoadClasses([]byte(tt.data), WithRegistry(registry))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
			if len(registry.Classes()) != 0 {
				t.Fatalf("invalid file must not register anything")
			}
		})
	}
}
