package reactive

import (
	"reflect"

	"github.com/goliatone/go-reactive/internal/hydrate"
)

// DecodeOption configures Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	strict    bool
	useNumber bool
	validate  bool
}

// DecodeStrict fails when the state holds keys T has no field for.
func DecodeStrict() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.strict = true
	}
}

// DecodeUseNumber keeps numbers decoded into interface values as json.Number.
func DecodeUseNumber() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.useNumber = true
	}
}

// DecodeValidate runs Validate on the decoded value when T provides it.
func DecodeValidate() DecodeOption {
	return func(cfg *decodeConfig) {
		cfg.validate = true
	}
}

// Decode converts the current state of m into T through its JSON
// representation, so T's json tags decide the mapping.
func Decode[T any](m *Module, opts ...DecodeOption) (T, error) {
	if !m.Initialized() {
		var zero T
		return zero, ErrNotInitialized
	}
	return decodeState[T](hydrate.Context{Class: m.class.Name(), Instance: m.id}, m.store, opts)
}

// DecodeState converts a state snapshot, such as the prev value handed to a
// hook, into T.
func DecodeState[T any](s State, opts ...DecodeOption) (T, error) {
	return decodeState[T](hydrate.Context{}, s, opts)
}

func decodeState[T any](ctx hydrate.Context, s State, opts []DecodeOption) (T, error) {
	cfg := decodeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var decoderOpts []hydrate.DecoderOption[T]
	if cfg.strict {
		decoderOpts = append(decoderOpts, hydrate.WithDisallowUnknownFields[T]())
	}
	if cfg.useNumber {
		decoderOpts = append(decoderOpts, hydrate.WithUseNumber[T]())
	}
	if cfg.validate {
		decoderOpts = append(decoderOpts, hydrate.WithPostHook[T](func(_ hydrate.Context, value *T) error {
			return validateValue(*value)
		}))
	}
	return hydrate.NewDecoder(decoderOpts...).Decode(ctx, s.Map())
}

// As returns the value of field as T, or the zero T when the field is absent
// or holds another type. It is meant for typed getters on embedding structs.
func As[T any](m *Module, field string) T {
	value, _ := Lookup[T](m, field)
	return value
}

// Lookup returns the value of field as T and whether it was present with
// that type.
func Lookup[T any](m *Module, field string) (T, bool) {
	var zero T
	if m == nil {
		return zero, false
	}
	raw, ok := m.store.Get(field)
	if !ok || raw == nil {
		return zero, false
	}
	value, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return value, true
}

func validateValue[T any](value T) error {
	if v, ok := any(value).(interface{ Validate() error }); ok {
		return v.Validate()
	}
	rv := reflect.ValueOf(&value).Elem()
	if rv.Kind() != reflect.Pointer {
		if v, ok := rv.Addr().Interface().(interface{ Validate() error }); ok {
			return v.Validate()
		}
	}
	return nil
}
