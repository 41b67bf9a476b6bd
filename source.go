package reactive

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Source supplies the initial value of a watched field during Init.
type Source interface {
	Lookup(field string) (any, bool)
}

// Values is a Source backed by a map.
type Values map[string]any

// Lookup implements Source.
func (v Values) Lookup(field string) (any, bool) {
	value, ok := v[field]
	return value, ok
}

// SourceFunc adapts a function to Source.
type SourceFunc func(field string) (any, bool)

// Lookup implements Source.
func (f SourceFunc) Lookup(field string) (any, bool) {
	if f == nil {
		return nil, false
	}
	return f(field)
}

// FromStruct reads initial values from the exported fields of a struct or
// struct pointer. A field matches a watched name through its `reactive` tag,
// its exact name, or its name with the first letter lowered ("Count" serves
// "count"). Fields tagged `reactive:"-"` are skipped.
func FromStruct(value any) Source {
	rv := reflect.ValueOf(value)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Values{}
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return Values{}
	}

	values := Values{}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("reactive")
		if tag == "-" {
			continue
		}
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			values[name] = rv.Field(i).Interface()
			continue
		}
		field := rv.Field(i).Interface()
		if _, taken := values[sf.Name]; !taken {
			values[sf.Name] = field
		}
		if lowered := lowerFirst(sf.Name); lowered != sf.Name {
			if _, taken := values[lowered]; !taken {
				values[lowered] = field
			}
		}
	}
	return values
}

func lookupSource(src Source, field string) (any, bool) {
	if src == nil {
		return nil, false
	}
	return src.Lookup(field)
}

func lowerFirst(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
