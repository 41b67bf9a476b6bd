package reactive

// State is an ordered mapping from watched field name to value. A module
// owns one State as its store; snapshots handed to hooks are independent
// copies.
type State struct {
	keys   []string
	values map[string]any
}

// Get returns the value stored for key and whether key is present.
func (s State) Get(key string) (any, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Value returns the value stored for key, or nil when absent.
func (s State) Value(key string) any {
	return s.values[key]
}

func (s State) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns the field names in insertion order.
func (s State) Keys() []string {
	return append([]string{}, s.keys...)
}

func (s State) Len() int {
	return len(s.keys)
}

// Map returns a copy of the state as a plain map.
func (s State) Map() map[string]any {
	out := make(map[string]any, len(s.keys))
	for _, key := range s.keys {
		out[key] = s.values[key]
	}
	return out
}

// Each calls fn for every entry in insertion order until fn returns false.
func (s State) Each(fn func(key string, value any) bool) {
	for _, key := range s.keys {
		if !fn(key, s.values[key]) {
			return
		}
	}
}

func (s State) clone() State {
	out := State{
		keys:   append([]string(nil), s.keys...),
		values: make(map[string]any, len(s.values)),
	}
	for key, value := range s.values {
		out.values[key] = value
	}
	return out
}

func (s *State) set(key string, value any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}
