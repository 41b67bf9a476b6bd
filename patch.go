package reactive

// Change proposes a new value for one field.
type Change struct {
	Key   string
	Value any
}

// Patch is an ordered batch of proposed changes. Order is preserved in the
// updated keys reported to hooks.
type Patch []Change

// Set returns p with key=value appended.
func (p Patch) Set(key string, value any) Patch {
	return append(p, Change{Key: key, Value: value})
}

// Keys returns the keys of p in order, duplicates included.
func (p Patch) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, change := range p {
		keys = append(keys, change.Key)
	}
	return keys
}

// PatchFromMap builds a patch from values ordered by key, since Go maps carry
// no order of their own.
func PatchFromMap(values map[string]any) Patch {
	keys := sortedKeys(values)
	patch := make(Patch, 0, len(keys))
	for _, key := range keys {
		patch = append(patch, Change{Key: key, Value: values[key]})
	}
	return patch
}

// normalize collapses repeated keys into one change at the position of the
// first occurrence carrying the value of the last.
func (p Patch) normalize() Patch {
	if len(p) < 2 {
		return p
	}
	index := make(map[string]int, len(p))
	out := make(Patch, 0, len(p))
	for _, change := range p {
		if i, ok := index[change.Key]; ok {
			out[i].Value = change.Value
			continue
		}
		index[change.Key] = len(out)
		out = append(out, change)
	}
	return out
}
