package value

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Map is the ordered string-keyed container, per spec §3.1: key order is
// preserved in insertion order. Its contents are shared-immutable, exactly
// like List.
type Map struct {
	order []string
	vals  map[string]Value
}

// NewMap builds an ordered Map from keys (in the desired order) and vals.
// The caller must not reuse or mutate keys/vals afterwards.
func NewMap(keys []string, vals map[string]Value) *Map {
	return &Map{order: keys, vals: vals}
}

// EmptyMap returns a new, empty ordered Map.
func EmptyMap() *Map { return &Map{vals: map[string]Value{}} }

func (m *Map) Len() int { return len(m.order) }

// Keys returns the map's keys in insertion order. The caller must not
// mutate the returned slice.
func (m *Map) Keys() []string { return m.order }

// Get returns the value bound to key, and whether it was found.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

func (m *Map) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range m.order {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(Display(m.vals[k]))
	}
	b.WriteByte('}')
	return b.String()
}

func (m *Map) Debug() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range m.order {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(DebugString(m.vals[k]))
	}
	b.WriteByte('}')
	return b.String()
}

func (*Map) Type() string   { return "Map" }
func (m *Map) Truthy() bool { return len(m.order) > 0 }

func (m *Map) clone(extra int) ([]string, map[string]Value) {
	keys := slices.Grow(slices.Clone(m.order), extra)
	vals := make(map[string]Value, len(m.vals)+extra)
	for k, v := range m.vals {
		vals[k] = v
	}
	return keys, vals
}

// Insert returns a new Map with key bound to val (map_insert / `Map + Str`
// insertion), appending key to the order if it is new.
func (m *Map) Insert(key string, val Value) *Map {
	keys, vals := m.clone(1)
	if _, exists := vals[key]; !exists {
		keys = append(keys, key)
	}
	vals[key] = val
	return &Map{order: keys, vals: vals}
}

// Merge returns a new Map with other's entries layered on top (right wins
// on key conflicts), per `Map + Map`.
func (m *Map) Merge(other *Map) *Map {
	keys, vals := m.clone(len(other.order))
	for _, k := range other.order {
		if _, exists := vals[k]; !exists {
			keys = append(keys, k)
		}
		vals[k] = other.vals[k]
	}
	return &Map{order: keys, vals: vals}
}

// Remove returns a new Map with key removed (`Map - Str`).
func (m *Map) Remove(key string) *Map {
	if _, ok := m.vals[key]; !ok {
		keys, vals := m.clone(0)
		return &Map{order: keys, vals: vals}
	}
	i := slices.Index(m.order, key)
	keys := slices.Delete(slices.Clone(m.order), i, i+1)
	vals := make(map[string]Value, len(m.vals)-1)
	for k, v := range m.vals {
		if k != key {
			vals[k] = v
		}
	}
	return &Map{order: keys, vals: vals}
}

// RemoveKeys returns a new Map with every key present in other removed,
// per `Map - Map`.
func (m *Map) RemoveKeys(other *Map) *Map {
	out := m
	for _, k := range other.order {
		out = out.Remove(k)
	}
	keys, vals := out.clone(0)
	return &Map{order: keys, vals: vals}
}

// ContainsKey reports whether key is bound, per the `~:` (in) operator.
func (m *Map) ContainsKey(key string) bool {
	_, ok := m.vals[key]
	return ok
}
