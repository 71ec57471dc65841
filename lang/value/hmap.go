package value

import (
	"strings"

	"github.com/dolthub/swiss"
)

// HMap is the unordered string-keyed container, per spec §3.1: no iteration
// order is guaranteed. It is backed by a swiss-table hash map, a natural
// fit for a container whose contract explicitly disclaims ordering (unlike
// Map, which is backed by an insertion-ordered slice of keys).
//
// Like List and Map, its contents are shared-immutable: mutators always
// build a fresh *HMap.
type HMap struct {
	m *swiss.Map[string, Value]
}

// NewHMap builds an HMap from the given entries.
func NewHMap(entries map[string]Value) *HMap {
	m := swiss.NewMap[string, Value](uint32(len(entries)))
	for k, v := range entries {
		m.Put(k, v)
	}
	return &HMap{m: m}
}

// EmptyHMap returns a new, empty HMap.
func EmptyHMap() *HMap { return &HMap{m: swiss.NewMap[string, Value](0)} }

func (h *HMap) Len() int { return h.m.Count() }

// Get returns the value bound to key, and whether it was found.
func (h *HMap) Get(key string) (Value, bool) { return h.m.Get(key) }

// ContainsKey reports whether key is bound, per the `~:` (in) operator.
func (h *HMap) ContainsKey(key string) bool { return h.m.Has(key) }

// Keys returns the HMap's keys in unspecified order.
func (h *HMap) Keys() []string {
	out := make([]string, 0, h.Len())
	h.m.Iter(func(k string, _ Value) bool {
		out = append(out, k)
		return false
	})
	return out
}

func (h *HMap) clone() *swiss.Map[string, Value] {
	out := swiss.NewMap[string, Value](uint32(h.Len()))
	h.m.Iter(func(k string, v Value) bool {
		out.Put(k, v)
		return false
	})
	return out
}

// Insert returns a new HMap with key bound to val.
func (h *HMap) Insert(key string, val Value) *HMap {
	m := h.clone()
	m.Put(key, val)
	return &HMap{m: m}
}

// Merge returns a new HMap with other's entries layered on top (right
// wins), per `Map + Map` applied to the unordered variant.
func (h *HMap) Merge(other *HMap) *HMap {
	m := h.clone()
	other.m.Iter(func(k string, v Value) bool {
		m.Put(k, v)
		return false
	})
	return &HMap{m: m}
}

// Remove returns a new HMap with key removed.
func (h *HMap) Remove(key string) *HMap {
	m := h.clone()
	m.Delete(key)
	return &HMap{m: m}
}

func (h *HMap) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	h.m.Iter(func(k string, v Value) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(Display(v))
		return false
	})
	b.WriteByte('}')
	return b.String()
}

func (h *HMap) Debug() string { return h.String() }
func (*HMap) Type() string    { return "HMap" }
func (h *HMap) Truthy() bool  { return h.Len() > 0 }
