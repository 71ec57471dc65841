package value

import (
	"strings"

	"golang.org/x/exp/slices"
)

// List is the ordered sequence container, per spec §3.1. Its contents are
// shared-immutable: every mutating helper (Push, Append, Set, Remove...)
// returns a new *List and leaves the receiver's backing array untouched, so
// no alias ever observes a mutation performed through another alias.
type List struct {
	items []Value
}

// NewList builds a List owning items. The caller must not mutate items
// afterwards; ownership transfers to the List.
func NewList(items []Value) *List { return &List{items: items} }

// EmptyList returns a new, empty List.
func EmptyList() *List { return &List{} }

func (l *List) Len() int { return len(l.items) }

// Items returns the list's elements. The caller must not mutate the
// returned slice.
func (l *List) Items() []Value { return l.items }

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Display(v))
	}
	b.WriteByte(']')
	return b.String()
}

func (l *List) Debug() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(DebugString(v))
	}
	b.WriteByte(']')
	return b.String()
}

func (*List) Type() string   { return "List" }
func (l *List) Truthy() bool { return len(l.items) > 0 }

// clone copies the backing array, the one allocation every mutator pays to
// guarantee copy-on-write semantics.
func (l *List) clone(extra int) []Value {
	return slices.Grow(slices.Clone(l.items), extra)
}

// Push returns a new List with v prepended.
func (l *List) Push(v Value) *List {
	return &List{items: slices.Insert(l.clone(1), 0, v)}
}

// Append returns a new List with v appended (spec's `list + x`).
func (l *List) Append(v Value) *List {
	out := l.clone(1)
	out = append(out, v)
	return &List{items: out}
}

// Concat returns a new List with other's elements appended after l's.
func (l *List) Concat(other *List) *List {
	out := l.clone(len(other.items))
	out = append(out, other.items...)
	return &List{items: out}
}

// RemoveFirst returns a new List without the first element structurally
// equal to v, or l unchanged (still a fresh List) if v is absent, per the
// spec's `List - x` semantics.
func (l *List) RemoveFirst(v Value) *List {
	i := slices.IndexFunc(l.items, func(e Value) bool { return Equals(e, v) })
	if i < 0 {
		return &List{items: l.clone(0)}
	}
	return &List{items: slices.Delete(l.clone(0), i, i+1)}
}

// Difference returns a new List with every element found in other removed
// (the `List - List` set-difference semantics; identity-equal lists clear
// entirely).
func (l *List) Difference(other *List) *List {
	if l == other {
		return EmptyList()
	}
	out := make([]Value, 0, len(l.items))
	for _, e := range l.items {
		if !slices.ContainsFunc(other.items, func(o Value) bool { return Equals(e, o) }) {
			out = append(out, e)
		}
	}
	return &List{items: out}
}

// Contains reports whether v is structurally equal to any element.
func (l *List) Contains(v Value) bool {
	return slices.ContainsFunc(l.items, func(e Value) bool { return Equals(e, v) })
}

// Index returns the element at i, which must be in [0, Len()).
func (l *List) Index(i int) Value { return l.items[i] }

// Set returns a new List with index i replaced by v.
func (l *List) Set(i int, v Value) *List {
	out := l.clone(0)
	out[i] = v
	return &List{items: out}
}

// Slice returns a new List over [start:end) stepping by step (step may be
// negative to reverse, but not zero).
func (l *List) Slice(start, end, step int) *List {
	if step == 0 {
		return EmptyList()
	}
	var out []Value
	if step > 0 {
		for i := start; i < end; i += step {
			out = append(out, l.items[i])
		}
	} else {
		for i := start; i > end; i += step {
			out = append(out, l.items[i])
		}
	}
	return &List{items: out}
}

// Reversed returns a new List with elements in reverse order.
func (l *List) Reversed() *List {
	out := slices.Clone(l.items)
	slices.Reverse(out)
	return &List{items: out}
}

// Repeat returns a new List with the elements repeated n times (n >= 0).
func (l *List) Repeat(n int64) *List {
	if n <= 0 {
		return EmptyList()
	}
	out := make([]Value, 0, len(l.items)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, l.items...)
	}
	return &List{items: out}
}
