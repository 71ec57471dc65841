// Package value defines the runtime value lattice of lumesh: the tagged
// union of values the evaluator produces and consumes (spec component A).
//
// Containers (List, Map, HMap) are shared-immutable: every mutating
// operation returns a new container and leaves the receiver untouched, so
// no alias of a container is ever surprised by another alias's mutation.
package value

import "fmt"

// Value is the interface implemented by every runtime value in lumesh.
type Value interface {
	// String returns the display representation (Go's "%v"/"{}" form).
	String() string
	// Debug returns the debug representation (Go's "%#v"/"{:?}" form).
	Debug() string
	// Type returns the short type name used in error messages and type_name().
	Type() string
	// Truthy reports whether the value is considered true in a boolean
	// context. Empty containers and numeric zero are falsey; callables are
	// always truthy.
	Truthy() bool
}

// Env is the minimal surface of the evaluation environment that a Builtin's
// body needs. It is declared here, rather than imported from lang/env, so
// that this package has no dependency on the environment or evaluator
// packages (which both depend on Value); lang/env.Environment implements it.
type Env interface {
	// Define binds name in the current (innermost) scope.
	Define(name string, v Value)
	// Assign updates an existing binding found by walking ancestor scopes, or
	// defines it locally (non-strict) / fails (strict), per spec §3.3.
	Assign(name string, v Value) error
	// Lookup searches the current scope and its ancestors for name.
	Lookup(name string) (Value, bool)
	// Cwd returns the working directory tracked for this environment.
	Cwd() string
	// Call invokes a callable value (Builtin, Lambda, Function, Symbol) with
	// already-evaluated arguments, routing through the same dispatcher the
	// evaluator itself uses. This lets builtins like List.map accept and
	// invoke a callback.
	Call(callable Value, args []Value) (Value, error)
}

// TypeName is a convenience wrapper equivalent to v.Type(), used where a nil
// Value (absence, as opposed to None) must be tolerated.
func TypeName(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Type()
}

// IsTruthy reports v.Truthy(), tolerating a nil Value as falsey.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	return v.Truthy()
}

// Display formats v using its display (String) representation.
func Display(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// DebugString formats v using its debug representation.
func DebugString(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.Debug()
}

// Hashable is implemented by values that may be used as container elements
// subject to equality comparison (list membership, set difference).
// The scalar variants implement it; StringKey falls back to Display for
// values that do not.
type Hashable interface {
	Value
	// HashKey returns a string uniquely identifying the value for use as a
	// map/HMap key (keys are always strings in lumesh; non-string index
	// expressions are stringified via this method, see spec §3.2).
	HashKey() string
}

// StringKey stringifies an arbitrary value for use as a Map/HMap key,
// per spec §3.2 ("Map keys are always strings; non-string index
// expressions are stringified").
func StringKey(v Value) string {
	if h, ok := v.(Hashable); ok {
		return h.HashKey()
	}
	return Display(v)
}

var errUncomparable = fmt.Errorf("values are not comparable")

// Equals reports whether x and y are structurally equal, recursing into
// containers. Float equality uses plain IEEE 754 semantics (NaN != NaN),
// per spec §9.
func Equals(x, y Value) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	switch a := x.(type) {
	case NoneType:
		_, ok := y.(NoneType)
		return ok
	case Bool:
		b, ok := y.(Bool)
		return ok && a == b
	case Int:
		switch b := y.(type) {
		case Int:
			return a == b
		case Float:
			return Float(a) == b
		}
		return false
	case Float:
		switch b := y.(type) {
		case Float:
			return a == b
		case Int:
			return a == Float(b)
		}
		return false
	case String:
		b, ok := y.(String)
		return ok && a == b
	case Bytes:
		b, ok := y.(Bytes)
		return ok && string(a) == string(b)
	case *List:
		b, ok := y.(*List)
		if !ok || len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equals(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case *Map:
		b, ok := y.(*Map)
		if !ok || len(a.order) != len(b.order) {
			return false
		}
		for _, k := range a.order {
			bv, found := b.Get(k)
			if !found || !Equals(a.vals[k], bv) {
				return false
			}
		}
		return true
	case *HMap:
		b, ok := y.(*HMap)
		if !ok || a.Len() != b.Len() {
			return false
		}
		eq := true
		a.m.Iter(func(k string, v Value) (stop bool) {
			bv, found := b.Get(k)
			if !found || !Equals(v, bv) {
				eq = false
				return true
			}
			return false
		})
		return eq
	case DateTime:
		b, ok := y.(DateTime)
		return ok && a.T.Equal(b.T)
	case FileSize:
		b, ok := y.(FileSize)
		return ok && a == b
	case Range:
		b, ok := y.(Range)
		return ok && a == b
	default:
		return x.Type() == y.Type() && Display(x) == Display(y)
	}
}

// Compare orders x and y, coercing Int/Float per spec §4.C, and returns a
// negative, zero or positive int per the usual Cmp convention. It returns
// errUncomparable wrapped with the offending types for anything outside
// Int/Float/String/Bool/DateTime/FileSize.
func Compare(x, y Value) (int, error) {
	switch a := x.(type) {
	case Int:
		switch b := y.(type) {
		case Int:
			return cmpOrdered(a, b), nil
		case Float:
			return cmpOrdered(Float(a), b), nil
		}
	case Float:
		switch b := y.(type) {
		case Float:
			return cmpOrdered(a, b), nil
		case Int:
			return cmpOrdered(a, Float(b)), nil
		}
	case String:
		if b, ok := y.(String); ok {
			return cmpOrdered(a, b), nil
		}
	case Bool:
		if b, ok := y.(Bool); ok {
			return cmpOrdered(boolInt(a), boolInt(b)), nil
		}
	case DateTime:
		if b, ok := y.(DateTime); ok {
			switch {
			case a.T.Before(b.T):
				return -1, nil
			case a.T.After(b.T):
				return 1, nil
			default:
				return 0, nil
			}
		}
	case FileSize:
		if b, ok := y.(FileSize); ok {
			return cmpOrdered(a, b), nil
		}
	}
	return 0, fmt.Errorf("%w: %s and %s", errUncomparable, x.Type(), y.Type())
}

func boolInt(b Bool) int {
	if b {
		return 1
	}
	return 0
}

type ordered interface {
	~int | ~int64 | ~float64 | ~string | ~uint64
}

func cmpOrdered[T ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
