package value

import (
	"fmt"
	"strconv"
)

// NoneType is the unit/absent value. None is its sole instance.
type NoneType struct{}

// None is the sole value of the unit/absent type.
var None = NoneType{}

func (NoneType) String() string { return "None" }
func (NoneType) Debug() string  { return "None" }
func (NoneType) Type() string   { return "None" }
func (NoneType) Truthy() bool   { return false }

// Bool is the boolean value variant.
type Bool bool

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) Debug() string  { return b.String() }
func (Bool) Type() string     { return "Boolean" }
func (b Bool) Truthy() bool   { return bool(b) }
func (b Bool) HashKey() string { return b.String() }

// Int is the signed 64-bit integer value variant.
type Int int64

func (i Int) String() string  { return strconv.FormatInt(int64(i), 10) }
func (i Int) Debug() string   { return i.String() }
func (Int) Type() string      { return "Integer" }
func (i Int) Truthy() bool    { return i != 0 }
func (i Int) HashKey() string { return i.String() }

// Float is the 64-bit IEEE 754 floating point value variant.
type Float float64

func (f Float) String() string  { return strconv.FormatFloat(float64(f), 'g', -1, 64) }
func (f Float) Debug() string   { return f.String() }
func (Float) Type() string      { return "Float" }
func (f Float) Truthy() bool    { return f != 0 }
func (f Float) HashKey() string { return f.String() }

// String is the UTF-8 string value variant. Its length, as the `len`
// builtin reports it, is measured in bytes; indexing operations on it are by
// Unicode scalar (see lang/arith and lang/eval, which implement indexing
// using []rune(s)). Len counts Unicode scalars, the unit of those indices.
type String string

func (s String) String() string  { return string(s) }
func (s String) Debug() string   { return strconv.Quote(string(s)) }
func (String) Type() string      { return "String" }
func (s String) Truthy() bool    { return len(s) > 0 }
func (s String) HashKey() string { return string(s) }
func (s String) Len() int        { return len([]rune(string(s))) }

// Runes returns the string decoded as Unicode scalar values, the unit that
// String indexing and slicing operate over.
func (s String) Runes() []rune { return []rune(string(s)) }

// Bytes is the opaque byte sequence value variant.
type Bytes []byte

func (b Bytes) String() string  { return string(b) }
func (b Bytes) Debug() string   { return fmt.Sprintf("b%q", string(b)) }
func (Bytes) Type() string      { return "Bytes" }
func (b Bytes) Truthy() bool    { return len(b) > 0 }
func (b Bytes) HashKey() string { return string(b) }
