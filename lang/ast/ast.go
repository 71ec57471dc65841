// Package ast defines the abstract syntax tree lumesh's evaluator walks.
// The parser (lang/parser) produces it; the evaluator (lang/eval) consumes
// it. Per spec §1 the parser itself is a secondary, external concern — this
// package only fixes the contract between the two.
package ast

import "strings"

// Node is implemented by every AST node. String renders a compact,
// round-trippable-ish display of the node, used for Quote display and for
// the "compact display of the AST that failed" error-context field (spec
// §4.G.1/§7).
type Node interface {
	String() string
}

// Ident is a bare identifier appearing as an expression (a Symbol or
// Variable reference depending on the sigil used in front of it at parse
// time; see Strict).
type Ident struct {
	Name   string
	Strict bool // true if written with the strict-mode sigil ($name)
}

func (n *Ident) String() string {
	if n.Strict {
		return "$" + n.Name
	}
	return n.Name
}

// Literal nodes - None, Boolean, Integer, Float, String, Bytes return
// themselves unevaluated per spec §4.D.
type (
	NoneLit struct{}
	BoolLit struct{ Value bool }
	IntLit  struct{ Value int64 }
	FloatLit struct{ Value float64 }
	StringLit struct{ Value string }
	BytesLit  struct{ Value []byte }
)

func (NoneLit) String() string        { return "none" }
func (n BoolLit) String() string      { if n.Value { return "true" }; return "false" }
func (n IntLit) String() string       { return itoa(n.Value) }
func (n FloatLit) String() string     { return ftoa(n.Value) }
func (n StringLit) String() string    { return quote(n.Value) }
func (n BytesLit) String() string     { return "b" + quote(string(n.Value)) }

// ListLit is a list literal: evaluate each element.
type ListLit struct{ Elems []Node }

func (n ListLit) String() string { return "[" + joinNodes(n.Elems, ", ") + "]" }

// MapEntry is a single key/value pair in a MapLit.
type MapEntry struct {
	Key string
	Val Node
}

// MapLit is a map literal: evaluate each value.
type MapLit struct{ Entries []MapEntry }

func (n MapLit) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range n.Entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.Key)
		b.WriteString(": ")
		b.WriteString(e.Val.String())
	}
	b.WriteByte('}')
	return b.String()
}

// Group evaluates its inner expression (parenthesized expression).
type Group struct{ Inner Node }

func (n Group) String() string { return "(" + n.Inner.String() + ")" }

// Quote captures body unevaluated.
type Quote struct{ Body Node }

func (n Quote) String() string { return "'" + n.Body.String() }

// BinaryOp applies a named binary operator (spec §4.C); named, rather than
// an enum, so user-defined `_op` overloads (spec §4.C) share the same node
// shape as built-in operators.
type BinaryOp struct {
	Op          string
	Left, Right Node
}

func (n BinaryOp) String() string { return n.Left.String() + " " + n.Op + " " + n.Right.String() }

// UnaryOp applies a named unary operator. Postfix distinguishes `x++`/`x--`
// (Postfix true) from `++x`/`--x` (Postfix false); it is unused for `!`/`-`.
type UnaryOp struct {
	Op      string
	Operand Node
	Postfix bool
}

func (n UnaryOp) String() string {
	if n.Postfix {
		return n.Operand.String() + n.Op
	}
	return n.Op + n.Operand.String()
}

// Pipe represents a `|`, `|>`, `<<`, `>>` or `>>!` pipeline stage.
type Pipe struct {
	Kind        string // "|", "|>", "<<", ">>", ">>!"
	Left, Right Node
}

func (n Pipe) String() string { return n.Left.String() + " " + n.Kind + " " + n.Right.String() }

// Index is a `lhs[rhs]` indexing expression.
type Index struct{ Lhs, Rhs Node }

func (n Index) String() string { return n.Lhs.String() + "[" + n.Rhs.String() + "]" }

// SliceParams holds the optional start/end/step of a Slice node; nil means
// an open bound, matching spec §4.D's "None means open end".
type SliceParams struct {
	Start, End, Step Node
}

// Slice is a `list[start:end:step]` slicing expression.
type Slice struct {
	List   Node
	Params SliceParams
}

func (n Slice) String() string {
	s := func(n Node) string {
		if n == nil {
			return ""
		}
		return n.String()
	}
	return n.List.String() + "[" + s(n.Params.Start) + ":" + s(n.Params.End) + ":" + s(n.Params.Step) + "]"
}

// ValueLit wraps an already-evaluated value so it can be spliced back into
// an argument list (pipe/receiver injection, spec §4.A's replace-or-append
// contract) without this package importing lang/value, which already
// imports this one for Lambda/Function body fields. Val holds a
// value.Value; lang/eval performs the type assertion back.
type ValueLit struct{ Val any }

func (n ValueLit) String() string { return "<value>" }

func joinNodes(nodes []Node, sep string) string {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(n.String())
	}
	return b.String()
}
