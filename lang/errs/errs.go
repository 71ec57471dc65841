// Package errs implements lumesh's error taxonomy (spec §4.G, §7): true
// failures, which carry a stable Kind and propagate through Catch per
// spec §4.G.2, and control-flow signals (EarlyReturn/EarlyBreak), which
// reuse the same error-propagation mechanism but must never be absorbed by
// a user Catch.
package errs

import (
	"fmt"

	"github.com/lumesh-lang/lumesh/lang/value"
)

// Kind identifies the fault a RuntimeError represents. Kinds have stable
// numeric codes (spec §7) so handlers can discriminate without matching
// textual messages.
type Kind int

//nolint:revive
const (
	UndeclaredVariable Kind = iota + 1
	Redeclaration
	TypeError
	IndexOutOfBounds
	KeyNotFound
	Overflow
	DivByZero
	InvalidOperator
	CannotApply
	ArgumentMismatch
	TooManyArguments
	InvalidDefaultValue
	ForNonList
	NoMatchingBranch
	WildcardNotMatched
	ProgramNotFound
	CommandFailed2
	PermissionDenied
	MethodNotFound
	NotAFunction
	SymbolNotModule
	SymbolNotDefinedInModule
	NoModuleDefined
	RecursionDepth
	BuiltinFailed
	CustomError
	Common
)

var kindNames = map[Kind]string{
	UndeclaredVariable:       "UndeclaredVariable",
	Redeclaration:            "Redeclaration",
	TypeError:                "TypeError",
	IndexOutOfBounds:         "IndexOutOfBounds",
	KeyNotFound:              "KeyNotFound",
	Overflow:                 "Overflow",
	DivByZero:                "DivByZero",
	InvalidOperator:          "InvalidOperator",
	CannotApply:              "CannotApply",
	ArgumentMismatch:         "ArgumentMismatch",
	TooManyArguments:         "TooManyArguments",
	InvalidDefaultValue:      "InvalidDefaultValue",
	ForNonList:               "ForNonList",
	NoMatchingBranch:         "NoMatchingBranch",
	WildcardNotMatched:       "WildcardNotMatched",
	ProgramNotFound:          "ProgramNotFound",
	CommandFailed2:           "CommandFailed2",
	PermissionDenied:         "PermissionDenied",
	MethodNotFound:           "MethodNotFound",
	NotAFunction:             "NotAFunction",
	SymbolNotModule:          "SymbolNotModule",
	SymbolNotDefinedInModule: "SymbolNotDefinedInModule",
	NoModuleDefined:          "NoModuleDefined",
	RecursionDepth:           "RecursionDepth",
	BuiltinFailed:            "BuiltinFailed",
	CustomError:              "CustomError",
	Common:                   "Common",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Code returns the stable numeric error code of k. Scripts see it as the
// `code` field of the error map passed to a `?:` handler; no sys builtin
// lists the codes.
func (k Kind) Code() int { return int(k) }

// RuntimeError is a true failure: a Kind plus the fields spec §4.G.1
// calls for. Context is the offending AST node's compact display and Depth
// is the recursion depth at the fault site; both exist purely for
// diagnostics (spec §7: "No multi-line stacks").
type RuntimeError struct {
	Kind    Kind
	Message string
	Context string
	Depth   int

	// structured fields used by a handful of kinds, surfaced to a `?:`
	// handler as part of {msg, code, expr} (spec §4.G.2).
	Expected string
	Found    string
	Sym      string
	Index    int
	Len      int
	Name     string
}

func (e *RuntimeError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (in %s)", e.Kind, e.Message, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds a RuntimeError of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithContext returns a copy of e with Context and Depth set, as the
// evaluator does when it catches an error bubbling up through a node
// (spec §4.G.1: "context_ast" / "depth").
func (e *RuntimeError) WithContext(context string, depth int) *RuntimeError {
	cp := *e
	cp.Context = context
	cp.Depth = depth
	return &cp
}

// TypeErr builds the TypeError kind's structured form.
func TypeErr(expected, found, sym string) *RuntimeError {
	return &RuntimeError{
		Kind:     TypeError,
		Message:  fmt.Sprintf("expected %s, found %s (%s)", expected, found, sym),
		Expected: expected,
		Found:    found,
		Sym:      sym,
	}
}

// IndexErr builds the IndexOutOfBounds kind's structured form.
func IndexErr(index, length int) *RuntimeError {
	return &RuntimeError{
		Kind:    IndexOutOfBounds,
		Message: fmt.Sprintf("index %d out of bounds (len %d)", index, length),
		Index:   index,
		Len:     length,
	}
}

// BuiltinErr wraps a built-in's own error into BuiltinFailed(name, reason),
// preserving the original message, per spec §4.G.1/§7.
func BuiltinErr(name string, reason error) *RuntimeError {
	return &RuntimeError{
		Kind:    BuiltinFailed,
		Message: reason.Error(),
		Name:    name,
	}
}

// EarlyReturn is the control-flow signal raised by `return e` (spec §4.D,
// §4.G.1). It is distinguished structurally from RuntimeError so that a
// user Catch can never absorb it (spec §4.G.2): code must type-assert for
// *EarlyReturn specifically, not just check for a non-nil error.
type EarlyReturn struct{ Value value.Value }

func (e *EarlyReturn) Error() string { return "return outside of a function body" }

// EarlyBreak is the control-flow signal raised by `break e` (spec §4.D,
// §4.G.1), claimed by the nearest enclosing While/Loop.
type EarlyBreak struct{ Value value.Value }

func (e *EarlyBreak) Error() string { return "break outside of a loop" }

// IsControlFlow reports whether err is a non-local control-flow signal that
// must never be caught by a user `?` handler (spec §4.G.2).
func IsControlFlow(err error) bool {
	switch err.(type) {
	case *EarlyReturn, *EarlyBreak:
		return true
	default:
		return false
	}
}
