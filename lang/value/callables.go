package value

import (
	"strings"

	"github.com/lumesh-lang/lumesh/lang/ast"
)

// Builtin is a native callable exposed by the built-in registry (spec §3.1).
type Builtin struct {
	Name string
	Help string
	Hint string
	Body func(args []Value, env Env) (Value, error)
}

func (b *Builtin) String() string  { return "builtin@" + b.Name }
func (b *Builtin) Debug() string   { return b.String() }
func (*Builtin) Type() string      { return "Builtin" }
func (*Builtin) Truthy() bool      { return true }
func (b *Builtin) HashKey() string { return b.String() }

// Lambda is an anonymous, curried callable with no captured environment: it
// closes over names, not values, lazily at call time through a fork of the
// caller's environment (spec §9). Bound holds parameters already bound
// by partial application (currying); it is nil for a freshly-constructed
// lambda.
type Lambda struct {
	Params []string
	Body   ast.Node
	// Bound holds (name, value) pairs already supplied by a prior partial
	// application, applied again at call time before the remaining params.
	Bound []BoundArg
}

// BoundArg is one parameter name pre-bound by currying.
type BoundArg struct {
	Name string
	Val  Value
}

func (l *Lambda) String() string {
	return "(" + strings.Join(l.Params, ", ") + ") -> " + l.Body.String()
}
func (l *Lambda) Debug() string { return l.String() }
func (*Lambda) Type() string    { return "Lambda" }
func (*Lambda) Truthy() bool    { return true }

// Param is one formal parameter of a Function, with an optional default
// value expression (spec §4.E.2: must evaluate to a literal basic type).
type Param struct {
	Name    string
	Default ast.Node // nil if no default
}

// Decorator is one `@deco(args)` wrapping a Function (spec §4.E.2).
type Decorator struct {
	Name string
	Args []ast.Node
}

// Function is a named, default-filling callable (as opposed to Lambda,
// which curries), optionally decorated.
type Function struct {
	Name       string
	Params     []Param
	Rest       string // "" if no rest parameter
	Body       ast.Node
	Decorators []Decorator
}

func (f *Function) String() string { return "fn@" + f.Name }
func (f *Function) Debug() string  { return f.String() }
func (*Function) Type() string     { return "Function" }
func (*Function) Truthy() bool     { return true }

// Symbol is an as-yet-unresolved identifier (non-strict lookup miss); it may
// later be applied as an external command (spec §3.1).
type Symbol struct{ Name string }

func (s Symbol) String() string  { return s.Name }
func (s Symbol) Debug() string   { return "Symbol(" + s.Name + ")" }
func (Symbol) Type() string      { return "Symbol" }
func (Symbol) Truthy() bool      { return true }
func (s Symbol) HashKey() string { return s.Name }

// Quote is an AST node captured unevaluated (spec §3.1).
type Quote struct{ Node ast.Node }

func (q Quote) String() string { return q.Node.String() }
func (q Quote) Debug() string  { return "Quote(" + q.Node.String() + ")" }
func (Quote) Type() string     { return "Quote" }
func (Quote) Truthy() bool     { return true }

// ModuleRef is the runtime handle to a loaded module: an HMap of callables
// and sub-modules along with the dotted path used to reach it, for error
// messages (spec §3.1/§4.E.2).
type ModuleRef struct {
	Path  []string
	Value *HMap
}

func (m ModuleRef) String() string { return strings.Join(m.Path, ".") }
func (m ModuleRef) Debug() string  { return "Module(" + m.String() + ")" }
func (ModuleRef) Type() string     { return "Module" }
func (m ModuleRef) Truthy() bool   { return true }
