// Package env implements lumesh's environment tree (spec component B, §3.3):
// nested lexical scopes linked to a parent and a process-wide root, with
// fork-on-call semantics and no concept of a shared global beyond the root.
package env

import (
	"sort"
	"sync"

	"github.com/lumesh-lang/lumesh/lang/errs"
	"github.com/lumesh-lang/lumesh/lang/value"
)

// maxBindingLen is the ARG_MAX workaround spec §9 calls out: environment
// values longer than this are filtered out of GetBindingsMap rather than
// handed to a child process.
const maxBindingLen = 1024

// Dispatcher is injected by lang/eval at root construction, so that a
// Builtin's body can call back into the evaluator (value.Env.Call) without
// this package importing lang/eval, which imports this one.
type Dispatcher func(env *Environment, callable value.Value, args []value.Value) (value.Value, error)

// shared is the process-wide state reachable only through the root.
type shared struct {
	strict     bool
	cwd        string
	dispatch   Dispatcher
	aliasMu    sync.Mutex
	aliasTable map[string]value.Value // name -> AST captured as a value.Quote
}

// Environment is one node of the scope tree.
type Environment struct {
	vars   map[string]value.Value
	parent *Environment
	root   *Environment
	shared *shared // only set on the root

	// cwdOverride lets a non-root node carry its own cwd without promoting
	// it to the root's shared state; empty means "inherit from parent".
	cwdOverride string
}

// NewRoot creates the process's root environment.
func NewRoot(cwd string, strict bool, dispatch Dispatcher) *Environment {
	e := &Environment{
		vars: map[string]value.Value{},
	}
	e.root = e
	e.shared = &shared{
		strict:     strict,
		cwd:        cwd,
		dispatch:   dispatch,
		aliasTable: map[string]value.Value{},
	}
	return e
}

// Fork produces a child environment whose parent is e. Reads traverse
// child -> parent; writes land in the child unless routed to the root
// (spec §3.3).
func (e *Environment) Fork() *Environment {
	return &Environment{
		vars:   map[string]value.Value{},
		parent: e,
		root:   e.root,
	}
}

// Root returns the process-wide root environment.
func (e *Environment) Root() value.Env { return e.root }

// RootEnv returns the concrete *Environment root, for callers that need
// root-specific operations (DefineInRoot, aliases, strict mode, ...).
func (e *Environment) RootEnv() *Environment { return e.root }

// Define writes to the current scope.
func (e *Environment) Define(name string, v value.Value) { e.vars[name] = v }

// Assign searches child -> ancestors for an existing binding and updates it
// in place; if none is found, strict mode fails with UndeclaredVariable,
// otherwise it defines in the current scope (spec §3.3).
func (e *Environment) Assign(name string, v value.Value) error {
	for s := e; s != nil; s = s.parent {
		if _, ok := s.vars[name]; ok {
			s.vars[name] = v
			return nil
		}
	}
	if e.Strict() {
		return errs.New(errs.UndeclaredVariable, "%s", name)
	}
	e.vars[name] = v
	return nil
}

// Undefine removes name from the current scope only.
func (e *Environment) Undefine(name string) { delete(e.vars, name) }

// DefineInRoot unconditionally targets the root.
func (e *Environment) DefineInRoot(name string, v value.Value) { e.root.vars[name] = v }

// UndefineInRoot unconditionally targets the root.
func (e *Environment) UndefineInRoot(name string) { delete(e.root.vars, name) }

// Lookup searches the current scope and its ancestors for name.
func (e *Environment) Lookup(name string) (value.Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// IsLocal reports whether name is bound in this scope specifically, not an
// ancestor, for the strict-mode Declare redeclaration check (spec §3.3:
// re-declaring a name already local to the current scope is an error).
func (e *Environment) IsLocal(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// IsDefined reports whether name resolves anywhere in the scope chain.
func (e *Environment) IsDefined(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}

// Strict reports whether strict mode (spec §3.2/§6 STRICT env var) is on.
func (e *Environment) Strict() bool { return e.root.shared.strict }

// SetStrict toggles strict mode process-wide.
func (e *Environment) SetStrict(v bool) { e.root.shared.strict = v }

// Cwd returns the working directory tracked for this environment (spec
// §4.B: "tracked per-environment for script contexts, set on fork").
func (e *Environment) Cwd() string {
	if e.shared != nil {
		return e.shared.cwd
	}
	if e.cwdOverride != "" {
		return e.cwdOverride
	}
	return e.parent.Cwd()
}

// SetCwd sets the working directory for this specific environment node
// (used when a fork enters a script/file context with a different cwd).
func (e *Environment) SetCwd(dir string) {
	if e.shared != nil {
		e.shared.cwd = dir
		return
	}
	e.cwdOverride = dir
}

// Call routes through the Dispatcher installed on the root at construction
// time, letting Builtins invoke callables without this package depending on
// lang/eval.
func (e *Environment) Call(callable value.Value, args []value.Value) (value.Value, error) {
	if e.root.shared.dispatch == nil {
		return nil, errs.New(errs.CannotApply, "no dispatcher installed")
	}
	return e.root.shared.dispatch(e, callable, args)
}

// GetBindingsMap returns a flattened copy of this scope's bindings and all
// of its ancestors', stringified, used when spawning external processes
// (spec §4.B). A child scope's binding shadows an ancestor's of the same
// name, matching Lookup's child-to-root search order. Per spec §9, values
// longer than maxBindingLen are filtered out to respect ARG_MAX; this is a
// platform workaround, not a documented feature, but preserved here.
func (e *Environment) GetBindingsMap() map[string]string {
	out := make(map[string]string)
	for s := e; s != nil; s = s.parent {
		for k, v := range s.vars {
			if _, shadowed := out[k]; shadowed {
				continue
			}
			str := value.Display(v)
			if len(str) > maxBindingLen {
				continue
			}
			out[k] = str
		}
	}
	return out
}

// SetAlias installs name in the process-wide alias table (spec §4.F).
func (e *Environment) SetAlias(name string, expr value.Value) {
	sh := e.root.shared
	sh.aliasMu.Lock()
	defer sh.aliasMu.Unlock()
	sh.aliasTable[name] = expr
}

// Alias returns the expression aliased to name, if any.
func (e *Environment) Alias(name string) (value.Value, bool) {
	sh := e.root.shared
	sh.aliasMu.Lock()
	defer sh.aliasMu.Unlock()
	v, ok := sh.aliasTable[name]
	return v, ok
}

// AliasNames returns all currently aliased names, sorted.
func (e *Environment) AliasNames() []string {
	sh := e.root.shared
	sh.aliasMu.Lock()
	defer sh.aliasMu.Unlock()
	out := make([]string, 0, len(sh.aliasTable))
	for k := range sh.aliasTable {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
