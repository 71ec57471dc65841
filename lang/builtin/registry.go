// Package builtin implements lumesh's built-in registry: a set of native
// Go-backed callables and library modules (List, String, Map, Math, console,
// sys, and the rest of the module surface) consulted by the evaluator before
// the environment and before external-command dispatch (spec §3.1, §4.D,
// §4.E.3).
package builtin

import "github.com/lumesh-lang/lumesh/lang/value"

// Registry holds the process-wide built-in function table and the library
// modules reachable through chain calls (spec §4.E.3) and dotted module
// access (spec §4.E.1). It is populated once at startup and is read-only
// thereafter (spec §5: "The built-in registry is populated once and
// thereafter read-only").
type Registry struct {
	funcs   map[string]*value.Builtin
	modules map[string]*value.HMap
}

// New builds and populates the registry.
func New() *Registry {
	r := &Registry{
		funcs:   map[string]*value.Builtin{},
		modules: map[string]*value.HMap{},
	}
	r.registerTopLevel()
	r.modules["List"] = buildModule(listFuncs())
	r.modules["String"] = buildModule(stringFuncs())
	r.modules["Map"] = buildModule(mapFuncs())
	r.modules["Math"] = buildModule(mathFuncs())
	r.modules["console"] = buildModule(consoleFuncs())
	r.modules["sys"] = buildModule(sysFuncs())
	r.registerStubModules()
	return r
}

// Lookup resolves a bare top-level built-in name.
func (r *Registry) Lookup(name string) (value.Value, bool) {
	b, ok := r.funcs[name]
	if !ok {
		return nil, false
	}
	return b, true
}

// Module resolves a library module by its registered name (spec §4.E.3's
// "library module matching the value's kind", plus any module reachable via
// `use`/dotted access per spec §4.E.1).
func (r *Registry) Module(name string) (*value.HMap, bool) {
	m, ok := r.modules[name]
	return m, ok
}

func (r *Registry) define(b *value.Builtin) {
	r.funcs[b.Name] = b
}

func buildModule(fns []*value.Builtin) *value.HMap {
	entries := make(map[string]value.Value, len(fns))
	for _, f := range fns {
		entries[f.Name] = f
	}
	return value.NewHMap(entries)
}

func builtinFunc(name, help, hint string, body func([]value.Value, value.Env) (value.Value, error)) *value.Builtin {
	return &value.Builtin{Name: name, Help: help, Hint: hint, Body: body}
}
