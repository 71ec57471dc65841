package builtin

import (
	"fmt"

	"github.com/lumesh-lang/lumesh/lang/value"
)

// registerStubModules wires the remaining module names enumerated in
// original_source/src/modules/bin/mod.rs's module table (log, about, os,
// ui, widget, time, rand, fmt, parse, fs, regex, into) whose members are not
// reimplemented with full semantics here. Each member still resolves and is
// callable — it fails loudly with a descriptive error identifying the
// module and member, rather than silently vanishing from the dotted-access
// surface, so scripts that probe `Module.fn` get a clear diagnosis instead
// of SymbolNotDefinedInModule.
func (r *Registry) registerStubModules() {
	stub := map[string][]string{
		"log":    {"trace", "debug", "info", "warn", "error"},
		"about":  {"name", "version", "authors", "license"},
		"os":     {"name", "family", "arch"},
		"ui":     {"confirm", "select", "input"},
		"widget": {"progress", "spinner", "table"},
		"time":   {"now", "format", "parse", "sleep", "unix"},
		"rand":   {"int", "float", "choice", "shuffle", "seed"},
		"fmt":    {"sprintf", "printf"},
		"parse":  {"int", "float", "json"},
		"fs":     {"read", "write", "exists", "list", "remove"},
		"regex":  {"is_match", "find", "find_all", "replace"},
		"into":   {"int", "float", "string", "bool"},
	}
	for mod, members := range stub {
		fns := make([]*value.Builtin, len(members))
		for i, m := range members {
			fns[i] = stubMember(mod, m)
		}
		r.modules[mod] = buildModule(fns)
	}
}

func stubMember(mod, name string) *value.Builtin {
	return builtinFunc(name, "not implemented in this evaluator core", "", func(_ []value.Value, _ value.Env) (value.Value, error) {
		return nil, fmt.Errorf("%s.%s: not implemented", mod, name)
	})
}
