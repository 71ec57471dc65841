package builtin

import (
	"os"
	"strings"

	"github.com/lumesh-lang/lumesh/lang/value"
)

// sysFuncs is grounded in original_source/src/modules/bin/sys_module.rs.
func sysFuncs() []*value.Builtin {
	return []*value.Builtin{
		builtinFunc("env", "get an environment variable, or None if unset", "<name>", biSysEnv),
		builtinFunc("set", "set an environment variable for this process", "<name> <value>", biSysSet),
		builtinFunc("unset", "unset an environment variable", "<name>", biSysUnset),
		builtinFunc("vars", "get all environment variables as a map", "", biSysVars),
		builtinFunc("has", "check if an environment variable is set", "<name>", biSysHas),
		builtinFunc("args", "get the process argument list", "", biSysArgs),
	}
}

func biSysEnv(args []value.Value, _ value.Env) (value.Value, error) {
	name, err := str1("env", args)
	if err != nil {
		return nil, err
	}
	v, ok := os.LookupEnv(name)
	if !ok {
		return value.None, nil
	}
	return value.String(v), nil
}

func biSysSet(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("set", args, 2); err != nil {
		return nil, err
	}
	name, err := asString("set", args[0])
	if err != nil {
		return nil, err
	}
	val, err := asString("set", args[1])
	if err != nil {
		return nil, err
	}
	if err := os.Setenv(name, val); err != nil {
		return nil, err
	}
	return value.None, nil
}

func biSysUnset(args []value.Value, _ value.Env) (value.Value, error) {
	name, err := str1("unset", args)
	if err != nil {
		return nil, err
	}
	if err := os.Unsetenv(name); err != nil {
		return nil, err
	}
	return value.None, nil
}

func biSysVars(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("vars", args, 0); err != nil {
		return nil, err
	}
	m := value.EmptyMap()
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m = m.Insert(k, value.String(v))
	}
	return m, nil
}

func biSysHas(args []value.Value, _ value.Env) (value.Value, error) {
	name, err := str1("has", args)
	if err != nil {
		return nil, err
	}
	_, ok := os.LookupEnv(name)
	return value.Bool(ok), nil
}

func biSysArgs(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("args", args, 0); err != nil {
		return nil, err
	}
	out := make([]value.Value, len(os.Args))
	for i, a := range os.Args {
		out[i] = value.String(a)
	}
	return value.NewList(out), nil
}
