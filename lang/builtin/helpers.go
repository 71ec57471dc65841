package builtin

import (
	"fmt"

	"github.com/lumesh-lang/lumesh/lang/value"
)

func argErr(name string, want int, got int) error {
	return fmt.Errorf("%s: expected %d argument(s), got %d", name, want, got)
}

func requireArgs(name string, args []value.Value, n int) error {
	if len(args) != n {
		return argErr(name, n, len(args))
	}
	return nil
}

func requireMinArgs(name string, args []value.Value, n int) error {
	if len(args) < n {
		return fmt.Errorf("%s: expected at least %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func asList(name string, v value.Value) (*value.List, error) {
	l, ok := v.(*value.List)
	if !ok {
		return nil, fmt.Errorf("%s: expected List, found %s", name, v.Type())
	}
	return l, nil
}

func asString(name string, v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", fmt.Errorf("%s: expected String, found %s", name, v.Type())
	}
	return string(s), nil
}

func asInt(name string, v value.Value) (int64, error) {
	i, ok := v.(value.Int)
	if !ok {
		return 0, fmt.Errorf("%s: expected Integer, found %s", name, v.Type())
	}
	return int64(i), nil
}

func asFloat(name string, v value.Value) (float64, error) {
	switch n := v.(type) {
	case value.Int:
		return float64(n), nil
	case value.Float:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%s: expected Integer or Float, found %s", name, v.Type())
}

// numericElems extracts a flat numeric list from args: either the args
// themselves (multi-arg call form) or a single List argument (array form),
// matching the teacher corpus's "num1 num2 ... | array" calling convention.
func numericElems(args []value.Value) []value.Value {
	if len(args) == 1 {
		if l, ok := args[0].(*value.List); ok {
			return l.Items()
		}
	}
	return args
}

func callFn(env value.Env, fn value.Value, args ...value.Value) (value.Value, error) {
	return env.Call(fn, args)
}
