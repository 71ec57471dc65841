package builtin

import "github.com/lumesh-lang/lumesh/lang/value"

// mapFuncs is grounded in original_source/src/modules/bin/map_module.rs.
func mapFuncs() []*value.Builtin {
	return []*value.Builtin{
		builtinFunc("len", "get number of entries", "<map>", biMapLen),
		builtinFunc("has", "check if map has a key", "<key> <map>", biMapHas),
		builtinFunc("get", "get value for key, or None", "<key> <map>", biMapGet),
		builtinFunc("keys", "get list of keys in insertion order", "<map>", biMapKeys),
		builtinFunc("values", "get list of values in key order", "<map>", biMapValues),
		builtinFunc("insert", "insert or replace a key's value", "<key> <value> <map>", biMapInsert),
		builtinFunc("remove", "remove a key", "<key> <map>", biMapRemove),
		builtinFunc("merge", "merge two maps, right side wins on conflict", "<map1> <map2>", biMapMerge),
		builtinFunc("items", "get list of [key, value] pairs", "<map>", biMapItems),
		builtinFunc("from_items", "build a map from a list of [key, value] pairs", "<list>", biMapFromItems),
		builtinFunc("filter", "filter entries by predicate over key and value", "<fn> <map>", biMapFilter),
		builtinFunc("map", "apply function to every value", "<fn> <map>", biMapMap),
	}
}

func asMap(name string, v value.Value) (*value.Map, error) {
	m, ok := v.(*value.Map)
	if !ok {
		return nil, argErr(name, 0, 0)
	}
	return m, nil
}

func biMapLen(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("len", args, 1); err != nil {
		return nil, err
	}
	m, err := asMap("len", args[0])
	if err != nil {
		return nil, err
	}
	return value.Int(m.Len()), nil
}

func biMapHas(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("has", args, 2); err != nil {
		return nil, err
	}
	key, err := asString("has", args[0])
	if err != nil {
		return nil, err
	}
	m, err := asMap("has", args[1])
	if err != nil {
		return nil, err
	}
	return value.Bool(m.ContainsKey(key)), nil
}

func biMapGet(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("get", args, 2); err != nil {
		return nil, err
	}
	key, err := asString("get", args[0])
	if err != nil {
		return nil, err
	}
	m, err := asMap("get", args[1])
	if err != nil {
		return nil, err
	}
	v, ok := m.Get(key)
	if !ok {
		return value.None, nil
	}
	return v, nil
}

func biMapKeys(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("keys", args, 1); err != nil {
		return nil, err
	}
	m, err := asMap("keys", args[0])
	if err != nil {
		return nil, err
	}
	keys := m.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = value.String(k)
	}
	return value.NewList(out), nil
}

func biMapValues(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("values", args, 1); err != nil {
		return nil, err
	}
	m, err := asMap("values", args[0])
	if err != nil {
		return nil, err
	}
	keys := m.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		v, _ := m.Get(k)
		out[i] = v
	}
	return value.NewList(out), nil
}

func biMapInsert(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("insert", args, 3); err != nil {
		return nil, err
	}
	key, err := asString("insert", args[0])
	if err != nil {
		return nil, err
	}
	m, err := asMap("insert", args[2])
	if err != nil {
		return nil, err
	}
	return m.Insert(key, args[1]), nil
}

func biMapRemove(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("remove", args, 2); err != nil {
		return nil, err
	}
	key, err := asString("remove", args[0])
	if err != nil {
		return nil, err
	}
	m, err := asMap("remove", args[1])
	if err != nil {
		return nil, err
	}
	return m.Remove(key), nil
}

func biMapMerge(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("merge", args, 2); err != nil {
		return nil, err
	}
	a, err := asMap("merge", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asMap("merge", args[1])
	if err != nil {
		return nil, err
	}
	return a.Merge(b), nil
}

func biMapItems(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("items", args, 1); err != nil {
		return nil, err
	}
	m, err := asMap("items", args[0])
	if err != nil {
		return nil, err
	}
	keys := m.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		v, _ := m.Get(k)
		out[i] = value.NewList([]value.Value{value.String(k), v})
	}
	return value.NewList(out), nil
}

func biMapFromItems(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("from_items", args, 1); err != nil {
		return nil, err
	}
	l, err := asList("from_items", args[0])
	if err != nil {
		return nil, err
	}
	m := value.EmptyMap()
	for _, pair := range l.Items() {
		pl, ok := pair.(*value.List)
		if !ok || pl.Len() != 2 {
			return nil, argErr("from_items", 0, 0)
		}
		key, err := asString("from_items", pl.Index(0))
		if err != nil {
			return nil, err
		}
		m = m.Insert(key, pl.Index(1))
	}
	return m, nil
}

func biMapFilter(args []value.Value, env value.Env) (value.Value, error) {
	if err := requireArgs("filter", args, 2); err != nil {
		return nil, err
	}
	m, err := asMap("filter", args[1])
	if err != nil {
		return nil, err
	}
	out := value.EmptyMap()
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		keep, err := callFn(env, args[0], value.String(k), v)
		if err != nil {
			return nil, err
		}
		if keep.Truthy() {
			out = out.Insert(k, v)
		}
	}
	return out, nil
}

func biMapMap(args []value.Value, env value.Env) (value.Value, error) {
	if err := requireArgs("map", args, 2); err != nil {
		return nil, err
	}
	m, err := asMap("map", args[1])
	if err != nil {
		return nil, err
	}
	out := value.EmptyMap()
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		nv, err := callFn(env, args[0], v)
		if err != nil {
			return nil, err
		}
		out = out.Insert(k, nv)
	}
	return out, nil
}
