package builtin

import (
	"sort"

	"github.com/lumesh-lang/lumesh/lang/value"
)

// listFuncs is grounded in original_source/src/modules/bin/list_module.rs:
// the same verbs (sum, map, filter, each, join, take, drop, unique, ...)
// reimplemented over the Go value lattice's shared-immutable *List.
func listFuncs() []*value.Builtin {
	return []*value.Builtin{
		builtinFunc("len", "get length of list", "<list>", biListLen),
		builtinFunc("sum", "sum a list of numbers", "<num1> <num2> ... | <array>", biListSum),
		builtinFunc("average", "get the average of a list of numbers", "<num1> <num2> ... | <array>", biListAverage),
		builtinFunc("max", "get max value in an array or multi args", "<num1> <num2> ... | <array>", biListMax),
		builtinFunc("min", "get min value in an array or multi args", "<num1> <num2> ... | <array>", biListMin),
		builtinFunc("first", "get the first element of a list", "<list>", biListFirst),
		builtinFunc("last", "get the last element of a list", "<list>", biListLast),
		builtinFunc("at", "get the nth element of a list", "<index> <list>", biListAt),
		builtinFunc("take", "take the first n elements of a list", "<count> <list>", biListTake),
		builtinFunc("drop", "drop the first n elements of a list", "<count> <list>", biListDrop),
		builtinFunc("contains", "check if list contains an item", "<item> <list>", biListContains),
		builtinFunc("append", "append an element to a list", "<element> <list>", biListAppend),
		builtinFunc("prepend", "prepend an element to a list", "<element> <list>", biListPrepend),
		builtinFunc("unique", "remove duplicates from a list while preserving order", "<list>", biListUnique),
		builtinFunc("rev", "reverse sequence", "<list>", biListRev),
		builtinFunc("concat", "concatenate multiple lists into one", "<list1> <list2> ...", biListConcat),
		builtinFunc("each", "execute function for each element", "<fn> <list>", biListEach),
		builtinFunc("map", "apply function to each element", "<fn> <list>", biListMap),
		builtinFunc("filter", "filter elements by condition", "<fn> <list>", biListFilter),
		builtinFunc("reduce", "reduce list with accumulator function", "<fn> <init> <list>", biListReduce),
		builtinFunc("any", "test if any element passes condition", "<fn> <list>", biListAny),
		builtinFunc("all", "test if all elements pass condition", "<fn> <list>", biListAll),
		builtinFunc("join", "join string list with separator", "<separator> <list>", biListJoin),
		builtinFunc("sort", "sort a list, optionally with a key function", "[key_fn] <list>", biListSort),
		builtinFunc("zip", "zip two lists into list of pairs", "<list1> <list2>", biListZip),
	}
}

func biListLen(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("len", args, 1); err != nil {
		return nil, err
	}
	l, err := asList("len", args[0])
	if err != nil {
		return nil, err
	}
	return value.Int(l.Len()), nil
}

func biListSum(args []value.Value, _ value.Env) (value.Value, error) {
	elems := numericElems(args)
	var isFloat bool
	var fsum float64
	var isum int64
	for _, e := range elems {
		switch n := e.(type) {
		case value.Int:
			isum += int64(n)
			fsum += float64(n)
		case value.Float:
			isFloat = true
			fsum += float64(n)
		default:
			return nil, argErr("sum", 0, 0)
		}
	}
	if isFloat {
		return value.Float(fsum), nil
	}
	return value.Int(isum), nil
}

func biListAverage(args []value.Value, env value.Env) (value.Value, error) {
	elems := numericElems(args)
	if len(elems) == 0 {
		return value.Float(0), nil
	}
	sum, err := biListSum(elems, env)
	if err != nil {
		return nil, err
	}
	f, _ := asFloat("average", sum)
	return value.Float(f / float64(len(elems))), nil
}

func biListMax(args []value.Value, _ value.Env) (value.Value, error) {
	elems := numericElems(args)
	if len(elems) == 0 {
		return nil, argErr("max", 1, 0)
	}
	best := elems[0]
	for _, e := range elems[1:] {
		c, err := value.Compare(e, best)
		if err != nil {
			return nil, err
		}
		if c > 0 {
			best = e
		}
	}
	return best, nil
}

func biListMin(args []value.Value, _ value.Env) (value.Value, error) {
	elems := numericElems(args)
	if len(elems) == 0 {
		return nil, argErr("min", 1, 0)
	}
	best := elems[0]
	for _, e := range elems[1:] {
		c, err := value.Compare(e, best)
		if err != nil {
			return nil, err
		}
		if c < 0 {
			best = e
		}
	}
	return best, nil
}

func biListFirst(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("first", args, 1); err != nil {
		return nil, err
	}
	l, err := asList("first", args[0])
	if err != nil {
		return nil, err
	}
	if l.Len() == 0 {
		return value.None, nil
	}
	return l.Index(0), nil
}

func biListLast(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("last", args, 1); err != nil {
		return nil, err
	}
	l, err := asList("last", args[0])
	if err != nil {
		return nil, err
	}
	if l.Len() == 0 {
		return value.None, nil
	}
	return l.Index(l.Len() - 1), nil
}

func biListAt(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("at", args, 2); err != nil {
		return nil, err
	}
	i, err := asInt("at", args[0])
	if err != nil {
		return nil, err
	}
	l, err := asList("at", args[1])
	if err != nil {
		return nil, err
	}
	idx := int(i)
	if idx < 0 {
		idx += l.Len()
	}
	if idx < 0 || idx >= l.Len() {
		return value.None, nil
	}
	return l.Index(idx), nil
}

func biListTake(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("take", args, 2); err != nil {
		return nil, err
	}
	n, err := asInt("take", args[0])
	if err != nil {
		return nil, err
	}
	l, err := asList("take", args[1])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if int(n) > l.Len() {
		n = int64(l.Len())
	}
	return l.Slice(0, int(n), 1), nil
}

func biListDrop(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("drop", args, 2); err != nil {
		return nil, err
	}
	n, err := asInt("drop", args[0])
	if err != nil {
		return nil, err
	}
	l, err := asList("drop", args[1])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if int(n) > l.Len() {
		n = int64(l.Len())
	}
	return l.Slice(int(n), l.Len(), 1), nil
}

func biListContains(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("contains", args, 2); err != nil {
		return nil, err
	}
	l, err := asList("contains", args[1])
	if err != nil {
		return nil, err
	}
	return value.Bool(l.Contains(args[0])), nil
}

func biListAppend(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("append", args, 2); err != nil {
		return nil, err
	}
	l, err := asList("append", args[1])
	if err != nil {
		return nil, err
	}
	return l.Append(args[0]), nil
}

func biListPrepend(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("prepend", args, 2); err != nil {
		return nil, err
	}
	l, err := asList("prepend", args[1])
	if err != nil {
		return nil, err
	}
	return l.Push(args[0]), nil
}

func biListUnique(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("unique", args, 1); err != nil {
		return nil, err
	}
	l, err := asList("unique", args[0])
	if err != nil {
		return nil, err
	}
	var out []value.Value
	for _, e := range l.Items() {
		dup := false
		for _, seen := range out {
			if value.Equals(e, seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return value.NewList(out), nil
}

func biListRev(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("rev", args, 1); err != nil {
		return nil, err
	}
	l, err := asList("rev", args[0])
	if err != nil {
		return nil, err
	}
	return l.Reversed(), nil
}

func biListConcat(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireMinArgs("concat", args, 1); err != nil {
		return nil, err
	}
	out := value.EmptyList()
	for _, a := range args {
		l, err := asList("concat", a)
		if err != nil {
			return nil, err
		}
		out = out.Concat(l)
	}
	return out, nil
}

func biListEach(args []value.Value, env value.Env) (value.Value, error) {
	if err := requireArgs("each", args, 2); err != nil {
		return nil, err
	}
	l, err := asList("each", args[1])
	if err != nil {
		return nil, err
	}
	for _, e := range l.Items() {
		if _, err := callFn(env, args[0], e); err != nil {
			return nil, err
		}
	}
	return value.None, nil
}

func biListMap(args []value.Value, env value.Env) (value.Value, error) {
	if err := requireArgs("map", args, 2); err != nil {
		return nil, err
	}
	l, err := asList("map", args[1])
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, l.Len())
	for i, e := range l.Items() {
		v, err := callFn(env, args[0], e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return value.NewList(out), nil
}

func biListFilter(args []value.Value, env value.Env) (value.Value, error) {
	if err := requireArgs("filter", args, 2); err != nil {
		return nil, err
	}
	l, err := asList("filter", args[1])
	if err != nil {
		return nil, err
	}
	var out []value.Value
	for _, e := range l.Items() {
		v, err := callFn(env, args[0], e)
		if err != nil {
			return nil, err
		}
		if v.Truthy() {
			out = append(out, e)
		}
	}
	return value.NewList(out), nil
}

func biListReduce(args []value.Value, env value.Env) (value.Value, error) {
	if err := requireArgs("reduce", args, 3); err != nil {
		return nil, err
	}
	l, err := asList("reduce", args[2])
	if err != nil {
		return nil, err
	}
	acc := args[1]
	for _, e := range l.Items() {
		acc, err = callFn(env, args[0], acc, e)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func biListAny(args []value.Value, env value.Env) (value.Value, error) {
	if err := requireArgs("any", args, 2); err != nil {
		return nil, err
	}
	l, err := asList("any", args[1])
	if err != nil {
		return nil, err
	}
	for _, e := range l.Items() {
		v, err := callFn(env, args[0], e)
		if err != nil {
			return nil, err
		}
		if v.Truthy() {
			return value.Bool(true), nil
		}
	}
	return value.Bool(false), nil
}

func biListAll(args []value.Value, env value.Env) (value.Value, error) {
	if err := requireArgs("all", args, 2); err != nil {
		return nil, err
	}
	l, err := asList("all", args[1])
	if err != nil {
		return nil, err
	}
	for _, e := range l.Items() {
		v, err := callFn(env, args[0], e)
		if err != nil {
			return nil, err
		}
		if !v.Truthy() {
			return value.Bool(false), nil
		}
	}
	return value.Bool(true), nil
}

func biListJoin(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("join", args, 2); err != nil {
		return nil, err
	}
	sep, err := asString("join", args[0])
	if err != nil {
		return nil, err
	}
	l, err := asList("join", args[1])
	if err != nil {
		return nil, err
	}
	var b []byte
	for i, e := range l.Items() {
		if i > 0 {
			b = append(b, sep...)
		}
		b = append(b, value.Display(e)...)
	}
	return value.String(b), nil
}

func biListSort(args []value.Value, env value.Env) (value.Value, error) {
	if err := requireMinArgs("sort", args, 1); err != nil {
		return nil, err
	}
	var keyFn value.Value
	target := args[len(args)-1]
	if len(args) == 2 {
		keyFn = args[0]
	}
	l, err := asList("sort", target)
	if err != nil {
		return nil, err
	}
	items := append([]value.Value{}, l.Items()...)
	var sortErr error
	sort.SliceStable(items, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		a, b := items[i], items[j]
		if keyFn != nil {
			a, err = callFn(env, keyFn, a)
			if err != nil {
				sortErr = err
				return false
			}
			b, err = callFn(env, keyFn, b)
			if err != nil {
				sortErr = err
				return false
			}
		}
		c, err := value.Compare(a, b)
		if err != nil {
			sortErr = err
			return false
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return value.NewList(items), nil
}

func biListZip(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("zip", args, 2); err != nil {
		return nil, err
	}
	a, err := asList("zip", args[0])
	if err != nil {
		return nil, err
	}
	b, err := asList("zip", args[1])
	if err != nil {
		return nil, err
	}
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}
	out := make([]value.Value, n)
	for i := 0; i < n; i++ {
		out[i] = value.NewList([]value.Value{a.Index(i), b.Index(i)})
	}
	return value.NewList(out), nil
}
