package eval

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"

	"github.com/lumesh-lang/lumesh/lang/ast"
	"github.com/lumesh-lang/lumesh/lang/env"
	"github.com/lumesh-lang/lumesh/lang/errs"
	"github.com/lumesh-lang/lumesh/lang/value"
)

// evalFor iterates n.Source, binding n.Var (and n.Index, if present) to a
// fresh inner scope per iteration; per spec §4.D, For does not special-case
// Break — it is left to propagate to the nearest enclosing While/Loop/
// function boundary, unlike While/Loop which claim it themselves.
func (ev *Evaluator) evalFor(n ast.For, e *env.Environment, c ctx) (value.Value, error) {
	src, err := ev.eval(n.Source, e, c)
	if err != nil {
		return nil, err
	}
	items, err := forItems(src)
	if err != nil {
		return nil, err
	}

	var results []value.Value
	for i, item := range items {
		scope := e.Fork()
		scope.Define(n.Var, item)
		if n.Index != "" {
			scope.Define(n.Index, value.Int(i))
		}
		v, err := ev.eval(n.Body, scope, c)
		if err != nil {
			return nil, err
		}
		if _, isNone := v.(value.NoneType); !isNone {
			results = append(results, v)
		}
	}
	return value.NewList(results), nil
}

func forItems(src value.Value) ([]value.Value, error) {
	switch s := src.(type) {
	case value.Range:
		return s.Values(), nil
	case *value.List:
		return append([]value.Value{}, s.Items()...), nil
	case value.String:
		return splitForIteration(string(s))
	}
	return nil, errs.New(errs.ForNonList, "cannot iterate over %s", src.Type())
}

// splitForIteration splits a bare string source the way a shell `for`
// splits command substitution output: on the IFS environment variable if
// set, else on newlines if the string contains any, else on runs of
// whitespace (via shlex, which also strips shell quoting), falling back to
// splitting on commas/semicolons. Each resulting token that contains a `*`
// is glob-expanded in place, per spec §4.D's wildcard-expansion-in-For rule.
func splitForIteration(s string) ([]value.Value, error) {
	ifs := os.Getenv("IFS")
	var fields []string
	switch {
	case ifs != "":
		fields = strings.FieldsFunc(s, func(r rune) bool { return strings.ContainsRune(ifs, r) })
	case strings.Contains(s, "\n"):
		fields = strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	default:
		toks, err := shlex.Split(s)
		if err != nil || len(toks) == 0 {
			fields = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
		} else {
			fields = toks
		}
	}

	var out []value.Value
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(f, "*") {
			matches, err := filepath.Glob(f)
			if err != nil || len(matches) == 0 {
				return nil, errs.New(errs.WildcardNotMatched, "%s", f)
			}
			for _, m := range matches {
				out = append(out, value.String(m))
			}
			continue
		}
		out = append(out, value.String(f))
	}
	return out, nil
}

