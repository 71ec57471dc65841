// Package arith implements lumesh's overloaded binary and unary operators
// over the value lattice, including numeric coercion (spec component C,
// §4.C). The coercion rules follow the first matching row of the operator
// table in spec.md §4.C; this file preserves that match order.
package arith

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lumesh-lang/lumesh/lang/errs"
	"github.com/lumesh-lang/lumesh/lang/value"
)

// Binary applies op to x and y. Unknown operator names (i.e. anything not
// in the fixed table) are reported via errs.InvalidOperator; user-defined
// `_op` overloads are dispatched by the evaluator before it calls Binary
// (spec §4.C "User-defined operators").
func Binary(op string, x, y value.Value) (value.Value, error) {
	switch op {
	case "+":
		return add(x, y)
	case "-":
		return sub(x, y)
	case "*":
		return mul(x, y)
	case "/":
		return div(x, y)
	case "%":
		return rem(x, y)
	case "^":
		return pow(x, y)
	case "..":
		return rng(x, y, false)
	case "..=":
		return rng(x, y, true)
	case "==":
		return value.Bool(value.Equals(x, y)), nil
	case "!=":
		return value.Bool(!value.Equals(x, y)), nil
	case "<", ">", "<=", ">=":
		return compareOp(op, x, y)
	case "~:":
		return containsOp(x, y)
	case "~~":
		return regexMatch(x, y)
	case "~=":
		return value.Bool(value.Display(x) == value.Display(y)), nil
	case "&&":
		return value.Bool(x.Truthy() && y.Truthy()), nil
	case "||":
		return value.Bool(x.Truthy() || y.Truthy()), nil
	default:
		return nil, errs.New(errs.InvalidOperator, "%s", op)
	}
}

// Unary applies op (one of "!" or "-") to x.
func Unary(op string, x value.Value) (value.Value, error) {
	switch op {
	case "!":
		return value.Bool(!x.Truthy()), nil
	case "-":
		switch n := x.(type) {
		case value.Int:
			if n == math.MinInt64 {
				return nil, errs.New(errs.Overflow, "negation overflow: -%d", n)
			}
			return -n, nil
		case value.Float:
			return -n, nil
		}
		return nil, errs.TypeErr("Integer or Float", x.Type(), "-")
	default:
		return nil, errs.New(errs.InvalidOperator, "%s", op)
	}
}

func numeric(x, y value.Value) (xi, yi value.Int, xf, yf value.Float, isFloat, ok bool) {
	switch a := x.(type) {
	case value.Int:
		switch b := y.(type) {
		case value.Int:
			return a, b, 0, 0, false, true
		case value.Float:
			return 0, 0, value.Float(a), b, true, true
		}
	case value.Float:
		switch b := y.(type) {
		case value.Int:
			return 0, 0, a, value.Float(b), true, true
		case value.Float:
			return 0, 0, a, b, true, true
		}
	}
	return 0, 0, 0, 0, false, false
}

func add(x, y value.Value) (value.Value, error) {
	if xi, yi, xf, yf, isFloat, ok := numeric(x, y); ok {
		if isFloat {
			return xf + yf, nil
		}
		r, err := checkedAdd(int64(xi), int64(yi))
		return value.Int(r), err
	}
	switch a := x.(type) {
	case value.String:
		switch b := y.(type) {
		case value.String:
			return a + b, nil
		case value.Int:
			n, err := parseStrAsInt(string(a))
			if err != nil {
				return nil, err
			}
			r, err := checkedAdd(n, int64(b))
			return value.Int(r), err
		}
	case value.Bytes:
		if b, ok := y.(value.String); ok {
			return append(append(value.Bytes{}, a...), []byte(b)...), nil
		}
	case *value.List:
		if b, ok := y.(*value.List); ok {
			return a.Concat(b), nil
		}
		return a.Append(y), nil
	case *value.HMap:
		if b, ok := y.(*value.HMap); ok {
			return a.Merge(b), nil
		}
		return a.Insert(value.StringKey(y), y), nil
	case *value.Map:
		if b, ok := y.(*value.Map); ok {
			return a.Merge(b), nil
		}
		return a.Insert(value.StringKey(y), y), nil
	case value.Range:
		if b, ok := y.(value.Int); ok {
			return value.Range{Start: a.Start, Stop: a.Stop + int64(b), Step: a.Step}, nil
		}
	}
	return nil, errs.TypeErr(x.Type(), y.Type(), "+")
}

func sub(x, y value.Value) (value.Value, error) {
	if xi, yi, xf, yf, isFloat, ok := numeric(x, y); ok {
		if isFloat {
			return xf - yf, nil
		}
		r, err := checkedSub(int64(xi), int64(yi))
		return value.Int(r), err
	}
	switch a := x.(type) {
	case value.String:
		switch b := y.(type) {
		case value.String:
			return value.String(removeFirst(string(a), string(b))), nil
		case value.Int:
			return value.String(truncateStr(string(a), int64(b))), nil
		case value.Float:
			return value.String(removeFirst(string(a), b.String())), nil
		}
	case value.Range:
		if b, ok := y.(value.Int); ok {
			if b >= 0 {
				return value.Range{Start: a.Start, Stop: a.Stop - int64(b), Step: a.Step}, nil
			}
			return value.Range{Start: a.Start - int64(b), Stop: a.Stop, Step: a.Step}, nil
		}
	case *value.List:
		if b, ok := y.(*value.List); ok {
			return a.Difference(b), nil
		}
		return a.RemoveFirst(y), nil
	case *value.HMap:
		if key, ok := asKey(y); ok {
			return a.Remove(key), nil
		}
		if b, ok := y.(*value.HMap); ok {
			out := a
			for _, k := range b.Keys() {
				out = out.Remove(k)
			}
			return out, nil
		}
	case *value.Map:
		if key, ok := asKey(y); ok {
			return a.Remove(key), nil
		}
		if b, ok := y.(*value.Map); ok {
			return a.RemoveKeys(b), nil
		}
	}
	return nil, errs.TypeErr(x.Type(), y.Type(), "-")
}

func mul(x, y value.Value) (value.Value, error) {
	if xi, yi, xf, yf, isFloat, ok := numeric(x, y); ok {
		if isFloat {
			return xf * yf, nil
		}
		r, err := checkedMul(int64(xi), int64(yi))
		return value.Int(r), err
	}
	switch a := x.(type) {
	case value.String:
		if n, ok := asInt(y); ok {
			if n < 0 {
				return nil, errs.New(errs.TypeError, "cannot repeat a string a negative number of times")
			}
			return value.String(strings.Repeat(string(a), int(n))), nil
		}
	case *value.List:
		if b, ok := y.(*value.List); ok {
			return matMul(a, b)
		}
		if f, ok := asFloat(y); ok {
			return scaleList(a, f)
		}
	}
	return nil, errs.TypeErr(x.Type(), y.Type(), "*")
}

func div(x, y value.Value) (value.Value, error) {
	if xi, yi, xf, yf, isFloat, ok := numeric(x, y); ok {
		if isFloat {
			if yf == 0 {
				return nil, errs.New(errs.DivByZero, "division by zero")
			}
			return xf / yf, nil
		}
		r, err := checkedDiv(int64(xi), int64(yi))
		return value.Int(r), err
	}
	if a, ok := x.(*value.List); ok {
		if f, ok := asFloat(y); ok {
			if f == 0 {
				return nil, errs.New(errs.DivByZero, "division by zero")
			}
			return scaleList(a, 1/f)
		}
	}
	return nil, errs.TypeErr(x.Type(), y.Type(), "/")
}

func rem(x, y value.Value) (value.Value, error) {
	xi, ok1 := x.(value.Int)
	yi, ok2 := y.(value.Int)
	if ok1 && ok2 {
		r, err := checkedRem(int64(xi), int64(yi))
		return value.Int(r), err
	}
	return value.None, nil // spec table: Fallthrough column is "None" for %
}

func pow(x, y value.Value) (value.Value, error) {
	if xi, yi, xf, yf, isFloat, ok := numeric(x, y); ok {
		if isFloat {
			return value.Float(math.Pow(float64(xf), float64(yf))), nil
		}
		r, err := checkedPow(int64(xi), int64(yi))
		return value.Int(r), err
	}
	return nil, errs.TypeErr(x.Type(), y.Type(), "^")
}

func rng(x, y value.Value, inclusive bool) (value.Value, error) {
	xi, ok1 := x.(value.Int)
	yi, ok2 := y.(value.Int)
	if !ok1 || !ok2 {
		return nil, errs.TypeErr("Integer", x.Type()+","+y.Type(), "..")
	}
	stop := int64(yi)
	if inclusive {
		stop++
	}
	return value.NewRange(int64(xi), stop), nil
}

func compareOp(op string, x, y value.Value) (value.Value, error) {
	c, err := value.Compare(x, y)
	if err != nil {
		return nil, errs.TypeErr(x.Type(), y.Type(), op)
	}
	switch op {
	case "<":
		return value.Bool(c < 0), nil
	case ">":
		return value.Bool(c > 0), nil
	case "<=":
		return value.Bool(c <= 0), nil
	case ">=":
		return value.Bool(c >= 0), nil
	}
	panic("unreachable")
}

func containsOp(x, y value.Value) (value.Value, error) {
	switch b := y.(type) {
	case value.String:
		if a, ok := x.(value.String); ok {
			return value.Bool(strings.Contains(string(b), string(a))), nil
		}
	case *value.List:
		return value.Bool(b.Contains(x)), nil
	case *value.Map:
		if key, ok := asKey(x); ok {
			return value.Bool(b.ContainsKey(key)), nil
		}
	case *value.HMap:
		if key, ok := asKey(x); ok {
			return value.Bool(b.ContainsKey(key)), nil
		}
	}
	return value.Bool(false), nil
}

// regexMatch implements `~~`, grounded in original_source/src/expr.rs's
// `Regex::new(&r.to_string())` / `is_match(&l.to_string())`: y is compiled
// as a pattern and tested against x's display form.
func regexMatch(x, y value.Value) (value.Value, error) {
	re, err := regexp.Compile(value.Display(y))
	if err != nil {
		return nil, errs.New(errs.InvalidOperator, "invalid regex %q: %s", value.Display(y), err)
	}
	return value.Bool(re.MatchString(value.Display(x))), nil
}

func asKey(v value.Value) (string, bool) {
	switch v.(type) {
	case value.String, value.Int, value.Float, value.Bool, value.Symbol:
		return value.StringKey(v), true
	}
	return "", false
}

func asInt(v value.Value) (int64, bool) {
	if i, ok := v.(value.Int); ok {
		return int64(i), true
	}
	return 0, false
}

func asFloat(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case value.Int:
		return float64(n), true
	case value.Float:
		return float64(n), true
	}
	return 0, false
}

func scaleList(l *value.List, f float64) (value.Value, error) {
	items := l.Items()
	out := make([]value.Value, len(items))
	for i, it := range items {
		switch n := it.(type) {
		case value.Int:
			out[i] = value.Float(float64(n) * f)
		case value.Float:
			out[i] = value.Float(float64(n) * f)
		default:
			out[i] = it
		}
	}
	return value.NewList(out), nil
}

func matMul(a, b *value.List) (value.Value, error) {
	aRows := a.Items()
	var aCols int
	if len(aRows) > 0 {
		if row, ok := aRows[0].(*value.List); ok {
			aCols = row.Len()
		}
	}
	bRows := b.Items()
	if aCols != len(bRows) {
		return nil, errs.New(errs.TypeError, "matrix dimensions do not match for multiplication: %dx%d and %dx%d",
			len(aRows), aCols, len(bRows), matCols(b))
	}
	bCols := matCols(b)
	result := make([]value.Value, len(aRows))
	for i := range aRows {
		row := make([]value.Value, bCols)
		for j := 0; j < bCols; j++ {
			var sum float64
			for k := 0; k < aCols; k++ {
				sum += matAt(a, i, k) * matAt(b, k, j)
			}
			row[j] = value.Float(sum)
		}
		result[i] = value.NewList(row)
	}
	return value.NewList(result), nil
}

func matCols(m *value.List) int {
	items := m.Items()
	if len(items) == 0 {
		return 0
	}
	if row, ok := items[0].(*value.List); ok {
		return row.Len()
	}
	return 0
}

func matAt(m *value.List, i, j int) float64 {
	items := m.Items()
	if i >= len(items) {
		return 0
	}
	row, ok := items[i].(*value.List)
	if !ok || j >= row.Len() {
		return 0
	}
	f, _ := asFloat(row.Index(j))
	return f
}

func removeFirst(s, sub string) string {
	idx := strings.Index(s, sub)
	if idx < 0 {
		return s
	}
	return s[:idx] + s[idx+len(sub):]
}

func truncateStr(s string, n int64) string {
	r := []rune(s)
	if n >= 0 {
		if int64(len(r)) >= n {
			return string(r[:int64(len(r))-n])
		}
		return ""
	}
	l := -n
	if l <= int64(len(r)) {
		return string(r[l:])
	}
	return ""
}

func parseStrAsInt(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errs.New(errs.TypeError, "cannot convert string %q to integer", s)
	}
	return n, nil
}
