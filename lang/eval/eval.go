// Package eval implements lumesh's tree-walking evaluator (spec components D/E/F):
// the Eval/eval switch over lang/ast nodes, call dispatch, pipelines and
// catch handling all live here, split across this file and
// dispatch.go/pipeline.go/catch.go by concern.
package eval

import (
	"github.com/lumesh-lang/lumesh/lang/arith"
	"github.com/lumesh-lang/lumesh/lang/ast"
	"github.com/lumesh-lang/lumesh/lang/builtin"
	"github.com/lumesh-lang/lumesh/lang/env"
	"github.com/lumesh-lang/lumesh/lang/errs"
	"github.com/lumesh-lang/lumesh/lang/value"
)

// Evaluator is the process-wide evaluator state: the built-in registry and
// nothing else — all per-evaluation state lives in ctx, not here, so a
// single Evaluator can serve concurrent evaluations safely as long as each
// uses its own *env.Environment tree.
type Evaluator struct {
	Registry *builtin.Registry
}

// New builds an Evaluator around reg.
func New(reg *builtin.Registry) *Evaluator {
	return &Evaluator{Registry: reg}
}

// Dispatcher implements env.Dispatcher, letting a Builtin's body call back
// into the evaluator (value.Env.Call) without lang/env depending on this
// package.
func (ev *Evaluator) Dispatcher(e *env.Environment, callable value.Value, args []value.Value) (value.Value, error) {
	return ev.applyValue(callable, args, e, newCtx())
}

// Eval is the evaluator's public entry point.
func (ev *Evaluator) Eval(node ast.Node, e *env.Environment) (value.Value, error) {
	return ev.eval(node, e, newCtx())
}

func (ev *Evaluator) eval(node ast.Node, e *env.Environment, c ctx) (value.Value, error) {
	*c.depth++
	defer func() { *c.depth-- }()
	if *c.depth > maxDepth {
		return nil, errs.New(errs.RecursionDepth, "exceeded max evaluation depth (%d)", maxDepth)
	}

	switch n := node.(type) {
	case ast.NoneLit:
		return value.None, nil
	case ast.BoolLit:
		return value.Bool(n.Value), nil
	case ast.IntLit:
		return value.Int(n.Value), nil
	case ast.FloatLit:
		return value.Float(n.Value), nil
	case ast.StringLit:
		return value.String(n.Value), nil
	case ast.BytesLit:
		return value.Bytes(n.Value), nil
	case ast.ValueLit:
		v, _ := n.Val.(value.Value)
		return v, nil
	case *ast.Ident:
		return ev.evalIdent(n, e, c)
	case ast.ListLit:
		out := make([]value.Value, len(n.Elems))
		for i, el := range n.Elems {
			v, err := ev.eval(el, e, c)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return value.NewList(out), nil
	case ast.MapLit:
		keys := make([]string, len(n.Entries))
		vals := make(map[string]value.Value, len(n.Entries))
		for i, entry := range n.Entries {
			v, err := ev.eval(entry.Val, e, c)
			if err != nil {
				return nil, err
			}
			keys[i] = entry.Key
			vals[entry.Key] = v
		}
		return value.NewMap(keys, vals), nil
	case ast.Group:
		return ev.eval(n.Inner, e, c)
	case ast.Quote:
		return value.Quote{Node: n.Body}, nil
	case ast.UnaryOp:
		return ev.evalUnary(n, e, c)
	case ast.BinaryOp:
		return ev.evalBinary(n, e, c)
	case ast.Pipe:
		return ev.evalPipe(n, e, c)
	case ast.Index:
		return ev.evalIndex(n, e, c)
	case ast.Slice:
		return ev.evalSlice(n, e, c)
	case ast.Declare:
		return ev.evalDeclare(n, e, c)
	case ast.Assign:
		return ev.evalAssign(n, e, c)
	case ast.CompoundAssign:
		return ev.evalCompoundAssign(n, e, c)
	case ast.Del:
		e.Undefine(n.Name)
		return value.None, nil
	case ast.Alias:
		return ev.evalAlias(n, e, c)
	case ast.Use:
		return ev.evalUse(n, e, c)
	case ast.Do:
		return ev.evalDo(n, e, c)
	case ast.If:
		return ev.evalIf(n, e, c)
	case ast.Match:
		return ev.evalMatch(n, e, c)
	case ast.For:
		return ev.evalFor(n, e, c)
	case ast.While:
		return ev.evalWhile(n, e, c)
	case ast.Loop:
		return ev.evalLoop(n, e, c)
	case ast.Return:
		v, err := ev.eval(n.Expr, e, c)
		if err != nil {
			return nil, err
		}
		return nil, &errs.EarlyReturn{Value: v}
	case ast.Break:
		v, err := ev.eval(n.Expr, e, c)
		if err != nil {
			return nil, err
		}
		return nil, &errs.EarlyBreak{Value: v}
	case ast.Catch:
		return ev.evalCatch(n, e, c)
	case ast.Apply:
		return ev.evalApply(n, e, c)
	case ast.Command:
		return ev.evalCommand(n, e, c)
	case ast.Chain:
		return ev.evalChain(n, e, c)
	case ast.LambdaLit:
		return &value.Lambda{Params: n.Params, Body: n.Body}, nil
	case ast.FunctionLit:
		return ev.evalFunctionLit(n, e, c)
	}
	return nil, errs.New(errs.Common, "unhandled ast node %T", node)
}

func (ev *Evaluator) evalIdent(n *ast.Ident, e *env.Environment, c ctx) (value.Value, error) {
	if n.Name == "_" {
		return value.Blank, nil
	}
	if !c.state.has(SkipBuiltinSeek) {
		if b, ok := ev.Registry.Lookup(n.Name); ok {
			if v, ok2 := e.Lookup(n.Name); ok2 {
				return v, nil
			}
			return b, nil
		}
	}
	if v, ok := e.Lookup(n.Name); ok {
		return v, nil
	}
	if n.Strict || e.Strict() {
		return nil, errs.New(errs.UndeclaredVariable, "%s", n.Name)
	}
	return value.Symbol{Name: n.Name}, nil
}

func (ev *Evaluator) evalUnary(n ast.UnaryOp, e *env.Environment, c ctx) (value.Value, error) {
	if n.Op == "++" || n.Op == "--" {
		return ev.evalIncDec(n, e, c)
	}
	x, err := ev.eval(n.Operand, e, c)
	if err != nil {
		return nil, err
	}
	if len(n.Op) >= 2 && n.Op[:2] == "__" {
		return ev.evalCustomUnary(n.Op, x, e, c)
	}
	return arithUnary(n.Op, x)
}

func (ev *Evaluator) evalIncDec(n ast.UnaryOp, e *env.Environment, c ctx) (value.Value, error) {
	ident, ok := n.Operand.(*ast.Ident)
	if !ok {
		return nil, errs.New(errs.TypeError, "%s requires an identifier operand", n.Op)
	}
	cur, ok := e.Lookup(ident.Name)
	if !ok {
		return nil, errs.New(errs.UndeclaredVariable, "%s", ident.Name)
	}
	op := "+"
	if n.Op == "--" {
		op = "-"
	}
	updated, err := arithBinary(op, cur, value.Int(1))
	if err != nil {
		return nil, err
	}
	if err := e.Assign(ident.Name, updated); err != nil {
		return nil, err
	}
	if n.Postfix {
		return cur, nil
	}
	return updated, nil
}

func (ev *Evaluator) evalCustomUnary(op string, x value.Value, e *env.Environment, c ctx) (value.Value, error) {
	fn, ok := e.Lookup(op)
	if !ok {
		return nil, errs.New(errs.InvalidOperator, "no custom operator %s defined", op)
	}
	return ev.applyValue(fn, []value.Value{x}, e, c)
}

func (ev *Evaluator) evalBinary(n ast.BinaryOp, e *env.Environment, c ctx) (value.Value, error) {
	if n.Op == "&&" {
		l, err := ev.eval(n.Left, e, c)
		if err != nil {
			return nil, err
		}
		if !l.Truthy() {
			return value.Bool(false), nil
		}
		r, err := ev.eval(n.Right, e, c)
		if err != nil {
			return nil, err
		}
		return value.Bool(r.Truthy()), nil
	}
	if n.Op == "||" {
		l, err := ev.eval(n.Left, e, c)
		if err != nil {
			return nil, err
		}
		if l.Truthy() {
			return value.Bool(true), nil
		}
		r, err := ev.eval(n.Right, e, c)
		if err != nil {
			return nil, err
		}
		return value.Bool(r.Truthy()), nil
	}
	if len(n.Op) >= 1 && n.Op[0] == '_' {
		l, err := ev.eval(n.Left, e, c)
		if err != nil {
			return nil, err
		}
		r, err := ev.eval(n.Right, e, c)
		if err != nil {
			return nil, err
		}
		fn, ok := e.Lookup(n.Op)
		if !ok {
			return nil, errs.New(errs.InvalidOperator, "no custom operator %s defined", n.Op)
		}
		return ev.applyValue(fn, []value.Value{l, r}, e, c)
	}
	l, err := ev.eval(n.Left, e, c)
	if err != nil {
		return nil, err
	}
	r, err := ev.eval(n.Right, e, c)
	if err != nil {
		return nil, err
	}
	return arithBinary(n.Op, l, r)
}

func (ev *Evaluator) evalIndex(n ast.Index, e *env.Environment, c ctx) (value.Value, error) {
	lv, err := ev.eval(n.Lhs, e, c)
	if err != nil {
		return nil, err
	}
	rv, err := ev.eval(n.Rhs, e, c.withState(SkipBuiltinSeek))
	if err != nil {
		return nil, err
	}
	switch container := lv.(type) {
	case *value.List:
		i, ok := rv.(value.Int)
		if !ok {
			return nil, errs.TypeErr("Integer", rv.Type(), n.Rhs.String())
		}
		idx := normalizeIndex(int64(i), container.Len())
		if idx < 0 || idx >= container.Len() {
			return nil, errs.IndexErr(int(i), container.Len())
		}
		return container.Index(idx), nil
	case value.String:
		i, ok := rv.(value.Int)
		if !ok {
			return nil, errs.TypeErr("Integer", rv.Type(), n.Rhs.String())
		}
		rs := container.Runes()
		idx := normalizeIndex(int64(i), len(rs))
		if idx < 0 || idx >= len(rs) {
			return nil, errs.IndexErr(int(i), len(rs))
		}
		return value.String(string(rs[idx])), nil
	case *value.Map:
		key := value.StringKey(rv)
		v, ok := container.Get(key)
		if !ok {
			return nil, errs.New(errs.KeyNotFound, "%s", key)
		}
		return v, nil
	case *value.HMap:
		key := value.StringKey(rv)
		v, ok := container.Get(key)
		if !ok {
			return nil, errs.New(errs.KeyNotFound, "%s", key)
		}
		return v, nil
	case value.ModuleRef:
		key := value.StringKey(rv)
		v, ok := container.Value.Get(key)
		if !ok {
			return nil, errs.New(errs.SymbolNotDefinedInModule, "%s.%s", container.String(), key)
		}
		return v, nil
	}
	return nil, errs.TypeErr("List, String, Map or HMap", lv.Type(), n.Lhs.String())
}

func normalizeIndex(i int64, length int) int {
	idx := int(i)
	if idx < 0 {
		idx += length
	}
	return idx
}

func clampIdx(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

func (ev *Evaluator) evalSlice(n ast.Slice, e *env.Environment, c ctx) (value.Value, error) {
	lv, err := ev.eval(n.List, e, c)
	if err != nil {
		return nil, err
	}
	var length int
	switch container := lv.(type) {
	case *value.List:
		length = container.Len()
	case value.String:
		length = container.Len()
	default:
		return nil, errs.TypeErr("List or String", lv.Type(), n.List.String())
	}

	step := int64(1)
	if n.Params.Step != nil {
		sv, err := ev.eval(n.Params.Step, e, c)
		if err != nil {
			return nil, err
		}
		si, ok := sv.(value.Int)
		if !ok {
			return nil, errs.TypeErr("Integer", sv.Type(), "slice step")
		}
		step = int64(si)
		if step == 0 {
			return nil, errs.New(errs.TypeError, "slice step must not be zero")
		}
	}

	var start, end int
	if step > 0 {
		start, end = 0, length
	} else {
		start, end = length-1, -1
	}
	if n.Params.Start != nil {
		v, err := ev.eval(n.Params.Start, e, c)
		if err != nil {
			return nil, err
		}
		i, ok := v.(value.Int)
		if !ok {
			return nil, errs.TypeErr("Integer", v.Type(), "slice start")
		}
		start = normalizeIndex(int64(i), length)
	}
	if n.Params.End != nil {
		v, err := ev.eval(n.Params.End, e, c)
		if err != nil {
			return nil, err
		}
		i, ok := v.(value.Int)
		if !ok {
			return nil, errs.TypeErr("Integer", v.Type(), "slice end")
		}
		end = normalizeIndex(int64(i), length)
	}
	if step > 0 {
		start = clampIdx(start, 0, length)
		end = clampIdx(end, 0, length)
	} else {
		start = clampIdx(start, -1, length-1)
		end = clampIdx(end, -1, length-1)
	}

	switch container := lv.(type) {
	case *value.List:
		return container.Slice(start, end, int(step)), nil
	case value.String:
		return sliceString(container, start, end, int(step)), nil
	}
	return nil, errs.TypeErr("List or String", lv.Type(), n.List.String())
}

func sliceString(s value.String, start, end, step int) value.String {
	rs := s.Runes()
	var out []rune
	if step > 0 {
		for i := start; i < end; i += step {
			out = append(out, rs[i])
		}
	} else {
		for i := start; i > end; i += step {
			out = append(out, rs[i])
		}
	}
	return value.String(string(out))
}

// needsPipeCapture reports whether an initializer expression is the kind of
// node whose evaluation should run with InPipe set, so a bare external
// command assigned via `let`/`=` captures its stdout instead of streaming it
// (spec §4.D, §4.F).
func needsPipeCapture(n ast.Node) bool {
	switch n.(type) {
	case ast.Command, ast.Group, ast.Pipe:
		return true
	default:
		return false
	}
}

func (ev *Evaluator) evalDeclare(n ast.Declare, e *env.Environment, c ctx) (value.Value, error) {
	if e.Strict() && e.IsLocal(n.Name) {
		return nil, errs.New(errs.Redeclaration, "%s", n.Name)
	}
	ic := c.withState(InAssign)
	if needsPipeCapture(n.Expr) {
		ic = ic.withState(InPipe)
	}
	v, err := ev.eval(n.Expr, e, ic)
	if err != nil {
		return nil, err
	}
	e.Define(n.Name, v)
	return v, nil
}

func (ev *Evaluator) evalAssign(n ast.Assign, e *env.Environment, c ctx) (value.Value, error) {
	ic := c.withState(InAssign)
	if needsPipeCapture(n.Expr) {
		ic = ic.withState(InPipe)
	}
	v, err := ev.eval(n.Expr, e, ic)
	if err != nil {
		return nil, err
	}
	if err := e.Assign(n.Name, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (ev *Evaluator) evalCompoundAssign(n ast.CompoundAssign, e *env.Environment, c ctx) (value.Value, error) {
	cur, ok := e.Lookup(n.Name)
	if !ok {
		return nil, errs.New(errs.UndeclaredVariable, "%s", n.Name)
	}
	rv, err := ev.eval(n.Expr, e, c.withState(InAssign))
	if err != nil {
		return nil, err
	}
	updated, err := arithBinary(n.Op, cur, rv)
	if err != nil {
		return nil, err
	}
	if err := e.Assign(n.Name, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (ev *Evaluator) evalAlias(n ast.Alias, e *env.Environment, c ctx) (value.Value, error) {
	e.SetAlias(n.Name, value.Quote{Node: n.Expr})
	return value.None, nil
}

func resolveModulePath(path []string, ev *Evaluator, e *env.Environment) (value.ModuleRef, error) {
	if len(path) == 0 {
		return value.ModuleRef{}, errs.New(errs.NoModuleDefined, "empty module path")
	}
	hm, ok := ev.Registry.Module(path[0])
	if !ok {
		return value.ModuleRef{}, errs.New(errs.NoModuleDefined, "%s", path[0])
	}
	for _, seg := range path[1:] {
		v, ok := hm.Get(seg)
		if !ok {
			return value.ModuleRef{}, errs.New(errs.SymbolNotDefinedInModule, "%s", seg)
		}
		sub, ok := v.(*value.HMap)
		if !ok {
			return value.ModuleRef{}, errs.New(errs.SymbolNotModule, "%s", seg)
		}
		hm = sub
	}
	return value.ModuleRef{Path: path, Value: hm}, nil
}

func (ev *Evaluator) evalUse(n ast.Use, e *env.Environment, c ctx) (value.Value, error) {
	ref, err := resolveModulePath(n.Path, ev, e)
	if err != nil {
		return nil, err
	}
	e.Define(n.Path[len(n.Path)-1], ref)
	return value.None, nil
}

func (ev *Evaluator) evalDo(n ast.Do, e *env.Environment, c ctx) (value.Value, error) {
	var last value.Value = value.None
	for _, stmt := range n.Body {
		v, err := ev.eval(stmt, e, c)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (ev *Evaluator) evalIf(n ast.If, e *env.Environment, c ctx) (value.Value, error) {
	cond, err := ev.eval(n.Cond, e, c)
	if err != nil {
		return nil, err
	}
	if cond.Truthy() {
		return ev.eval(n.Then, e, c)
	}
	if n.Else != nil {
		return ev.eval(n.Else, e, c)
	}
	return value.None, nil
}

func (ev *Evaluator) evalMatch(n ast.Match, e *env.Environment, c ctx) (value.Value, error) {
	scrutinee, err := ev.eval(n.Scrutinee, e, c)
	if err != nil {
		return nil, err
	}
	for _, arm := range n.Arms {
		if arm.Pattern.Expr != nil {
			pv, err := ev.eval(arm.Pattern.Expr, e, c)
			if err != nil {
				return nil, err
			}
			if !value.Equals(scrutinee, pv) {
				continue
			}
			return ev.eval(arm.Body, e, c)
		}
		scope := e
		if arm.Pattern.Bind != "_" {
			scope = e.Fork()
			scope.Define(arm.Pattern.Bind, scrutinee)
		}
		return ev.eval(arm.Body, scope, c)
	}
	return nil, errs.New(errs.NoMatchingBranch, "no arm matched %s", value.Display(scrutinee))
}

func (ev *Evaluator) evalWhile(n ast.While, e *env.Environment, c ctx) (value.Value, error) {
	for {
		cond, err := ev.eval(n.Cond, e, c)
		if err != nil {
			return nil, err
		}
		if !cond.Truthy() {
			return value.None, nil
		}
		_, err = ev.eval(n.Body, e.Fork(), c)
		if err != nil {
			if brk, ok := err.(*errs.EarlyBreak); ok {
				return brk.Value, nil
			}
			return nil, err
		}
	}
}

func (ev *Evaluator) evalLoop(n ast.Loop, e *env.Environment, c ctx) (value.Value, error) {
	for {
		_, err := ev.eval(n.Body, e.Fork(), c)
		if err != nil {
			if brk, ok := err.(*errs.EarlyBreak); ok {
				return brk.Value, nil
			}
			return nil, err
		}
	}
}

func (ev *Evaluator) evalFunctionLit(n ast.FunctionLit, e *env.Environment, c ctx) (value.Value, error) {
	params := make([]value.Param, len(n.Params))
	for i, p := range n.Params {
		params[i] = value.Param{Name: p.Name, Default: p.Default}
	}
	decos := make([]value.Decorator, len(n.Decorators))
	for i, d := range n.Decorators {
		decos[i] = value.Decorator{Name: d.Name, Args: d.Args}
	}
	fn := &value.Function{
		Name:       n.Name,
		Params:     params,
		Rest:       n.Rest,
		Body:       n.Body,
		Decorators: decos,
	}
	if n.Name != "" {
		e.Define(n.Name, fn)
	}
	return fn, nil
}

func arithBinary(op string, l, r value.Value) (value.Value, error) {
	return arith.Binary(op, l, r)
}

func arithUnary(op string, x value.Value) (value.Value, error) {
	return arith.Unary(op, x)
}
