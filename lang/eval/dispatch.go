package eval

import (
	"github.com/lumesh-lang/lumesh/lang/ast"
	"github.com/lumesh-lang/lumesh/lang/env"
	"github.com/lumesh-lang/lumesh/lang/errs"
	"github.com/lumesh-lang/lumesh/lang/value"
)

func (ev *Evaluator) evalApply(n ast.Apply, e *env.Environment, c ctx) (value.Value, error) {
	callee, err := ev.eval(n.Callee, e, c)
	if err != nil {
		return nil, err
	}
	args, err := ev.evalArgs(n.Args, e, c)
	if err != nil {
		return nil, err
	}
	return ev.applyValue(callee, args, e, c)
}

func (ev *Evaluator) evalArgs(nodes []ast.Node, e *env.Environment, c ctx) ([]value.Value, error) {
	ac := c.withState(InPipe)
	out := make([]value.Value, len(nodes))
	for i, n := range nodes {
		v, err := ev.eval(n, e, ac)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// fillBlanks substitutes the pipe slot, if any, for every Blank placeholder
// in args, centralizing the substitution so every callable kind gets it
// uniformly rather than duplicating the logic per call path.
func fillBlanks(args []value.Value, c ctx) []value.Value {
	if !c.hasPipeSlot {
		return args
	}
	hasBlank := false
	for _, a := range args {
		if _, ok := a.(value.BlankType); ok {
			hasBlank = true
			break
		}
	}
	if !hasBlank {
		return args
	}
	out := append([]value.Value{}, args...)
	for i, a := range out {
		if _, ok := a.(value.BlankType); ok {
			out[i] = c.pipeSlot
		}
	}
	return out
}

func isCallable(v value.Value) bool {
	switch v.(type) {
	case *value.Builtin, *value.Lambda, *value.Function:
		return true
	default:
		return false
	}
}

func (ev *Evaluator) applyValue(callee value.Value, args []value.Value, e *env.Environment, c ctx) (value.Value, error) {
	*c.applyDepth++
	defer func() { *c.applyDepth-- }()
	if *c.applyDepth > maxApplyDepth {
		return nil, errs.New(errs.RecursionDepth, "exceeded max call-dispatch depth (%d)", maxApplyDepth)
	}

	args = fillBlanks(args, c)

	switch fn := callee.(type) {
	case value.Symbol:
		return ev.dispatchSymbol(fn.Name, args, e, c)
	case *value.Builtin:
		return ev.callBuiltin(fn, args, e, c)
	case *value.Lambda:
		return ev.callLambda(fn, args, e, c)
	case *value.Function:
		return ev.callFunction(fn, args, e, c)
	default:
		return nil, errs.New(errs.CannotApply, "value of type %s is not callable", value.TypeName(callee))
	}
}

func (ev *Evaluator) dispatchSymbol(name string, args []value.Value, e *env.Environment, c ctx) (value.Value, error) {
	if aliasExpr, ok := e.Alias(name); ok {
		return ev.dispatchAlias(aliasExpr, args, e, c)
	}
	if b, ok := ev.Registry.Lookup(name); ok {
		return ev.applyValue(b, args, e, c)
	}
	return ev.execExternal(name, args, e, c)
}

func (ev *Evaluator) callBuiltin(b *value.Builtin, args []value.Value, e *env.Environment, c ctx) (value.Value, error) {
	v, err := b.Body(args, e)
	if err != nil {
		if errs.IsControlFlow(err) {
			return nil, err
		}
		if _, ok := err.(*errs.RuntimeError); ok {
			return nil, err
		}
		return nil, errs.BuiltinErr(b.Name, err)
	}
	return v, nil
}

func (ev *Evaluator) callLambda(fn *value.Lambda, args []value.Value, e *env.Environment, c ctx) (value.Value, error) {
	total := len(fn.Bound) + len(args)
	if total < len(fn.Params) {
		bound := make([]value.BoundArg, 0, total)
		bound = append(bound, fn.Bound...)
		for i, a := range args {
			bound = append(bound, value.BoundArg{Name: fn.Params[len(fn.Bound)+i], Val: a})
		}
		return &value.Lambda{Params: fn.Params, Body: fn.Body, Bound: bound}, nil
	}

	scope := e.Fork()
	for _, b := range fn.Bound {
		scope.Define(b.Name, b.Val)
	}
	rest := fn.Params[len(fn.Bound):]
	for i, name := range rest {
		if i < len(args) {
			scope.Define(name, args[i])
		} else {
			scope.Define(name, value.None)
		}
	}
	v, err := ev.eval(fn.Body, scope, c)
	if err != nil {
		if ret, ok := err.(*errs.EarlyReturn); ok {
			return ret.Value, nil
		}
		return nil, err
	}
	return v, nil
}

func (ev *Evaluator) callFunction(fn *value.Function, args []value.Value, e *env.Environment, c ctx) (value.Value, error) {
	if len(fn.Decorators) > 0 {
		return ev.callDecoratedFunction(fn, args, e, c)
	}
	return ev.invokeFunctionBody(fn, args, e, c, c.state.has(InDecor))
}

func (ev *Evaluator) invokeFunctionBody(fn *value.Function, args []value.Value, e *env.Environment, c ctx, reuseScope bool) (value.Value, error) {
	scope := e
	if !reuseScope {
		scope = e.Fork()
	}
	if len(args) > len(fn.Params) {
		if fn.Rest == "" {
			return nil, errs.New(errs.TooManyArguments, "%s: expected %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
		}
		for i, p := range fn.Params {
			scope.Define(p.Name, args[i])
		}
		scope.Define(fn.Rest, value.NewList(append([]value.Value{}, args[len(fn.Params):]...)))
	} else {
		for i, p := range fn.Params {
			if i < len(args) {
				scope.Define(p.Name, args[i])
				continue
			}
			if p.Default == nil {
				return nil, errs.New(errs.ArgumentMismatch, "%s: missing argument %s", fn.Name, p.Name)
			}
			dv, err := ev.evalDefault(p.Default, scope, c)
			if err != nil {
				return nil, err
			}
			scope.Define(p.Name, dv)
		}
		if fn.Rest != "" {
			scope.Define(fn.Rest, value.EmptyList())
		}
	}
	v, err := ev.eval(fn.Body, scope, c)
	if err != nil {
		if ret, ok := err.(*errs.EarlyReturn); ok {
			return ret.Value, nil
		}
		return nil, err
	}
	return v, nil
}

// evalDefault evaluates a Param's default expression, restricted to literal
// basic-type forms per spec §4.E.2.
func (ev *Evaluator) evalDefault(n ast.Node, e *env.Environment, c ctx) (value.Value, error) {
	switch n.(type) {
	case ast.BoolLit, ast.IntLit, ast.FloatLit, ast.StringLit:
		return ev.eval(n, e, c)
	default:
		return nil, errs.New(errs.InvalidDefaultValue, "default value must be a literal, found %s", n.String())
	}
}

func checkDistinctParams(fn *value.Function) error {
	seen := map[string]bool{}
	for _, p := range fn.Params {
		if seen[p.Name] {
			return errs.New(errs.Redeclaration, "duplicate parameter %s", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

func (ev *Evaluator) callDecoratedFunction(fn *value.Function, args []value.Value, e *env.Environment, c ctx) (value.Value, error) {
	if err := checkDistinctParams(fn); err != nil {
		return nil, err
	}
	plain := &value.Function{Name: fn.Name, Params: fn.Params, Rest: fn.Rest, Body: fn.Body}
	var wrapped value.Value = plain
	for i := len(fn.Decorators) - 1; i >= 0; i-- {
		deco := fn.Decorators[i]
		decoFn, ok := e.Lookup(deco.Name)
		if !ok {
			return nil, errs.New(errs.UndeclaredVariable, "%s", deco.Name)
		}
		decoArgs, err := ev.evalArgs(deco.Args, e, c)
		if err != nil {
			return nil, err
		}
		callArgs := append(decoArgs, wrapped)
		v, err := ev.applyValue(decoFn, callArgs, e, c.withState(InDecor))
		if err != nil {
			return nil, err
		}
		wrapped = v
	}
	return ev.applyValue(wrapped, args, e, c)
}

func libraryFor(v value.Value) string {
	switch v.(type) {
	case *value.List:
		return "List"
	case *value.Map, *value.HMap:
		return "Map"
	case value.String:
		return "String"
	case value.Int, value.Float:
		return "Math"
	case value.DateTime:
		return "time"
	default:
		return v.Type()
	}
}

func (ev *Evaluator) evalChain(n ast.Chain, e *env.Environment, c ctx) (value.Value, error) {
	if id, ok := n.Base.(*ast.Ident); ok {
		if _, ok := ev.Registry.Module(id.Name); ok {
			return ev.dispatchModuleChain([]string{id.Name}, n.Steps, e, c)
		}
	}
	cur, err := ev.eval(n.Base, e, c)
	if err != nil {
		return nil, err
	}
	for _, step := range n.Steps {
		args, err := ev.evalArgs(step.Args, e, c)
		if err != nil {
			return nil, err
		}
		cur, err = ev.chainStep(cur, step.Method, args, e, c)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func (ev *Evaluator) dispatchModuleChain(path []string, steps []ast.ChainStep, e *env.Environment, c ctx) (value.Value, error) {
	ref, err := resolveModulePath(path, ev, e)
	if err != nil {
		return nil, err
	}
	hm := ref.Value
	for i, step := range steps {
		v, ok := hm.Get(step.Method)
		if !ok {
			return nil, errs.New(errs.SymbolNotDefinedInModule, "%s.%s", ref.String(), step.Method)
		}
		last := i == len(steps)-1
		if sub, ok := v.(*value.HMap); ok && !isCallable(v) {
			hm = sub
			ref = value.ModuleRef{Path: append(append([]string{}, ref.Path...), step.Method), Value: sub}
			if last {
				return ref, nil
			}
			continue
		}
		if !isCallable(v) {
			return v, nil
		}
		args, err := ev.evalArgs(step.Args, e, c)
		if err != nil {
			return nil, err
		}
		result, err := ev.applyValue(v, args, e, c)
		if err != nil {
			return nil, err
		}
		if last {
			return result, nil
		}
		return nil, errs.New(errs.SymbolNotModule, "%s.%s", ref.String(), step.Method)
	}
	return ref, nil
}

func (ev *Evaluator) chainStep(cur value.Value, method string, args []value.Value, e *env.Environment, c ctx) (value.Value, error) {
	switch container := cur.(type) {
	case *value.HMap:
		if v, ok := container.Get(method); ok && isCallable(v) {
			return ev.applyValue(v, args, e, c)
		}
	case *value.Map:
		if v, ok := container.Get(method); ok && isCallable(v) {
			return ev.applyValue(v, args, e, c)
		}
	}
	libName := libraryFor(cur)
	mod, ok := ev.Registry.Module(libName)
	if !ok {
		return nil, errs.New(errs.MethodNotFound, "%s.%s", libName, method)
	}
	fn, ok := mod.Get(method)
	if !ok {
		return nil, errs.New(errs.MethodNotFound, "%s.%s", libName, method)
	}
	callArgs := append([]value.Value{cur}, args...)
	return ev.applyValue(fn, callArgs, e, c)
}
