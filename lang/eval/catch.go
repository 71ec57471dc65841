package eval

import (
	"fmt"
	"os"

	"github.com/lumesh-lang/lumesh/lang/ast"
	"github.com/lumesh-lang/lumesh/lang/env"
	"github.com/lumesh-lang/lumesh/lang/errs"
	"github.com/lumesh-lang/lumesh/lang/value"
)

// evalCatch implements the `?.` `?+` `??` `?>` `?!` `?:` catcher suffixes
// (spec §4.G.2): every non-control-flow RuntimeError is intercepted; control
// flow (EarlyReturn/EarlyBreak) always passes through untouched.
func (ev *Evaluator) evalCatch(n ast.Catch, e *env.Environment, c ctx) (value.Value, error) {
	v, err := ev.eval(n.Body, e, c)
	if err == nil {
		return v, nil
	}
	if errs.IsControlFlow(err) {
		return nil, err
	}

	switch n.Kind {
	case "?.":
		return value.None, nil
	case "?+":
		fmt.Fprintln(os.Stdout, "[Err->Std]", err)
		return value.None, nil
	case "??":
		fmt.Fprintln(os.Stderr, "[Err]", err)
		return value.None, nil
	case "?>":
		return value.String(err.Error()), nil
	case "?!":
		return nil, err
	case "?:":
		return ev.evalCatchHandler(n, err, e, c)
	}
	return nil, errs.New(errs.Common, "unknown catch kind %s", n.Kind)
}

func (ev *Evaluator) evalCatchHandler(n ast.Catch, caught error, e *env.Environment, c ctx) (value.Value, error) {
	handler, err := ev.eval(n.Handler, e, c)
	if err != nil {
		return nil, err
	}
	if !isCallable(handler) {
		return handler, nil
	}
	code := 0
	if re, ok := caught.(*errs.RuntimeError); ok {
		code = re.Kind.Code()
	}
	info := value.NewMap(
		[]string{"msg", "code", "expr"},
		map[string]value.Value{
			"msg":  value.String(caught.Error()),
			"code": value.Int(code),
			"expr": value.Quote{Node: n.Body},
		},
	)
	return ev.applyValue(handler, []value.Value{info}, e, c)
}
