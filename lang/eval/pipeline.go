package eval

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/lumesh-lang/lumesh/lang/ast"
	"github.com/lumesh-lang/lumesh/lang/env"
	"github.com/lumesh-lang/lumesh/lang/errs"
	"github.com/lumesh-lang/lumesh/lang/value"
)

func (ev *Evaluator) evalPipe(n ast.Pipe, e *env.Environment, c ctx) (value.Value, error) {
	switch n.Kind {
	case "|":
		return ev.evalPipeStage(n, e, c, false)
	case "|>":
		return ev.evalPipeStage(n, e, c, true)
	case ">>":
		return ev.evalRedirect(n, e, c, false)
	case ">>!":
		return ev.evalRedirect(n, e, c, true)
	case "<<":
		return ev.evalReadPipe(n, e, c)
	}
	return nil, errs.New(errs.InvalidOperator, "unknown pipe kind %s", n.Kind)
}

func (ev *Evaluator) evalPipeStage(n ast.Pipe, e *env.Environment, c ctx, alwaysAppend bool) (value.Value, error) {
	lv, err := ev.eval(n.Left, e, c.withState(InPipe))
	if err != nil {
		return nil, err
	}
	rhsCtx := c.withPipeSlot(lv)
	var rhs ast.Node
	if alwaysAppend {
		rhs = appendAlways(n.Right, lv)
	} else {
		rhs = injectReceiver(n.Right, lv)
	}
	return ev.eval(rhs, e, rhsCtx)
}

// injectReceiver rewrites n so the pipe's left-hand value replaces a `_`
// placeholder in its argument list, or is appended if none is present (spec
// §4.A's replace-or-append contract).
func injectReceiver(n ast.Node, v value.Value) ast.Node {
	switch a := n.(type) {
	case ast.Apply:
		a.Args = replaceOrAppend(a.Args, v)
		return a
	case ast.Command:
		a.Args = replaceOrAppend(a.Args, v)
		return a
	case ast.Chain:
		if len(a.Steps) == 0 {
			return a
		}
		steps := append([]ast.ChainStep{}, a.Steps...)
		last := steps[len(steps)-1]
		last.Args = replaceOrAppend(last.Args, v)
		steps[len(steps)-1] = last
		a.Steps = steps
		return a
	case *ast.Ident:
		return ast.Apply{Callee: a, Args: []ast.Node{ast.ValueLit{Val: v}}}
	default:
		return n
	}
}

func appendAlways(n ast.Node, v value.Value) ast.Node {
	switch a := n.(type) {
	case ast.Apply:
		a.Args = append(append([]ast.Node{}, a.Args...), ast.ValueLit{Val: v})
		return a
	case ast.Command:
		a.Args = append(append([]ast.Node{}, a.Args...), ast.ValueLit{Val: v})
		return a
	case ast.Chain:
		if len(a.Steps) == 0 {
			return a
		}
		steps := append([]ast.ChainStep{}, a.Steps...)
		last := steps[len(steps)-1]
		last.Args = append(append([]ast.Node{}, last.Args...), ast.ValueLit{Val: v})
		steps[len(steps)-1] = last
		a.Steps = steps
		return a
	case *ast.Ident:
		return ast.Apply{Callee: a, Args: []ast.Node{ast.ValueLit{Val: v}}}
	default:
		return n
	}
}

func replaceOrAppend(args []ast.Node, v value.Value) []ast.Node {
	for i, a := range args {
		if id, ok := a.(*ast.Ident); ok && id.Name == "_" {
			out := append([]ast.Node{}, args...)
			out[i] = ast.ValueLit{Val: v}
			return out
		}
	}
	return append(append([]ast.Node{}, args...), ast.ValueLit{Val: v})
}

func (ev *Evaluator) evalRedirect(n ast.Pipe, e *env.Environment, c ctx, truncate bool) (value.Value, error) {
	lv, err := ev.eval(n.Left, e, c.withState(InPipe))
	if err != nil {
		return nil, err
	}
	pv, err := ev.eval(n.Right, e, c)
	if err != nil {
		return nil, err
	}
	path, ok := pv.(value.String)
	if !ok {
		return nil, errs.TypeErr("String", pv.Type(), n.Right.String())
	}
	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errs.New(errs.PermissionDenied, "%s", err)
		}
	}
	flags := os.O_CREATE | os.O_WRONLY
	if truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(string(path), flags, 0o644)
	if err != nil {
		return nil, errs.New(errs.PermissionDenied, "%s", err)
	}
	defer f.Close()
	if b, ok := lv.(value.Bytes); ok {
		if _, err := f.Write(b); err != nil {
			return nil, errs.New(errs.PermissionDenied, "%s", err)
		}
	} else {
		if _, err := f.WriteString(value.Display(lv)); err != nil {
			return nil, errs.New(errs.PermissionDenied, "%s", err)
		}
	}
	return lv, nil
}

func (ev *Evaluator) evalReadPipe(n ast.Pipe, e *env.Environment, c ctx) (value.Value, error) {
	pv, err := ev.eval(n.Right, e, c)
	if err != nil {
		return nil, err
	}
	path, ok := pv.(value.String)
	if !ok {
		return nil, errs.TypeErr("String", pv.Type(), n.Right.String())
	}
	content, err := os.ReadFile(string(path))
	if err != nil {
		return nil, errs.New(errs.PermissionDenied, "%s", err)
	}
	rc := c.withPipeSlot(value.String(content))
	return ev.eval(injectReceiver(n.Left, value.String(content)), e, rc)
}

func (ev *Evaluator) evalCommand(n ast.Command, e *env.Environment, c ctx) (value.Value, error) {
	args, err := ev.evalArgs(n.Args, e, c)
	if err != nil {
		return nil, err
	}
	if aliasExpr, ok := e.Alias(n.Name); ok {
		return ev.dispatchAlias(aliasExpr, args, e, c)
	}
	if b, ok := ev.Registry.Lookup(n.Name); ok {
		return ev.applyValue(b, args, e, c)
	}
	return ev.execExternal(n.Name, args, e, c)
}

func (ev *Evaluator) dispatchAlias(aliasExpr value.Value, args []value.Value, e *env.Environment, c ctx) (value.Value, error) {
	q, ok := aliasExpr.(value.Quote)
	if !ok {
		return ev.applyValue(aliasExpr, args, e, c)
	}
	switch node := q.Node.(type) {
	case ast.Command:
		presetArgs, err := ev.evalArgs(node.Args, e, c)
		if err != nil {
			return nil, err
		}
		allArgs := append(presetArgs, args...)
		if b, ok := ev.Registry.Lookup(node.Name); ok {
			return ev.applyValue(b, allArgs, e, c)
		}
		return ev.execExternal(node.Name, allArgs, e, c)
	case ast.Apply:
		callee, err := ev.eval(node.Callee, e, c)
		if err != nil {
			return nil, err
		}
		presetArgs, err := ev.evalArgs(node.Args, e, c)
		if err != nil {
			return nil, err
		}
		return ev.applyValue(callee, append(presetArgs, args...), e, c)
	case ast.FunctionLit, ast.Chain:
		v, err := ev.eval(node, e, c)
		if err != nil {
			return nil, err
		}
		return ev.applyValue(v, args, e, c)
	default:
		return nil, errs.TypeErr("Command, Apply, Function or Chain", fmt.Sprintf("%T", node), "alias")
	}
}

// statusToken describes a trailing command-status suffix token (`&`, `&-`,
// `&?`, `&.`, `&+`), per spec §4.F's background/drop-output contract.
type statusToken struct {
	background, dropOut, dropErr, mergeErr bool
}

func prepareArgs(args []value.Value) ([]string, statusToken, error) {
	var tok statusToken
	if n := len(args); n > 0 {
		if s, ok := args[n-1].(value.String); ok {
			switch string(s) {
			case "&":
				tok.background = true
				args = args[:n-1]
			case "&-":
				tok.dropOut = true
				args = args[:n-1]
			case "&?":
				tok.dropErr = true
				args = args[:n-1]
			case "&.":
				tok.dropOut, tok.dropErr = true, true
				args = args[:n-1]
			case "&+":
				tok.mergeErr = true
				args = args[:n-1]
			}
		}
	}
	var out []string
	for _, a := range args {
		if _, ok := a.(value.NoneType); ok {
			continue
		}
		s := value.Display(a)
		s = expandHome(s)
		if strings.Contains(s, "*") {
			matches, err := filepath.Glob(s)
			if err != nil || len(matches) == 0 {
				return nil, tok, errs.New(errs.WildcardNotMatched, "%s", s)
			}
			out = append(out, matches...)
			continue
		}
		out = append(out, s)
	}
	return out, tok, nil
}

func expandHome(s string) string {
	if s != "~" && !strings.HasPrefix(s, "~/") {
		return s
	}
	u, err := user.Current()
	if err != nil {
		return s
	}
	return filepath.Join(u.HomeDir, strings.TrimPrefix(s, "~"))
}

func envSlice(bindings map[string]string) []string {
	out := os.Environ()
	for k, v := range bindings {
		out = append(out, k+"="+v)
	}
	return out
}

func (ev *Evaluator) execExternal(name string, args []value.Value, e *env.Environment, c ctx) (value.Value, error) {
	strArgs, tok, err := prepareArgs(args)
	if err != nil {
		return nil, err
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, errs.New(errs.ProgramNotFound, "%s", name)
	}
	cmd := exec.Command(path, strArgs...)
	cmd.Dir = e.Cwd()
	cmd.Env = envSlice(e.GetBindingsMap())

	if c.hasPipeSlot {
		if b, ok := c.pipeSlot.(value.Bytes); ok {
			cmd.Stdin = bytes.NewReader(b)
		} else {
			cmd.Stdin = strings.NewReader(value.Display(c.pipeSlot))
		}
	} else {
		cmd.Stdin = os.Stdin
	}

	var stdout bytes.Buffer
	capture := c.state.has(InPipe)
	switch {
	case capture:
		cmd.Stdout = &stdout
	case tok.dropOut:
		cmd.Stdout = nil
	default:
		cmd.Stdout = os.Stdout
	}

	var stderr bytes.Buffer
	switch {
	case tok.dropErr:
		cmd.Stderr = nil
	case tok.mergeErr:
		cmd.Stderr = cmd.Stdout
	default:
		cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)
	}

	if tok.background {
		if err := cmd.Start(); err != nil {
			return nil, errs.New(errs.ProgramNotFound, "%s", err)
		}
		go cmd.Wait()
		return value.None, nil
	}

	runErr := cmd.Run()
	if runErr != nil {
		if _, isExit := runErr.(*exec.ExitError); !isExit {
			return nil, errs.New(errs.CommandFailed2, "%s: %s", name, runErr)
		}
		if !tok.dropErr {
			return nil, errs.New(errs.CommandFailed2, "%s: %s", name, strings.TrimSpace(stderr.String()))
		}
	}
	if capture {
		return value.String(strings.TrimRight(stdout.String(), "\n")), nil
	}
	return value.None, nil
}
