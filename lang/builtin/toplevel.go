package builtin

import (
	"bufio"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumesh-lang/lumesh/lang/env"
	"github.com/lumesh-lang/lumesh/lang/value"
)

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

// registerTopLevel wires the flat builtin surface registered outside any
// library module, grounded in original_source/src/modules/bin/mod.rs's
// get_module_map() top-level entries (exit, cd, pwd, print family, debug,
// read, get, type, len, insert, rev, help).
func (r *Registry) registerTopLevel() {
	r.define(builtinFunc("exit", "exit the shell with an optional status code", "[code]", biExit))
	r.define(builtinFunc("cd", "change the current working directory", "[path]", biCd))
	r.define(builtinFunc("pwd", "print the current working directory", "", biPwd))
	r.define(builtinFunc("tap", "print a value and return it unchanged", "<value>", biTap))
	r.define(builtinFunc("print", "print args separated by spaces, no trailing newline", "<arg> ...", biPrint))
	r.define(builtinFunc("println", "print args separated by spaces, with a trailing newline", "<arg> ...", biPrintln))
	r.define(builtinFunc("pprint", "pretty-print a value", "<value>", biPprint))
	r.define(builtinFunc("eprint", "print args to stderr, no trailing newline", "<arg> ...", biEprint))
	r.define(builtinFunc("eprintln", "print args to stderr, with a trailing newline", "<arg> ...", biEprintln))
	r.define(builtinFunc("debug", "print the debug representation of a value", "<value>", biDebug))
	r.define(builtinFunc("read", "print a prompt and read a line from stdin", "[prompt]", biRead))
	r.define(builtinFunc("get", "index into a List/Map/String, returning None if absent", "<key> <container>", biGet))
	r.define(builtinFunc("type", "get the type name of a value", "<value>", biTypeOf))
	r.define(builtinFunc("len", "get the length of a List/String/Map", "<container>", biLen))
	r.define(builtinFunc("insert", "insert a value into a List (by index) or Map (by key)", "<key> <value> <container>", biInsert))
	r.define(builtinFunc("rev", "reverse a List or String", "<container>", biRev))
	r.define(builtinFunc("help", "list builtin names, or show help for one", "[name]", r.biHelp))
}

func biExit(args []value.Value, _ value.Env) (value.Value, error) {
	code := 0
	if len(args) == 1 {
		n, err := asInt("exit", args[0])
		if err != nil {
			return nil, err
		}
		code = int(n)
	} else if len(args) > 1 {
		return nil, argErr("exit", 1, len(args))
	}
	os.Exit(code)
	return value.None, nil
}

func biCd(args []value.Value, e value.Env) (value.Value, error) {
	dir := "~"
	if len(args) == 1 {
		d, err := asString("cd", args[0])
		if err != nil {
			return nil, err
		}
		dir = d
	} else if len(args) > 1 {
		return nil, argErr("cd", 1, len(args))
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		u, err := user.Current()
		if err == nil {
			dir = filepath.Join(u.HomeDir, strings.TrimPrefix(dir, "~"))
		}
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(e.Cwd(), dir)
	}
	if err := os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("cd: %w", err)
	}
	if ee, ok := e.(*env.Environment); ok {
		ee.RootEnv().SetCwd(dir)
	}
	return value.None, nil
}

func biPwd(args []value.Value, e value.Env) (value.Value, error) {
	if err := requireArgs("pwd", args, 0); err != nil {
		return nil, err
	}
	return value.String(e.Cwd()), nil
}

func biTap(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireMinArgs("tap", args, 1); err != nil {
		return nil, err
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.Display(a)
	}
	fmt.Println(strings.Join(parts, " "))
	if len(args) == 1 {
		return args[0], nil
	}
	return value.NewList(args), nil
}

func printArgs(w *os.File, args []value.Value, newline bool) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.Display(a)
	}
	s := strings.Join(parts, " ")
	if newline {
		fmt.Fprintln(w, s)
	} else {
		fmt.Fprint(w, s)
	}
	return value.None, nil
}

func biPrint(args []value.Value, _ value.Env) (value.Value, error) {
	return printArgs(os.Stdout, args, false)
}

func biPrintln(args []value.Value, _ value.Env) (value.Value, error) {
	return printArgs(os.Stdout, args, true)
}

func biPprint(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("pprint", args, 1); err != nil {
		return nil, err
	}
	fmt.Println(value.DebugString(args[0]))
	return value.None, nil
}

func biEprint(args []value.Value, _ value.Env) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.Display(a)
	}
	fmt.Fprint(os.Stderr, errStyle.Render(strings.Join(parts, " ")))
	return value.None, nil
}

func biEprintln(args []value.Value, _ value.Env) (value.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.Display(a)
	}
	fmt.Fprintln(os.Stderr, errStyle.Render(strings.Join(parts, " ")))
	return value.None, nil
}

func biDebug(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("debug", args, 1); err != nil {
		return nil, err
	}
	fmt.Println(value.DebugString(args[0]))
	return args[0], nil
}

func biRead(args []value.Value, _ value.Env) (value.Value, error) {
	if len(args) == 1 {
		prompt, err := asString("read", args[0])
		if err != nil {
			return nil, err
		}
		fmt.Print(prompt)
	} else if len(args) > 1 {
		return nil, argErr("read", 1, len(args))
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return value.None, nil
	}
	return value.String(strings.TrimRight(line, "\r\n")), nil
}

func biGet(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("get", args, 2); err != nil {
		return nil, err
	}
	key, container := args[0], args[1]
	switch c := container.(type) {
	case *value.List:
		i, err := asInt("get", key)
		if err != nil {
			return nil, err
		}
		idx := int(i)
		if idx < 0 {
			idx += c.Len()
		}
		if idx < 0 || idx >= c.Len() {
			return value.None, nil
		}
		return c.Index(idx), nil
	case *value.Map:
		v, ok := c.Get(value.StringKey(key))
		if !ok {
			return value.None, nil
		}
		return v, nil
	case value.String:
		i, err := asInt("get", key)
		if err != nil {
			return nil, err
		}
		rs := c.Runes()
		idx := int(i)
		if idx < 0 {
			idx += len(rs)
		}
		if idx < 0 || idx >= len(rs) {
			return value.None, nil
		}
		return value.String(string(rs[idx])), nil
	}
	return nil, fmt.Errorf("get: cannot index %s", container.Type())
}

func biTypeOf(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("type", args, 1); err != nil {
		return nil, err
	}
	return value.String(args[0].Type()), nil
}

func biLen(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("len", args, 1); err != nil {
		return nil, err
	}
	switch c := args[0].(type) {
	case *value.List:
		return value.Int(c.Len()), nil
	case *value.Map:
		return value.Int(c.Len()), nil
	case value.String:
		return value.Int(len(c)), nil
	case value.Bytes:
		return value.Int(len(c)), nil
	}
	return nil, fmt.Errorf("len: expected a List, Map, String or Bytes, found %s", args[0].Type())
}

func biInsert(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("insert", args, 3); err != nil {
		return nil, err
	}
	key, val, container := args[0], args[1], args[2]
	switch c := container.(type) {
	case *value.List:
		i, err := asInt("insert", key)
		if err != nil {
			return nil, err
		}
		idx := int(i)
		if idx < 0 || idx > c.Len() {
			return nil, fmt.Errorf("insert: index %d out of bounds for list of length %d", idx, c.Len())
		}
		items := append([]value.Value{}, c.Items()[:idx]...)
		items = append(items, val)
		items = append(items, c.Items()[idx:]...)
		return value.NewList(items), nil
	case *value.Map:
		return c.Insert(value.StringKey(key), val), nil
	}
	return nil, fmt.Errorf("insert: cannot insert into %s", container.Type())
}

func biRev(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("rev", args, 1); err != nil {
		return nil, err
	}
	switch c := args[0].(type) {
	case *value.List:
		return c.Reversed(), nil
	case value.String:
		rs := c.Runes()
		for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
			rs[i], rs[j] = rs[j], rs[i]
		}
		return value.String(string(rs)), nil
	}
	return nil, fmt.Errorf("rev: expected a List or String, found %s", args[0].Type())
}

func (r *Registry) biHelp(args []value.Value, _ value.Env) (value.Value, error) {
	if len(args) == 1 {
		name, err := asString("help", args[0])
		if err != nil {
			return nil, err
		}
		b, ok := r.funcs[name]
		if !ok {
			return value.None, nil
		}
		return value.String(fmt.Sprintf("%s %s - %s", b.Name, b.Hint, b.Help)), nil
	}
	if err := requireArgs("help", args, 0); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(r.funcs))
	for n := range r.funcs {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]value.Value, len(names))
	for i, n := range names {
		out[i] = value.String(n)
	}
	return value.NewList(out), nil
}
