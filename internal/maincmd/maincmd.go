// Package maincmd implements lumesh's CLI surface: the repl/run/version
// subcommands cmd/lumesh dispatches to. The Cmd struct, its flag/subcommand
// plumbing and reflection-based buildCmds follow the teacher's
// internal/maincmd, regrown around spec §6's REPL/profile contract instead
// of nenuphar's parse/resolve/tokenize debug commands.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "lumesh"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<arg>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<arg>...]
       %[1]s -h|--help
       %[1]s -v|--version

Tree-walking evaluator and shell for the %[1]s scripting language.

The <command> can be one of:
       repl                      Start an interactive read-eval-print loop.
       run <path>                Evaluate a script file and exit.
       version                   Print version and exit.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
`, binName)
)

// Cmd is the process entry point's parsed state, reused across Main calls.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string)        { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool)   {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) == 0 {
		return errors.New("no command specified")
	}
	cmdName := c.args[0]
	if cmdName == "version" {
		c.Version = true
		return nil
	}
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}
	if cmdName == "run" && len(c.args[1:]) == 0 {
		return errors.New("run: a script path is required")
	}
	return nil
}

// Main is cmd/lumesh's entire implementation: parse flags, dispatch to the
// matched subcommand method, translate its error into an exit code.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: strings.ToUpper(binName) + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// buildCmds mirrors the teacher's reflection-based subcommand registration:
// any exported method taking (context.Context, mainer.Stdio, []string) and
// returning error becomes a dispatchable subcommand named after itself.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
