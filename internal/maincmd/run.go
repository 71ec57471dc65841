package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/lumesh-lang/lumesh/lang/env"
	"github.com/lumesh-lang/lumesh/lang/parser"
)

// Run evaluates the script file named by args[0] and exits. It is spec §6's
// non-interactive counterpart to Repl: no history, no profile prompt, no
// per-statement echo — only the script's own print calls and a final
// `[ERROR]` line on an uncaught failure.
func (c *Cmd) Run(_ context.Context, stdio mainer.Stdio, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s %s\n", errTag, err)
		return err
	}

	settings, err := env.LoadSettings()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s %s\n", errTag, err)
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	root, ev := newRoot(cwd, settings.Strict)

	prog, perr := parser.Parse(src)
	if perr != nil {
		fmt.Fprintf(stdio.Stderr, "%s %s\n", errTag, perr)
		return perr
	}

	if _, err := ev.Eval(prog, root); err != nil {
		printErr(stdio.Stderr, err)
		return err
	}
	return nil
}
