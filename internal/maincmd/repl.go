package maincmd

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mna/mainer"

	"github.com/lumesh-lang/lumesh/lang/env"
	"github.com/lumesh-lang/lumesh/lang/eval"
	"github.com/lumesh-lang/lumesh/lang/parser"
)

//go:embed default_profile.lm
var defaultProfile []byte

// Repl implements spec §6's REPL surface: read lines, accumulating a
// partial parse across lines until it succeeds, evaluate, and print the
// result unless it is None (or a bare Builtin, which prints a help card).
// Errors are written as a single `[ERROR] <message>` line and the loop
// continues.
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, _ []string) error {
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

	if err := loadProfile(stdio, root, ev, settings); err != nil {
		printErr(stdio.Stderr, err)
	}

	hist := openHistory()
	if hist != nil {
		defer hist.Close()
	}

	scanner := bufio.NewScanner(stdio.Stdin)
	var pending strings.Builder

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if pending.Len() == 0 {
			fmt.Fprint(stdio.Stdout, "lume> ")
		} else {
			fmt.Fprint(stdio.Stdout, "....> ")
		}
		if !scanner.Scan() {
			return nil
		}
		line := scanner.Text()
		if pending.Len() > 0 {
			pending.WriteByte('\n')
		}
		pending.WriteString(line)

		src := pending.String()
		prog, perr := parser.Parse([]byte(src))
		if perr != nil {
			if looksIncomplete(perr) {
				continue
			}
			printErr(stdio.Stderr, perr)
			pending.Reset()
			continue
		}
		pending.Reset()

		if hist != nil {
			fmt.Fprintln(hist, src)
		}

		v, err := ev.Eval(prog, root)
		if err != nil {
			printErr(stdio.Stderr, err)
			continue
		}
		if settings.PrintDirect {
			printResult(stdio.Stdout, v)
		}
	}
}

// looksIncomplete reports whether a parse error is the kind a REPL should
// wait for more input to resolve, rather than reporting immediately: an
// unexpected end of input with no other error recorded.
func looksIncomplete(err error) bool {
	el, ok := err.(parser.ErrorList)
	if !ok || len(el) != 1 {
		return false
	}
	return strings.Contains(el[0].Msg, "eof")
}

func profilePath(settings env.Settings) string {
	if settings.Profile != "" {
		return settings.Profile
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "lumesh", "config.lm")
}

// loadProfile evaluates the user's profile file, offering to materialise
// the embedded default if none exists yet (spec §6 "Profile loading").
func loadProfile(stdio mainer.Stdio, root *env.Environment, ev *eval.Evaluator, settings env.Settings) error {
	path := profilePath(settings)
	src, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(stdio.Stdout, "no profile at %s; create it with the default? [y/N] ", path)
		reader := bufio.NewReader(stdio.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, defaultProfile, 0o644); err != nil {
			return err
		}
		src = defaultProfile
	} else if err != nil {
		return err
	}

	prog, perr := parser.Parse(src)
	if perr != nil {
		return perr
	}
	_, err = ev.Eval(prog, root)
	return err
}

func openHistory() *os.File {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		base = filepath.Join(home, ".cache")
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(base, ".lumesh-history"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}
	return f
}
