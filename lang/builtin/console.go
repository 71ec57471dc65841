package builtin

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lumesh-lang/lumesh/lang/value"
)

// consoleFuncs is grounded in original_source/src/modules/bin/console_module.rs.
// The nested raw/cooked/alternate-screen cursor-control submodule there
// assumes an interactive TTY driver; this core evaluator has no terminal
// layer to back it; width/height/write/clear are the operations a
// non-interactive evaluator can honor faithfully.
func consoleFuncs() []*value.Builtin {
	return []*value.Builtin{
		builtinFunc("width", "get the terminal width in columns", "", biConsoleWidth),
		builtinFunc("height", "get the terminal height in rows", "", biConsoleHeight),
		builtinFunc("write", "write a string to the terminal without a trailing newline", "<string>", biConsoleWrite),
		builtinFunc("clear", "clear the terminal screen", "", biConsoleClear),
		builtinFunc("flush", "flush stdout", "", biConsoleFlush),
	}
}

// termSize reads the COLUMNS/LINES environment variables a shell normally
// exports, falling back to a conventional 80x24 when absent (grounded in
// original_source's width/height builtins, minus the TTY ioctl this core has
// no terminal driver to back).
func termSize() (int, int) {
	w, h := 80, 24
	if v, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && v > 0 {
		w = v
	}
	if v, err := strconv.Atoi(os.Getenv("LINES")); err == nil && v > 0 {
		h = v
	}
	return w, h
}

func biConsoleWidth(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("width", args, 0); err != nil {
		return nil, err
	}
	w, _ := termSize()
	return value.Int(w), nil
}

func biConsoleHeight(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("height", args, 0); err != nil {
		return nil, err
	}
	_, h := termSize()
	return value.Int(h), nil
}

func biConsoleWrite(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("write", args, 1); err != nil {
		return nil, err
	}
	fmt.Fprint(os.Stdout, value.Display(args[0]))
	return value.None, nil
}

func biConsoleClear(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("clear", args, 0); err != nil {
		return nil, err
	}
	fmt.Fprint(os.Stdout, "\x1b[2J\x1b[H")
	return value.None, nil
}

func biConsoleFlush(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("flush", args, 0); err != nil {
		return nil, err
	}
	os.Stdout.Sync()
	return value.None, nil
}
