package maincmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumesh-lang/lumesh/lang/builtin"
	"github.com/lumesh-lang/lumesh/lang/env"
	"github.com/lumesh-lang/lumesh/lang/errs"
	"github.com/lumesh-lang/lumesh/lang/eval"
	"github.com/lumesh-lang/lumesh/lang/value"
)

var errTag = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("[ERROR]")

// newRoot builds the root Environment and Evaluator shared by the repl and
// run subcommands, wiring the Dispatcher so a Builtin's body can call back
// into the evaluator (spec §4.B/§4.E).
func newRoot(cwd string, strict bool) (*env.Environment, *eval.Evaluator) {
	reg := builtin.New()
	ev := eval.New(reg)
	root := env.NewRoot(cwd, strict, ev.Dispatcher)
	return root, ev
}

// printResult renders an evaluation result per spec §6: nothing for None,
// a formatted help card for a bare Builtin reference, the value's display
// form otherwise.
func printResult(w io.Writer, v value.Value) {
	switch rv := v.(type) {
	case nil:
		return
	case value.NoneType:
		return
	case *value.Builtin:
		fmt.Fprintf(w, "%s %s - %s\n", rv.Name, rv.Hint, rv.Help)
	default:
		fmt.Fprintln(w, value.Display(v))
	}
}

// printErr writes a single `[ERROR] <message>` line, spec §6's REPL error
// format.
func printErr(w io.Writer, err error) {
	msg := err.Error()
	if re, ok := err.(*errs.RuntimeError); ok {
		msg = re.Error()
	}
	fmt.Fprintf(w, "%s %s\n", errTag, msg)
}
