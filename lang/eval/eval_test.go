package eval_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumesh-lang/lumesh/lang/builtin"
	"github.com/lumesh-lang/lumesh/lang/env"
	"github.com/lumesh-lang/lumesh/lang/errs"
	"github.com/lumesh-lang/lumesh/lang/eval"
	"github.com/lumesh-lang/lumesh/lang/parser"
	"github.com/lumesh-lang/lumesh/lang/value"
)

func run(t *testing.T, src string) (value.Value, error) {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	reg := builtin.New()
	ev := eval.New(reg)
	root := env.NewRoot(t.TempDir(), false, ev.Dispatcher)
	return ev.Eval(prog, root)
}

func mustRun(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := run(t, src)
	require.NoError(t, err)
	return v
}

func errKind(t *testing.T, err error) errs.Kind {
	t.Helper()
	re, ok := err.(*errs.RuntimeError)
	require.True(t, ok, "expected *errs.RuntimeError, got %T", err)
	return re.Kind
}

func TestFunctionDefaultFillsMissingArgs(t *testing.T) {
	v := mustRun(t, `
fn greet(name, greeting = "hello") {
    greeting + " " + name
}
greet("world")
`)
	require.Equal(t, value.String("hello world"), v)
}

func TestFunctionMissingArgWithoutDefaultIsArgumentMismatch(t *testing.T) {
	_, err := run(t, `
fn greet(name, greeting) {
    greeting + " " + name
}
greet("world")
`)
	require.Error(t, err)
	require.Equal(t, errs.ArgumentMismatch, errKind(t, err))
}

func TestFunctionTooManyArgsWithoutRestIsTooManyArguments(t *testing.T) {
	_, err := run(t, `
fn one(a) { a }
one(1, 2)
`)
	require.Error(t, err)
	require.Equal(t, errs.TooManyArguments, errKind(t, err))
}

func TestFunctionRestParamCollectsExtras(t *testing.T) {
	v := mustRun(t, `
fn sumAll(first, ..rest) {
    let total = first
    for x in rest {
        total = total + x
    }
    total
}
sumAll(1, 2, 3, 4)
`)
	require.Equal(t, value.Int(10), v)
}

func TestLambdaCurriesInsteadOfDefaultFilling(t *testing.T) {
	v := mustRun(t, `
let add = (a, b) -> a + b
let addFive = add(5)
addFive(10)
`)
	require.Equal(t, value.Int(15), v)
}

func TestLambdaPartialApplicationReturnsLambdaValue(t *testing.T) {
	v := mustRun(t, `
let add3 = (a, b, c) -> a + b + c
add3(1)
`)
	_, ok := v.(*value.Lambda)
	require.True(t, ok, "under-supplying a lambda's arguments must yield a curried Lambda, not an error")
}

func TestReturnEscapesNestedControlFlow(t *testing.T) {
	v := mustRun(t, `
fn firstOver(xs, threshold) {
    for x in xs {
        if x > threshold {
            return x
        }
    }
    -1
}
firstOver([1, 2, 30, 4], 10)
`)
	require.Equal(t, value.Int(30), v)
}

func TestBreakEscapesLoopWithValue(t *testing.T) {
	v := mustRun(t, `
let i = 0
loop {
    i = i + 1
    if i == 5 {
        break i * 2
    }
}
`)
	require.Equal(t, value.Int(10), v)
}

func TestBreakInWhileStopsIteration(t *testing.T) {
	v := mustRun(t, `
let i = 0
while i < 100 {
    i = i + 1
    if i == 3 {
        break i
    }
}
`)
	require.Equal(t, value.Int(3), v)
}

func TestDivByZeroIsRuntimeErrorNotPanic(t *testing.T) {
	_, err := run(t, `1 / 0`)
	require.Error(t, err)
	require.Equal(t, errs.DivByZero, errKind(t, err))
}

func TestIndexOutOfBoundsIsRuntimeError(t *testing.T) {
	_, err := run(t, `let xs = [1, 2, 3]
xs[10]`)
	require.Error(t, err)
	require.Equal(t, errs.IndexOutOfBounds, errKind(t, err))
}

func TestNegativeIndexWrapsFromEnd(t *testing.T) {
	v := mustRun(t, `let xs = [1, 2, 3]
xs[-1]`)
	require.Equal(t, value.Int(3), v)
}

func TestSliceClampsOutOfRangeEndpoints(t *testing.T) {
	v := mustRun(t, `let xs = [1, 2, 3]
xs[0:100]`)
	l, ok := v.(*value.List)
	require.True(t, ok)
	require.Equal(t, 3, l.Len())
}

func TestCatchHandlesRuntimeErrorNotControlFlow(t *testing.T) {
	v := mustRun(t, `1 / 0 ?: -1`)
	require.Equal(t, value.Int(-1), v)
}

func TestCatchHandlerLambdaReceivesErrorInfo(t *testing.T) {
	v := mustRun(t, `1 / 0 ?: (info) -> info.code`)
	require.Equal(t, value.Int(errs.DivByZero.Code()), v)
}

func TestUndeclaredVariableInStrictModeIsError(t *testing.T) {
	prog, err := parser.Parse([]byte("missingName"))
	require.NoError(t, err)
	reg := builtin.New()
	ev := eval.New(reg)
	root := env.NewRoot(t.TempDir(), true, ev.Dispatcher)
	_, err = ev.Eval(prog, root)
	require.Error(t, err)
	require.Equal(t, errs.UndeclaredVariable, errKind(t, err))
}

func TestStrictSigilForcesErrorEvenOutsideStrictMode(t *testing.T) {
	prog, err := parser.Parse([]byte("$missingName"))
	require.NoError(t, err)
	reg := builtin.New()
	ev := eval.New(reg)
	root := env.NewRoot(t.TempDir(), false, ev.Dispatcher)
	_, err = ev.Eval(prog, root)
	require.Error(t, err)
	require.Equal(t, errs.UndeclaredVariable, errKind(t, err))
}

func TestPipeIntoChainDoesNotLeakAcrossLoopIterations(t *testing.T) {
	v := mustRun(t, `
let results = []
for x in [2, 3, 4] {
    results = results + (x | Math.pow(_, 2))
}
results
`)
	l, ok := v.(*value.List)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Int(4), value.Int(9), value.Int(16)}, l.Items(),
		"a shared Chain AST node's pipe-slot injection must not leak args across loop iterations")
}

func TestPlainMissingNameOutsideStrictModeDefersToSymbol(t *testing.T) {
	v := mustRun(t, "missingName")
	_, ok := v.(value.Symbol)
	require.True(t, ok, "a non-strict lookup miss must defer to a Symbol, not error immediately")
}
