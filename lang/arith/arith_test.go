package arith_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumesh-lang/lumesh/lang/arith"
	"github.com/lumesh-lang/lumesh/lang/errs"
	"github.com/lumesh-lang/lumesh/lang/value"
)

func errKind(t *testing.T, err error) errs.Kind {
	t.Helper()
	re, ok := err.(*errs.RuntimeError)
	require.True(t, ok, "expected *errs.RuntimeError, got %T", err)
	return re.Kind
}

func TestBinaryNumericTable(t *testing.T) {
	cases := []struct {
		op   string
		x, y value.Value
		want value.Value
	}{
		{"+", value.Int(1), value.Int(2), value.Int(3)},
		{"+", value.Int(1), value.Float(2.5), value.Float(3.5)},
		{"-", value.Int(5), value.Int(2), value.Int(3)},
		{"*", value.Int(3), value.Int(4), value.Int(12)},
		{"/", value.Int(7), value.Int(2), value.Int(3)},
		{"%", value.Int(7), value.Int(2), value.Int(1)},
		{"^", value.Int(2), value.Int(10), value.Int(1024)},
	}
	for _, c := range cases {
		got, err := arith.Binary(c.op, c.x, c.y)
		require.NoError(t, err, "op %s", c.op)
		require.Equal(t, c.want, got, "op %s", c.op)
	}
}

func TestBinaryOverflowAndDivByZero(t *testing.T) {
	_, err := arith.Binary("+", value.Int(math.MaxInt64), value.Int(1))
	require.Error(t, err)
	require.Equal(t, errs.Overflow, errKind(t, err))

	_, err = arith.Binary("*", value.Int(math.MaxInt64), value.Int(2))
	require.Error(t, err)
	require.Equal(t, errs.Overflow, errKind(t, err))

	_, err = arith.Binary("^", value.Int(2), value.Int(63))
	require.Error(t, err)
	require.Equal(t, errs.Overflow, errKind(t, err))
	require.Contains(t, err.Error(), "2 ** 63", "overflow message must report the original exponent, not the loop counter's remaining value")

	_, err = arith.Binary("/", value.Int(1), value.Int(0))
	require.Error(t, err)
	require.Equal(t, errs.DivByZero, errKind(t, err))

	_, err = arith.Binary("%", value.Int(1), value.Int(0))
	require.Error(t, err)
	require.Equal(t, errs.DivByZero, errKind(t, err))
}

func TestDivByZeroFloat(t *testing.T) {
	_, err := arith.Binary("/", value.Float(1), value.Float(0))
	require.Error(t, err)
	require.Equal(t, errs.DivByZero, errKind(t, err))
}

func TestRemNonIntFallsThroughToNone(t *testing.T) {
	got, err := arith.Binary("%", value.Float(1.5), value.Int(2))
	require.NoError(t, err)
	require.Equal(t, value.None, got)
}

func TestListAppendAndConcat(t *testing.T) {
	l := value.NewList([]value.Value{value.Int(1), value.Int(2)})
	got, err := arith.Binary("+", l, value.Int(3))
	require.NoError(t, err)
	list, ok := got.(*value.List)
	require.True(t, ok)
	require.Equal(t, 3, list.Len())
	require.Equal(t, value.Int(3), list.Index(2))
	require.Equal(t, 2, l.Len(), "original list must be unmodified")

	other := value.NewList([]value.Value{value.Int(9)})
	got2, err := arith.Binary("+", l, other)
	require.NoError(t, err)
	cat, ok := got2.(*value.List)
	require.True(t, ok)
	require.Equal(t, 3, cat.Len())
}

func TestListRemoveFirstAndDifference(t *testing.T) {
	l := value.NewList([]value.Value{value.Int(1), value.Int(2), value.Int(1)})
	got, err := arith.Binary("-", l, value.Int(1))
	require.NoError(t, err)
	rem, ok := got.(*value.List)
	require.True(t, ok)
	require.Equal(t, 2, rem.Len())
	require.Equal(t, value.Int(2), rem.Index(0))
	require.Equal(t, value.Int(1), rem.Index(1))

	got2, err := arith.Binary("-", l, value.NewList([]value.Value{value.Int(1)}))
	require.NoError(t, err)
	diff, ok := got2.(*value.List)
	require.True(t, ok)
	require.Equal(t, []value.Value{value.Int(2)}, diff.Items())
}

func TestStringTruncateAndRemoveFirst(t *testing.T) {
	got, err := arith.Binary("-", value.String("hello"), value.Int(2))
	require.NoError(t, err)
	require.Equal(t, value.String("hel"), got)

	got2, err := arith.Binary("-", value.String("hello world"), value.String("world"))
	require.NoError(t, err)
	require.Equal(t, value.String("hello "), got2)
}

func TestComparisonOperators(t *testing.T) {
	cases := []struct {
		op   string
		want bool
	}{
		{"<", true},
		{">", false},
		{"<=", true},
		{">=", false},
	}
	for _, c := range cases {
		got, err := arith.Binary(c.op, value.Int(1), value.Int(2))
		require.NoError(t, err, "op %s", c.op)
		require.Equal(t, value.Bool(c.want), got, "op %s", c.op)
	}
}

func TestEqualityOperators(t *testing.T) {
	got, err := arith.Binary("==", value.Int(1), value.Int(1))
	require.NoError(t, err)
	require.Equal(t, value.Bool(true), got)

	got, err = arith.Binary("!=", value.Int(1), value.Int(2))
	require.NoError(t, err)
	require.Equal(t, value.Bool(true), got)
}

func TestLogicalOperatorsTruthy(t *testing.T) {
	got, err := arith.Binary("&&", value.Bool(true), value.Int(0))
	require.NoError(t, err)
	require.Equal(t, value.Bool(false), got)

	got, err = arith.Binary("||", value.Bool(false), value.String("x"))
	require.NoError(t, err)
	require.Equal(t, value.Bool(true), got)
}

// TestRegexMatchOperator exercises `~~`, which must compile the right
// operand as a regex and test it against the left operand's display form.
func TestRegexMatchOperator(t *testing.T) {
	got, err := arith.Binary("~~", value.String("hello123"), value.String(`\d+`))
	require.NoError(t, err)
	require.Equal(t, value.Bool(true), got)

	got, err = arith.Binary("~~", value.String("hello"), value.String(`\d+`))
	require.NoError(t, err)
	require.Equal(t, value.Bool(false), got)

	_, err = arith.Binary("~~", value.String("hello"), value.String(`(`))
	require.Error(t, err)
}

// TestStringEqualityOperator exercises `~=`, which must compare the two
// operands' display forms for exact equality, not regex matching.
func TestStringEqualityOperator(t *testing.T) {
	got, err := arith.Binary("~=", value.Int(1), value.String("1"))
	require.NoError(t, err)
	require.Equal(t, value.Bool(true), got)

	got, err = arith.Binary("~=", value.String("hello"), value.String(`\d+`))
	require.NoError(t, err)
	require.Equal(t, value.Bool(false), got, "~= must not treat the right side as a regex")
}

func TestContainsOperator(t *testing.T) {
	got, err := arith.Binary("~:", value.String("ell"), value.String("hello"))
	require.NoError(t, err)
	require.Equal(t, value.Bool(true), got)

	l := value.NewList([]value.Value{value.Int(1), value.Int(2)})
	got, err = arith.Binary("~:", value.Int(2), l)
	require.NoError(t, err)
	require.Equal(t, value.Bool(true), got)
}

func TestRangeOperators(t *testing.T) {
	got, err := arith.Binary("..", value.Int(1), value.Int(5))
	require.NoError(t, err)
	r, ok := got.(value.Range)
	require.True(t, ok)
	require.Equal(t, int64(1), r.Start)
	require.Equal(t, int64(5), r.Stop)

	got, err = arith.Binary("..=", value.Int(1), value.Int(5))
	require.NoError(t, err)
	r, ok = got.(value.Range)
	require.True(t, ok)
	require.Equal(t, int64(6), r.Stop)
}

func TestUnaryNegateAndNot(t *testing.T) {
	got, err := arith.Unary("-", value.Int(5))
	require.NoError(t, err)
	require.Equal(t, value.Int(-5), got)

	_, err = arith.Unary("-", value.Int(math.MinInt64))
	require.Error(t, err)
	require.Equal(t, errs.Overflow, errKind(t, err))

	got, err = arith.Unary("!", value.Bool(false))
	require.NoError(t, err)
	require.Equal(t, value.Bool(true), got)
}

func TestTypeMismatchIsTypeError(t *testing.T) {
	_, err := arith.Binary("+", value.Bool(true), value.NewList(nil))
	require.Error(t, err)
	require.Equal(t, errs.TypeError, errKind(t, err))
}

func TestUnknownOperatorIsInvalidOperator(t *testing.T) {
	_, err := arith.Binary("@@", value.Int(1), value.Int(2))
	require.Error(t, err)
	require.Equal(t, errs.InvalidOperator, errKind(t, err))
}
