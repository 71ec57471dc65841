package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumesh-lang/lumesh/lang/ast"
	"github.com/lumesh-lang/lumesh/lang/parser"
)

func parseOne(t *testing.T, src string) ast.Node {
	t.Helper()
	prog, err := parser.Parse([]byte(src))
	require.NoError(t, err)
	do, ok := prog.(ast.Do)
	require.True(t, ok)
	require.Len(t, do.Body, 1)
	return do.Body[0]
}

func TestParseLetAndBinary(t *testing.T) {
	n := parseOne(t, "let x = 1 + 2 * 3")
	decl, ok := n.(ast.Declare)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)
	bin, ok := decl.Expr.(ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op)
	rhs, ok := bin.Right.(ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "*", rhs.Op)
}

func TestParseCommandVsSubtraction(t *testing.T) {
	cmd := parseOne(t, "ls -la")
	c, ok := cmd.(ast.Command)
	require.True(t, ok)
	require.Equal(t, "ls", c.Name)
	require.Len(t, c.Args, 1)

	sub := parseOne(t, "x - 1")
	_, ok = sub.(ast.BinaryOp)
	require.True(t, ok)
}

func TestParseIndexVsCommandListArg(t *testing.T) {
	n := parseOne(t, "x[0]")
	idx, ok := n.(ast.Index)
	require.True(t, ok)
	_, ok = idx.Lhs.(*ast.Ident)
	require.True(t, ok)
}

func TestParsePipeChain(t *testing.T) {
	n := parseOne(t, "cat file.txt | grep foo |> wc")
	pipe, ok := n.(ast.Pipe)
	require.True(t, ok)
	require.Equal(t, "|>", pipe.Kind)
	_, ok = pipe.Left.(ast.Pipe)
	require.True(t, ok)
}

func TestParseCatchSuffix(t *testing.T) {
	n := parseOne(t, "risky() ?: { msg: \"nope\" }")
	c, ok := n.(ast.Catch)
	require.True(t, ok)
	require.Equal(t, "?:", c.Kind)
	require.NotNil(t, c.Handler)
}

func TestParseLambdaVsGroup(t *testing.T) {
	lam := parseOne(t, "(a, b) -> a + b")
	l, ok := lam.(ast.LambdaLit)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, l.Params)

	grp := parseOne(t, "(1 + 2) * 3")
	bin, ok := grp.(ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "*", bin.Op)
	_, ok = bin.Left.(ast.Group)
	require.True(t, ok)
}

func TestParseChainCall(t *testing.T) {
	n := parseOne(t, "items.map(f).filter(g)")
	ch, ok := n.(ast.Chain)
	require.True(t, ok)
	require.Len(t, ch.Steps, 2)
	require.Equal(t, "map", ch.Steps[0].Method)
	require.Equal(t, "filter", ch.Steps[1].Method)
}

func TestParseStrictVariableSigil(t *testing.T) {
	n := parseOne(t, "$count")
	id, ok := n.(*ast.Ident)
	require.True(t, ok)
	require.Equal(t, "count", id.Name)
	require.True(t, id.Strict)

	plain := parseOne(t, "count")
	id2, ok := plain.(*ast.Ident)
	require.True(t, ok)
	require.False(t, id2.Strict)
}

func TestParseDecoratedFn(t *testing.T) {
	n := parseOne(t, "@memoize\nfn add(a, b) { a + b }")
	fn, ok := n.(ast.FunctionLit)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Decorators, 1)
	require.Equal(t, "memoize", fn.Decorators[0].Name)
}

func TestParseForLoop(t *testing.T) {
	n := parseOne(t, "for x in [1, 2, 3] { x }")
	f, ok := n.(ast.For)
	require.True(t, ok)
	require.Equal(t, "x", f.Var)
	list, ok := f.Source.(ast.ListLit)
	require.True(t, ok)
	require.Len(t, list.Elems, 3)
}

func TestParseMatch(t *testing.T) {
	n := parseOne(t, "match x { 1 => \"one\", _ => \"other\" }")
	m, ok := n.(ast.Match)
	require.True(t, ok)
	require.Len(t, m.Arms, 2)
	require.Equal(t, "_", m.Arms[1].Pattern.Bind)
}

func TestParseSliceExpr(t *testing.T) {
	n := parseOne(t, "xs[1:5:2]")
	sl, ok := n.(ast.Slice)
	require.True(t, ok)
	require.NotNil(t, sl.Params.Start)
	require.NotNil(t, sl.Params.End)
	require.NotNil(t, sl.Params.Step)
}

func TestParseBytesLiteral(t *testing.T) {
	n := parseOne(t, `b"raw"`)
	b, ok := n.(ast.BytesLit)
	require.True(t, ok)
	require.Equal(t, []byte("raw"), b.Value)
}

func TestParseCompoundAssign(t *testing.T) {
	n := parseOne(t, "n += 1")
	ca, ok := n.(ast.CompoundAssign)
	require.True(t, ok)
	require.Equal(t, "n", ca.Name)
	require.Equal(t, "+", ca.Op)
}

func TestParseGluedCommandFlags(t *testing.T) {
	n := parseOne(t, "grep -rn pattern /tmp/foo")
	c, ok := n.(ast.Command)
	require.True(t, ok)
	require.Equal(t, "grep", c.Name)
	require.Len(t, c.Args, 3)
	lit, ok := c.Args[0].(ast.StringLit)
	require.True(t, ok)
	require.Equal(t, "-rn", lit.Value)
}
