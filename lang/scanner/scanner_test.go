package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumesh-lang/lumesh/lang/scanner"
	"github.com/lumesh-lang/lumesh/lang/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	toks, err := scanner.ScanAll([]byte(src))
	require.NoError(t, err)
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanBasics(t *testing.T) {
	got := kinds(t, "let x = 1 + 2.5")
	require.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.EQ, token.INT, token.PLUS, token.FLOAT, token.EOF,
	}, got)
}

func TestScanOperators(t *testing.T) {
	got := kinds(t, "a ~~ b ~= c ~: d |> e >>! f ?: g")
	require.Equal(t, []token.Kind{
		token.IDENT, token.TMATCH, token.IDENT, token.TSTREQ, token.IDENT, token.TIN, token.IDENT,
		token.PIPEGT, token.IDENT, token.SHRBANG, token.IDENT, token.QCOLON, token.IDENT, token.EOF,
	}, got)
}

func TestScanRangeAndCompound(t *testing.T) {
	got := kinds(t, "1..=3 n += 1")
	require.Equal(t, []token.Kind{
		token.INT, token.DOTDOTEQ, token.INT, token.IDENT, token.PLUSEQ, token.INT, token.EOF,
	}, got)
}

func TestScanString(t *testing.T) {
	toks, err := scanner.ScanAll([]byte(`"hi\nthere"`))
	require.NoError(t, err)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "hi\nthere", toks[0].Lit)
}

func TestScanComment(t *testing.T) {
	got := kinds(t, "let x = 1 # trailing comment\nx")
	require.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.EQ, token.INT, token.IDENT, token.EOF,
	}, got)
}

func TestSpaceBeforeDistinguishesFlagFromMinus(t *testing.T) {
	toks, err := scanner.ScanAll([]byte("ls -la"))
	require.NoError(t, err)
	require.Equal(t, token.MINUS, toks[1].Kind)
	require.True(t, toks[1].SpaceBefore)
	require.False(t, toks[2].SpaceBefore)

	toks2, err := scanner.ScanAll([]byte("x - 4"))
	require.NoError(t, err)
	require.True(t, toks2[1].SpaceBefore)
	require.True(t, toks2[2].SpaceBefore)
}

func TestUnderscorePlaceholder(t *testing.T) {
	got := kinds(t, "_ + __custom")
	require.Equal(t, []token.Kind{token.USCORE, token.PLUS, token.IDENT, token.EOF}, got)
}
