package parser

import (
	"strconv"
	"strings"

	"github.com/lumesh-lang/lumesh/lang/ast"
	"github.com/lumesh-lang/lumesh/lang/token"
)

// notCommandFollow lists the tokens that, appearing immediately after a
// leading bareword IDENT, mean the IDENT is being used as an expression
// (call, index, member access, operator) rather than a command name.
var notCommandFollow = map[token.Kind]bool{
	token.LPAREN: true, token.DOT: true, token.LBRACK: true,
	token.EQ: true, token.PLUSEQ: true, token.MINUSEQ: true, token.STAREQ: true, token.SLASHEQ: true,
	token.INCR: true, token.DECR: true,
	token.PLUS: true, token.STAR: true, token.SLASH: true, token.PERCENT: true, token.CARET: true,
	token.EQEQ: true, token.NEQ: true, token.LT: true, token.GT: true, token.LE: true, token.GE: true,
	token.TIN: true, token.TMATCH: true, token.TSTREQ: true,
	token.ANDAND: true, token.OROR: true,
	token.DOTDOT: true, token.DOTDOTEQ: true,
	token.PIPE: true, token.PIPEGT: true, token.SHL: true, token.SHR: true, token.SHRBANG: true,
	token.QDOT: true, token.QPLUS: true, token.QQ: true, token.QGT: true, token.QBANG: true, token.QCOLON: true,
	token.ARROW: true,
	token.SEMI: true, token.RBRACE: true, token.RPAREN: true, token.RBRACK: true, token.COMMA: true, token.EOF: true,
}

// looksLikeCommand decides, with the cursor on a leading bareword IDENT,
// whether what follows reads as shell-style command arguments (`ls -la`) or
// as the start of a conventional expression continuation (`x.y`, `x[0]`,
// `x + 1`, `x = 1`). A bare `-` needs its own rule: `-la` glued to the flag
// letters is a command argument, while `x - 4` (spaced on both sides) is
// subtraction.
func (p *parser) looksLikeCommand() bool {
	next := p.peek(1)
	if p.cur().Lit == "b" && next.Kind == token.STRING && !next.SpaceBefore {
		return false // b"..." bytes literal
	}
	if next.Kind == token.MINUS {
		return next.SpaceBefore && !p.peek(2).SpaceBefore
	}
	if notCommandFollow[next.Kind] {
		return false
	}
	return true
}

// atCommandEnd reports whether the current token terminates a command's
// argument list. AMP-family status tokens (&, &-, &?, &., &+) are
// deliberately excluded: they get consumed as the command's final argument,
// matching how eval/pipeline.go pops a trailing status-token string.
func (p *parser) atCommandEnd() bool {
	switch p.cur().Kind {
	case token.SEMI, token.RBRACE, token.RPAREN, token.RBRACK, token.COMMA, token.EOF,
		token.PIPE, token.PIPEGT, token.SHL, token.SHR, token.SHRBANG,
		token.ANDAND, token.OROR,
		token.QDOT, token.QPLUS, token.QQ, token.QGT, token.QBANG, token.QCOLON:
		return true
	}
	return false
}

func (p *parser) parseCommand() ast.Node {
	name := p.cur().Lit
	p.advance()
	var args []ast.Node
	for !p.atCommandEnd() {
		args = append(args, p.parseCommandArg())
	}
	return ast.Command{Name: name, Args: args}
}

// isWordGlue reports whether the current token continues gluing onto the
// word just parsed, i.e. whether it directly follows with no space and
// isn't an argument-list terminator.
func (p *parser) isWordGlue() bool {
	if p.atCommandEnd() {
		return false
	}
	return !p.cur().SpaceBefore
}

func tokenText(t token.Token) string {
	if t.Lit != "" {
		return t.Lit
	}
	return t.Kind.String()
}

// parseCommandArg parses one space-delimited command argument: a list or
// map literal, a literal (kept typed unless glued to what follows, in which
// case it collapses into the glued word), or a run of glued tokens such as
// a flag ("-la") or a path ("/tmp/foo").
func (p *parser) parseCommandArg() ast.Node {
	t := p.cur()
	switch t.Kind {
	case token.LBRACK:
		return p.parseListLit()
	case token.LBRACE:
		return p.parseMapLit()
	case token.STRING:
		p.advance()
		if p.isWordGlue() {
			return p.continueGluedWord(t.Lit)
		}
		return ast.StringLit{Value: t.Lit}
	case token.INT:
		p.advance()
		if p.isWordGlue() {
			return p.continueGluedWord(t.Lit)
		}
		n, _ := strconv.ParseInt(t.Lit, 10, 64)
		return ast.IntLit{Value: n}
	case token.FLOAT:
		p.advance()
		if p.isWordGlue() {
			return p.continueGluedWord(t.Lit)
		}
		f, _ := strconv.ParseFloat(t.Lit, 64)
		return ast.FloatLit{Value: f}
	default:
		return p.continueGluedWord("")
	}
}

// continueGluedWord concatenates the literal text of consecutive tokens
// with no space between them (and the caller's prefix, if any) into a
// single string argument, stopping at the first space or argument-list
// terminator.
func (p *parser) continueGluedWord(prefix string) ast.Node {
	var sb strings.Builder
	sb.WriteString(prefix)
	for {
		if p.atCommandEnd() {
			break
		}
		if sb.Len() > 0 && p.cur().SpaceBefore {
			break
		}
		sb.WriteString(tokenText(p.cur()))
		p.advance()
	}
	return ast.StringLit{Value: sb.String()}
}
