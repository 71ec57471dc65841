// Package parser implements lumesh's recursive-descent front end: it
// consumes the token stream from lang/scanner and produces the lang/ast
// tree lang/eval walks. The overall advance/expect/error shape follows the
// teacher's lang/parser, regrown for lumesh's shell-flavored grammar (a
// bareword `Command` form coexists with conventional expression syntax)
// instead of nenuphar's.
package parser

import (
	"fmt"

	"github.com/lumesh-lang/lumesh/lang/ast"
	"github.com/lumesh-lang/lumesh/lang/scanner"
	"github.com/lumesh-lang/lumesh/lang/token"
)

// Error is one problem found while parsing.
type Error struct {
	Pos token.Pos
	Msg string
}

func (e Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// ErrorList collects the parse errors of one pass. Scanner errors are not
// part of it: Parse returns them on their own, or joined with the parse
// errors into a plain error.
type ErrorList []Error

func (el ErrorList) Error() string {
	var s string
	for i, e := range el {
		if i > 0 {
			s += "\n"
		}
		s += e.Error()
	}
	return s
}

// parser parses a fully-tokenized buffer. Eager whole-buffer tokenization
// (see scanner.ScanAll) means the parser operates over a random-access
// slice with an integer cursor, so trying a production and backtracking on
// failure — needed to tell a lambda's parameter list `(x, y) -> ...` from a
// parenthesized expression — is a cheap save/restore of that cursor rather
// than a speculative multi-token lookahead buffer.
type parser struct {
	toks []token.Token
	pos  int
	errs ErrorList
}

// Parse tokenizes and parses src, returning the program as a single Do node
// (its Body is the top-level statement sequence) and any errors found.
func Parse(src []byte) (ast.Node, error) {
	toks, scanErr := scanner.ScanAll(src)
	p := &parser{toks: toks}
	prog := p.parseProgram()
	if scanErr != nil {
		if len(p.errs) == 0 {
			return prog, scanErr
		}
		return prog, fmt.Errorf("%s\n%s", scanErr, p.errs.Error())
	}
	if len(p.errs) > 0 {
		return prog, p.errs
	}
	return prog, nil
}

func (p *parser) cur() token.Token { return p.toks[p.pos] }

func (p *parser) peek(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

func (p *parser) advance() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

func (p *parser) mark() int        { return p.pos }
func (p *parser) reset(mark int)   { p.pos = mark }

func (p *parser) at(k token.Kind) bool { return p.cur().Kind == k }

// expect consumes the current token if it matches k, recording an error and
// leaving the cursor in place otherwise.
func (p *parser) expect(k token.Kind) token.Token {
	t := p.cur()
	if t.Kind != k {
		p.errorf(t.Pos, "expected %s, found %s", k, describeTok(t))
		return t
	}
	p.advance()
	return t
}

func describeTok(t token.Token) string {
	if t.Lit != "" {
		return t.Lit
	}
	return t.Kind.String()
}

func (p *parser) errorf(pos token.Pos, format string, args ...any) {
	p.errs = append(p.errs, Error{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// identName consumes an IDENT (or the `_` placeholder) and returns its text.
func (p *parser) identName() string {
	t := p.cur()
	if t.Kind == token.USCORE {
		p.advance()
		return "_"
	}
	if t.Kind != token.IDENT {
		p.errorf(t.Pos, "expected identifier, found %s", describeTok(t))
		return ""
	}
	p.advance()
	return t.Lit
}

func (p *parser) parseProgram() ast.Node {
	var body []ast.Node
	for !p.at(token.EOF) {
		body = append(body, p.parseStmt())
		for p.at(token.SEMI) {
			p.advance()
		}
	}
	return ast.Do{Body: body}
}

// parseBlock parses a brace-delimited statement sequence. Used wherever the
// grammar calls for a block (if/else, while, loop, for, fn bodies) — in
// those positions `{` unambiguously starts a block, never a map literal,
// which is what lets map literals use the same brace without a conflict.
func (p *parser) parseBlock() ast.Node {
	p.expect(token.LBRACE)
	var body []ast.Node
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		body = append(body, p.parseStmt())
		for p.at(token.SEMI) {
			p.advance()
		}
	}
	p.expect(token.RBRACE)
	return ast.Do{Body: body}
}
