package parser

import (
	"github.com/lumesh-lang/lumesh/lang/ast"
	"github.com/lumesh-lang/lumesh/lang/token"
)

// parseStmt parses one top-level or block-level construct: the handful of
// keyword-led forms (let/fn/del/alias/use/return/break), any `@decorator`
// prefix on a following fn, or a command-aware expression chain.
func (p *parser) parseStmt() ast.Node {
	for p.at(token.AT) {
		return p.parseDecoratedFn()
	}
	switch p.cur().Kind {
	case token.LET:
		return p.parseLet()
	case token.FN:
		return p.parseFn(nil)
	case token.DEL:
		return p.parseDel()
	case token.ALIAS:
		return p.parseAlias()
	case token.USE:
		return p.parseUse()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		return p.parseBreak()
	}
	return p.parseCatchChain(true)
}

func (p *parser) parseLet() ast.Node {
	p.advance() // let
	name := p.identName()
	p.expect(token.EQ)
	expr := p.parseExpr()
	return ast.Declare{Name: name, Expr: expr}
}

func (p *parser) parseDel() ast.Node {
	p.advance() // del
	name := p.identName()
	return ast.Del{Name: name}
}

func (p *parser) parseAlias() ast.Node {
	p.advance() // alias
	name := p.identName()
	p.expect(token.EQ)
	expr := p.parseExpr()
	return ast.Alias{Name: name, Expr: expr}
}

func (p *parser) parseUse() ast.Node {
	p.advance() // use
	path := []string{p.identName()}
	for p.at(token.DOT) {
		p.advance()
		path = append(path, p.identName())
	}
	return ast.Use{Path: path}
}

// stmtTerminates reports whether the current token can end a bare `return`
// or `break` with no value.
func (p *parser) stmtTerminates() bool {
	switch p.cur().Kind {
	case token.SEMI, token.RBRACE, token.EOF, token.COMMA:
		return true
	}
	return false
}

func (p *parser) parseReturn() ast.Node {
	p.advance() // return
	if p.stmtTerminates() {
		return ast.Return{Expr: ast.NoneLit{}}
	}
	return ast.Return{Expr: p.parseExpr()}
}

func (p *parser) parseBreak() ast.Node {
	p.advance() // break
	if p.stmtTerminates() {
		return ast.Break{Expr: ast.NoneLit{}}
	}
	return ast.Break{Expr: p.parseExpr()}
}

// parseDecoratedFn parses one or more `@name(args)` decorators followed by
// a `fn` declaration (spec's decorator-composition form, §4.E.2).
func (p *parser) parseDecoratedFn() ast.Node {
	var decos []ast.Decorator
	for p.at(token.AT) {
		p.advance()
		name := p.identName()
		var args []ast.Node
		if p.at(token.LPAREN) {
			args = p.parseArgList()
		}
		decos = append(decos, ast.Decorator{Name: name, Args: args})
	}
	return p.parseFn(decos)
}

func (p *parser) parseFn(decos []ast.Decorator) ast.Node {
	p.expect(token.FN)
	name := p.identName()
	params, rest := p.parseParamList()
	body := p.parseBlock()
	return ast.FunctionLit{Name: name, Params: params, Rest: rest, Body: body, Decorators: decos}
}

// parseParamList parses `(a, b=default, ..rest)`.
func (p *parser) parseParamList() ([]ast.Param, string) {
	p.expect(token.LPAREN)
	var params []ast.Param
	rest := ""
	if !p.at(token.RPAREN) {
		for {
			if p.at(token.DOTDOT) {
				p.advance()
				rest = p.identName()
				break
			}
			name := p.identName()
			var def ast.Node
			if p.at(token.EQ) {
				p.advance()
				def = p.parseExpr()
			}
			params = append(params, ast.Param{Name: name, Default: def})
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.RPAREN)
	return params, rest
}

func (p *parser) parseIf() ast.Node {
	p.advance() // if
	cond := p.parseExpr()
	then := p.parseBlock()
	var els ast.Node
	if p.at(token.ELSE) {
		p.advance()
		if p.at(token.IF) {
			els = p.parseIf()
		} else {
			els = p.parseBlock()
		}
	}
	return ast.If{Cond: cond, Then: then, Else: els}
}

func (p *parser) parseWhile() ast.Node {
	p.advance() // while
	cond := p.parseExpr()
	body := p.parseBlock()
	return ast.While{Cond: cond, Body: body}
}

func (p *parser) parseLoop() ast.Node {
	p.advance() // loop
	return ast.Loop{Body: p.parseBlock()}
}

func (p *parser) parseFor() ast.Node {
	p.advance() // for
	v := p.identName()
	idx := ""
	if p.at(token.COMMA) {
		p.advance()
		idx = p.identName()
	}
	p.expect(token.IN)
	src := p.parseExpr()
	body := p.parseBlock()
	return ast.For{Var: v, Index: idx, Source: src, Body: body}
}

func (p *parser) parseMatch() ast.Node {
	p.advance() // match
	scrutinee := p.parseExpr()
	p.expect(token.LBRACE)
	var arms []ast.MatchArm
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		pat := p.parsePattern()
		p.expect(token.FATARROW)
		body := p.parseExpr()
		arms = append(arms, ast.MatchArm{Pattern: pat, Body: body})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return ast.Match{Scrutinee: scrutinee, Arms: arms}
}

func (p *parser) parsePattern() ast.Pattern {
	if p.at(token.USCORE) {
		p.advance()
		return ast.Pattern{Bind: "_"}
	}
	if p.at(token.IDENT) {
		name := p.cur().Lit
		p.advance()
		return ast.Pattern{Bind: name}
	}
	return ast.Pattern{Expr: p.parseUnary()}
}
