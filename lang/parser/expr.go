package parser

import (
	"strconv"

	"github.com/lumesh-lang/lumesh/lang/ast"
	"github.com/lumesh-lang/lumesh/lang/token"
)

// parseExpr is the expression entry point used in sub-expression
// positions (call arguments, list/map elements, conditions, ...). It never
// attempts bareword Command recognition — that only fires at statement
// position, via parseStmt/parseCatchChain(true).
func (p *parser) parseExpr() ast.Node { return p.parseCatchChain(false) }

var catchKinds = map[token.Kind]bool{
	token.QDOT: true, token.QPLUS: true, token.QQ: true,
	token.QGT: true, token.QBANG: true, token.QCOLON: true,
}

func (p *parser) parseCatchChain(stmtLevel bool) ast.Node {
	expr := p.parsePipeChain(stmtLevel)
	for catchKinds[p.cur().Kind] {
		kind := p.cur().Kind.String()
		p.advance()
		var handler ast.Node
		if kind == "?:" {
			handler = p.parseExpr()
		}
		expr = ast.Catch{Body: expr, Kind: kind, Handler: handler}
	}
	return expr
}

var pipeKinds = map[token.Kind]bool{
	token.PIPE: true, token.PIPEGT: true, token.SHL: true, token.SHR: true, token.SHRBANG: true,
}

func (p *parser) parsePipeChain(stmtLevel bool) ast.Node {
	left := p.parsePipeOperand(stmtLevel)
	for pipeKinds[p.cur().Kind] {
		kind := p.cur().Kind.String()
		p.advance()
		right := p.parsePipeOperand(stmtLevel)
		left = ast.Pipe{Kind: kind, Left: left, Right: right}
	}
	return left
}

func (p *parser) parsePipeOperand(stmtLevel bool) ast.Node {
	if stmtLevel && p.at(token.IDENT) && p.looksLikeCommand() {
		return p.parseCommand()
	}
	return p.parseAssignOrExpr()
}

var compoundOps = map[token.Kind]string{
	token.PLUSEQ: "+", token.MINUSEQ: "-", token.STAREQ: "*", token.SLASHEQ: "/",
}

func (p *parser) parseAssignOrExpr() ast.Node {
	left := p.parseOr()
	if p.at(token.EQ) {
		if id, ok := left.(*ast.Ident); ok {
			p.advance()
			return ast.Assign{Name: id.Name, Expr: p.parseExpr()}
		}
	}
	if op, ok := compoundOps[p.cur().Kind]; ok {
		if id, ok := left.(*ast.Ident); ok {
			p.advance()
			return ast.CompoundAssign{Name: id.Name, Op: op, Expr: p.parseExpr()}
		}
	}
	return left
}

func (p *parser) parseOr() ast.Node {
	left := p.parseAnd()
	for p.at(token.OROR) {
		op := p.cur().Kind.String()
		p.advance()
		left = ast.BinaryOp{Op: op, Left: left, Right: p.parseAnd()}
	}
	return left
}

func (p *parser) parseAnd() ast.Node {
	left := p.parseEquality()
	for p.at(token.ANDAND) {
		op := p.cur().Kind.String()
		p.advance()
		left = ast.BinaryOp{Op: op, Left: left, Right: p.parseEquality()}
	}
	return left
}

var equalityKinds = map[token.Kind]bool{
	token.EQEQ: true, token.NEQ: true, token.TIN: true, token.TMATCH: true, token.TSTREQ: true,
}

func (p *parser) parseEquality() ast.Node {
	left := p.parseRelational()
	for equalityKinds[p.cur().Kind] {
		op := p.cur().Kind.String()
		p.advance()
		left = ast.BinaryOp{Op: op, Left: left, Right: p.parseRelational()}
	}
	return left
}

var relationalKinds = map[token.Kind]bool{
	token.LT: true, token.GT: true, token.LE: true, token.GE: true,
}

func (p *parser) parseRelational() ast.Node {
	left := p.parseRange()
	for relationalKinds[p.cur().Kind] {
		op := p.cur().Kind.String()
		p.advance()
		left = ast.BinaryOp{Op: op, Left: left, Right: p.parseRange()}
	}
	return left
}

func (p *parser) parseRange() ast.Node {
	left := p.parseAdditive()
	if p.at(token.DOTDOT) || p.at(token.DOTDOTEQ) {
		op := p.cur().Kind.String()
		p.advance()
		return ast.BinaryOp{Op: op, Left: left, Right: p.parseAdditive()}
	}
	return left
}

func (p *parser) parseAdditive() ast.Node {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.cur().Kind.String()
		p.advance()
		left = ast.BinaryOp{Op: op, Left: left, Right: p.parseMultiplicative()}
	}
	return left
}

func (p *parser) parseMultiplicative() ast.Node {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		op := p.cur().Kind.String()
		p.advance()
		left = ast.BinaryOp{Op: op, Left: left, Right: p.parseUnary()}
	}
	return left
}

func (p *parser) parseUnary() ast.Node {
	switch p.cur().Kind {
	case token.BANG, token.MINUS:
		op := p.cur().Kind.String()
		p.advance()
		return ast.UnaryOp{Op: op, Operand: p.parseUnary()}
	case token.INCR, token.DECR:
		op := p.cur().Kind.String()
		p.advance()
		return ast.UnaryOp{Op: op, Operand: p.parseUnary()}
	}
	return p.parsePow()
}

func (p *parser) parsePow() ast.Node {
	left := p.parsePostfix()
	if p.at(token.CARET) {
		p.advance()
		return ast.BinaryOp{Op: "^", Left: left, Right: p.parseUnary()}
	}
	return left
}

func (p *parser) parsePostfix() ast.Node {
	x := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.LPAREN:
			x = ast.Apply{Callee: x, Args: p.parseArgList()}
		case token.LBRACK:
			x = p.parseIndexOrSlice(x)
		case token.DOT:
			p.advance()
			name := p.identName()
			if p.at(token.LPAREN) {
				step := ast.ChainStep{Method: name, Args: p.parseArgList()}
				if ch, ok := x.(ast.Chain); ok {
					ch.Steps = append(ch.Steps, step)
					x = ch
				} else {
					x = ast.Chain{Base: x, Steps: []ast.ChainStep{step}}
				}
			} else {
				x = ast.Index{Lhs: x, Rhs: ast.StringLit{Value: name}}
			}
		case token.INCR, token.DECR:
			op := p.cur().Kind.String()
			p.advance()
			x = ast.UnaryOp{Op: op, Operand: x, Postfix: true}
		default:
			return x
		}
	}
}

func (p *parser) parseArgList() []ast.Node {
	p.expect(token.LPAREN)
	var args []ast.Node
	if !p.at(token.RPAREN) {
		args = append(args, p.parseExpr())
		for p.at(token.COMMA) {
			p.advance()
			args = append(args, p.parseExpr())
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *parser) parseIndexOrSlice(lhs ast.Node) ast.Node {
	p.expect(token.LBRACK)
	var start, end, step ast.Node
	isSlice := false
	if !p.at(token.COLON) && !p.at(token.RBRACK) {
		start = p.parseExpr()
	}
	if p.at(token.COLON) {
		isSlice = true
		p.advance()
		if !p.at(token.COLON) && !p.at(token.RBRACK) {
			end = p.parseExpr()
		}
		if p.at(token.COLON) {
			p.advance()
			if !p.at(token.RBRACK) {
				step = p.parseExpr()
			}
		}
	}
	p.expect(token.RBRACK)
	if isSlice {
		return ast.Slice{List: lhs, Params: ast.SliceParams{Start: start, End: end, Step: step}}
	}
	return ast.Index{Lhs: lhs, Rhs: start}
}

func (p *parser) parsePrimary() ast.Node {
	t := p.cur()
	switch t.Kind {
	case token.NONE:
		p.advance()
		return ast.NoneLit{}
	case token.TRUE:
		p.advance()
		return ast.BoolLit{Value: true}
	case token.FALSE:
		p.advance()
		return ast.BoolLit{Value: false}
	case token.INT:
		p.advance()
		n, _ := strconv.ParseInt(t.Lit, 10, 64)
		return ast.IntLit{Value: n}
	case token.FLOAT:
		p.advance()
		f, _ := strconv.ParseFloat(t.Lit, 64)
		return ast.FloatLit{Value: f}
	case token.STRING:
		p.advance()
		return ast.StringLit{Value: t.Lit}
	case token.USCORE:
		p.advance()
		return &ast.Ident{Name: "_"}
	case token.DOLLAR:
		p.advance()
		name := p.identName()
		return &ast.Ident{Name: name, Strict: true}
	case token.IDENT:
		if t.Lit == "b" && p.peek(1).Kind == token.STRING && !p.peek(1).SpaceBefore {
			p.advance()
			s := p.cur().Lit
			p.advance()
			return ast.BytesLit{Value: []byte(s)}
		}
		p.advance()
		return &ast.Ident{Name: t.Lit}
	case token.LBRACK:
		return p.parseListLit()
	case token.LBRACE:
		return p.parseMapLit()
	case token.LPAREN:
		return p.parseParenOrLambda()
	case token.DO:
		p.advance()
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.LOOP:
		return p.parseLoop()
	case token.FOR:
		return p.parseFor()
	case token.MATCH:
		return p.parseMatch()
	case token.FN:
		return p.parseFn(nil)
	}
	p.errorf(t.Pos, "unexpected token %s", describeTok(t))
	p.advance()
	return ast.NoneLit{}
}

func (p *parser) parseListLit() ast.Node {
	p.expect(token.LBRACK)
	var elems []ast.Node
	if !p.at(token.RBRACK) {
		elems = append(elems, p.parseExpr())
		for p.at(token.COMMA) {
			p.advance()
			if p.at(token.RBRACK) {
				break
			}
			elems = append(elems, p.parseExpr())
		}
	}
	p.expect(token.RBRACK)
	return ast.ListLit{Elems: elems}
}

func (p *parser) parseMapLit() ast.Node {
	p.expect(token.LBRACE)
	var entries []ast.MapEntry
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		var key string
		switch p.cur().Kind {
		case token.IDENT:
			key = p.cur().Lit
			p.advance()
		case token.STRING:
			key = p.cur().Lit
			p.advance()
		default:
			key = p.identName()
		}
		p.expect(token.COLON)
		val := p.parseExpr()
		entries = append(entries, ast.MapEntry{Key: key, Val: val})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return ast.MapLit{Entries: entries}
}

// parseParenOrLambda disambiguates a parenthesized group from a lambda's
// parameter list by speculatively parsing the latter and backtracking if
// it doesn't fit the `(names...) ->` shape.
func (p *parser) parseParenOrLambda() ast.Node {
	if params, ok := p.tryLambdaParams(); ok {
		body := p.parseLambdaBody()
		return ast.LambdaLit{Params: params, Body: body}
	}
	p.expect(token.LPAREN)
	inner := p.parseExpr()
	p.expect(token.RPAREN)
	return ast.Group{Inner: inner}
}

func (p *parser) parseLambdaBody() ast.Node {
	if p.at(token.LBRACE) {
		return p.parseBlock()
	}
	return p.parseExpr()
}

func (p *parser) tryLambdaParams() ([]string, bool) {
	save := p.mark()
	if !p.at(token.LPAREN) {
		return nil, false
	}
	p.advance()
	var params []string
	if !p.at(token.RPAREN) {
		for {
			if p.at(token.USCORE) {
				params = append(params, "_")
				p.advance()
			} else if p.at(token.IDENT) {
				params = append(params, p.cur().Lit)
				p.advance()
			} else {
				p.reset(save)
				return nil, false
			}
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if !p.at(token.RPAREN) {
		p.reset(save)
		return nil, false
	}
	p.advance()
	if !p.at(token.ARROW) {
		p.reset(save)
		return nil, false
	}
	p.advance()
	return params, true
}
