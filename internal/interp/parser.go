// Package interp implements Luz's recursive-descent parser (C6's
// precedence chain) and its AST evaluator/control-flow engine (C6+C7),
// plus the driver (C8) that ties lexing, parsing and evaluation together
// behind the four injected callbacks spec §1 describes.
//
// The parser builds the tiny tagged AST from package ast in one
// single-pass recursive descent over the token stream — it does not walk
// the stream twice, and re-tokenises nothing but the `{expr}` spans of
// interpolated string literals. It does not evaluate anything
// itself; that is the separate redesign spec §9 calls for, so that dead
// `if`/`else` branches and short-circuited operands are simply AST
// subtrees the evaluator chooses not to walk, rather than spans the
// parser has to bracket-balance past without evaluating.
package interp

import (
	"strings"

	"github.com/aledsdavies/luz/internal/ast"
	"github.com/aledsdavies/luz/internal/lexer"
	"github.com/aledsdavies/luz/internal/luzerr"
	"github.com/aledsdavies/luz/internal/token"
)

type parser struct {
	toks []token.Token
	pos  int
}

func newParser(toks []token.Token) *parser {
	return &parser{toks: toks}
}

// ParseProgram tokenizes src and parses it into a sequence of top-level
// statements.
func ParseProgram(src string) ([]ast.Node, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		le := err.(*lexer.Error)
		return nil, luzerr.Syntax(le.Pos, "%s", le.Error())
	}
	p := newParser(toks)
	var stmts []ast.Node
	p.skipSemis()
	for !p.at(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipSemis()
	}
	return stmts, nil
}

func (p *parser) skipSemis() {
	for p.at(token.SEMI) {
		p.pos++
	}
}

func (p *parser) cur() token.Token  { return p.toks[p.pos] }
func (p *parser) at(k token.Kind) bool { return p.toks[p.pos].Kind == k }

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, luzerr.Syntax(p.cur().Pos, "expected %s, got %s %q", k, p.cur().Kind, p.cur().Literal)
	}
	return p.advance(), nil
}

// --- statement -------------------------------------------------------------

func (p *parser) parseStatement() (ast.Node, error) {
	if p.at(token.FN) || p.at(token.RETURN) {
		return nil, luzerr.Unimplemented(p.cur().Pos, "'%s' is reserved but not implemented", p.cur().Kind)
	}
	if p.at(token.CONST) {
		return p.parseConstDecl()
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipSemis()
	return expr, nil
}

func (p *parser) parseConstDecl() (ast.Node, error) {
	startPos := p.cur().Pos
	p.advance() // const
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{
		NodeBase: ast.NewBase(startPos),
		Op:       token.ASSIGN,
		Target:   &ast.Ident{NodeBase: ast.NewBase(name.Pos), Name: name.Literal},
		Value:    value,
		Const:    true,
	}, nil
}

// --- expression → swap | assignment -----------------------------------------

func (p *parser) parseExpression() (ast.Node, error) {
	if swap, ok, err := p.trySwap(); err != nil {
		return nil, err
	} else if ok {
		return swap, nil
	}
	return p.parseAssignment()
}

func (p *parser) trySwap() (ast.Node, bool, error) {
	save := p.pos
	left, ok := p.tryLValue()
	if !ok || !p.at(token.SPACESHIP) {
		p.pos = save
		return nil, false, nil
	}
	pos := p.cur().Pos
	p.advance()
	right, ok := p.tryLValue()
	if !ok {
		p.pos = save
		return nil, false, nil
	}
	return &ast.Swap{NodeBase: ast.NewBase(pos), Left: left, Right: right}, true, nil
}

// tryLValue parses `ident ('[' expr ']' | '.' number)*` without consuming
// input on failure — the one structural backtrack spec §4.4 calls for.
func (p *parser) tryLValue() (ast.Node, bool) {
	save := p.pos
	if !p.at(token.IDENT) {
		p.pos = save
		return nil, false
	}
	idTok := p.advance()
	var node ast.Node = &ast.Ident{NodeBase: ast.NewBase(idTok.Pos), Name: idTok.Literal}
	for {
		if p.at(token.LBRACKET) {
			bpos := p.cur().Pos
			p.advance()
			key, err := p.parseExpression()
			if err != nil {
				p.pos = save
				return nil, false
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				p.pos = save
				return nil, false
			}
			node = &ast.Index{NodeBase: ast.NewBase(bpos), Target: node, Key: key}
			continue
		}
		if p.at(token.DOT) {
			dpos := p.cur().Pos
			save2 := p.pos
			p.advance()
			if !p.at(token.NUMBER) {
				p.pos = save2
				break
			}
			numTok := p.advance()
			node = &ast.Index{NodeBase: ast.NewBase(dpos), Target: node, Key: &ast.NumberLit{NodeBase: ast.NewBase(numTok.Pos), Value: numTok.Literal}, Dotted: true}
			continue
		}
		break
	}
	return node, true
}

func (p *parser) parseAssignment() (ast.Node, error) {
	save := p.pos
	if target, ok := p.tryLValue(); ok && token.IsAssignOp(p.cur().Kind) {
		opTok := p.advance()
		val, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.Assign{NodeBase: ast.NewBase(opTok.Pos), Op: opTok.Kind, Target: target, Value: val}, nil
	}
	p.pos = save
	return p.parseRange()
}

// --- range → logicalOr (('..'|'..=') logicalOr)* ----------------------------

func (p *parser) parseRange() (ast.Node, error) {
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.at(token.RANGE) || p.at(token.XRANGE) {
		closed := p.at(token.XRANGE)
		pos := p.cur().Pos
		p.advance()
		right, err := p.parseLogicalOr()
		if err != nil {
			return nil, err
		}
		// A trailing cast after a range applies to the whole range, not
		// its end bound: `0..3 as vec` materialises [0 1 2]. The cast
		// chain gets lifted off the right operand and re-applied above
		// the range node.
		end, casts := splitCasts(right)
		left = &ast.RangeExpr{NodeBase: ast.NewBase(pos), Start: left, End: end, Closed: closed}
		for _, c := range casts {
			c.Operand = left
			left = c
		}
	}
	return left, nil
}

// splitCasts unwraps a chain of Cast nodes, returning the innermost
// operand and the casts outermost-last, ready to re-apply in order.
func splitCasts(n ast.Node) (ast.Node, []*ast.Cast) {
	var casts []*ast.Cast
	for {
		c, ok := n.(*ast.Cast)
		if !ok {
			return n, casts
		}
		casts = append([]*ast.Cast{c}, casts...)
		n = c.Operand
	}
}

func (p *parser) parseLogicalOr() (ast.Node, error) {
	left, err := p.parseNullish()
	if err != nil {
		return nil, err
	}
	for p.at(token.OROR) {
		pos := p.cur().Pos
		p.advance()
		right, err := p.parseNullish()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{NodeBase: ast.NewBase(pos), Op: token.OROR, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseNullish() (ast.Node, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.at(token.NULLISH) {
		pos := p.cur().Pos
		p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{NodeBase: ast.NewBase(pos), Op: token.NULLISH, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseLogicalAnd() (ast.Node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.at(token.ANDAND) {
		pos := p.cur().Pos
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{NodeBase: ast.NewBase(pos), Op: token.ANDAND, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseEquality() (ast.Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.at(token.EQ) || p.at(token.NE) || p.at(token.HAS) {
		op := p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{NodeBase: ast.NewBase(op.Pos), Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseComparison() (ast.Node, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	for p.at(token.LT) || p.at(token.LE) || p.at(token.GT) || p.at(token.GE) {
		op := p.advance()
		right, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{NodeBase: ast.NewBase(op.Pos), Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAddSub() (ast.Node, error) {
	left, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.advance()
		right, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{NodeBase: ast.NewBase(op.Pos), Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parsePow() (ast.Node, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for p.at(token.POW) {
		op := p.advance()
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{NodeBase: ast.NewBase(op.Pos), Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseMulDiv() (ast.Node, error) {
	left, err := p.parseBitwise()
	if err != nil {
		return nil, err
	}
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) || p.at(token.FLOORDIV) {
		op := p.advance()
		right, err := p.parseBitwise()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{NodeBase: ast.NewBase(op.Pos), Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseBitwise() (ast.Node, error) {
	left, err := p.parseAs()
	if err != nil {
		return nil, err
	}
	for p.at(token.AMP) || p.at(token.PIPE) || p.at(token.CARET) || p.at(token.SHL) || p.at(token.SHR) || p.at(token.USHR) {
		op := p.advance()
		right, err := p.parseAs()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{NodeBase: ast.NewBase(op.Pos), Op: op.Kind, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAs() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(token.AS) {
		pos := p.cur().Pos
		p.advance()
		if p.at(token.TYPEOF) {
			p.advance()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &ast.Cast{NodeBase: ast.NewBase(pos), Operand: left, TypeOfOf: operand}
			continue
		}
		if p.at(token.MAYBELIT) {
			p.advance()
			left = &ast.Cast{NodeBase: ast.NewBase(pos), Operand: left, Type: "maybe"}
			continue
		}
		// "null" and "inf" are literal tokens, but they are also valid
		// cast targets.
		if p.at(token.NULLLIT) || p.at(token.INFLIT) {
			tagTok := p.advance()
			left = &ast.Cast{NodeBase: ast.NewBase(pos), Operand: left, Type: tagTok.Literal}
			continue
		}
		typeTok, err := p.expect(token.IDENT)
		if err != nil {
			// type tags like "num"/"str" lex as IDENT unless they happen
			// to collide with a keyword (none do).
			return nil, luzerr.Syntax(p.cur().Pos, "expected a type tag after 'as'")
		}
		left = &ast.Cast{NodeBase: ast.NewBase(pos), Operand: left, Type: typeTok.Literal}
	}
	return left, nil
}

var unaryOps = map[token.Kind]bool{
	token.INC: true, token.DEC: true, token.NOT: true, token.TILDE: true,
	token.PLUS: true, token.MINUS: true,
}

var intrinsicOps = map[token.Kind]bool{
	token.LOG: true, token.LOGLN: true, token.GET: true, token.GETLN: true,
	token.LENOF: true, token.TYPEOF: true, token.COPYOF: true, token.SIZEOF: true,
	token.FIRSTOF: true, token.LASTOF: true, token.DEL: true,
}

func (p *parser) parseUnary() (ast.Node, error) {
	if unaryOps[p.cur().Kind] {
		op := p.advance()
		if op.Kind == token.INC || op.Kind == token.DEC {
			target, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.IncDec{NodeBase: ast.NewBase(op.Pos), Op: op.Kind, Target: target}, nil
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{NodeBase: ast.NewBase(op.Pos), Op: op.Kind, Operand: operand}, nil
	}
	if intrinsicOps[p.cur().Kind] {
		op := p.advance()
		// Bare `log`/`logln`/`get`/`getln` (no operand) is legal when
		// immediately followed by a statement terminator or block end.
		if (op.Kind == token.LOG || op.Kind == token.LOGLN || op.Kind == token.GET || op.Kind == token.GETLN) &&
			(p.at(token.SEMI) || p.at(token.RBRACE) || p.at(token.EOF)) {
			return &ast.Intrinsic{NodeBase: ast.NewBase(op.Pos), Op: op.Kind}, nil
		}
		// log/logln print the whole expression to their right
		// (`log x ~/ y` prints the quotient, not x), so their operand
		// parses at expression level; the value-shaped intrinsics bind
		// tighter, like any other unary prefix.
		if op.Kind == token.LOG || op.Kind == token.LOGLN {
			operand, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &ast.Intrinsic{NodeBase: ast.NewBase(op.Pos), Op: op.Kind, Operand: operand}, nil
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Intrinsic{NodeBase: ast.NewBase(op.Pos), Op: op.Kind, Operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (ast.Node, error) {
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	primary, err = p.parseIndexChain(primary)
	if err != nil {
		return nil, err
	}
	if p.at(token.INC) || p.at(token.DEC) {
		op := p.advance()
		return &ast.IncDec{NodeBase: ast.NewBase(op.Pos), Op: op.Kind, Target: primary, Postfix: true}, nil
	}
	return primary, nil
}

func (p *parser) parseIndexChain(target ast.Node) (ast.Node, error) {
	for {
		if p.at(token.LBRACKET) {
			pos := p.cur().Pos
			p.advance()
			key, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			target = &ast.Index{NodeBase: ast.NewBase(pos), Target: target, Key: key}
			continue
		}
		if p.at(token.DOT) {
			save := p.pos
			pos := p.cur().Pos
			p.advance()
			if !p.at(token.NUMBER) {
				p.pos = save
				break
			}
			numTok := p.advance()
			target = &ast.Index{NodeBase: ast.NewBase(pos), Target: target, Key: &ast.NumberLit{NodeBase: ast.NewBase(numTok.Pos), Value: numTok.Literal}, Dotted: true}
			continue
		}
		break
	}
	return target, nil
}

func (p *parser) parsePrimary() (ast.Node, error) {
	t := p.cur()
	switch t.Kind {
	case token.IF:
		return p.parseIf()
	case token.LOOP:
		return p.parseLoop()
	case token.BREAK:
		p.advance()
		if p.at(token.SEMI) || p.at(token.RBRACE) || p.at(token.EOF) || p.at(token.RPAREN) {
			return &ast.BreakExpr{NodeBase: ast.NewBase(t.Pos)}, nil
		}
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.BreakExpr{NodeBase: ast.NewBase(t.Pos), Value: val}, nil
	case token.CONTINUE:
		p.advance()
		return &ast.ContinueExpr{NodeBase: ast.NewBase(t.Pos)}, nil
	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case token.LBRACKET:
		return p.parseAggLit(ast.ArrKind, token.LBRACKET, token.RBRACKET)
	case token.VECOPEN:
		return p.parseAggLit(ast.VecKind, token.VECOPEN, token.RBRACKET)
	case token.SETOPEN:
		return p.parseAggLit(ast.SetKind, token.SETOPEN, token.RBRACE)
	case token.NUMBER:
		p.advance()
		return &ast.NumberLit{NodeBase: ast.NewBase(t.Pos), Value: t.Literal}, nil
	case token.BIGINT:
		p.advance()
		return &ast.BigIntLit{NodeBase: ast.NewBase(t.Pos), Value: t.Literal}, nil
	case token.STRING:
		p.advance()
		return p.buildStringLit(t)
	case token.BOOL:
		p.advance()
		return &ast.BoolLit{NodeBase: ast.NewBase(t.Pos), Value: t.Literal == "true"}, nil
	case token.NULLLIT:
		p.advance()
		return &ast.NullLit{NodeBase: ast.NewBase(t.Pos)}, nil
	case token.MAYBELIT:
		p.advance()
		return &ast.MaybeLit{NodeBase: ast.NewBase(t.Pos)}, nil
	case token.INFLIT:
		p.advance()
		return &ast.InfLit{NodeBase: ast.NewBase(t.Pos)}, nil
	case token.IDENT:
		p.advance()
		return &ast.Ident{NodeBase: ast.NewBase(t.Pos), Name: t.Literal}, nil
	default:
		return nil, luzerr.Syntax(t.Pos, "unexpected token %s %q", t.Kind, t.Literal)
	}
}

// parseAggLit handles `[...]`, `![...]` and `@{...}`, including the
// length-replication form `elem ; count` (spec §4.4).
func (p *parser) parseAggLit(kind ast.AggKind, open, close token.Kind) (ast.Node, error) {
	pos := p.cur().Pos
	if _, err := p.expect(open); err != nil {
		return nil, err
	}
	if p.at(close) {
		p.advance()
		return &ast.AggLit{NodeBase: ast.NewBase(pos), Kind: kind}, nil
	}
	var elems []ast.Node
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.at(token.SEMI) {
			// length-replication: only one element expression is allowed
			// before the ';'.
			if len(elems) != 1 {
				return nil, luzerr.Syntax(p.cur().Pos, "length-replication takes exactly one element expression before ';'")
			}
			p.advance()
			count, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(close); err != nil {
				return nil, err
			}
			return &ast.AggLit{NodeBase: ast.NewBase(pos), Kind: kind, Elem: elems[0], Count: count}, nil
		}
		if p.at(token.COMMA) {
			p.advance()
		}
		if p.at(close) || p.at(token.EOF) {
			break
		}
		// space-separated elements are also accepted (no comma required)
	}
	if _, err := p.expect(close); err != nil {
		return nil, err
	}
	return &ast.AggLit{NodeBase: ast.NewBase(pos), Kind: kind, Elems: elems}, nil
}

// --- if / loop ---------------------------------------------------------------

func (p *parser) parseIf() (ast.Node, error) {
	pos := p.cur().Pos
	p.advance() // if
	cond, err := p.parseMaybeParenExpr()
	if err != nil {
		return nil, err
	}
	thenBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.IfExpr{NodeBase: ast.NewBase(pos), Cond: cond, Then: thenBlock}
	if p.at(token.ELSE) {
		p.advance()
		if p.at(token.IF) {
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			node.Else = elseIf
		} else {
			elseBlock, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			node.Else = elseBlock
		}
	}
	return node, nil
}

// parseMaybeParenExpr parses a condition expression, with or without the
// optional surrounding parentheses spec §4.4 allows for `if`/`loop`.
func (p *parser) parseMaybeParenExpr() (ast.Node, error) {
	if p.at(token.LPAREN) {
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return p.parseExpressionNoBrace()
}

// parseExpressionNoBrace parses a condition expression when it isn't
// parenthesized. It is plain parseExpression: no expression form starts
// with or consumes a bare '{' (Set literals open with '@{'), so the parse
// already stops before the '{' that opens the following block.
func (p *parser) parseExpressionNoBrace() (ast.Node, error) {
	return p.parseExpression()
}

func (p *parser) parseBlock() (*ast.Block, error) {
	pos := p.cur().Pos
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Node
	p.skipSemis()
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.skipSemis()
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Block{NodeBase: ast.NewBase(pos), Stmts: stmts}, nil
}

func (p *parser) parseLoop() (ast.Node, error) {
	pos := p.cur().Pos
	p.advance() // loop
	if p.at(token.LBRACE) {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.LoopExpr{NodeBase: ast.NewBase(pos), Kind: ast.LoopInfinite, Body: body}, nil
	}

	hasParen := false
	if p.at(token.LPAREN) {
		// A leading '(' is always taken as the optional wrapper, so the
		// for-in iterable or the while condition must be followed by its
		// closing ')'. For-in is tried first since it is unambiguous on
		// the 'in' keyword.
		hasParen = true
		p.advance()
	}

	// for-in: ident 'in' iterable
	if p.at(token.IDENT) && p.peekIsIn() {
		varTok := p.advance()
		p.advance() // in
		iter, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if hasParen {
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &ast.LoopExpr{NodeBase: ast.NewBase(pos), Kind: ast.LoopForIn, VarName: varTok.Literal, Iter: iter, Body: body}, nil
	}

	// while: expr
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if hasParen {
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.LoopExpr{NodeBase: ast.NewBase(pos), Kind: ast.LoopWhile, Cond: cond, Body: body}, nil
}

func (p *parser) peekIsIn() bool {
	return p.pos+1 < len(p.toks) && p.toks[p.pos+1].Kind == token.IN
}

// --- string interpolation ----------------------------------------------------

// buildStringLit splits a decoded string literal into literal-text and
// "{expr}" parts, brace-matched with nesting (spec §4.4). Each expression
// span is re-tokenised and parsed as its own sub-program, sharing no
// parser state with the enclosing one (only the scope is shared, at
// evaluation time).
func (p *parser) buildStringLit(t token.Token) (ast.Node, error) {
	s := t.Literal
	if !strings.ContainsRune(s, '{') {
		return &ast.StringLit{NodeBase: ast.NewBase(t.Pos), Value: s}, nil
	}
	var parts []ast.InterpPart
	i := 0
	for i < len(s) {
		j := strings.IndexByte(s[i:], '{')
		if j < 0 {
			parts = append(parts, ast.InterpPart{Text: s[i:]})
			break
		}
		j += i
		if j > i {
			parts = append(parts, ast.InterpPart{Text: s[i:j]})
		}
		depth := 1
		k := j + 1
		for k < len(s) && depth > 0 {
			switch s[k] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				break
			}
			k++
		}
		if depth != 0 {
			return nil, luzerr.Syntax(t.Pos, "unclosed interpolation in string literal")
		}
		inner := s[j+1 : k]
		if inner == "" {
			parts = append(parts, ast.InterpPart{Text: "{}"})
		} else {
			toks, err := lexer.Tokenize(inner)
			if err != nil {
				return nil, luzerr.Syntax(t.Pos, "invalid expression in string interpolation: %v", err)
			}
			sub := newParser(toks)
			expr, err := sub.parseExpression()
			if err != nil {
				return nil, err
			}
			parts = append(parts, ast.InterpPart{Expr: expr})
		}
		i = k + 1
	}
	return &ast.StringLit{NodeBase: ast.NewBase(t.Pos), Parts: parts}, nil
}
