/*
File    : pl0run/parser/parser.go
*/

// Package parser implements a hand-written recursive-descent parser for
// PL/0, following Wirth's grammar verbatim. A single helper,
// accept, compares the look-ahead token against an expected kind/literal
// and consumes it on match; every other mismatch surfaces as a SyntaxError
// carrying a one-line diagnostic. There is no error recovery: the first
// SyntaxError aborts the whole parse.
package parser

import (
	"strconv"

	"github.com/pl0toolkit/pl0run/ast"
	"github.com/pl0toolkit/pl0run/lexer"
)

// Parser holds a one-token look-ahead over a Lexer.
type Parser struct {
	lex    *lexer.Lexer
	cur    lexer.Token
	curErr error
}

// New creates a Parser over src and primes its look-ahead.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.cur, p.curErr = p.lex.Peek()
	return p
}

// Parse runs the program production and returns the resulting AST, or the
// first error encountered.
func Parse(src string) (*ast.Program, error) {
	return New(src).ParseProgram()
}

func (p *Parser) advance() {
	_, _ = p.lex.Next()
	p.cur, p.curErr = p.lex.Peek()
}

func (p *Parser) pos() ast.Pos {
	return ast.Pos{Line: p.cur.Line, Col: p.cur.Col}
}

func (p *Parser) checkLexErr() error {
	return p.curErr
}

// match reports whether the look-ahead token has the given kind and, for
// every kind but Name, the given literal. A Name match accepts any
// identifier regardless of payload.
func (p *Parser) match(kind lexer.Kind, literal string) bool {
	if p.cur.Kind != kind {
		return false
	}
	return kind == lexer.Name || p.cur.Literal == literal
}

// accept compares the look-ahead token against (kind, literal); on match it
// consumes the token and returns it with ok=true, otherwise it leaves the
// stream untouched and returns ok=false.
func (p *Parser) accept(kind lexer.Kind, literal string) (lexer.Token, bool) {
	if !p.match(kind, literal) {
		return lexer.Token{}, false
	}
	tok := p.cur
	p.advance()
	return tok, true
}

func (p *Parser) expect(kind lexer.Kind, literal string) (lexer.Token, error) {
	if err := p.checkLexErr(); err != nil {
		return lexer.Token{}, err
	}
	tok, ok := p.accept(kind, literal)
	if !ok {
		return lexer.Token{}, p.syntaxErrorf("expected %s, got %s", describeExpect(kind, literal), describe(p.cur))
	}
	return tok, nil
}

func (p *Parser) expectName() (lexer.Token, error) {
	return p.expect(lexer.Name, "")
}

func (p *Parser) syntaxErrorf(format string, args ...interface{}) error {
	return &SyntaxError{Line: p.cur.Line, Col: p.cur.Col, Message: sprintf(format, args...)}
}

// ParseProgram parses `block "."`, rejecting trailing characters after the
// final period.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Operator, "."); err != nil {
		return nil, err
	}
	if err := p.checkLexErr(); err != nil {
		return nil, err
	}
	if p.cur.Kind != lexer.EOF {
		return nil, p.syntaxErrorf("unexpected trailing input after '.': %s", describe(p.cur))
	}
	return &ast.Program{Block: block}, nil
}

// parseBlock parses:
//
//	block = [ "const" constList ";" ]
//	        [ "var"   varList   ";" ]
//	        { "procedure" ident ";" block ";" }
//	        statement
func (p *Parser) parseBlock() (*ast.Block, error) {
	block := &ast.Block{}

	if _, ok := p.accept(lexer.Keyword, "const"); ok {
		consts, err := p.parseConstList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Operator, ";"); err != nil {
			return nil, err
		}
		block.Consts = consts
	}

	if _, ok := p.accept(lexer.Keyword, "var"); ok {
		vars, err := p.parseVarList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Operator, ";"); err != nil {
			return nil, err
		}
		block.Vars = vars
	}

	for {
		if err := p.checkLexErr(); err != nil {
			return nil, err
		}
		if _, ok := p.accept(lexer.Keyword, "procedure"); !ok {
			break
		}
		nameTok, err := p.expectName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Operator, ";"); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Operator, ";"); err != nil {
			return nil, err
		}
		block.Procs = append(block.Procs, &ast.Procedure{
			Pos:   ast.Pos{Line: nameTok.Line, Col: nameTok.Col},
			Ident: nameTok.Literal,
			Block: body,
		})
	}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	block.Stmt = stmt
	return block, nil
}

func (p *Parser) parseConstList() ([]*ast.Const, error) {
	var consts []*ast.Const
	for {
		nameTok, err := p.expectName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Operator, "="); err != nil {
			return nil, err
		}
		numTok, err := p.expect(lexer.Number, "")
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseInt(numTok.Literal, 10, 64)
		if err != nil {
			return nil, p.syntaxErrorf("invalid integer literal %q", numTok.Literal)
		}
		consts = append(consts, &ast.Const{
			Pos:   ast.Pos{Line: nameTok.Line, Col: nameTok.Col},
			Ident: nameTok.Literal,
			Value: val,
		})
		if _, ok := p.accept(lexer.Operator, ","); !ok {
			break
		}
	}
	return consts, nil
}

func (p *Parser) parseVarList() ([]*ast.Var, error) {
	var vars []*ast.Var
	for {
		nameTok, err := p.expectName()
		if err != nil {
			return nil, err
		}
		vars = append(vars, &ast.Var{Pos: ast.Pos{Line: nameTok.Line, Col: nameTok.Col}, Ident: nameTok.Literal})
		if _, ok := p.accept(lexer.Operator, ","); !ok {
			break
		}
	}
	return vars, nil
}

// parseStatement dispatches on the leading token: keyword begin/if/while/call,
// operator ?/!, else fall through to assignment. There is no empty
// statement form.
func (p *Parser) parseStatement() (ast.Statement, error) {
	if err := p.checkLexErr(); err != nil {
		return nil, err
	}
	switch {
	case p.match(lexer.Keyword, "begin"):
		return p.parseBegin()
	case p.match(lexer.Keyword, "if"):
		return p.parseIf()
	case p.match(lexer.Keyword, "while"):
		return p.parseWhile()
	case p.match(lexer.Keyword, "call"):
		return p.parseCall()
	case p.match(lexer.Operator, "?"):
		return p.parseRead()
	case p.match(lexer.Operator, "!"):
		return p.parseWrite()
	default:
		return p.parseAssignment()
	}
}

func (p *Parser) parseAssignment() (ast.Statement, error) {
	nameTok, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Operator, ":="); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Pos: ast.Pos{Line: nameTok.Line, Col: nameTok.Col}, Ident: nameTok.Literal, Expr: expr}, nil
}

func (p *Parser) parseCall() (ast.Statement, error) {
	kw, _ := p.accept(lexer.Keyword, "call")
	nameTok, err := p.expectName()
	if err != nil {
		return nil, err
	}
	return &ast.Call{Pos: ast.Pos{Line: kw.Line, Col: kw.Col}, Ident: nameTok.Literal}, nil
}

func (p *Parser) parseRead() (ast.Statement, error) {
	op, _ := p.accept(lexer.Operator, "?")
	nameTok, err := p.expectName()
	if err != nil {
		return nil, err
	}
	return &ast.Read{Pos: ast.Pos{Line: op.Line, Col: op.Col}, Ident: nameTok.Literal}, nil
}

func (p *Parser) parseWrite() (ast.Statement, error) {
	op, _ := p.accept(lexer.Operator, "!")
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Write{Pos: ast.Pos{Line: op.Line, Col: op.Col}, Expr: expr}, nil
}

// parseBegin parses `begin statement { ";" statement } "end"`. The first
// statement is mandatory; a trailing ";" before "end" is rejected because
// the statement that follows it (required by the loop) would fail to
// parse — "end" cannot start a statement.
func (p *Parser) parseBegin() (ast.Statement, error) {
	kw, _ := p.accept(lexer.Keyword, "begin")
	first, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	body := []ast.Statement{first}
	for {
		if _, ok := p.accept(lexer.Operator, ";"); !ok {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(lexer.Keyword, "end"); err != nil {
		return nil, err
	}
	return &ast.Begin{Pos: ast.Pos{Line: kw.Line, Col: kw.Col}, Body: body}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	kw, _ := p.accept(lexer.Keyword, "if")
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Keyword, "then"); err != nil {
		return nil, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.If{Pos: ast.Pos{Line: kw.Line, Col: kw.Col}, Cond: cond, Stmt: stmt}, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	kw, _ := p.accept(lexer.Keyword, "while")
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Keyword, "do"); err != nil {
		return nil, err
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Pos: ast.Pos{Line: kw.Line, Col: kw.Col}, Cond: cond, Stmt: stmt}, nil
}

var relOps = []string{"=", "#", "<=", ">=", "<", ">"}

// parseCondition parses `"odd" expression | expression relop expression`.
// Exactly one relational operator is accepted between the two expressions;
// any other operator kind is a syntax error.
func (p *Parser) parseCondition() (ast.Condition, error) {
	if kw, ok := p.accept(lexer.Keyword, "odd"); ok {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.OddCondition{Pos: ast.Pos{Line: kw.Line, Col: kw.Col}, Expr: expr}, nil
	}

	lhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := p.checkLexErr(); err != nil {
		return nil, err
	}
	var opTok lexer.Token
	matched := false
	for _, op := range relOps {
		if tok, ok := p.accept(lexer.Operator, op); ok {
			opTok = tok
			matched = true
			break
		}
	}
	if !matched {
		return nil, p.syntaxErrorf("expected relational operator, got %s", describe(p.cur))
	}

	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ComparisonCondition{
		Pos: ast.Pos{Line: opTok.Line, Col: opTok.Col},
		Op:  ast.RelOp(opTok.Literal),
		Lhs: lhs,
		Rhs: rhs,
	}, nil
}

// parseExpression parses `[ "+" | "-" ] term { ("+"|"-") term }`.
func (p *Parser) parseExpression() (*ast.Expression, error) {
	pos := p.pos()
	expr := &ast.Expression{Pos: pos}
	if _, ok := p.accept(lexer.Operator, "+"); ok {
		expr.Prefix = ast.OpAdd
	} else if _, ok := p.accept(lexer.Operator, "-"); ok {
		expr.Prefix = ast.OpSub
	}

	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	expr.Terms = append(expr.Terms, term)

	for {
		if err := p.checkLexErr(); err != nil {
			return nil, err
		}
		var op ast.AddOp
		if _, ok := p.accept(lexer.Operator, "+"); ok {
			op = ast.OpAdd
		} else if _, ok := p.accept(lexer.Operator, "-"); ok {
			op = ast.OpSub
		} else {
			break
		}
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr.Terms = append(expr.Terms, term)
		expr.Ops = append(expr.Ops, op)
	}
	return expr, nil
}

// parseTerm parses `factor { ("*"|"/") factor }`.
func (p *Parser) parseTerm() (*ast.Term, error) {
	pos := p.pos()
	term := &ast.Term{Pos: pos}
	factor, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	term.Factors = append(term.Factors, factor)

	for {
		if err := p.checkLexErr(); err != nil {
			return nil, err
		}
		var op ast.MulOp
		if _, ok := p.accept(lexer.Operator, "*"); ok {
			op = ast.OpMul
		} else if _, ok := p.accept(lexer.Operator, "/"); ok {
			op = ast.OpDiv
		} else {
			break
		}
		factor, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		term.Factors = append(term.Factors, factor)
		term.Ops = append(term.Ops, op)
	}
	return term, nil
}

// parseFactor parses `ident | number | "(" expression ")"`.
func (p *Parser) parseFactor() (ast.Factor, error) {
	if err := p.checkLexErr(); err != nil {
		return nil, err
	}
	pos := p.pos()
	if tok, ok := p.accept(lexer.Name, ""); ok {
		return &ast.IdentifierFactor{Pos: pos, Ident: tok.Literal}, nil
	}
	if tok, ok := p.accept(lexer.Number, ""); ok {
		val, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, p.syntaxErrorf("invalid integer literal %q", tok.Literal)
		}
		return &ast.IntegerFactor{Pos: pos, Value: val}, nil
	}
	if _, ok := p.accept(lexer.Operator, "("); ok {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Operator, ")"); err != nil {
			return nil, err
		}
		return &ast.ParenFactor{Pos: pos, Expr: expr}, nil
	}
	return nil, p.syntaxErrorf("expected identifier, number, or '(', got %s", describe(p.cur))
}
