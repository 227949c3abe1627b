// Package parser implements a recursive-descent parser for Noumenon
// source, turning a lexer.Lexer's token stream into a []ast.Stmt program.
package parser

import (
	"fmt"
	"strconv"

	"github.com/twied/noumenon/ast"
	"github.com/twied/noumenon/lexer"
)

// Parser holds a two-token lookahead window over the lexer, following the
// teacher's advance()/CurrToken/NextToken idiom. Unlike the teacher, which
// collects errors to report many at once, Noumenon fails fast on the first
// unexpected token, per the language's single-error diagnostic format.
type Parser struct {
	lex *lexer.Lexer

	curr lexer.Token
	next lexer.Token
}

// New creates a parser over src and primes its two-token lookahead.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.curr = p.next
	p.next = p.lex.NextToken()
}

// parseError formats the language's fixed diagnostic: "<row>:<col>:
// unexpected token \"X\" instead of \"Y\"".
func parseError(tok lexer.Token, want string) error {
	return fmt.Errorf("%d:%d: unexpected token %q instead of %q", tok.Row, tok.Col, tok.Type.String(), want)
}

func (p *Parser) expect(t lexer.TokenType) error {
	if p.curr.Type != t {
		return parseError(p.curr, t.String())
	}
	return nil
}

func (p *Parser) expectAdvance(t lexer.TokenType) error {
	if err := p.expect(t); err != nil {
		return err
	}
	p.advance()
	return nil
}

// Parse consumes the entire token stream and returns the resulting program,
// or the first error encountered.
func Parse(src string) ([]ast.Stmt, error) {
	p := New(src)
	var stmts []ast.Stmt
	for p.curr.Type != lexer.EOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// --- statements ---

func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if err := p.expectAdvance(lexer.LBRACE); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for p.curr.Type != lexer.RBRACE {
		if p.curr.Type == lexer.EOF {
			return nil, parseError(p.curr, lexer.RBRACE.String())
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.advance() // '}'
	return stmts, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.curr.Type {
	case lexer.SEMICOLON:
		p.advance()
		return &ast.EmptyStmt{}, nil
	case lexer.VAR:
		return p.parseVarStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IDENTIFIER:
		return p.parseVariableStatement()
	default:
		return nil, parseError(p.curr, "statement")
	}
}

func (p *Parser) parseVarStmt() (ast.Stmt, error) {
	p.advance() // 'var'
	if err := p.expect(lexer.IDENTIFIER); err != nil {
		return nil, err
	}
	name := string(p.curr.Literal)
	p.advance()
	if err := p.expectAdvance(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.VarStmt{Name: name, Init: value}, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	p.advance() // 'if'
	if err := p.expectAdvance(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then}
	if p.curr.Type == lexer.ELSE {
		p.advance()
		if p.curr.Type == lexer.IF {
			elseStmt, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			stmt.Else = []ast.Stmt{elseStmt}
		} else {
			elseBlock, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBlock
		}
	}
	return stmt, nil
}

func (p *Parser) parseForStmt() (ast.Stmt, error) {
	p.advance() // 'for'
	if err := p.expectAdvance(lexer.LPAREN); err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.VAR); err != nil {
		return nil, err
	}
	if err := p.expect(lexer.IDENTIFIER); err != nil {
		return nil, err
	}
	first := string(p.curr.Literal)
	p.advance()

	var keyName, valueName string
	if p.curr.Type == lexer.COMMA {
		p.advance()
		if err := p.expect(lexer.IDENTIFIER); err != nil {
			return nil, err
		}
		keyName = first
		valueName = string(p.curr.Literal)
		p.advance()
	} else {
		valueName = first
	}

	if err := p.expectAdvance(lexer.COLON); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStmt{KeyName: keyName, ValueName: valueName, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, error) {
	p.advance() // 'while'
	if err := p.expectAdvance(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body}, nil
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	p.advance() // 'return'
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectAdvance(lexer.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Value: value}, nil
}

// parseVariableStatement disambiguates, after parsing a variable
// (IDENT selectors*), between an assignment "v = expr;" and a call
// statement "v(args?);" per the statement grammar.
func (p *Parser) parseVariableStatement() (ast.Stmt, error) {
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	switch p.curr.Type {
	case lexer.ASSIGN:
		p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectAdvance(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Target: v, Value: value}, nil
	case lexer.LPAREN:
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if err := p.expectAdvance(lexer.SEMICOLON); err != nil {
			return nil, err
		}
		return &ast.CallStmt{Call: &ast.CallExpr{Callee: v, Args: args}}, nil
	default:
		return nil, parseError(p.curr, "\"=\" or \"(\"")
	}
}

// --- expressions ---

func (p *Parser) parseExpr() (ast.Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	op, ok := comparisonOp(p.curr.Type)
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseOperand() (ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	op, ok := operandOp(p.curr.Type)
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	op, ok := termOp(p.curr.Type)
	if !ok {
		return left, nil
	}
	p.advance()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Op: op, Left: left, Right: right}, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.curr.Type {
	case lexer.MINUS:
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.NEG, Operand: operand}, nil
	case lexer.NOT:
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.NOT, Operand: operand}, nil
	default:
		return p.parseFactor()
	}
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	switch p.curr.Type {
	case lexer.INTEGER:
		n, err := strconv.ParseInt(string(p.curr.Literal), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%d:%d: %s", p.curr.Row, p.curr.Col, err)
		}
		p.advance()
		return &ast.IntExpr{Value: n}, nil
	case lexer.FLOAT:
		f, err := strconv.ParseFloat(string(p.curr.Literal), 64)
		if err != nil {
			return nil, fmt.Errorf("%d:%d: %s", p.curr.Row, p.curr.Col, err)
		}
		p.advance()
		return &ast.FloatExpr{Value: f}, nil
	case lexer.STRING:
		s := append([]rune(nil), p.curr.Literal...)
		p.advance()
		return &ast.StringExpr{Value: s}, nil
	case lexer.TRUE:
		p.advance()
		return &ast.BoolExpr{Value: true}, nil
	case lexer.FALSE:
		p.advance()
		return &ast.BoolExpr{Value: false}, nil
	case lexer.NULL:
		p.advance()
		return &ast.NullExpr{}, nil
	case lexer.LBRACKET:
		return p.parseArray()
	case lexer.LBRACE:
		return p.parseObject()
	case lexer.FUNCTION:
		return p.parseFunction()
	case lexer.LPAREN:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectAdvance(lexer.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.IDENTIFIER:
		v, err := p.parseVariable()
		if err != nil {
			return nil, err
		}
		if p.curr.Type == lexer.LPAREN {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &ast.CallExpr{Callee: v, Args: args}, nil
		}
		return v, nil
	default:
		return nil, parseError(p.curr, "expression")
	}
}

func (p *Parser) parseVariable() (*ast.VariableExpr, error) {
	if err := p.expect(lexer.IDENTIFIER); err != nil {
		return nil, err
	}
	name := string(p.curr.Literal)
	p.advance()
	var selectors []ast.Expr
	for p.curr.Type == lexer.LBRACKET {
		p.advance()
		sel, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectAdvance(lexer.RBRACKET); err != nil {
			return nil, err
		}
		selectors = append(selectors, sel)
	}
	return &ast.VariableExpr{Name: name, Selectors: selectors}, nil
}

// parseArgs parses "(" (expr ("," expr)*)? ")", leaving curr past the
// closing paren.
func (p *Parser) parseArgs() ([]ast.Expr, error) {
	if err := p.expectAdvance(lexer.LPAREN); err != nil {
		return nil, err
	}
	var args []ast.Expr
	if p.curr.Type == lexer.RPAREN {
		p.advance()
		return args, nil
	}
	for {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.curr.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectAdvance(lexer.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseArray() (ast.Expr, error) {
	p.advance() // '['
	var elems []ast.Expr
	if p.curr.Type == lexer.RBRACKET {
		p.advance()
		return &ast.ArrayExpr{Elements: elems}, nil
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.curr.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectAdvance(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.ArrayExpr{Elements: elems}, nil
}

func (p *Parser) parseObject() (ast.Expr, error) {
	p.advance() // '{'
	var keys []string
	var values []ast.Expr
	if p.curr.Type == lexer.RBRACE {
		p.advance()
		return &ast.ObjectExpr{Keys: keys, Values: values}, nil
	}
	for {
		if err := p.expect(lexer.IDENTIFIER); err != nil {
			return nil, err
		}
		keys = append(keys, string(p.curr.Literal))
		p.advance()
		if err := p.expectAdvance(lexer.COLON); err != nil {
			return nil, err
		}
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if p.curr.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectAdvance(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.ObjectExpr{Keys: keys, Values: values}, nil
}

func (p *Parser) parseFunction() (ast.Expr, error) {
	p.advance() // 'function'
	if err := p.expectAdvance(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []string
	if p.curr.Type != lexer.RPAREN {
		for {
			if err := p.expect(lexer.IDENTIFIER); err != nil {
				return nil, err
			}
			params = append(params, string(p.curr.Literal))
			p.advance()
			if p.curr.Type == lexer.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	if err := p.expectAdvance(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionExpr{Params: params, Body: body}, nil
}

// --- precedence tables ---

func comparisonOp(t lexer.TokenType) (ast.BinaryOp, bool) {
	switch t {
	case lexer.EQ:
		return ast.EQU, true
	case lexer.NEQ:
		return ast.NEQ, true
	case lexer.LT:
		return ast.LES, true
	case lexer.LE:
		return ast.LEQ, true
	case lexer.GT:
		return ast.GRT, true
	case lexer.GE:
		return ast.GEQ, true
	}
	return 0, false
}

func operandOp(t lexer.TokenType) (ast.BinaryOp, bool) {
	switch t {
	case lexer.PLUS:
		return ast.ADD, true
	case lexer.MINUS:
		return ast.SUB, true
	case lexer.OR:
		return ast.OR, true
	}
	return 0, false
}

func termOp(t lexer.TokenType) (ast.BinaryOp, bool) {
	switch t {
	case lexer.STAR:
		return ast.MUL, true
	case lexer.SLASH:
		return ast.DIV, true
	case lexer.PERCENT:
		return ast.MOD, true
	case lexer.AND:
		return ast.AND, true
	}
	return 0, false
}
