package parser

import (
	"github.com/emotilang/emoti/ast"
	"github.com/emotilang/emoti/token"
	"github.com/emotilang/emoti/utils"
)

// Parser consumes one token sequence and builds one AST. A token mismatch
// is fatal: no partial tree is returned and the parser is not resumable. A
// fresh attempt needs a fresh Parser.
type Parser struct {
	tokens  []token.Token
	current int
	err     error

	// declared maps variable names to their declared type names. It is
	// accumulated during parsing and never consulted by any stage; the
	// language performs no type checking.
	declared map[string]string
}

func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, current: 0, err: nil, declared: map[string]string{}}
}

// Parse builds a Program from the whole token sequence. An empty sequence
// yields a Program with no declarations.
func (p *Parser) Parse() (*ast.Program, error) {
	p.err = nil
	decls := []ast.Stmt{}
	for !p.IsAtEnd() && p.err == nil {
		decls = append(decls, p.statement())
	}

	if p.err != nil {
		return nil, p.err
	}

	return &ast.Program{Decls: decls}, nil
}

// Declared reports the name-to-type table accumulated so far.
func (p *Parser) Declared() map[string]string {
	return p.declared
}

// statement = varDecl | assignment | print | funcDecl | return | if | while | try | throw ;
func (p *Parser) statement() ast.Stmt {
	//exhaustive:ignore
	switch p.peek().Kind {
	case token.DECLARE:
		return p.varDecl()
	case token.IDENT:
		return p.assignment()
	case token.TONGUEOUT:
		return p.printStatement()
	case token.ROBOT:
		return p.funcDecl()
	case token.WAVE:
		return p.returnStatement()
	case token.IF:
		return p.ifStatement()
	case token.DIZZY:
		return p.whileLoop()
	case token.TRY:
		return p.tryStatement()
	case token.THROW:
		return p.throwStatement()
	default:
		p.fail(unexpectedToken(p.peek(), "statement"))

		return nil
	}
}

// varDecl = ":<" IDENT ":>" type "<3" expr ";)" ;
func (p *Parser) varDecl() ast.Stmt {
	p.consume(token.DECLARE)
	name := p.consume(token.IDENT)
	p.consume(token.TYPEARROW)
	typ := p.typ()
	p.consume(token.ASSIGN)
	expr := p.expr()
	p.consume(token.WINKSEP)

	if p.err != nil {
		return nil
	}

	p.declared[name.Lexeme] = typ.Name

	return &ast.VariableDeclaration{Name: name.Lexeme, Type: typ, Init: expr}
}

// assignment = IDENT "<3" expr ";)" ;
func (p *Parser) assignment() ast.Stmt {
	name := p.consume(token.IDENT)
	p.consume(token.ASSIGN)
	expr := p.expr()
	p.consume(token.WINKSEP)

	if p.err != nil {
		return nil
	}

	return &ast.Assignment{Name: name.Lexeme, Expr: expr}
}

// print = ":P" expr ";)" ;
func (p *Parser) printStatement() ast.Stmt {
	p.consume(token.TONGUEOUT)
	expr := p.expr()
	p.consume(token.WINKSEP)

	if p.err != nil {
		return nil
	}

	return &ast.PrintStatement{Expr: expr}
}

// funcDecl = "🤖" IDENT ":(" params ":)" ":>" type block ;
// params = (param (":,D" param)*)? ;
func (p *Parser) funcDecl() ast.Stmt {
	p.consume(token.ROBOT)
	name := p.consume(token.IDENT)
	p.consume(token.SADOPEN)
	params := []*ast.Parameter{}
	if !p.match(token.HAPPYCLOSE) {
		params = append(params, p.parameter())
		for p.match(token.FIELDSEP) && p.err == nil {
			p.advance()
			params = append(params, p.parameter())
		}
	}
	p.consume(token.HAPPYCLOSE)
	p.consume(token.TYPEARROW)
	returnType := p.typ()
	body := p.block()

	if p.err != nil {
		return nil
	}

	return &ast.FunctionDeclaration{Name: name.Lexeme, Params: params, ReturnType: returnType, Body: body}
}

// param = IDENT ":>" type ;
func (p *Parser) parameter() *ast.Parameter {
	name := p.consume(token.IDENT)
	p.consume(token.TYPEARROW)
	typ := p.typ()

	return &ast.Parameter{Name: name.Lexeme, Type: typ}
}

// return = "/o/" expr? ";)" ;
func (p *Parser) returnStatement() ast.Stmt {
	p.consume(token.WAVE)
	if p.match(token.WINKSEP) {
		p.advance()

		return &ast.ReturnStatement{}
	}
	expr := p.expr()
	p.consume(token.WINKSEP)

	if p.err != nil {
		return nil
	}

	return &ast.ReturnStatement{Expr: expr}
}

// if = "(╭ರ_•́)" expr block ;
// The grammar has no else branch; the node keeps one for the emitter.
func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.IF)
	cond := p.expr()
	then := p.block()

	if p.err != nil {
		return nil
	}

	return &ast.IfStatement{Cond: cond, Then: then}
}

// while = "(⸝⸝๑﹏๑⸝⸝)" expr block ;
func (p *Parser) whileLoop() ast.Stmt {
	p.consume(token.DIZZY)
	cond := p.expr()
	body := p.block()

	if p.err != nil {
		return nil
	}

	return &ast.WhileLoop{Cond: cond, Body: body}
}

// try = "🕷️" block "🕸️" IDENT block ;
func (p *Parser) tryStatement() ast.Stmt {
	p.consume(token.TRY)
	tryBlock := p.block()
	p.consume(token.CATCH)
	catchVar := p.consume(token.IDENT)
	catchBlock := p.block()

	if p.err != nil {
		return nil
	}

	return &ast.TryStatement{Try: tryBlock, CatchVar: catchVar.Lexeme, Catch: catchBlock}
}

// throw = "💥" expr ";)" ;
func (p *Parser) throwStatement() ast.Stmt {
	p.consume(token.THROW)
	expr := p.expr()
	p.consume(token.WINKSEP)

	if p.err != nil {
		return nil
	}

	return &ast.ThrowStatement{Expr: expr}
}

// block = ":{" statement* ":}" ;
func (p *Parser) block() *ast.Block {
	p.consume(token.CURLYOPEN)
	stmts := []ast.Stmt{}
	for !p.match(token.CURLYCLOSE) && !p.IsAtEnd() && p.err == nil {
		stmts = append(stmts, p.statement())
	}
	p.consume(token.CURLYCLOSE)

	return &ast.Block{Stmts: stmts}
}

// typ = ":0" | ":L" | "X_X" ;
func (p *Parser) typ() *ast.Type {
	//exhaustive:ignore
	switch tok := p.advance(); tok.Kind {
	case token.SURPRISED:
		return &ast.Type{Name: "number"}
	case token.LFACE:
		return &ast.Type{Name: "string"}
	case token.DEAD:
		return &ast.Type{Name: "boolean"}
	default:
		p.fail(unexpectedToken(tok, "`:0`", "`:L`", "`X_X`"))

		return nil
	}
}

// Binary operators, lowest to highest precedence:
// or < and < not < equality < relational < additive < multiplicative.
// All binary levels are left associative; not is a right-associative prefix.

// expr = orExpr ;
func (p *Parser) expr() ast.Expr {
	if p.IsAtEnd() {
		p.fail(unexpectedToken(p.peek(), "expression"))

		return nil
	}

	return p.orExpr()
}

// orExpr = andExpr ("|)" andExpr)* ;
func (p *Parser) orExpr() ast.Expr {
	expr := p.andExpr()
	for p.match(token.OR) && p.err == nil {
		op := p.advance()
		right := p.andExpr()
		expr = &ast.BinaryOp{Left: expr, Op: op.Lexeme, Right: right}
	}

	return expr
}

// andExpr = notExpr ("&)" notExpr)* ;
func (p *Parser) andExpr() ast.Expr {
	expr := p.notExpr()
	for p.match(token.AND) && p.err == nil {
		op := p.advance()
		right := p.notExpr()
		expr = &ast.BinaryOp{Left: expr, Op: op.Lexeme, Right: right}
	}

	return expr
}

// notExpr = "!)" notExpr | equality ;
func (p *Parser) notExpr() ast.Expr {
	if p.match(token.NOT) {
		op := p.advance()
		operand := p.notExpr()

		return &ast.UnaryOp{Op: op.Lexeme, Operand: operand}
	}

	return p.equality()
}

// equality = relational (("=)" | "!(") relational)* ;
func (p *Parser) equality() ast.Expr {
	expr := p.relational()
	for (p.match(token.EQUAL) || p.match(token.NOTEQUAL)) && p.err == nil {
		op := p.advance()
		right := p.relational()
		expr = &ast.BinaryOp{Left: expr, Op: op.Lexeme, Right: right}
	}

	return expr
}

// relational = additive ((">:)" | "<:(") additive)* ;
func (p *Parser) relational() ast.Expr {
	expr := p.additive()
	for (p.match(token.GREATER) || p.match(token.LESS)) && p.err == nil {
		op := p.advance()
		right := p.additive()
		expr = &ast.BinaryOp{Left: expr, Op: op.Lexeme, Right: right}
	}

	return expr
}

// additive = multiplicative ((":+)" | ":-(") multiplicative)* ;
func (p *Parser) additive() ast.Expr {
	expr := p.multiplicative()
	for (p.match(token.PLUS) || p.match(token.MINUS)) && p.err == nil {
		op := p.advance()
		right := p.multiplicative()
		expr = &ast.BinaryOp{Left: expr, Op: op.Lexeme, Right: right}
	}

	return expr
}

// multiplicative = primary (("*_*" | ":/" | ":%") primary)* ;
func (p *Parser) multiplicative() ast.Expr {
	expr := p.primary()
	for (p.match(token.STAR) || p.match(token.SLASH) || p.match(token.PERCENT)) && p.err == nil {
		op := p.advance()
		right := p.primary()
		expr = &ast.BinaryOp{Left: expr, Op: op.Lexeme, Right: right}
	}

	return expr
}

// primary = ":0" NUMBER | ":L" STRING | ":D" | ":'(" | "O_O" | IDENT | IDENT ":(" args ":)" ;
// args = (expr (":,D" expr)*)? ;
func (p *Parser) primary() ast.Expr {
	//exhaustive:ignore
	switch tok := p.advance(); tok.Kind {
	case token.SURPRISED:
		num := p.consume(token.NUMBER)

		return &ast.NumberLiteral{Value: num.Literal}
	case token.LFACE:
		str := p.consume(token.STRING)
		value, _ := str.Literal.(string)

		return &ast.StringLiteral{Value: value}
	case token.LAUGHING:
		return &ast.BooleanLiteral{Value: true}
	case token.CRYING:
		return &ast.BooleanLiteral{Value: false}
	case token.INPUT:
		return &ast.InputExpression{}
	case token.IDENT:
		if p.match(token.SADOPEN) {
			return p.callTail(tok)
		}

		return &ast.Identifier{Name: tok.Lexeme}
	default:
		p.fail(unexpectedToken(tok, "expression"))

		return nil
	}
}

// callTail = ":(" (expr (":,D" expr)*)? ":)" ;
func (p *Parser) callTail(name token.Token) ast.Expr {
	p.consume(token.SADOPEN)
	args := []ast.Expr{}
	if !p.match(token.HAPPYCLOSE) {
		args = append(args, p.expr())
		for p.match(token.FIELDSEP) && p.err == nil {
			p.advance()
			args = append(args, p.expr())
		}
	}
	p.consume(token.HAPPYCLOSE)

	return &ast.FunctionCall{Name: name.Lexeme, Args: args}
}

// fail records the first error; later errors are dropped because the parse
// is already dead.
func (p *Parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	if !p.IsAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p Parser) IsAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p Parser) match(kind token.Kind) bool {
	if p.IsAtEnd() {
		return false
	}

	return p.peek().Kind == kind
}

func (p *Parser) consume(kind token.Kind) token.Token {
	if p.match(kind) {
		return p.advance()
	}

	p.fail(unexpectedToken(p.peek(), kind.String()))

	return p.peek()
}

type UnexpectedTokenError struct {
	Expected []string
}

func (e UnexpectedTokenError) Error() string {
	var msg string
	if len(e.Expected) >= 1 {
		msg = e.Expected[0]
	}

	for _, ex := range e.Expected[1:] {
		msg = msg + ", " + ex
	}

	return "unexpected token: expected " + msg
}

func unexpectedToken(t token.Token, expected ...string) error {
	return utils.PosError{Where: t, Err: UnexpectedTokenError{Expected: expected}}
}
