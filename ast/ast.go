package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// The node set is closed: every statement and expression form the parser can
// build is defined here, and each pipeline stage switches exhaustively over
// it. Children are owned exclusively by their parent; nodes are never
// mutated after construction.

type Node interface {
	fmt.Stringer
}

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

// NumberLiteral holds an int when the source literal had no decimal point,
// a float64 otherwise.
type NumberLiteral struct {
	Value any
}

func (n NumberLiteral) String() string {
	return parenthesize("number", atom(fmt.Sprintf("%v", n.Value))).String()
}

func (n *NumberLiteral) exprNode() {}

var _ Expr = &NumberLiteral{}

type StringLiteral struct {
	Value string
}

func (s StringLiteral) String() string {
	return parenthesize("string", atom(strconv.Quote(s.Value))).String()
}

func (s *StringLiteral) exprNode() {}

var _ Expr = &StringLiteral{}

type BooleanLiteral struct {
	Value bool
}

func (b BooleanLiteral) String() string {
	return parenthesize("bool", atom(strconv.FormatBool(b.Value))).String()
}

func (b *BooleanLiteral) exprNode() {}

var _ Expr = &BooleanLiteral{}

type Identifier struct {
	Name string
}

func (i Identifier) String() string {
	return parenthesize("var", atom(i.Name)).String()
}

func (i *Identifier) exprNode() {}

var _ Expr = &Identifier{}

// Type is a declared-type annotation. Name is one of "number", "string",
// "boolean".
type Type struct {
	Name string
}

func (t Type) String() string {
	return parenthesize("type", atom(t.Name)).String()
}

var _ Node = &Type{}

// BinaryOp keeps the source operator spelling as its tag; the code
// generator maps tags to JavaScript operators.
type BinaryOp struct {
	Left  Expr
	Op    string
	Right Expr
}

func (b BinaryOp) String() string {
	return parenthesize("binary", atom(strconv.Quote(b.Op)), b.Left, b.Right).String()
}

func (b *BinaryOp) exprNode() {}

var _ Expr = &BinaryOp{}

type UnaryOp struct {
	Op      string
	Operand Expr
}

func (u UnaryOp) String() string {
	return parenthesize("unary", atom(strconv.Quote(u.Op)), u.Operand).String()
}

func (u *UnaryOp) exprNode() {}

var _ Expr = &UnaryOp{}

type FunctionCall struct {
	Name string
	Args []Expr
}

func (f FunctionCall) String() string {
	return parenthesize("call", atom(f.Name), concat(f.Args)).String()
}

func (f *FunctionCall) exprNode() {}

var _ Expr = &FunctionCall{}

// InputExpression reads one value from the host environment's interactive
// prompt.
type InputExpression struct{}

func (i InputExpression) String() string {
	return "(input)"
}

func (i *InputExpression) exprNode() {}

var _ Expr = &InputExpression{}

type Assignment struct {
	Name string
	Expr Expr
}

func (a Assignment) String() string {
	return parenthesize("assign", atom(a.Name), a.Expr).String()
}

func (a *Assignment) stmtNode() {}

var _ Stmt = &Assignment{}

// VariableDeclaration declares Name with a type annotation. Init may be
// nil; the annotation is carried through to generated output as a comment
// and never enforced.
type VariableDeclaration struct {
	Name string
	Type *Type
	Init Expr
}

func (v VariableDeclaration) String() string {
	if v.Init == nil {
		return parenthesize("declare", atom(v.Name), v.Type).String()
	}

	return parenthesize("declare", atom(v.Name), v.Type, v.Init).String()
}

func (v *VariableDeclaration) stmtNode() {}

var _ Stmt = &VariableDeclaration{}

type PrintStatement struct {
	Expr Expr
}

func (p PrintStatement) String() string {
	return parenthesize("print", p.Expr).String()
}

func (p *PrintStatement) stmtNode() {}

var _ Stmt = &PrintStatement{}

// ReturnStatement with a nil Expr is a bare return.
type ReturnStatement struct {
	Expr Expr
}

func (r ReturnStatement) String() string {
	if r.Expr == nil {
		return "(return)"
	}

	return parenthesize("return", r.Expr).String()
}

func (r *ReturnStatement) stmtNode() {}

var _ Stmt = &ReturnStatement{}

type ThrowStatement struct {
	Expr Expr
}

func (t ThrowStatement) String() string {
	return parenthesize("throw", t.Expr).String()
}

func (t *ThrowStatement) stmtNode() {}

var _ Stmt = &ThrowStatement{}

type ExpressionStatement struct {
	Expr Expr
}

func (e ExpressionStatement) String() string {
	return parenthesize("expr", e.Expr).String()
}

func (e *ExpressionStatement) stmtNode() {}

var _ Stmt = &ExpressionStatement{}

// Block holds statements in source order; the order is preserved through
// code generation.
type Block struct {
	Stmts []Stmt
}

func (b Block) String() string {
	return parenthesize("block", concat(b.Stmts)).String()
}

func (b *Block) stmtNode() {}

var _ Stmt = &Block{}

// IfStatement's Else is never produced by the current grammar but is kept
// in the node so the emitter stays total over the model.
type IfStatement struct {
	Cond Expr
	Then *Block
	Else *Block
}

func (i IfStatement) String() string {
	if i.Else == nil {
		return parenthesize("if", i.Cond, i.Then).String()
	}

	return parenthesize("if", i.Cond, i.Then, i.Else).String()
}

func (i *IfStatement) stmtNode() {}

var _ Stmt = &IfStatement{}

type WhileLoop struct {
	Cond Expr
	Body *Block
}

func (w WhileLoop) String() string {
	return parenthesize("while", w.Cond, w.Body).String()
}

func (w *WhileLoop) stmtNode() {}

var _ Stmt = &WhileLoop{}

type TryStatement struct {
	Try      *Block
	CatchVar string
	Catch    *Block
}

func (t TryStatement) String() string {
	return parenthesize("try", t.Try, atom(t.CatchVar), t.Catch).String()
}

func (t *TryStatement) stmtNode() {}

var _ Stmt = &TryStatement{}

type Parameter struct {
	Name string
	Type *Type
}

func (p Parameter) String() string {
	return parenthesize("param", atom(p.Name), p.Type).String()
}

var _ Node = &Parameter{}

type FunctionDeclaration struct {
	Name       string
	Params     []*Parameter
	ReturnType *Type
	Body       *Block
}

func (f FunctionDeclaration) String() string {
	return parenthesize("func", atom(f.Name), parenthesize("", concat(f.Params)), f.ReturnType, f.Body).String()
}

func (f *FunctionDeclaration) stmtNode() {}

var _ Stmt = &FunctionDeclaration{}

// Program is always the tree root.
type Program struct {
	Decls []Stmt
}

func (p Program) String() string {
	return parenthesize("program", concat(p.Decls)).String()
}

var _ Node = &Program{}

type atom string

func (a atom) String() string {
	return string(a)
}

// parenthesize takes a head string and a variadic number of nodes that
// implement the fmt.Stringer interface. It returns a fmt.Stringer that
// represents a string where each node is parenthesized and separated by a
// space. If the head string is not empty, it is added at the beginning.
func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")
	return &b
}

// concat takes a slice of nodes that implement the fmt.Stringer interface.
// It returns a fmt.Stringer that represents a string where each node is
// separated by a space.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for i, elem := range elems {
		// ignore empty string
		// e.g. concat({}) == ""
		str := elem.String()
		if str == "" {
			continue
		}
		if i != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}
	return &b
}
