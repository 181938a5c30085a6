package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emotilang/emoti/ast"
)

// header opens every generated file.
const header = "// Transpiled from EmotiLang"

const indentUnit = "  "

// binaryOps maps source operator tags to JavaScript operators. Together
// with unaryOps it is a bijection over the defined tags, and it is
// read-only: concurrent generators share it safely.
var binaryOps = map[string]string{
	":+)": "+",
	":-(": "-",
	"*_*": "*",
	":/":  "/",
	":%":  "%",
	"=)":  "===",
	"!(":  "!==",
	">:)": ">",
	"<:(": "<",
	"&)":  "&&",
	"|)":  "||",
}

var unaryOps = map[string]string{
	"!)": "!",
}

// UnsupportedNodeError reports an AST variant with no emission rule. It is
// unreachable for trees built by the parser; hitting it means an internal
// invariant was violated upstream.
type UnsupportedNodeError struct {
	Node ast.Node
}

func (e UnsupportedNodeError) Error() string {
	return fmt.Sprintf("no emission rule for %T", e.Node)
}

type UnknownOperatorError struct {
	Op string
}

func (e UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown operator %q", e.Op)
}

// Generate renders a Program as JavaScript source text. Generation walks
// the tree once; the indentation level is threaded through the walk as an
// explicit argument, so no state survives between calls.
func Generate(program *ast.Program) (string, error) {
	lines := []string{header, ""}

	for _, decl := range program.Decls {
		text, err := stmt(decl, 0)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) != "" {
			lines = append(lines, text)
		}
	}

	return strings.Join(lines, "\n"), nil
}

func indentOf(level int) string {
	return strings.Repeat(indentUnit, level)
}

func stmt(s ast.Stmt, indent int) (string, error) {
	switch s := s.(type) {
	case *ast.VariableDeclaration:
		if s.Init == nil {
			return fmt.Sprintf("%slet %s; // %s", indentOf(indent), s.Name, s.Type.Name), nil
		}
		value, err := expr(s.Init)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%slet %s = %s; // %s", indentOf(indent), s.Name, value, s.Type.Name), nil
	case *ast.Assignment:
		value, err := expr(s.Expr)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s%s = %s;", indentOf(indent), s.Name, value), nil
	case *ast.PrintStatement:
		value, err := expr(s.Expr)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%sconsole.log(%s);", indentOf(indent), value), nil
	case *ast.ReturnStatement:
		if s.Expr == nil {
			return indentOf(indent) + "return;", nil
		}
		value, err := expr(s.Expr)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%sreturn %s;", indentOf(indent), value), nil
	case *ast.ThrowStatement:
		value, err := expr(s.Expr)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%sthrow new Error(%s);", indentOf(indent), value), nil
	case *ast.ExpressionStatement:
		value, err := expr(s.Expr)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s%s;", indentOf(indent), value), nil
	case *ast.Block:
		lines := []string{indentOf(indent) + "{"}
		body, err := blockBody(s.Stmts, indent)
		if err != nil {
			return "", err
		}
		lines = append(lines, body...)
		lines = append(lines, indentOf(indent)+"}")

		return strings.Join(lines, "\n"), nil
	case *ast.IfStatement:
		return ifStatement(s, indent)
	case *ast.WhileLoop:
		cond, err := expr(s.Cond)
		if err != nil {
			return "", err
		}
		lines := []string{fmt.Sprintf("%swhile (%s) {", indentOf(indent), cond)}
		body, err := blockBody(s.Body.Stmts, indent)
		if err != nil {
			return "", err
		}
		lines = append(lines, body...)
		lines = append(lines, indentOf(indent)+"}")

		return strings.Join(lines, "\n"), nil
	case *ast.TryStatement:
		lines := []string{indentOf(indent) + "try {"}
		tryBody, err := blockBody(s.Try.Stmts, indent)
		if err != nil {
			return "", err
		}
		lines = append(lines, tryBody...)
		lines = append(lines, fmt.Sprintf("%s} catch (%s) {", indentOf(indent), s.CatchVar))
		catchBody, err := blockBody(s.Catch.Stmts, indent)
		if err != nil {
			return "", err
		}
		lines = append(lines, catchBody...)
		lines = append(lines, indentOf(indent)+"}")

		return strings.Join(lines, "\n"), nil
	case *ast.FunctionDeclaration:
		return functionDeclaration(s, indent)
	default:
		return "", UnsupportedNodeError{Node: s}
	}
}

func ifStatement(s *ast.IfStatement, indent int) (string, error) {
	cond, err := expr(s.Cond)
	if err != nil {
		return "", err
	}
	lines := []string{fmt.Sprintf("%sif (%s) {", indentOf(indent), cond)}
	thenBody, err := blockBody(s.Then.Stmts, indent)
	if err != nil {
		return "", err
	}
	lines = append(lines, thenBody...)

	if s.Else != nil {
		lines = append(lines, indentOf(indent)+"} else {")
		elseBody, err := blockBody(s.Else.Stmts, indent)
		if err != nil {
			return "", err
		}
		lines = append(lines, elseBody...)
	}

	lines = append(lines, indentOf(indent)+"}")

	return strings.Join(lines, "\n"), nil
}

func functionDeclaration(s *ast.FunctionDeclaration, indent int) (string, error) {
	params := make([]string, len(s.Params))
	for i, param := range s.Params {
		params[i] = fmt.Sprintf("%s /* %s */", param.Name, param.Type.Name)
	}

	lines := []string{fmt.Sprintf("%sfunction %s(%s) /* -> %s */ {",
		indentOf(indent), s.Name, strings.Join(params, ", "), s.ReturnType.Name)}
	body, err := blockBody(s.Body.Stmts, indent)
	if err != nil {
		return "", err
	}
	lines = append(lines, body...)
	lines = append(lines, indentOf(indent)+"}")

	return strings.Join(lines, "\n"), nil
}

// blockBody emits statements one level deeper than the surrounding
// construct. Statements that render to nothing are skipped so the output
// has no blank lines.
func blockBody(stmts []ast.Stmt, indent int) ([]string, error) {
	var lines []string
	for _, s := range stmts {
		text, err := stmt(s, indent+1)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) != "" {
			lines = append(lines, text)
		}
	}

	return lines, nil
}

func expr(e ast.Expr) (string, error) {
	switch e := e.(type) {
	case *ast.NumberLiteral:
		return numberLiteral(e)
	case *ast.StringLiteral:
		return stringLiteral(e.Value), nil
	case *ast.BooleanLiteral:
		return strconv.FormatBool(e.Value), nil
	case *ast.Identifier:
		return e.Name, nil
	case *ast.BinaryOp:
		left, err := expr(e.Left)
		if err != nil {
			return "", err
		}
		right, err := expr(e.Right)
		if err != nil {
			return "", err
		}
		op, ok := binaryOps[e.Op]
		if !ok {
			return "", UnknownOperatorError{Op: e.Op}
		}

		return fmt.Sprintf("(%s %s %s)", left, op, right), nil
	case *ast.UnaryOp:
		operand, err := expr(e.Operand)
		if err != nil {
			return "", err
		}
		op, ok := unaryOps[e.Op]
		if !ok {
			return "", UnknownOperatorError{Op: e.Op}
		}

		return fmt.Sprintf("(%s%s)", op, operand), nil
	case *ast.FunctionCall:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			text, err := expr(arg)
			if err != nil {
				return "", err
			}
			args[i] = text
		}

		return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", ")), nil
	case *ast.InputExpression:
		return `prompt("Enter input:")`, nil
	default:
		return "", UnsupportedNodeError{Node: e}
	}
}

func numberLiteral(n *ast.NumberLiteral) (string, error) {
	switch v := n.Value.(type) {
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("invalid number literal %v (%T)", n.Value, n.Value)
	}
}

// stringLiteral escapes quote, newline and tab; the source syntax admits
// nothing else that needs escaping.
func stringLiteral(value string) string {
	escaped := strings.NewReplacer(`"`, `\"`, "\n", `\n`, "\t", `\t`).Replace(value)

	return `"` + escaped + `"`
}
