// Package compiler runs the whole pipeline: source text in, JavaScript
// text out. It is the single entry point consumed by the CLI and any
// serving wrapper.
package compiler

import (
	"fmt"

	"github.com/emotilang/emoti/codegen"
	"github.com/emotilang/emoti/lexer"
	"github.com/emotilang/emoti/parser"
)

// Stage names the pipeline stage a failure came from.
type Stage string

const (
	StageLex    Stage = "lexical"
	StageSyntax Stage = "syntax"
	StageGen    Stage = "codegen"
)

// Error is a staged compilation failure. Line information, where
// applicable, is carried by the wrapped error.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Result is a compilation outcome. Diagnostics holds recovered lexical
// errors; they do not stop the pipeline and may accompany generated code.
type Result struct {
	Code        string
	Diagnostics []error
}

// Compile turns one compilation unit into JavaScript. Each call constructs
// its own lexer, parser and generator, so concurrent calls share nothing
// but the fixed operator tables.
//
// Lexical errors are collected into Result.Diagnostics and parsing still
// runs on the tokens produced. Syntax and generation errors abort the
// compilation; the Result returned alongside a non-nil error still carries
// the collected diagnostics for debug output.
func Compile(source string) (Result, error) {
	tokens, lexErr := lexer.Lex(source)
	result := Result{Diagnostics: splitJoined(lexErr)}

	program, err := parser.NewParser(tokens).Parse()
	if err != nil {
		return result, &Error{Stage: StageSyntax, Err: err}
	}

	code, err := codegen.Generate(program)
	if err != nil {
		return result, &Error{Stage: StageGen, Err: err}
	}

	result.Code = code

	return result, nil
}

func splitJoined(err error) []error {
	if err == nil {
		return nil
	}
	if errs, ok := err.(interface{ Unwrap() []error }); ok {
		return errs.Unwrap()
	}

	return []error{err}
}
