package lexer_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emotilang/emoti/lexer"
	"github.com/emotilang/emoti/token"
	"github.com/emotilang/emoti/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
)

func TestGolden(t *testing.T) {
	t.Parallel()

	testfiles, err := utils.FindSourceFiles("../testdata")
	if err != nil {
		t.Fatalf("failed to find test files: %v", err)
	}

	for _, testfile := range testfiles {
		source, err := os.ReadFile(testfile)
		if err != nil {
			t.Errorf("failed to read %s: %v", testfile, err)

			continue
		}

		tokens, err := lexer.Lex(string(source))
		if err != nil {
			t.Errorf("%s returned error: %v", testfile, err)

			continue
		}

		var builder strings.Builder
		for _, tok := range tokens {
			builder.WriteString(tok.String())
			builder.WriteString("\n")
		}

		g := goldie.New(t)
		g.Assert(t, filepath.Base(testfile), []byte(builder.String()))
	}
}

func kinds(tokens []token.Token) []token.Kind {
	ks := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			continue
		}
		ks = append(ks, tok.Kind)
	}

	return ks
}

func TestLongestMatchFirst(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		source   string
		expected []token.Kind
	}{
		{":,D", []token.Kind{token.FIELDSEP}},
		{":+)", []token.Kind{token.PLUS}},
		{":-(", []token.Kind{token.MINUS}},
		{":'(", []token.Kind{token.CRYING}},
		{">:)", []token.Kind{token.GREATER}},
		{"<:(", []token.Kind{token.LESS}},
		{"<3", []token.Kind{token.ASSIGN}},
		{"*_*", []token.Kind{token.STAR}},
		{"/o/", []token.Kind{token.WAVE}},
		{":(", []token.Kind{token.SADOPEN}},
		{":)", []token.Kind{token.HAPPYCLOSE}},
		{"!(", []token.Kind{token.NOTEQUAL}},
		{"!)", []token.Kind{token.NOT}},
		{":0:)", []token.Kind{token.SURPRISED, token.HAPPYCLOSE}},
		{":P:L", []token.Kind{token.TONGUEOUT, token.LFACE}},
	}

	for _, testcase := range testcases {
		tokens, err := lexer.Lex(testcase.source)
		if err != nil {
			t.Errorf("Lex(%q) returned error: %v", testcase.source, err)
		}
		if diff := cmp.Diff(testcase.expected, kinds(tokens)); diff != "" {
			t.Errorf("Lex(%q) mismatch (-want +got):\n%s", testcase.source, diff)
		}
	}
}

func TestReservedIdentifierOverrides(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex("X_X O_O X_Xtra")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}

	expected := []token.Kind{token.DEAD, token.INPUT, token.IDENT}
	if diff := cmp.Diff(expected, kinds(tokens)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if tokens[2].Lexeme != "X_Xtra" {
		t.Errorf("expected identifier X_Xtra, got %q", tokens[2].Lexeme)
	}
}

func TestNumberLiterals(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex("42 3.14")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}

	if got, ok := tokens[0].Literal.(int); !ok || got != 42 {
		t.Errorf("expected int 42, got %v (%T)", tokens[0].Literal, tokens[0].Literal)
	}
	if got, ok := tokens[1].Literal.(float64); !ok || got != 3.14 {
		t.Errorf("expected float64 3.14, got %v (%T)", tokens[1].Literal, tokens[1].Literal)
	}
}

func TestIllegalCharacterRecovery(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex(":P ok @ ;)\n$ :P x ;)")
	if err == nil {
		t.Fatal("expected an error")
	}

	// Both illegal characters are reported with their own line numbers.
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected joined errors, got %v", err)
	}
	errs := joined.Unwrap()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}

	var first lexer.IllegalCharacterError
	if !errors.As(errs[0], &first) || first.Char != '@' || first.Line != 1 {
		t.Errorf("unexpected first error: %v", errs[0])
	}
	var second lexer.IllegalCharacterError
	if !errors.As(errs[1], &second) || second.Char != '$' || second.Line != 2 {
		t.Errorf("unexpected second error: %v", errs[1])
	}

	// Tokens after each illegal character are still produced.
	expected := []token.Kind{
		token.TONGUEOUT, token.IDENT, token.WINKSEP,
		token.TONGUEOUT, token.IDENT, token.WINKSEP,
	}
	if diff := cmp.Diff(expected, kinds(tokens)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUnterminatedString(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex(`"abc`)

	var unterminated lexer.UnterminatedStringError
	if !errors.As(err, &unterminated) || unterminated.Line != 1 {
		t.Fatalf("expected unterminated string error at line 1, got %v", err)
	}

	// Only the opening quote is skipped; the rest is rescanned.
	expected := []token.Kind{token.IDENT}
	if diff := cmp.Diff(expected, kinds(tokens)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestComments(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex("Z_Z :P this is discarded ;)\n:P x ;)")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}

	expected := []token.Kind{token.TONGUEOUT, token.IDENT, token.WINKSEP}
	if diff := cmp.Diff(expected, kinds(tokens)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if tokens[0].Line != 2 {
		t.Errorf("expected line 2, got %d", tokens[0].Line)
	}
}

func TestNewlinesCountLines(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex("\n\n:P x ;)")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	if tokens[0].Line != 3 {
		t.Errorf("expected line 3, got %d", tokens[0].Line)
	}
}
