package codegen_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emotilang/emoti/ast"
	"github.com/emotilang/emoti/codegen"
	"github.com/emotilang/emoti/lexer"
	"github.com/emotilang/emoti/parser"
	"github.com/emotilang/emoti/utils"
	"github.com/sebdah/goldie/v2"
)

func generate(t *testing.T, source string) string {
	t.Helper()

	tokens, err := lexer.Lex(source)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	program, err := parser.NewParser(tokens).Parse()
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	code, err := codegen.Generate(program)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	return code
}

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

		code := generate(t, string(source))

		g := goldie.New(t)
		g.Assert(t, filepath.Base(testfile), []byte(code+"\n"))
	}
}

func TestEmptyProgramEmitsHeaderOnly(t *testing.T) {
	t.Parallel()

	code := generate(t, "")
	if code != "// Transpiled from EmotiLang\n" {
		t.Errorf("unexpected output %q", code)
	}
}

// Every generated line that opens a brace must have a matching close at
// the same indentation, so counting by depth must end balanced and never
// go negative.
func TestBracesBalanced(t *testing.T) {
	t.Parallel()

	source := "🤖 f :( x :> :0 :) :> :0 :{\n" +
		"(╭ರ_•́) x >:) :0 0 :{\n" +
		"/o/ x ;)\n" +
		":}\n" +
		"🕷️ :{\n" +
		"💥 :L \"bad\" ;)\n" +
		":} 🕸️ e :{\n" +
		":P e ;)\n" +
		":}\n" +
		"/o/ :0 0 ;)\n" +
		":}"
	code := generate(t, source)

	depth := 0
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "}") {
			depth--
		}
		if depth < 0 {
			t.Fatalf("unbalanced close in:\n%s", code)
		}
		if indent := strings.Repeat("  ", depth); line != "" && !strings.HasPrefix(line, indent) {
			t.Errorf("line %q not indented to depth %d", line, depth)
		}
		if strings.HasSuffix(trimmed, "{") {
			depth++
		}
	}
	if depth != 0 {
		t.Errorf("unbalanced output, final depth %d:\n%s", depth, code)
	}
}

func TestUnsupportedNode(t *testing.T) {
	t.Parallel()

	_, err := codegen.Generate(&ast.Program{Decls: []ast.Stmt{nil}})
	if err == nil {
		t.Fatal("expected an error")
	}

	var nodeErr codegen.UnsupportedNodeError
	if !errors.As(err, &nodeErr) {
		t.Errorf("unexpected error type: %v", err)
	}
}
