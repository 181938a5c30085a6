package token

import "fmt"

type Kind int

const (
	EOF Kind = iota

	// Structure.
	HAPPYCLOSE // :)
	SADOPEN    // :(
	WINKSEP    // ;)
	CURLYOPEN  // :{
	CURLYCLOSE // :}
	FIELDSEP   // :,D

	// Declarations and types.
	DECLARE   // :<
	TYPEARROW // :>
	SURPRISED // :0 (number type)
	LFACE     // :L (string type)
	DEAD      // X_X (boolean type)
	CRYING    // :'( (false)
	LAUGHING  // :D (true)

	// Assignment.
	ASSIGN // <3

	// Functions and control flow.
	ROBOT // 🤖
	WAVE  // /o/
	IF    // (╭ರ_•́)
	DIZZY // (⸝⸝๑﹏๑⸝⸝)
	TRY   // 🕷️
	CATCH // 🕸️
	THROW // 💥

	// I/O.
	TONGUEOUT // :P
	INPUT     // O_O

	// Literals and identifiers.
	IDENT
	NUMBER
	STRING

	// Arithmetic operators.
	PLUS    // :+)
	MINUS   // :-(
	STAR    // *_*
	SLASH   // :/
	PERCENT // :%

	// Comparison operators.
	EQUAL    // =)
	NOTEQUAL // !(
	GREATER  // >:)
	LESS     // <:(

	// Logical operators.
	AND // &)
	OR  // |)
	NOT // !)
)

var kindNames = [...]string{
	EOF:        "EOF",
	HAPPYCLOSE: "HAPPYCLOSE",
	SADOPEN:    "SADOPEN",
	WINKSEP:    "WINKSEP",
	CURLYOPEN:  "CURLYOPEN",
	CURLYCLOSE: "CURLYCLOSE",
	FIELDSEP:   "FIELDSEP",
	DECLARE:    "DECLARE",
	TYPEARROW:  "TYPEARROW",
	SURPRISED:  "SURPRISED",
	LFACE:      "LFACE",
	DEAD:       "DEAD",
	CRYING:     "CRYING",
	LAUGHING:   "LAUGHING",
	ASSIGN:     "ASSIGN",
	ROBOT:      "ROBOT",
	WAVE:       "WAVE",
	IF:         "IF",
	DIZZY:      "DIZZY",
	TRY:        "TRY",
	CATCH:      "CATCH",
	THROW:      "THROW",
	TONGUEOUT:  "TONGUEOUT",
	INPUT:      "INPUT",
	IDENT:      "IDENT",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	PERCENT:    "PERCENT",
	EQUAL:      "EQUAL",
	NOTEQUAL:   "NOTEQUAL",
	GREATER:    "GREATER",
	LESS:       "LESS",
	AND:        "AND",
	OR:         "OR",
	NOT:        "NOT",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// Token is one lexical unit. Literal is nil except for NUMBER (int or
// float64) and STRING (string).
type Token struct {
	Kind    Kind
	Lexeme  string
	Line    int
	Literal any
}

func (t Token) String() string {
	return fmt.Sprintf("{%v, %q, %d, %v}", t.Kind, t.Lexeme, t.Line, t.Literal)
}
