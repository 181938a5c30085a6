package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/emotilang/emoti/token"
)

// Lex scans source into tokens. Lexing is fault tolerant: an illegal
// character is reported, exactly one character is skipped, and scanning
// continues. All such errors are joined and returned alongside the tokens
// produced, so callers can still hand the token stream to the parser.
func Lex(source string) ([]token.Token, error) {
	lexer := lexer{
		source:  source,
		tokens:  []token.Token{},
		start:   0,
		current: 0,
		line:    1,
	}

	for !lexer.isAtEnd() {
		if err := lexer.scanToken(); err != nil {
			lexer.errs = append(lexer.errs, err)
		}
	}

	lexer.tokens = append(lexer.tokens, token.Token{Kind: token.EOF, Lexeme: "", Line: lexer.line, Literal: nil})

	return lexer.tokens, errors.Join(lexer.errs...)
}

// commentStart opens a line comment that runs to end of line.
const commentStart = "Z_Z"

type symbol struct {
	spelling string
	kind     token.Kind
}

// symbols is the fixed surface syntax, tried in order at each scan
// position. A spelling must come before every strictly shorter spelling it
// shares a prefix with; the table is kept longest first so the ordering
// stays correct as spellings are added.
var symbols = []symbol{
	{"(⸝⸝๑﹏๑⸝⸝)", token.DIZZY},
	{"(╭ರ_•́)", token.IF},
	{"🕷️", token.TRY},
	{"🕸️", token.CATCH},
	{"🤖", token.ROBOT},
	{"💥", token.THROW},
	{":,D", token.FIELDSEP},
	{":+)", token.PLUS},
	{":-(", token.MINUS},
	{":'(", token.CRYING},
	{">:)", token.GREATER},
	{"<:(", token.LESS},
	{"*_*", token.STAR},
	{"/o/", token.WAVE},
	{":)", token.HAPPYCLOSE},
	{":(", token.SADOPEN},
	{";)", token.WINKSEP},
	{":{", token.CURLYOPEN},
	{":}", token.CURLYCLOSE},
	{":<", token.DECLARE},
	{":>", token.TYPEARROW},
	{":0", token.SURPRISED},
	{":L", token.LFACE},
	{":D", token.LAUGHING},
	{":P", token.TONGUEOUT},
	{":/", token.SLASH},
	{":%", token.PERCENT},
	{"<3", token.ASSIGN},
	{"=)", token.EQUAL},
	{"!(", token.NOTEQUAL},
	{"!)", token.NOT},
	{"&)", token.AND},
	{"|)", token.OR},
}

// reservedIdents remaps two identifier spellings to dedicated keyword
// tokens. They are checked after the identifier rule has scanned a full
// word, not by the symbol table.
var reservedIdents = map[string]token.Kind{
	"X_X": token.DEAD,
	"O_O": token.INPUT,
}

type lexer struct {
	source string
	tokens []token.Token
	errs   []error

	start   int // start of current lexeme
	current int // current position in source
	line    int // current line number
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return runeValue
}

func (l lexer) peekNext() rune {
	_, width := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+width >= len(l.source) {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current+width:])

	return runeValue
}

func (l *lexer) advance() rune {
	runeValue, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width

	return runeValue
}

func (l *lexer) addToken(kind token.Kind, literal any) {
	text := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: text, Line: l.line, Literal: literal})
}

type IllegalCharacterError struct {
	Line int
	Char rune
}

func (e IllegalCharacterError) Error() string {
	return fmt.Sprintf("illegal character %q at line %d", e.Char, e.Line)
}

func (l *lexer) scanToken() error {
	l.start = l.current

	switch l.peek() {
	case ' ', '\t', '\r':
		l.advance()

		return nil
	case '\n':
		l.advance()
		l.line++

		return nil
	case '"':
		return l.string()
	}

	rest := l.source[l.current:]

	if strings.HasPrefix(rest, commentStart) {
		for !l.isAtEnd() && l.peek() != '\n' {
			l.advance()
		}

		return nil
	}

	for _, sym := range symbols {
		if strings.HasPrefix(rest, sym.spelling) {
			l.current += len(sym.spelling)
			l.addToken(sym.kind, nil)

			return nil
		}
	}

	if isDigit(l.peek()) {
		return l.number()
	}
	if isAlpha(l.peek()) {
		l.identifier()

		return nil
	}

	return IllegalCharacterError{Line: l.line, Char: l.advance()}
}

type UnterminatedStringError struct {
	Line int
}

func (e UnterminatedStringError) Error() string {
	return fmt.Sprintf("unterminated string at line %d", e.Line)
}

// string scans a double-quoted literal. There is no escape syntax; the
// content between the quotes is taken verbatim. An unterminated string
// skips only the opening quote so scanning can resume.
func (l *lexer) string() error {
	openLine := l.line
	l.advance()
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	if l.isAtEnd() {
		l.current = l.start
		l.line = openLine
		l.advance()

		return UnterminatedStringError{Line: openLine}
	}

	l.advance()

	value := l.source[l.start+1 : l.current-1]
	l.addToken(token.STRING, value)

	return nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// number scans digits with an optional fractional part. The literal is a
// float64 when a decimal point is present, an int otherwise.
func (l *lexer) number() error {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}

		value, err := strconv.ParseFloat(l.source[l.start:l.current], 64)
		if err != nil {
			return fmt.Errorf("invalid number: %w", err)
		}
		l.addToken(token.NUMBER, value)

		return nil
	}

	value, err := strconv.Atoi(l.source[l.start:l.current])
	if err != nil {
		return fmt.Errorf("invalid number: %w", err)
	}
	l.addToken(token.NUMBER, value)

	return nil
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func (l *lexer) identifier() {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	value := l.source[l.start:l.current]

	if kind, ok := reservedIdents[value]; ok {
		l.addToken(kind, nil)
	} else {
		l.addToken(token.IDENT, nil)
	}
}
