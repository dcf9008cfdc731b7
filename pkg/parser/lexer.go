package parser

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/leapstack-labs/leapsolve/pkg/core"
	"github.com/leapstack-labs/leapsolve/pkg/token"
)

// previewRunes bounds the excerpt quoted in unexpected-token errors.
const previewRunes = 8

// Lexer tokenizes a normalized arithmetic expression.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize scans the whole input. It stops at the first character that
// starts no token; nothing after garbage is ever tokenized.
func Tokenize(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var tokens []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Column: utf8.RuneCountInString(l.input[:l.pos]) + 1,
		Offset: l.pos,
	}
}

// NextToken returns the next token, or an unexpected-token error.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespace()

	pos := l.currentPos()
	if l.atEOF() {
		return token.Token{Type: token.EOF, Pos: pos}, nil
	}

	if t, ok := token.LookupOperator(l.ch); ok {
		tok := token.Token{Type: t, Literal: string(l.ch), Pos: pos}
		l.readChar()
		return tok, nil
	}

	if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
		return l.readNumber(pos)
	}

	return token.Token{}, l.unexpected(pos)
}

// skipWhitespace skips ASCII whitespace.
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && isSpace(l.ch) {
		l.readChar()
	}
}

// readNumber scans digits [ '.' digits ] or '.' digits. A '.' that is not
// followed by a digit ends the number and is left for the next token.
func (l *Lexer) readNumber(pos token.Position) (token.Token, error) {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	literal := l.input[start:l.pos]
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(v, 0) {
		return token.Token{}, core.ErrorAt(core.KindUnexpectedToken, pos, "number %q is out of range", preview(literal))
	}
	return token.Token{Type: token.NUMBER, Literal: literal, Value: v, Pos: pos}, nil
}

func (l *Lexer) unexpected(pos token.Position) error {
	return core.ErrorAt(core.KindUnexpectedToken, pos, "unexpected token near %q", preview(l.input[l.pos:]))
}

// preview returns at most previewRunes runes of s.
func preview(s string) string {
	n := 0
	for i := range s {
		if n == previewRunes {
			return s[:i]
		}
		n++
	}
	return s
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}
