// Package token defines the token types for arithmetic expressions.
//
// The grammar is deliberately small: unsigned decimal numbers, the five
// binary operators and parentheses. Prefix signs are not separate token
// types; the parser recognises them by position.
package token

import (
	"fmt"
	"strconv"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // token.TokenType mirrors the parser's vocabulary
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota

	// Literals
	NUMBER // 12, 3.5, .25

	// Operators
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /
	CARET // ^

	// Grouping
	LPAREN // (
	RPAREN // )
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:    "EOF",
	NUMBER: "NUMBER",
	PLUS:   "+",
	MINUS:  "-",
	STAR:   "*",
	SLASH:  "/",
	CARET:  "^",
	LPAREN: "(",
	RPAREN: ")",
}

// operators maps operator characters to their token types.
var operators = map[byte]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'^': CARET,
	'(': LPAREN,
	')': RPAREN,
}

// LookupOperator returns the token type for a single operator or
// parenthesis character.
func LookupOperator(ch byte) (TokenType, bool) {
	t, ok := operators[ch]
	return t, ok
}

// IsOperator returns true for the binary arithmetic operators.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= CARET
}

// Token represents a lexical token with position information.
// Value is only meaningful for NUMBER tokens.
type Token struct {
	Type    TokenType
	Literal string
	Value   float64
	Pos     Position
}

// Number builds a NUMBER token that did not come from the source text,
// such as the zero injected in front of a prefix sign.
func Number(v float64) Token {
	return Token{Type: NUMBER, Literal: strconv.FormatFloat(v, 'g', -1, 64), Value: v}
}

// String renders the token the way it appears in an expression.
func (t Token) String() string {
	if t.Type == NUMBER {
		return t.Literal
	}
	return t.Type.String()
}
