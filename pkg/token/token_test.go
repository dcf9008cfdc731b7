package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupOperator(t *testing.T) {
	tests := []struct {
		ch   byte
		want TokenType
		ok   bool
	}{
		{'+', PLUS, true},
		{'-', MINUS, true},
		{'*', STAR, true},
		{'/', SLASH, true},
		{'^', CARET, true},
		{'(', LPAREN, true},
		{')', RPAREN, true},
		{'x', EOF, false},
		{'=', EOF, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.ch), func(t *testing.T) {
			got, ok := LookupOperator(tt.ch)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPrecedenceTable(t *testing.T) {
	pow, ok := Precedence(CARET)
	require.True(t, ok)
	assert.Equal(t, RightAssoc, pow.Assoc)

	mul, _ := Precedence(STAR)
	add, _ := Precedence(PLUS)
	assert.Greater(t, pow.Precedence, mul.Precedence)
	assert.Greater(t, mul.Precedence, add.Precedence)
	assert.Greater(t, PrecedencePrefix, mul.Precedence, "prefix sign binds tighter than *")
	assert.Less(t, PrecedencePrefix, pow.Precedence, "prefix sign binds looser than ^")

	_, ok = Precedence(LPAREN)
	assert.False(t, ok)
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "0", Number(0).String())
	assert.Equal(t, "2.5", Number(2.5).String())
	assert.Equal(t, "^", Token{Type: CARET}.String())
	assert.Equal(t, "TOKEN(99)", TokenType(99).String())
	assert.True(t, IsOperator(SLASH))
	assert.False(t, IsOperator(RPAREN))
}
