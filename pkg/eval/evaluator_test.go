package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapsolve/pkg/core"
	"github.com/leapstack-labs/leapsolve/pkg/parser"
)

func evalString(t *testing.T, s string) (Result, error) {
	t.Helper()
	tokens, err := parser.Tokenize(s)
	require.NoError(t, err)
	rpn, err := parser.ToPostfix(tokens)
	require.NoError(t, err)
	return Evaluate(rpn)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2+3*4", 14},
		{"2^3^2", 512},
		{"(2^3)^2", 64},
		{"-5+3", -2},
		{"3*-2", -6},
		{"-2^2", -4},
		{"10-4-3", 3},
		{"100/10/5", 2},
		{"2^-1", 0.5},
		{"(1+(2/3))+1", 1 + 2.0/3.0 + 1},
		{"1.45*3.8", 1.45 * 3.8},
		{"--5", 5},
		{"7", 7},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			res, err := evalString(t, tt.expr)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, res.Value, 1e-12)
		})
	}
}

func TestEvaluateSteps(t *testing.T) {
	res, err := evalString(t, "2+3*4")
	require.NoError(t, err)
	assert.Equal(t, []string{"3 * 4 = 12", "2 + 12 = 14"}, res.Steps)

	res, err = evalString(t, "-5+3")
	require.NoError(t, err)
	assert.Equal(t, []string{"0 - 5 = -5", "-5 + 3 = -2"}, res.Steps)
}

func TestEvaluateDivisionByZero(t *testing.T) {
	res, err := evalString(t, "5/0")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(res.Value))
	assert.Equal(t, []string{"5 / 0 = NaN"}, res.Steps)

	res, err = evalString(t, "1+5/0")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(res.Value), "NaN propagates")
}

func TestEvaluateInvalid(t *testing.T) {
	tests := []string{
		"3+*4",
		"*",
		"3 4",
		"1.2.3",
		"()",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := evalString(t, expr)
			require.Error(t, err)
			assert.Equal(t, core.KindInvalidExpression, core.KindOf(err))
		})
	}
}
