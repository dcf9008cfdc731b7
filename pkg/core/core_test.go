package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapsolve/pkg/token"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := ErrorAt(KindUnexpectedToken, token.Position{Column: 3, Offset: 2}, "near %q", "$")
	wrapped := fmt.Errorf("solve: %w", err)

	assert.True(t, errors.Is(wrapped, ErrUnexpectedToken))
	assert.False(t, errors.Is(wrapped, ErrMismatchedParens))
	assert.Equal(t, KindUnexpectedToken, KindOf(wrapped))
	assert.Equal(t, `unexpected-token at column 3: near "$"`, err.Error())
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(errors.New("boom")))
	assert.Equal(t, KindNone, KindOf(nil))
}

func TestErrorWithoutPosition(t *testing.T) {
	assert.Equal(t, "invalid-expression: too few operands", Errorf(KindInvalidExpression, "too few operands").Error())
	assert.Equal(t, "unknown-unit", (&Error{Kind: KindUnknownUnit}).Error())
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4, "4"},
		{-2, "-2"},
		{2.5, "2.5"},
		{1.45 * 3.8, "5.51"},
		{math.Copysign(0, -1), "0"},
		{5000, "5000"},
		{123456789, "123456789"},
		{1e21, "1e+21"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestSolveResultJSON(t *testing.T) {
	t.Run("finite result", func(t *testing.T) {
		data, err := json.Marshal(SolveResult{Success: true, Strategy: StrategyArithmetic, Expression: "2+2", Result: 4, Steps: []string{"2 + 2 = 4"}})
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, true, got["success"])
		assert.Equal(t, 4.0, got["result"])
		assert.Equal(t, "4", got["result_text"])
		assert.Equal(t, "arithmetic", got["strategy"])
	})

	t.Run("NaN result", func(t *testing.T) {
		data, err := json.Marshal(SolveResult{Success: true, Expression: "5/0", Result: math.NaN()})
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.NotContains(t, got, "result")
		assert.Equal(t, "NaN", got["result_text"])
	})

	t.Run("failure", func(t *testing.T) {
		r := Failure(Errorf(KindNoCleanExpression, "bad"), "hello 3", "hello 3")
		data, err := json.Marshal(r)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"kind":"no-clean-expression"`)
		assert.Contains(t, string(data), `"candidate":"hello 3"`)
		assert.False(t, r.Usable())
		assert.True(t, errors.Is(r.Err(), ErrNoCleanExpression))
	})
}

func TestAnswer(t *testing.T) {
	assert.Equal(t, "5000 m", SolveResult{Success: true, Result: 5000, Unit: "m"}.Answer())
	assert.Equal(t, "NaN", SolveResult{Success: true, Result: math.NaN()}.Answer())
	assert.Equal(t, "", SolveResult{}.Answer())
}
