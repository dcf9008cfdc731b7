// Package eval evaluates postfix token sequences.
package eval

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/leapsolve/pkg/core"
	"github.com/leapstack-labs/leapsolve/pkg/token"
)

// Result is a computed value plus one step string per operator applied.
type Result struct {
	Value float64
	Steps []string
}

// Evaluate runs a postfix sequence on a value stack. Division by exactly
// zero yields NaN rather than an error.
func Evaluate(postfix []token.Token) (Result, error) {
	stack := make([]float64, 0, len(postfix))
	steps := make([]string, 0, len(postfix)/2)

	for _, tok := range postfix {
		if tok.Type == token.NUMBER {
			stack = append(stack, tok.Value)
			continue
		}
		if !token.IsOperator(tok.Type) {
			return Result{}, core.ErrorAt(core.KindInvalidExpression, tok.Pos, "unexpected %s in postfix sequence", tok.Type)
		}
		if len(stack) < 2 {
			return Result{}, core.ErrorAt(core.KindInvalidExpression, tok.Pos, "operator %s needs two operands", tok.Type)
		}

		b := stack[len(stack)-1]
		a := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		v := apply(tok.Type, a, b)
		steps = append(steps, fmt.Sprintf("%s %s %s = %s",
			core.FormatNumber(a), tok.Type, core.FormatNumber(b), core.FormatNumber(v)))
		stack = append(stack, v)
	}

	if len(stack) != 1 {
		return Result{}, core.Errorf(core.KindInvalidExpression, "expected one value after evaluation, got %d", len(stack))
	}
	return Result{Value: stack[0], Steps: steps}, nil
}

func apply(op token.TokenType, a, b float64) float64 {
	switch op {
	case token.PLUS:
		return a + b
	case token.MINUS:
		return a - b
	case token.STAR:
		return a * b
	case token.SLASH:
		if b == 0 {
			return math.NaN()
		}
		return a / b
	case token.CARET:
		return math.Pow(a, b)
	}
	return math.NaN()
}
