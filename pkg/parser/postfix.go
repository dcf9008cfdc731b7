// Package parser turns normalized arithmetic text into postfix (RPN) token
// sequences.
//
// Tokenize scans the text; ToPostfix reorders the tokens with the
// shunting-yard algorithm, honouring the precedence table in pkg/token.
// A prefix + or - is rewritten as a binary operator with an injected 0,
// so "-x" becomes "0 - x" and the evaluator only ever sees binary operators.
package parser

import (
	"github.com/leapstack-labs/leapsolve/pkg/core"
	"github.com/leapstack-labs/leapsolve/pkg/token"
)

// stackEntry is an operator waiting on the shunting-yard stack.
type stackEntry struct {
	tok    token.Token
	prefix bool
}

func (e stackEntry) precedence() int {
	if e.prefix {
		return token.PrecedencePrefix
	}
	info, _ := token.Precedence(e.tok.Type)
	return info.Precedence
}

// ToPostfix converts infix tokens to postfix order. The result contains no
// parentheses. Unbalanced parentheses yield a mismatched-parentheses error.
func ToPostfix(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens)*2)
	var ops []stackEntry

	for i, tok := range tokens {
		switch {
		case tok.Type == token.NUMBER:
			out = append(out, tok)

		case tok.Type == token.LPAREN:
			ops = append(ops, stackEntry{tok: tok})

		case tok.Type == token.RPAREN:
			matched := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.tok.Type == token.LPAREN {
					matched = true
					break
				}
				out = append(out, top.tok)
			}
			if !matched {
				return nil, core.ErrorAt(core.KindMismatchedParens, tok.Pos, "')' has no matching '('")
			}

		case isPrefixPosition(tokens, i):
			// The prefix operator has no left operand, so nothing on the
			// stack can be completed yet: push without popping.
			out = append(out, zeroAt(tok))
			ops = append(ops, stackEntry{tok: tok, prefix: true})

		case token.IsOperator(tok.Type):
			info, _ := token.Precedence(tok.Type)
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.tok.Type == token.LPAREN {
					break
				}
				topPrec := top.precedence()
				if topPrec > info.Precedence || (topPrec == info.Precedence && info.Assoc == token.LeftAssoc) {
					out = append(out, top.tok)
					ops = ops[:len(ops)-1]
					continue
				}
				break
			}
			ops = append(ops, stackEntry{tok: tok})

		default:
			return nil, core.ErrorAt(core.KindUnexpectedToken, tok.Pos, "unexpected token %s", tok.Type)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.tok.Type == token.LPAREN {
			return nil, core.ErrorAt(core.KindMismatchedParens, top.tok.Pos, "'(' is never closed")
		}
		out = append(out, top.tok)
	}

	return out, nil
}

// isPrefixPosition reports whether tokens[i] is a + or - that starts the
// expression or follows '(' or another operator.
func isPrefixPosition(tokens []token.Token, i int) bool {
	t := tokens[i].Type
	if t != token.PLUS && t != token.MINUS {
		return false
	}
	if i == 0 {
		return true
	}
	prev := tokens[i-1].Type
	return prev == token.LPAREN || token.IsOperator(prev)
}

func zeroAt(tok token.Token) token.Token {
	z := token.Number(0)
	z.Pos = tok.Pos
	return z
}
