package token

// Associativity decides how operators of equal precedence group.
type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

// Precedence levels. PrecedencePrefix sits between multiplication and
// exponentiation: -2^2 is -(2^2) while 3*-2 still binds the sign first.
const (
	PrecedenceAddition = 1 // + -
	PrecedenceMultiply = 2 // * /
	PrecedencePrefix   = 3 // prefix + -
	PrecedencePower    = 4 // ^
)

// OperatorInfo is one row of the precedence table.
type OperatorInfo struct {
	Precedence int
	Assoc      Associativity
}

// precedenceTable is built once and never mutated.
var precedenceTable = map[TokenType]OperatorInfo{
	PLUS:  {Precedence: PrecedenceAddition, Assoc: LeftAssoc},
	MINUS: {Precedence: PrecedenceAddition, Assoc: LeftAssoc},
	STAR:  {Precedence: PrecedenceMultiply, Assoc: LeftAssoc},
	SLASH: {Precedence: PrecedenceMultiply, Assoc: LeftAssoc},
	CARET: {Precedence: PrecedencePower, Assoc: RightAssoc},
}

// Precedence returns the binary precedence row for t. ok is false for
// anything that is not a binary operator.
func Precedence(t TokenType) (OperatorInfo, bool) {
	info, ok := precedenceTable[t]
	return info, ok
}
