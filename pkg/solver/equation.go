package solver

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapsolve/pkg/core"
	"github.com/leapstack-labs/leapsolve/pkg/normalize"
)

// linearEquation matches [sign][coefficient][*]x[offset]=constant with all
// whitespace removed.
var linearEquation = regexp.MustCompile(`^([+-]?)(?:(\d*\.?\d+)\*?)?x([+-]\d*\.?\d+)?=([+-]?\d*\.?\d+)$`)

// solveEquation solves a*x + b = c. It reports false when the candidate is
// not a linear equation or has no unique finite solution.
func (s *Solver) solveEquation(candidate string) (core.SolveResult, bool) {
	eq := strings.Join(strings.Fields(normalize.NormalizeEquation(candidate)), "")
	m := linearEquation.FindStringSubmatch(eq)
	if m == nil {
		return core.SolveResult{}, false
	}

	a := 1.0
	if m[2] != "" {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return core.SolveResult{}, false
		}
		a = v
	}
	if m[1] == "-" {
		a = -a
	}

	var b float64
	if m[3] != "" {
		v, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return core.SolveResult{}, false
		}
		b = v
	}

	c, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return core.SolveResult{}, false
	}

	if a == 0 {
		s.logger.Debug("equation has no unique solution", slog.String("equation", eq))
		return core.SolveResult{}, false
	}
	rhs := c - b
	x := rhs / a
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return core.SolveResult{}, false
	}

	term := variableTerm(a)
	isolate := fmt.Sprintf("%s = %s", term, core.FormatNumber(rhs))
	if b != 0 {
		op := "-"
		if b < 0 {
			op = "+"
		}
		isolate = fmt.Sprintf("%s = %s %s %s = %s",
			term, core.FormatNumber(c), op, core.FormatNumber(math.Abs(b)), core.FormatNumber(rhs))
	}

	return core.SolveResult{
		Success:    true,
		Strategy:   core.StrategyEquation,
		Expression: eq,
		Result:     x,
		Steps: []string{
			restate(term, b, c),
			isolate,
			fmt.Sprintf("x = %s / %s = %s", core.FormatNumber(rhs), core.FormatNumber(a), core.FormatNumber(x)),
		},
	}, true
}

func variableTerm(a float64) string {
	switch a {
	case 1:
		return "x"
	case -1:
		return "-x"
	}
	return core.FormatNumber(a) + "x"
}

func restate(term string, b, c float64) string {
	switch {
	case b > 0:
		return fmt.Sprintf("%s + %s = %s", term, core.FormatNumber(b), core.FormatNumber(c))
	case b < 0:
		return fmt.Sprintf("%s - %s = %s", term, core.FormatNumber(-b), core.FormatNumber(c))
	}
	return fmt.Sprintf("%s = %s", term, core.FormatNumber(c))
}
