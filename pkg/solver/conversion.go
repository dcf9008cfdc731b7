package solver

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leapsolve/pkg/core"
	"github.com/leapstack-labs/leapsolve/pkg/normalize"
)

var unitConversion = regexp.MustCompile(`(?i)^\s*(?:convert\s+)?([+-]?\d*\.?\d+)\s*([a-z]+)\s+(?:to|in)\s+([a-z]+)\s*\??\s*$`)

// solveConversion reports false only when the candidate does not look like
// a conversion. Once it matches, the conversion outcome is final, failure
// included.
func (s *Solver) solveConversion(candidate string) (core.SolveResult, bool) {
	line := strings.ReplaceAll(normalize.StripBullets(strings.TrimSpace(candidate)), ",", "")
	m := unitConversion.FindStringSubmatch(line)
	if m == nil {
		return core.SolveResult{}, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return core.Failure(core.Errorf(core.KindNonFiniteResult, "number %q is out of range", m[1]), candidate, line), true
	}

	res, err := s.Convert(value, m[2], m[3])
	if err != nil {
		return core.Failure(err, candidate, line), true
	}
	return res, true
}

// Convert converts value between two units of the solver's table. Unlike
// SolveFromText it reports failures as errors.
func (s *Solver) Convert(value float64, from, to string) (core.SolveResult, error) {
	conv, err := s.units.Convert(value, from, to)
	if err != nil {
		return core.SolveResult{}, err
	}
	return core.SolveResult{
		Success:    true,
		Strategy:   core.StrategyConversion,
		Expression: conv.Expression(),
		Result:     conv.Result,
		Unit:       conv.To.Symbol,
		Steps:      conv.Steps,
	}, nil
}
