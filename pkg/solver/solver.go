// Package solver answers arithmetic, linear-equation and unit-conversion
// problems offline.
//
// SolveFromText picks the most expression-like line of free text and tries
// the equation, unit-conversion and arithmetic strategies in that order.
// SolveExpression evaluates an already isolated expression directly.
// A Solver holds only immutable tables and is safe for concurrent use.
package solver

import (
	"log/slog"

	"github.com/leapstack-labs/leapsolve/pkg/core"
	"github.com/leapstack-labs/leapsolve/pkg/eval"
	"github.com/leapstack-labs/leapsolve/pkg/normalize"
	"github.com/leapstack-labs/leapsolve/pkg/parser"
	"github.com/leapstack-labs/leapsolve/pkg/units"
)

// Solver dispatches problems to the solving strategies.
type Solver struct {
	units  *units.Table
	logger *slog.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithUnits replaces the built-in unit table.
func WithUnits(table *units.Table) Option {
	return func(s *Solver) {
		if table != nil {
			s.units = table
		}
	}
}

// WithLogger sets the logger used for strategy tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Solver. Without options it uses the built-in unit table
// and discards logs.
func New(opts ...Option) *Solver {
	s := &Solver{
		units:  units.Default(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSolver = New()

// SolveFromText solves free text with the default Solver.
func SolveFromText(text string) core.SolveResult {
	return defaultSolver.SolveFromText(text)
}

// SolveExpression evaluates expr with the default Solver.
func SolveExpression(expr string) (core.SolveResult, error) {
	return defaultSolver.SolveExpression(expr)
}

// Units returns the unit table the solver converts with.
func (s *Solver) Units() *units.Table {
	return s.units
}

// SolveFromText never fails out of band: every problem comes back as a
// successful result or a failure carrying its kind, the candidate line and
// the normalized form that was rejected.
func (s *Solver) SolveFromText(text string) core.SolveResult {
	candidate := normalize.ExtractCandidate(text)
	s.logger.Debug("extracted candidate", slog.String("candidate", candidate))

	if res, ok := s.solveEquation(candidate); ok {
		s.logger.Debug("solved as equation", slog.String("expression", res.Expression))
		return res
	}

	if res, ok := s.solveConversion(candidate); ok {
		s.logger.Debug("matched unit conversion",
			slog.Bool("success", res.Success), slog.String("kind", string(res.Kind)))
		return res
	}

	normalized := normalize.Normalize(candidate)
	res, err := s.evaluate(normalized)
	if err != nil {
		s.logger.Debug("arithmetic failed",
			slog.String("normalized", normalized), slog.String("error", err.Error()))
		return core.Failure(err, candidate, normalized)
	}
	return res
}

// SolveExpression normalizes and evaluates expr, skipping line extraction
// and the equation and unit strategies. Failures are returned as *core.Error.
func (s *Solver) SolveExpression(expr string) (core.SolveResult, error) {
	return s.evaluate(normalize.Normalize(expr))
}

func (s *Solver) evaluate(normalized string) (core.SolveResult, error) {
	if !normalize.IsClean(normalized) {
		return core.SolveResult{}, core.Errorf(core.KindNoCleanExpression,
			"%q is not an arithmetic expression", normalized)
	}

	tokens, err := parser.Tokenize(normalized)
	if err != nil {
		return core.SolveResult{}, err
	}
	postfix, err := parser.ToPostfix(tokens)
	if err != nil {
		return core.SolveResult{}, err
	}
	out, err := eval.Evaluate(postfix)
	if err != nil {
		return core.SolveResult{}, err
	}

	return core.SolveResult{
		Success:    true,
		Strategy:   core.StrategyArithmetic,
		Expression: normalized,
		Result:     out.Value,
		Steps:      out.Steps,
	}, nil
}
