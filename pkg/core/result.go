package core

import (
	"encoding/json"
	"math"
	"strconv"
)

// Strategy names the solving path that produced a result.
type Strategy string

// Solving strategies, in dispatch order.
const (
	StrategyEquation   Strategy = "equation"
	StrategyConversion Strategy = "unit-conversion"
	StrategyArithmetic Strategy = "arithmetic"
)

// SolveResult is the outcome of one solve call. Failures are data: Kind,
// Reason, Candidate and Normalized are set and Success is false.
type SolveResult struct {
	Success    bool
	Strategy   Strategy
	Expression string
	Result     float64
	Unit       string
	Steps      []string

	Kind       ErrorKind
	Reason     string
	Candidate  string
	Normalized string
}

// Failure builds a failed result from err.
func Failure(err error, candidate, normalized string) SolveResult {
	kind := KindOf(err)
	if kind == KindNone {
		kind = KindInvalidExpression
	}
	return SolveResult{
		Kind:       kind,
		Reason:     err.Error(),
		Candidate:  candidate,
		Normalized: normalized,
	}
}

// Usable reports whether the result succeeded with a finite number.
// Division by zero succeeds with NaN, which callers should not display
// as an answer.
func (r SolveResult) Usable() bool {
	return r.Success && !math.IsNaN(r.Result) && !math.IsInf(r.Result, 0)
}

// Err returns the failure as an *Error, or nil on success.
func (r SolveResult) Err() error {
	if r.Success {
		return nil
	}
	return &Error{Kind: r.Kind, Message: r.Reason}
}

// Answer renders the numeric result with its unit, if any.
func (r SolveResult) Answer() string {
	if !r.Success {
		return ""
	}
	if r.Unit != "" {
		return FormatNumber(r.Result) + " " + r.Unit
	}
	return FormatNumber(r.Result)
}

type solveResultJSON struct {
	Success    bool      `json:"success"`
	Strategy   Strategy  `json:"strategy,omitempty"`
	Expression string    `json:"expression,omitempty"`
	Result     *float64  `json:"result,omitempty"`
	ResultText string    `json:"result_text,omitempty"`
	Unit       string    `json:"unit,omitempty"`
	Steps      []string  `json:"steps,omitempty"`
	Kind       ErrorKind `json:"kind,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Candidate  string    `json:"candidate,omitempty"`
	Normalized string    `json:"normalized,omitempty"`
}

// MarshalJSON writes non-finite results as a null result plus result_text,
// since JSON has no NaN.
func (r SolveResult) MarshalJSON() ([]byte, error) {
	out := solveResultJSON{
		Success:    r.Success,
		Strategy:   r.Strategy,
		Expression: r.Expression,
		Unit:       r.Unit,
		Steps:      r.Steps,
		Kind:       r.Kind,
		Reason:     r.Reason,
		Candidate:  r.Candidate,
		Normalized: r.Normalized,
	}
	if r.Success {
		out.ResultText = FormatNumber(r.Result)
		if r.Usable() {
			v := r.Result
			out.Result = &v
		}
	}
	return json.Marshal(out)
}

// FormatNumber renders v the way step strings show it: shortest
// round-tripping decimal, no exponent for everyday magnitudes.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e-7 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
