package units

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/leapsolve/pkg/core"
)

// Conversion is a completed conversion with its two-step trace.
type Conversion struct {
	Value  float64
	From   Unit
	To     Unit
	Base   float64 // Value expressed in the dimension's base unit
	Result float64
	Steps  []string
}

// Expression renders the conversion request, e.g. "5 km to m".
func (c Conversion) Expression() string {
	return fmt.Sprintf("%s %s to %s", core.FormatNumber(c.Value), c.From.Symbol, c.To.Symbol)
}

// Convert converts value from one unit to another through the shared base
// unit. Unknown names fail with unknown-unit, mismatched dimensions with
// incompatible-units and an overflowing result with non-finite-result.
func (t *Table) Convert(value float64, from, to string) (Conversion, error) {
	src, ok := t.Resolve(from)
	if !ok {
		return Conversion{}, core.Errorf(core.KindUnknownUnit, "unknown unit %q", from)
	}
	dst, ok := t.Resolve(to)
	if !ok {
		return Conversion{}, core.Errorf(core.KindUnknownUnit, "unknown unit %q", to)
	}
	if src.Dimension != dst.Dimension {
		return Conversion{}, core.Errorf(core.KindIncompatibleUnits,
			"cannot convert %s (%s) to %s (%s)", src.Symbol, src.Dimension, dst.Symbol, dst.Dimension)
	}

	base, _ := t.Base(src.Dimension)
	inBase := value * src.Factor
	result := inBase / dst.Factor
	if !isFinite(inBase) || !isFinite(result) {
		return Conversion{}, core.Errorf(core.KindNonFiniteResult,
			"converting %s %s to %s is not a finite number", core.FormatNumber(value), src.Symbol, dst.Symbol)
	}

	return Conversion{
		Value:  value,
		From:   src,
		To:     dst,
		Base:   inBase,
		Result: result,
		Steps: []string{
			fmt.Sprintf("%s %s × %s = %s %s",
				core.FormatNumber(value), src.Symbol, core.FormatNumber(src.Factor), core.FormatNumber(inBase), base.Symbol),
			fmt.Sprintf("%s %s ÷ %s = %s %s",
				core.FormatNumber(inBase), base.Symbol, core.FormatNumber(dst.Factor), core.FormatNumber(result), dst.Symbol),
		},
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
