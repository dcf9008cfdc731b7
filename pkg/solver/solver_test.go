package solver

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapsolve/internal/testutil"
	"github.com/leapstack-labs/leapsolve/pkg/core"
	"github.com/leapstack-labs/leapsolve/pkg/units"
)

func TestSolveExpression(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2+3*4", 14},
		{"2^3^2", 512},
		{"-5+3", -2},
		{"- 5 + 3", 8}, // a dash and a space is a list bullet
		{"3*-2", -6},
		{"3/4", 0.75},
		{"1.45*3.8", 1.45 * 3.8},
		{"1 2/3 + 1", 1 + 2.0/3.0 + 1},
		{"6 times 7", 42},
		{"12 ÷ 4 =", 3},
		{"[2 + 3] × 4", 20},
		{"1,000 + 1", 1001},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			res, err := SolveExpression(tt.expr)
			require.NoError(t, err)
			assert.True(t, res.Success)
			assert.Equal(t, core.StrategyArithmetic, res.Strategy)
			assert.InDelta(t, tt.want, res.Result, 1e-12)
			assert.NotEmpty(t, res.Steps)
		})
	}
}

func TestSolveExpressionMixedNumber(t *testing.T) {
	res, err := SolveExpression("1 2/3 + 1")
	require.NoError(t, err)
	assert.Equal(t, "(1+(2/3))+1", res.Expression)
	assert.InDelta(t, 2.6666666666666665, res.Result, 1e-15)
}

func TestSolveExpressionDivisionByZero(t *testing.T) {
	res, err := SolveExpression("5/0")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, math.IsNaN(res.Result))
	assert.False(t, res.Usable())
}

func TestSolveExpressionErrors(t *testing.T) {
	tests := []struct {
		expr string
		kind core.ErrorKind
	}{
		{"", core.KindNoCleanExpression},
		{"what is two plus two", core.KindNoCleanExpression},
		{"3+4=7", core.KindNoCleanExpression},
		{"(2+3", core.KindMismatchedParens},
		{"2+3)", core.KindMismatchedParens},
		{"3+*4", core.KindInvalidExpression},
		{"1.2.3", core.KindInvalidExpression},
		{"3 4", core.KindInvalidExpression},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := SolveExpression(tt.expr)
			require.Error(t, err)
			assert.Equal(t, tt.kind, core.KindOf(err))
		})
	}
}

func TestSolveFromTextArithmetic(t *testing.T) {
	res := SolveFromText("Please solve this problem.\n3+4=\nGood luck!")
	require.True(t, res.Success, res.Reason)
	assert.Equal(t, core.StrategyArithmetic, res.Strategy)
	assert.Equal(t, "3+4", res.Expression)
	assert.Equal(t, 7.0, res.Result)
	assert.Equal(t, []string{"3 + 4 = 7"}, res.Steps)
}

func TestSolveFromTextEquation(t *testing.T) {
	tests := []struct {
		text  string
		want  float64
		steps []string
	}{
		{
			text: "2x + 3 = 11",
			want: 4,
			steps: []string{
				"2x + 3 = 11",
				"2x = 11 - 3 = 8",
				"x = 8 / 2 = 4",
			},
		},
		{
			text: "-x - 4 = 10",
			want: -14,
			steps: []string{
				"-x - 4 = 10",
				"-x = 10 + 4 = 14",
				"x = 14 / -1 = -14",
			},
		},
		{
			text: "x = 5",
			want: 5,
			steps: []string{
				"x = 5",
				"x = 5",
				"x = 5 / 1 = 5",
			},
		},
		{
			text: "Solve for x:\n0.5 × x + 1 = 2",
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := SolveFromText(tt.text)
			require.True(t, res.Success, res.Reason)
			assert.Equal(t, core.StrategyEquation, res.Strategy)
			assert.InDelta(t, tt.want, res.Result, 1e-12)
			require.Len(t, res.Steps, 3)
			if tt.steps != nil {
				assert.Equal(t, tt.steps, res.Steps)
			}
		})
	}
}

func TestSolveFromTextEquationWithoutSolution(t *testing.T) {
	res := SolveFromText("0x + 1 = 2")
	assert.False(t, res.Success)
	assert.NotEqual(t, core.StrategyEquation, res.Strategy)
	assert.Equal(t, core.KindNoCleanExpression, res.Kind)
}

func TestSolveFromTextConversion(t *testing.T) {
	res := SolveFromText("5 km to m")
	require.True(t, res.Success, res.Reason)
	assert.Equal(t, core.StrategyConversion, res.Strategy)
	assert.Equal(t, 5000.0, res.Result)
	assert.Equal(t, "m", res.Unit)
	assert.Equal(t, "5000 m", res.Answer())
	assert.Len(t, res.Steps, 2)

	res = SolveFromText("Convert 1,500 meters in kilometers?")
	require.True(t, res.Success, res.Reason)
	assert.Equal(t, 1.5, res.Result)
	assert.Equal(t, "km", res.Unit)
}

func TestSolveFromTextConversionFailureIsFinal(t *testing.T) {
	res := SolveFromText("12 in to g")
	assert.False(t, res.Success)
	assert.Equal(t, core.KindIncompatibleUnits, res.Kind)
	assert.Equal(t, "12 in to g", res.Candidate)

	res = SolveFromText("3 parsecs to m")
	assert.False(t, res.Success)
	assert.Equal(t, core.KindUnknownUnit, res.Kind)
}

func TestConvert(t *testing.T) {
	s := New()

	res, err := s.Convert(90, "minutes", "h")
	require.NoError(t, err)
	assert.Equal(t, core.StrategyConversion, res.Strategy)
	assert.Equal(t, "90 min to h", res.Expression)
	assert.Equal(t, "1.5 h", res.Answer())

	_, err = s.Convert(1, "kg", "m")
	assert.ErrorIs(t, err, core.ErrIncompatibleUnits)
}

func TestSolveFromTextFailureCarriesDiagnostics(t *testing.T) {
	res := SolveFromText("what is the meaning of life")
	assert.False(t, res.Success)
	assert.Equal(t, core.KindNoCleanExpression, res.Kind)
	assert.Equal(t, "what is the meaning of life", res.Candidate)
	assert.NotEmpty(t, res.Reason)
	assert.ErrorIs(t, res.Err(), core.ErrNoCleanExpression)

	res = SolveFromText("(2+3")
	assert.False(t, res.Success)
	assert.Equal(t, core.KindMismatchedParens, res.Kind)
	assert.Equal(t, "(2+3", res.Normalized)
}

func TestSolverWithCustomUnits(t *testing.T) {
	table, err := units.Default().WithAliases(map[string]string{"klick": "km"})
	require.NoError(t, err)

	s := New(WithUnits(table), WithLogger(testutil.NewTestLogger(t)))
	assert.Same(t, table, s.Units())

	res := s.SolveFromText("3 klicks to m")
	require.True(t, res.Success, res.Reason)
	assert.Equal(t, 3000.0, res.Result)

	res = SolveFromText("3 klicks to m")
	assert.Equal(t, core.KindUnknownUnit, res.Kind, "default solver is unaffected")
}

func TestSolverLogsStrategy(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger()
	s := New(WithLogger(logger))

	s.SolveFromText("2x + 3 = 11")
	assert.Contains(t, logs.String(), "solved as equation")

	s.SolveFromText("hello")
	assert.Contains(t, logs.String(), "arithmetic failed")
	assert.Contains(t, logs.String(), "no-clean-expression")
}

func TestSolveConcurrent(t *testing.T) {
	s := New()
	inputs := map[string]float64{
		"2+3*4":     14,
		"2x+3=11":   4,
		"5 km to m": 5000,
		"2^10":      1024,
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		for text, want := range inputs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res := s.SolveFromText(text)
				assert.True(t, res.Success)
				assert.Equal(t, want, res.Result)
			}()
		}
	}
	wg.Wait()
}

func TestPrecedenceAgreesWithParenthesized(t *testing.T) {
	pairs := [][2]string{
		{"2+3*4", "2+(3*4)"},
		{"2*3^2", "2*(3^2)"},
		{"2^3^2", "2^(3^2)"},
		{"10-4-3", "(10-4)-3"},
		{"100/10/5", "(100/10)/5"},
		{"-2^2", "-(2^2)"},
	}

	for _, p := range pairs {
		t.Run(p[0], func(t *testing.T) {
			a, err := SolveExpression(p[0])
			require.NoError(t, err)
			b, err := SolveExpression(p[1])
			require.NoError(t, err)
			assert.Equal(t, b.Result, a.Result)
		})
	}
}
