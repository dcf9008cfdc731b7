package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapsolve/pkg/core"
)

func TestDefaultTable(t *testing.T) {
	table := Default()
	require.NotNil(t, table)
	assert.Len(t, table.Units(), 20)

	for _, dim := range []Dimension{Length, Mass, Time} {
		base, ok := table.Base(dim)
		require.True(t, ok, dim)
		assert.True(t, base.IsBase())
		assert.Equal(t, dim, base.Dimension)
	}

	km, ok := table.Resolve("km")
	require.True(t, ok)
	assert.Equal(t, 1000.0, km.Factor, "per_base entries are inverted at load")

	mm, ok := table.Resolve("mm")
	require.True(t, ok)
	assert.InDelta(t, 0.001, mm.Factor, 1e-15)
}

func TestResolve(t *testing.T) {
	table := Default()

	tests := []struct {
		name string
		want string
	}{
		{"m", "m"},
		{"M", "m"},
		{"meters", "m"},
		{"metres", "m"},
		{"ms", "ms"},
		{"s", "s"},
		{"secs", "s"},
		{"seconds", "s"},
		{"hrs", "h"},
		{"hours", "h"},
		{"mins", "min"},
		{"inches", "in"},
		{"feet", "ft"},
		{"lbs", "lb"},
		{"kilos", "kg"},
		{"days", "day"},
		{" Miles ", "mi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := table.Resolve(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, u.Symbol)
		})
	}

	for _, name := range []string{"", "parsec", "es", "furlongs"} {
		_, ok := table.Resolve(name)
		assert.False(t, ok, name)
	}
}

func TestConvert(t *testing.T) {
	table := Default()

	tests := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{5, "km", "m", 5000},
		{12, "in", "m", 0.3048},
		{1, "mi", "ft", 5280},
		{2.5, "kg", "g", 2500},
		{1, "lb", "oz", 16},
		{90, "min", "h", 1.5},
		{1, "week", "days", 7},
		{250, "ms", "s", 0.25},
		{3, "m", "m", 3},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			c, err := table.Convert(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, c.Result, 1e-9)
			assert.Len(t, c.Steps, 2)
		})
	}
}

func TestConvertSteps(t *testing.T) {
	c, err := Default().Convert(5, "km", "m")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, c.Result)
	assert.Equal(t, "5 km to m", c.Expression())
	assert.Equal(t, []string{
		"5 km × 1000 = 5000 m",
		"5000 m ÷ 1 = 5000 m",
	}, c.Steps)
}

func TestConvertFailures(t *testing.T) {
	table := Default()

	_, err := table.Convert(12, "in", "g")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrIncompatibleUnits)

	_, err = table.Convert(1, "parsec", "m")
	assert.ErrorIs(t, err, core.ErrUnknownUnit)

	_, err = table.Convert(1, "m", "cubits")
	assert.ErrorIs(t, err, core.ErrUnknownUnit)

	_, err = table.Convert(math.MaxFloat64, "mi", "mm")
	assert.ErrorIs(t, err, core.ErrNonFiniteResult)
}

func TestWithAliases(t *testing.T) {
	base := Default()

	table, err := base.WithAliases(map[string]string{
		"Klick": "km",
		"stone": "lbs",
	})
	require.NoError(t, err)

	u, ok := table.Resolve("klicks")
	require.True(t, ok)
	assert.Equal(t, "km", u.Symbol)
	assert.Contains(t, u.Aliases, "klick")

	u, ok = table.Resolve("stone")
	require.True(t, ok)
	assert.Equal(t, "lb", u.Symbol)

	_, ok = base.Resolve("klick")
	assert.False(t, ok, "original table is unchanged")

	_, err = base.WithAliases(map[string]string{"x": "parsec"})
	assert.Error(t, err)

	_, err = base.WithAliases(map[string]string{"m": "ft"})
	assert.Error(t, err, "alias clashes with an existing unit")

	same, err := base.WithAliases(nil)
	require.NoError(t, err)
	assert.Same(t, base, same)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", ""},
		{"no units", "dimensions: {length: m}\nunits: []\n"},
		{"both directions", `
dimensions: {length: m}
units:
  - {symbol: m, dimension: length, to_base: 1}
  - {symbol: km, dimension: length, to_base: 1000, per_base: 0.001}
`},
		{"missing factor", `
dimensions: {length: m}
units:
  - {symbol: m, dimension: length}
`},
		{"unknown dimension", `
dimensions: {length: m}
units:
  - {symbol: m, dimension: length, to_base: 1}
  - {symbol: l, dimension: volume, to_base: 1}
`},
		{"base not unit factor", `
dimensions: {length: m}
units:
  - {symbol: m, dimension: length, to_base: 2}
`},
		{"duplicate alias", `
dimensions: {length: m}
units:
  - {symbol: m, dimension: length, to_base: 1, aliases: [meter]}
  - {symbol: km, dimension: length, to_base: 1000, aliases: [meter]}
`},
		{"unknown field", `
dimensions: {length: m}
units:
  - {symbol: m, dimension: length, to_base: 1, offset: 3}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
