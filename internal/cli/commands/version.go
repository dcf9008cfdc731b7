package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapsolve/pkg/core"
	"github.com/leapstack-labs/leapsolve/pkg/units"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the leapsolve version, the solving strategies in the order they
are tried, and the size of the built-in unit table.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "leapsolve v%s\n", version)
			_, _ = fmt.Fprintln(out, "Offline arithmetic, equation and unit-conversion solver")
			_, _ = fmt.Fprintf(out, "Strategies: %s, %s, %s\n",
				core.StrategyEquation, core.StrategyConversion, core.StrategyArithmetic)
			_, _ = fmt.Fprintf(out, "Units: %s\n", unitSummary(units.Default()))
		},
	}
}

// unitSummary counts units per dimension, e.g. "8 length, 6 mass, 6 time".
func unitSummary(table *units.Table) string {
	counts := make(map[units.Dimension]int)
	for _, u := range table.Units() {
		counts[u.Dimension]++
	}
	parts := make([]string, 0, 3)
	for _, dim := range []units.Dimension{units.Length, units.Mass, units.Time} {
		parts = append(parts, fmt.Sprintf("%d %s", counts[dim], dim))
	}
	return strings.Join(parts, ", ")
}
