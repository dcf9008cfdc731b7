package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewExprCommand creates the expr command.
func NewExprCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expr <expression>",
		Short: "Evaluate an isolated arithmetic expression",
		Long: `Evaluate an arithmetic expression without searching free text for it.

The expression is normalized (word operators, unicode symbols, mixed
numbers) and evaluated with standard precedence. Errors report the
column of the offending token.`,
		Example: `  leapsolve expr "2 + 3 * 4"
  leapsolve expr "(1 1/2 + 2) ^ 2"
  leapsolve expr "7 ÷ 2" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			expr := strings.Join(args, " ")
			if maxBytes := cmdCtx.Cfg.MaxInputBytes; maxBytes > 0 && len(expr) > maxBytes {
				return fmt.Errorf("input is %d bytes, limit is %d", len(expr), maxBytes)
			}

			res, err := cmdCtx.Solver.SolveExpression(expr)
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.Solve(res)
		},
	}

	return cmd
}
