package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapsolve/internal/cli/config"
	"github.com/leapstack-labs/leapsolve/internal/history"
	"github.com/leapstack-labs/leapsolve/pkg/core"
)

// SolveOptions holds options for the solve command.
type SolveOptions struct {
	Input string
}

// NewSolveCommand creates the solve command.
func NewSolveCommand() *cobra.Command {
	opts := &SolveOptions{}

	cmd := &cobra.Command{
		Use:   "solve [text...]",
		Short: "Solve a problem written in free text",
		Long: `Solve an arithmetic expression, a linear equation in x or a unit
conversion embedded in free text.

The most expression-like line of the input is picked and solved with
worked steps. Text is read from the arguments, from --input, or from
piped stdin. With no input on a terminal an interactive prompt starts.`,
		Example: `  # Arithmetic with word operators
  leapsolve solve "what is 12 times 3 plus 4"

  # Linear equation
  leapsolve solve "2x + 3 = 11"

  # Unit conversion
  leapsolve solve "convert 5 km to m"

  # Pick the problem out of pasted text
  pbpaste | leapsolve solve

  # Interactive prompt
  leapsolve solve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read problem text from file")
	cmd.Flags().String("prompt", config.DefaultPrompt, "Prompt shown by the interactive solver")

	return cmd
}

func runSolve(cmd *cobra.Command, args []string, opts *SolveOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	store, closeStore, err := cmdCtx.OpenHistory()
	if err != nil {
		return err
	}
	defer closeStore()

	text, ok, err := readInput(cmd, args, opts.Input, cmdCtx.Cfg.MaxInputBytes)
	if err != nil {
		return err
	}
	if !ok {
		return runSolveREPL(cmd, cmdCtx, store)
	}

	res := cmdCtx.Solver.SolveFromText(text)
	recordSolve(cmd.Context(), cmdCtx.Logger, store, text, res)
	return renderOutcome(cmdCtx.Renderer, res)
}

// recordSolve stores res when history is enabled. Failing to record never
// fails the solve.
func recordSolve(ctx context.Context, logger *slog.Logger, store *history.Store, input string, res core.SolveResult) {
	if store == nil {
		return
	}
	if _, err := store.Record(ctx, input, res); err != nil {
		logger.Warn("failed to record solve", slog.String("error", err.Error()))
	}
}
