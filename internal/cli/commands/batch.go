package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapsolve/internal/batch"
	"github.com/leapstack-labs/leapsolve/internal/cli/config"
	"github.com/leapstack-labs/leapsolve/internal/cli/output"
	"github.com/leapstack-labs/leapsolve/internal/history"
)

// BatchOptions holds options for the batch command.
type BatchOptions struct {
	Watch bool
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Solve every problem in a YAML file",
		Long: `Solve a YAML list of problems concurrently and print one row per
problem, in file order, followed by a summary.

Items are plain strings or mappings with an id and text. With --watch
the file is solved again whenever it changes, until interrupted.`,
		Example: `  # problems.yaml
  # - 2 + 3 * 4
  # - id: distance
  #   text: 5 km to m

  leapsolve batch problems.yaml
  leapsolve batch problems.yaml --workers 8 -o json
  leapsolve batch problems.yaml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], opts)
		},
	}

	// Read through the config layer as batch.workers.
	cmd.Flags().IntP("workers", "w", config.DefaultBatchWorkers, "Number of problems solved concurrently")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-solve when the file changes")

	return cmd
}

func runBatch(cmd *cobra.Command, path string, opts *BatchOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	store, closeStore, err := cmdCtx.OpenHistory()
	if err != nil {
		return err
	}
	defer closeStore()

	runner := batch.NewRunner(cmdCtx.Solver, cmdCtx.Cfg.Batch.Workers, cmdCtx.Logger)

	if !opts.Watch {
		summary, err := solveBatchFile(cmd.Context(), cmdCtx, runner, store, path)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d problems failed", summary.Failed, summary.Total)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := solveBatchFile(ctx, cmdCtx, runner, store, path); err != nil {
		cmdCtx.Renderer.Error(err.Error())
	}
	cmdCtx.Renderer.Muted(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", path))

	return batch.Watch(ctx, path, cmdCtx.Cfg.Batch.WatchExtensions, cmdCtx.Logger, func() {
		cmdCtx.Renderer.Println("")
		if _, err := solveBatchFile(ctx, cmdCtx, runner, store, path); err != nil {
			cmdCtx.Renderer.Error(err.Error())
		}
	})
}

func solveBatchFile(ctx context.Context, cmdCtx *CommandContext, runner *batch.Runner, store *history.Store, path string) (batch.Summary, error) {
	problems, err := batch.LoadFile(path, cmdCtx.Cfg.MaxInputBytes)
	if err != nil {
		return batch.Summary{}, err
	}

	results, err := runner.Run(ctx, problems)
	if err != nil {
		return batch.Summary{}, err
	}
	for _, res := range results {
		recordSolve(ctx, cmdCtx.Logger, store, res.Problem.Text, res.Result)
	}

	summary := batch.Summarize(results)
	cmdCtx.Logger.Debug("batch solved",
		slog.String("file", path),
		slog.Int("total", summary.Total),
		slog.Int("failed", summary.Failed),
	)
	return summary, renderBatch(cmdCtx.Renderer, results, summary)
}

func renderBatch(r *output.Renderer, results []batch.Result, summary batch.Summary) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(struct {
			Results []batch.Result `json:"results"`
			Summary batch.Summary  `json:"summary"`
		}{results, summary})
	}

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		status, answer := "ok", res.Result.Answer()
		switch {
		case !res.Result.Success:
			status, answer = "failed", string(res.Result.Kind)
		case !res.Result.Usable():
			status = "not finite"
		}
		rows = append(rows, []string{res.Problem.ID, res.Problem.Text, string(res.Result.Strategy), answer, status})
	}
	r.Table([]string{"ID", "Problem", "Strategy", "Answer", "Status"}, rows)
	r.Println("")

	msg := fmt.Sprintf("%d solved, %d not finite, %d failed (of %d)",
		summary.Solved, summary.Unusable, summary.Failed, summary.Total)
	if summary.Failed > 0 {
		r.Warning(msg)
	} else {
		r.Success(msg)
	}
	return nil
}
