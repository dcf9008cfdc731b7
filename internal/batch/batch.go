// Package batch solves a YAML file of problems concurrently.
//
// A problem file is a YAML list whose items are either plain strings or
// mappings with an id and text:
//
//   - 2 + 3 * 4
//   - id: distance
//     text: 5 km to m
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leapsolve/pkg/core"
)

// Problem is one item of a problem file.
type Problem struct {
	ID   string `yaml:"id" json:"id"`
	Text string `yaml:"text" json:"text"`
}

// UnmarshalYAML accepts a bare string or an {id, text} mapping.
func (p *Problem) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Text = node.Value
		return nil
	}
	type plain Problem
	var raw plain
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*p = Problem(raw)
	return nil
}

// Result pairs a problem with its outcome.
type Result struct {
	Problem Problem          `json:"problem"`
	Result  core.SolveResult `json:"result"`
}

// Solver is the part of solver.Solver the runner needs.
type Solver interface {
	SolveFromText(text string) core.SolveResult
}

// LoadFile reads and parses a problem file. Items without an id get their
// 1-based position as id. Files larger than maxBytes are rejected when
// maxBytes > 0.
func LoadFile(path string, maxBytes int) ([]Problem, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	if maxBytes > 0 && info.Size() > int64(maxBytes) {
		return nil, fmt.Errorf("problem file %s is %d bytes, limit is %d", path, info.Size(), maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	return Parse(data)
}

// Parse parses problem file content.
func Parse(data []byte) ([]Problem, error) {
	var problems []Problem
	if err := yaml.Unmarshal(data, &problems); err != nil {
		return nil, fmt.Errorf("failed to parse problem file: %w", err)
	}
	for i := range problems {
		if problems[i].ID == "" {
			problems[i].ID = strconv.Itoa(i + 1)
		}
	}
	return problems, nil
}

// Runner solves problems with bounded concurrency.
type Runner struct {
	solver  Solver
	workers int
	logger  *slog.Logger
}

// NewRunner creates a Runner. workers < 1 is treated as 1.
func NewRunner(s Solver, workers int, logger *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{solver: s, workers: workers, logger: logger}
}

// Run solves every problem and returns results in input order. It stops
// early only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, problems []Problem) ([]Result, error) {
	results := make([]Result, len(problems))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, p := range problems {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := r.solver.SolveFromText(p.Text)
			r.logger.Debug("solved problem",
				slog.String("id", p.ID), slog.Bool("success", res.Success))
			results[i] = Result{Problem: p, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary counts outcomes.
type Summary struct {
	Total    int `json:"total"`
	Solved   int `json:"solved"`
	Unusable int `json:"unusable"` // succeeded with a non-finite value
	Failed   int `json:"failed"`
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Result.Usable():
			s.Solved++
		case r.Result.Success:
			s.Unusable++
		default:
			s.Failed++
		}
	}
	return s
}
