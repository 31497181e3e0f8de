package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/qfscore/internal/input"
	"github.com/dshills/qfscore/internal/profile"
	"github.com/dshills/qfscore/internal/project"
	"github.com/dshills/qfscore/internal/render"
	"github.com/dshills/qfscore/internal/report"
	"github.com/dshills/qfscore/internal/schema"
)

type matchFlags struct {
	format     string
	out        string
	profileRef string
	top        int
	verbose    bool

	raised       float64
	contributors int
	goal         float64
	pool         float64
	hasPool      bool
	pending      float64
	hasPending   bool
}

func newMatchCmd() *cobra.Command {
	f := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "match [batch-file]",
		Short: "Estimate matching funds for projects or a pending contribution",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.hasPool = cmd.Flags().Changed("pool")
			f.hasPending = cmd.Flags().Changed("pending")
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runMatch(cmd.OutOrStdout(), path, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "json", "Output format: json or md")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.profileRef, "profile", profile.DefaultName, "Profile name or YAML file")
	flags.IntVar(&f.top, "top", 0, "Show only the N projects with the largest match (0 = all)")
	flags.BoolVar(&f.verbose, "verbose", false, "Log processing steps to stderr")
	flags.Float64Var(&f.raised, "raised", 0, "Amount raised by a single project")
	flags.IntVar(&f.contributors, "contributors", 0, "Distinct contributors of a single project")
	flags.Float64Var(&f.goal, "goal", 0, "Funding goal of a single project")
	flags.Float64Var(&f.pool, "pool", 0, "Matching pool to distribute (overrides the batch file)")
	flags.Float64Var(&f.pending, "pending", 0, "Estimate the match of a single pending contribution")

	return cmd
}

type pendingResult struct {
	Amount         float64 `json:"amount"`
	EstimatedMatch float64 `json:"estimatedMatch"`
}

func runMatch(w io.Writer, path string, f *matchFlags) error {
	logger := newLogger(f.verbose)
	defer logger.Sync() //nolint:errcheck

	prof, err := profile.Resolve(f.profileRef)
	if err != nil {
		return exitError(exitInput, "failed to load profile: %v", err)
	}

	if f.hasPending {
		if errs := schema.ValidateAmount(f.pending, "pending"); len(errs) > 0 {
			return invalidInput(errs)
		}
		res := pendingResult{Amount: f.pending, EstimatedMatch: prof.Matching.EstimatePendingMatch(f.pending)}
		var output string
		switch f.format {
		case "json":
			if output, err = encodeJSON(res); err != nil {
				return err
			}
		case "md":
			output = fmt.Sprintf("Estimated match for a $%.2f contribution: $%.2f\n", res.Amount, res.EstimatedMatch)
		default:
			return exitError(exitInput, "unknown format: %s", f.format)
		}
		return writeOutput(w, f.out, output)
	}

	in := report.Input{Profile: prof.Name}
	var (
		projects []project.Project
		pool     float64
	)
	if path != "" {
		logger.Debug("loading batch", zap.String("path", path))
		b, err := input.Load(path)
		if err != nil {
			return exitError(exitInput, "failed to load batch: %v", err)
		}
		projects = b.Projects
		pool = b.Pool
		in.File = filepath.Base(path)
		in.Hash = b.Hash
	} else {
		projects = []project.Project{{ID: "project", Raised: f.raised, Goal: f.goal, Contributors: f.contributors}}
	}
	if f.hasPool {
		pool = f.pool
	}

	errs := schema.ValidateProjects(projects)
	errs = append(errs, schema.ValidatePool(pool, "pool")...)
	if len(errs) > 0 {
		return invalidInput(errs)
	}

	matches := report.MatchProjects(prof.Matching, pool, projects)
	report.SortProjects(matches)
	summary := report.ComputeMatchSummary(matches, pool)
	logger.Debug("estimated matches",
		zap.Int("projects", summary.Projects),
		zap.Float64("total_matching", summary.TotalMatching),
		zap.Float64("pool", pool))

	_, shown := report.Truncate(nil, matches, f.top)
	rep := &report.MatchReport{
		Tool:     "qfscore",
		Version:  version,
		Input:    in,
		Summary:  summary,
		Projects: shown,
	}

	var output string
	switch f.format {
	case "json":
		if output, err = encodeJSON(rep); err != nil {
			return err
		}
	case "md":
		output = render.MatchMarkdown(rep)
	default:
		return exitError(exitInput, "unknown format: %s", f.format)
	}
	return writeOutput(w, f.out, output)
}
