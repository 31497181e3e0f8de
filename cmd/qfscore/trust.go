package main

import (
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/qfscore/internal/input"
	"github.com/dshills/qfscore/internal/profile"
	"github.com/dshills/qfscore/internal/render"
	"github.com/dshills/qfscore/internal/report"
	"github.com/dshills/qfscore/internal/schema"
	"github.com/dshills/qfscore/internal/trust"
)

type trustFlags struct {
	format     string
	out        string
	profileRef string
	top        int
	failBelow  string
	verbose    bool

	// single-donor input
	id       string
	wallet   string
	activity trust.Activity
}

func newTrustCmd() *cobra.Command {
	f := &trustFlags{}

	cmd := &cobra.Command{
		Use:   "trust [batch-file]",
		Short: "Compute donor trust scores from flags or a batch file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runTrust(cmd.OutOrStdout(), path, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "json", "Output format: json or md")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringVar(&f.profileRef, "profile", profile.DefaultName, "Profile name or YAML file")
	flags.IntVar(&f.top, "top", 0, "Show only the N highest-scoring donors (0 = all)")
	flags.StringVar(&f.failBelow, "fail-below", "", "Exit 2 if any donor's tier is below this tier")
	flags.BoolVar(&f.verbose, "verbose", false, "Log processing steps to stderr")

	flags.StringVar(&f.id, "id", "donor", "Donor ID when scoring from flags")
	flags.StringVar(&f.wallet, "wallet", "", "Donor wallet address when scoring from flags")
	flags.IntVar(&f.activity.AccountAgeDays, "age-days", 0, "Account age in days")
	flags.IntVar(&f.activity.TotalContributions, "contributions", 0, "Number of contributions")
	flags.Float64Var(&f.activity.TotalDonated, "donated", 0, "Total amount donated")
	flags.IntVar(&f.activity.UniqueProjects, "projects", 0, "Number of distinct projects supported")
	flags.BoolVar(&f.activity.Verified, "verified", false, "Account is verified")

	return cmd
}

func runTrust(w io.Writer, path string, f *trustFlags) error {
	logger := newLogger(f.verbose)
	defer logger.Sync() //nolint:errcheck

	var threshold trust.Tier
	if f.failBelow != "" {
		t, ok := trust.ParseTier(f.failBelow)
		if !ok {
			return exitError(exitInput, "unknown tier for --fail-below: %q", f.failBelow)
		}
		threshold = t
	}

	logger.Debug("loading profile", zap.String("profile", f.profileRef))
	prof, err := profile.Resolve(f.profileRef)
	if err != nil {
		return exitError(exitInput, "failed to load profile: %v", err)
	}

	in := report.Input{Profile: prof.Name}
	var donors []input.Donor
	if path != "" {
		logger.Debug("loading batch", zap.String("path", path))
		b, err := input.Load(path)
		if err != nil {
			return exitError(exitInput, "failed to load batch: %v", err)
		}
		donors = b.Donors
		in.File = filepath.Base(path)
		in.Hash = b.Hash
	} else {
		donors = []input.Donor{{ID: f.id, Wallet: f.wallet, Activity: f.activity}}
	}

	if errs := schema.ValidateDonors(donors); len(errs) > 0 {
		return invalidInput(errs)
	}

	scores := report.ScoreDonors(prof.Trust, prof.Matching, donors)
	report.SortDonors(scores)
	summary := report.ComputeTrustSummary(scores)
	logger.Debug("scored donors", zap.Int("count", summary.Count), zap.Float64("mean", summary.MeanScore))

	below := 0
	if threshold != "" {
		for _, s := range scores {
			if s.Tier.Rank() < threshold.Rank() {
				below++
			}
		}
	}

	shown, _ := report.Truncate(scores, nil, f.top)
	rep := &report.TrustReport{
		Tool:    "qfscore",
		Version: version,
		Input:   in,
		Summary: summary,
		Donors:  shown,
	}

	var output string
	switch f.format {
	case "json":
		if output, err = encodeJSON(rep); err != nil {
			return err
		}
	case "md":
		output = render.TrustMarkdown(rep, prof.Trust)
	default:
		return exitError(exitInput, "unknown format: %s", f.format)
	}

	if err := writeOutput(w, f.out, output); err != nil {
		return err
	}

	if below > 0 {
		return exitError(exitThreshold, "%d donor(s) below tier %s", below, threshold)
	}
	return nil
}
