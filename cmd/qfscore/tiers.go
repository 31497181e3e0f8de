package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/qfscore/internal/profile"
	"github.com/dshills/qfscore/internal/trust"
)

func newTiersCmd() *cobra.Command {
	var profileRef string

	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "Print the tier table of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTiers(cmd.OutOrStdout(), profileRef)
		},
	}
	cmd.Flags().StringVar(&profileRef, "profile", profile.DefaultName, "Profile name or YAML file")
	return cmd
}

func runTiers(w io.Writer, profileRef string) error {
	prof, err := profile.Resolve(profileRef)
	if err != nil {
		return exitError(exitInput, "failed to load profile: %v", err)
	}
	return writeOutput(w, "", tierTable(prof.Trust))
}

// tierTable lists tiers from highest to lowest with their score ranges.
func tierTable(p trust.Params) string {
	var b strings.Builder
	upper := trust.MaxScore
	for i := len(trust.Tiers) - 1; i >= 0; i-- {
		t := trust.Tiers[i]
		lower := p.MinScoreFor(t)
		fmt.Fprintf(&b, "%s %-9s %3d-%-3d %s\n", t.Icon(), t, lower, upper, t.Color())
		upper = lower - 1
	}
	return b.String()
}
