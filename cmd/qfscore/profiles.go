package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/qfscore/internal/profile"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles [name]",
		Short: "List built-in scoring profiles, or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			return runProfiles(cmd.OutOrStdout(), ref)
		},
	}
}

func runProfiles(w io.Writer, ref string) error {
	if ref != "" {
		p, err := profile.Resolve(ref)
		if err != nil {
			return exitError(exitInput, "failed to load profile: %v", err)
		}
		return writeOutput(w, "", profile.Describe(p))
	}
	names, err := profile.List()
	if err != nil {
		return err
	}
	return writeOutput(w, "", strings.Join(names, "\n")+"\n")
}
