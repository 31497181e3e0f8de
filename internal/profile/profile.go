// Package profile loads named scoring profiles.
package profile

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/qfscore/internal/matching"
	"github.com/dshills/qfscore/internal/trust"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultName is the profile used when none is given.
const DefaultName = "default"

// Profile bundles the trust and matching parameters of a funding round.
type Profile struct {
	Name        string          `yaml:"name"`
	Version     int             `yaml:"version"`
	Description string          `yaml:"description"`
	Trust       trust.Params    `yaml:"trust"`
	Matching    matching.Params `yaml:"matching"`
}

// LoadBuiltin loads a built-in profile by name.
func LoadBuiltin(name string) (*Profile, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: unknown profile %q: %w", name, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile.LoadBuiltin: %q: %w", name, err)
	}
	return p, nil
}

// Load reads a profile from a YAML file on disk.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile.Load: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile.Load: %s: %w", path, err)
	}
	return p, nil
}

// Resolve loads a built-in profile by name, or a file when ref looks like a
// path.
func Resolve(ref string) (*Profile, error) {
	if ref == "" {
		ref = DefaultName
	}
	if strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml") || strings.ContainsRune(ref, os.PathSeparator) {
		return Load(ref)
	}
	return LoadBuiltin(ref)
}

// Parse decodes and validates a profile. Keys missing from data keep their
// default values.
func Parse(data []byte) (*Profile, error) {
	p := Profile{
		Trust:    trust.DefaultParams,
		Matching: matching.DefaultParams,
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("parse: name is required")
	}
	if err := p.Trust.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trust params: %w", err)
	}
	if p.Matching.MatchRatio < 0 || p.Matching.PendingMultiplier < 0 || p.Matching.EarnedRatio < 0 {
		return nil, fmt.Errorf("invalid matching params: ratios must be >= 0")
	}
	return &p, nil
}

// List returns the names of all available built-in profiles.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

// Describe renders the profile as a readable summary.
func Describe(p *Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Profile: %s\n\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(p.Description))
	}

	t := p.Trust
	b.WriteString("### Trust metrics\n\n")
	scaled := []struct {
		name string
		m    trust.Metric
	}{
		{"account_age", t.AccountAge},
		{"frequency", t.Frequency},
		{"total_donated", t.TotalDonated},
		{"diversity", t.Diversity},
		{"avg_contribution", t.AvgContribution},
	}
	for _, s := range scaled {
		fmt.Fprintf(&b, "- %s: min(x / %g, 1) * %g\n", s.name, s.m.Normalizer, s.m.Ceiling)
	}
	fmt.Fprintf(&b, "- consistency: (1 - min(%g, 1)) * %g\n", t.SimulatedDeviation, t.Consistency.Ceiling)
	fmt.Fprintf(&b, "- verification: %g if verified\n\n", t.Verification.Ceiling)

	b.WriteString("### Tiers\n\n")
	for i := len(trust.Tiers) - 1; i >= 0; i-- {
		tier := trust.Tiers[i]
		fmt.Fprintf(&b, "- %s %s: score >= %d (%s)\n", tier.Icon(), tier, t.MinScoreFor(tier), tier.Color())
	}
	b.WriteString("\n")

	m := p.Matching
	b.WriteString("### Matching\n\n")
	fmt.Fprintf(&b, "- project match: (sqrt(raised / n) * n)^2 * %g\n", m.MatchRatio)
	fmt.Fprintf(&b, "- pending donation: amount * %g\n", m.PendingMultiplier)
	fmt.Fprintf(&b, "- matching earned: floor(donated * %g)\n", m.EarnedRatio)

	return b.String()
}
