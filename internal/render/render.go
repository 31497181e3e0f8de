// Package render produces Markdown output from score reports.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/qfscore/internal/redact"
	"github.com/dshills/qfscore/internal/report"
	"github.com/dshills/qfscore/internal/trust"
)

// TrustMarkdown renders a trust report as a Markdown document. Ceilings for
// the breakdown come from p.
func TrustMarkdown(r *report.TrustReport, p trust.Params) string {
	var b strings.Builder

	b.WriteString("# Trust Score Report\n\n")
	fmt.Fprintf(&b, "**Profile:** %s\n", r.Input.Profile)
	fmt.Fprintf(&b, "**Donors:** %d\n", r.Summary.Count)
	if r.Summary.Count > 0 {
		fmt.Fprintf(&b, "**Mean score:** %.1f (min %d, max %d)\n",
			r.Summary.MeanScore, r.Summary.MinScore, r.Summary.MaxScore)
	}
	b.WriteString("\n")

	// Tier distribution, highest first
	b.WriteString("## Tiers\n\n")
	for i := len(trust.Tiers) - 1; i >= 0; i-- {
		t := trust.Tiers[i]
		fmt.Fprintf(&b, "- %s %s: %d\n", t.Icon(), t, r.Summary.TierCounts[t])
	}
	b.WriteString("\n")

	if len(r.Donors) == 0 {
		b.WriteString("No donors scored.\n\n")
		return b.String()
	}

	b.WriteString("## Donors\n\n")
	for _, d := range r.Donors {
		renderDonor(&b, d, p)
	}
	return b.String()
}

func renderDonor(b *strings.Builder, d report.DonorScore, p trust.Params) {
	fmt.Fprintf(b, "### %s — %d/100 %s %s\n\n", d.ID, d.TotalScore, d.Tier.Icon(), d.Tier)
	if d.Wallet != "" {
		fmt.Fprintf(b, "Wallet: `%s`\n\n", redact.Address(d.Wallet))
	}
	b.WriteString("| Metric | Score |\n|---|---|\n")
	rows := []struct {
		label string
		v     int
		max   float64
	}{
		{"🕐 Account Age", d.Breakdown.AccountAge, p.AccountAge.Ceiling},
		{"📊 Contribution Frequency", d.Breakdown.Frequency, p.Frequency.Ceiling},
		{"💰 Total Donated", d.Breakdown.TotalDonated, p.TotalDonated.Ceiling},
		{"🌈 Project Diversity", d.Breakdown.Diversity, p.Diversity.Ceiling},
		{"📈 Contribution Consistency", d.Breakdown.Consistency, p.Consistency.Ceiling},
		{"💵 Average Contribution", d.Breakdown.AvgContribution, p.AvgContribution.Ceiling},
		{"✅ Verification Status", d.Breakdown.Verification, p.Verification.Ceiling},
	}
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %d/%g |\n", row.label, row.v, row.max)
	}
	fmt.Fprintf(b, "| **Total Score** | **%d/100** |\n\n", d.TotalScore)
	fmt.Fprintf(b, "Matching earned: $%s\n\n", money(d.MatchingEarned))
}

// MatchMarkdown renders a match report as a Markdown document.
func MatchMarkdown(r *report.MatchReport) string {
	var b strings.Builder

	b.WriteString("# Matching Estimate\n\n")
	fmt.Fprintf(&b, "**Profile:** %s\n", r.Input.Profile)
	fmt.Fprintf(&b, "**Projects:** %d (%d funded)\n", r.Summary.Projects, r.Summary.Funded)
	fmt.Fprintf(&b, "**Raised:** $%s\n", money(r.Summary.TotalRaised))
	fmt.Fprintf(&b, "**Estimated matching:** $%s\n", money(r.Summary.TotalMatching))
	if r.Summary.Pool > 0 {
		fmt.Fprintf(&b, "**Matching pool:** $%s\n", money(r.Summary.Pool))
	}
	b.WriteString("\n")

	if len(r.Projects) == 0 {
		b.WriteString("No projects.\n")
		return b.String()
	}

	b.WriteString("| Project | Raised | Goal | Progress | Contributors | Matching |")
	if r.Summary.Pool > 0 {
		b.WriteString(" Pool share |")
	}
	b.WriteString(" Status |\n|---|---|---|---|---|---|")
	if r.Summary.Pool > 0 {
		b.WriteString("---|")
	}
	b.WriteString("---|\n")

	for _, p := range r.Projects {
		title := p.Title
		if title == "" {
			title = p.ID
		}
		fmt.Fprintf(&b, "| %s | $%s | $%s | %.0f%% | %d | $%s |",
			title, money(p.Raised), money(p.Goal), p.Progress, p.Contributors, compact(p.Matching))
		if r.Summary.Pool > 0 {
			fmt.Fprintf(&b, " $%s |", money(p.Allocation))
		}
		fmt.Fprintf(&b, " %s |\n", p.Status.Label())
	}
	return b.String()
}

// money formats with two decimals and thousands separators.
func money(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	res := string(out) + "." + frac
	if neg {
		res = "-" + res
	}
	return res
}

// compact formats large amounts in thousands, e.g. 3159.0K.
func compact(v float64) string {
	if v >= 1000 || v <= -1000 {
		return fmt.Sprintf("%.1fK", v/1000)
	}
	return fmt.Sprintf("%.2f", v)
}
