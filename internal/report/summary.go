package report

import "github.com/dshills/qfscore/internal/trust"

// ComputeTrustSummary derives counts and score statistics from donor scores.
func ComputeTrustSummary(donors []DonorScore) TrustSummary {
	s := TrustSummary{
		Count:      len(donors),
		TierCounts: make(map[trust.Tier]int, len(trust.Tiers)),
	}
	for _, t := range trust.Tiers {
		s.TierCounts[t] = 0
	}
	if len(donors) == 0 {
		return s
	}

	s.MinScore = trust.MaxScore
	s.MaxScore = trust.MinScore
	var total int
	for _, d := range donors {
		total += d.TotalScore
		s.TierCounts[d.Tier]++
		if d.TotalScore < s.MinScore {
			s.MinScore = d.TotalScore
		}
		if d.TotalScore > s.MaxScore {
			s.MaxScore = d.TotalScore
		}
	}
	s.MeanScore = float64(total) / float64(len(donors))
	return s
}

// ComputeMatchSummary totals a set of project matches.
func ComputeMatchSummary(projects []ProjectMatch, pool float64) MatchSummary {
	s := MatchSummary{Projects: len(projects), Pool: pool}
	for _, p := range projects {
		s.TotalRaised += p.Raised
		s.TotalMatching += p.Matching
		if p.Progress >= 100 {
			s.Funded++
		}
	}
	return s
}
