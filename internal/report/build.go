package report

import (
	"github.com/dshills/qfscore/internal/input"
	"github.com/dshills/qfscore/internal/matching"
	"github.com/dshills/qfscore/internal/project"
	"github.com/dshills/qfscore/internal/trust"
)

// ScoreDonors computes a DonorScore per donor, in input order.
func ScoreDonors(tp trust.Params, mp matching.Params, donors []input.Donor) []DonorScore {
	out := make([]DonorScore, 0, len(donors))
	for _, d := range donors {
		out = append(out, DonorScore{
			ID:             d.ID,
			Wallet:         d.Wallet,
			MatchingEarned: mp.MatchingEarned(d.TotalDonated),
			Result:         tp.Compute(d.Activity),
		})
	}
	return out
}

// MatchProjects estimates each project's match and splits pool across them.
// A pool of 0 leaves every allocation at 0.
func MatchProjects(mp matching.Params, pool float64, projects []project.Project) []ProjectMatch {
	sets := make([]matching.ContributionSet, len(projects))
	for i, p := range projects {
		sets[i] = p.Contributions()
	}
	allocs := mp.DistributePool(pool, sets)

	out := make([]ProjectMatch, len(projects))
	for i, p := range projects {
		out[i] = ProjectMatch{
			Project:    p,
			Progress:   p.Progress(),
			Status:     p.Status(),
			Matching:   allocs[i].Weight,
			Allocation: allocs[i].Amount,
		}
	}
	return out
}
