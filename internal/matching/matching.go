// Package matching estimates quadratic-funding matches for projects and
// pending contributions.
package matching

import "math"

// ContributionSet is the aggregate a project exposes: the amount raised and
// how many contributors gave it. Individual amounts are not known, so every
// contribution is treated as the mean.
type ContributionSet struct {
	Raised       float64 `json:"raised" yaml:"raised"`
	Contributors int     `json:"contributors" yaml:"contributors"`
}

// Params holds the matching ratios.
type Params struct {
	// MatchRatio scales the quadratic sum into a match.
	MatchRatio float64 `json:"matchRatio" yaml:"match_ratio"`
	// PendingMultiplier estimates the match of a single pending donation.
	PendingMultiplier float64 `json:"pendingMultiplier" yaml:"pending_multiplier"`
	// EarnedRatio converts a donor's total donated into matching earned.
	EarnedRatio float64 `json:"earnedRatio" yaml:"earned_ratio"`
}

// DefaultParams are the legacy matching ratios.
var DefaultParams = Params{
	MatchRatio:        0.30,
	PendingMultiplier: 1.5,
	EarnedRatio:       0.6,
}

// EstimateMatching estimates a project's match with DefaultParams.
func EstimateMatching(raised float64, contributors int) float64 {
	return DefaultParams.EstimateMatching(raised, contributors)
}

// ClosedForm is the algebraic simplification of EstimateMatching.
func ClosedForm(raised float64, contributors int) float64 {
	return DefaultParams.ClosedForm(raised, contributors)
}

// EstimatePendingMatch estimates the match of a single pending donation.
func EstimatePendingMatch(amount float64) float64 {
	return DefaultParams.EstimatePendingMatch(amount)
}

// MatchingEarned returns the matching a donor's contributions attracted.
func MatchingEarned(totalDonated float64) float64 {
	return DefaultParams.MatchingEarned(totalDonated)
}

// EstimateMatching computes (sqrt(raised/n) * n)^2 * MatchRatio, the
// quadratic sum over n equal contributions. It returns 0 when there are no
// contributors or nothing was raised.
func (p Params) EstimateMatching(raised float64, contributors int) float64 {
	if !usable(raised, contributors) {
		return 0
	}
	n := float64(contributors)
	avg := raised / n
	sqrtSum := math.Sqrt(avg) * n
	return sqrtSum * sqrtSum * p.MatchRatio
}

// ClosedForm computes raised * n * MatchRatio. It equals EstimateMatching up
// to floating-point rounding.
func (p Params) ClosedForm(raised float64, contributors int) float64 {
	if !usable(raised, contributors) {
		return 0
	}
	return raised * float64(contributors) * p.MatchRatio
}

// EstimateMatchingFor is EstimateMatching over a ContributionSet.
func (p Params) EstimateMatchingFor(s ContributionSet) float64 {
	return p.EstimateMatching(s.Raised, s.Contributors)
}

// EstimatePendingMatch applies PendingMultiplier to a donation that has not
// been aggregated yet.
func (p Params) EstimatePendingMatch(amount float64) float64 {
	if !(amount > 0) || math.IsInf(amount, 0) {
		return 0
	}
	return amount * p.PendingMultiplier
}

// MatchingEarned returns floor(totalDonated * EarnedRatio).
func (p Params) MatchingEarned(totalDonated float64) float64 {
	if !(totalDonated > 0) || math.IsInf(totalDonated, 0) {
		return 0
	}
	return math.Floor(totalDonated * p.EarnedRatio)
}

func usable(raised float64, contributors int) bool {
	return contributors > 0 && raised > 0 && !math.IsInf(raised, 0)
}
