package trust

import "math"

// Score bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// Compute scores an activity with DefaultParams.
func Compute(a Activity) Result {
	return DefaultParams.Compute(a)
}

// TierFor maps a score to its tier with the default thresholds.
func TierFor(score int) Tier {
	return DefaultParams.TierFor(score)
}

// Compute sums the seven metrics unrounded, clamps the sum to
// [MinScore, MaxScore] and rounds it once. Breakdown values are rounded one
// by one for display and may not add up to TotalScore.
func (p Params) Compute(a Activity) Result {
	raw := p.metrics(a)

	sum := raw.Sum()
	switch {
	case math.IsNaN(sum) || sum < MinScore:
		sum = MinScore
	case sum > MaxScore:
		sum = MaxScore
	}
	total := roundInt(sum)

	return Result{
		TotalScore: total,
		Tier:       p.TierFor(total),
		Breakdown:  raw.Rounded(),
		Raw:        raw,
		RawData:    a,
	}
}

func (p Params) metrics(a Activity) RawBreakdown {
	contributions := float64(a.TotalContributions)
	avg := a.TotalDonated / math.Max(contributions, 1)

	// 0/0 is undefined, so a donor with nothing donated gets no
	// consistency points.
	var consistency float64
	if avg != 0 {
		deviation := avg * p.SimulatedDeviation
		consistency = (1 - minf(deviation/avg, 1)) * p.Consistency.Ceiling
	}

	var verification float64
	if a.Verified {
		verification = p.Verification.Ceiling
	}

	return RawBreakdown{
		AccountAge:      p.AccountAge.score(float64(a.AccountAgeDays)),
		Frequency:       p.Frequency.score(contributions),
		TotalDonated:    p.TotalDonated.score(a.TotalDonated),
		Diversity:       p.Diversity.score(float64(a.UniqueProjects)),
		Consistency:     consistency,
		AvgContribution: p.AvgContribution.score(avg),
		Verification:    verification,
	}
}

// TierFor maps a score to its tier. Thresholds are inclusive lower bounds.
func (p Params) TierFor(score int) Tier {
	switch {
	case score >= p.Tiers.Platinum:
		return TierPlatinum
	case score >= p.Tiers.Gold:
		return TierGold
	case score >= p.Tiers.Silver:
		return TierSilver
	case score >= p.Tiers.Bronze:
		return TierBronze
	default:
		return TierNew
	}
}

// MinScoreFor returns the lowest score that reaches t.
func (p Params) MinScoreFor(t Tier) int {
	switch t {
	case TierPlatinum:
		return p.Tiers.Platinum
	case TierGold:
		return p.Tiers.Gold
	case TierSilver:
		return p.Tiers.Silver
	case TierBronze:
		return p.Tiers.Bronze
	default:
		return MinScore
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// roundInt rounds half away from zero. Non-finite values round to 0.
func roundInt(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
