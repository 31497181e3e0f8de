// Package trust computes the donor trust score, its breakdown and tier.
package trust

// Activity is the donor history a score is computed from.
// Zero values mean the field was absent. Callers clamp negatives before
// calling; the engine does not validate.
type Activity struct {
	AccountAgeDays     int     `json:"accountAgeDays" yaml:"accountAgeDays"`
	TotalContributions int     `json:"totalContributions" yaml:"totalContributions"`
	TotalDonated       float64 `json:"totalDonated" yaml:"totalDonated"`
	UniqueProjects     int     `json:"uniqueProjects" yaml:"uniqueProjects"`
	Verified           bool    `json:"verified" yaml:"verified"`
}

// Breakdown holds the seven sub-scores rounded for display.
type Breakdown struct {
	AccountAge      int `json:"accountAge"`
	Frequency       int `json:"frequency"`
	TotalDonated    int `json:"totalDonated"`
	Diversity       int `json:"diversity"`
	Consistency     int `json:"consistency"`
	AvgContribution int `json:"avgContribution"`
	Verification    int `json:"verification"`
}

// Sum adds the display values. It can differ from Result.TotalScore because
// every field is rounded on its own.
func (b Breakdown) Sum() int {
	return b.AccountAge + b.Frequency + b.TotalDonated + b.Diversity +
		b.Consistency + b.AvgContribution + b.Verification
}

// RawBreakdown holds the unrounded metric values.
type RawBreakdown struct {
	AccountAge      float64 `json:"accountAge"`
	Frequency       float64 `json:"frequency"`
	TotalDonated    float64 `json:"totalDonated"`
	Diversity       float64 `json:"diversity"`
	Consistency     float64 `json:"consistency"`
	AvgContribution float64 `json:"avgContribution"`
	Verification    float64 `json:"verification"`
}

// Sum adds the unrounded metrics.
func (r RawBreakdown) Sum() float64 {
	return r.AccountAge + r.Frequency + r.TotalDonated + r.Diversity +
		r.Consistency + r.AvgContribution + r.Verification
}

// Rounded converts each metric to its display value.
func (r RawBreakdown) Rounded() Breakdown {
	return Breakdown{
		AccountAge:      roundInt(r.AccountAge),
		Frequency:       roundInt(r.Frequency),
		TotalDonated:    roundInt(r.TotalDonated),
		Diversity:       roundInt(r.Diversity),
		Consistency:     roundInt(r.Consistency),
		AvgContribution: roundInt(r.AvgContribution),
		Verification:    roundInt(r.Verification),
	}
}

// Result is the output of a score evaluation.
type Result struct {
	TotalScore int          `json:"totalScore"`
	Tier       Tier         `json:"tier"`
	Breakdown  Breakdown    `json:"breakdown"`
	Raw        RawBreakdown `json:"rawBreakdown"`
	RawData    Activity     `json:"rawData"`
}

// DisplayDrift returns Breakdown.Sum() - TotalScore.
func (r Result) DisplayDrift() int {
	return r.Breakdown.Sum() - r.TotalScore
}
