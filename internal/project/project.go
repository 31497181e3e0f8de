// Package project describes a fundraising project and its funding progress.
package project

import "github.com/dshills/qfscore/internal/matching"

// Status is the badge a project card shows.
type Status string

const (
	StatusNone       Status = ""
	StatusFunded     Status = "FUNDED"
	StatusHot        Status = "HOT"
	StatusEndingSoon Status = "ENDING_SOON"
)

// Label returns the human-readable badge text.
func (s Status) Label() string {
	switch s {
	case StatusFunded:
		return "✓ Funded"
	case StatusHot:
		return "🔥 Hot"
	case StatusEndingSoon:
		return "⏰ Ending Soon"
	default:
		return ""
	}
}

// Status thresholds.
const (
	FundedProgress = 100.0
	HotProgress    = 75.0
	EndingSoonDays = 7
)

// Project is a campaign collecting contributions toward a goal.
type Project struct {
	ID           string  `json:"id" yaml:"id"`
	Title        string  `json:"title" yaml:"title"`
	Category     string  `json:"category,omitempty" yaml:"category"`
	Raised       float64 `json:"raised" yaml:"raised"`
	Goal         float64 `json:"goal" yaml:"goal"`
	Contributors int     `json:"contributors" yaml:"contributors"`
	// DaysLeft is 0 when the deadline is unknown.
	DaysLeft int `json:"daysLeft,omitempty" yaml:"daysLeft"`
}

// Progress returns raised as a percentage of goal. It is not capped at 100.
func (p Project) Progress() float64 {
	if p.Goal <= 0 {
		return 0
	}
	return p.Raised / p.Goal * 100
}

// Status picks the card badge: funded first, then hot, then ending soon.
func (p Project) Status() Status {
	progress := p.Progress()
	switch {
	case progress >= FundedProgress:
		return StatusFunded
	case progress >= HotProgress:
		return StatusHot
	case p.DaysLeft > 0 && p.DaysLeft <= EndingSoonDays:
		return StatusEndingSoon
	default:
		return StatusNone
	}
}

// Contributions returns the aggregate the matching engine consumes.
func (p Project) Contributions() matching.ContributionSet {
	return matching.ContributionSet{Raised: p.Raised, Contributors: p.Contributors}
}
