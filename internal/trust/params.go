package trust

import (
	"errors"
	"fmt"
)

// Metric scales one raw value: min(raw/Normalizer, 1) * Ceiling.
type Metric struct {
	Normalizer float64 `json:"normalizer" yaml:"normalizer"`
	Ceiling    float64 `json:"ceiling" yaml:"ceiling"`
}

func (m Metric) score(raw float64) float64 {
	return minf(raw/m.Normalizer, 1) * m.Ceiling
}

// Thresholds are the minimum scores for each tier above New.
type Thresholds struct {
	Bronze   int `json:"bronze" yaml:"bronze"`
	Silver   int `json:"silver" yaml:"silver"`
	Gold     int `json:"gold" yaml:"gold"`
	Platinum int `json:"platinum" yaml:"platinum"`
}

// Params configures the engine. The zero value is not usable; start from
// DefaultParams.
type Params struct {
	AccountAge      Metric `json:"accountAge" yaml:"account_age"`
	Frequency       Metric `json:"frequency" yaml:"frequency"`
	TotalDonated    Metric `json:"totalDonated" yaml:"total_donated"`
	Diversity       Metric `json:"diversity" yaml:"diversity"`
	AvgContribution Metric `json:"avgContribution" yaml:"avg_contribution"`

	// Consistency and Verification use only Ceiling. The deviation is
	// synthetic: only aggregates are known, so it is a fixed share of the
	// average.
	Consistency        Metric  `json:"consistency" yaml:"consistency"`
	SimulatedDeviation float64 `json:"simulatedDeviation" yaml:"simulated_deviation"`

	Verification Metric `json:"verification" yaml:"verification"`

	Tiers Thresholds `json:"tiers" yaml:"tiers"`
}

// DefaultParams are the legacy scoring constants.
var DefaultParams = Params{
	AccountAge:         Metric{Normalizer: 365, Ceiling: 15},
	Frequency:          Metric{Normalizer: 50, Ceiling: 20},
	TotalDonated:       Metric{Normalizer: 5000, Ceiling: 15},
	Diversity:          Metric{Normalizer: 20, Ceiling: 15},
	AvgContribution:    Metric{Normalizer: 100, Ceiling: 10},
	Consistency:        Metric{Ceiling: 15},
	SimulatedDeviation: 0.3,
	Verification:       Metric{Ceiling: 10},
	Tiers:              Thresholds{Bronze: 21, Silver: 41, Gold: 61, Platinum: 81},
}

// Validate reports parameters that would make the engine divide by zero,
// go negative, or produce overlapping tiers.
func (p Params) Validate() error {
	var errs []error
	metrics := []struct {
		name   string
		m      Metric
		scaled bool
	}{
		{"account_age", p.AccountAge, true},
		{"frequency", p.Frequency, true},
		{"total_donated", p.TotalDonated, true},
		{"diversity", p.Diversity, true},
		{"avg_contribution", p.AvgContribution, true},
		{"consistency", p.Consistency, false},
		{"verification", p.Verification, false},
	}
	for _, m := range metrics {
		if m.scaled && m.m.Normalizer <= 0 {
			errs = append(errs, fmt.Errorf("%s.normalizer must be > 0, got %v", m.name, m.m.Normalizer))
		}
		if m.m.Ceiling < 0 {
			errs = append(errs, fmt.Errorf("%s.ceiling must be >= 0, got %v", m.name, m.m.Ceiling))
		}
	}
	if p.SimulatedDeviation < 0 {
		errs = append(errs, fmt.Errorf("simulated_deviation must be >= 0, got %v", p.SimulatedDeviation))
	}
	t := p.Tiers
	if !(0 < t.Bronze && t.Bronze < t.Silver && t.Silver < t.Gold && t.Gold < t.Platinum && t.Platinum <= MaxScore) {
		errs = append(errs, fmt.Errorf("tiers must satisfy 0 < bronze < silver < gold < platinum <= %d, got %+v", MaxScore, t))
	}
	return errors.Join(errs...)
}

// MaxCeiling is the highest total the metrics can contribute.
func (p Params) MaxCeiling() float64 {
	return p.AccountAge.Ceiling + p.Frequency.Ceiling + p.TotalDonated.Ceiling +
		p.Diversity.Ceiling + p.Consistency.Ceiling + p.AvgContribution.Ceiling +
		p.Verification.Ceiling
}
