package matching

import "math"

// QuadraticMatch computes (sum sqrt(c_i))^2 over individual contribution
// amounts. Non-positive and non-finite amounts are skipped.
func QuadraticMatch(amounts []float64) float64 {
	var sqrtSum float64
	for _, c := range amounts {
		if !(c > 0) || math.IsInf(c, 0) {
			continue
		}
		sqrtSum += math.Sqrt(c)
	}
	return sqrtSum * sqrtSum
}

// Subsidy is the part of QuadraticMatch not covered by the contributions
// themselves.
func Subsidy(amounts []float64) float64 {
	var direct float64
	for _, c := range amounts {
		if c > 0 && !math.IsInf(c, 0) {
			direct += c
		}
	}
	return QuadraticMatch(amounts) - direct
}

// Allocation is one project's share of a matching pool.
type Allocation struct {
	Index  int     `json:"index"`
	Weight float64 `json:"weight"`
	Amount float64 `json:"amount"`
}

// DistributePool distributes pool with DefaultParams.
func DistributePool(pool float64, sets []ContributionSet) []Allocation {
	return DefaultParams.DistributePool(pool, sets)
}

// DistributePool splits pool across sets in proportion to each set's
// estimated match. Allocations keep the order of sets. When the pool is not
// positive or no set carries weight, every amount is 0.
func (p Params) DistributePool(pool float64, sets []ContributionSet) []Allocation {
	out := make([]Allocation, len(sets))
	var total float64
	for i, s := range sets {
		w := p.EstimateMatchingFor(s)
		out[i] = Allocation{Index: i, Weight: w}
		total += w
	}
	if !(pool > 0) || math.IsInf(pool, 0) || total == 0 || math.IsInf(total, 0) {
		return out
	}
	for i := range out {
		out[i].Amount = pool * out[i].Weight / total
	}
	return out
}
