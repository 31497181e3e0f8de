package trust

import "strings"

// Tier is a reputation bracket derived from the total score.
type Tier string

const (
	TierNew      Tier = "New"
	TierBronze   Tier = "Bronze"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

// Tiers lists every tier from lowest to highest.
var Tiers = []Tier{TierNew, TierBronze, TierSilver, TierGold, TierPlatinum}

func (t Tier) Valid() bool {
	switch t {
	case TierNew, TierBronze, TierSilver, TierGold, TierPlatinum:
		return true
	}
	return false
}

// Rank returns the tier position, lowest first. Unknown tiers rank -1.
func (t Tier) Rank() int {
	switch t {
	case TierNew:
		return 0
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	case TierPlatinum:
		return 4
	default:
		return -1
	}
}

// Icon returns the badge shown next to the tier name.
func (t Tier) Icon() string {
	switch t {
	case TierPlatinum:
		return "💎"
	case TierGold:
		return "🥇"
	case TierSilver:
		return "🥈"
	case TierBronze:
		return "🥉"
	default:
		return "🌱"
	}
}

// Color returns the tier's display color as a hex string.
func (t Tier) Color() string {
	switch t {
	case TierPlatinum:
		return "#00d4ff"
	case TierGold:
		return "#ffd700"
	case TierSilver:
		return "#c0c0c0"
	case TierBronze:
		return "#cd7f32"
	default:
		return "#4ade80"
	}
}

// ParseTier matches a tier name case-insensitively.
func ParseTier(s string) (Tier, bool) {
	for _, t := range Tiers {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}
