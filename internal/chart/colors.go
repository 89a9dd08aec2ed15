package chart

import (
	"fmt"
	"math"

	"github.com/sells-group/targets-navigator/internal/model"
)

// Tier palette.
const (
	ColorTier1   = "#2563eb"
	ColorTier2   = "#f97316"
	ColorTier3   = "#16a34a"
	ColorTier4   = "#dc2626"
	ColorPartner = "#9333ea"
	ColorDefault = "#6b7280"
)

// TierColor returns the fixed colour for a tier.
func TierColor(t model.Tier) string {
	switch t {
	case model.Tier1:
		return ColorTier1
	case model.Tier2:
		return ColorTier2
	case model.Tier3:
		return ColorTier3
	case model.Tier4:
		return ColorTier4
	case model.TierPartner:
		return ColorPartner
	default:
		return ColorDefault
	}
}

// Band is a coarse score classification.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandPoor      Band = "poor"
)

// ScoreBand classifies a 0-10 score.
func ScoreBand(score float64) Band {
	switch {
	case score >= 8:
		return BandExcellent
	case score >= 6:
		return BandGood
	default:
		return BandPoor
	}
}

// SeriesColor spreads hues by the golden angle so neighbouring series
// stay distinguishable.
func SeriesColor(index int) string {
	hue := math.Mod(float64(index)*137.5, 360)
	return fmt.Sprintf("hsl(%.1f, 70%%, 50%%)", hue)
}
