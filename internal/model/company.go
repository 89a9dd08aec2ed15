package model

import (
	"strings"
	"time"
)

// Tier is the ordinal target category assigned to a company.
type Tier string

const (
	Tier1       Tier = "Tier 1"
	Tier2       Tier = "Tier 2"
	Tier3       Tier = "Tier 3"
	Tier4       Tier = "Tier 4"
	TierPartner Tier = "Partner"
	TierUnknown Tier = "Unknown"
)

// Tiers lists the known tiers in ordinal order.
var Tiers = []Tier{Tier1, Tier2, Tier3, Tier4, TierPartner}

// ParseTier maps a backend tier label to a Tier. Labels are matched
// case-insensitively and with or without the space ("Tier1", "tier 1").
// Anything unrecognised maps to TierUnknown.
func ParseTier(s string) Tier {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	switch norm {
	case "tier1":
		return Tier1
	case "tier2":
		return Tier2
	case "tier3":
		return Tier3
	case "tier4":
		return Tier4
	case "partner":
		return TierPartner
	default:
		return TierUnknown
	}
}

// Rank returns the ordinal position of the tier (1-based); Partner ranks
// after Tier 4 and Unknown last.
func (t Tier) Rank() int {
	for i, known := range Tiers {
		if t == known {
			return i + 1
		}
	}
	return len(Tiers) + 1
}

// Company is the identity and top-level scores of one evaluated company,
// as read from the company overview aggregate. Score fields are nil when
// the company has not been evaluated on that metric yet.
type Company struct {
	Key             string   `json:"key"`
	Name            string   `json:"name"`
	Website         string   `json:"website,omitempty"`
	Geography       string   `json:"geography"`
	Ticker          string   `json:"ticker,omitempty"`
	Tags            []string `json:"tags"`
	Tier            Tier     `json:"tier"`
	RankingCategory string   `json:"ranking_category,omitempty"`
	Industry        string   `json:"industry,omitempty"`

	// Revenue is the parent revenue in USD millions.
	Revenue *float64 `json:"revenue,omitempty"`

	OverallScore     *float64 `json:"overall_score"`
	StrategicFit     *float64 `json:"strategic_fit"`
	AbilityToExecute *float64 `json:"ability_to_execute"`

	// Per-pillar top-level scores carried by the overview aggregate.
	PillarScores map[PillarType]*float64 `json:"pillar_scores,omitempty"`

	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PillarScore returns the overview's top-level score for a pillar.
func (c Company) PillarScore(p PillarType) *float64 {
	if c.PillarScores == nil {
		return nil
	}
	return c.PillarScores[p]
}

// Float returns a pointer to v. Handy for fixtures and tests.
func Float(v float64) *float64 {
	return &v
}

// FloatOr dereferences p, returning def when p is nil.
func FloatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
