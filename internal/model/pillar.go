package model

import "time"

// PillarType is one of the six fixed evaluation dimensions.
type PillarType string

const (
	PillarFinance       PillarType = "finance"
	PillarIndustry      PillarType = "industry"
	PillarIP            PillarType = "ip"
	PillarManufacturing PillarType = "manufacturing"
	PillarOwnership     PillarType = "ownership"
	PillarHydrogen      PillarType = "hydrogen"

	// PillarOverview is the pseudo-pillar aggregating one representative
	// score per real pillar. It has no backing table.
	PillarOverview PillarType = "overview"
)

// Pillars lists the real pillars in their fixed presentation order.
var Pillars = []PillarType{
	PillarFinance,
	PillarIndustry,
	PillarIP,
	PillarManufacturing,
	PillarOwnership,
	PillarHydrogen,
}

// Valid reports whether p is one of the six real pillars.
func (p PillarType) Valid() bool {
	for _, known := range Pillars {
		if p == known {
			return true
		}
	}
	return false
}

// Title is the human label used in reports and charts.
func (p PillarType) Title() string {
	switch p {
	case PillarFinance:
		return "Finance"
	case PillarIndustry:
		return "Industry"
	case PillarIP:
		return "Intellectual Property"
	case PillarManufacturing:
		return "Manufacturing"
	case PillarOwnership:
		return "Ownership"
	case PillarHydrogen:
		return "Hydrogen"
	case PillarOverview:
		return "Overview"
	default:
		return string(p)
	}
}

// PillarScore is the uniform shape of one company's score on one pillar.
type PillarScore struct {
	CompanyKey     string     `json:"key"`
	Pillar         PillarType `json:"pillar"`
	Score          *float64   `json:"score"`
	Rationale      string     `json:"rationale,omitempty"`
	TopFeatures    []string   `json:"top_features"`
	EvaluationDate *time.Time `json:"evaluation_date,omitempty"`
	SourceURL      string     `json:"source_url,omitempty"`
	LastVerifiedAt *time.Time `json:"last_verified_at,omitempty"`
}

// FinanceSubScores are the finance pillar's named sub-scores.
type FinanceSubScores struct {
	Revenue            *float64 `json:"revenue_score"`
	ThreeYearGrowth    *float64 `json:"3Y_score"`
	NetProfit          *float64 `json:"netProfitScore"`
	InvestmentCapacity *float64 `json:"investCapacityScore"`
	OverallRating      *float64 `json:"overallRating"`
}

// IndustrySubScores are the industry pillar's named sub-scores. The
// pillar has no separate overall rating; its top-level score plays that role.
type IndustrySubScores struct {
	CoreBusiness *float64 `json:"core_business_score"`
	Technology   *float64 `json:"technology_score"`
	Market       *float64 `json:"market_score"`
}

// IPSubScores are the IP pillar's named sub-scores.
type IPSubScores struct {
	RelevantPatents *float64 `json:"IPRelevantPatentsScore"`
	Citations       *float64 `json:"IPCeresCitationsScore"`
	PortfolioGrowth *float64 `json:"IPPortfolioGrowthScore"`
	FilingRecency   *float64 `json:"IPFilingRecencyScore"`
	OverallRating   *float64 `json:"IPOverallRating"`
}

// ManufacturingSubScores are the manufacturing pillar's named sub-scores.
type ManufacturingSubScores struct {
	Materials     *float64 `json:"ManufacturingMaterialsScore"`
	Scale         *float64 `json:"ManufacturingScaleScore"`
	Quality       *float64 `json:"ManufacturingQualityScore"`
	SupplyChain   *float64 `json:"ManufacturingSupplyChainScore"`
	RD            *float64 `json:"ManufacturingRDScore"`
	OverallRating *float64 `json:"ManufacturingOverallRating"`
}

// OwnershipSubScores are the ownership pillar's named sub-scores.
type OwnershipSubScores struct {
	Type           *float64 `json:"OwnershipTypeScore"`
	DecisionMaking *float64 `json:"OwnershipDecisionMakingScore"`
	Alignment      *float64 `json:"OwnershipAlignmentScore"`
	Partnerships   *float64 `json:"OwnershipPartnershipsScore"`
	OverallRating  *float64 `json:"OwnershipOverallRating"`
}

// HydrogenSubScores are the hydrogen pillar's named sub-scores.
type HydrogenSubScores struct {
	InvestmentFocus *float64 `json:"H2investScore"`
	Partners        *float64 `json:"H2partnersScore"`
	Technology      *float64 `json:"H2TechScore"`
	Commitment      *float64 `json:"H2CommitScore"`
	Participation   *float64 `json:"H2ParticipationScore"`
	OverallRating   *float64 `json:"H2OverallRating"`
}

// OverviewSubScores holds one representative score per real pillar.
type OverviewSubScores struct {
	Finance       float64 `json:"finance"`
	Industry      float64 `json:"industry"`
	IP            float64 `json:"ip"`
	Manufacturing float64 `json:"manufacturing"`
	Ownership     float64 `json:"ownership"`
	Hydrogen      float64 `json:"hydrogen"`
}

// SubScores is a variant keyed by pillar type: exactly the field matching
// the owning DetailedPillarScore's pillar is set.
type SubScores struct {
	Finance       *FinanceSubScores       `json:"finance,omitempty"`
	Industry      *IndustrySubScores      `json:"industry,omitempty"`
	IP            *IPSubScores            `json:"ip,omitempty"`
	Manufacturing *ManufacturingSubScores `json:"manufacturing,omitempty"`
	Ownership     *OwnershipSubScores     `json:"ownership,omitempty"`
	Hydrogen      *HydrogenSubScores      `json:"hydrogen,omitempty"`
	Overview      *OverviewSubScores      `json:"overview,omitempty"`
}

// DetailedPillarScore is a PillarScore plus the pillar's named sub-scores.
type DetailedPillarScore struct {
	PillarScore
	SubScores SubScores `json:"sub_scores"`
}

// SubScore is one named sub-score value, keyed by its backend column.
type SubScore struct {
	Field string   `json:"field"`
	Value *float64 `json:"value"`
}

// Values returns the finance sub-scores in dictionary order.
func (s FinanceSubScores) Values() []SubScore {
	return []SubScore{
		{"revenue_score", s.Revenue},
		{"3Y_score", s.ThreeYearGrowth},
		{"netProfitScore", s.NetProfit},
		{"investCapacityScore", s.InvestmentCapacity},
		{"overallRating", s.OverallRating},
	}
}

// Values returns the industry sub-scores in dictionary order.
func (s IndustrySubScores) Values() []SubScore {
	return []SubScore{
		{"core_business_score", s.CoreBusiness},
		{"technology_score", s.Technology},
		{"market_score", s.Market},
	}
}

// Values returns the IP sub-scores in dictionary order.
func (s IPSubScores) Values() []SubScore {
	return []SubScore{
		{"IPRelevantPatentsScore", s.RelevantPatents},
		{"IPCeresCitationsScore", s.Citations},
		{"IPPortfolioGrowthScore", s.PortfolioGrowth},
		{"IPFilingRecencyScore", s.FilingRecency},
		{"IPOverallRating", s.OverallRating},
	}
}

// Values returns the manufacturing sub-scores in dictionary order.
func (s ManufacturingSubScores) Values() []SubScore {
	return []SubScore{
		{"ManufacturingMaterialsScore", s.Materials},
		{"ManufacturingScaleScore", s.Scale},
		{"ManufacturingQualityScore", s.Quality},
		{"ManufacturingSupplyChainScore", s.SupplyChain},
		{"ManufacturingRDScore", s.RD},
		{"ManufacturingOverallRating", s.OverallRating},
	}
}

// Values returns the ownership sub-scores in dictionary order.
func (s OwnershipSubScores) Values() []SubScore {
	return []SubScore{
		{"OwnershipTypeScore", s.Type},
		{"OwnershipDecisionMakingScore", s.DecisionMaking},
		{"OwnershipAlignmentScore", s.Alignment},
		{"OwnershipPartnershipsScore", s.Partnerships},
		{"OwnershipOverallRating", s.OverallRating},
	}
}

// Values returns the hydrogen sub-scores in dictionary order.
func (s HydrogenSubScores) Values() []SubScore {
	return []SubScore{
		{"H2investScore", s.InvestmentFocus},
		{"H2partnersScore", s.Partners},
		{"H2TechScore", s.Technology},
		{"H2CommitScore", s.Commitment},
		{"H2ParticipationScore", s.Participation},
		{"H2OverallRating", s.OverallRating},
	}
}

// Get returns the overview value for a real pillar.
func (o OverviewSubScores) Get(p PillarType) float64 {
	switch p {
	case PillarFinance:
		return o.Finance
	case PillarIndustry:
		return o.Industry
	case PillarIP:
		return o.IP
	case PillarManufacturing:
		return o.Manufacturing
	case PillarOwnership:
		return o.Ownership
	case PillarHydrogen:
		return o.Hydrogen
	default:
		return 0
	}
}

// Set stores the overview value for a real pillar. Unknown pillars are ignored.
func (o *OverviewSubScores) Set(p PillarType, v float64) {
	switch p {
	case PillarFinance:
		o.Finance = v
	case PillarIndustry:
		o.Industry = v
	case PillarIP:
		o.IP = v
	case PillarManufacturing:
		o.Manufacturing = v
	case PillarOwnership:
		o.Ownership = v
	case PillarHydrogen:
		o.Hydrogen = v
	}
}

// Values returns the sub-scores of the variant selected by p, in dictionary
// order. It returns nil when p's variant is not set. The overview variant is
// reported with one entry per real pillar, keyed by pillar name.
func (s SubScores) Values(p PillarType) []SubScore {
	switch p {
	case PillarFinance:
		if s.Finance != nil {
			return s.Finance.Values()
		}
	case PillarIndustry:
		if s.Industry != nil {
			return s.Industry.Values()
		}
	case PillarIP:
		if s.IP != nil {
			return s.IP.Values()
		}
	case PillarManufacturing:
		if s.Manufacturing != nil {
			return s.Manufacturing.Values()
		}
	case PillarOwnership:
		if s.Ownership != nil {
			return s.Ownership.Values()
		}
	case PillarHydrogen:
		if s.Hydrogen != nil {
			return s.Hydrogen.Values()
		}
	case PillarOverview:
		if s.Overview != nil {
			out := make([]SubScore, 0, len(Pillars))
			for _, pt := range Pillars {
				v := s.Overview.Get(pt)
				out = append(out, SubScore{Field: string(pt), Value: &v})
			}
			return out
		}
	}
	return nil
}
