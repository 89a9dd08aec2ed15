package fields

import "github.com/sells-group/targets-navigator/internal/model"

// OverviewView is the company overview aggregate, one row per company.
const OverviewView = "company_overview"

// Overview view columns.
const (
	ColKey              = "key"
	ColName             = "englishName"
	ColWebsite          = "website"
	ColCountry          = "country"
	ColTicker           = "ticker"
	ColTier             = "Tier"
	ColRankingCategory  = "rankingCategory"
	ColIndustry         = "primaryMarket"
	ColRevenue          = "parentRevenue"
	ColStrategicFit     = "strategicFit"
	ColAbilityToExecute = "abilityToExecute"
	ColOverallScore     = "overallScore"
	ColTags             = "productTags"
)

// OverviewColumns lists the overview projection in scan order. The six
// per-pillar score columns follow, in model.Pillars order.
func OverviewColumns() []string {
	cols := []string{
		ColKey, ColName, ColWebsite, ColCountry, ColTicker, ColTier,
		ColRankingCategory, ColIndustry, ColRevenue, ColTags,
		ColStrategicFit, ColAbilityToExecute, ColOverallScore,
	}
	for _, pt := range model.Pillars {
		cols = append(cols, dictionary[pt].ScoreField)
	}
	return cols
}
