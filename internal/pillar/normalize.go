// Package pillar reshapes raw per-pillar backend rows into uniform scores.
package pillar

import (
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/fields"
	"github.com/sells-group/targets-navigator/internal/model"
)

// OverviewSentinel fills an overview spoke when a pillar has no numeric
// score, so the six-point polygon stays closed off the centre.
const OverviewSentinel = 0.1

// InsufficientAge is how old an evaluation may get before it no longer counts.
const InsufficientAge = 24 * 30 * 24 * time.Hour

// Record is one raw backend row keyed by column name.
type Record map[string]any

// NormalizeScore reshapes a raw pillar row into a PillarScore. The score is
// passed through unchanged, nil included.
func NormalizeScore(pt model.PillarType, rec Record) (model.PillarScore, error) {
	p, err := fields.Lookup(pt)
	if err != nil {
		return model.PillarScore{}, eris.Wrap(err, "pillar: normalize score")
	}
	return normalize(p, rec), nil
}

func normalize(p fields.Pillar, rec Record) model.PillarScore {
	return model.PillarScore{
		CompanyKey:     Text(rec[fields.KeyColumn]),
		Pillar:         p.Type,
		Score:          Float(rec[p.ScoreField]),
		Rationale:      Text(rec[p.RationaleField]),
		TopFeatures:    Features(rec[p.FeaturesField]),
		EvaluationDate: Time(rec[p.EvaluationDateField]),
		SourceURL:      Text(rec[fields.SourceURLColumn]),
		LastVerifiedAt: Time(rec[fields.LastVerifiedColumn]),
	}
}

// NormalizeDetailed reshapes a raw pillar row into a DetailedPillarScore
// carrying the pillar's typed sub-scores.
func NormalizeDetailed(pt model.PillarType, rec Record) (model.DetailedPillarScore, error) {
	p, err := fields.Lookup(pt)
	if err != nil {
		return model.DetailedPillarScore{}, eris.Wrap(err, "pillar: normalize detailed")
	}
	return model.DetailedPillarScore{
		PillarScore: normalize(p, rec),
		SubScores:   subScores(pt, rec),
	}, nil
}

func subScores(pt model.PillarType, rec Record) model.SubScores {
	f := func(col string) *float64 { return Float(rec[col]) }

	var s model.SubScores
	switch pt {
	case model.PillarFinance:
		s.Finance = &model.FinanceSubScores{
			Revenue:            f("revenue_score"),
			ThreeYearGrowth:    f("3Y_score"),
			NetProfit:          f("netProfitScore"),
			InvestmentCapacity: f("investCapacityScore"),
			OverallRating:      f("overallRating"),
		}
	case model.PillarIndustry:
		s.Industry = &model.IndustrySubScores{
			CoreBusiness: f("core_business_score"),
			Technology:   f("technology_score"),
			Market:       f("market_score"),
		}
	case model.PillarIP:
		s.IP = &model.IPSubScores{
			RelevantPatents: f("IPRelevantPatentsScore"),
			Citations:       f("IPCeresCitationsScore"),
			PortfolioGrowth: f("IPPortfolioGrowthScore"),
			FilingRecency:   f("IPFilingRecencyScore"),
			OverallRating:   f("IPOverallRating"),
		}
	case model.PillarManufacturing:
		s.Manufacturing = &model.ManufacturingSubScores{
			Materials:     f("ManufacturingMaterialsScore"),
			Scale:         f("ManufacturingScaleScore"),
			Quality:       f("ManufacturingQualityScore"),
			SupplyChain:   f("ManufacturingSupplyChainScore"),
			RD:            f("ManufacturingRDScore"),
			OverallRating: f("ManufacturingOverallRating"),
		}
	case model.PillarOwnership:
		s.Ownership = &model.OwnershipSubScores{
			Type:           f("OwnershipTypeScore"),
			DecisionMaking: f("OwnershipDecisionMakingScore"),
			Alignment:      f("OwnershipAlignmentScore"),
			Partnerships:   f("OwnershipPartnershipsScore"),
			OverallRating:  f("OwnershipOverallRating"),
		}
	case model.PillarHydrogen:
		s.Hydrogen = &model.HydrogenSubScores{
			InvestmentFocus: f("H2investScore"),
			Partners:        f("H2partnersScore"),
			Technology:      f("H2TechScore"),
			Commitment:      f("H2CommitScore"),
			Participation:   f("H2ParticipationScore"),
			OverallRating:   f("H2OverallRating"),
		}
	}
	return s
}

// Overview builds the overview pseudo-pillar from whichever detailed scores
// are available, filling gaps with OverviewSentinel.
func Overview(key string, details []model.DetailedPillarScore) model.DetailedPillarScore {
	return OverviewWithSentinel(key, details, OverviewSentinel)
}

// OverviewWithSentinel is Overview with an explicit fill value. For each
// real pillar, in fixed order, the representative value is the overall
// rating if numeric, else the first numeric sub-score, else the pillar's
// top-level score, else sentinel.
func OverviewWithSentinel(key string, details []model.DetailedPillarScore, sentinel float64) model.DetailedPillarScore {
	byPillar := make(map[model.PillarType]model.DetailedPillarScore, len(details))
	for _, d := range details {
		byPillar[d.Pillar] = d
	}

	ov := &model.OverviewSubScores{}
	for _, pt := range model.Pillars {
		v := sentinel
		if d, ok := byPillar[pt]; ok {
			if rep := Representative(d); rep != nil {
				v = *rep
			}
		}
		ov.Set(pt, v)
	}

	return model.DetailedPillarScore{
		PillarScore: model.PillarScore{
			CompanyKey:  key,
			Pillar:      model.PillarOverview,
			TopFeatures: []string{},
		},
		SubScores: model.SubScores{Overview: ov},
	}
}

// Representative picks the single value that stands for a pillar on the
// overview radar, or nil when the pillar has no numeric data at all.
func Representative(d model.DetailedPillarScore) *float64 {
	p, err := fields.Lookup(d.Pillar)
	if err != nil {
		return nil
	}
	vals := d.SubScores.Values(d.Pillar)
	if p.OverallField == "" {
		// The pillar's own top-level score is its overall rating.
		if d.Score != nil {
			return d.Score
		}
	} else {
		for _, sv := range vals {
			if sv.Field == p.OverallField && sv.Value != nil {
				return sv.Value
			}
		}
	}
	for _, sv := range vals {
		if sv.Value != nil {
			return sv.Value
		}
	}
	return d.Score
}

// ValidScore reports whether score is present and on the 0-10 scale.
func ValidScore(score *float64) bool {
	return score != nil && *score >= 0 && *score <= 10
}

// InsufficientData reports whether a score is missing or its evaluation is
// older than InsufficientAge as of now.
func InsufficientData(score *float64, evaluated *time.Time, now time.Time) bool {
	if score == nil {
		return true
	}
	if evaluated == nil {
		return false
	}
	return now.Sub(*evaluated) > InsufficientAge
}
