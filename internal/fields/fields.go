// Package fields maps pillar types to the backend tables and columns that
// hold their scores.
package fields

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/model"
)

// ErrUnknownPillarType is returned for anything outside the six pillars.
var ErrUnknownPillarType = eris.New("unknown pillar type")

// Columns shared by every pillar table.
const (
	KeyColumn          = "key"
	SourceURLColumn    = "source_url"
	LastVerifiedColumn = "last_verified_at"
)

// SubField is one named sub-score column of a pillar table.
type SubField struct {
	Column string
	Label  string
}

// Pillar describes where one pillar's data lives.
type Pillar struct {
	Type                model.PillarType
	Table               string
	ScoreField          string
	RationaleField      string
	FeaturesField       string
	EvaluationDateField string

	// OverallField is the designated overall-rating column. Empty for
	// industry, whose top-level score is its overall rating.
	OverallField string
	SubFields    []SubField
}

// Columns returns the projection needed to normalize a row of this pillar.
func (p Pillar) Columns() []string {
	cols := []string{
		KeyColumn, p.ScoreField, p.RationaleField, p.FeaturesField, p.EvaluationDateField,
		SourceURLColumn, LastVerifiedColumn,
	}
	for _, sf := range p.SubFields {
		cols = append(cols, sf.Column)
	}
	return cols
}

// Label returns the display label for a sub-score column, or the column
// itself when unknown.
func (p Pillar) Label(column string) string {
	for _, sf := range p.SubFields {
		if sf.Column == column {
			return sf.Label
		}
	}
	return column
}

var dictionary = map[model.PillarType]Pillar{
	model.PillarFinance: {
		Type:                model.PillarFinance,
		Table:               "company_financial",
		ScoreField:          "finance_score",
		RationaleField:      "financialSummary",
		FeaturesField:       "financialReserach",
		EvaluationDateField: "evaluation_date",
		OverallField:        "overallRating",
		SubFields: []SubField{
			{"revenue_score", "Revenue"},
			{"3Y_score", "3Y Growth"},
			{"netProfitScore", "Profitability"},
			{"investCapacityScore", "Investment Capacity"},
			{"overallRating", "Overall Rating"},
		},
	},
	model.PillarIndustry: {
		Type:                model.PillarIndustry,
		Table:               "companies_industry",
		ScoreField:          "industry_score",
		RationaleField:      "rationale",
		FeaturesField:       "industry_output",
		EvaluationDateField: "evaluation_date",
		SubFields: []SubField{
			{"core_business_score", "Core Business"},
			{"technology_score", "Technology"},
			{"market_score", "Market Position"},
		},
	},
	model.PillarIP: {
		Type:                model.PillarIP,
		Table:               "companies_ip_revision",
		ScoreField:          "IPActivityScore",
		RationaleField:      "IPStrategySummary",
		FeaturesField:       "IPResearch",
		EvaluationDateField: "evaluationDate",
		OverallField:        "IPOverallRating",
		SubFields: []SubField{
			{"IPRelevantPatentsScore", "Relevant Patents"},
			{"IPCeresCitationsScore", "Ceres Citations"},
			{"IPPortfolioGrowthScore", "Portfolio Growth"},
			{"IPFilingRecencyScore", "Filing Recency"},
			{"IPOverallRating", "Overall Rating"},
		},
	},
	model.PillarManufacturing: {
		Type:                model.PillarManufacturing,
		Table:               "companies_manufacturing",
		ScoreField:          "manufacturing_score",
		RationaleField:      "ManufacturingSummary",
		FeaturesField:       "ManufacturingResearch",
		EvaluationDateField: "EvaluationDate",
		OverallField:        "ManufacturingOverallRating",
		SubFields: []SubField{
			{"ManufacturingMaterialsScore", "Materials"},
			{"ManufacturingScaleScore", "Scale"},
			{"ManufacturingQualityScore", "Quality"},
			{"ManufacturingSupplyChainScore", "Supply Chain"},
			{"ManufacturingRDScore", "R&D"},
			{"ManufacturingOverallRating", "Overall Rating"},
		},
	},
	model.PillarOwnership: {
		Type:                model.PillarOwnership,
		Table:               "companies_ownership",
		ScoreField:          "OwnershipScore",
		RationaleField:      "OwnershipSummary",
		FeaturesField:       "OwnershipResearch",
		EvaluationDateField: "EvaluationDate",
		OverallField:        "OwnershipOverallRating",
		SubFields: []SubField{
			{"OwnershipTypeScore", "Type"},
			{"OwnershipDecisionMakingScore", "Decision Making"},
			{"OwnershipAlignmentScore", "Alignment"},
			{"OwnershipPartnershipsScore", "Partnerships"},
			{"OwnershipOverallRating", "Overall Rating"},
		},
	},
	model.PillarHydrogen: {
		Type:                model.PillarHydrogen,
		Table:               "companies_hydrogen",
		ScoreField:          "H2Score",
		RationaleField:      "H2Summary",
		FeaturesField:       "H2Research",
		EvaluationDateField: "EvaluationDate",
		OverallField:        "H2OverallRating",
		SubFields: []SubField{
			{"H2investScore", "Investment Focus"},
			{"H2partnersScore", "Partnerships"},
			{"H2TechScore", "Technology"},
			{"H2CommitScore", "Commitment"},
			{"H2ParticipationScore", "Participation"},
			{"H2OverallRating", "Overall Rating"},
		},
	},
}

// Lookup returns the dictionary entry for pt.
func Lookup(pt model.PillarType) (Pillar, error) {
	p, ok := dictionary[pt]
	if !ok {
		return Pillar{}, eris.Wrapf(ErrUnknownPillarType, "fields: lookup %q", pt)
	}
	return p, nil
}

// MustLookup is Lookup for callers iterating model.Pillars.
func MustLookup(pt model.PillarType) Pillar {
	p, err := Lookup(pt)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse maps user input (case-insensitive pillar name or table name) to a
// pillar type. "overview" is accepted since it addresses the aggregate radar.
func Parse(s string) (model.PillarType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == string(model.PillarOverview) {
		return model.PillarOverview, nil
	}
	for _, pt := range model.Pillars {
		p := dictionary[pt]
		if norm == string(pt) || norm == p.Table {
			return pt, nil
		}
	}
	return "", eris.Wrapf(ErrUnknownPillarType, "fields: parse %q", s)
}

// SubLabel returns the display label for a sub-score column of pt. For the
// overview pseudo-pillar the column is a pillar name.
func SubLabel(pt model.PillarType, column string) string {
	if pt == model.PillarOverview {
		return model.PillarType(column).Title()
	}
	p, ok := dictionary[pt]
	if !ok {
		return column
	}
	return p.Label(column)
}
