package model

import "slices"

// Dimension names one filterable attribute of a company.
type Dimension string

const (
	DimCountries         Dimension = "countries"
	DimTiers             Dimension = "tiers"
	DimRevenueBands      Dimension = "revenue_bands"
	DimRankingCategories Dimension = "ranking_categories"
	DimIndustries        Dimension = "industries"
	DimTags              Dimension = "tags"
)

// Dimensions lists every set-valued filter dimension.
var Dimensions = []Dimension{
	DimCountries,
	DimTiers,
	DimRevenueBands,
	DimRankingCategories,
	DimIndustries,
	DimTags,
}

// CompanyFilters restricts a company list. Each set-valued dimension is an
// OR over its values; dimensions combine by AND. An empty set imposes no
// restriction.
type CompanyFilters struct {
	Countries         []string `json:"countries,omitempty" yaml:"countries"`
	Tiers             []string `json:"tiers,omitempty" yaml:"tiers"`
	RevenueBands      []string `json:"revenue_bands,omitempty" yaml:"revenue_bands"`
	RankingCategories []string `json:"ranking_categories,omitempty" yaml:"ranking_categories"`
	Industries        []string `json:"industries,omitempty" yaml:"industries"`
	Tags              []string `json:"tags,omitempty" yaml:"tags"`

	MinScore *float64 `json:"min_score,omitempty" yaml:"min_score"`
	MaxScore *float64 `json:"max_score,omitempty" yaml:"max_score"`
}

// Values returns the value set of a dimension.
func (f CompanyFilters) Values(d Dimension) []string {
	switch d {
	case DimCountries:
		return f.Countries
	case DimTiers:
		return f.Tiers
	case DimRevenueBands:
		return f.RevenueBands
	case DimRankingCategories:
		return f.RankingCategories
	case DimIndustries:
		return f.Industries
	case DimTags:
		return f.Tags
	default:
		return nil
	}
}

func (f *CompanyFilters) set(d Dimension, values []string) {
	switch d {
	case DimCountries:
		f.Countries = values
	case DimTiers:
		f.Tiers = values
	case DimRevenueBands:
		f.RevenueBands = values
	case DimRankingCategories:
		f.RankingCategories = values
	case DimIndustries:
		f.Industries = values
	case DimTags:
		f.Tags = values
	}
}

// Select replaces the value set of d with the single value v. Choosing a new
// value for a dimension never appends to the previous selection.
func (f *CompanyFilters) Select(d Dimension, v string) {
	f.set(d, []string{v})
}

// Clear removes any restriction on d.
func (f *CompanyFilters) Clear(d Dimension) {
	f.set(d, nil)
}

// Active reports whether any restriction is set.
func (f CompanyFilters) Active() bool {
	return f.ActiveCount() > 0
}

// ActiveCount counts selected values across dimensions plus each score bound.
func (f CompanyFilters) ActiveCount() int {
	n := 0
	for _, d := range Dimensions {
		n += len(f.Values(d))
	}
	if f.MinScore != nil {
		n++
	}
	if f.MaxScore != nil {
		n++
	}
	return n
}

// Validate returns a copy of f keeping only values known to opts. Tags are
// free-form and only lose empty entries; score bounds outside [0,10] are dropped.
func (f CompanyFilters) Validate(opts FilterOptions) CompanyFilters {
	out := CompanyFilters{
		Countries:         keepKnown(f.Countries, opts.Countries),
		Tiers:             keepKnown(f.Tiers, opts.Tiers),
		RevenueBands:      keepKnown(f.RevenueBands, opts.RevenueBands),
		RankingCategories: keepKnown(f.RankingCategories, opts.RankingCategories),
		Industries:        keepKnown(f.Industries, opts.Industries),
	}
	for _, tag := range f.Tags {
		if tag != "" {
			out.Tags = append(out.Tags, tag)
		}
	}
	if f.MinScore != nil && *f.MinScore >= 0 && *f.MinScore <= 10 {
		out.MinScore = f.MinScore
	}
	if f.MaxScore != nil && *f.MaxScore >= 0 && *f.MaxScore <= 10 {
		out.MaxScore = f.MaxScore
	}
	return out
}

func keepKnown(values, known []string) []string {
	var out []string
	for _, v := range values {
		if slices.Contains(known, v) {
			out = append(out, v)
		}
	}
	return out
}

// FilterOptions enumerates the values offered for each dimension.
type FilterOptions struct {
	Countries         []string `json:"countries"`
	Tiers             []string `json:"tiers"`
	RevenueBands      []string `json:"revenue_bands"`
	RankingCategories []string `json:"ranking_categories"`
	Industries        []string `json:"industries"`
}

// DefaultFilterOptions returns the stock option lists. Revenue band labels
// must match the configured bands.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Countries: []string{
			"USA", "China", "Germany", "Japan", "United Kingdom", "Canada", "Australia",
			"France", "Netherlands", "South Korea", "Italy", "Spain", "Sweden", "Switzerland",
			"Norway", "Denmark", "Belgium", "Austria", "Brazil", "India", "Singapore",
		},
		Tiers: []string{"Tier 1", "Tier 2", "Tier 3", "Tier 4", "Partner"},
		RevenueBands: []string{
			"< $1M", "$1M - $10M", "$10M - $100M", "$100M - $1B", "> $1B", "Unknown",
		},
		RankingCategories: rankingCategories,
		Industries: []string{
			"Technology", "Manufacturing", "Energy", "Automotive", "Healthcare",
			"Finance", "Retail", "Telecommunications", "Aerospace", "Chemicals",
		},
	}
}

var rankingCategories = []string{
	"Advanced Electronics Manufacturing & Supply Chain Solutions",
	"Advanced Manufacturing & Clean Energy Technology",
	"Advanced Manufacturing & Electronics Components",
	"Advanced Manufacturing & Electronics Leaders",
	"Advanced Manufacturing & Mobility",
	"Advanced Manufacturing & Mobility Technology",
	"Advanced Materials & Specialty Manufacturing",
	"Automotive & Advanced Component Manufacturers",
	"Automotive & Mobility Giants",
	"Automotive Components & Thermal Systems",
	"Automotive Technology & Clean Mobility Solutions",
	"Data Center Infrastructure & Power Management",
	"Data Centers & Telecommunications",
	"Electronics & Advanced Manufacturing",
	"Electronics & Advanced Materials Manufacturer",
	"Electronics & Systems Integrators",
	"Energy & Engineering",
	"Environmental Protection & Industrial Equipment",
	"Established Power Systems & Energy Majors",
	"Fuel Cells & Hydrogen Transportation",
	"Green Hydrogen & Fuel Cell Technology Provider",
	"Green Hydrogen & Industrial Gas Producers",
	"Green Hydrogen Production",
	"Green Hydrogen Production & Advanced Materials",
	"Green Hydrogen Production & Electrolyzer Manufacturer",
	"Green Hydrogen Production & Electrolyzers",
	"Green Hydrogen Production and Industrial Power & Utility Scale",
	"Heavy Industry & Advanced Materials Manufacturing",
	"Heavy Industry & Energy Engineering",
	"Heavy Industry & Mobility OEMs",
	"Independent Power Producers & System Integrators",
	"Industrial & Advanced Materials Manufacturer",
	"Industrial & Energy Conglomerate",
	"Industrial & Energy Partnership",
	"Industrial & Heavy Industry",
	"Industrial & Heavy Industry Conglomerate",
	"Industrial Automation & Electronics",
	"Industrial Conglomerate & Energy Integrator",
	"Industrial Conglomerate & Energy Solutions Provider",
	"Industrial Conglomerates & Advanced Manufacturing",
	"Industrial Conglomerates & Clean Energy Solutions Provider",
	"Industrial Conglomerates & Downstream Manufacturers",
	"Industrial Conglomerates & Energy Infrastructure",
	"Industrial Conglomerates & Energy Majors",
	"Industrial Conglomerates & Materials Manufacturing",
	"Industrial Engineering & Consulting Services",
	"Industrial Gas & Energy Utility",
	"Industrial Gas conglomerate",
	"Industrial Manufacturing",
	"Industrial Manufacturing - Construction Machinery",
	"Industrial Manufacturing - Energy & Petrochemical",
	"Industrial Manufacturing - Fertilizer Production and Environmental Technologies",
	"Industrial Manufacturing - Petrochemicals",
	"Industrial Manufacturing - Shipbuilding and Offshore Engineering",
	"Industrial Manufacturing & Heavy Equipment Manufacturing",
	"Industrial Power",
	"Industrial Power & Electrical Equipment Manufacturing",
	"Industrial Power & Energy Equipment Manufacturer",
	"Industrial Power & Energy Holding Company",
	"Industrial Power & Energy Solutions",
	"Industrial Power & Heavy Equipment Manufacturer",
	"Industrial Power & Manufacturing",
	"Industrial Power & Marine & Defense Research and Development",
	"Industrial Power & Nuclear Energy",
	"Industrial Power & Transportation Manufacturing",
	"Industrial Power & Utility Scale",
	"Industrial Power & Utility Solutions",
	"Industrial Power Equipment Manufacturer",
	"National Energy Champions & Giga-Project Developers",
	"New Energy / Clean Energy Company",
	"Oil & Gas",
	"Oil & Gas / National Energy Champion",
	"Power & Thermal Equipment Manufacturers",
	"Power & Utility Infrastructure Provider",
	"Power & Utility Infrastructure Providers",
	"Power Generation & Utilities",
	"Power Management & Industrial Technology",
	"Renewable Energy",
	"Renewable Energy - Solar and Clean Power Solutions",
	"Renewable Energy (Solar PV Manufacturing)",
	"Renewable Energy & Energy Transition Consulting",
	"Renewable Energy & Hydrogen Solutions",
	"Renewable Energy & Power Electronics Manufacturer",
	"Renewable Energy & Solar Power",
	"Renewable Energy & Wind Power Manufacturer",
	"Renewable Energy and Integrated Power Solutions",
	"Renewable Energy Manufacturing",
	"Specialty Renewable Energy & Waste-to-Energy Solutions",
	"Steel Manufacturing and Heavy Industry",
}

