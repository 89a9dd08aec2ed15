package ranking

import (
	"slices"

	"github.com/sells-group/targets-navigator/internal/model"
)

// Band maps a revenue band label to the half-open range [Min, Max) in USD
// millions. A nil bound is unbounded on that side. IncludeUnknown makes the
// band also retain companies with no revenue figure.
type Band struct {
	Label          string   `mapstructure:"label" yaml:"label" json:"label"`
	Min            *float64 `mapstructure:"min" yaml:"min" json:"min,omitempty"`
	Max            *float64 `mapstructure:"max" yaml:"max" json:"max,omitempty"`
	IncludeUnknown bool     `mapstructure:"include_unknown" yaml:"include_unknown" json:"include_unknown"`
}

// Contains reports whether revenue falls in the band.
func (b Band) Contains(revenue *float64) bool {
	if revenue == nil {
		return b.IncludeUnknown
	}
	if b.Min != nil && *revenue < *b.Min {
		return false
	}
	if b.Max != nil && *revenue >= *b.Max {
		return false
	}
	return true
}

// Bands is an ordered set of revenue bands.
type Bands []Band

// DefaultBands returns the stock bands. Missing revenue is only retained by
// the explicit "Unknown" band, whose numeric range is empty.
func DefaultBands() Bands {
	f := model.Float
	return Bands{
		{Label: "< $1M", Max: f(1)},
		{Label: "$1M - $10M", Min: f(1), Max: f(10)},
		{Label: "$10M - $100M", Min: f(10), Max: f(100)},
		{Label: "$100M - $1B", Min: f(100), Max: f(1000)},
		{Label: "> $1B", Min: f(1000)},
		{Label: "Unknown", Min: f(0), Max: f(0), IncludeUnknown: true},
	}
}

// Lookup returns the band with the given label.
func (bs Bands) Lookup(label string) (Band, bool) {
	for _, b := range bs {
		if b.Label == label {
			return b, true
		}
	}
	return Band{}, false
}

// Select returns the bands named by labels, skipping unknown labels.
func (bs Bands) Select(labels []string) Bands {
	var out Bands
	for _, l := range labels {
		if b, ok := bs.Lookup(l); ok {
			out = append(out, b)
		}
	}
	return out
}

// Labels lists band labels in order.
func (bs Bands) Labels() []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Label
	}
	return out
}

// Classify returns the label of the first band containing revenue, or "".
func (bs Bands) Classify(revenue *float64) string {
	for _, b := range bs {
		if b.Contains(revenue) {
			return b.Label
		}
	}
	return ""
}

// Filter keeps the companies that satisfy every active dimension of f.
// Within a dimension any listed value matches. Order is preserved.
func Filter(companies []model.Company, f model.CompanyFilters, bands Bands) []model.Company {
	selected := bands.Select(f.RevenueBands)

	out := make([]model.Company, 0, len(companies))
	for _, c := range companies {
		if Matches(c, f, selected) {
			out = append(out, c)
		}
	}
	return out
}

// Matches reports whether c passes f. selected holds the resolved revenue
// bands for f.RevenueBands.
func Matches(c model.Company, f model.CompanyFilters, selected Bands) bool {
	if len(f.Countries) > 0 && !slices.Contains(f.Countries, c.Geography) {
		return false
	}
	if len(f.Tiers) > 0 && !tierIn(c.Tier, f.Tiers) {
		return false
	}
	if len(f.RankingCategories) > 0 && !slices.Contains(f.RankingCategories, c.RankingCategory) {
		return false
	}
	if len(f.Industries) > 0 && !slices.Contains(f.Industries, c.Industry) {
		return false
	}
	if len(f.Tags) > 0 && !slices.ContainsFunc(c.Tags, func(tag string) bool {
		return slices.Contains(f.Tags, tag)
	}) {
		return false
	}
	if len(f.RevenueBands) > 0 && !slices.ContainsFunc(selected, func(b Band) bool {
		return b.Contains(c.Revenue)
	}) {
		return false
	}
	if f.MinScore != nil && (c.OverallScore == nil || *c.OverallScore < *f.MinScore) {
		return false
	}
	if f.MaxScore != nil && (c.OverallScore == nil || *c.OverallScore > *f.MaxScore) {
		return false
	}
	return true
}

func tierIn(t model.Tier, values []string) bool {
	for _, v := range values {
		if model.ParseTier(v) == t {
			return true
		}
	}
	return false
}
