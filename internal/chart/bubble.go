// Package chart shapes company data into plot-ready series.
package chart

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/model"
)

// Default bubble diameter range in pixels.
const (
	DefaultMinSize = 10.0
	DefaultMaxSize = 50.0
)

// Selection styling.
const (
	OpacitySelected   = 1.0
	OpacityUnselected = 0.3
	LineSelected      = 3.0
	LineDefault       = 1.0
)

// Field selects a company attribute for a chart axis.
type Field string

const (
	FieldOverallScore     Field = "overall_score"
	FieldStrategicFit     Field = "strategic_fit"
	FieldAbilityToExecute Field = "ability_to_execute"
	FieldRevenue          Field = "revenue"
	FieldTier             Field = "tier"
	FieldGeography        Field = "geography"
	FieldRankingCategory  Field = "ranking_category"
	FieldIndustry         Field = "industry"
)

// ErrUnknownField is returned for an unrecognised chart field.
var ErrUnknownField = eris.New("unknown chart field")

// ParseField accepts a metric name, a categorical attribute or a pillar name.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FieldOverallScore, FieldStrategicFit, FieldAbilityToExecute, FieldRevenue,
		FieldTier, FieldGeography, FieldRankingCategory, FieldIndustry:
		return f, nil
	}
	if model.PillarType(f).Valid() {
		return f, nil
	}
	return "", eris.Wrapf(ErrUnknownField, "chart: field %q", s)
}

// Value reads the field from c: *float64 for metrics, string for
// categorical attributes. Missing metrics are a nil *float64.
func (f Field) Value(c model.Company) any {
	switch f {
	case FieldOverallScore:
		return c.OverallScore
	case FieldStrategicFit:
		return c.StrategicFit
	case FieldAbilityToExecute:
		return c.AbilityToExecute
	case FieldRevenue:
		return c.Revenue
	case FieldTier:
		return string(c.Tier)
	case FieldGeography:
		return c.Geography
	case FieldRankingCategory:
		return c.RankingCategory
	case FieldIndustry:
		return c.Industry
	default:
		return c.PillarScore(model.PillarType(f))
	}
}

// Number returns the field as a number, or nil when missing or categorical.
func (f Field) Number(c model.Company) *float64 {
	if v, ok := f.Value(c).(*float64); ok {
		return v
	}
	return nil
}

// BubbleSpec chooses the four channels of a bubble chart.
type BubbleSpec struct {
	X, Y, Size, Color Field
	MinSize, MaxSize  float64
}

// BubblePoint is one company on the bubble chart.
type BubblePoint struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	X          *float64 `json:"x"`
	Y          *float64 `json:"y"`
	Size       float64  `json:"size"`
	ColorValue *float64 `json:"color_value,omitempty"`
	Category   string   `json:"category,omitempty"`
	Color      string   `json:"color,omitempty"`
	Opacity    float64  `json:"opacity"`
	LineWidth  float64  `json:"line_width"`
	Hover      string   `json:"hover"`
}

// BubbleSeries is the bubble chart for the displayed company set.
type BubbleSeries struct {
	Points []BubblePoint `json:"points"`

	// NumericColor is true when colour is a continuous scale over
	// ColorValue; otherwise Color carries a category colour.
	NumericColor bool              `json:"numeric_color"`
	Categories   map[string]string `json:"categories,omitempty"`
}

// Bubble lays out one point per company. Sizes are rescaled over the given
// set into [MinSize, MaxSize]; selection is shown through opacity and line
// width, and an empty selection leaves every point fully opaque.
func Bubble(companies []model.Company, spec BubbleSpec, selected []string) BubbleSeries {
	if spec.MinSize == 0 && spec.MaxSize == 0 {
		spec.MinSize, spec.MaxSize = DefaultMinSize, DefaultMaxSize
	}

	raw := make([]*float64, len(companies))
	for i, c := range companies {
		raw[i] = spec.Size.Number(c)
	}
	sizes := ScaleSizes(raw, spec.MinSize, spec.MaxSize)

	numeric := isNumeric(companies, spec.Color)
	var categories map[string]string
	if !numeric {
		categories = categoryColors(companies, spec.Color)
	}

	series := BubbleSeries{
		Points:       make([]BubblePoint, 0, len(companies)),
		NumericColor: numeric,
		Categories:   categories,
	}
	for i, c := range companies {
		p := BubblePoint{
			Key:       c.Key,
			Name:      c.Name,
			X:         spec.X.Number(c),
			Y:         spec.Y.Number(c),
			Size:      sizes[i],
			Opacity:   OpacitySelected,
			LineWidth: LineDefault,
		}
		if numeric {
			p.ColorValue = spec.Color.Number(c)
		} else {
			p.Category = category(spec.Color.Value(c))
			p.Color = categories[p.Category]
		}
		if len(selected) > 0 {
			if slices.Contains(selected, c.Key) {
				p.LineWidth = LineSelected
			} else {
				p.Opacity = OpacityUnselected
			}
		}
		p.Hover = hover(c, spec)
		series.Points = append(series.Points, p)
	}
	return series
}

// ScaleSizes maps raw values linearly onto [minSize, maxSize] relative to
// the defined values in the set. When every defined value is equal, each
// point gets the midpoint. Missing values get minSize.
func ScaleSizes(raw []*float64, minSize, maxSize float64) []float64 {
	out := make([]float64, len(raw))

	var lo, hi float64
	seen := false
	for _, v := range raw {
		if v == nil {
			continue
		}
		if !seen || *v < lo {
			lo = *v
		}
		if !seen || *v > hi {
			hi = *v
		}
		seen = true
	}

	mid := minSize + (maxSize-minSize)/2
	for i, v := range raw {
		switch {
		case v == nil:
			out[i] = minSize
		case hi == lo:
			out[i] = mid
		default:
			out[i] = minSize + (*v-lo)/(hi-lo)*(maxSize-minSize)
		}
	}
	return out
}

// isNumeric reports whether every defined colour value is a number and at
// least one is defined.
func isNumeric(companies []model.Company, f Field) bool {
	defined := false
	for _, c := range companies {
		switch v := f.Value(c).(type) {
		case *float64:
			if v != nil {
				defined = true
			}
		case string:
			if v != "" {
				return false
			}
		}
	}
	return defined
}

func category(v any) string {
	switch x := v.(type) {
	case string:
		if x == "" {
			return string(model.TierUnknown)
		}
		return x
	case *float64:
		if x == nil {
			return string(model.TierUnknown)
		}
		return fmt.Sprintf("%g", *x)
	}
	return string(model.TierUnknown)
}

func categoryColors(companies []model.Company, f Field) map[string]string {
	var cats []string
	for _, c := range companies {
		cat := category(f.Value(c))
		if !slices.Contains(cats, cat) {
			cats = append(cats, cat)
		}
	}
	slices.Sort(cats)

	out := make(map[string]string, len(cats))
	for i, cat := range cats {
		if f == FieldTier {
			out[cat] = TierColor(model.Tier(cat))
			continue
		}
		out[cat] = SeriesColor(i)
	}
	return out
}

func hover(c model.Company, spec BubbleSpec) string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, f := range []Field{spec.X, spec.Y, spec.Size} {
		fmt.Fprintf(&b, "<br>%s: %s", f, display(f.Value(c)))
	}
	fmt.Fprintf(&b, "<br>Tier: %s", c.Tier)
	return b.String()
}

func display(v any) string {
	switch x := v.(type) {
	case *float64:
		if x == nil {
			return "N/A"
		}
		return fmt.Sprintf("%.1f", *x)
	case string:
		if x == "" {
			return "N/A"
		}
		return x
	}
	return "N/A"
}
