package chart

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/fields"
	"github.com/sells-group/targets-navigator/internal/model"
)

// ErrSeriesMismatch is returned when radar values and labels differ in length.
var ErrSeriesMismatch = eris.New("radar values and labels differ in length")

// RadarSeries is a closed polygon: the first point is repeated at the end.
type RadarSeries struct {
	Name   string    `json:"name,omitempty"`
	Values []float64 `json:"values"`
	Labels []string  `json:"labels"`
	Color  string    `json:"color,omitempty"`
}

// Radar closes the polygon described by values and labels. Empty input
// yields an empty series.
func Radar(values []float64, labels []string) (RadarSeries, error) {
	if len(values) != len(labels) {
		return RadarSeries{}, eris.Wrapf(ErrSeriesMismatch, "chart: radar %d values, %d labels", len(values), len(labels))
	}
	if len(values) == 0 {
		return RadarSeries{Values: []float64{}, Labels: []string{}}, nil
	}

	s := RadarSeries{
		Values: make([]float64, 0, len(values)+1),
		Labels: make([]string, 0, len(labels)+1),
	}
	s.Values = append(append(s.Values, values...), values[0])
	s.Labels = append(append(s.Labels, labels...), labels[0])
	return s, nil
}

// DetailRadar plots a pillar's defined sub-scores. Missing sub-scores are
// omitted rather than zero-filled. Overview scores are plotted as-is.
func DetailRadar(d model.DetailedPillarScore) (RadarSeries, error) {
	var (
		values []float64
		labels []string
	)
	for _, sv := range d.SubScores.Values(d.Pillar) {
		if sv.Value == nil {
			continue
		}
		values = append(values, *sv.Value)
		labels = append(labels, fields.SubLabel(d.Pillar, sv.Field))
	}

	s, err := Radar(values, labels)
	if err != nil {
		return RadarSeries{}, err
	}
	s.Name = d.Pillar.Title()
	return s, nil
}

// OverviewRadar always plots six spokes, one per real pillar.
func OverviewRadar(ov model.DetailedPillarScore) (RadarSeries, error) {
	if ov.SubScores.Overview == nil {
		return RadarSeries{}, eris.New("chart: overview radar needs overview sub-scores")
	}
	values := make([]float64, 0, len(model.Pillars))
	labels := make([]string, 0, len(model.Pillars))
	for _, pt := range model.Pillars {
		values = append(values, ov.SubScores.Overview.Get(pt))
		labels = append(labels, pt.Title())
	}

	s, err := Radar(values, labels)
	if err != nil {
		return RadarSeries{}, err
	}
	s.Name = model.PillarOverview.Title()
	return s, nil
}

// CompareRadar builds one closed trace per company across the six pillars.
// scores is keyed by company key; a missing pillar score plots as 0. Only
// companies in selected are drawn, in selected order.
func CompareRadar(companies []model.Company, scores map[string][]model.PillarScore, selected []string) ([]RadarSeries, error) {
	byKey := make(map[string]model.Company, len(companies))
	for _, c := range companies {
		byKey[c.Key] = c
	}

	labels := make([]string, 0, len(model.Pillars))
	for _, pt := range model.Pillars {
		labels = append(labels, pt.Title())
	}

	out := make([]RadarSeries, 0, len(selected))
	for i, key := range selected {
		c, ok := byKey[key]
		if !ok {
			continue
		}
		byPillar := make(map[model.PillarType]*float64, len(model.Pillars))
		for _, ps := range scores[key] {
			byPillar[ps.Pillar] = ps.Score
		}

		values := make([]float64, 0, len(model.Pillars))
		for _, pt := range model.Pillars {
			v := byPillar[pt]
			if v == nil {
				v = c.PillarScore(pt)
			}
			values = append(values, model.FloatOr(v, 0))
		}

		s, err := Radar(values, labels)
		if err != nil {
			return nil, err
		}
		s.Name = c.Name
		s.Color = SeriesColor(i)
		out = append(out, s)
	}
	return out, nil
}
