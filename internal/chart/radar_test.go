package chart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/pillar"
)

func TestRadarClosesPolygon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		labels []string
	}{
		{"single", []float64{4}, []string{"a"}},
		{"three", []float64{1, 2, 3}, []string{"a", "b", "c"}},
		{"six", []float64{1, 2, 3, 4, 5, 6}, []string{"a", "b", "c", "d", "e", "f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := Radar(tt.values, tt.labels)
			require.NoError(t, err)
			require.Len(t, s.Values, len(tt.values)+1)
			assert.Equal(t, s.Values[0], s.Values[len(s.Values)-1])
			assert.Equal(t, s.Labels[0], s.Labels[len(s.Labels)-1])
		})
	}
}

func TestRadarDoesNotAliasInput(t *testing.T) {
	t.Parallel()

	in := make([]float64, 2, 8)
	in[0], in[1] = 1, 2
	s, err := Radar(in, []string{"a", "b"})
	require.NoError(t, err)

	s.Values[0] = 99
	assert.Equal(t, 1.0, in[0])
}

func TestRadarEmptyAndMismatch(t *testing.T) {
	t.Parallel()

	s, err := Radar(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, s.Values)

	_, err = Radar([]float64{1, 2}, []string{"a"})
	assert.True(t, errors.Is(err, ErrSeriesMismatch))
}

func TestDetailRadarOmitsMissing(t *testing.T) {
	t.Parallel()

	d, err := pillar.NormalizeDetailed(model.PillarFinance, pillar.Record{
		"revenue_score": 6.0,
		"3Y_score":      nil,
		"overallRating": 8.0,
	})
	require.NoError(t, err)

	s, err := DetailRadar(d)
	require.NoError(t, err)
	assert.Equal(t, []string{"Revenue", "Overall Rating", "Revenue"}, s.Labels)
	assert.Equal(t, []float64{6, 8, 6}, s.Values)
	assert.Equal(t, "Finance", s.Name)
}

func TestOverviewRadarSixSpokes(t *testing.T) {
	t.Parallel()

	ov := pillar.Overview("acme", nil)
	s, err := OverviewRadar(ov)
	require.NoError(t, err)

	assert.Len(t, s.Values, 7)
	assert.Equal(t, "Finance", s.Labels[0])
	assert.Equal(t, "Hydrogen", s.Labels[5])
	for _, v := range s.Values {
		assert.Equal(t, pillar.OverviewSentinel, v)
	}

	_, err = OverviewRadar(model.DetailedPillarScore{})
	assert.Error(t, err)
}

func TestCompareRadar(t *testing.T) {
	t.Parallel()

	companies := sample()
	scores := map[string][]model.PillarScore{
		"a": {
			{Pillar: model.PillarFinance, Score: f(7)},
			{Pillar: model.PillarHydrogen, Score: f(9)},
		},
	}

	series, err := CompareRadar(companies, scores, []string{"a", "missing", "c"})
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, "Acme", series[0].Name)
	assert.Equal(t, []float64{7, 0, 0, 0, 0, 9, 7}, series[0].Values)
	assert.Equal(t, "Core", series[1].Name)
	assert.NotEqual(t, series[0].Color, series[1].Color)
}

func TestScoreBandAndTierColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BandExcellent, ScoreBand(8))
	assert.Equal(t, BandGood, ScoreBand(6))
	assert.Equal(t, BandPoor, ScoreBand(5.9))
	assert.Equal(t, ColorPartner, TierColor(model.TierPartner))
	assert.Equal(t, ColorDefault, TierColor(model.TierUnknown))
	assert.Equal(t, "hsl(0.0, 70%, 50%)", SeriesColor(0))
	assert.Equal(t, "hsl(137.5, 70%, 50%)", SeriesColor(1))
}
