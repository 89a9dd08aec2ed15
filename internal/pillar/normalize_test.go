package pillar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/targets-navigator/internal/fields"
	"github.com/sells-group/targets-navigator/internal/model"
)

func TestNormalizeScoreFeatureCoercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  any
		want []string
	}{
		{"null", nil, []string{}},
		{"string", "a string", []string{}},
		{"number", 42, []string{}},
		{"object", map[string]any{}, []string{}},
		{"bool", true, []string{}},
		{"string array", []any{"a", "b"}, []string{"a", "b"}},
		{"typed string array", []string{"a", "b"}, []string{"a", "b"}},
		{"mixed array", []any{"a", 1, nil, "b"}, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeScore(model.PillarIndustry, Record{
				"key":             "acme",
				"industry_score":  7.0,
				"industry_output": tt.raw,
			})
			require.NoError(t, err)
			assert.NotNil(t, got.TopFeatures)
			assert.Equal(t, tt.want, got.TopFeatures)
		})
	}
}

func TestNormalizeScoreFields(t *testing.T) {
	t.Parallel()

	eval := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got, err := NormalizeScore(model.PillarHydrogen, Record{
		"key":            "acme",
		"H2Score":        "8.5",
		"H2Summary":      "Strong electrolyser roadmap.",
		"H2Research":     []any{"PEM stacks"},
		"EvaluationDate": eval,
		"source_url":     "https://example.com/h2",
	})
	require.NoError(t, err)

	assert.Equal(t, "acme", got.CompanyKey)
	assert.Equal(t, model.PillarHydrogen, got.Pillar)
	require.NotNil(t, got.Score)
	assert.Equal(t, 8.5, *got.Score)
	assert.Equal(t, "Strong electrolyser roadmap.", got.Rationale)
	assert.Equal(t, []string{"PEM stacks"}, got.TopFeatures)
	assert.Equal(t, eval, *got.EvaluationDate)
	assert.Equal(t, "https://example.com/h2", got.SourceURL)
}

func TestNormalizeScorePassesNullScore(t *testing.T) {
	t.Parallel()

	got, err := NormalizeScore(model.PillarFinance, Record{"key": "acme", "finance_score": nil})
	require.NoError(t, err)
	assert.Nil(t, got.Score)
}

func TestNormalizeScoreUnknownPillar(t *testing.T) {
	t.Parallel()

	_, err := NormalizeScore("esg", Record{})
	assert.True(t, errors.Is(err, fields.ErrUnknownPillarType))

	_, err = NormalizeDetailed(model.PillarOverview, Record{})
	assert.True(t, errors.Is(err, fields.ErrUnknownPillarType))
}

func TestNormalizeDetailedSetsOnlyOwnVariant(t *testing.T) {
	t.Parallel()

	for _, pt := range model.Pillars {
		t.Run(string(pt), func(t *testing.T) {
			t.Parallel()
			d, err := NormalizeDetailed(pt, Record{"key": "acme"})
			require.NoError(t, err)

			for _, other := range model.Pillars {
				vals := d.SubScores.Values(other)
				if other == pt {
					assert.NotNil(t, vals)
				} else {
					assert.Nil(t, vals)
				}
			}
			assert.Nil(t, d.SubScores.Overview)
		})
	}
}

func TestNormalizeDetailedManufacturing(t *testing.T) {
	t.Parallel()

	d, err := NormalizeDetailed(model.PillarManufacturing, Record{
		"key":                         "acme",
		"manufacturing_score":         6.0,
		"ManufacturingMaterialsScore": 5,
		"ManufacturingRDScore":        int64(9),
		"ManufacturingScaleScore":     "n/a",
	})
	require.NoError(t, err)
	m := d.SubScores.Manufacturing
	require.NotNil(t, m)
	assert.Equal(t, 5.0, *m.Materials)
	assert.Equal(t, 9.0, *m.RD)
	assert.Nil(t, m.Scale)
	assert.Nil(t, m.OverallRating)
	assert.Equal(t, 6.0, *d.Score)
}

func detail(t *testing.T, pt model.PillarType, rec Record) model.DetailedPillarScore {
	t.Helper()
	d, err := NormalizeDetailed(pt, rec)
	require.NoError(t, err)
	return d
}

func TestOverviewSixSpokes(t *testing.T) {
	t.Parallel()

	details := []model.DetailedPillarScore{
		detail(t, model.PillarFinance, Record{"revenue_score": 4.0, "overallRating": 7.0}),
		detail(t, model.PillarIndustry, Record{"industry_score": 6.0, "technology_score": 8.0}),
		detail(t, model.PillarIP, Record{"IPActivityScore": 3.0}),
		detail(t, model.PillarOwnership, Record{}),
	}

	ov := Overview("acme", details)

	assert.Equal(t, model.PillarOverview, ov.Pillar)
	assert.Equal(t, "acme", ov.CompanyKey)
	require.NotNil(t, ov.SubScores.Overview)

	got := ov.SubScores.Overview
	assert.Equal(t, 7.0, got.Finance, "overall rating preferred")
	assert.Equal(t, 6.0, got.Industry, "top-level score is the industry overall")
	assert.Equal(t, 3.0, got.IP, "top-level score fallback")
	assert.Equal(t, OverviewSentinel, got.Manufacturing, "missing pillar")
	assert.Equal(t, OverviewSentinel, got.Ownership, "no numeric data")
	assert.Equal(t, OverviewSentinel, got.Hydrogen)

	assert.Len(t, ov.SubScores.Values(model.PillarOverview), 6)
}

func TestOverviewIndustryPrefersTopLevelScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  Record
		want float64
	}{
		{"top-level wins over sub-scores", Record{"industry_score": 6.0, "core_business_score": 9.0, "technology_score": 2.0}, 6.0},
		{"sub-score when top-level missing", Record{"core_business_score": 9.0, "technology_score": 2.0}, 9.0},
		{"sentinel when nothing numeric", Record{"rationale": "n/a"}, OverviewSentinel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ov := Overview("acme", []model.DetailedPillarScore{detail(t, model.PillarIndustry, tt.rec)})
			require.NotNil(t, ov.SubScores.Overview)
			assert.Equal(t, tt.want, ov.SubScores.Overview.Industry)
		})
	}
}

func TestOverviewWithSentinelZero(t *testing.T) {
	t.Parallel()

	ov := OverviewWithSentinel("acme", nil, 0)
	for _, pt := range model.Pillars {
		assert.Equal(t, 0.0, ov.SubScores.Overview.Get(pt))
	}
}

func TestValidScore(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidScore(nil))
	assert.True(t, ValidScore(model.Float(0)))
	assert.True(t, ValidScore(model.Float(10)))
	assert.False(t, ValidScore(model.Float(10.5)))
	assert.False(t, ValidScore(model.Float(-1)))
}

func TestInsufficientData(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	recent := now.AddDate(-1, 0, 0)
	stale := now.AddDate(-3, 0, 0)

	assert.True(t, InsufficientData(nil, &recent, now))
	assert.False(t, InsufficientData(model.Float(5), nil, now))
	assert.False(t, InsufficientData(model.Float(5), &recent, now))
	assert.True(t, InsufficientData(model.Float(5), &stale, now))
}
