package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPillarsFixedOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []PillarType{
		PillarFinance, PillarIndustry, PillarIP,
		PillarManufacturing, PillarOwnership, PillarHydrogen,
	}, Pillars)
}

func TestPillarTypeValid(t *testing.T) {
	t.Parallel()

	for _, p := range Pillars {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, PillarOverview.Valid())
	assert.False(t, PillarType("esg").Valid())
}

func TestSubScoresValues(t *testing.T) {
	t.Parallel()

	s := SubScores{Finance: &FinanceSubScores{Revenue: Float(8), OverallRating: Float(7)}}

	vals := s.Values(PillarFinance)
	require.Len(t, vals, 5)
	assert.Equal(t, "revenue_score", vals[0].Field)
	assert.Equal(t, 8.0, *vals[0].Value)
	assert.Nil(t, vals[1].Value)
	assert.Equal(t, "overallRating", vals[4].Field)

	assert.Nil(t, s.Values(PillarHydrogen))
}

func TestSubScoresValuesOverview(t *testing.T) {
	t.Parallel()

	ov := &OverviewSubScores{}
	ov.Set(PillarIP, 6)
	ov.Set(PillarHydrogen, 0.1)
	ov.Set(PillarOverview, 99)

	vals := SubScores{Overview: ov}.Values(PillarOverview)
	require.Len(t, vals, 6)
	assert.Equal(t, "ip", vals[2].Field)
	assert.Equal(t, 6.0, *vals[2].Value)
	assert.Equal(t, 0.1, *vals[5].Value)
	assert.Equal(t, 0.0, ov.Get(PillarOverview))
}
