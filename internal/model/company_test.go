package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Tier
	}{
		{"Tier 1", Tier1},
		{"tier1", Tier1},
		{" TIER 2 ", Tier2},
		{"Tier 3", Tier3},
		{"Tier4", Tier4},
		{"partner", TierPartner},
		{"", TierUnknown},
		{"Tier 9", TierUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseTier(tt.in))
		})
	}
}

func TestTierRank(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Tier1.Rank())
	assert.Equal(t, 4, Tier4.Rank())
	assert.Equal(t, 5, TierPartner.Rank())
	assert.Equal(t, 6, TierUnknown.Rank())
	assert.Less(t, Tier2.Rank(), Tier3.Rank())
}

func TestCompanyPillarScore(t *testing.T) {
	t.Parallel()

	c := Company{Key: "acme"}
	assert.Nil(t, c.PillarScore(PillarFinance))

	c.PillarScores = map[PillarType]*float64{PillarFinance: Float(7.5)}
	assert.Equal(t, 7.5, *c.PillarScore(PillarFinance))
	assert.Nil(t, c.PillarScore(PillarHydrogen))
}

func TestFloatOr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3.0, FloatOr(nil, 3))
	assert.Equal(t, 1.5, FloatOr(Float(1.5), 3))
}
