package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/pillar"
	"github.com/sells-group/targets-navigator/internal/ranking"
)

func keysOf(cs []model.Company) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Key
	}
	return out
}

// storeTestSuite runs the read contract against a store seeded with
// testdata/fixture.yaml.
func storeTestSuite(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("ListDefaultOrder", func(t *testing.T) {
		s := newStore(t)
		companies, total, err := s.ListCompanies(context.Background(), CompanyQuery{})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		// acme and borealis tie on overall score; ability to execute breaks it.
		assert.Equal(t, []string{"borealis", "acme", "cobalt", "delta"}, keysOf(companies))
	})

	t.Run("ListWindow", func(t *testing.T) {
		s := newStore(t)
		companies, total, err := s.ListCompanies(context.Background(), CompanyQuery{
			Sort: ranking.SortName, Dir: ranking.Asc, Limit: 2, Offset: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Equal(t, []string{"borealis", "cobalt"}, keysOf(companies))
	})

	t.Run("ListFilters", func(t *testing.T) {
		s := newStore(t)
		tests := []struct {
			name    string
			filters model.CompanyFilters
			want    []string
		}{
			{"country", model.CompanyFilters{Countries: []string{"Germany"}}, []string{"acme", "delta"}},
			{"tier raw label", model.CompanyFilters{Tiers: []string{"Tier 2"}}, []string{"borealis"}},
			{"tier unknown", model.CompanyFilters{Tiers: []string{"Unknown"}}, []string{"delta"}},
			{"band", model.CompanyFilters{RevenueBands: []string{"$1M - $10M", "> $1B"}}, []string{"borealis", "delta"}},
			{"band unknown", model.CompanyFilters{RevenueBands: []string{"Unknown"}}, []string{"cobalt"}},
			{"industry and score", model.CompanyFilters{Industries: []string{"Energy"}, MinScore: model.Float(8.5)}, []string{"borealis", "acme"}},
			{"max score", model.CompanyFilters{MaxScore: model.Float(7)}, []string{"cobalt"}},
			{"tags", model.CompanyFilters{Tags: []string{"storage", "electrolysers"}}, []string{"borealis", "acme"}},
			{"conjunction", model.CompanyFilters{Countries: []string{"Germany"}, Tiers: []string{"Tier 1"}}, []string{"acme"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				companies, total, err := s.ListCompanies(context.Background(), CompanyQuery{Filters: tt.filters})
				require.NoError(t, err)
				assert.Equal(t, tt.want, keysOf(companies))
				assert.Equal(t, len(tt.want), total)
			})
		}
	})

	t.Run("ListTagsWindowed", func(t *testing.T) {
		s := newStore(t)
		companies, total, err := s.ListCompanies(context.Background(), CompanyQuery{
			Filters: model.CompanyFilters{Tags: []string{"storage", "fuel-cells"}},
			Limit:   1,
			Offset:  1,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, []string{"acme"}, keysOf(companies))
	})

	t.Run("ListKeys", func(t *testing.T) {
		s := newStore(t)
		companies, _, err := s.ListCompanies(context.Background(), CompanyQuery{Keys: []string{"delta", "acme", "ghost"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"acme", "delta"}, keysOf(companies))
	})

	t.Run("GetCompany", func(t *testing.T) {
		s := newStore(t)
		c, err := s.GetCompany(context.Background(), "acme")
		require.NoError(t, err)
		assert.Equal(t, "Acme Hydrogen GmbH", c.Name)
		assert.Equal(t, model.Tier1, c.Tier)
		assert.Equal(t, []string{"fuel-cells", "electrolysers"}, c.Tags)
		assert.Equal(t, 250.0, *c.Revenue)
		assert.Equal(t, 9.0, *c.PillarScore(model.PillarHydrogen))

		b, err := s.GetCompany(context.Background(), "borealis")
		require.NoError(t, err)
		assert.Equal(t, model.Tier2, b.Tier)
		assert.Nil(t, b.PillarScore(model.PillarFinance))

		_, err = s.GetCompany(context.Background(), "ghost")
		assert.ErrorIs(t, err, model.ErrCompanyNotFound)
	})

	t.Run("GetPillarRecord", func(t *testing.T) {
		s := newStore(t)
		rec, err := s.GetPillarRecord(context.Background(), model.PillarFinance, "acme")
		require.NoError(t, err)
		require.NotNil(t, rec)

		d, err := pillar.NormalizeDetailed(model.PillarFinance, rec)
		require.NoError(t, err)
		assert.Equal(t, 7.5, *d.Score)
		assert.Equal(t, "Strong balance sheet.", d.Rationale)
		assert.Equal(t, []string{"Low debt", "Growing margins"}, d.TopFeatures)
		assert.Equal(t, "2024-01-15", d.EvaluationDate.Format("2006-01-02"))
		assert.Equal(t, "https://acme.example/ir", d.SourceURL)
		assert.Equal(t, 7.0, *d.SubScores.Finance.ThreeYearGrowth)

		// Non-array features degrade to an empty list.
		rec, err = s.GetPillarRecord(context.Background(), model.PillarFinance, "borealis")
		require.NoError(t, err)
		ps, err := pillar.NormalizeScore(model.PillarFinance, rec)
		require.NoError(t, err)
		assert.Equal(t, []string{}, ps.TopFeatures)

		rec, err = s.GetPillarRecord(context.Background(), model.PillarOwnership, "acme")
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("GetPillarRecords", func(t *testing.T) {
		s := newStore(t)
		recs, err := s.GetPillarRecords(context.Background(), model.PillarFinance, []string{"borealis", "acme", "ghost"})
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "acme", pillar.Text(recs[0]["key"]))
		assert.Equal(t, "borealis", pillar.Text(recs[1]["key"]))

		_, err = s.GetPillarRecords(context.Background(), model.PillarType("bogus"), []string{"acme"})
		assert.Error(t, err)
	})

	t.Run("Ping", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Ping(context.Background()))
	})
}
