package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/targets-navigator/internal/compare"
	"github.com/sells-group/targets-navigator/internal/model"
)

var f = model.Float

func fixedNow() time.Time {
	return time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
}

func acme() model.Company {
	return model.Company{
		Key: "acme", Name: "Acme Hydrogen", Ticker: "ACH", Geography: "Germany",
		Tier: model.Tier1, Tags: []string{"pem", "électrolyse"},
		OverallScore: f(8.2), StrategicFit: f(7.5), AbilityToExecute: f(6.9),
	}
}

func acmePillars() []model.PillarScore {
	return []model.PillarScore{
		{Pillar: model.PillarFinance, Score: f(7), Rationale: "Solid balance sheet with room for capex.", TopFeatures: []string{"cash"}},
		{Pillar: model.PillarHydrogen, Score: f(9), TopFeatures: []string{}},
	}
}

func TestGeneratorCompany(t *testing.T) {
	t.Parallel()

	g := NewGenerator("Targets Navigator", fixedNow)
	res := g.Company(acme(), acmePillars())

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "acme-hydrogen-company-report-2024-01-15.pdf", res.Filename)
	assert.True(t, bytes.HasPrefix(res.Data, []byte("%PDF-")))
	assert.Empty(t, res.Error)
}

func TestGeneratorDossier(t *testing.T) {
	t.Parallel()

	g := NewGenerator("", fixedNow)
	res := g.Dossier(&model.Dossier{Company: acme(), Pillars: acmePillars()})
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "acme-hydrogen-dossier-2024-01-15.pdf", res.Filename)

	res = g.Dossier(nil)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func records(n int) []compare.Record {
	companies := make([]model.Company, n)
	for i := range companies {
		c := acme()
		c.Key = string(rune('a' + i))
		c.Name = "Company " + c.Key
		companies[i] = c
	}
	return compare.Flatten(companies, map[string][]model.PillarScore{"a": acmePillars()})
}

func TestGeneratorCompare(t *testing.T) {
	t.Parallel()

	g := NewGenerator("Targets Navigator", fixedNow)
	res := g.Compare(records(3))

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "company-a-compare-report-2024-01-15.pdf", res.Filename)
	assert.True(t, bytes.HasPrefix(res.Data, []byte("%PDF-")))
}

func TestGeneratorCompareRejectsBadSets(t *testing.T) {
	t.Parallel()

	g := NewGenerator("Targets Navigator", fixedNow)

	res := g.Compare(nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "no companies")
	assert.Nil(t, res.Data)

	res = g.Compare(records(6))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "more than 5")
}

func TestCompareWorkbook(t *testing.T) {
	t.Parallel()

	g := NewGenerator("Targets Navigator", fixedNow)
	res := g.CompareWorkbook(records(2))
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "company-a-compare-workbook-2024-01-15.xlsx", res.Filename)

	file, err := xlsx.OpenBinary(res.Data)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)

	summary := file.Sheet[SheetSummary]
	require.NotNil(t, summary)
	require.Len(t, summary.Rows, 3)
	assert.Equal(t, "Company", summary.Rows[0].Cells[1].String())
	assert.Equal(t, "Company b", summary.Rows[2].Cells[1].String())

	pillars := file.Sheet[SheetPillars]
	require.NotNil(t, pillars)
	assert.Len(t, pillars.Rows, 1+2*len(model.Pillars))
	assert.Equal(t, "Finance", pillars.Rows[1].Cells[2].String())
}

func TestCompareWorkbookEmpty(t *testing.T) {
	t.Parallel()

	res := NewGenerator("", fixedNow).CompareWorkbook(nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "no companies")
}
