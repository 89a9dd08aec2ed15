package report

import (
	"bytes"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/targets-navigator/internal/compare"
)

// Workbook sheet names.
const (
	SheetSummary = "Summary"
	SheetPillars = "Pillars"
)

// CompareWorkbook renders the comparison set as an XLSX workbook with a
// summary sheet (one row per company) and a pillar sheet (one row per
// company and pillar).
func (g *Generator) CompareWorkbook(records []compare.Record) Result {
	if len(records) == 0 {
		return failed(eris.Wrap(ErrReportGeneration, "report: no companies provided for comparison"))
	}
	if len(records) > compare.MaxCompanies {
		return failed(eris.Wrapf(compare.ErrComparisonLimitExceeded,
			"report: cannot compare more than %d companies", compare.MaxCompanies))
	}

	data, err := writeWorkbook(records)
	if err != nil {
		return failed(eris.Wrapf(ErrReportGeneration, "report: workbook: %v", err))
	}
	return Result{
		Success:  true,
		Filename: filename(records[0].Name, TypeWorkbook, g.now(), "xlsx"),
		Data:     data,
	}
}

func writeWorkbook(records []compare.Record) ([]byte, error) {
	file := xlsx.NewFile()

	summary, err := file.AddSheet(SheetSummary)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: add summary sheet")
	}
	writeRow(summary, "Key", "Company", "Ticker", "Geography", "Tier",
		"Overall", "Strategic Fit", "Ability to Execute")
	for _, r := range records {
		row := summary.AddRow()
		for _, s := range []string{r.Key, r.Name, r.Ticker, r.Geography, string(r.Tier)} {
			row.AddCell().SetString(s)
		}
		scoreCell(row, r.OverallScore)
		scoreCell(row, r.StrategicFit)
		scoreCell(row, r.AbilityToExecute)
	}

	pillars, err := file.AddSheet(SheetPillars)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: add pillar sheet")
	}
	writeRow(pillars, "Key", "Company", "Pillar", "Score", "Available", "Rationale")
	for _, r := range records {
		for _, p := range r.Pillars {
			row := pillars.AddRow()
			row.AddCell().SetString(r.Key)
			row.AddCell().SetString(r.Name)
			row.AddCell().SetString(p.Title)
			scoreCell(row, p.Score)
			row.AddCell().SetBool(p.Available)
			row.AddCell().SetString(p.Rationale)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, eris.Wrap(err, "xlsx: write")
	}
	return buf.Bytes(), nil
}

func writeRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func scoreCell(row *xlsx.Row, v *float64) {
	cell := row.AddCell()
	if v == nil {
		cell.SetString("")
		return
	}
	cell.SetFloat(*v)
}
