// Package report renders company, dossier and comparison reports.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/targets-navigator/internal/compare"
	"github.com/sells-group/targets-navigator/internal/model"
)

// ErrReportGeneration marks a report that could not be produced.
var ErrReportGeneration = eris.New("report generation failed")

// Result is the outcome of one report request. Failures are reported
// through Success and Error rather than a Go error.
type Result struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename,omitempty"`
	Data     []byte `json:"-"`
	Error    string `json:"error,omitempty"`
}

func failed(err error) Result {
	zap.L().Warn("report: generation failed", zap.Error(err))
	return Result{Error: err.Error()}
}

// Page geometry in millimetres (A4 portrait).
const (
	marginLeft  = 20.0
	marginTop   = 20.0
	marginRight = 20.0
	lineHeight  = 6.0
)

// Generator renders PDF reports.
type Generator struct {
	brand string
	now   func() time.Time
}

// NewGenerator returns a Generator stamping reports with brand. now
// supplies the report date; nil means time.Now.
func NewGenerator(brand string, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	if brand == "" {
		brand = "Targets Navigator"
	}
	return &Generator{brand: brand, now: now}
}

// Company renders a single-company report.
func (g *Generator) Company(c model.Company, pillars []model.PillarScore) Result {
	doc := g.newDoc("Company Report")
	doc.company(c)
	doc.scores(c)
	doc.pillars(pillars)

	return g.finish(doc, Filename(c.Name, TypeCompany, g.now()))
}

// Dossier renders a company dossier, listing unavailable pillars.
func (g *Generator) Dossier(d *model.Dossier) Result {
	if d == nil {
		return failed(eris.Wrap(ErrReportGeneration, "report: dossier is nil"))
	}
	doc := g.newDoc("Company Dossier")
	doc.company(d.Company)
	doc.scores(d.Company)
	doc.pillars(d.Pillars)
	if missing := d.Unavailable(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, p := range missing {
			names[i] = p.Title()
		}
		doc.pdf.Ln(lineHeight)
		doc.setFont("I", 9)
		doc.multi("Unavailable pillars: " + strings.Join(names, ", "))
	}

	return g.finish(doc, Filename(d.Company.Name, TypeDossier, g.now()))
}

// Compare renders a comparison report: a summary table followed by one
// full company section per member, each on a new page. The filename is
// derived from the first company.
func (g *Generator) Compare(records []compare.Record) Result {
	if len(records) == 0 {
		return failed(eris.Wrap(ErrReportGeneration, "report: no companies provided for comparison"))
	}
	if len(records) > compare.MaxCompanies {
		return failed(eris.Wrapf(compare.ErrComparisonLimitExceeded,
			"report: cannot compare more than %d companies", compare.MaxCompanies))
	}

	doc := g.newDoc("Company Comparison Report")
	doc.compareTable(records)
	if s, ok := compare.Summarize(records); ok {
		doc.summary(s)
	}

	for _, r := range records {
		doc.pdf.AddPage()
		doc.company(model.Company{
			Name: r.Name, Ticker: r.Ticker, Geography: r.Geography, Tier: r.Tier, Tags: r.Tags,
		})
		doc.scores(model.Company{
			OverallScore: r.OverallScore, StrategicFit: r.StrategicFit, AbilityToExecute: r.AbilityToExecute,
		})
		doc.pillarRows(r.Pillars)
	}

	return g.finish(doc, Filename(records[0].Name, TypeCompare, g.now()))
}

func (g *Generator) finish(doc *document, name string) Result {
	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return failed(eris.Wrapf(ErrReportGeneration, "report: render %s: %v", name, err))
	}
	zap.L().Debug("report: rendered",
		zap.String("filename", name),
		zap.Int("bytes", buf.Len()),
		zap.Int("pages", doc.pdf.PageCount()),
	)
	return Result{Success: true, Filename: name, Data: buf.Bytes()}
}

type document struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	width float64
}

func (g *Generator) newDoc(title string) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, 25)
	pdf.SetTitle(title, true)
	pdf.SetCreator(g.brand, true)

	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pageW, _ := pdf.GetPageSize()
	d.width = pageW - marginLeft - marginRight

	brand := g.brand
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		d.setFont("", 8)
		pdf.CellFormat(d.width/2, 5, d.tr("Generated by "+brand), "", 0, "L", false, 0, "")
		pdf.CellFormat(d.width/2, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	d.setFont("B", 20)
	pdf.CellFormat(d.width, 10, d.tr(title), "", 1, "L", false, 0, "")
	d.setFont("", 10)
	pdf.CellFormat(d.width, lineHeight, "Generated: "+g.now().Format(time.DateOnly), "", 1, "L", false, 0, "")
	pdf.Ln(lineHeight)
	return d
}

func (d *document) setFont(style string, size float64) {
	d.pdf.SetFont("Helvetica", style, size)
}

func (d *document) line(text string) {
	d.pdf.CellFormat(d.width, lineHeight, d.tr(text), "", 1, "L", false, 0, "")
}

func (d *document) multi(text string) {
	d.pdf.MultiCell(d.width, 5, d.tr(text), "", "L", false)
}

func (d *document) heading(text string, size float64) {
	d.setFont("B", size)
	d.line(text)
	d.setFont("", 12)
}

func (d *document) company(c model.Company) {
	d.heading(c.Name, 16)
	if c.Ticker != "" {
		d.line("Ticker: " + c.Ticker)
	}
	d.line("Geography: " + orNA(c.Geography))
	if c.Website != "" {
		d.line("Website: " + c.Website)
	}
	if c.Tier != "" {
		d.line("Tier: " + string(c.Tier))
	}
	if len(c.Tags) > 0 {
		d.line("Tags: " + strings.Join(c.Tags, ", "))
	}
	d.pdf.Ln(lineHeight / 2)
}

func (d *document) scores(c model.Company) {
	d.heading("Scores", 14)
	for _, s := range []struct {
		label string
		value *float64
	}{
		{"Overall Score", c.OverallScore},
		{"Strategic Fit", c.StrategicFit},
		{"Ability to Execute", c.AbilityToExecute},
	} {
		d.pdf.CellFormat(60, lineHeight, s.label+":", "", 0, "L", false, 0, "")
		d.pdf.CellFormat(d.width-60, lineHeight, formatScore(s.value), "", 1, "L", false, 0, "")
	}
	d.pdf.Ln(lineHeight / 2)
}

func (d *document) pillars(scores []model.PillarScore) {
	byPillar := make(map[model.PillarType]model.PillarScore, len(scores))
	for _, ps := range scores {
		byPillar[ps.Pillar] = ps
	}
	rows := make([]compare.PillarRow, 0, len(model.Pillars))
	for _, pt := range model.Pillars {
		ps, ok := byPillar[pt]
		if !ok {
			continue
		}
		rows = append(rows, compare.PillarRow{
			Pillar: pt, Title: pt.Title(), Score: ps.Score,
			Rationale: ps.Rationale, TopFeatures: ps.TopFeatures, Available: true,
		})
	}
	d.pillarRows(rows)
}

func (d *document) pillarRows(rows []compare.PillarRow) {
	d.heading("Pillar Analysis", 14)
	for _, r := range rows {
		if !r.Available {
			continue
		}
		d.setFont("B", 12)
		d.line(r.Title)
		d.setFont("", 10)
		d.line("Score: " + formatScore(r.Score))
		if r.Rationale != "" {
			d.multi(r.Rationale)
		}
		if len(r.TopFeatures) > 0 {
			d.multi("Key Features: " + strings.Join(r.TopFeatures, ", "))
		}
		d.pdf.Ln(lineHeight / 2)
	}
}

var compareColumns = []struct {
	header string
	width  float64
}{
	{"Company", 60},
	{"Overall", 25},
	{"Strategic Fit", 30},
	{"Ability to Execute", 35},
	{"Tier", 20},
}

func (d *document) compareTable(records []compare.Record) {
	d.heading("Company Comparison", 12)
	d.setFont("B", 10)
	for _, col := range compareColumns {
		d.pdf.CellFormat(col.width, 7, col.header, "B", 0, "L", false, 0, "")
	}
	d.pdf.Ln(-1)

	d.setFont("", 10)
	for _, r := range records {
		cells := []string{
			truncate(r.Name, 30),
			formatScore(r.OverallScore),
			formatScore(r.StrategicFit),
			formatScore(r.AbilityToExecute),
			orNA(string(r.Tier)),
		}
		for i, col := range compareColumns {
			d.pdf.CellFormat(col.width, 7, d.tr(cells[i]), "", 0, "L", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(lineHeight / 2)
}

func (d *document) summary(s compare.Summary) {
	d.setFont("B", 11)
	d.line("Summary")
	d.setFont("", 10)
	d.line("Average Overall Score: " + formatScore(s.AverageOverall))
	d.line("Highest Strategic Fit: " + formatScore(s.HighestStrategicFit))
	d.line("Highest Ability to Execute: " + formatScore(s.HighestAbilityToExecute))
}

func formatScore(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
