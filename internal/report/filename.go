package report

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Report types used in filenames.
const (
	TypeCompany  = "company-report"
	TypeCompare  = "compare-report"
	TypeDossier  = "dossier"
	TypeWorkbook = "compare-workbook"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name, folds accents and collapses every
// non-alphanumeric run into a single hyphen, trimming edge hyphens.
func Slugify(name string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, name)
	if err != nil {
		folded = name
	}
	slug := nonAlnum.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(slug, "-")
}

// Filename builds {slug}-{type}-{YYYY-MM-DD}.pdf.
func Filename(name, reportType string, date time.Time) string {
	return filename(name, reportType, date, "pdf")
}

func filename(name, reportType string, date time.Time, ext string) string {
	slug := Slugify(name)
	if slug == "" {
		slug = "company"
	}
	return slug + "-" + reportType + "-" + date.Format(time.DateOnly) + "." + ext
}
