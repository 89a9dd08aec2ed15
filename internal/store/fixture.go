package store

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/targets-navigator/internal/fields"
	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/pillar"
)

// Fixture is a YAML snapshot of backend rows. Rows are keyed by backend
// column name; pillar sections are keyed by pillar or table name.
//
//	companies:
//	  - key: acme
//	    englishName: Acme GmbH
//	    overallScore: 8.2
//	pillars:
//	  finance:
//	    - key: acme
//	      finance_score: 7.5
type Fixture struct {
	Companies []map[string]any            `yaml:"companies"`
	Pillars   map[string][]map[string]any `yaml:"pillars"`
}

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "store: read fixture %s", path)
	}
	return ParseFixture(data)
}

// ParseFixture decodes and validates fixture YAML.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "store: parse fixture")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every row has a key and only known columns.
func (f *Fixture) Validate() error {
	if err := checkRows(overviewTable(), f.Companies); err != nil {
		return err
	}
	for name, rows := range f.Pillars {
		pt, err := fields.Parse(name)
		if err != nil || pt == model.PillarOverview {
			return eris.Wrapf(fields.ErrUnknownPillarType, "store: fixture pillar %q", name)
		}
		if err := checkRows(pillarTable(fields.MustLookup(pt)), rows); err != nil {
			return err
		}
	}
	return nil
}

func checkRows(t table, rows []map[string]any) error {
	for i, row := range rows {
		if pillar.Text(row[fields.KeyColumn]) == "" {
			return eris.Errorf("store: fixture %s row %d: missing key", t.name, i)
		}
		cols := make([]string, 0, len(row))
		for col := range row {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			if !t.has(col) {
				return eris.Errorf("store: fixture %s row %d: unknown column %q", t.name, i, col)
			}
		}
	}
	return nil
}

// tableRows pairs a table with its fixture rows converted for a driver.
type tableRows struct {
	table table
	rows  [][]any
}

// rows converts the fixture into insert order: overview first, then the
// pillars in fixed order.
func (f *Fixture) rows(postgres bool) ([]tableRows, error) {
	convert := func(t table, in []map[string]any) (tableRows, error) {
		tr := tableRows{table: t, rows: make([][]any, 0, len(in))}
		for _, m := range in {
			r, err := t.row(m, postgres)
			if err != nil {
				return tableRows{}, eris.Wrapf(err, "store: fixture %s", t.name)
			}
			tr.rows = append(tr.rows, r)
		}
		return tr, nil
	}

	overview, err := convert(overviewTable(), f.Companies)
	if err != nil {
		return nil, err
	}
	out := []tableRows{overview}

	byPillar := make(map[model.PillarType][]map[string]any, len(f.Pillars))
	for name, rows := range f.Pillars {
		pt, err := fields.Parse(name)
		if err != nil {
			return nil, eris.Wrap(err, "store: fixture")
		}
		byPillar[pt] = append(byPillar[pt], rows...)
	}
	for _, pt := range model.Pillars {
		tr, err := convert(pillarTable(fields.MustLookup(pt)), byPillar[pt])
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, nil
}
