package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/fields"
	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/pillar"
)

type colKind int

const (
	kindText colKind = iota
	kindReal
	kindArray
	kindDate
	kindTimestamp
)

type column struct {
	name string
	kind colKind
}

type table struct {
	name    string
	columns []column
}

func (t table) names() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.name
	}
	return out
}

func (t table) has(name string) bool {
	for _, c := range t.columns {
		if c.name == name {
			return true
		}
	}
	return false
}

func overviewTable() table {
	t := table{name: fields.OverviewView}
	for _, name := range fields.OverviewColumns() {
		kind := kindReal
		switch name {
		case fields.ColKey, fields.ColName, fields.ColWebsite, fields.ColCountry, fields.ColTicker,
			fields.ColTier, fields.ColRankingCategory, fields.ColIndustry:
			kind = kindText
		case fields.ColTags:
			kind = kindArray
		}
		t.columns = append(t.columns, column{name, kind})
	}
	return t
}

func pillarTable(p fields.Pillar) table {
	t := table{name: p.Table}
	for _, name := range p.Columns() {
		kind := kindReal
		switch name {
		case fields.KeyColumn, p.RationaleField, fields.SourceURLColumn:
			kind = kindText
		case p.FeaturesField:
			kind = kindArray
		case p.EvaluationDateField:
			kind = kindDate
		case fields.LastVerifiedColumn:
			kind = kindTimestamp
		}
		t.columns = append(t.columns, column{name, kind})
	}
	return t
}

// tables lists the overview and the six pillar tables.
func tables() []table {
	out := []table{overviewTable()}
	for _, pt := range model.Pillars {
		out = append(out, pillarTable(fields.MustLookup(pt)))
	}
	return out
}

func sqlType(k colKind, postgres bool) string {
	if !postgres {
		if k == kindReal {
			return "REAL"
		}
		return "TEXT"
	}
	switch k {
	case kindReal:
		return "double precision"
	case kindArray:
		return "text[]"
	case kindDate:
		return "date"
	case kindTimestamp:
		return "timestamptz"
	default:
		return "text"
	}
}

// schemaSQL renders CREATE TABLE IF NOT EXISTS statements for every table.
func schemaSQL(postgres bool) string {
	var sb strings.Builder
	for _, t := range tables() {
		fmt.Fprintf(&sb, "CREATE TABLE IF NOT EXISTS %s (\n", quote(t.name))
		for i, c := range t.columns {
			def := "\t" + quote(c.name) + " " + sqlType(c.kind, postgres)
			if c.name == fields.KeyColumn {
				def += " PRIMARY KEY"
			}
			if i < len(t.columns)-1 {
				def += ","
			}
			sb.WriteString(def + "\n")
		}
		sb.WriteString(");\n")
	}
	return sb.String()
}

// jsonColumns are array columns, stored as JSON text in SQLite.
var jsonColumns = func() map[string]bool {
	out := map[string]bool{}
	for _, t := range tables() {
		for _, c := range t.columns {
			if c.kind == kindArray {
				out[c.name] = true
			}
		}
	}
	return out
}()

// value converts a fixture value to what the driver stores for c.
func (c column) value(v any, postgres bool) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch c.kind {
	case kindReal:
		if f := pillar.Float(v); f != nil {
			return *f, nil
		}
		return nil, nil
	case kindArray:
		items := pillar.Features(v)
		if postgres {
			return items, nil
		}
		b, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case kindDate, kindTimestamp:
		t := pillar.Time(v)
		if t == nil {
			return nil, nil
		}
		if postgres {
			return *t, nil
		}
		if c.kind == kindDate {
			return t.Format(time.DateOnly), nil
		}
		return t.UTC().Format(time.RFC3339), nil
	default:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	}
}

func (t table) row(m map[string]any, postgres bool) ([]any, error) {
	out := make([]any, len(t.columns))
	for i, c := range t.columns {
		v, err := c.value(m[c.name], postgres)
		if err != nil {
			return nil, eris.Wrapf(err, "store: column %s", c.name)
		}
		out[i] = v
	}
	return out, nil
}
