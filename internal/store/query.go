package store

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sells-group/targets-navigator/internal/fields"
	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/pillar"
	"github.com/sells-group/targets-navigator/internal/ranking"
)

// totalColumn carries count(*) OVER() alongside each overview row.
const totalColumn = "total_count"

func quote(col string) string {
	return pgx.Identifier{col}.Sanitize()
}

func quoteAll(cols []string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = quote(c)
	}
	return strings.Join(out, ", ")
}

// builder accumulates WHERE terms and their arguments. Postgres takes
// numbered placeholders and array arguments; SQLite takes "?" and
// expanded IN lists.
type builder struct {
	postgres bool
	args     []any
	where    []string
}

func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	if b.postgres {
		return "$" + strconv.Itoa(len(b.args))
	}
	return "?"
}

func (b *builder) in(expr string, values []string) string {
	if b.postgres {
		return expr + " = ANY(" + b.arg(values) + ")"
	}
	ph := make([]string, len(values))
	for i, v := range values {
		ph[i] = b.arg(v)
	}
	return expr + " IN (" + strings.Join(ph, ", ") + ")"
}

func (b *builder) add(term string) {
	b.where = append(b.where, term)
}

func (b *builder) whereClause() string {
	if len(b.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.where, " AND ")
}

// tierKey folds a tier label the way model.ParseTier does.
func tierKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

var tierExpr = "lower(replace(" + quote(fields.ColTier) + ", ' ', ''))"

func (b *builder) tiers(values []string) {
	var selected []string
	unknown := false
	for _, v := range values {
		if model.ParseTier(v) == model.TierUnknown {
			unknown = true
			continue
		}
		selected = append(selected, tierKey(v))
	}

	var terms []string
	if len(selected) > 0 {
		terms = append(terms, b.in(tierExpr, selected))
	}
	if unknown {
		known := make([]string, len(model.Tiers))
		for i, t := range model.Tiers {
			known[i] = tierKey(string(t))
		}
		terms = append(terms,
			quote(fields.ColTier)+" IS NULL",
			"NOT ("+b.in(tierExpr, known)+")",
		)
	}
	b.add("(" + strings.Join(terms, " OR ") + ")")
}

func (b *builder) bands(selected ranking.Bands) {
	if len(selected) == 0 {
		b.add("1 = 0")
		return
	}
	rev := quote(fields.ColRevenue)
	terms := make([]string, 0, len(selected))
	for _, band := range selected {
		var conds []string
		if band.Min != nil {
			conds = append(conds, rev+" >= "+b.arg(*band.Min))
		}
		if band.Max != nil {
			conds = append(conds, rev+" < "+b.arg(*band.Max))
		}
		if len(conds) == 0 {
			conds = append(conds, rev+" IS NOT NULL")
		}
		term := strings.Join(conds, " AND ")
		if band.IncludeUnknown {
			term = "(" + term + " OR " + rev + " IS NULL)"
		} else if len(conds) > 1 {
			term = "(" + term + ")"
		}
		terms = append(terms, term)
	}
	b.add("(" + strings.Join(terms, " OR ") + ")")
}

// listSQL renders the overview query for q. Tag filters are not pushed
// down since tag storage differs per backend; when q filters on tags the
// query is unwindowed and pageInMemory is true.
func listSQL(q CompanyQuery, postgres bool) (sql string, args []any, pageInMemory bool) {
	b := &builder{postgres: postgres}
	f := q.Filters

	if len(q.Keys) > 0 {
		b.add(b.in(quote(fields.ColKey), q.Keys))
	}
	if len(f.Countries) > 0 {
		b.add(b.in(quote(fields.ColCountry), f.Countries))
	}
	if len(f.Tiers) > 0 {
		b.tiers(f.Tiers)
	}
	if len(f.RankingCategories) > 0 {
		b.add(b.in(quote(fields.ColRankingCategory), f.RankingCategories))
	}
	if len(f.Industries) > 0 {
		b.add(b.in(quote(fields.ColIndustry), f.Industries))
	}
	if len(f.RevenueBands) > 0 {
		bands := q.Bands
		if bands == nil {
			bands = ranking.DefaultBands()
		}
		b.bands(bands.Select(f.RevenueBands))
	}
	if f.MinScore != nil {
		b.add(quote(fields.ColOverallScore) + " >= " + b.arg(*f.MinScore))
	}
	if f.MaxScore != nil {
		b.add(quote(fields.ColOverallScore) + " <= " + b.arg(*f.MaxScore))
	}

	key, dir := q.Sort, q.Dir
	if key == "" {
		key = ranking.SortOverallScore
	}
	if dir == "" {
		dir = ranking.Desc
	}

	pageInMemory = len(f.Tags) > 0
	sql = fmt.Sprintf("SELECT %s, count(*) OVER() AS %s FROM %s%s ORDER BY %s",
		quoteAll(fields.OverviewColumns()), quote(totalColumn),
		quote(fields.OverviewView), b.whereClause(), ranking.OrderBy(key, dir))
	if q.Limit > 0 && !pageInMemory {
		sql += " LIMIT " + b.arg(q.Limit) + " OFFSET " + b.arg(max(q.Offset, 0))
	}
	return sql, b.args, pageInMemory
}

// pillarSQL renders the projection of one pillar table for keys.
func pillarSQL(p fields.Pillar, keys []string, postgres bool) (string, []any) {
	b := &builder{postgres: postgres}
	b.add(b.in(quote(fields.KeyColumn), keys))
	return fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s",
		quoteAll(p.Columns()), quote(p.Table), b.whereClause(), quote(fields.KeyColumn)), b.args
}

// companyFromRecord maps an overview row to a Company, coercing every
// field through the pillar coercers so odd backend shapes degrade to nil.
func companyFromRecord(rec pillar.Record) model.Company {
	c := model.Company{
		Key:              pillar.Text(rec[fields.ColKey]),
		Name:             pillar.Text(rec[fields.ColName]),
		Website:          pillar.Text(rec[fields.ColWebsite]),
		Geography:        pillar.Text(rec[fields.ColCountry]),
		Ticker:           pillar.Text(rec[fields.ColTicker]),
		Tags:             pillar.Features(rec[fields.ColTags]),
		Tier:             model.ParseTier(pillar.Text(rec[fields.ColTier])),
		RankingCategory:  pillar.Text(rec[fields.ColRankingCategory]),
		Industry:         pillar.Text(rec[fields.ColIndustry]),
		Revenue:          pillar.Float(rec[fields.ColRevenue]),
		OverallScore:     pillar.Float(rec[fields.ColOverallScore]),
		StrategicFit:     pillar.Float(rec[fields.ColStrategicFit]),
		AbilityToExecute: pillar.Float(rec[fields.ColAbilityToExecute]),
		PillarScores:     make(map[model.PillarType]*float64, len(model.Pillars)),
	}
	for _, pt := range model.Pillars {
		c.PillarScores[pt] = pillar.Float(rec[fields.MustLookup(pt).ScoreField])
	}
	return c
}

// page turns scanned overview rows into companies and the total count.
// When pageInMemory, tag filtering and windowing happen here.
func page(recs []pillar.Record, q CompanyQuery, pageInMemory bool) ([]model.Company, int) {
	companies := make([]model.Company, 0, len(recs))
	total := 0
	for i, rec := range recs {
		if i == 0 {
			if n := pillar.Float(rec[totalColumn]); n != nil {
				total = int(*n)
			}
		}
		companies = append(companies, companyFromRecord(rec))
	}
	if !pageInMemory {
		return companies, total
	}

	companies = slices.DeleteFunc(companies, func(c model.Company) bool {
		return !slices.ContainsFunc(c.Tags, func(tag string) bool {
			return slices.Contains(q.Filters.Tags, tag)
		})
	})
	total = len(companies)
	return window(companies, q.Offset, q.Limit), total
}

func window[T any](items []T, offset, limit int) []T {
	offset = min(max(offset, 0), len(items))
	end := len(items)
	if limit > 0 {
		end = min(offset+limit, len(items))
	}
	return items[offset:end]
}
