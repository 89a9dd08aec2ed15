// Package ranking orders and filters company lists.
package ranking

import (
	"cmp"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sells-group/targets-navigator/internal/fields"
	"github.com/sells-group/targets-navigator/internal/model"
)

// SortKey is a primary sort key for company lists.
type SortKey string

const (
	SortOverallScore     SortKey = "overall_score"
	SortStrategicFit     SortKey = "strategic_fit"
	SortAbilityToExecute SortKey = "ability_to_execute"
	SortName             SortKey = "name"
)

// Direction is the primary sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ErrInvalidSort is returned for unrecognised sort keys or directions.
var ErrInvalidSort = eris.New("invalid sort")

// ParseSortKey accepts snake_case or camelCase key names.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "")) {
	case "overallscore", "overall":
		return SortOverallScore, nil
	case "strategicfit":
		return SortStrategicFit, nil
	case "abilitytoexecute":
		return SortAbilityToExecute, nil
	case "name":
		return SortName, nil
	default:
		return "", eris.Wrapf(ErrInvalidSort, "ranking: sort key %q", s)
	}
}

// ParseDirection accepts asc or desc, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	default:
		return "", eris.Wrapf(ErrInvalidSort, "ranking: direction %q", s)
	}
}

type options struct {
	locale language.Tag
}

// Option configures Sort and Comparator.
type Option func(*options)

// WithLocale sets the collation locale for name comparison.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// tieBreakers is the fixed secondary chain. Its directions never follow the
// requested primary direction.
var tieBreakers = []SortKey{SortAbilityToExecute, SortStrategicFit, SortName}

// Sort returns a sorted copy of companies. The order is stable and total
// whenever names (or, failing that, keys) are unique.
func Sort(companies []model.Company, key SortKey, dir Direction, opts ...Option) []model.Company {
	out := slices.Clone(companies)
	slices.SortStableFunc(out, Comparator(key, dir, opts...))
	return out
}

// Comparator returns the company ordering used by Sort. The returned func
// holds a collator and must not be shared between goroutines.
func Comparator(key SortKey, dir Direction, opts ...Option) func(a, b model.Company) int {
	o := options{locale: language.English}
	for _, opt := range opts {
		opt(&o)
	}
	col := collate.New(o.locale)

	names := func(a, b model.Company) int {
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	}

	return func(a, b model.Company) int {
		var c int
		if key == SortName {
			c = names(a, b)
			if dir == Desc {
				c = -c
			}
		} else {
			c = compareScore(metric(a, key), metric(b, key), dir == Desc)
		}
		if c != 0 {
			return c
		}

		for _, tb := range tieBreakers {
			if tb == key {
				continue
			}
			if tb == SortName {
				c = names(a, b)
			} else {
				c = compareScore(metric(a, tb), metric(b, tb), true)
			}
			if c != 0 {
				return c
			}
		}
		return strings.Compare(a.Key, b.Key)
	}
}

// compareScore orders present values by dir and puts missing values last
// in both directions.
func compareScore(a, b *float64, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c := cmp.Compare(*a, *b)
	if desc {
		return -c
	}
	return c
}

func metric(c model.Company, key SortKey) *float64 {
	switch key {
	case SortOverallScore:
		return c.OverallScore
	case SortStrategicFit:
		return c.StrategicFit
	case SortAbilityToExecute:
		return c.AbilityToExecute
	default:
		return nil
	}
}

func column(key SortKey) string {
	switch key {
	case SortOverallScore:
		return fields.ColOverallScore
	case SortStrategicFit:
		return fields.ColStrategicFit
	case SortAbilityToExecute:
		return fields.ColAbilityToExecute
	default:
		return fields.ColName
	}
}

// OrderBy renders the ORDER BY clause (without the keyword) matching
// Comparator, for stores that sort server-side.
func OrderBy(key SortKey, dir Direction) string {
	term := func(k SortKey, d Direction) string {
		ident := pgx.Identifier{column(k)}.Sanitize()
		if k == SortName {
			return ident + " " + strings.ToUpper(string(d))
		}
		return ident + " " + strings.ToUpper(string(d)) + " NULLS LAST"
	}

	parts := []string{term(key, dir)}
	for _, tb := range tieBreakers {
		if tb == key {
			continue
		}
		d := Desc
		if tb == SortName {
			d = Asc
		}
		parts = append(parts, term(tb, d))
	}
	parts = append(parts, pgx.Identifier{fields.ColKey}.Sanitize()+" ASC")
	return strings.Join(parts, ", ")
}
