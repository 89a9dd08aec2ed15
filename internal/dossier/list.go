package dossier

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/ranking"
	"github.com/sells-group/targets-navigator/internal/resilience"
	"github.com/sells-group/targets-navigator/internal/store"
)

// ListQuery selects one page of the company list.
type ListQuery struct {
	Filters model.CompanyFilters
	Sort    ranking.SortKey
	Dir     ranking.Direction
	Limit   int
	Offset  int
}

// CompanyPage is one window of the filtered, ordered company list.
type CompanyPage struct {
	Companies []model.Company `json:"companies"`
	Total     int             `json:"total"`
	Limit     int             `json:"limit"`
	Offset    int             `json:"offset"`

	// Truncated is set when more companies matched than were read.
	Truncated bool `json:"truncated,omitempty"`
}

// ListCompanies reads up to MaxRows matching companies, then filters,
// orders and windows them in memory.
func (s *Service) ListCompanies(ctx context.Context, q ListQuery) model.Result[CompanyPage] {
	if q.Sort == "" {
		q.Sort = ranking.SortOverallScore
	}
	if q.Dir == "" {
		q.Dir = ranking.Desc
	}
	if q.Limit <= 0 {
		q.Limit = s.cfg.DefaultLimit
	}
	q.Offset = max(q.Offset, 0)

	type read struct {
		companies []model.Company
		total     int
	}
	r, err := resilience.Call(ctx, s.guard, "companies", func(ctx context.Context) (read, error) {
		cs, total, err := s.store.ListCompanies(ctx, store.CompanyQuery{
			Filters: q.Filters,
			Bands:   s.cfg.Bands,
			Sort:    q.Sort,
			Dir:     q.Dir,
			Limit:   s.cfg.MaxRows,
		})
		return read{cs, total}, err
	})
	if err != nil {
		return model.Fail[CompanyPage](eris.Wrap(err, "dossier: list companies"))
	}

	filtered := ranking.Filter(r.companies, q.Filters, s.cfg.Bands)
	sorted := ranking.Sort(filtered, q.Sort, q.Dir, ranking.WithLocale(s.cfg.Locale))

	start := min(q.Offset, len(sorted))
	end := min(start+q.Limit, len(sorted))
	return model.OK(CompanyPage{
		Companies: sorted[start:end],
		Total:     len(sorted),
		Limit:     q.Limit,
		Offset:    q.Offset,
		Truncated: r.total > len(r.companies),
	})
}

// GetCompanies reads the named companies, returned in the order asked.
// Unknown keys are skipped.
func (s *Service) GetCompanies(ctx context.Context, keys []string) model.Result[[]model.Company] {
	if len(keys) == 0 {
		return model.OK([]model.Company{})
	}
	cs, err := resilience.Call(ctx, s.guard, "companies", func(ctx context.Context) ([]model.Company, error) {
		cs, _, err := s.store.ListCompanies(ctx, store.CompanyQuery{Keys: keys})
		return cs, err
	})
	if err != nil {
		return model.Fail[[]model.Company](eris.Wrap(err, "dossier: get companies"))
	}

	byKey := make(map[string]model.Company, len(cs))
	for _, c := range cs {
		byKey[c.Key] = c
	}
	out := make([]model.Company, 0, len(keys))
	for _, k := range keys {
		if c, ok := byKey[k]; ok {
			out = append(out, c)
		}
	}
	return model.OK(out)
}

// GetCompany reads one company.
func (s *Service) GetCompany(ctx context.Context, key string) model.Result[model.Company] {
	c, err := s.company(ctx, key)
	if err != nil {
		return model.Fail[model.Company](eris.Wrap(err, "dossier: get company"))
	}
	return model.OK(c)
}
