package dossier

import (
	"context"
	"slices"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/pillar"
	"github.com/sells-group/targets-navigator/internal/ranking"
	"github.com/sells-group/targets-navigator/internal/store"
)

// fakeStore serves canned rows and injects per-pillar errors.
type fakeStore struct {
	mu        sync.Mutex
	companies []model.Company
	records   map[model.PillarType]map[string]pillar.Record
	errs      map[model.PillarType]error
	listErr   error
	calls     map[model.PillarType]int
	block     chan struct{}
}

var _ store.Store = (*fakeStore)(nil)

func newFakeStore(companies ...model.Company) *fakeStore {
	return &fakeStore{
		companies: companies,
		records:   map[model.PillarType]map[string]pillar.Record{},
		errs:      map[model.PillarType]error{},
		calls:     map[model.PillarType]int{},
	}
}

func (f *fakeStore) put(pt model.PillarType, rec pillar.Record) {
	if f.records[pt] == nil {
		f.records[pt] = map[string]pillar.Record{}
	}
	f.records[pt][pillar.Text(rec["key"])] = rec
}

func (f *fakeStore) ListCompanies(_ context.Context, q store.CompanyQuery) ([]model.Company, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	bands := q.Bands
	if bands == nil {
		bands = ranking.DefaultBands()
	}
	var out []model.Company
	for _, c := range f.companies {
		if len(q.Keys) > 0 && !slices.Contains(q.Keys, c.Key) {
			continue
		}
		if ranking.Matches(c, q.Filters, bands.Select(q.Filters.RevenueBands)) {
			out = append(out, c)
		}
	}
	total := len(out)
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, total, nil
}

func (f *fakeStore) GetCompany(ctx context.Context, key string) (model.Company, error) {
	cs, _, err := f.ListCompanies(ctx, store.CompanyQuery{Keys: []string{key}})
	if err != nil {
		return model.Company{}, err
	}
	if len(cs) == 0 {
		return model.Company{}, eris.Wrapf(model.ErrCompanyNotFound, "fake: %s", key)
	}
	return cs[0], nil
}

func (f *fakeStore) GetPillarRecord(ctx context.Context, pt model.PillarType, key string) (pillar.Record, error) {
	recs, err := f.GetPillarRecords(ctx, pt, []string{key})
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return recs[0], nil
}

func (f *fakeStore) GetPillarRecords(ctx context.Context, pt model.PillarType, keys []string) ([]pillar.Record, error) {
	f.mu.Lock()
	f.calls[pt]++
	err := f.errs[pt]
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	var out []pillar.Record
	for _, k := range keys {
		if rec, ok := f.records[pt][k]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeStore) Ping(context.Context) error { return f.listErr }
func (f *fakeStore) Close() error               { return nil }

func (f *fakeStore) callCount(pt model.PillarType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[pt]
}
