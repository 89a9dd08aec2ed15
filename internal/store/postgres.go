package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/db"
	"github.com/sells-group/targets-navigator/internal/fields"
	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/pillar"
)

// PostgresStore implements Store against the hosted Postgres backend.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres connects to connString and verifies the connection.
func NewPostgres(ctx context.Context, connString string, cfg db.PoolConfig) (*PostgresStore, error) {
	pool, err := db.NewPool(ctx, connString, cfg)
	if err != nil {
		return nil, eris.Wrapf(model.ErrBackendUnavailable, "postgres: connect: %v", err)
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool. The caller keeps ownership.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return wrapRead(err, "postgres: ping")
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) ListCompanies(ctx context.Context, q CompanyQuery) ([]model.Company, int, error) {
	sql, args, inMemory := listSQL(q, true)
	recs, err := s.query(ctx, sql, args...)
	if err != nil {
		return nil, 0, wrapRead(err, "postgres: list companies")
	}
	companies, total := page(recs, q, inMemory)
	return companies, total, nil
}

func (s *PostgresStore) GetCompany(ctx context.Context, key string) (model.Company, error) {
	companies, _, err := s.ListCompanies(ctx, CompanyQuery{Keys: []string{key}, Limit: 1})
	if err != nil {
		return model.Company{}, err
	}
	if len(companies) == 0 {
		return model.Company{}, eris.Wrapf(model.ErrCompanyNotFound, "postgres: get company %q", key)
	}
	return companies[0], nil
}

func (s *PostgresStore) GetPillarRecord(ctx context.Context, pt model.PillarType, key string) (pillar.Record, error) {
	recs, err := s.GetPillarRecords(ctx, pt, []string{key})
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return recs[0], nil
}

func (s *PostgresStore) GetPillarRecords(ctx context.Context, pt model.PillarType, keys []string) ([]pillar.Record, error) {
	p, err := fields.Lookup(pt)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: pillar records")
	}
	if len(keys) == 0 {
		return []pillar.Record{}, nil
	}

	sql, args := pillarSQL(p, keys, true)
	recs, err := s.query(ctx, sql, args...)
	if err != nil {
		return nil, wrapRead(err, "postgres: read "+p.Table)
	}
	return recs, nil
}

func (s *PostgresStore) query(ctx context.Context, sql string, args ...any) ([]pillar.Record, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, rowToRecord)
}

// rowToRecord keys a row's values by column name.
func rowToRecord(row pgx.CollectableRow) (pillar.Record, error) {
	vals, err := row.Values()
	if err != nil {
		return nil, err
	}
	descs := row.FieldDescriptions()
	rec := make(pillar.Record, len(descs))
	for i, fd := range descs {
		rec[fd.Name] = pgValue(vals[i])
	}
	return rec, nil
}

// pgValue unwraps driver types the coercers don't know about.
func pgValue(v any) any {
	switch x := v.(type) {
	case pgtype.Numeric:
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case pgtype.Date:
		if !x.Valid {
			return nil
		}
		return x.Time
	case pgtype.Text:
		if !x.Valid {
			return nil
		}
		return x.String
	}
	return v
}
