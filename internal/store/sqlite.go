package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/targets-navigator/internal/fields"
	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/pillar"
)

// SQLiteStore implements Store over a local SQLite snapshot of the backend.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens the database at dsn and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		return nil, eris.New("sqlite: empty dsn")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// :memory: databases are per connection.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schemaSQL(false))
	return eris.Wrap(err, "sqlite: migrate")
}

// Seed upserts every fixture row in one transaction.
func (s *SQLiteStore) Seed(ctx context.Context, f *Fixture) (int64, error) {
	batches, err := f.rows(false)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: seed: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var n int64
	for _, b := range batches {
		if len(b.rows) == 0 {
			continue
		}
		cols := b.table.names()
		stmt := fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
			quote(b.table.name), quoteAll(cols), strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
		for _, row := range b.rows {
			if _, err := tx.ExecContext(ctx, stmt, row...); err != nil {
				return 0, eris.Wrapf(err, "sqlite: seed %s", b.table.name)
			}
			n++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: seed: commit")
	}
	return n, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return wrapRead(err, "sqlite: ping")
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListCompanies(ctx context.Context, q CompanyQuery) ([]model.Company, int, error) {
	query, args, inMemory := listSQL(q, false)
	recs, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapRead(err, "sqlite: list companies")
	}
	companies, total := page(recs, q, inMemory)
	return companies, total, nil
}

func (s *SQLiteStore) GetCompany(ctx context.Context, key string) (model.Company, error) {
	companies, _, err := s.ListCompanies(ctx, CompanyQuery{Keys: []string{key}, Limit: 1})
	if err != nil {
		return model.Company{}, err
	}
	if len(companies) == 0 {
		return model.Company{}, eris.Wrapf(model.ErrCompanyNotFound, "sqlite: get company %q", key)
	}
	return companies[0], nil
}

func (s *SQLiteStore) GetPillarRecord(ctx context.Context, pt model.PillarType, key string) (pillar.Record, error) {
	recs, err := s.GetPillarRecords(ctx, pt, []string{key})
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	return recs[0], nil
}

func (s *SQLiteStore) GetPillarRecords(ctx context.Context, pt model.PillarType, keys []string) ([]pillar.Record, error) {
	p, err := fields.Lookup(pt)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: pillar records")
	}
	if len(keys) == 0 {
		return []pillar.Record{}, nil
	}

	query, args := pillarSQL(p, keys, false)
	recs, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, wrapRead(err, "sqlite: read "+p.Table)
	}
	return recs, nil
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]pillar.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var recs []pillar.Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(pillar.Record, len(cols))
		for i, col := range cols {
			rec[col] = sqliteValue(col, vals[i])
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// sqliteValue decodes array columns stored as JSON text. A value that is
// not valid JSON is passed through for the coercers to reject.
func sqliteValue(col string, v any) any {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	s, ok := v.(string)
	if !ok || !jsonColumns[col] {
		return v
	}
	var items []any
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return v
	}
	return items
}
