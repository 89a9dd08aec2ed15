// Package store reads companies and pillar rows from the backend: hosted
// Postgres in production, a local SQLite file for offline work and tests.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/db"
	"github.com/sells-group/targets-navigator/internal/model"
	"github.com/sells-group/targets-navigator/internal/pillar"
	"github.com/sells-group/targets-navigator/internal/ranking"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// CompanyQuery selects, orders and windows overview rows.
type CompanyQuery struct {
	Filters model.CompanyFilters
	// Bands resolves Filters.RevenueBands labels. Nil means ranking.DefaultBands.
	Bands ranking.Bands
	// Keys restricts the result to these companies when non-empty.
	Keys []string

	Sort ranking.SortKey
	Dir  ranking.Direction

	// Limit of zero returns every matching row.
	Limit  int
	Offset int
}

// Store is the backend read contract.
type Store interface {
	// ListCompanies returns one page of companies and the total number of
	// matches before windowing.
	ListCompanies(ctx context.Context, q CompanyQuery) ([]model.Company, int, error)
	GetCompany(ctx context.Context, key string) (model.Company, error)

	// GetPillarRecord returns the raw pillar row for key, or nil when the
	// company has no row in that pillar's table.
	GetPillarRecord(ctx context.Context, pt model.PillarType, key string) (pillar.Record, error)
	GetPillarRecords(ctx context.Context, pt model.PillarType, keys []string) ([]pillar.Record, error)

	Ping(ctx context.Context) error
	Close() error
}

// Seeder is implemented by stores that can create their schema and load fixtures.
type Seeder interface {
	Migrate(ctx context.Context) error
	Seed(ctx context.Context, f *Fixture) (int64, error)
}

// Options configures Open.
type Options struct {
	Driver      string
	DatabaseURL string
	Pool        db.PoolConfig
}

// Open connects the store selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverPostgres, "":
		return NewPostgres(ctx, opts.DatabaseURL, opts.Pool)
	case DriverSQLite:
		return NewSQLite(opts.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", opts.Driver)
	}
}

// wrapRead wraps a failed backend read. Failures that never reached a
// server (dial, pool, protocol) surface as model.ErrBackendUnavailable;
// errors the server itself reported and caller cancellation keep their
// identity.
func wrapRead(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return eris.Wrap(err, action)
	}
	return eris.Wrapf(model.ErrBackendUnavailable, "%s: %v", action, err)
}
