package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/targets-navigator/internal/db"
	"github.com/sells-group/targets-navigator/internal/fields"
)

// Migrate creates the backend tables when missing. The hosted backend
// already has them; this is for local and CI databases.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL(true)); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

// Seed replaces the fixture's rows table by table using COPY.
func (s *PostgresStore) Seed(ctx context.Context, f *Fixture) (int64, error) {
	batches, err := f.rows(true)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, b := range batches {
		n, err := db.Replace(ctx, s.pool, db.ReplaceConfig{
			Table:   b.table.name,
			KeyCol:  fields.KeyColumn,
			Columns: b.table.names(),
		}, b.rows)
		if err != nil {
			return total, eris.Wrapf(err, "postgres: seed %s", b.table.name)
		}
		total += n
	}
	return total, nil
}
