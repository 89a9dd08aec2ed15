package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// CopyFrom bulk-inserts rows into table using the COPY protocol.
func CopyFrom(ctx context.Context, pool Pool, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := pool.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrapf(err, "db: COPY INTO %s", table)
	}
	return n, nil
}

// ReplaceConfig describes a keyed bulk replace.
type ReplaceConfig struct {
	Table   string
	KeyCol  string   // column identifying a row; must be in Columns
	Columns []string // columns being loaded, in row order
}

// Replace deletes any existing rows sharing a key with rows, then COPYs
// rows in, all in one transaction. Loading the same fixture twice leaves
// one copy of each row.
func Replace(ctx context.Context, pool Pool, cfg ReplaceConfig, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(cfg.Columns) == 0 {
		return 0, eris.New("db: replace: no columns specified")
	}
	keyIdx := -1
	for i, c := range cfg.Columns {
		if c == cfg.KeyCol {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return 0, eris.Errorf("db: replace: key column %q not among columns", cfg.KeyCol)
	}

	keys := make([]any, len(rows))
	for i, r := range rows {
		if len(r) != len(cfg.Columns) {
			return 0, eris.Errorf("db: replace: row %d has %d values, want %d", i, len(r), len(cfg.Columns))
		}
		keys[i] = r[keyIdx]
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "db: replace: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	del := fmt.Sprintf("DELETE FROM %s WHERE %s = ANY($1)",
		pgx.Identifier{cfg.Table}.Sanitize(), pgx.Identifier{cfg.KeyCol}.Sanitize())
	if _, err := tx.Exec(ctx, del, keys); err != nil {
		return 0, eris.Wrapf(err, "db: replace: delete from %s", cfg.Table)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{cfg.Table}, cfg.Columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrapf(err, "db: replace: COPY INTO %s", cfg.Table)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "db: replace: commit tx")
	}
	return n, nil
}
