package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return mock
}

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.Background(), nil, "company_overview", []string{"key"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom_Success(t *testing.T) {
	mock := newMock(t)
	mock.ExpectCopyFrom(pgx.Identifier{"companies_hydrogen"}, []string{"key", "H2Score"}).WillReturnResult(2)

	n, err := CopyFrom(context.Background(), mock, "companies_hydrogen", []string{"key", "H2Score"},
		[][]any{{"a", 7.0}, {"b", 4.5}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock := newMock(t)
	mock.ExpectCopyFrom(pgx.Identifier{"companies_hydrogen"}, []string{"key"}).WillReturnError(fmt.Errorf("copy failed"))

	_, err := CopyFrom(context.Background(), mock, "companies_hydrogen", []string{"key"}, [][]any{{"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO companies_hydrogen")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplace_Success(t *testing.T) {
	mock := newMock(t)
	cols := []string{"key", "finance_score"}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "company_financial" WHERE "key" = ANY\(\$1\)`).
		WithArgs([]any{"a", "b"}).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCopyFrom(pgx.Identifier{"company_financial"}, cols).WillReturnResult(2)
	mock.ExpectCommit()

	n, err := Replace(context.Background(), mock, ReplaceConfig{
		Table: "company_financial", KeyCol: "key", Columns: cols,
	}, [][]any{{"a", 6.0}, {"b", nil}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplace_RollsBackOnCopyError(t *testing.T) {
	mock := newMock(t)
	cols := []string{"key"}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM`).WithArgs([]any{"a"}).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"company_financial"}, cols).WillReturnError(fmt.Errorf("boom"))
	mock.ExpectRollback()

	_, err := Replace(context.Background(), mock, ReplaceConfig{
		Table: "company_financial", KeyCol: "key", Columns: cols,
	}, [][]any{{"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO company_financial")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplace_Validation(t *testing.T) {
	n, err := Replace(context.Background(), nil, ReplaceConfig{Table: "t"}, nil)
	assert.NoError(t, err)
	assert.Zero(t, n)

	_, err = Replace(context.Background(), nil, ReplaceConfig{Table: "t", KeyCol: "key"}, [][]any{{"a"}})
	assert.ErrorContains(t, err, "no columns specified")

	_, err = Replace(context.Background(), nil, ReplaceConfig{
		Table: "t", KeyCol: "id", Columns: []string{"key"},
	}, [][]any{{"a"}})
	assert.ErrorContains(t, err, "not among columns")

	_, err = Replace(context.Background(), nil, ReplaceConfig{
		Table: "t", KeyCol: "key", Columns: []string{"key", "v"},
	}, [][]any{{"a"}})
	assert.ErrorContains(t, err, "row 0 has 1 values")
}
