package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgres creates a PostgresSnapshot backed by pgxmock for unit testing.
func newMockPostgres(t *testing.T) (*PostgresSnapshot, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresFromPool(mock), mock
}

func TestPostgresSnapshot_Replace(t *testing.T) {
	snap, mock := newMockPostgres(t)
	rows := fixtureRows()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM price_rows`).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`DELETE FROM dataset_loads`).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"price_rows"},
		[]string{"metro_name", "state", "period", "value"}).
		WillReturnResult(int64(len(rows)))
	mock.ExpectExec(`INSERT INTO dataset_loads`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, snap.Replace(context.Background(), rows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshot_Replace_RollsBackOnError(t *testing.T) {
	snap, mock := newMockPostgres(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM price_rows`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	require.Error(t, snap.Replace(context.Background(), fixtureRows()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshot_Rows(t *testing.T) {
	snap, mock := newMockPostgres(t)

	mock.ExpectQuery(`SELECT metro_name, state, period, value FROM price_rows`).
		WillReturnRows(pgxmock.NewRows([]string{"metro_name", "state", "period", "value"}).
			AddRow("Austin-Round Rock, TX", "TX", day("2024-01-31"), 300000.0).
			AddRow("Austin-Round Rock, TX", "TX", day("2024-02-29"), 330000.0))

	rows, err := snap.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Austin-Round Rock, TX", rows[0].MetroName)
	assert.Equal(t, 330000.0, rows[1].Value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshot_Stats(t *testing.T) {
	snap, mock := newMockPostgres(t)
	loaded := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(pgxmock.NewRows([]string{"metros", "rows", "first", "last"}).
			AddRow(2, 4, day("2024-01-31"), day("2024-02-29")))
	mock.ExpectQuery(`SELECT loaded_at FROM dataset_loads`).
		WillReturnRows(pgxmock.NewRows([]string{"loaded_at"}).AddRow(loaded))

	st, err := snap.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, st.Metros)
	assert.Equal(t, 4, st.Rows)
	assert.Equal(t, loaded, st.LoadedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshot_Stats_NoLoads(t *testing.T) {
	snap, mock := newMockPostgres(t)

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(pgxmock.NewRows([]string{"metros", "rows", "first", "last"}).
			AddRow(0, 0, day("1970-01-01"), day("1970-01-01")))
	mock.ExpectQuery(`SELECT loaded_at FROM dataset_loads`).
		WillReturnRows(pgxmock.NewRows([]string{"loaded_at"}))

	st, err := snap.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, st.Rows)
	assert.True(t, st.LoadedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}
