package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/relocate-cli/internal/model"
)

// Pool is the pgx pool surface the snapshot uses. pgxmock implements it
// for unit tests.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresSnapshot implements Snapshot using pgx.
type PostgresSnapshot struct {
	pool Pool
}

// NewPostgres creates a PostgresSnapshot with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresSnapshot, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresSnapshot{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool (or a pgxmock pool in tests).
func NewPostgresFromPool(pool Pool) *PostgresSnapshot {
	return &PostgresSnapshot{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS dataset_loads (
	id        TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	loaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS price_rows (
	metro_name TEXT NOT NULL,
	state      TEXT NOT NULL DEFAULT '',
	period     DATE NOT NULL,
	value      DOUBLE PRECISION NOT NULL CHECK (value > 0),
	PRIMARY KEY (metro_name, state, period)
);

CREATE INDEX IF NOT EXISTS idx_price_rows_metro ON price_rows(metro_name, state);
`

func (s *PostgresSnapshot) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresSnapshot) Close() error {
	s.pool.Close()
	return nil
}

// Replace swaps the stored dataset inside one transaction. Rows go in via
// the COPY protocol.
func (s *PostgresSnapshot) Replace(ctx context.Context, rows []model.Row) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM price_rows`); err != nil {
		return eris.Wrap(err, "postgres: clear rows")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM dataset_loads`); err != nil {
		return eris.Wrap(err, "postgres: clear loads")
	}

	copyRows := make([][]any, len(rows))
	for i, r := range rows {
		copyRows[i] = []any{r.MetroName, r.State, r.Period, r.Value}
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"price_rows"},
		[]string{"metro_name", "state", "period", "value"},
		pgx.CopyFromRows(copyRows),
	); err != nil {
		return eris.Wrap(err, "postgres: copy rows")
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO dataset_loads (id, loaded_at) VALUES ($1, $2)`,
		uuid.New().String(), time.Now().UTC(),
	); err != nil {
		return eris.Wrap(err, "postgres: record load")
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit")
}

func (s *PostgresSnapshot) Rows(ctx context.Context) ([]model.Row, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT metro_name, state, period, value FROM price_rows ORDER BY metro_name, state, period`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: select rows")
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		var r model.Row
		if err := rows.Scan(&r.MetroName, &r.State, &r.Period, &r.Value); err != nil {
			return nil, eris.Wrap(err, "postgres: scan row")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate rows")
}

func (s *PostgresSnapshot) Stats(ctx context.Context) (SnapshotStats, error) {
	var st SnapshotStats

	row := s.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT (metro_name, state)), COUNT(*),
		       COALESCE(MIN(period), 'epoch'::date), COALESCE(MAX(period), 'epoch'::date)
		FROM price_rows`)
	if err := row.Scan(&st.Metros, &st.Rows, &st.First, &st.Last); err != nil {
		return st, eris.Wrap(err, "postgres: stats")
	}

	var loadedAt time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT loaded_at FROM dataset_loads ORDER BY loaded_at DESC LIMIT 1`).Scan(&loadedAt)
	if err != nil && err != pgx.ErrNoRows {
		return st, eris.Wrap(err, "postgres: stats loaded_at")
	}
	if err == nil {
		st.LoadedAt = loadedAt
	}
	return st, nil
}
