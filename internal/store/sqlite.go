package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/relocate-cli/internal/model"
)

// SQLiteSnapshot implements Snapshot using modernc.org/sqlite.
type SQLiteSnapshot struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteSnapshot, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteSnapshot{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS dataset_loads (
	id        TEXT PRIMARY KEY,
	loaded_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS price_rows (
	metro_name TEXT NOT NULL,
	state      TEXT NOT NULL DEFAULT '',
	period     TEXT NOT NULL, -- ISO date, kept TEXT so MIN/MAX stay strings
	value      REAL NOT NULL CHECK (value > 0),
	PRIMARY KEY (metro_name, state, period)
);

CREATE INDEX IF NOT EXISTS idx_price_rows_metro ON price_rows(metro_name, state);
`

func (s *SQLiteSnapshot) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteSnapshot) Close() error {
	return s.db.Close()
}

// Replace swaps the stored dataset inside one transaction so readers never
// observe a partial load.
func (s *SQLiteSnapshot) Replace(ctx context.Context, rows []model.Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM price_rows`); err != nil {
		return eris.Wrap(err, "sqlite: clear rows")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_loads`); err != nil {
		return eris.Wrap(err, "sqlite: clear loads")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO price_rows (metro_name, state, period, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.MetroName, row.State, row.Period.Format("2006-01-02"), row.Value,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert row %s %s", row.MetroName, row.Period.Format("2006-01-02"))
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO dataset_loads (id, loaded_at) VALUES (?, ?)`,
		uuid.New().String(), time.Now().UTC(),
	); err != nil {
		return eris.Wrap(err, "sqlite: record load")
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit")
}

func (s *SQLiteSnapshot) Rows(ctx context.Context) ([]model.Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT metro_name, state, period, value FROM price_rows ORDER BY metro_name, state, period`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: select rows")
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		var r model.Row
		var period string
		if err := rows.Scan(&r.MetroName, &r.State, &period, &r.Value); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan row")
		}
		r.Period, err = time.Parse("2006-01-02", period)
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: parse period %q", period)
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate rows")
}

func (s *SQLiteSnapshot) Stats(ctx context.Context) (SnapshotStats, error) {
	var st SnapshotStats

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT metro_name || '|' || state), COUNT(*),
		       COALESCE(MIN(period), ''), COALESCE(MAX(period), '')
		FROM price_rows`)
	var first, last string
	if err := row.Scan(&st.Metros, &st.Rows, &first, &last); err != nil {
		return st, eris.Wrap(err, "sqlite: stats")
	}
	if first != "" {
		st.First, _ = time.Parse("2006-01-02", first)
		st.Last, _ = time.Parse("2006-01-02", last)
	}

	var loadedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT loaded_at FROM dataset_loads ORDER BY loaded_at DESC LIMIT 1`).Scan(&loadedAt)
	if err != nil && err != sql.ErrNoRows {
		return st, eris.Wrap(err, "sqlite: stats loaded_at")
	}
	if loadedAt.Valid {
		st.LoadedAt = loadedAt.Time
	}
	return st, nil
}
