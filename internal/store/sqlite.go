package store

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

// SQLiteStore implements RecordStore using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
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
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS merit_records (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	university TEXT NOT NULL,
	campus     TEXT NOT NULL,
	department TEXT NOT NULL,
	program    TEXT NOT NULL,
	year       INTEGER NOT NULL,
	min_merit  REAL NOT NULL,
	max_merit  REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_merit_records_university ON merit_records(university);
CREATE INDEX IF NOT EXISTS idx_merit_records_year ON merit_records(year);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertRecords(ctx context.Context, records []model.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin insert")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO merit_records (university, campus, department, program, year, min_merit, max_merit)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close()

	var n int64
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.University, r.Campus, r.Department, r.Program, r.Year, r.MinMerit, r.MaxMerit,
		); err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert record for %s", r.University)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit insert")
	}
	return n, nil
}

func (s *SQLiteStore) ListRecords(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT university, campus, department, program, year, min_merit, max_merit
		 FROM merit_records ORDER BY id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.University, &r.Campus, &r.Department, &r.Program, &r.Year, &r.MinMerit, &r.MaxMerit); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list records iterate")
}

func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM merit_records`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count records")
}

func (s *SQLiteStore) Truncate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM merit_records`)
	return eris.Wrap(err, "sqlite: truncate records")
}
