package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements RecordStore using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
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
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS merit_records (
	id         BIGSERIAL PRIMARY KEY,
	university TEXT NOT NULL,
	campus     TEXT NOT NULL,
	department TEXT NOT NULL,
	program    TEXT NOT NULL,
	year       INTEGER NOT NULL,
	min_merit  DOUBLE PRECISION NOT NULL,
	max_merit  DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_merit_records_university ON merit_records(university);
CREATE INDEX IF NOT EXISTS idx_merit_records_year ON merit_records(year);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// recordColumns is the COPY column order for bulk inserts.
var recordColumns = []string{"university", "campus", "department", "program", "year", "min_merit", "max_merit"}

func (s *PostgresStore) InsertRecords(ctx context.Context, records []model.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.University, r.Campus, r.Department, r.Program, r.Year, r.MinMerit, r.MaxMerit}
	}

	n, err := s.pool.CopyFrom(ctx, pgx.Identifier{"merit_records"}, recordColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrap(err, "postgres: copy records")
	}
	return n, nil
}

func (s *PostgresStore) ListRecords(ctx context.Context) ([]model.Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT university, campus, department, program, year, min_merit, max_merit
		 FROM merit_records ORDER BY id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list records")
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.University, &r.Campus, &r.Department, &r.Program, &r.Year, &r.MinMerit, &r.MaxMerit); err != nil {
			return nil, eris.Wrap(err, "postgres: scan record")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list records iterate")
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM merit_records`).Scan(&n)
	return n, eris.Wrap(err, "postgres: count records")
}

func (s *PostgresStore) Truncate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE merit_records`)
	return eris.Wrap(err, "postgres: truncate records")
}
