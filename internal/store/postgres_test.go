package store

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

func TestPostgres_Migrate(t *testing.T) {
	st, mock := newMockPostgresStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS merit_records").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, st.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_InsertRecords_CopyFrom(t *testing.T) {
	st, mock := newMockPostgresStore(t)

	mock.ExpectCopyFrom(pgx.Identifier{"merit_records"}, recordColumns).
		WillReturnResult(2)

	n, err := st.InsertRecords(context.Background(), sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_InsertRecords_Empty(t *testing.T) {
	st, mock := newMockPostgresStore(t)

	n, err := st.InsertRecords(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListRecords(t *testing.T) {
	st, mock := newMockPostgresStore(t)

	rows := pgxmock.NewRows([]string{"university", "campus", "department", "program", "year", "min_merit", "max_merit"}).
		AddRow("FAST", "Islamabad", "Computing", "BS", 2023, 80.0, 92.5)
	mock.ExpectQuery("SELECT university, campus, department").WillReturnRows(rows)

	got, err := st.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "FAST", got[0].University)
	assert.Equal(t, 92.5, got[0].MaxMerit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Count(t *testing.T) {
	st, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM merit_records`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	n, err := st.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestPostgres_Truncate(t *testing.T) {
	st, mock := newMockPostgresStore(t)

	mock.ExpectExec("TRUNCATE merit_records").
		WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))

	require.NoError(t, st.Truncate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
