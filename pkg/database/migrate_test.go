package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"testing/fstest"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMigrations() fstest.MapFS {
	return fstest.MapFS{
		"002_orders.up.sql":    {Data: []byte("CREATE TABLE orders (id TEXT)")},
		"001_reviews.up.sql":   {Data: []byte("CREATE TABLE reviews (id TEXT)")},
		"001_reviews.down.sql": {Data: []byte("DROP TABLE reviews")},
		"README.md":            {Data: []byte("docs")},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestPendingMigrations_SortedUpOnly(t *testing.T) {
	names, err := PendingMigrations(testMigrations())
	require.NoError(t, err)
	assert.Equal(t, []string{"001_reviews.up.sql", "002_orders.up.sql"}, names)
}

func TestRunMigrations_AppliesNewAndSkipsApplied(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	mock.ExpectQuery("SELECT EXISTS").WithArgs("001_reviews.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	mock.ExpectQuery("SELECT EXISTS").WithArgs("002_orders.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE orders").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("002_orders.up.sql").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, RunMigrations(context.Background(), mock, testMigrations(), quietLogger()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_SQLErrorRollsBackWithoutRetry(t *testing.T) {
	mock, err := NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("001_reviews.up.sql").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE reviews").WillReturnError(errors.New("syntax error at or near \"TEXT\""))
	mock.ExpectRollback()

	err = RunMigrations(context.Background(), mock, testMigrations(), quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "execute migration 001_reviews.up.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}
