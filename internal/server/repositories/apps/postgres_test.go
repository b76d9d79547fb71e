package apps

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertAppQ = `(?s)^\s*INSERT\s+INTO\s+apps\s*\(name\)\s*VALUES\s*\(\$1\)\s*RETURNING\s+id,\s*created_at\s*$`
	selectAppQ = `(?s)^\s*SELECT\s+id,\s*name,\s*created_at\s+FROM\s+apps\s+WHERE\s+name\s*=\s*\$1\s*$`
	ensureAppQ = `(?s)^\s*INSERT\s+INTO\s+apps\s*\(name\)\s*VALUES\s*\(\$1\)\s*ON\s+CONFLICT\s*\(name\)\s*DO\s+NOTHING\s*$`
	deleteAppQ = `(?s)^\s*DELETE\s+FROM\s+apps\s+WHERE\s+name\s*=\s*\$1\s*$`
)

func newRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(insertAppQ).WithArgs("weather").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), time.Now()))

	app, err := repo.Create(context.Background(), "weather")
	require.NoError(t, err)
	assert.Equal(t, int64(7), app.ID)
	assert.Equal(t, "weather", app.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(insertAppQ).WithArgs("weather").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), "weather")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestGetByName(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(selectAppQ).WithArgs("cook").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).AddRow(int64(3), "cook", time.Now()))
	mock.ExpectQuery(selectAppQ).WithArgs("ghost").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(selectAppQ).WithArgs("cook").WillReturnError(errors.New("db err"))

	app, err := repo.GetByName(context.Background(), "cook")
	require.NoError(t, err)
	assert.Equal(t, int64(3), app.ID)

	_, err = repo.GetByName(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetByName(context.Background(), "cook")
	require.ErrorContains(t, err, "db error: db err")
}

func TestEnsure(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(ensureAppQ).WithArgs("weather").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(ensureAppQ).WithArgs("cook").WillReturnError(errors.New("db err"))

	require.NoError(t, repo.Ensure(context.Background(), "weather"))
	require.Error(t, repo.Ensure(context.Background(), "cook"))
}

func TestDelete(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(deleteAppQ).WithArgs("weather").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteAppQ).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(deleteAppQ).WithArgs("x").WillReturnError(errors.New("db err"))

	require.NoError(t, repo.Delete(context.Background(), "weather"))
	require.NoError(t, repo.Delete(context.Background(), "ghost"))
	require.Error(t, repo.Delete(context.Background(), "x"))
}
