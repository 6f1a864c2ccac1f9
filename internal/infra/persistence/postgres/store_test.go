package postgres

import (
	"context"
	"database/sql"
	"errors"
	"foodwhere/pkg/domain"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	createTable = `CREATE TABLE IF NOT EXISTS state`
	selectState = `SELECT payload FROM state WHERE bucket = $1`
	upsertState = `INSERT INTO state(bucket,payload) VALUES($1,$2) ON CONFLICT(bucket) DO UPDATE SET payload=EXCLUDED.payload`
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	var gotDriver, gotDSN string
	restore := OverrideSQLOpen(func(driverName, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driverName, dsn
		return db, nil
	})
	t.Cleanup(restore)

	mock.ExpectPing()
	mock.ExpectExec(regexp.QuoteMeta(createTable)).WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := NewStore(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, defaultDriver, gotDriver)
	assert.Equal(t, defaultDSN, gotDSN)
	return store, mock
}

func TestLoadWithoutRow(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(selectState)).WithArgs(Bucket).WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrNoSnapshot)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDecodesPayload(t *testing.T) {
	store, mock := newMockStore(t)
	payload := `{"stalls":[{"name":"Alex Chicken Rice","address":"Blk 30 Geylang Street 29, #06-40","details":["chickenrice"],"reviews":[]}]}`
	mock.ExpectQuery(regexp.QuoteMeta(selectState)).WithArgs(Bucket).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(payload)))

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Stalls, 1)
	assert.Equal(t, "Alex Chicken Rice", doc.Stalls[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCommits(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertState)).WithArgs(Bucket, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, store.Save(context.Background(), domain.Document{}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRollsBackOnUpsertFailure(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertState)).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.Save(context.Background(), domain.Document{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert stalls")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStorePingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(OverrideSQLOpen(func(string, string) (*sql.DB, error) { return db, nil }))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectClose()

	_, err = NewStore(context.Background(), "postgres://example/foodwhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping postgres")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStoreOpenFailure(t *testing.T) {
	t.Cleanup(OverrideSQLOpen(func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") }))
	_, err := NewStore(context.Background(), "::")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open postgres")
}
