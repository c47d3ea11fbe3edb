package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/scanmark/rostersync/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostgresRegistry(t *testing.T) (*postgresRegistry, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	reg := &postgresRegistry{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return reg, mock, db
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return payload
}

func TestPostgresPut_Stored(t *testing.T) {
	reg, mock, db := newTestPostgresRegistry(t)
	defer db.Close()

	snapshot := testSnapshot()
	mock.ExpectExec("INSERT INTO sync_tickets").
		WithArgs("sync:123456", mustMarshal(t, snapshot), float64(600)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	stored, err := reg.Put(context.Background(), "123456", snapshot, 600*time.Second)
	require.NoError(t, err)
	assert.True(t, stored)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPut_LiveCodeRefused(t *testing.T) {
	reg, mock, db := newTestPostgresRegistry(t)
	defer db.Close()

	// zero rows affected: the conflict target held a live ticket
	mock.ExpectExec("INSERT INTO sync_tickets").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	stored, err := reg.Put(context.Background(), "123456", testSnapshot(), 600*time.Second)
	require.NoError(t, err)
	assert.False(t, stored)
}

func TestPostgresPut_ExecError(t *testing.T) {
	reg, mock, db := newTestPostgresRegistry(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO sync_tickets").
		WillReturnError(errors.New("connection refused"))

	_, err := reg.Put(context.Background(), "123456", testSnapshot(), 600*time.Second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestPostgresPut_UniqueViolationMeansOccupied(t *testing.T) {
	reg, mock, db := newTestPostgresRegistry(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO sync_tickets").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	stored, err := reg.Put(context.Background(), "123456", testSnapshot(), 600*time.Second)
	require.NoError(t, err)
	assert.False(t, stored)
}

func TestPostgresGet_Found(t *testing.T) {
	reg, mock, db := newTestPostgresRegistry(t)
	defer db.Close()

	snapshot := testSnapshot()
	rows := sqlmock.NewRows([]string{"snapshot"}).AddRow(mustMarshal(t, snapshot))
	mock.ExpectQuery("SELECT snapshot FROM sync_tickets").
		WithArgs("sync:123456").
		WillReturnRows(rows)

	got, err := reg.Get(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}

func TestPostgresGet_Miss(t *testing.T) {
	reg, mock, db := newTestPostgresRegistry(t)
	defer db.Close()

	mock.ExpectQuery("SELECT snapshot FROM sync_tickets").
		WithArgs("sync:999999").
		WillReturnError(sql.ErrNoRows)

	_, err := reg.Get(context.Background(), "999999")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestPostgresTakeOnce_Found(t *testing.T) {
	reg, mock, db := newTestPostgresRegistry(t)
	defer db.Close()

	snapshot := testSnapshot()
	rows := sqlmock.NewRows([]string{"snapshot"}).AddRow(mustMarshal(t, snapshot))
	mock.ExpectQuery("DELETE FROM sync_tickets").
		WithArgs("sync:123456").
		WillReturnRows(rows)

	got, err := reg.TakeOnce(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}

func TestPostgresTakeOnce_Miss(t *testing.T) {
	reg, mock, db := newTestPostgresRegistry(t)
	defer db.Close()

	mock.ExpectQuery("DELETE FROM sync_tickets").
		WithArgs("sync:123456").
		WillReturnError(sql.ErrNoRows)

	_, err := reg.TakeOnce(context.Background(), "123456")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestPostgresTakeOnce_CorruptPayload(t *testing.T) {
	reg, mock, db := newTestPostgresRegistry(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"snapshot"}).AddRow([]byte("{not json"))
	mock.ExpectQuery("DELETE FROM sync_tickets").
		WithArgs("sync:123456").
		WillReturnRows(rows)

	_, err := reg.TakeOnce(context.Background(), "123456")
	assert.ErrorIs(t, err, ErrDecodingSnapshot)
}

func TestPostgresCleanupExpired(t *testing.T) {
	reg, mock, db := newTestPostgresRegistry(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sync_tickets WHERE expires_at").
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := reg.CleanupExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
