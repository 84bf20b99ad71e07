package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSettingsRepo(t *testing.T) (*sqlSettingsRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return &sqlSettingsRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
		now:    func() time.Time { return fixed },
	}, mock
}

// ── Get ─────────────────────────────────────────────────────────────────────

func TestSQLSettingsGet_Found(t *testing.T) {
	repo, mock := newTestSettingsRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM settings WHERE key = ?")).
		WithArgs(KeyAppPINHash).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("1509442"))

	value, ok, err := repo.Get(context.Background(), KeyAppPINHash)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1509442", value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSettingsGet_Missing(t *testing.T) {
	repo, mock := newTestSettingsRepo(t)

	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("absent").
		WillReturnError(sql.ErrNoRows)

	value, ok, err := repo.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSQLSettingsGet_DBError(t *testing.T) {
	repo, mock := newTestSettingsRepo(t)

	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("k").
		WillReturnError(errors.New("disk I/O error"))

	_, ok, err := repo.Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrScanningRow)
}

// ── Set ─────────────────────────────────────────────────────────────────────

func TestSQLSettingsSet_Upserts(t *testing.T) {
	repo, mock := newTestSettingsRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settings (key,value,updated_at) VALUES (?,?,?) ON CONFLICT(key)")).
		WithArgs(KeyAppLockEnabled, "true", time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Set(context.Background(), KeyAppLockEnabled, "true"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSettingsSet_DBError(t *testing.T) {
	repo, mock := newTestSettingsRepo(t)

	mock.ExpectExec("INSERT INTO settings").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("readonly database"))

	err := repo.Set(context.Background(), "k", "v")
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

// ── Delete ──────────────────────────────────────────────────────────────────

func TestSQLSettingsDelete(t *testing.T) {
	repo, mock := newTestSettingsRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM settings WHERE key = ?")).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "k"))
	require.NoError(t, mock.ExpectationsWereMet())
}
