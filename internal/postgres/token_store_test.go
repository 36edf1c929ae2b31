package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/token"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testRecord() *token.RefreshTokenRecord {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &token.RefreshTokenRecord{
		Token:     "raw.refresh.token",
		UserID:    7,
		Kind:      token.KindRefresh,
		CreatedAt: now,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
	}
}

func TestTokenStore_Save(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewTokenStore(db)
	rec := testRecord()

	mock.ExpectQuery(regexp.QuoteMeta(qTokenSave)).
		WithArgs(rec.Token, rec.UserID, string(rec.Kind), rec.CreatedAt, rec.ExpiresAt, false, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	require.NoError(t, store.Save(context.Background(), rec))
	require.Equal(t, int64(1), rec.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenStore_Save_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewTokenStore(db)
	rec := testRecord()

	mock.ExpectQuery(regexp.QuoteMeta(qTokenSave)).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	require.ErrorIs(t, store.Save(context.Background(), rec), apperr.ErrConflict)
}

func TestTokenStore_FindByToken(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewTokenStore(db)
	rec := testRecord()

	rows := sqlmock.NewRows([]string{"id", "token", "user_id", "kind", "created_at", "expires_at", "expired", "revoked"}).
		AddRow(int64(1), rec.Token, rec.UserID, string(rec.Kind), rec.CreatedAt, rec.ExpiresAt, false, false)
	mock.ExpectQuery(regexp.QuoteMeta(qTokenFind)).
		WithArgs(rec.Token).
		WillReturnRows(rows)

	found, err := store.FindByToken(context.Background(), rec.Token)
	require.NoError(t, err)
	require.Equal(t, rec.UserID, found.UserID)
	require.True(t, found.Live(rec.CreatedAt))
}

func TestTokenStore_FindByToken_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewTokenStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(qTokenFind)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.FindByToken(context.Background(), "missing")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTokenStore_Revoke_Transitions(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewTokenStore(db)

	mock.ExpectExec(regexp.QuoteMeta(qTokenRevoke)).
		WithArgs("raw.refresh.token").
		WillReturnResult(sqlmock.NewResult(0, 1))

	transitioned, err := store.Revoke(context.Background(), "raw.refresh.token")
	require.NoError(t, err)
	require.True(t, transitioned)
}

func TestTokenStore_Revoke_AlreadyFlaggedOrMissing(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewTokenStore(db)

	mock.ExpectExec(regexp.QuoteMeta(qTokenRevoke)).
		WithArgs("raw.refresh.token").
		WillReturnResult(sqlmock.NewResult(0, 0))

	transitioned, err := store.Revoke(context.Background(), "raw.refresh.token")
	require.NoError(t, err)
	require.False(t, transitioned)
}

func TestTokenStore_FindLiveByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewTokenStore(db)
	rec := testRecord()

	rows := sqlmock.NewRows([]string{"id", "token", "user_id", "kind", "created_at", "expires_at", "expired", "revoked"}).
		AddRow(int64(1), "token-a", rec.UserID, string(rec.Kind), rec.CreatedAt, rec.ExpiresAt, false, false).
		AddRow(int64(2), "token-b", rec.UserID, string(rec.Kind), rec.CreatedAt, rec.ExpiresAt, false, false)
	mock.ExpectQuery(regexp.QuoteMeta(qTokenFindLive)).
		WithArgs(rec.UserID).
		WillReturnRows(rows)

	live, err := store.FindLiveByOwner(context.Background(), rec.UserID)
	require.NoError(t, err)
	require.Len(t, live, 2)
}
