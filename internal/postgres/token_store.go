package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/pkg/errors"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/token"
)

var _ token.Store = (*TokenStore)(nil)

// TokenStore persists refresh-token records. No delete statement exists:
// revoked and expired rows stay behind for audit.
type TokenStore struct {
	db DBTX
}

func NewTokenStore(db DBTX) *TokenStore {
	return &TokenStore{db: db}
}

const (
	qTokenSave = `
		INSERT INTO refresh_tokens (token, user_id, kind, created_at, expires_at, expired, revoked)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	qTokenFind = `
		SELECT id, token, user_id, kind, created_at, expires_at, expired, revoked
		FROM refresh_tokens
		WHERE token = $1
	`
	qTokenFindLive = `
		SELECT id, token, user_id, kind, created_at, expires_at, expired, revoked
		FROM refresh_tokens
		WHERE user_id = $1 AND NOT expired AND NOT revoked
	`
	qTokenRevoke = `
		UPDATE refresh_tokens
		SET expired = TRUE, revoked = TRUE
		WHERE token = $1 AND NOT expired AND NOT revoked
	`
)

func (ts *TokenStore) Save(ctx context.Context, rec *token.RefreshTokenRecord) error {
	err := ts.db.QueryRowContext(ctx, qTokenSave,
		rec.Token, rec.UserID, string(rec.Kind), rec.CreatedAt, rec.ExpiresAt, rec.Expired, rec.Revoked,
	).Scan(&rec.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return errors.Wrap(err, "insert refresh token")
	}
	return nil
}

func (ts *TokenStore) FindByToken(ctx context.Context, tokenStr string) (*token.RefreshTokenRecord, error) {
	rec := &token.RefreshTokenRecord{}
	err := ts.db.QueryRowContext(ctx, qTokenFind, tokenStr).Scan(
		&rec.ID, &rec.Token, &rec.UserID, &rec.Kind, &rec.CreatedAt, &rec.ExpiresAt, &rec.Expired, &rec.Revoked,
	)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, errors.Wrap(err, "find refresh token")
	}
	return rec, nil
}

func (ts *TokenStore) FindLiveByOwner(ctx context.Context, userID int64) ([]*token.RefreshTokenRecord, error) {
	rows, err := ts.db.QueryContext(ctx, qTokenFindLive, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find live refresh tokens")
	}
	defer rows.Close()

	live := make([]*token.RefreshTokenRecord, 0)
	for rows.Next() {
		rec := &token.RefreshTokenRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.Token, &rec.UserID, &rec.Kind, &rec.CreatedAt, &rec.ExpiresAt, &rec.Expired, &rec.Revoked,
		); err != nil {
			return nil, errors.Wrap(err, "scan refresh token")
		}
		live = append(live, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate refresh tokens")
	}
	return live, nil
}

// Revoke relies on the conditional UPDATE to serialise concurrent refreshes:
// only the statement that actually flips the flags reports an affected row.
func (ts *TokenStore) Revoke(ctx context.Context, tokenStr string) (bool, error) {
	res, err := ts.db.ExecContext(ctx, qTokenRevoke, tokenStr)
	if err != nil {
		return false, errors.Wrap(err, "revoke refresh token")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "revoke rows affected")
	}
	return affected > 0, nil
}
