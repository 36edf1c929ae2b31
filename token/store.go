package token

import (
	"context"
	"time"
)

// RefreshTokenRecord is the server-side record of an issued refresh token.
// Records are never deleted; revocation and expiry only flip flags, leaving
// an append/update-only log of session history.
type RefreshTokenRecord struct {
	ID        int64
	Token     string // the signed token string, unique
	UserID    int64  // owning identity
	Kind      Kind   // currently always KindRefresh
	CreatedAt time.Time
	ExpiresAt time.Time
	Expired   bool
	Revoked   bool
}

// Live reports whether the record can still be exchanged for a new pair.
func (r *RefreshTokenRecord) Live(now time.Time) bool {
	return !r.Expired && !r.Revoked && now.Before(r.ExpiresAt)
}

// Store is the durable refresh-token log.
type Store interface {
	// Save persists a new record. Fails with apperr.ErrConflict if the token
	// string already exists.
	Save(ctx context.Context, rec *RefreshTokenRecord) error

	// FindByToken returns the record for the given token string, or
	// apperr.ErrNotFound.
	FindByToken(ctx context.Context, tokenStr string) (*RefreshTokenRecord, error)

	// FindLiveByOwner returns all records for userID with both flags false.
	FindLiveByOwner(ctx context.Context, userID int64) ([]*RefreshTokenRecord, error)

	// Revoke sets expired and revoked on the record for tokenStr, but only if
	// it is not already flagged. Returns whether this call made the
	// transition; revoking twice, or revoking an unknown token, is a no-op
	// reporting false. The conditional update is what makes concurrent
	// refreshes of the same token first writer wins.
	Revoke(ctx context.Context, tokenStr string) (bool, error)
}
