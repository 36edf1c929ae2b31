package users

import "context"

// UserRepo is the identity lookup collaborator. Implementations return
// apperr.ErrNotFound when no user matches.
type UserRepo interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}
