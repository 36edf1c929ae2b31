package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/pkg/errors"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/users"
)

var _ users.UserRepo = (*UserRepo)(nil)

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

const (
	qUserCreate = `
		INSERT INTO users (email, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, created_at
	`
	qUserByEmail = `
		SELECT id, email, username, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`
	qUserByID = `
		SELECT id, email, username, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`
)

func (ur *UserRepo) Create(ctx context.Context, user *users.User) error {
	err := ur.db.QueryRowContext(ctx, qUserCreate,
		user.Email, user.Username, user.PasswordHash, string(user.Role),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (ur *UserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return ur.scanOne(ur.db.QueryRowContext(ctx, qUserByEmail, email))
}

func (ur *UserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	return ur.scanOne(ur.db.QueryRowContext(ctx, qUserByID, id))
}

func (ur *UserRepo) scanOne(row *sql.Row) (*users.User, error) {
	user := &users.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, errors.Wrap(err, "scan user")
	}
	return user, nil
}
