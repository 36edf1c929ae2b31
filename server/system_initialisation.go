package server

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/internal/config"
	"github.com/filmvault/movie-server/users"
)

// InitialiseSystem seeds the initial admin account from configuration so a
// fresh deployment has someone who can log in. Without ADMIN_PASSWORD set the
// step is skipped entirely. Already-existing admins are left untouched.
func (s *Server) InitialiseSystem(ctx context.Context, config config.Config) error {
	password := config.GetAdminPassword()
	if password == "" {
		log.Debug().Msg("admin bootstrap skipped: no ADMIN_PASSWORD configured")
		return nil
	}

	email := config.GetAdminEmail()
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !stderrors.Is(err, apperr.ErrNotFound) {
		return fmt.Errorf("[Server InitialiseSystem] admin lookup: %w", err)
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return fmt.Errorf("[Server InitialiseSystem] hash admin password: %w", err)
	}
	admin := &users.User{
		Email:        email,
		Username:     config.GetAdminUsername(),
		PasswordHash: hash,
		Role:         users.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		// A concurrent replica may have won the race; that is still bootstrapped.
		if stderrors.Is(err, apperr.ErrConflict) {
			return nil
		}
		return fmt.Errorf("[Server InitialiseSystem] create admin: %w", err)
	}

	log.Info().Str("email", email).Msg("bootstrapped initial admin account")
	return nil
}
