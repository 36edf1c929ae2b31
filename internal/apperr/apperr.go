// Package apperr defines the sentinel errors surfaced by the movie server.
// The auth service is the single boundary that remaps low-level token and
// store failures into the coarse ErrInvalidCredentials outcome.
package apperr

import "errors"

var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	// Token errors. Codec-level signals only; never returned to HTTP callers
	// from login/refresh, which collapse them into ErrInvalidCredentials.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Persistence errors
	ErrConflict = errors.New("already exists")
	ErrNotFound = errors.New("not found")

	// External catalog errors
	ErrExternalAPI = errors.New("external api error")

	// Request errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("unauthenticated")
)
