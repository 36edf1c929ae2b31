// Package auth orchestrates login, refresh, and logout: it verifies
// credentials, mints token pairs, rotates refresh tokens, and revokes
// sessions. It is the single boundary that remaps codec and store failures
// into apperr.ErrInvalidCredentials so callers cannot tell which failure mode
// occurred.
package auth

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/token"
	"github.com/filmvault/movie-server/users"
)

// TokenPair is what a successful login or refresh returns.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Repos holds the repository dependencies for the Service.
type Repos struct {
	Users  users.UserRepo // identity lookup by email
	Tokens token.Store    // durable refresh-token log
}

// Service is the session manager.
type Service struct {
	repos      Repos
	codec      *token.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	nowFunc    func() time.Time
}

type ServiceOption func(*Service)

// WithTokenTTLs sets the access and refresh token lifetimes.
func WithTokenTTLs(access, refresh time.Duration) ServiceOption {
	return func(s *Service) {
		s.accessTTL = access
		s.refreshTTL = refresh
	}
}

// WithNowFunc sets the now time function (primarily for testing)
func WithNowFunc(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = now
	}
}

func NewService(repos Repos, codec *token.Codec, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.Tokens == nil {
		return nil, errors.New("[NewService] Tokens store is required")
	}
	if codec == nil {
		return nil, errors.New("[NewService] codec is required")
	}

	s := &Service{
		repos:      repos,
		codec:      codec,
		accessTTL:  15 * time.Minute,
		refreshTTL: 7 * 24 * time.Hour,
		nowFunc:    time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login verifies the credentials and returns a fresh token pair. A missing
// user and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "[Service.Login] GetByEmail")
	}
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		log.Warn().Str("email", email).Msg("login failed: password mismatch")
		return nil, apperr.ErrInvalidCredentials
	}
	return s.issueTokenPair(ctx, user)
}

// Refresh exchanges a live refresh token for a new pair, consuming the old
// one. A refresh token is single use: the first caller to present it wins
// and every later use fails with ErrInvalidCredentials.
func (s *Service) Refresh(ctx context.Context, oldRefresh string) (*TokenPair, error) {
	claims, err := s.codec.Decode(oldRefresh)
	if err != nil {
		log.Warn().Err(err).Msg("refresh rejected: undecodable token")
		return nil, apperr.ErrInvalidCredentials
	}
	if claims.Kind != token.KindRefresh {
		log.Warn().Str("kind", string(claims.Kind)).Msg("refresh rejected: wrong token kind")
		return nil, apperr.ErrInvalidCredentials
	}

	user, err := s.repos.Users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if stderrors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "[Service.Refresh] GetByEmail")
	}

	rec, err := s.repos.Tokens.FindByToken(ctx, oldRefresh)
	if err != nil {
		if stderrors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "[Service.Refresh] FindByToken")
	}
	if !rec.Live(s.nowFunc()) {
		log.Warn().Int64("userId", rec.UserID).Msg("refresh rejected: token not live")
		return nil, apperr.ErrInvalidCredentials
	}

	// Consume the old token. Revoke only reports true for the caller that
	// flipped the flags, so a racing second use of the same token loses here.
	transitioned, err := s.repos.Tokens.Revoke(ctx, oldRefresh)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Refresh] Revoke")
	}
	if !transitioned {
		return nil, apperr.ErrInvalidCredentials
	}

	return s.issueTokenPair(ctx, user)
}

// Logout revokes every live refresh token of the calling identity. The
// identity comes from the request principal when present, otherwise from
// decoding rawBearer, tolerating an already-expired access token. If neither
// path resolves an identity this is a silent no-op.
func (s *Service) Logout(ctx context.Context, rawBearer string) error {
	user := s.logoutUser(ctx, rawBearer)
	if user == nil {
		log.Debug().Msg("logout: no identity resolved")
		return nil
	}
	return s.revokeAllUserTokens(ctx, user)
}

// Authenticate resolves a raw bearer token into a Principal. Only a
// well-signed, unexpired ACCESS token naming a known user succeeds; every
// other outcome is ErrUnauthenticated so the transport layer can decide
// whether to fail open.
func (s *Service) Authenticate(ctx context.Context, raw string) (*Principal, error) {
	claims, err := s.codec.Decode(raw)
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}
	if claims.Kind != token.KindAccess {
		log.Warn().Str("kind", string(claims.Kind)).Msg("bearer rejected: not an access token")
		return nil, apperr.ErrUnauthenticated
	}
	user, err := s.repos.Users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, apperr.ErrUnauthenticated
	}
	return NewPrincipal(user), nil
}

func (s *Service) logoutUser(ctx context.Context, rawBearer string) *users.User {
	if p, ok := PrincipalFromContext(ctx); ok {
		return p.User
	}
	if rawBearer == "" {
		return nil
	}
	claims, err := s.codec.Decode(rawBearer)
	if err != nil && !stderrors.Is(err, apperr.ErrTokenExpired) {
		return nil
	}
	if claims == nil || claims.Subject == "" {
		return nil
	}
	user, err := s.repos.Users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil
	}
	return user
}

func (s *Service) revokeAllUserTokens(ctx context.Context, user *users.User) error {
	live, err := s.repos.Tokens.FindLiveByOwner(ctx, user.ID)
	if err != nil {
		return errors.Wrap(err, "[Service.revokeAllUserTokens] FindLiveByOwner")
	}
	for _, rec := range live {
		if _, err := s.repos.Tokens.Revoke(ctx, rec.Token); err != nil {
			return errors.Wrap(err, "[Service.revokeAllUserTokens] Revoke")
		}
	}
	log.Debug().Int64("userId", user.ID).Int("revoked", len(live)).Msg("logged out")
	return nil
}

// issueTokenPair mints an access token carrying userId and role claims and a
// refresh token, persists the refresh token record, and returns both.
func (s *Service) issueTokenPair(ctx context.Context, user *users.User) (*TokenPair, error) {
	extra := map[string]any{
		"userId": user.ID,
		"role":   string(user.Role),
	}
	access, err := s.codec.Issue(user.Email, token.KindAccess, extra, s.accessTTL)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.issueTokenPair] issue access")
	}
	refresh, err := s.codec.Issue(user.Email, token.KindRefresh, nil, s.refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.issueTokenPair] issue refresh")
	}

	now := s.nowFunc()
	rec := &token.RefreshTokenRecord{
		Token:     refresh,
		UserID:    user.ID,
		Kind:      token.KindRefresh,
		CreatedAt: now,
		ExpiresAt: now.Add(s.refreshTTL),
	}
	// A duplicate here means jti generation failed us; treat it as a
	// persistence-layer integrity failure, not a credential problem.
	if err := s.repos.Tokens.Save(ctx, rec); err != nil {
		return nil, errors.Wrap(err, "[Service.issueTokenPair] save refresh record")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
