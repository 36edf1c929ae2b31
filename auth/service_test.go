package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/filmvault/movie-server/auth"
	"github.com/filmvault/movie-server/internal/apperr"
	"github.com/filmvault/movie-server/token"
	faketokenstore "github.com/filmvault/movie-server/token/storefake"
	"github.com/filmvault/movie-server/users"
	fakeuserrepo "github.com/filmvault/movie-server/users/repofake"
)

const (
	testSecret       = "auth-service-test-secret"
	testUserEmail    = "john.doe@example.com"
	testUserPassword = "Password123!"
	accessTTL        = 15 * time.Minute
	refreshTTL       = 7 * 24 * time.Hour
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo *fakeuserrepo.FakeUserRepo
	tokens   *faketokenstore.FakeTokenStore
	codec    *token.Codec
	service  *auth.Service
}

// setupTestFixture builds a service with fakes and a pinned clock.
func setupTestFixture(t *testing.T, now time.Time) *testFixture {
	t.Helper()

	ur := fakeuserrepo.NewFakeUserRepo()
	ts := faketokenstore.NewFakeTokenStore()
	return rebuildFixture(t, ur, ts, now)
}

// rebuildFixture makes a new service over existing repos, used to move the
// clock forward while keeping stored state.
func rebuildFixture(t *testing.T, ur *fakeuserrepo.FakeUserRepo, ts *faketokenstore.FakeTokenStore, now time.Time) *testFixture {
	t.Helper()

	nowFunc := func() time.Time { return now }
	codec := token.NewCodec(token.NewHMACSigner([]byte(testSecret)), token.WithNowFunc(nowFunc))

	service, err := auth.NewService(
		auth.Repos{Users: ur, Tokens: ts},
		codec,
		auth.WithTokenTTLs(accessTTL, refreshTTL),
		auth.WithNowFunc(nowFunc),
	)
	require.NoError(t, err)

	return &testFixture{
		userRepo: ur,
		tokens:   ts,
		codec:    codec,
		service:  service,
	}
}

// createTestUser creates and stores a user with the default credentials.
func (f *testFixture) createTestUser(t *testing.T, role users.Role) *users.User {
	t.Helper()

	hash, err := users.HashPassword(testUserPassword)
	require.NoError(t, err)

	user := &users.User{
		Email:        testUserEmail,
		Username:     "johndoe",
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	return user
}

func TestLogin_Success(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	user := f.createTestUser(t, users.RoleUser)

	pair, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := f.codec.Decode(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, token.KindAccess, claims.Kind)
	require.Equal(t, testUserEmail, claims.Subject)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, string(users.RoleUser), claims.Role)

	// The refresh token is on record and live.
	rec, err := f.tokens.FindByToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, rec.UserID)
	require.True(t, rec.Live(baseTime))
}

func TestLogin_InvalidPassword(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	f.createTestUser(t, users.RoleUser)

	pair, err := f.service.Login(context.Background(), testUserEmail, "wrong-password")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	require.Nil(t, pair)
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := setupTestFixture(t, baseTime)

	pair, err := f.service.Login(context.Background(), "nobody@example.com", testUserPassword)
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	require.Nil(t, pair)
}

func TestRefresh_RotatesToken(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	f.createTestUser(t, users.RoleUser)

	pair, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	next, err := f.service.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	// The consumed token stays on record, flagged rather than deleted.
	old, err := f.tokens.FindByToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.False(t, old.Live(baseTime))
}

func TestRefresh_SingleUse(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	f.createTestUser(t, users.RoleUser)

	pair, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	_, err = f.service.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	second, err := f.service.Refresh(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	require.Nil(t, second)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	f.createTestUser(t, users.RoleUser)

	pair, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	_, err = f.service.Refresh(context.Background(), pair.AccessToken)
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	f.createTestUser(t, users.RoleUser)

	pair, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	// Eight days later the refresh token is past its TTL.
	later := rebuildFixture(t, f.userRepo, f.tokens, baseTime.Add(8*24*time.Hour))
	_, err = later.service.Refresh(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestRefresh_UnknownSubject(t *testing.T) {
	f := setupTestFixture(t, baseTime)

	raw, err := f.codec.Issue("ghost@example.com", token.KindRefresh, nil, refreshTTL)
	require.NoError(t, err)

	_, err = f.service.Refresh(context.Background(), raw)
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestRefresh_TokenNotOnRecord(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	f.createTestUser(t, users.RoleUser)

	// Well signed but never persisted by a login.
	raw, err := f.codec.Issue(testUserEmail, token.KindRefresh, nil, refreshTTL)
	require.NoError(t, err)

	_, err = f.service.Refresh(context.Background(), raw)
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestRefresh_GarbageToken(t *testing.T) {
	f := setupTestFixture(t, baseTime)

	_, err := f.service.Refresh(context.Background(), "not.a.token")
	require.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestLogout_ViaPrincipal(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	user := f.createTestUser(t, users.RoleUser)

	_, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)
	_, err = f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	ctx := auth.ContextWithPrincipal(context.Background(), auth.NewPrincipal(user))
	require.NoError(t, f.service.Logout(ctx, ""))

	live, err := f.tokens.FindLiveByOwner(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, live)
}

func TestLogout_ViaBearer(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	user := f.createTestUser(t, users.RoleUser)

	pair, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), pair.AccessToken))

	live, err := f.tokens.FindLiveByOwner(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, live)
}

func TestLogout_ExpiredBearer(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	user := f.createTestUser(t, users.RoleUser)

	pair, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	// One hour on the access token is long dead but the refresh record is
	// still live, and an expired bearer must still be able to revoke it.
	later := rebuildFixture(t, f.userRepo, f.tokens, baseTime.Add(time.Hour))
	require.NoError(t, later.service.Logout(context.Background(), pair.AccessToken))

	live, err := f.tokens.FindLiveByOwner(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, live)
}

func TestLogout_NoIdentityIsSilent(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	user := f.createTestUser(t, users.RoleUser)

	_, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), ""))
	require.NoError(t, f.service.Logout(context.Background(), "not.a.token"))

	// Nothing got revoked on those no-ops.
	live, err := f.tokens.FindLiveByOwner(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, live, 1)
}

func TestAuthenticate_Success(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	user := f.createTestUser(t, users.RoleAdmin)

	pair, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	principal, err := f.service.Authenticate(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, principal.User.ID)
	require.True(t, principal.Can(users.PermUsersManage))
}

func TestAuthenticate_RefreshTokenRejected(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	f.createTestUser(t, users.RoleUser)

	pair, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	_, err = f.service.Authenticate(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	f := setupTestFixture(t, baseTime)
	f.createTestUser(t, users.RoleUser)

	pair, err := f.service.Login(context.Background(), testUserEmail, testUserPassword)
	require.NoError(t, err)

	later := rebuildFixture(t, f.userRepo, f.tokens, baseTime.Add(time.Hour))
	_, err = later.service.Authenticate(context.Background(), pair.AccessToken)
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	f := setupTestFixture(t, baseTime)

	raw, err := f.codec.Issue("ghost@example.com", token.KindAccess, nil, accessTTL)
	require.NoError(t, err)

	_, err = f.service.Authenticate(context.Background(), raw)
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestNewService_MissingDependencies(t *testing.T) {
	codec := token.NewCodec(token.NewHMACSigner([]byte(testSecret)))

	_, err := auth.NewService(auth.Repos{Tokens: faketokenstore.NewFakeTokenStore()}, codec)
	require.Error(t, err)

	_, err = auth.NewService(auth.Repos{Users: fakeuserrepo.NewFakeUserRepo()}, codec)
	require.Error(t, err)

	_, err = auth.NewService(auth.Repos{
		Users:  fakeuserrepo.NewFakeUserRepo(),
		Tokens: faketokenstore.NewFakeTokenStore(),
	}, nil)
	require.Error(t, err)
}
