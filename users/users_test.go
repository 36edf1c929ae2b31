package users_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmvault/movie-server/users"
)

func TestPermissionsFor(t *testing.T) {
	admin := users.PermissionsFor(users.RoleAdmin)
	assert.Contains(t, admin, users.PermMoviesRead)
	assert.Contains(t, admin, users.PermMoviesManage)
	assert.Contains(t, admin, users.PermRatingsWrite)
	assert.Contains(t, admin, users.PermUsersManage)

	user := users.PermissionsFor(users.RoleUser)
	assert.Contains(t, user, users.PermMoviesRead)
	assert.Contains(t, user, users.PermRatingsWrite)
	assert.NotContains(t, user, users.PermMoviesManage)
	assert.NotContains(t, user, users.PermUsersManage)

	assert.Nil(t, users.PermissionsFor(users.Role("GUEST")))
}

func TestPermissionsFor_ReturnsFreshCopy(t *testing.T) {
	first := users.PermissionsFor(users.RoleUser)
	first[0] = users.Permission("tampered")

	second := users.PermissionsFor(users.RoleUser)
	assert.Equal(t, users.PermMoviesRead, second[0])
}

func TestParseRole(t *testing.T) {
	role, err := users.ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, users.RoleAdmin, role)

	role, err = users.ParseRole("USER")
	require.NoError(t, err)
	assert.Equal(t, users.RoleUser, role)

	_, err = users.ParseRole("admin")
	assert.Error(t, err)
	_, err = users.ParseRole("")
	assert.Error(t, err)
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "Password123", false},
		{"too short", "Pass1", true},
		{"no uppercase", "password123", true},
		{"no lowercase", "PASSWORD123", true},
		{"no number", "PasswordOnly", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := users.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := users.HashPassword("Password123")
	require.NoError(t, err)
	require.NotEqual(t, "Password123", hash)

	assert.True(t, users.CheckPasswordHash("Password123", hash))
	assert.False(t, users.CheckPasswordHash("Password124", hash))
}
