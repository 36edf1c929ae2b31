package config

import (
	"encoding/base64"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

type AuthConfig interface {
	GetJWTSecret() ([]byte, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
	GetClockSkew() time.Duration
}

type Auth struct{}

var _ AuthConfig = Auth{}

// GetJWTSecret returns the symmetric signing key. The env value is
// base64-encoded so the raw key never appears in process listings.
func (Auth) GetJWTSecret() ([]byte, error) {
	encoded := GetEnv("JWT_SECRET", "")
	if encoded == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "JWT_SECRET is not valid base64")
	}
	return key, nil
}

func (Auth) GetAccessTokenTTL() time.Duration {
	return secondsEnv("JWT_ACCESS_EXP_SECONDS", 900) // 15 minutes
}

func (Auth) GetRefreshTokenTTL() time.Duration {
	return secondsEnv("JWT_REFRESH_EXP_SECONDS", 7*24*3600) // 7 days
}

// GetClockSkew is the leeway allowed when checking token expiry.
func (Auth) GetClockSkew() time.Duration {
	return 30 * time.Second
}

func secondsEnv(envVar string, defaultSeconds int64) time.Duration {
	v := GetEnv(envVar, "")
	if v == "" {
		return time.Duration(defaultSeconds) * time.Second
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return time.Duration(defaultSeconds) * time.Second
	}
	return time.Duration(n) * time.Second
}
