package users

import (
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Role represents a user role. The system only distinguishes admins,
// who manage the movie store, from regular users.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Permission names a capability granted to a role.
type Permission string

const (
	PermMoviesRead   Permission = "movies:read"
	PermMoviesManage Permission = "movies:manage"
	PermRatingsWrite Permission = "ratings:write"
	PermUsersManage  Permission = "users:manage"
)

// PermissionsFor maps a role to its capability set. Pure function; the
// returned slice is a fresh copy on every call.
func PermissionsFor(role Role) []Permission {
	switch role {
	case RoleAdmin:
		return []Permission{PermMoviesRead, PermMoviesManage, PermRatingsWrite, PermUsersManage}
	case RoleUser:
		return []Permission{PermMoviesRead, PermRatingsWrite}
	}
	return nil
}

// ParseRole validates a role string coming off the wire.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type User struct {
	ID           int64     `json:"id,omitempty"`       // Unique identifier for the user
	Email        string    `json:"email,omitempty"`    // Email address, used as the token subject
	Username     string    `json:"username,omitempty"` // Unique username
	PasswordHash string    `json:"-"`                  // Hashed password - never serialize
	Role         Role      `json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
