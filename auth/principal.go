package auth

import (
	"context"

	"github.com/filmvault/movie-server/users"
)

// Principal is the resolved identity of a request, together with the
// capability set derived from its role. A request without a principal in its
// context is anonymous.
type Principal struct {
	User        *users.User
	Permissions []users.Permission
}

// Can reports whether the principal holds the given permission.
func (p *Principal) Can(perm users.Permission) bool {
	if p == nil {
		return false
	}
	for _, have := range p.Permissions {
		if have == perm {
			return true
		}
	}
	return false
}

// NewPrincipal builds a principal for user with its role-derived permissions.
func NewPrincipal(user *users.User) *Principal {
	return &Principal{
		User:        user,
		Permissions: users.PermissionsFor(user.Role),
	}
}

type principalContextKey struct{}

// ContextWithPrincipal returns a child context carrying the principal.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext returns the request principal, if one was attached.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(*Principal)
	if !ok || p == nil || p.User == nil {
		return nil, false
	}
	return p, true
}
