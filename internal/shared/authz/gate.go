package authz

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"

	// AccessTokenCookie carries the session token set at login.
	AccessTokenCookie  = "sb-access-token"
	RefreshTokenCookie = "sb-refresh-token"
)

var (
	// ErrUnauthorized means no valid session was presented.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the session is valid but its role is not admin.
	ErrForbidden = errors.New("forbidden")
)

// Identity is the authenticated caller.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// Credentials are whatever the request presented to prove a session.
type Credentials struct {
	AccessToken string
}

// CredentialsFromRequest reads the session cookie, falling back to an
// "Authorization: Bearer" header.
func CredentialsFromRequest(r *http.Request) Credentials {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return Credentials{AccessToken: cookie.Value}
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return Credentials{AccessToken: strings.TrimSpace(token)}
	}
	return Credentials{}
}

// IdentityProvider resolves sessions and roles.
type IdentityProvider interface {
	// Authenticate returns ErrUnauthorized when creds carry no valid session.
	Authenticate(ctx context.Context, creds Credentials) (Identity, error)
	// Role returns "" for users without a profile.
	Role(ctx context.Context, userID uuid.UUID) (string, error)
}

// Gate is the single access-control chokepoint for admin operations.
type Gate struct {
	provider IdentityProvider
	timeout  time.Duration
}

func NewGate(provider IdentityProvider, timeout time.Duration) *Gate {
	return &Gate{provider: provider, timeout: timeout}
}

// RequireAdmin returns the caller's identity when it holds the admin role.
// Failures are ErrUnauthorized, ErrForbidden, or a wrapped provider error
// for infrastructure faults.
func (g *Gate) RequireAdmin(ctx context.Context, creds Credentials) (Identity, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	identity, err := g.provider.Authenticate(ctx, creds)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return Identity{}, ErrUnauthorized
		}
		return Identity{}, fmt.Errorf("authenticate session: %w", err)
	}

	role, err := g.provider.Role(ctx, identity.UserID)
	if err != nil {
		return Identity{}, fmt.Errorf("load role: %w", err)
	}
	if role != RoleAdmin {
		return Identity{}, ErrForbidden
	}

	identity.Role = role
	return identity, nil
}

// IsDenied reports whether err is an access denial rather than a fault.
func IsDenied(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
