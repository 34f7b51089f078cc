package user

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// GetRole returns "" for users without a profile.
	GetRole(ctx context.Context, id uuid.UUID) (string, error)
	FindByEmail(ctx context.Context, email string) (*Profile, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (before, after *Profile, err error)
}

// RoleInvalidator drops cached roles after a change.
type RoleInvalidator interface {
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	GenerateAccessToken(userID, email string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
}
