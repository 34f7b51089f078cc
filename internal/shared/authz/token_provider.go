package authz

import (
	"context"

	"github.com/google/uuid"

	"media-admin-backend/pkg/jwt"
)

// RoleStore looks up the dashboard role of a user.
type RoleStore interface {
	GetRole(ctx context.Context, userID uuid.UUID) (string, error)
}

// TokenProvider verifies HS256 session tokens and reads roles from a RoleStore.
type TokenProvider struct {
	tokens *jwt.Manager
	roles  RoleStore
}

func NewTokenProvider(tokens *jwt.Manager, roles RoleStore) *TokenProvider {
	return &TokenProvider{tokens: tokens, roles: roles}
}

func (p *TokenProvider) Authenticate(_ context.Context, creds Credentials) (Identity, error) {
	if creds.AccessToken == "" {
		return Identity{}, ErrUnauthorized
	}

	claims, err := p.tokens.ValidateAccessToken(creds.AccessToken)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	return Identity{UserID: userID, Email: claims.Email}, nil
}

func (p *TokenProvider) Role(ctx context.Context, userID uuid.UUID) (string, error) {
	return p.roles.GetRole(ctx, userID)
}
