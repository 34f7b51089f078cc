package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"media-admin-backend/internal/shared/authz"
	"media-admin-backend/pkg/logger"
)

// dummyHash is compared against when the email is unknown so that both
// failure paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

type Service struct {
	repo   Repository
	roles  RoleInvalidator
	tokens TokenIssuer
}

func NewService(repo Repository, roles RoleInvalidator, tokens TokenIssuer) *Service {
	return &Service{repo: repo, roles: roles, tokens: tokens}
}

// Login checks the password against the profile's bcrypt hash and issues a
// session.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	profile, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			return nil, fmt.Errorf("find profile: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if profile.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(profile.ID.String(), profile.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(profile.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": profile.ID.String(),
		"role":    profile.Role,
	})
	return &Session{Profile: profile, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ChangeRole sets the dashboard role of id and drops its cached role.
func (s *Service) ChangeRole(ctx context.Context, actor authz.Identity, id uuid.UUID, role string) (*Profile, *Profile, error) {
	if actor.UserID == id && role != authz.RoleAdmin {
		return nil, nil, ErrSelfDemotion
	}

	before, after, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, nil, err
	}

	if s.roles != nil {
		if err := s.roles.Invalidate(ctx, id); err != nil {
			// The cached role expires on its own after the role TTL.
			logger.ErrorWithFields("Failed to invalidate cached role", err, map[string]interface{}{
				"user_id": id.String(),
			})
		}
	}
	return before, after, nil
}
