package authz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"media-admin-backend/pkg/cache"
	"media-admin-backend/pkg/logger"
)

// CachedRoleStore keeps roles in the cache for a short TTL.
// Whoever changes a role must call Invalidate so the stale-role window only
// covers writes that bypass this service.
type CachedRoleStore struct {
	next  RoleStore
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedRoleStore(next RoleStore, c cache.Cache, ttl time.Duration) *CachedRoleStore {
	return &CachedRoleStore{next: next, cache: c, ttl: ttl}
}

func roleCacheKey(userID uuid.UUID) string {
	return "auth:role:" + userID.String()
}

func (s *CachedRoleStore) GetRole(ctx context.Context, userID uuid.UUID) (string, error) {
	key := roleCacheKey(userID)

	var role string
	found, err := s.cache.Get(ctx, key, &role)
	if err != nil {
		logger.Warn("role cache read failed", map[string]interface{}{"user_id": userID.String(), "error": err.Error()})
	}
	if found {
		return role, nil
	}

	role, err = s.next.GetRole(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, role, s.ttl); err != nil {
		logger.Warn("role cache write failed", map[string]interface{}{"user_id": userID.String(), "error": err.Error()})
	}
	return role, nil
}

// Invalidate drops the cached role of userID.
func (s *CachedRoleStore) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return s.cache.Delete(ctx, roleCacheKey(userID))
}
