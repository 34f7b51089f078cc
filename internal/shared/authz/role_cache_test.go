package authz

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infraCache "media-admin-backend/internal/infrastructure/cache"
)

func TestCachedRoleStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	userID := uuid.New()
	backing := &roleStoreStub{roles: map[uuid.UUID]string{userID: RoleAdmin}}
	store := NewCachedRoleStore(backing, infraCache.NewRedisCacheFromClient(client), 30*time.Second)
	ctx := context.Background()

	role, err := store.GetRole(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	backing.roles[userID] = RoleViewer
	role, err = store.GetRole(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role, "served from cache within the TTL")
	assert.Equal(t, 1, backing.calls)

	require.NoError(t, store.Invalidate(ctx, userID))
	role, err = store.GetRole(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, RoleViewer, role)
	assert.Equal(t, 2, backing.calls)
}

func TestCachedRoleStoreFallsThroughWhenRedisIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	userID := uuid.New()
	backing := &roleStoreStub{roles: map[uuid.UUID]string{userID: RoleEditor}}
	store := NewCachedRoleStore(backing, infraCache.NewRedisCacheFromClient(client), time.Minute)

	role, err := store.GetRole(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, RoleEditor, role)
}
