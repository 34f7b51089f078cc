package news

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-admin-backend/internal/infrastructure/cache"
	"media-admin-backend/internal/shared/utils"
)

type querierStub struct {
	calls  int
	params map[string]interface{}
	result interface{}
	err    error
}

func (q *querierStub) Query(_ context.Context, _ string, params map[string]interface{}, dest interface{}) (bool, error) {
	q.calls++
	q.params = params
	if q.err != nil {
		return false, q.err
	}
	if q.result == nil {
		return false, nil
	}
	raw, _ := json.Marshal(q.result)
	return true, json.Unmarshal(raw, dest)
}

func strPtr(s string) *string { return &s }

func newCachedService(t *testing.T, q Querier) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	allow := utils.NewHostAllowList([]string{"cdn.sanity.io"})
	return NewService(q, cache.NewRedisCacheFromClient(client), time.Minute, allow), mr
}

func TestListCachesAndClampsLimit(t *testing.T) {
	q := &querierStub{result: []Article{
		{ID: "a1", Title: "First", Slug: "first", ImageURL: strPtr("https://cdn.sanity.io/a.jpg")},
		{ID: "a2", Title: "Second", Slug: "second", ImageURL: strPtr("https://evil.example/x.jpg")},
		{ID: "a3", Title: "Third", Slug: "third", ImageURL: strPtr("/images/third.jpg")},
	}}
	svc, mr := newCachedService(t, q)
	ctx := context.Background()

	got, err := svc.List(ctx, 500)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, MaxListLimit, q.params["limit"])
	assert.NotNil(t, got[0].ImageURL)
	assert.Nil(t, got[1].ImageURL)
	require.NotNil(t, got[2].ImageURL)
	assert.Equal(t, "/images/third.jpg", *got[2].ImageURL)
	assert.True(t, mr.Exists("news:list:100"))

	again, err := svc.List(ctx, 500)
	require.NoError(t, err)
	assert.Len(t, again, 3)
	assert.Equal(t, 1, q.calls)
}

func TestGetBySlugNotFound(t *testing.T) {
	svc, _ := newCachedService(t, &querierStub{})

	_, err := svc.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestCacheFailureFallsThrough(t *testing.T) {
	q := &querierStub{result: Article{ID: "a1", Title: "First", Slug: "first"}}
	svc, mr := newCachedService(t, q)
	mr.Close()

	got, err := svc.GetBySlug(context.Background(), "first")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, 1, q.calls)
}

func TestQueryErrorIsWrapped(t *testing.T) {
	boom := errors.New("upstream down")
	svc := NewService(&querierStub{err: boom}, nil, 0, utils.NewHostAllowList(nil))

	_, err := svc.List(context.Background(), 0)
	assert.ErrorIs(t, err, boom)
}
