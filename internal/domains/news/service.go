package news

import (
	"context"
	"fmt"
	"time"

	"media-admin-backend/internal/shared/utils"
	"media-admin-backend/pkg/cache"
	"media-admin-backend/pkg/logger"
)

// Querier runs a content-service query; found is false on a null result.
type Querier interface {
	Query(ctx context.Context, query string, params map[string]interface{}, dest interface{}) (bool, error)
}

type Service struct {
	content Querier
	cache   cache.Cache
	ttl     time.Duration
	images  utils.HostAllowList
}

// NewService builds the news reader. cache may be nil, which disables caching.
func NewService(content Querier, c cache.Cache, ttl time.Duration, images utils.HostAllowList) *Service {
	return &Service{content: content, cache: c, ttl: ttl, images: images}
}

func (s *Service) List(ctx context.Context, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	key := fmt.Sprintf("news:list:%d", limit)
	var articles []Article
	if s.fromCache(ctx, key, &articles) {
		return articles, nil
	}

	if _, err := s.content.Query(ctx, listQuery, map[string]interface{}{"limit": limit}, &articles); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	if articles == nil {
		articles = []Article{}
	}
	for i := range articles {
		s.sanitize(&articles[i])
	}

	s.toCache(ctx, key, articles)
	return articles, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	key := "news:slug:" + slug
	var article Article
	if s.fromCache(ctx, key, &article) {
		return &article, nil
	}

	found, err := s.content.Query(ctx, slugQuery, map[string]interface{}{"slug": slug}, &article)
	if err != nil {
		return nil, fmt.Errorf("get article %q: %w", slug, err)
	}
	if !found {
		return nil, ErrArticleNotFound
	}
	s.sanitize(&article)

	s.toCache(ctx, key, article)
	return &article, nil
}

func (s *Service) sanitize(a *Article) {
	if a.ImageURL != nil && !s.images.Permits(*a.ImageURL) {
		a.ImageURL = nil
	}
}

// ========== CACHE (best-effort) ==========

func (s *Service) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Warn("news cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return found
}

func (s *Service) toCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		logger.Warn("news cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
