package container

import (
	"context"
	"fmt"
	"time"

	"media-admin-backend/internal/config"
	"media-admin-backend/internal/infrastructure/content"
	"media-admin-backend/internal/infrastructure/database"
	"media-admin-backend/internal/infrastructure/storage"
	"media-admin-backend/internal/shared/authz"
	"media-admin-backend/internal/shared/pipeline"
	"media-admin-backend/internal/shared/utils"
	"media-admin-backend/pkg/cache"
	"media-admin-backend/pkg/jwt"
	"media-admin-backend/pkg/logger"

	infraCache "media-admin-backend/internal/infrastructure/cache"

	"media-admin-backend/internal/domains/audit"
	auditHandler "media-admin-backend/internal/domains/audit/handler"
	auditRepo "media-admin-backend/internal/domains/audit/repository"
	"media-admin-backend/internal/domains/category"
	categoryHandler "media-admin-backend/internal/domains/category/handler"
	categoryRepo "media-admin-backend/internal/domains/category/repository"
	"media-admin-backend/internal/domains/news"
	newsHandler "media-admin-backend/internal/domains/news/handler"
	"media-admin-backend/internal/domains/photo"
	photoHandler "media-admin-backend/internal/domains/photo/handler"
	photoRepo "media-admin-backend/internal/domains/photo/repository"
	"media-admin-backend/internal/domains/publication"
	publicationHandler "media-admin-backend/internal/domains/publication/handler"
	publicationRepo "media-admin-backend/internal/domains/publication/repository"
	"media-admin-backend/internal/domains/user"
	userHandler "media-admin-backend/internal/domains/user/handler"
	userRepo "media-admin-backend/internal/domains/user/repository"
	"media-admin-backend/internal/domains/video"
	videoHandler "media-admin-backend/internal/domains/video/handler"
	videoRepo "media-admin-backend/internal/domains/video/repository"
)

const contentTimeout = 8 * time.Second

// Container is the root of the dependency graph.
type Container struct {
	// ========== INFRASTRUCTURE ==========
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	redis *infraCache.RedisCache

	// ========== CROSS-CUTTING ==========
	Roles    *authz.CachedRoleStore
	Gate     *authz.Gate
	Recorder *audit.Recorder
	Pipeline *pipeline.Pipeline

	// ========== REPOSITORIES ==========
	CategoryRepo    category.Repository
	PhotoRepo       photo.Repository
	PublicationRepo publication.Repository
	VideoRepo       video.Repository
	UserRepo        user.Repository
	AuditRepo       audit.Store

	// ========== SERVICES ==========
	PhotoService *photo.Service
	UserService  *user.Service
	NewsService  *news.Service

	// ========== HANDLERS ==========
	CategoryHandler    *categoryHandler.CategoryHandler
	PhotoHandler       *photoHandler.PhotoHandler
	PublicationHandler *publicationHandler.PublicationHandler
	VideoHandler       *videoHandler.VideoHandler
	UserHandler        *userHandler.UserHandler
	AuditHandler       *auditHandler.AuditHandler
	NewsHandler        *newsHandler.NewsHandler
}

// NewContainer builds everything in dependency order:
// config, infrastructure, repositories, services, handlers.
func NewContainer(ctx context.Context) (*Container, error) {
	logger.Info("Initializing DI container", nil)

	c := &Container{}

	// ========== STEP 1: CONFIG ==========
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// ========== STEP 2: INFRASTRUCTURE ==========
	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========== STEP 3: REPOSITORIES ==========
	c.initRepositories()

	// ========== STEP 4: SERVICES ==========
	c.initServices()

	// ========== STEP 5: HANDLERS ==========
	c.initHandlers()

	logger.Info("DI container ready", map[string]interface{}{"env": cfg.App.Environment})
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// Redis is non-critical: the role and news caches fall through on errors.
	c.redis = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.redis.Connect(ctx); err != nil {
		logger.Warn("Redis connection failed (non-critical)", map[string]interface{}{"error": err.Error()})
	}
	c.Cache = c.redis

	store, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)
	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.PhotoRepo = photoRepo.NewPostgresRepository(pool)
	c.PublicationRepo = publicationRepo.NewPostgresRepository(pool)
	c.VideoRepo = videoRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.AuditRepo = auditRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	cfg := c.Config

	c.Roles = authz.NewCachedRoleStore(c.UserRepo, c.Cache, cfg.Auth.RoleCacheTTL)
	c.Gate = authz.NewGate(authz.NewTokenProvider(c.JWTManager, c.Roles), cfg.Auth.LookupTimeout)
	c.Recorder = audit.NewRecorder(c.AuditRepo)
	c.Pipeline = pipeline.New(c.Gate, c.Recorder, !cfg.App.IsProduction())

	c.PhotoService = photo.NewService(c.PhotoRepo, c.Storage, storage.NewImageProcessor(cfg.MinIO.MaxUploadMB))
	c.UserService = user.NewService(c.UserRepo, c.Roles, c.JWTManager)
	c.NewsService = news.NewService(
		content.NewClient(cfg.Content, contentTimeout),
		c.Cache,
		cfg.Content.CacheTTL,
		utils.NewHostAllowList(cfg.Images.RemoteHosts),
	)
}

func (c *Container) initHandlers() {
	cfg := c.Config

	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryRepo, c.Pipeline)
	c.PhotoHandler = photoHandler.NewPhotoHandler(c.PhotoService, c.Pipeline)
	c.PublicationHandler = publicationHandler.NewPublicationHandler(c.PublicationRepo, c.Pipeline)
	c.VideoHandler = videoHandler.NewVideoHandler(
		c.VideoRepo,
		video.NewMapper(utils.NewHostAllowList(cfg.Images.RemoteHosts)),
		c.Pipeline,
	)
	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.Pipeline, userHandler.SessionConfig{
		SecureCookies: cfg.App.IsProduction(),
		LoginPath:     cfg.App.LoginPath,
		AccessTTL:     c.JWTManager.AccessTTL(),
		RefreshTTL:    c.JWTManager.RefreshTTL(),
	})
	c.AuditHandler = auditHandler.NewAuditHandler(c.Recorder, c.Pipeline)
	c.NewsHandler = newsHandler.NewNewsHandler(c.NewsService, c.Pipeline)
}

// Cleanup releases connections. Safe to call on a partially built container.
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("Container cleaned up", nil)
}
