package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"media-admin-backend/pkg/logger"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration.
// Every field is populated from environment variables.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Auth    AuthConfig
	MinIO   MinIOConfig
	Content ContentConfig
	Images  ImageConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	BaseURL     string // origin allowed to send mutating requests
	LoginPath   string
}

// IsProduction reports whether internal error text must be hidden from clients.
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// AllowedOrigin returns scheme://host of BaseURL, or "" when BaseURL is unusable.
func (a AppConfig) AllowedOrigin() string {
	u, err := url.Parse(a.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // hours
}

type AuthConfig struct {
	LookupTimeout time.Duration
	RoleCacheTTL  time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	// MaxUploadMB caps a single photo upload.
	MaxUploadMB int
}

// ContentConfig points at the headless content service that stores news documents.
type ContentConfig struct {
	// BaseURL overrides the query endpoint derived from ProjectID.
	BaseURL    string
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	CacheTTL   time.Duration
}

// ImageConfig lists the external hosts trusted to serve remote images.
type ImageConfig struct {
	RemoteHosts []string
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Media Admin API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			BaseURL:     getEnv("APP_BASE_URL", "http://localhost:3000"),
			LoginPath:   getEnv("APP_LOGIN_PATH", "/login"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry:  getEnvInt("JWT_ACCESS_EXPIRY", 60),  // 1 hour
			RefreshTokenExpiry: getEnvInt("JWT_REFRESH_EXPIRY", 72), // 3 days
		},
		Auth: AuthConfig{
			LookupTimeout: getEnvDuration("AUTH_LOOKUP_TIMEOUT", 5*time.Second),
			RoleCacheTTL:  getEnvDuration("ROLE_CACHE_TTL", 30*time.Second),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "media"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",

			MaxUploadMB: getEnvInt("MINIO_MAX_UPLOAD_MB", 10),
		},
		Content: ContentConfig{
			BaseURL:    getEnv("CONTENT_API_URL", ""),
			ProjectID:  getEnv("CONTENT_PROJECT_ID", ""),
			Dataset:    getEnv("CONTENT_DATASET", "production"),
			APIVersion: getEnv("CONTENT_API_VERSION", "2024-01-01"),
			Token:      getEnv("CONTENT_TOKEN", ""),
			CacheTTL:   getEnvDuration("CONTENT_CACHE_TTL", 5*time.Minute),
		},
		Images: ImageConfig{
			RemoteHosts: getEnvList("IMAGE_REMOTE_HOSTS", []string{
				"cdn.sanity.io",
				"img.youtube.com",
				"i.ytimg.com",
			}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that must never fall back to defaults in production.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if os.Getenv("DB_PASSWORD") == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.App.AllowedOrigin() == "" {
			return fmt.Errorf("APP_BASE_URL must be an absolute URL in production")
		}
		if c.Content.ProjectID == "" && c.Content.BaseURL == "" {
			logger.Warn("content service not configured, news endpoints will return 404", nil)
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
