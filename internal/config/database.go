package config

import (
	"errors"
	"fmt"
	neturl "net/url"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"media-admin-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig builds the pool settings for the media database.
//
// DATABASE_URL, when set, supplies host, port, credentials, database name and
// sslmode; the discrete DB_* variables fill in whatever it leaves out. Pool
// and retry tuning always come from DB_* variables. Every malformed value is
// reported, not just the first.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	cfg := &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Username: getEnv("DB_USER", "media_admin"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   getEnv("DB_NAME", "media_admin"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	p := envParser{}
	cfg.Port = p.int("DB_PORT", 5432)
	cfg.MaxConns = int32(p.int("DB_MAX_CONNECTIONS", 10))
	cfg.MinConns = int32(p.int("DB_MIN_CONNECTIONS", 1))
	cfg.MaxRetries = p.int("DB_MAX_RETRIES", 5)
	cfg.MaxConnLifetime = p.duration("DB_MAX_CONN_LIFETIME", 30*time.Minute)
	cfg.MaxConnIdleTime = p.duration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute)
	cfg.HealthCheckPeriod = p.duration("DB_HEALTH_CHECK_PERIOD", time.Minute)
	cfg.RetryDelay = p.duration("DB_RETRY_DELAY", time.Second)
	cfg.ConnectTimeout = p.duration("DB_CONNECT_TIMEOUT", 10*time.Second)

	if url := os.Getenv("DATABASE_URL"); url != "" {
		p.check("DATABASE_URL", applyDatabaseURL(cfg, url))
	}

	if cfg.MaxConns < 1 {
		p.check("DB_MAX_CONNECTIONS", errors.New("must be at least 1"))
	}
	if cfg.MinConns < 0 || cfg.MinConns > cfg.MaxConns {
		p.check("DB_MIN_CONNECTIONS", fmt.Errorf("must be between 0 and %d", cfg.MaxConns))
	}

	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDatabaseURL overrides the connection fields with those in url.
func applyDatabaseURL(cfg *database.DBConfig, url string) error {
	parsed, err := pgconn.ParseConfig(url)
	if err != nil {
		return err
	}

	cfg.Host = parsed.Host
	cfg.Port = int(parsed.Port)
	if parsed.User != "" {
		cfg.Username = parsed.User
	}
	if parsed.Password != "" {
		cfg.Password = parsed.Password
	}
	if parsed.Database != "" {
		cfg.DBName = parsed.Database
	}
	// pgconn consumes sslmode into its TLS settings, so read it back from the URL.
	if u, err := neturl.Parse(url); err == nil {
		if mode := u.Query().Get("sslmode"); mode != "" {
			cfg.SSLMode = mode
		}
	}
	return nil
}

// envParser reads typed variables and collects parse failures.
type envParser struct {
	errs []error
}

func (p *envParser) check(key string, err error) {
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid %s: %w", key, err))
	}
}

func (p *envParser) int(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	p.check(key, err)
	return v
}

func (p *envParser) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	p.check(key, err)
	return v
}
