package database

import (
	"context"
	"fmt"
	"time"

	"media-admin-backend/pkg/logger"
)

// Ping verifies that the database answers within five seconds.
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// HealthCheck pings and reports pool statistics.
func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if err := db.Ping(ctx); err != nil {
		return err
	}

	stats := db.Pool.Stat()
	logger.Info("[DATABASE] health check passed", map[string]interface{}{
		"total":    stats.TotalConns(),
		"idle":     stats.IdleConns(),
		"acquired": stats.AcquiredConns(),
	})
	return nil
}

// Close is safe to call more than once.
func (db *PostgresDB) Close() {
	if db.Pool == nil {
		return
	}
	db.Pool.Close()
	db.Pool = nil
}
