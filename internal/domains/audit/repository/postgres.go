package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"media-admin-backend/internal/domains/audit"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository stores entries in the append-only audit_logs table.
func NewPostgresRepository(pool *pgxpool.Pool) audit.Store {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Insert(ctx context.Context, entry *audit.Entry) error {
	before, err := snapshot(entry.Before)
	if err != nil {
		return fmt.Errorf("encode before snapshot: %w", err)
	}
	after, err := snapshot(entry.After)
	if err != nil {
		return fmt.Errorf("encode after snapshot: %w", err)
	}

	const query = `
		INSERT INTO audit_logs (entity, entity_id, action, by_user, before, after)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err = r.pool.QueryRow(ctx, query,
		entry.Entity,
		entry.EntityID,
		string(entry.Action),
		entry.ByUser,
		before,
		after,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListRecent(ctx context.Context, filter audit.ListFilter) ([]audit.Entry, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Entity != "" {
		args = append(args, filter.Entity)
		where = append(where, fmt.Sprintf("entity = $%d", len(args)))
	}
	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		where = append(where, fmt.Sprintf("entity_id = $%d", len(args)))
	}

	query := `SELECT id, entity, entity_id, action, by_user, before, after, created_at FROM audit_logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	entries := make([]audit.Entry, 0, filter.Limit)
	for rows.Next() {
		var (
			entry         audit.Entry
			action        string
			before, after []byte
		)
		if err := rows.Scan(&entry.ID, &entry.Entity, &entry.EntityID, &action, &entry.ByUser, &before, &after, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		entry.Action = audit.Action(action)
		if before != nil {
			entry.Before = json.RawMessage(before)
		}
		if after != nil {
			entry.After = json.RawMessage(after)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit logs: %w", err)
	}

	return entries, nil
}

// snapshot encodes v as JSON, keeping a nil snapshot as SQL NULL.
func snapshot(v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
