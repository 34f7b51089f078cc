package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"media-admin-backend/internal/domains/video"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) video.Repository {
	return &postgresRepository{pool: pool}
}

// duration is read as text so NUMERIC precision survives until mapping.
const selectVideos = `
	SELECT v.id, v.title, v.description, v.external_video_id, v.thumbnail,
		c.name, v.date, v.venue, v.duration::text, v.tags, v.featured
	FROM videos v
	LEFT JOIN video_categories c ON c.id = v.category_id`

func scanRow(row pgx.Row) (*video.Row, error) {
	r := &video.Row{}
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.Description,
		&r.ExternalVideoID,
		&r.Thumbnail,
		&r.CategoryName,
		&r.Date,
		&r.Venue,
		&r.Duration,
		&r.Tags,
		&r.Featured,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *postgresRepository) List(ctx context.Context, filter video.ListFilter) ([]video.Row, error) {
	query := selectVideos
	var args []interface{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += ` WHERE c.slug = $1`
	}
	query += ` ORDER BY v.date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	out := make([]video.Row, 0)
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		out = append(out, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate videos: %w", err)
	}
	return out, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*video.Row, error) {
	row, err := scanRow(r.pool.QueryRow(ctx, selectVideos+` WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, video.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return row, nil
}
