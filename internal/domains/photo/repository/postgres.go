package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"media-admin-backend/internal/domains/photo"
	"media-admin-backend/pkg/database"
	"media-admin-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) photo.Repository {
	return &postgresRepository{pool: pool}
}

const columns = `id, file_path, title, location, category_id, tags, description, exif, published, created_at`

func scanPhoto(row pgx.Row) (*photo.Photo, error) {
	p := &photo.Photo{}
	err := row.Scan(
		&p.ID,
		&p.FilePath,
		&p.Title,
		&p.Location,
		&p.CategoryID,
		&p.Tags,
		&p.Description,
		&p.Exif,
		&p.Published,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

// exifArg sends an absent map as SQL NULL.
func exifArg(exif map[string]interface{}) interface{} {
	if exif == nil {
		return nil
	}
	return exif
}

func translate(err error, action string) error {
	if database.IsForeignKeyViolation(err) {
		return photo.ErrUnknownCategory
	}
	return fmt.Errorf("failed to %s photo: %w", action, err)
}

// ========== READ ==========

func (r *postgresRepository) List(ctx context.Context, filter photo.ListFilter) ([]photo.Photo, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Published != nil {
		args = append(args, *filter.Published)
		where = append(where, fmt.Sprintf("published = $%d", len(args)))
	}

	query := `SELECT ` + columns + ` FROM photos`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	photos := make([]photo.Photo, 0)
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate photos: %w", err)
	}
	return photos, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*photo.Photo, error) {
	p, err := scanPhoto(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM photos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, photo.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return p, nil
}

// ========== WRITE ==========

func (r *postgresRepository) Create(ctx context.Context, in photo.Input) (*photo.Photo, error) {
	const query = `
		INSERT INTO photos (
			file_path, title, location, category_id, tags,
			description, exif, published
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + columns

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	p, err := scanPhoto(r.pool.QueryRow(ctx, query,
		in.FilePath,
		in.Title,
		in.Location,
		in.CategoryID,
		tags,
		in.Description,
		exifArg(in.Exif),
		in.Published,
	))
	if err != nil {
		logger.Error("Create photo: database error", err)
		return nil, translate(err, "create")
	}
	return p, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, patch photo.Patch) (*photo.Photo, *photo.Photo, error) {
	type result struct{ before, after *photo.Photo }

	res, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (result, error) {
		before, err := scanPhoto(tx.QueryRow(ctx, `SELECT `+columns+` FROM photos WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return result{}, photo.ErrPhotoNotFound
			}
			return result{}, fmt.Errorf("failed to lock photo: %w", err)
		}
		if patch.IsEmpty() {
			return result{before: before, after: before}, nil
		}

		var set database.Assignments
		if patch.FilePath != nil {
			set.Set("file_path", *patch.FilePath)
		}
		if patch.Title != nil {
			set.Set("title", *patch.Title)
		}
		if patch.Location != nil {
			set.Set("location", *patch.Location)
		}
		if patch.CategoryID != nil {
			set.Set("category_id", *patch.CategoryID)
		}
		if patch.Tags != nil {
			set.Set("tags", patch.Tags)
		}
		if patch.Description != nil {
			set.Set("description", *patch.Description)
		}
		if patch.Exif != nil {
			set.Set("exif", patch.Exif)
		}
		if patch.Published != nil {
			set.Set("published", *patch.Published)
		}

		query := fmt.Sprintf(`UPDATE photos SET %s WHERE id = %s RETURNING %s`, set.SQL(), set.Placeholder(id), columns)
		after, err := scanPhoto(tx.QueryRow(ctx, query, set.Args()...))
		if err != nil {
			return result{}, translate(err, "update")
		}
		return result{before: before, after: after}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return res.before, res.after, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (*photo.Photo, error) {
	p, err := scanPhoto(r.pool.QueryRow(ctx, `DELETE FROM photos WHERE id = $1 RETURNING `+columns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, photo.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to delete photo: %w", err)
	}
	return p, nil
}
