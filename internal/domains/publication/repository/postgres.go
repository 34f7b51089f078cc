package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"media-admin-backend/internal/domains/publication"
	"media-admin-backend/pkg/database"
	"media-admin-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) publication.Repository {
	return &postgresRepository{pool: pool}
}

const columns = `id, name, cover_path, description, category_id, total_pages, publisher,
	tags, published_year, buy_url, published, featured, created_at`

func scanPublication(row pgx.Row) (*publication.Publication, error) {
	p := &publication.Publication{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.CoverPath,
		&p.Description,
		&p.CategoryID,
		&p.TotalPages,
		&p.Publisher,
		&p.Tags,
		&p.PublishedYear,
		&p.BuyURL,
		&p.Published,
		&p.Featured,
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

func translate(err error, action string) error {
	if database.IsForeignKeyViolation(err) {
		return publication.ErrUnknownCategory
	}
	return fmt.Errorf("failed to %s publication: %w", action, err)
}

// ========== READ ==========

func (r *postgresRepository) List(ctx context.Context, filter publication.ListFilter) ([]publication.Publication, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Featured != nil {
		args = append(args, *filter.Featured)
		where = append(where, fmt.Sprintf("featured = $%d", len(args)))
	}

	query := `SELECT ` + columns + ` FROM publications`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY published_year DESC NULLS LAST, created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list publications: %w", err)
	}
	defer rows.Close()

	publications := make([]publication.Publication, 0)
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan publication: %w", err)
		}
		publications = append(publications, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate publications: %w", err)
	}
	return publications, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*publication.Publication, error) {
	p, err := scanPublication(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM publications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, publication.ErrPublicationNotFound
		}
		return nil, fmt.Errorf("failed to get publication: %w", err)
	}
	return p, nil
}

// ========== WRITE ==========

func (r *postgresRepository) Create(ctx context.Context, in publication.Input) (*publication.Publication, error) {
	const query = `
		INSERT INTO publications (
			name, cover_path, description, category_id, total_pages, publisher,
			tags, published_year, buy_url, published, featured
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + columns

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	p, err := scanPublication(r.pool.QueryRow(ctx, query,
		in.Name,
		in.CoverPath,
		in.Description,
		in.CategoryID,
		in.TotalPages,
		in.Publisher,
		tags,
		in.PublishedYear,
		in.BuyURL,
		in.Published,
		in.Featured,
	))
	if err != nil {
		logger.Error("Create publication: database error", err)
		return nil, translate(err, "create")
	}
	return p, nil
}

func (r *postgresRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	patch publication.Patch,
) (*publication.Publication, *publication.Publication, error) {
	type result struct{ before, after *publication.Publication }

	res, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (result, error) {
		before, err := scanPublication(tx.QueryRow(ctx, `SELECT `+columns+` FROM publications WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return result{}, publication.ErrPublicationNotFound
			}
			return result{}, fmt.Errorf("failed to lock publication: %w", err)
		}
		if patch.IsEmpty() {
			return result{before: before, after: before}, nil
		}

		var set database.Assignments
		if patch.Name != nil {
			set.Set("name", *patch.Name)
		}
		if patch.CoverPath != nil {
			set.Set("cover_path", *patch.CoverPath)
		}
		if patch.Description != nil {
			set.Set("description", *patch.Description)
		}
		if patch.CategoryID != nil {
			set.Set("category_id", *patch.CategoryID)
		}
		if patch.TotalPages != nil {
			set.Set("total_pages", *patch.TotalPages)
		}
		if patch.Publisher != nil {
			set.Set("publisher", *patch.Publisher)
		}
		if patch.Tags != nil {
			set.Set("tags", patch.Tags)
		}
		if patch.PublishedYear != nil {
			set.Set("published_year", *patch.PublishedYear)
		}
		if patch.BuyURL != nil {
			set.Set("buy_url", *patch.BuyURL)
		}
		if patch.Published != nil {
			set.Set("published", *patch.Published)
		}
		if patch.Featured != nil {
			set.Set("featured", *patch.Featured)
		}

		query := fmt.Sprintf(`UPDATE publications SET %s WHERE id = %s RETURNING %s`, set.SQL(), set.Placeholder(id), columns)
		after, err := scanPublication(tx.QueryRow(ctx, query, set.Args()...))
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

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (*publication.Publication, error) {
	p, err := scanPublication(r.pool.QueryRow(ctx, `DELETE FROM publications WHERE id = $1 RETURNING `+columns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, publication.ErrPublicationNotFound
		}
		return nil, fmt.Errorf("failed to delete publication: %w", err)
	}
	return p, nil
}
