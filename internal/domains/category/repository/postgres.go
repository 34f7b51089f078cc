package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"media-admin-backend/internal/domains/category"
	"media-admin-backend/pkg/database"
	"media-admin-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

// Table names come from category.Variant, never from user input: handlers
// only reach the repository with a parsed variant.
const columns = `id, name, slug, created_at`

func scanCategory(row pgx.Row) (*category.Category, error) {
	c := &category.Category{}
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// ========== READ ==========

func (r *postgresRepository) List(ctx context.Context, variant category.Variant) ([]category.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY name ASC`, columns, variant.Table())

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", variant.Table(), err)
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", variant.Table(), err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", variant.Table(), err)
	}
	return categories, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, variant category.Variant, id uuid.UUID) (*category.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, columns, variant.Table())

	c, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// ========== WRITE ==========

func (r *postgresRepository) Create(ctx context.Context, variant category.Variant, in category.Input) (*category.Category, error) {
	query := fmt.Sprintf(
		`INSERT INTO %s (name, slug) VALUES ($1, $2) RETURNING %s`,
		variant.Table(), columns,
	)

	c, err := scanCategory(r.pool.QueryRow(ctx, query, in.Name, in.Slug))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, category.ErrDuplicateSlug
		}
		logger.Error("Create: database error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) Update(
	ctx context.Context,
	variant category.Variant,
	id uuid.UUID,
	patch category.Patch,
) (*category.Category, *category.Category, error) {
	type result struct{ before, after *category.Category }

	res, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (result, error) {
		before, err := lockCategory(ctx, tx, variant, id)
		if err != nil {
			return result{}, err
		}
		if patch.IsEmpty() {
			return result{before: before, after: before}, nil
		}

		var set database.Assignments
		if patch.Name != nil {
			set.Set("name", *patch.Name)
		}
		if patch.Slug != nil {
			set.Set("slug", *patch.Slug)
		}

		query := fmt.Sprintf(
			`UPDATE %s SET %s WHERE id = %s RETURNING %s`,
			variant.Table(), set.SQL(), set.Placeholder(id), columns,
		)
		after, err := scanCategory(tx.QueryRow(ctx, query, set.Args()...))
		if err != nil {
			if database.IsUniqueViolation(err) {
				return result{}, category.ErrDuplicateSlug
			}
			return result{}, fmt.Errorf("failed to update category: %w", err)
		}
		return result{before: before, after: after}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return res.before, res.after, nil
}

func (r *postgresRepository) Delete(ctx context.Context, variant category.Variant, id uuid.UUID) (*category.Category, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*category.Category, error) {
		before, err := lockCategory(ctx, tx, variant, id)
		if err != nil {
			return nil, err
		}

		var referenced bool
		refQuery := fmt.Sprintf(
			`SELECT EXISTS (SELECT 1 FROM %s WHERE category_id = $1)`,
			variant.ReferencingTable(),
		)
		if err := tx.QueryRow(ctx, refQuery, id).Scan(&referenced); err != nil {
			return nil, fmt.Errorf("failed to check category references: %w", err)
		}
		if referenced {
			return nil, category.ErrCategoryInUse
		}

		query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, variant.Table())
		if _, err := tx.Exec(ctx, query, id); err != nil {
			// A reference inserted after the check still trips the foreign key.
			if database.IsForeignKeyViolation(err) {
				return nil, category.ErrCategoryInUse
			}
			return nil, fmt.Errorf("failed to delete category: %w", err)
		}
		return before, nil
	})
}

// lockCategory reads the row FOR UPDATE so the before snapshot is the row
// that gets replaced.
func lockCategory(ctx context.Context, tx pgx.Tx, variant category.Variant, id uuid.UUID) (*category.Category, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, columns, variant.Table())

	c, err := scanCategory(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to lock category: %w", err)
	}
	return c, nil
}
