package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"media-admin-backend/internal/domains/user"
	"media-admin-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

const columns = `id, email, role, COALESCE(password_hash, ''), created_at`

func scanProfile(row pgx.Row) (*user.Profile, error) {
	p := &user.Profile{}
	if err := row.Scan(&p.ID, &p.Email, &p.Role, &p.PasswordHash, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepository) GetRole(ctx context.Context, id uuid.UUID) (string, error) {
	var role string
	err := r.pool.QueryRow(ctx, `SELECT role FROM profiles WHERE id = $1`, id).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load role: %w", err)
	}
	return role, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.Profile, error) {
	p, err := scanProfile(r.pool.QueryRow(ctx, `SELECT `+columns+` FROM profiles WHERE lower(email) = lower($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*user.Profile, *user.Profile, error) {
	type result struct{ before, after *user.Profile }

	res, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (result, error) {
		before, err := scanProfile(tx.QueryRow(ctx, `SELECT `+columns+` FROM profiles WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return result{}, user.ErrProfileNotFound
			}
			return result{}, fmt.Errorf("failed to lock profile: %w", err)
		}

		after, err := scanProfile(tx.QueryRow(ctx, `UPDATE profiles SET role = $1 WHERE id = $2 RETURNING `+columns, role, id))
		if err != nil {
			return result{}, fmt.Errorf("failed to update role: %w", err)
		}
		return result{before: before, after: after}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return res.before, res.after, nil
}
