package publication

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Publication, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Publication, error)
	Create(ctx context.Context, in Input) (*Publication, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (before, after *Publication, err error)
	Delete(ctx context.Context, id uuid.UUID) (*Publication, error)
}
