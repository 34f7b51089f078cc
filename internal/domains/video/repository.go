package video

import (
	"context"

	"github.com/google/uuid"
)

// Repository reads raw video rows. Mapping happens above it.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Row, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Row, error)
}
