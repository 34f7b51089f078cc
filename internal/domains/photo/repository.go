package photo

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Photo, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	Create(ctx context.Context, in Input) (*Photo, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (before, after *Photo, err error)
	Delete(ctx context.Context, id uuid.UUID) (*Photo, error)
}

// ObjectStore holds uploaded binaries.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// ImageInspector validates uploads and renders thumbnails.
type ImageInspector interface {
	MaxBytes() int64
	Inspect(data []byte) (format string, err error)
	Thumbnail(data []byte) ([]byte, error)
}
