package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the category store. Every method is scoped to one variant.
type Repository interface {
	List(ctx context.Context, variant Variant) ([]Category, error)
	GetByID(ctx context.Context, variant Variant, id uuid.UUID) (*Category, error)
	Create(ctx context.Context, variant Variant, in Input) (*Category, error)

	// Update returns the row as it was before and after the patch.
	Update(ctx context.Context, variant Variant, id uuid.UUID, patch Patch) (before, after *Category, err error)

	// Delete returns the removed row. It fails with ErrCategoryInUse while
	// any entity of the variant still references the category.
	Delete(ctx context.Context, variant Variant, id uuid.UUID) (*Category, error)
}
