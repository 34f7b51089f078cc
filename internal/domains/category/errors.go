package category

import (
	"errors"

	"media-admin-backend/internal/shared/response"
	"media-admin-backend/internal/shared/validation"
)

// ============================================================
// SENTINEL ERRORS
// ============================================================
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrUnknownVariant   = errors.New("unknown category variant")

	// ErrDuplicateSlug is a unique violation on (variant, slug).
	ErrDuplicateSlug = errors.New("category slug already exists")

	// ErrCategoryInUse blocks deleting a category that entities still reference.
	ErrCategoryInUse = errors.New("category is still referenced")
)

// ErrorEnvelope maps category errors to response envelopes.
func ErrorEnvelope(err error) (response.Envelope, bool) {
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return response.NotFound("Category not found"), true
	case errors.Is(err, ErrUnknownVariant):
		return response.NotFound("Unknown category variant"), true
	case errors.Is(err, ErrDuplicateSlug):
		return response.Validation(validation.Field("slug", "already exists")), true
	case errors.Is(err, ErrCategoryInUse):
		return response.Conflict("Category is still used by other records"), true
	default:
		return response.Envelope{}, false
	}
}
