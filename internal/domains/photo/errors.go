package photo

import (
	"errors"

	"media-admin-backend/internal/infrastructure/storage"
	"media-admin-backend/internal/shared/response"
	"media-admin-backend/internal/shared/validation"
)

var (
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrUnknownCategory is a foreign key violation on category_id.
	ErrUnknownCategory = errors.New("photo category does not exist")
)

// ErrorEnvelope maps photo and upload errors to response envelopes.
func ErrorEnvelope(err error) (response.Envelope, bool) {
	switch {
	case errors.Is(err, ErrPhotoNotFound):
		return response.NotFound("Photo not found"), true
	case errors.Is(err, ErrUnknownCategory):
		return response.Validation(validation.Field("category_id", "does not reference an existing category")), true
	case errors.Is(err, storage.ErrImageTooLarge),
		errors.Is(err, storage.ErrNotAnImage),
		errors.Is(err, storage.ErrFormatForbidden):
		return response.Validation(validation.Field("file", err.Error())), true
	default:
		return response.Envelope{}, false
	}
}
