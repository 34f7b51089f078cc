package publication

import (
	"errors"

	"media-admin-backend/internal/shared/response"
	"media-admin-backend/internal/shared/validation"
)

var (
	ErrPublicationNotFound = errors.New("publication not found")
	ErrUnknownCategory     = errors.New("publication category does not exist")
)

func ErrorEnvelope(err error) (response.Envelope, bool) {
	switch {
	case errors.Is(err, ErrPublicationNotFound):
		return response.NotFound("Publication not found"), true
	case errors.Is(err, ErrUnknownCategory):
		return response.Validation(validation.Field("category_id", "does not reference an existing category")), true
	default:
		return response.Envelope{}, false
	}
}
