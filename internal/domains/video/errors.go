package video

import (
	"errors"

	"media-admin-backend/internal/shared/response"
)

var ErrVideoNotFound = errors.New("video not found")

func ErrorEnvelope(err error) (response.Envelope, bool) {
	if errors.Is(err, ErrVideoNotFound) {
		return response.NotFound("Video not found"), true
	}
	return response.Envelope{}, false
}
