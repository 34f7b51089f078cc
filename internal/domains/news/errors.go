package news

import (
	"errors"

	"media-admin-backend/internal/infrastructure/content"
	"media-admin-backend/internal/shared/response"
)

var ErrArticleNotFound = errors.New("article not found")

func ErrorEnvelope(err error) (response.Envelope, bool) {
	switch {
	case errors.Is(err, ErrArticleNotFound):
		return response.NotFound("Article not found"), true
	case errors.Is(err, content.ErrNotConfigured):
		return response.NotFound("News is not available"), true
	}
	return response.Envelope{}, false
}
