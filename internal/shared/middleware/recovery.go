package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"media-admin-backend/internal/shared/response"
)

func Recovery(exposeErrors bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(ContextKeyRequestID)).
					Interface("error", r).
					Msg("Panic recovered")

				response.Abort(c, response.ServerError(fmt.Errorf("panic: %v", r), exposeErrors))
			}
		}()

		c.Next()
	}
}
