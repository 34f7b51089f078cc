package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"media-admin-backend/internal/shared/response"
)

// SameOrigin rejects mutating requests whose Origin header names another
// site. Requests without an Origin header pass; allowed is scheme://host.
func SameOrigin(allowed string) gin.HandlerFunc {
	allowed = strings.TrimRight(strings.ToLower(allowed), "/")

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		origin := strings.TrimRight(strings.ToLower(c.GetHeader("Origin")), "/")
		if origin == "" || origin == allowed {
			c.Next()
			return
		}

		log.Warn().
			Str("request_id", c.GetString(ContextKeyRequestID)).
			Str("origin", origin).
			Str("path", c.Request.URL.Path).
			Msg("cross-origin mutation rejected")
		response.Abort(c, response.Forbidden("Origin not allowed"))
	}
}
