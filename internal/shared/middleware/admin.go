package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"media-admin-backend/internal/shared/authz"
	"media-admin-backend/internal/shared/response"
)

// ContextKeyIdentity holds the authz.Identity of an admin request.
const ContextKeyIdentity = "identity"

type Gatekeeper interface {
	RequireAdmin(ctx context.Context, creds authz.Credentials) (authz.Identity, error)
}

// RequireAdmin guards admin reads. Mutations go through the pipeline,
// which calls the gate itself.
func RequireAdmin(gate Gatekeeper, exposeErrors bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := gate.RequireAdmin(c.Request.Context(), authz.CredentialsFromRequest(c.Request))
		if err != nil {
			if authz.IsDenied(err) {
				response.Abort(c, response.Unauthorized())
				return
			}
			log.Error().Err(err).Str("request_id", c.GetString(ContextKeyRequestID)).Msg("authorization lookup failed")
			response.Abort(c, response.ServerError(err, exposeErrors))
			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by RequireAdmin.
func IdentityFrom(c *gin.Context) (authz.Identity, bool) {
	v, ok := c.Get(ContextKeyIdentity)
	if !ok {
		return authz.Identity{}, false
	}
	identity, ok := v.(authz.Identity)
	return identity, ok
}
