package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"media-admin-backend/internal/domains/audit"
	"media-admin-backend/internal/domains/user"
	"media-admin-backend/internal/shared/authz"
	"media-admin-backend/internal/shared/pipeline"
	"media-admin-backend/internal/shared/response"
	"media-admin-backend/internal/shared/validation"
)

// sessionCookies are cleared on logout. The last two are left behind by
// older clients of the identity provider.
var sessionCookies = []string{
	authz.AccessTokenCookie,
	authz.RefreshTokenCookie,
	"supabase-auth-token",
	"supabase.auth.token",
}

// SessionConfig controls the cookies written by login and logout.
type SessionConfig struct {
	SecureCookies bool
	LoginPath     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type UserHandler struct {
	service  *user.Service
	pipeline *pipeline.Pipeline
	session  SessionConfig
}

func NewUserHandler(svc *user.Service, p *pipeline.Pipeline, session SessionConfig) *UserHandler {
	if session.LoginPath == "" {
		session.LoginPath = "/login"
	}
	return &UserHandler{service: svc, pipeline: p, session: session}
}

// ========== LOGIN: POST /api/login ==========
func (h *UserHandler) Login(c *gin.Context) {
	// STEP 1: PARSE + VALIDATE
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Write(c, response.Validation(validation.Field("body", "must be a JSON object with email and password")))
		return
	}
	req.Normalize()
	if errs := req.Validate(); len(errs) > 0 {
		response.Write(c, response.Validation(errs))
		return
	}

	// STEP 2: AUTHENTICATE
	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Write(c, h.pipeline.Failure(err, user.ErrorEnvelope))
		return
	}

	// STEP 3: SESSION COOKIES
	h.setCookie(c, authz.AccessTokenCookie, session.AccessToken, h.session.AccessTTL)
	h.setCookie(c, authz.RefreshTokenCookie, session.RefreshToken, h.session.RefreshTTL)

	response.Write(c, response.OK(session.Profile, "Login successful"))
}

// ========== LOGOUT: POST /api/logout ==========
// Expires every session cookie, then sends the browser to the login page.
func (h *UserHandler) Logout(c *gin.Context) {
	expired := time.Unix(0, 0)
	for _, name := range sessionCookies {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
			Secure:   h.session.SecureCookies,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	c.Redirect(http.StatusSeeOther, h.session.LoginPath)
}

// ========== LOGOUT: GET /api/logout ==========
// Only redirects. Cookies are cleared by POST so that a prefetch or an
// image tag cannot end the session.
func (h *UserHandler) LogoutRedirect(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, h.session.LoginPath)
}

// ========== ROLE: PUT /api/users/:id/role ==========
func (h *UserHandler) ChangeRole(c *gin.Context) {
	env := pipeline.Execute(c.Request.Context(), h.pipeline, authz.CredentialsFromRequest(c.Request), pipeline.Mutation[string]{
		Entity: "profiles",
		Action: audit.ActionRoleChange,
		ID:     c.Param("id"),
		Decode: pipeline.JSONBody(c.Request.Body),
		Parse:  user.ParseRoleChange,
		Apply: func(ctx context.Context, actor authz.Identity, id uuid.UUID, role string) (pipeline.Change, error) {
			before, after, err := h.service.ChangeRole(ctx, actor, id, role)
			if err != nil {
				return pipeline.Change{}, err
			}
			return pipeline.Change{Before: before, After: after}, nil
		},
		Classify: user.ErrorEnvelope,
		Message:  "Role updated",
	})
	response.Write(c, env)
}

func (h *UserHandler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   h.session.SecureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
