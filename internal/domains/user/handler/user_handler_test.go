package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"media-admin-backend/internal/domains/audit"
	"media-admin-backend/internal/domains/user"
	"media-admin-backend/internal/shared/authz"
	"media-admin-backend/internal/shared/pipeline"
	"media-admin-backend/internal/shared/response"
	"media-admin-backend/pkg/jwt"
)

type repoStub struct {
	profile *user.Profile
}

func (r *repoStub) GetRole(context.Context, uuid.UUID) (string, error) { return r.profile.Role, nil }

func (r *repoStub) FindByEmail(_ context.Context, email string) (*user.Profile, error) {
	if email != r.profile.Email {
		return nil, user.ErrProfileNotFound
	}
	return r.profile, nil
}

func (r *repoStub) UpdateRole(_ context.Context, id uuid.UUID, role string) (*user.Profile, *user.Profile, error) {
	if id != r.profile.ID {
		return nil, nil, user.ErrProfileNotFound
	}
	before := *r.profile
	r.profile.Role = role
	after := *r.profile
	return &before, &after, nil
}

type gateStub struct {
	actor uuid.UUID
}

func (g gateStub) RequireAdmin(context.Context, authz.Credentials) (authz.Identity, error) {
	return authz.Identity{UserID: g.actor, Role: authz.RoleAdmin}, nil
}

type auditorStub struct {
	entries []audit.Entry
}

func (a *auditorStub) Record(_ context.Context, e audit.Entry) { a.entries = append(a.entries, e) }

type invalidatorStub struct{ ids []uuid.UUID }

func (s *invalidatorStub) Invalidate(_ context.Context, id uuid.UUID) error {
	s.ids = append(s.ids, id)
	return nil
}

func setup(t *testing.T) (*gin.Engine, *repoStub, *auditorStub, *invalidatorStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &repoStub{profile: &user.Profile{ID: uuid.New(), Email: "ed@example.com", Role: authz.RoleEditor, PasswordHash: string(hash)}}

	inv, auditor := &invalidatorStub{}, &auditorStub{}
	svc := user.NewService(repo, inv, jwt.NewManager("secret", time.Hour, 48*time.Hour))
	h := NewUserHandler(svc, pipeline.New(gateStub{actor: uuid.New()}, auditor, false), SessionConfig{
		LoginPath:  "/login",
		AccessTTL:  time.Hour,
		RefreshTTL: 48 * time.Hour,
	})

	r := gin.New()
	r.POST("/api/login", h.Login)
	r.POST("/api/logout", h.Logout)
	r.GET("/api/logout", h.LogoutRedirect)
	r.PUT("/api/users/:id/role", h.ChangeRole)
	return r, repo, auditor, inv
}

func TestLogoutExpiresSessionCookies(t *testing.T) {
	r, _, _, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookies := map[string]*http.Cookie{}
	for _, c := range w.Result().Cookies() {
		cookies[c.Name] = c
	}
	for _, name := range []string{"sb-access-token", "sb-refresh-token", "supabase-auth-token", "supabase.auth.token"} {
		c, ok := cookies[name]
		require.True(t, ok, name)
		assert.Empty(t, c.Value)
		assert.True(t, c.Expires.Before(time.Now()), name)
		assert.Less(t, c.MaxAge, 0, name)
	}
}

func TestLogoutGetOnlyRedirects(t *testing.T) {
	r, _, _, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/logout", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Empty(t, w.Result().Cookies())
}

func TestLoginSetsSessionCookies(t *testing.T) {
	r, _, _, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"ED@example.com","password":"s3cret"}`)))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	names := map[string]bool{}
	for _, c := range w.Result().Cookies() {
		names[c.Name] = c.Value != "" && c.HttpOnly
	}
	assert.True(t, names[authz.AccessTokenCookie])
	assert.True(t, names[authz.RefreshTokenCookie])
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestLoginWrongPassword(t *testing.T) {
	r, _, _, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email":"ed@example.com","password":"nope"}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, response.ErrLabelUnauthorized, env.Error)
	assert.Empty(t, w.Result().Cookies())
}

func TestChangeRoleIsAudited(t *testing.T) {
	r, repo, auditor, inv := setup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+repo.profile.ID.String()+"/role", strings.NewReader(`{"role":"admin"}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, auditor.entries, 1)
	assert.Equal(t, audit.ActionRoleChange, auditor.entries[0].Action)
	assert.Equal(t, repo.profile.ID.String(), auditor.entries[0].EntityID)
	assert.Equal(t, []uuid.UUID{repo.profile.ID}, inv.ids)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/users/"+repo.profile.ID.String()+"/role", strings.NewReader(`{"role":"root"}`))
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
