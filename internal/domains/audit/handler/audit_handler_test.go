package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-admin-backend/internal/domains/audit"
	"media-admin-backend/internal/shared/authz"
	"media-admin-backend/internal/shared/middleware"
	"media-admin-backend/internal/shared/pipeline"
	"media-admin-backend/internal/shared/response"
)

type listerStub struct {
	filters []audit.ListFilter
	entries []audit.Entry
	err     error
}

func (l *listerStub) ListRecent(_ context.Context, filter audit.ListFilter) ([]audit.Entry, error) {
	l.filters = append(l.filters, filter)
	return l.entries, l.err
}

func setup(lister *listerStub, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuditHandler(lister, pipeline.New(nil, nil, false))

	r := gin.New()
	if admin {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextKeyIdentity, authz.Identity{UserID: uuid.New(), Role: authz.RoleAdmin})
			c.Next()
		})
	}
	r.GET("/api/audit-logs", h.List)
	return r
}

func get(r *gin.Engine, path string) (*httptest.ResponseRecorder, response.Envelope) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var env response.Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestListPassesFilter(t *testing.T) {
	lister := &listerStub{entries: []audit.Entry{{Entity: "photos", Action: audit.ActionCreate}}}
	r := setup(lister, true)

	w, env := get(r, "/api/audit-logs?entity=photos&entity_id=%20abc%20&limit=10")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, env.Success)
	require.Len(t, lister.filters, 1)
	assert.Equal(t, audit.ListFilter{Entity: "photos", EntityID: "abc", Limit: 10}, lister.filters[0])
}

func TestListEmptyIsArray(t *testing.T) {
	r := setup(&listerStub{}, true)

	w, _ := get(r, "/api/audit-logs")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestListRequiresIdentity(t *testing.T) {
	lister := &listerStub{}
	r := setup(lister, false)

	w, _ := get(r, "/api/audit-logs")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, lister.filters)
}

func TestListRejectsBadLimit(t *testing.T) {
	for _, limit := range []string{"0", "-3", "ten"} {
		lister := &listerStub{}
		r := setup(lister, true)

		w, env := get(r, "/api/audit-logs?limit="+limit)

		assert.Equal(t, http.StatusBadRequest, w.Code, limit)
		require.Len(t, env.Details, 1)
		assert.Equal(t, "limit", env.Details[0].Field)
		assert.Empty(t, lister.filters)
	}
}

func TestListStoreFailure(t *testing.T) {
	r := setup(&listerStub{err: errors.New("connection reset")}, true)

	w, env := get(r, "/api/audit-logs")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.NotContains(t, w.Body.String(), "connection reset")
}
