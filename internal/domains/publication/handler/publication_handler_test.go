package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-admin-backend/internal/domains/audit"
	"media-admin-backend/internal/domains/publication"
	"media-admin-backend/internal/shared/authz"
	"media-admin-backend/internal/shared/pipeline"
	"media-admin-backend/internal/shared/response"
)

var adminID = uuid.MustParse("8d0c1f4e-2b1a-4c3d-9e8f-112233445566")

type gateStub struct{}

func (gateStub) RequireAdmin(context.Context, authz.Credentials) (authz.Identity, error) {
	return authz.Identity{UserID: adminID, Role: authz.RoleAdmin}, nil
}

type auditStub struct {
	entries []audit.Entry
}

func (a *auditStub) Record(_ context.Context, entry audit.Entry) {
	a.entries = append(a.entries, entry)
}

type repoStub struct {
	publication.Repository
	updates   int
	createErr error
	created   []publication.Input
	deleted   *publication.Publication
	deleteErr error
}

func (r *repoStub) Create(_ context.Context, in publication.Input) (*publication.Publication, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, in)
	return &publication.Publication{ID: uuid.New(), Name: in.Name, CategoryID: in.CategoryID, Tags: in.Tags, Published: in.Published}, nil
}

func (r *repoStub) Update(_ context.Context, id uuid.UUID, _ publication.Patch) (*publication.Publication, *publication.Publication, error) {
	r.updates++
	return nil, nil, publication.ErrPublicationNotFound
}

func (r *repoStub) Delete(_ context.Context, id uuid.UUID) (*publication.Publication, error) {
	if r.deleteErr != nil {
		return nil, r.deleteErr
	}
	r.deleted = &publication.Publication{ID: id, Name: "Field Notes"}
	return r.deleted, nil
}

func setup(repo *repoStub) (*gin.Engine, *auditStub) {
	gin.SetMode(gin.TestMode)
	auditor := &auditStub{}
	h := NewPublicationHandler(repo, pipeline.New(gateStub{}, auditor, false))

	r := gin.New()
	r.POST("/api/publications", h.Create)
	r.PATCH("/api/publications/:id", h.Update)
	r.PUT("/api/publications/:id", h.Update)
	r.DELETE("/api/publications/:id", h.Delete)
	return r, auditor
}

func serve(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, response.Envelope) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	r.ServeHTTP(w, req)

	var env response.Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCreateRecordsAudit(t *testing.T) {
	repo := &repoStub{}
	r, auditor := setup(repo)
	categoryID := uuid.New()

	w, env := serve(r, http.MethodPost, "/api/publications",
		`{"name":"Field Notes","category_id":"`+categoryID.String()+`","tags":["essays"]}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, "Publication created", env.Message)
	require.Len(t, repo.created, 1)
	assert.Equal(t, categoryID, repo.created[0].CategoryID)
	assert.True(t, repo.created[0].Published)

	require.Len(t, auditor.entries, 1)
	entry := auditor.entries[0]
	assert.Equal(t, "publications", entry.Entity)
	assert.Equal(t, audit.ActionCreate, entry.Action)
	assert.Equal(t, adminID, entry.ByUser)
	assert.Nil(t, entry.Before)
	after, ok := entry.After.(*publication.Publication)
	require.True(t, ok)
	assert.Equal(t, after.ID.String(), entry.EntityID)
	assert.Equal(t, "Field Notes", after.Name)
}

func TestCreateUnknownCategoryIsFieldError(t *testing.T) {
	repo := &repoStub{createErr: publication.ErrUnknownCategory}
	r, auditor := setup(repo)

	w, env := serve(r, http.MethodPost, "/api/publications",
		`{"name":"Field Notes","category_id":"`+uuid.NewString()+`"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	require.Len(t, env.Details, 1)
	assert.Equal(t, "category_id", env.Details[0].Field)
	assert.Empty(t, auditor.entries)
}

func TestCreateInvalidPayloadSkipsStore(t *testing.T) {
	repo := &repoStub{}
	r, auditor := setup(repo)

	w, env := serve(r, http.MethodPost, "/api/publications", `{"name":"","category_id":"nope"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := make([]string, 0, len(env.Details))
	for _, d := range env.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"name", "category_id"}, fields)
	assert.Empty(t, repo.created)
	assert.Empty(t, auditor.entries)
}

func TestUpdateMissingPublication(t *testing.T) {
	repo := &repoStub{}
	r, auditor := setup(repo)

	for _, method := range []string{http.MethodPatch, http.MethodPut} {
		w, env := serve(r, method, "/api/publications/"+uuid.NewString(), `{"name":"Renamed"}`)
		assert.Equal(t, http.StatusNotFound, w.Code, method)
		assert.False(t, env.Success)
	}
	assert.Equal(t, 2, repo.updates)
	assert.Empty(t, auditor.entries)
}

func TestDelete(t *testing.T) {
	repo := &repoStub{}
	r, auditor := setup(repo)
	id := uuid.New()

	w, env := serve(r, http.MethodDelete, "/api/publications/"+id.String(), "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Publication deleted", env.Message)
	require.Len(t, auditor.entries, 1)
	assert.Equal(t, audit.ActionDelete, auditor.entries[0].Action)
	assert.Equal(t, id.String(), auditor.entries[0].EntityID)
	assert.Equal(t, repo.deleted, auditor.entries[0].Before)
	assert.Nil(t, auditor.entries[0].After)
}

func TestDeleteMissingPublication(t *testing.T) {
	repo := &repoStub{deleteErr: publication.ErrPublicationNotFound}
	r, auditor := setup(repo)

	w, _ := serve(r, http.MethodDelete, "/api/publications/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := serve(r, http.MethodDelete, "/api/publications/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.Len(t, env.Details, 1)
	assert.Equal(t, "id", env.Details[0].Field)
	assert.Empty(t, auditor.entries)
}

func TestUpdateRejectsFarFuturePublishedYear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &repoStub{}
	h := NewPublicationHandler(repo, pipeline.New(gateStub{}, nil, false))

	r := gin.New()
	r.PATCH("/api/publications/:id", h.Update)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/publications/"+uuid.NewString(), strings.NewReader(`{"published_year":3000}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Details, 1)
	assert.Equal(t, "published_year", env.Details[0].Field)
	assert.Zero(t, repo.updates)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/publications/"+uuid.NewString(), strings.NewReader(`{"published_year":2001}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, repo.updates)
}
