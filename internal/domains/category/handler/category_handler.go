package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"media-admin-backend/internal/domains/audit"
	"media-admin-backend/internal/domains/category"
	"media-admin-backend/internal/shared/authz"
	"media-admin-backend/internal/shared/pipeline"
	"media-admin-backend/internal/shared/response"
	"media-admin-backend/internal/shared/validation"
)

// ============================================================
// HANDLER STRUCT
// ============================================================
type CategoryHandler struct {
	repo     category.Repository
	pipeline *pipeline.Pipeline
}

func NewCategoryHandler(repo category.Repository, p *pipeline.Pipeline) *CategoryHandler {
	return &CategoryHandler{repo: repo, pipeline: p}
}

// variant resolves the {variant} path segment, writing a 404 when unknown.
func (h *CategoryHandler) variant(c *gin.Context) (category.Variant, bool) {
	v, err := category.ParseVariant(c.Param("variant"))
	if err != nil {
		env, _ := category.ErrorEnvelope(err)
		response.Write(c, env)
		return "", false
	}
	return v, true
}

// ========== LIST: GET /api/categories/:variant ==========
func (h *CategoryHandler) List(c *gin.Context) {
	v, ok := h.variant(c)
	if !ok {
		return
	}

	categories, err := h.repo.List(c.Request.Context(), v)
	if err != nil {
		response.Write(c, h.pipeline.Failure(err, category.ErrorEnvelope))
		return
	}
	response.Write(c, response.OK(categories, ""))
}

// ========== GET: GET /api/categories/:variant/:id ==========
func (h *CategoryHandler) Get(c *gin.Context) {
	v, ok := h.variant(c)
	if !ok {
		return
	}

	id, errs := validation.ParseID(c.Param("id"))
	if len(errs) > 0 {
		response.Write(c, response.Validation(errs))
		return
	}

	cat, err := h.repo.GetByID(c.Request.Context(), v, id)
	if err != nil {
		response.Write(c, h.pipeline.Failure(err, category.ErrorEnvelope))
		return
	}
	response.Write(c, response.OK(cat, ""))
}

// ========== CREATE: POST /api/categories/:variant ==========
func (h *CategoryHandler) Create(c *gin.Context) {
	v, ok := h.variant(c)
	if !ok {
		return
	}

	env := pipeline.Execute(c.Request.Context(), h.pipeline, authz.CredentialsFromRequest(c.Request), pipeline.Mutation[category.Input]{
		Entity: v.EntityName(),
		Action: audit.ActionCreate,
		Decode: pipeline.JSONBody(c.Request.Body),
		Parse:  category.ParseInput,
		Apply: func(ctx context.Context, _ authz.Identity, _ uuid.UUID, in category.Input) (pipeline.Change, error) {
			created, err := h.repo.Create(ctx, v, in)
			if err != nil {
				return pipeline.Change{}, err
			}
			return pipeline.Change{EntityID: created.ID.String(), After: created}, nil
		},
		Classify: category.ErrorEnvelope,
		Message:  "Category created",
	})
	response.Write(c, env)
}

// ========== UPDATE: PATCH|PUT /api/categories/:variant/:id ==========
func (h *CategoryHandler) Update(c *gin.Context) {
	v, ok := h.variant(c)
	if !ok {
		return
	}

	env := pipeline.Execute(c.Request.Context(), h.pipeline, authz.CredentialsFromRequest(c.Request), pipeline.Mutation[category.Patch]{
		Entity: v.EntityName(),
		Action: audit.ActionUpdate,
		ID:     c.Param("id"),
		Decode: pipeline.JSONBody(c.Request.Body),
		Parse:  category.ParsePatch,
		Apply: func(ctx context.Context, _ authz.Identity, id uuid.UUID, patch category.Patch) (pipeline.Change, error) {
			before, after, err := h.repo.Update(ctx, v, id, patch)
			if err != nil {
				return pipeline.Change{}, err
			}
			return pipeline.Change{Before: before, After: after}, nil
		},
		Classify: category.ErrorEnvelope,
		Message:  "Category updated",
	})
	response.Write(c, env)
}

// ========== DELETE: DELETE /api/categories/:variant/:id ==========
func (h *CategoryHandler) Delete(c *gin.Context) {
	v, ok := h.variant(c)
	if !ok {
		return
	}

	env := pipeline.Execute(c.Request.Context(), h.pipeline, authz.CredentialsFromRequest(c.Request), pipeline.Mutation[struct{}]{
		Entity: v.EntityName(),
		Action: audit.ActionDelete,
		ID:     c.Param("id"),
		Apply: func(ctx context.Context, _ authz.Identity, id uuid.UUID, _ struct{}) (pipeline.Change, error) {
			removed, err := h.repo.Delete(ctx, v, id)
			if err != nil {
				return pipeline.Change{}, err
			}
			return pipeline.Change{Before: removed}, nil
		},
		Classify: category.ErrorEnvelope,
		Message:  "Category deleted",
	})
	response.Write(c, env)
}
