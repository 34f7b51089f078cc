package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"media-admin-backend/internal/domains/audit"
	"media-admin-backend/internal/domains/publication"
	"media-admin-backend/internal/shared/authz"
	"media-admin-backend/internal/shared/pipeline"
	"media-admin-backend/internal/shared/response"
	"media-admin-backend/internal/shared/validation"
)

const entityName = "publications"

type PublicationHandler struct {
	repo     publication.Repository
	pipeline *pipeline.Pipeline
}

func NewPublicationHandler(repo publication.Repository, p *pipeline.Pipeline) *PublicationHandler {
	return &PublicationHandler{repo: repo, pipeline: p}
}

// ========== LIST: GET /api/publications?category_id=&featured= ==========
func (h *PublicationHandler) List(c *gin.Context) {
	var (
		filter publication.ListFilter
		errs   validation.Errors
	)
	if raw := c.Query("category_id"); raw != "" {
		if id, err := uuid.Parse(raw); err != nil {
			errs = append(errs, validation.FieldError{Field: "category_id", Message: "must be a valid UUID"})
		} else {
			filter.CategoryID = &id
		}
	}
	if raw := c.Query("featured"); raw != "" {
		if featured, err := strconv.ParseBool(raw); err != nil {
			errs = append(errs, validation.FieldError{Field: "featured", Message: "must be a boolean"})
		} else {
			filter.Featured = &featured
		}
	}
	if len(errs) > 0 {
		response.Write(c, response.Validation(errs))
		return
	}

	publications, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		response.Write(c, h.pipeline.Failure(err, publication.ErrorEnvelope))
		return
	}
	response.Write(c, response.OK(publications, ""))
}

// ========== GET: GET /api/publications/:id ==========
func (h *PublicationHandler) Get(c *gin.Context) {
	id, errs := validation.ParseID(c.Param("id"))
	if len(errs) > 0 {
		response.Write(c, response.Validation(errs))
		return
	}

	p, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Write(c, h.pipeline.Failure(err, publication.ErrorEnvelope))
		return
	}
	response.Write(c, response.OK(p, ""))
}

// ========== CREATE: POST /api/publications ==========
func (h *PublicationHandler) Create(c *gin.Context) {
	env := pipeline.Execute(c.Request.Context(), h.pipeline, authz.CredentialsFromRequest(c.Request), pipeline.Mutation[publication.Input]{
		Entity: entityName,
		Action: audit.ActionCreate,
		Decode: pipeline.JSONBody(c.Request.Body),
		Parse:  publication.ParseInput,
		Apply: func(ctx context.Context, _ authz.Identity, _ uuid.UUID, in publication.Input) (pipeline.Change, error) {
			created, err := h.repo.Create(ctx, in)
			if err != nil {
				return pipeline.Change{}, err
			}
			return pipeline.Change{EntityID: created.ID.String(), After: created}, nil
		},
		Classify: publication.ErrorEnvelope,
		Message:  "Publication created",
	})
	response.Write(c, env)
}

// ========== UPDATE: PATCH|PUT /api/publications/:id ==========
func (h *PublicationHandler) Update(c *gin.Context) {
	env := pipeline.Execute(c.Request.Context(), h.pipeline, authz.CredentialsFromRequest(c.Request), pipeline.Mutation[publication.Patch]{
		Entity: entityName,
		Action: audit.ActionUpdate,
		ID:     c.Param("id"),
		Decode: pipeline.JSONBody(c.Request.Body),
		Parse:  publication.ParsePatch,
		Apply: func(ctx context.Context, _ authz.Identity, id uuid.UUID, patch publication.Patch) (pipeline.Change, error) {
			before, after, err := h.repo.Update(ctx, id, patch)
			if err != nil {
				return pipeline.Change{}, err
			}
			return pipeline.Change{Before: before, After: after}, nil
		},
		Classify: publication.ErrorEnvelope,
		Message:  "Publication updated",
	})
	response.Write(c, env)
}

// ========== DELETE: DELETE /api/publications/:id ==========
func (h *PublicationHandler) Delete(c *gin.Context) {
	env := pipeline.Execute(c.Request.Context(), h.pipeline, authz.CredentialsFromRequest(c.Request), pipeline.Mutation[struct{}]{
		Entity: entityName,
		Action: audit.ActionDelete,
		ID:     c.Param("id"),
		Apply: func(ctx context.Context, _ authz.Identity, id uuid.UUID, _ struct{}) (pipeline.Change, error) {
			removed, err := h.repo.Delete(ctx, id)
			if err != nil {
				return pipeline.Change{}, err
			}
			return pipeline.Change{Before: removed}, nil
		},
		Classify: publication.ErrorEnvelope,
		Message:  "Publication deleted",
	})
	response.Write(c, env)
}
