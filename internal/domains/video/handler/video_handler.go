package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"media-admin-backend/internal/domains/video"
	"media-admin-backend/internal/shared/pipeline"
	"media-admin-backend/internal/shared/response"
	"media-admin-backend/internal/shared/validation"
)

type VideoHandler struct {
	repo     video.Repository
	mapper   video.Mapper
	pipeline *pipeline.Pipeline
}

func NewVideoHandler(repo video.Repository, mapper video.Mapper, p *pipeline.Pipeline) *VideoHandler {
	return &VideoHandler{repo: repo, mapper: mapper, pipeline: p}
}

// ========== LIST: GET /api/videos?category=<slug> ==========
func (h *VideoHandler) List(c *gin.Context) {
	rows, err := h.repo.List(c.Request.Context(), video.ListFilter{Category: strings.TrimSpace(c.Query("category"))})
	if err != nil {
		response.Write(c, h.pipeline.Failure(err, video.ErrorEnvelope))
		return
	}
	response.Write(c, response.OK(h.mapper.MapAll(rows), ""))
}

// ========== GET: GET /api/videos/:id ==========
func (h *VideoHandler) Get(c *gin.Context) {
	id, errs := validation.ParseID(c.Param("id"))
	if len(errs) > 0 {
		response.Write(c, response.Validation(errs))
		return
	}

	row, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Write(c, h.pipeline.Failure(err, video.ErrorEnvelope))
		return
	}
	response.Write(c, response.OK(h.mapper.Map(*row), ""))
}
