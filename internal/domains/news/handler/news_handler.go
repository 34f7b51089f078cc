package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"media-admin-backend/internal/domains/news"
	"media-admin-backend/internal/shared/pipeline"
	"media-admin-backend/internal/shared/response"
	"media-admin-backend/internal/shared/validation"
)

type NewsHandler struct {
	service  *news.Service
	pipeline *pipeline.Pipeline
}

func NewNewsHandler(service *news.Service, p *pipeline.Pipeline) *NewsHandler {
	return &NewsHandler{service: service, pipeline: p}
}

// ========== LIST: GET /api/news?limit= ==========
func (h *NewsHandler) List(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.Write(c, response.Validation(validation.Field("limit", "must be a positive integer")))
			return
		}
		limit = n
	}

	articles, err := h.service.List(c.Request.Context(), limit)
	if err != nil {
		response.Write(c, h.pipeline.Failure(err, news.ErrorEnvelope))
		return
	}
	response.Write(c, response.OK(articles, ""))
}

// ========== GET: GET /api/news/:slug ==========
func (h *NewsHandler) Get(c *gin.Context) {
	article, err := h.service.GetBySlug(c.Request.Context(), strings.TrimSpace(c.Param("slug")))
	if err != nil {
		response.Write(c, h.pipeline.Failure(err, news.ErrorEnvelope))
		return
	}
	response.Write(c, response.OK(article, ""))
}
