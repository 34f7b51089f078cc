package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"media-admin-backend/internal/domains/audit"
	"media-admin-backend/internal/shared/middleware"
	"media-admin-backend/internal/shared/pipeline"
	"media-admin-backend/internal/shared/response"
	"media-admin-backend/internal/shared/validation"
	"media-admin-backend/pkg/logger"
)

// Lister is the read side of the audit recorder.
type Lister interface {
	ListRecent(ctx context.Context, filter audit.ListFilter) ([]audit.Entry, error)
}

type AuditHandler struct {
	lister   Lister
	pipeline *pipeline.Pipeline
}

func NewAuditHandler(lister Lister, p *pipeline.Pipeline) *AuditHandler {
	return &AuditHandler{lister: lister, pipeline: p}
}

// ========== LIST: GET /api/audit-logs ==========
// Query: entity, entity_id, limit (default 50, max 200)
// Must be mounted behind middleware.RequireAdmin.
func (h *AuditHandler) List(c *gin.Context) {
	reader, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Write(c, response.Unauthorized())
		return
	}

	filter := audit.ListFilter{
		Entity:   strings.TrimSpace(c.Query("entity")),
		EntityID: strings.TrimSpace(c.Query("entity_id")),
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.Write(c, response.Validation(validation.Field("limit", "must be a positive integer")))
			return
		}
		filter.Limit = limit
	}

	entries, err := h.lister.ListRecent(c.Request.Context(), filter)
	if err != nil {
		response.Write(c, h.pipeline.Failure(err, nil))
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}

	logger.Info("Audit log read", map[string]interface{}{
		"by_user": reader.UserID.String(),
		"entity":  filter.Entity,
		"count":   len(entries),
	})

	response.Write(c, response.OK(entries, ""))
}
