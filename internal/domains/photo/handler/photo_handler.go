package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"media-admin-backend/internal/domains/audit"
	"media-admin-backend/internal/domains/photo"
	"media-admin-backend/internal/shared/authz"
	"media-admin-backend/internal/shared/pipeline"
	"media-admin-backend/internal/shared/response"
	"media-admin-backend/internal/shared/validation"
)

const entityName = "photos"

// formOverhead leaves room for the payload field and multipart framing on
// top of the file size cap.
const formOverhead = 1 << 20

type PhotoHandler struct {
	service  *photo.Service
	pipeline *pipeline.Pipeline
}

func NewPhotoHandler(svc *photo.Service, p *pipeline.Pipeline) *PhotoHandler {
	return &PhotoHandler{service: svc, pipeline: p}
}

// ========== LIST: GET /api/photos?category_id=&published= ==========
func (h *PhotoHandler) List(c *gin.Context) {
	var (
		filter photo.ListFilter
		errs   validation.Errors
	)
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errs = append(errs, validation.FieldError{Field: "category_id", Message: "must be a valid UUID"})
		} else {
			filter.CategoryID = &id
		}
	}
	if raw := c.Query("published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, validation.FieldError{Field: "published", Message: "must be a boolean"})
		} else {
			filter.Published = &published
		}
	}
	if len(errs) > 0 {
		response.Write(c, response.Validation(errs))
		return
	}

	photos, err := h.service.Repository().List(c.Request.Context(), filter)
	if err != nil {
		response.Write(c, h.pipeline.Failure(err, photo.ErrorEnvelope))
		return
	}
	response.Write(c, response.OK(photos, ""))
}

// ========== GET: GET /api/photos/:id ==========
func (h *PhotoHandler) Get(c *gin.Context) {
	id, errs := validation.ParseID(c.Param("id"))
	if len(errs) > 0 {
		response.Write(c, response.Validation(errs))
		return
	}

	p, err := h.service.Repository().GetByID(c.Request.Context(), id)
	if err != nil {
		response.Write(c, h.pipeline.Failure(err, photo.ErrorEnvelope))
		return
	}
	response.Write(c, response.OK(p, ""))
}

// ========== CREATE: POST /api/photos ==========
// Body: Photo JSON including file_path.
func (h *PhotoHandler) Create(c *gin.Context) {
	env := pipeline.Execute(c.Request.Context(), h.pipeline, authz.CredentialsFromRequest(c.Request), pipeline.Mutation[photo.Input]{
		Entity: entityName,
		Action: audit.ActionCreate,
		Decode: pipeline.JSONBody(c.Request.Body),
		Parse:  photo.ParseInput,
		Apply: func(ctx context.Context, _ authz.Identity, _ uuid.UUID, in photo.Input) (pipeline.Change, error) {
			created, err := h.service.Repository().Create(ctx, in)
			if err != nil {
				return pipeline.Change{}, err
			}
			return pipeline.Change{EntityID: created.ID.String(), After: created}, nil
		},
		Classify: photo.ErrorEnvelope,
		Message:  "Photo created",
	})
	response.Write(c, env)
}

// ========== UPLOAD: POST /api/photos/upload ==========
// Multipart form: "file" (jpeg/png) and "payload" (PhotoCreateInput JSON).
func (h *PhotoHandler) Upload(c *gin.Context) {
	var file []byte
	maxBytes := h.service.MaxUploadBytes()

	decode := func() (map[string]interface{}, validation.Errors) {
		var errs validation.Errors
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+formOverhead)
		tooLarge := validation.FieldError{Field: "file", Message: fmt.Sprintf("must not exceed %dMB", maxBytes>>20)}

		header, err := c.FormFile("file")
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, validation.Errors{tooLarge}
		case err != nil:
			errs = append(errs, validation.FieldError{Field: "file", Message: "is required"})
		case header.Size > maxBytes:
			errs = append(errs, tooLarge)
		default:
			data, err := readUpload(header, maxBytes)
			switch {
			case errors.Is(err, errUploadTooLarge):
				errs = append(errs, tooLarge)
			case err != nil:
				errs = append(errs, validation.FieldError{Field: "file", Message: "could not be read"})
			default:
				file = data
			}
		}

		raw, payloadErrs := validation.DecodePayload(strings.NewReader(c.PostForm("payload")))
		for _, fe := range payloadErrs {
			if fe.Field == "body" {
				fe.Field = "payload"
			}
			errs = append(errs, fe)
		}
		return raw, errs
	}

	env := pipeline.Execute(c.Request.Context(), h.pipeline, authz.CredentialsFromRequest(c.Request), pipeline.Mutation[photo.Input]{
		Entity: entityName,
		Action: audit.ActionCreate,
		Decode: decode,
		Parse:  photo.ParseCreateInput,
		Apply: func(ctx context.Context, _ authz.Identity, _ uuid.UUID, in photo.Input) (pipeline.Change, error) {
			created, err := h.service.CreateWithFile(ctx, in, file)
			if err != nil {
				return pipeline.Change{}, err
			}
			return pipeline.Change{EntityID: created.ID.String(), After: created}, nil
		},
		Classify: photo.ErrorEnvelope,
		Message:  "Photo uploaded",
	})
	response.Write(c, env)
}

var errUploadTooLarge = errors.New("upload exceeds size limit")

// readUpload reads at most maxBytes; anything longer is rejected.
func readUpload(header *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, errUploadTooLarge
	}
	return data, nil
}

// ========== UPDATE: PATCH|PUT /api/photos/:id ==========
func (h *PhotoHandler) Update(c *gin.Context) {
	env := pipeline.Execute(c.Request.Context(), h.pipeline, authz.CredentialsFromRequest(c.Request), pipeline.Mutation[photo.Patch]{
		Entity: entityName,
		Action: audit.ActionUpdate,
		ID:     c.Param("id"),
		Decode: pipeline.JSONBody(c.Request.Body),
		Parse:  photo.ParsePatch,
		Apply: func(ctx context.Context, _ authz.Identity, id uuid.UUID, patch photo.Patch) (pipeline.Change, error) {
			before, after, err := h.service.Repository().Update(ctx, id, patch)
			if err != nil {
				return pipeline.Change{}, err
			}
			return pipeline.Change{Before: before, After: after}, nil
		},
		Classify: photo.ErrorEnvelope,
		Message:  "Photo updated",
	})
	response.Write(c, env)
}

// ========== DELETE: DELETE /api/photos/:id ==========
func (h *PhotoHandler) Delete(c *gin.Context) {
	env := pipeline.Execute(c.Request.Context(), h.pipeline, authz.CredentialsFromRequest(c.Request), pipeline.Mutation[struct{}]{
		Entity: entityName,
		Action: audit.ActionDelete,
		ID:     c.Param("id"),
		Apply: func(ctx context.Context, _ authz.Identity, id uuid.UUID, _ struct{}) (pipeline.Change, error) {
			removed, err := h.service.Delete(ctx, id)
			if err != nil {
				return pipeline.Change{}, err
			}
			return pipeline.Change{Before: removed}, nil
		},
		Classify: photo.ErrorEnvelope,
		Message:  "Photo deleted",
	})
	response.Write(c, env)
}
