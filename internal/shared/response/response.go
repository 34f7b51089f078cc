package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"media-admin-backend/internal/shared/validation"
)

// Error labels carried in the "error" field of failed envelopes.
const (
	ErrLabelValidation   = "Validation error"
	ErrLabelUnauthorized = "Unauthorized"
	ErrLabelForbidden    = "Forbidden"
	ErrLabelNotFound     = "Not found"
	ErrLabelConflict     = "Conflict"
	ErrLabelServer       = "Server error"

	AdminAccessRequired = "Admin access required"
	GenericServerError  = "Internal server error"
)

// FieldError is one rejected field of a payload.
type FieldError = validation.FieldError

// Envelope is the uniform body of every API response.
// Status is the HTTP code and is not serialized.
type Envelope struct {
	Status  int          `json:"-"`
	Success bool         `json:"success"`
	Data    interface{}  `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

// ========== Builders ==========

func OK(data interface{}, message string) Envelope {
	return Envelope{Status: http.StatusOK, Success: true, Data: data, Message: message}
}

func Validation(details []FieldError) Envelope {
	return Envelope{
		Status:  http.StatusBadRequest,
		Error:   ErrLabelValidation,
		Details: details,
	}
}

// Unauthorized covers both a missing identity and a non-admin role:
// the client never learns which one applied.
func Unauthorized() Envelope {
	return Envelope{
		Status:  http.StatusUnauthorized,
		Error:   ErrLabelUnauthorized,
		Message: AdminAccessRequired,
	}
}

// UnauthorizedWith is a 401 for public endpoints such as login, where the
// message is not about admin access.
func UnauthorizedWith(message string) Envelope {
	return Envelope{Status: http.StatusUnauthorized, Error: ErrLabelUnauthorized, Message: message}
}

func Forbidden(message string) Envelope {
	return Envelope{Status: http.StatusForbidden, Error: ErrLabelForbidden, Message: message}
}

func NotFound(message string) Envelope {
	return Envelope{Status: http.StatusNotFound, Error: ErrLabelNotFound, Message: message}
}

func Conflict(message string) Envelope {
	return Envelope{Status: http.StatusConflict, Error: ErrLabelConflict, Message: message}
}

// ServerError exposes err's text only when exposeDetail is set (non-production).
func ServerError(err error, exposeDetail bool) Envelope {
	message := GenericServerError
	if exposeDetail && err != nil {
		message = err.Error()
	}
	return Envelope{Status: http.StatusInternalServerError, Error: ErrLabelServer, Message: message}
}

// ========== gin helpers ==========

// Write renders env as JSON with its status.
func Write(c *gin.Context, env Envelope) {
	status := env.Status
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, env)
}

// Abort renders env and stops the middleware chain.
func Abort(c *gin.Context, env Envelope) {
	Write(c, env)
	c.Abort()
}
