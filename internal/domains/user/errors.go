package user

import (
	"errors"

	"media-admin-backend/internal/shared/response"
	"media-admin-backend/internal/shared/validation"
)

var (
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSelfDemotion stops admins from removing their own admin role.
	ErrSelfDemotion = errors.New("cannot remove your own admin role")
)

func ErrorEnvelope(err error) (response.Envelope, bool) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		return response.NotFound("User not found"), true
	case errors.Is(err, ErrInvalidCredentials):
		return response.UnauthorizedWith("Invalid email or password"), true
	case errors.Is(err, ErrSelfDemotion):
		return response.Validation(validation.Field("role", ErrSelfDemotion.Error())), true
	default:
		return response.Envelope{}, false
	}
}
