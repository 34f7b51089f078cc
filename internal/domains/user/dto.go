package user

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"media-admin-backend/internal/shared/authz"
	schema "media-admin-backend/internal/shared/validation"
)

// Roles lists every assignable dashboard role.
var Roles = []string{authz.RoleAdmin, authz.RoleEditor, authz.RoleViewer}

// RoleChangeSchema validates PUT /api/users/:id/role.
var RoleChangeSchema = schema.NewSchema("role_change",
	schema.Rule{Field: "role", Type: schema.TypeString, Required: true, OneOf: Roles},
)

func ParseRoleChange(raw map[string]interface{}) (string, schema.Errors) {
	values, errs := RoleChangeSchema.Validate(raw)
	if len(errs) > 0 {
		return "", errs
	}
	return values.String("role"), nil
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims and lowercases the email. Passwords are taken verbatim.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate returns field errors in the same shape as schema validation.
func (r LoginRequest) Validate() schema.Errors {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 256)),
	)
	if err == nil {
		return nil
	}

	var out schema.Errors
	if fieldErrs, ok := err.(validation.Errors); ok {
		for _, field := range []string{"email", "password"} {
			if fe, ok := fieldErrs[field]; ok {
				out = append(out, schema.FieldError{Field: field, Message: fe.Error()})
			}
		}
		return out
	}
	return schema.Field("body", err.Error())
}
