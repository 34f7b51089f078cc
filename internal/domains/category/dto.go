package category

import (
	"regexp"

	"media-admin-backend/internal/shared/validation"
)

// SlugPattern is lowercase alphanumeric words joined by single hyphens.
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Schema validates CategoryInput. Every variant shares it.
var Schema = validation.NewSchema("category",
	validation.Rule{Field: "name", Type: validation.TypeString, Required: true, MinLen: 1, MaxLen: 80},
	validation.Rule{Field: "slug", Type: validation.TypeString, Required: true, MinLen: 1, MaxLen: 80, Pattern: SlugPattern, Untrimmed: true},
)

// UpdateSchema is Schema with every field optional.
var UpdateSchema = Schema.Partial()

// ParseInput validates a create payload.
func ParseInput(raw map[string]interface{}) (Input, validation.Errors) {
	values, errs := Schema.Validate(raw)
	if len(errs) > 0 {
		return Input{}, errs
	}
	return Input{Name: values.String("name"), Slug: values.String("slug")}, nil
}

// ParsePatch validates an update payload.
func ParsePatch(raw map[string]interface{}) (Patch, validation.Errors) {
	values, errs := UpdateSchema.Validate(raw)
	if len(errs) > 0 {
		return Patch{}, errs
	}
	return Patch{Name: values.StringPtr("name"), Slug: values.StringPtr("slug")}, nil
}
