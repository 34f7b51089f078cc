package photo

import (
	"media-admin-backend/internal/shared/validation"
)

var createRules = []validation.Rule{
	{Field: "title", Type: validation.TypeString, Required: true, MinLen: 1, MaxLen: 200},
	{Field: "location", Type: validation.TypeString, MaxLen: 120, BlankToAbsent: true},
	{Field: "category_id", Type: validation.TypeString, Required: true, Format: validation.FormatUUID},
	{Field: "tags", Type: validation.TypeStringList, Default: []string{}},
	{Field: "description", Type: validation.TypeString, BlankToAbsent: true},
	{Field: "exif", Type: validation.TypeObject, BlankToAbsent: true},
	{Field: "published", Type: validation.TypeBool, Default: true},
}

// CreateInputSchema is the photo payload without file_path. The upload
// endpoint assigns file_path after storing the binary.
var CreateInputSchema = validation.NewSchema("photo_create", createRules...)

// Schema is the full photo payload.
var Schema = validation.NewSchema("photo", append([]validation.Rule{
	{Field: "file_path", Type: validation.TypeString, Required: true, MinLen: 1},
}, createRules...)...)

// UpdateSchema makes every field of Schema optional.
var UpdateSchema = Schema.Partial()

func inputFrom(values validation.Values) Input {
	return Input{
		FilePath:    values.String("file_path"),
		Title:       values.String("title"),
		Location:    values.StringPtr("location"),
		CategoryID:  values.UUID("category_id"),
		Tags:        values.Strings("tags"),
		Description: values.StringPtr("description"),
		Exif:        values.Object("exif"),
		Published:   values.Bool("published"),
	}
}

// ParseInput validates a JSON create payload carrying file_path.
func ParseInput(raw map[string]interface{}) (Input, validation.Errors) {
	values, errs := Schema.Validate(raw)
	if len(errs) > 0 {
		return Input{}, errs
	}
	return inputFrom(values), nil
}

// ParseCreateInput validates the payload part of an upload.
func ParseCreateInput(raw map[string]interface{}) (Input, validation.Errors) {
	values, errs := CreateInputSchema.Validate(raw)
	if len(errs) > 0 {
		return Input{}, errs
	}
	return inputFrom(values), nil
}

// ParsePatch validates an update payload.
func ParsePatch(raw map[string]interface{}) (Patch, validation.Errors) {
	values, errs := UpdateSchema.Validate(raw)
	if len(errs) > 0 {
		return Patch{}, errs
	}
	return Patch{
		FilePath:    values.StringPtr("file_path"),
		Title:       values.StringPtr("title"),
		Location:    values.StringPtr("location"),
		CategoryID:  values.UUIDPtr("category_id"),
		Tags:        values.Strings("tags"),
		Description: values.StringPtr("description"),
		Exif:        values.Object("exif"),
		Published:   values.BoolPtr("published"),
	}, nil
}
