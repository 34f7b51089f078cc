package publication

import (
	"time"

	"media-admin-backend/internal/shared/validation"
)

// MinPublishedYear is the oldest accepted publication year.
const MinPublishedYear = 1000

// maxPublishedYear allows announced titles up to five years ahead. It is
// evaluated on every validation so the bound follows the calendar.
func maxPublishedYear() int {
	return time.Now().Year() + 5
}

var Schema = validation.NewSchema("publication",
	validation.Rule{Field: "name", Type: validation.TypeString, Required: true, MinLen: 1, MaxLen: 200},
	validation.Rule{Field: "cover_path", Type: validation.TypeString, BlankToAbsent: true},
	validation.Rule{Field: "description", Type: validation.TypeString, BlankToAbsent: true},
	validation.Rule{Field: "category_id", Type: validation.TypeString, Required: true, Format: validation.FormatUUID},
	validation.Rule{Field: "total_pages", Type: validation.TypeInt, Min: validation.Bound(1)},
	validation.Rule{Field: "publisher", Type: validation.TypeString, MaxLen: 160, BlankToAbsent: true},
	validation.Rule{Field: "tags", Type: validation.TypeStringList, Default: []string{}},
	validation.Rule{Field: "published_year", Type: validation.TypeInt, Min: validation.Bound(MinPublishedYear), Max: maxPublishedYear},
	validation.Rule{Field: "buy_url", Type: validation.TypeString, Format: validation.FormatURL, BlankToAbsent: true},
	validation.Rule{Field: "published", Type: validation.TypeBool, Default: true},
	validation.Rule{Field: "featured", Type: validation.TypeBool, Default: false},
)

var UpdateSchema = Schema.Partial()

func ParseInput(raw map[string]interface{}) (Input, validation.Errors) {
	values, errs := Schema.Validate(raw)
	if len(errs) > 0 {
		return Input{}, errs
	}
	return Input{
		Name:          values.String("name"),
		CoverPath:     values.StringPtr("cover_path"),
		Description:   values.StringPtr("description"),
		CategoryID:    values.UUID("category_id"),
		TotalPages:    values.IntPtr("total_pages"),
		Publisher:     values.StringPtr("publisher"),
		Tags:          values.Strings("tags"),
		PublishedYear: values.IntPtr("published_year"),
		BuyURL:        values.StringPtr("buy_url"),
		Published:     values.Bool("published"),
		Featured:      values.Bool("featured"),
	}, nil
}

func ParsePatch(raw map[string]interface{}) (Patch, validation.Errors) {
	values, errs := UpdateSchema.Validate(raw)
	if len(errs) > 0 {
		return Patch{}, errs
	}
	return Patch{
		Name:          values.StringPtr("name"),
		CoverPath:     values.StringPtr("cover_path"),
		Description:   values.StringPtr("description"),
		CategoryID:    values.UUIDPtr("category_id"),
		TotalPages:    values.IntPtr("total_pages"),
		Publisher:     values.StringPtr("publisher"),
		Tags:          values.Strings("tags"),
		PublishedYear: values.IntPtr("published_year"),
		BuyURL:        values.StringPtr("buy_url"),
		Published:     values.BoolPtr("published"),
		Featured:      values.BoolPtr("featured"),
	}, nil
}
