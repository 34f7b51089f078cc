package validation

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = NewSchema("thing",
	Rule{Field: "name", Type: TypeString, Required: true, MinLen: 1, MaxLen: 10},
	Rule{Field: "code", Type: TypeString, Pattern: regexp.MustCompile(`^[a-z]+$`)},
	Rule{Field: "note", Type: TypeString, MaxLen: 5, BlankToAbsent: true},
	Rule{Field: "owner_id", Type: TypeString, Format: FormatUUID},
	Rule{Field: "link", Type: TypeString, Format: FormatURL, BlankToAbsent: true},
	Rule{Field: "count", Type: TypeInt, Min: Bound(1)},
	Rule{Field: "year", Type: TypeInt, Min: Bound(1000), Max: Bound(2030)},
	Rule{Field: "tags", Type: TypeStringList, Default: []string{}},
	Rule{Field: "meta", Type: TypeObject, BlankToAbsent: true},
	Rule{Field: "kind", Type: TypeString, OneOf: []string{"a", "b"}},
	Rule{Field: "active", Type: TypeBool, Default: true},
)

func TestValidateAppliesDefaults(t *testing.T) {
	values, errs := testSchema.Validate(map[string]interface{}{"name": "  widget "})
	require.Empty(t, errs)

	assert.Equal(t, "widget", values.String("name"))
	assert.Equal(t, []string{}, values.Strings("tags"))
	assert.True(t, values.Bool("active"))
	assert.False(t, values.Has("note"))
}

func TestValidateBlankToAbsent(t *testing.T) {
	values, errs := testSchema.Validate(map[string]interface{}{
		"name": "x",
		"note": "   ",
		"link": "",
		"meta": "",
	})
	require.Empty(t, errs)
	assert.False(t, values.Has("note"))
	assert.False(t, values.Has("link"))
	assert.False(t, values.Has("meta"))
	assert.Nil(t, values.StringPtr("note"))
}

func TestValidateTagsAreTrimmedAndFiltered(t *testing.T) {
	values, errs := testSchema.Validate(map[string]interface{}{
		"name": "x",
		"tags": []interface{}{" live ", "", "   ", "lecture"},
	})
	require.Empty(t, errs)
	assert.Equal(t, []string{"live", "lecture"}, values.Strings("tags"))
}

func TestValidateReportsEveryRejectedField(t *testing.T) {
	_, errs := testSchema.Validate(map[string]interface{}{
		"name":     strings.Repeat("n", 11),
		"code":     "ABC",
		"owner_id": "not-a-uuid",
		"link":     "example.com/path",
		"count":    0,
		"year":     json.Number("3000"),
		"tags":     []interface{}{"ok", 3},
		"meta":     "oops",
		"kind":     "c",
		"active":   "yes",
	})

	for _, field := range []string{"name", "code", "owner_id", "link", "count", "year", "tags", "meta", "kind", "active"} {
		assert.True(t, errs.Has(field), "expected error on %s, got %v", field, errs)
	}
	assert.False(t, errs.Has("note"))
}

func TestValidateRequired(t *testing.T) {
	_, errs := testSchema.Validate(map[string]interface{}{})
	require.Len(t, errs, 1)
	assert.Equal(t, FieldError{Field: "name", Message: "is required"}, errs[0])

	_, errs = testSchema.Validate(map[string]interface{}{"name": nil})
	assert.True(t, errs.Has("name"))
}

func TestValidateIntegers(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		ok    bool
	}{
		{"json number", json.Number("2020"), true},
		{"json number integral float", json.Number("2020.0"), true},
		{"json number fraction", json.Number("2020.5"), false},
		{"json number exponent", json.Number("2.02e3"), true},
		{"float integral", float64(2020), true},
		{"float fraction", 2020.5, false},
		{"string", "2020", false},
		{"below range", 999, false},
		{"above range", 2031, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, errs := testSchema.Validate(map[string]interface{}{"name": "x", "year": tt.value})
			if tt.ok {
				require.Empty(t, errs)
				assert.Equal(t, 2020, *values.IntPtr("year"))
			} else {
				assert.True(t, errs.Has("year"))
			}
		})
	}
}

func TestValidateUntrimmedString(t *testing.T) {
	schema := NewSchema("code",
		Rule{Field: "code", Type: TypeString, Pattern: regexp.MustCompile(`^[a-z]+$`), Untrimmed: true},
		Rule{Field: "label", Type: TypeString, Pattern: regexp.MustCompile(`^[a-z]+$`)},
	)

	_, errs := schema.Validate(map[string]interface{}{"code": " abc"})
	assert.True(t, errs.Has("code"))
	_, errs = schema.Validate(map[string]interface{}{"code": "abc "})
	assert.True(t, errs.Has("code"))

	values, errs := schema.Validate(map[string]interface{}{"code": "abc", "label": " abc "})
	require.Empty(t, errs)
	assert.Equal(t, "abc", values.String("code"))
	assert.Equal(t, "abc", values.String("label"))
}

func TestValidateUUIDIsParsed(t *testing.T) {
	id := uuid.New()
	values, errs := testSchema.Validate(map[string]interface{}{"name": "x", "owner_id": id.String()})
	require.Empty(t, errs)
	assert.Equal(t, id, values.UUID("owner_id"))
}

func TestPartialMakesEverythingOptional(t *testing.T) {
	partial := testSchema.Partial()
	assert.Equal(t, "thing_update", partial.Name)

	values, errs := partial.Validate(map[string]interface{}{})
	require.Empty(t, errs)
	assert.Empty(t, values, "partial schemas must not inject defaults")

	_, errs = partial.Validate(map[string]interface{}{"name": ""})
	assert.True(t, errs.Has("name"), "constraints still apply to present fields")

	_, errs = partial.Validate(map[string]interface{}{"year": 3000})
	assert.True(t, errs.Has("year"))
}

func TestDecodePayload(t *testing.T) {
	payload, errs := DecodePayload(strings.NewReader(`{"total_pages": 12}`))
	require.Empty(t, errs)
	assert.Equal(t, json.Number("12"), payload["total_pages"])

	payload, errs = DecodePayload(strings.NewReader(""))
	require.Empty(t, errs)
	assert.Empty(t, payload)

	_, errs = DecodePayload(strings.NewReader(`[1,2]`))
	assert.True(t, errs.Has("body"))

	_, errs = DecodePayload(strings.NewReader(`{"a":`))
	assert.True(t, errs.Has("body"))

	oversized := `{"a":"` + strings.Repeat("x", MaxPayloadBytes) + `"}`
	_, errs = DecodePayload(strings.NewReader(oversized))
	require.Len(t, errs, 1)
	assert.Equal(t, FieldError{Field: "body", Message: "must not exceed 1MB"}, errs[0])
}

func TestParseID(t *testing.T) {
	_, errs := ParseID("nope")
	assert.True(t, errs.Has("id"))

	id := uuid.New()
	got, errs := ParseID(id.String())
	require.Empty(t, errs)
	assert.Equal(t, id, got)
}
