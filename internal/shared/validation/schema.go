package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Type is the JSON shape a field must have.
type Type int

const (
	TypeString Type = iota
	TypeInt
	TypeBool
	TypeStringList
	TypeObject
)

// Format adds a well-known string format check.
type Format int

const (
	FormatNone Format = iota
	FormatUUID
	FormatURL
)

// Rule is one row of a schema's constraint table.
type Rule struct {
	Field    string
	Type     Type
	Required bool

	// MinLen and MaxLen bound string length in runes. Zero means unbounded.
	MinLen int
	MaxLen int

	// Min and Max bound integers. Nil means unbounded. Functions so that
	// bounds such as "current year + 5" are evaluated per call.
	Min func() int
	Max func() int

	Pattern *regexp.Regexp
	Format  Format
	OneOf   []string

	// Untrimmed validates the string exactly as sent. By default surrounding
	// whitespace is stripped before any check.
	Untrimmed bool

	// BlankToAbsent treats an empty (after trimming) string as if the field
	// had been omitted.
	BlankToAbsent bool

	// Default is stored when the field is absent. Ignored by partial schemas.
	Default interface{}
}

// Bound returns a constant bound for Rule.Min / Rule.Max.
func Bound(n int) func() int {
	return func() int { return n }
}

// Schema is a declarative constraint table interpreted by Validate.
type Schema struct {
	Name  string
	Rules []Rule
}

func NewSchema(name string, rules ...Rule) Schema {
	return Schema{Name: name, Rules: rules}
}

// Partial returns the update variant: every field optional, no defaults,
// constraints unchanged for present fields.
func (s Schema) Partial() Schema {
	rules := make([]Rule, len(s.Rules))
	for i, r := range s.Rules {
		r.Required = false
		r.Default = nil
		rules[i] = r
	}
	return Schema{Name: s.Name + "_update", Rules: rules}
}

// Validate checks raw against the table and returns the normalized values.
// It never panics on malformed input and performs no I/O. Unknown fields
// are dropped.
func (s Schema) Validate(raw map[string]interface{}) (Values, Errors) {
	out := Values{}
	var errs Errors

	for _, rule := range s.Rules {
		value, present := raw[rule.Field]
		if present && value == nil {
			present = false
		}
		if present && rule.BlankToAbsent {
			if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
				present = false
			}
		}

		if !present {
			if rule.Required {
				errs = append(errs, FieldError{Field: rule.Field, Message: "is required"})
			} else if rule.Default != nil {
				out[rule.Field] = cloneDefault(rule.Default)
			}
			continue
		}

		normalized, msg := rule.check(value)
		if msg != "" {
			errs = append(errs, FieldError{Field: rule.Field, Message: msg})
			continue
		}
		out[rule.Field] = normalized
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// check coerces value to the rule's type and applies its constraints.
// A non-empty message means rejection.
func (r Rule) check(value interface{}) (interface{}, string) {
	switch r.Type {
	case TypeString:
		return r.checkString(value)
	case TypeInt:
		return r.checkInt(value)
	case TypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, "must be a boolean"
		}
		return b, ""
	case TypeStringList:
		return checkStringList(value)
	case TypeObject:
		m, ok := value.(map[string]interface{})
		if !ok {
			return nil, "must be an object"
		}
		return m, ""
	}
	return nil, "unsupported field type"
}

func (r Rule) checkString(value interface{}) (interface{}, string) {
	str, ok := value.(string)
	if !ok {
		return nil, "must be a string"
	}
	if !r.Untrimmed {
		str = strings.TrimSpace(str)
	}

	var rules []ozzo.Rule
	if r.MinLen > 0 || r.Pattern != nil || r.Format != FormatNone || len(r.OneOf) > 0 {
		rules = append(rules, ozzo.Required)
	}
	if r.MinLen > 0 || r.MaxLen > 0 {
		rules = append(rules, ozzo.RuneLength(r.MinLen, r.MaxLen))
	}
	if r.Pattern != nil {
		rules = append(rules, ozzo.Match(r.Pattern))
	}
	if len(r.OneOf) > 0 {
		allowed := make([]interface{}, len(r.OneOf))
		for i, v := range r.OneOf {
			allowed[i] = v
		}
		rules = append(rules, ozzo.In(allowed...).Error("must be one of "+strings.Join(r.OneOf, ", ")))
	}
	switch r.Format {
	case FormatUUID:
		rules = append(rules, is.UUID.Error("must be a valid UUID"))
	case FormatURL:
		rules = append(rules, is.URL.Error("must be a valid URL"), ozzo.By(absoluteURL))
	}

	if err := ozzo.Validate(str, rules...); err != nil {
		return nil, err.Error()
	}

	if r.Format == FormatUUID {
		id, err := uuid.Parse(str)
		if err != nil {
			return nil, "must be a valid UUID"
		}
		return id, ""
	}
	return str, ""
}

func (r Rule) checkInt(value interface{}) (interface{}, string) {
	n, ok := toInt(value)
	if !ok {
		return nil, "must be an integer"
	}

	var rules []ozzo.Rule
	if r.Min != nil || r.Max != nil {
		rules = append(rules, intRange{min: r.Min, max: r.Max})
	}
	if err := ozzo.Validate(n, rules...); err != nil {
		return nil, err.Error()
	}
	return n, ""
}

// checkStringList trims every entry and drops the blank ones.
func checkStringList(value interface{}) (interface{}, string) {
	out := []string{}
	switch list := value.(type) {
	case []string:
		for _, s := range list {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, "must be a list of strings"
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	default:
		return nil, "must be a list of strings"
	}
	return out, ""
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || v > math.MaxInt32 || v < math.MinInt32 {
			return 0, false
		}
		return int(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return toInt(f)
	}
	return 0, false
}

func absoluteURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ozzo.NewError("validation_is_url", "must be a valid URL")
	}
	return nil
}

// intRange is an ozzo rule that, unlike ozzo.Min/Max, also checks zero values.
type intRange struct {
	min func() int
	max func() int
}

func (r intRange) Validate(value interface{}) error {
	n, _ := value.(int)
	if r.min != nil {
		if min := r.min(); n < min {
			return ozzo.NewError("validation_min_greater_equal_than_required", fmt.Sprintf("must be no less than %d", min))
		}
	}
	if r.max != nil {
		if max := r.max(); n > max {
			return ozzo.NewError("validation_max_less_equal_than_required", fmt.Sprintf("must be no greater than %d", max))
		}
	}
	return nil
}

func cloneDefault(v interface{}) interface{} {
	if list, ok := v.([]string); ok {
		return append([]string{}, list...)
	}
	return v
}
