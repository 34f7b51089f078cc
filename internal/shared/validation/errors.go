package validation

import "strings"

// FieldError is one rejected field: the path inside the payload and a
// human readable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the structured failure of a schema. A nil or empty Errors means
// the payload was accepted.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Has reports whether field was rejected.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Field builds a single-entry Errors.
func Field(field, message string) Errors {
	return Errors{{Field: field, Message: message}}
}
