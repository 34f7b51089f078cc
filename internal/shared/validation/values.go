package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/google/uuid"
)

// Values holds the normalized output of Schema.Validate. Absent optional
// fields have no key at all.
type Values map[string]interface{}

func (v Values) Has(field string) bool {
	_, ok := v[field]
	return ok
}

func (v Values) String(field string) string {
	s, _ := v[field].(string)
	return s
}

// StringPtr returns nil when field is absent.
func (v Values) StringPtr(field string) *string {
	s, ok := v[field].(string)
	if !ok {
		return nil
	}
	return &s
}

func (v Values) IntPtr(field string) *int {
	n, ok := v[field].(int)
	if !ok {
		return nil
	}
	return &n
}

func (v Values) Bool(field string) bool {
	b, _ := v[field].(bool)
	return b
}

func (v Values) BoolPtr(field string) *bool {
	b, ok := v[field].(bool)
	if !ok {
		return nil
	}
	return &b
}

// Strings returns nil when field is absent.
func (v Values) Strings(field string) []string {
	list, _ := v[field].([]string)
	return list
}

func (v Values) Object(field string) map[string]interface{} {
	m, _ := v[field].(map[string]interface{})
	return m
}

func (v Values) UUID(field string) uuid.UUID {
	id, _ := v[field].(uuid.UUID)
	return id
}

func (v Values) UUIDPtr(field string) *uuid.UUID {
	id, ok := v[field].(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// MaxPayloadBytes caps a JSON request body.
const MaxPayloadBytes = 1 << 20

// DecodePayload reads a JSON object keeping numbers as json.Number so that
// integers survive untouched. An empty body decodes to an empty payload.
func DecodePayload(r io.Reader) (map[string]interface{}, Errors) {
	body, err := io.ReadAll(io.LimitReader(r, MaxPayloadBytes+1))
	if err != nil {
		return nil, Field("body", "could not be read")
	}
	if len(body) > MaxPayloadBytes {
		return nil, Field("body", "must not exceed 1MB")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]interface{}{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, Field("body", "must be valid JSON")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, Field("body", "must contain a single JSON value")
	}

	obj, ok := payload.(map[string]interface{})
	if !ok {
		return nil, Field("body", "must be a JSON object")
	}
	return obj, nil
}

// ParseID checks a path identifier.
func ParseID(raw string) (uuid.UUID, Errors) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, Field("id", "must be a valid UUID")
	}
	return id, nil
}
