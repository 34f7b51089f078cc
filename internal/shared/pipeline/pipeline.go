package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"media-admin-backend/internal/domains/audit"
	"media-admin-backend/internal/shared/authz"
	"media-admin-backend/internal/shared/response"
	"media-admin-backend/internal/shared/validation"
)

// Gatekeeper is the authorization gate as seen by the pipeline.
type Gatekeeper interface {
	RequireAdmin(ctx context.Context, creds authz.Credentials) (authz.Identity, error)
}

// Auditor records mutations; it never fails its caller.
type Auditor interface {
	Record(ctx context.Context, entry audit.Entry)
}

// Classifier maps a domain error to an envelope. ok is false for errors the
// domain does not recognize; those become server errors.
type Classifier func(err error) (env response.Envelope, ok bool)

// Change is what a store operation reports: the affected id and the row
// before and after the mutation.
type Change struct {
	EntityID string
	Before   interface{}
	After    interface{}
}

// Mutation describes one admin write.
type Mutation[T any] struct {
	Entity string
	Action audit.Action

	// ID is the path identifier. Every action except create requires a UUID.
	ID string

	// Decode yields the raw payload. Nil means the operation has no body.
	Decode func() (map[string]interface{}, validation.Errors)

	// Parse validates the raw payload into T. Nil for delete.
	Parse func(raw map[string]interface{}) (T, validation.Errors)

	// Apply runs the store operation.
	Apply func(ctx context.Context, actor authz.Identity, id uuid.UUID, value T) (Change, error)

	Classify Classifier
	Message  string
}

// Pipeline runs authenticate, authorize, validate, mutate, audit, respond.
type Pipeline struct {
	gate         Gatekeeper
	auditor      Auditor
	exposeErrors bool
}

// New builds a pipeline. exposeErrors puts internal error text in server
// error envelopes and must be false in production.
func New(gate Gatekeeper, auditor Auditor, exposeErrors bool) *Pipeline {
	return &Pipeline{gate: gate, auditor: auditor, exposeErrors: exposeErrors}
}

// JSONBody decodes r lazily, after authorization has passed.
func JSONBody(r io.Reader) func() (map[string]interface{}, validation.Errors) {
	return func() (map[string]interface{}, validation.Errors) {
		return validation.DecodePayload(r)
	}
}

// Execute runs m. It always returns an envelope; faults never escape.
func Execute[T any](ctx context.Context, p *Pipeline, creds authz.Credentials, m Mutation[T]) (env response.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic in %s %s: %v", m.Action, m.Entity, r)
			log.Error().Err(err).Msg("mutation panicked")
			env = response.ServerError(err, p.exposeErrors)
		}
	}()

	// ========== STEP 1: Authorize ==========
	actor, err := p.gate.RequireAdmin(ctx, creds)
	if err != nil {
		if authz.IsDenied(err) {
			return response.Unauthorized()
		}
		log.Error().Err(err).Str("entity", m.Entity).Msg("authorization lookup failed")
		return response.ServerError(err, p.exposeErrors)
	}

	// ========== STEP 2: Validate ==========
	var (
		id    uuid.UUID
		value T
		errs  validation.Errors
	)
	if m.Action != audit.ActionCreate {
		var idErrs validation.Errors
		id, idErrs = validation.ParseID(m.ID)
		errs = append(errs, idErrs...)
	}
	if m.Parse != nil {
		raw := map[string]interface{}{}
		if m.Decode != nil {
			var decodeErrs validation.Errors
			raw, decodeErrs = m.Decode()
			errs = append(errs, decodeErrs...)
		}
		if len(errs) == 0 {
			var parseErrs validation.Errors
			value, parseErrs = m.Parse(raw)
			errs = append(errs, parseErrs...)
		}
	}
	if len(errs) > 0 {
		return response.Validation(errs)
	}

	// ========== STEP 3: Mutate ==========
	change, err := m.Apply(ctx, actor, id, value)
	if err != nil {
		return p.Failure(err, m.Classify)
	}
	if change.EntityID == "" && id != uuid.Nil {
		change.EntityID = id.String()
	}

	// ========== STEP 4: Audit (best effort) ==========
	if p.auditor != nil {
		p.auditor.Record(ctx, audit.Entry{
			Entity:   m.Entity,
			EntityID: change.EntityID,
			Action:   m.Action,
			ByUser:   actor.UserID,
			Before:   change.Before,
			After:    change.After,
		})
	}

	log.Info().
		Str("entity", m.Entity).
		Str("entity_id", change.EntityID).
		Str("action", string(m.Action)).
		Str("by_user", actor.UserID.String()).
		Msg("admin mutation applied")

	// ========== STEP 5: Respond ==========
	return response.OK(change.After, m.Message)
}

// Failure converts a store or service error into an envelope: field errors
// become validation failures, classified domain errors keep their envelope,
// everything else is a logged server error.
func (p *Pipeline) Failure(err error, classify Classifier) response.Envelope {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return response.Validation(fieldErrs)
	}
	if classify != nil {
		if env, ok := classify(err); ok {
			return env
		}
	}
	log.Error().Err(err).Msg("request failed")
	return response.ServerError(err, p.exposeErrors)
}
