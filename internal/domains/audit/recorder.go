package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Store persists and lists audit entries. It never updates or deletes.
type Store interface {
	Insert(ctx context.Context, entry *Entry) error
	ListRecent(ctx context.Context, filter ListFilter) ([]Entry, error)
}

const recordTimeout = 5 * time.Second

// Recorder writes audit entries on a best-effort basis.
//
// Invariant: audit failures are observable only via logs. Record makes a
// single insert attempt, never returns an error and never panics outward,
// so it can not roll back or block the mutation it describes.
type Recorder struct {
	store Store
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record persists entry. It is awaited by the caller but its outcome is
// swallowed here. The write is detached from request cancellation so a
// client hanging up does not drop the record.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	defer func() {
		if p := recover(); p != nil {
			logFailure(entry, fmt.Errorf("panic: %v", p))
		}
	}()

	if r == nil || r.store == nil {
		logFailure(entry, fmt.Errorf("audit store not configured"))
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := r.store.Insert(writeCtx, &entry); err != nil {
		logFailure(entry, err)
	}
}

// ListRecent returns the newest entries first.
func (r *Recorder) ListRecent(ctx context.Context, filter ListFilter) ([]Entry, error) {
	return r.store.ListRecent(ctx, filter.Normalize())
}

func logFailure(entry Entry, err error) {
	log.Error().
		Err(err).
		Str("entity", entry.Entity).
		Str("entity_id", entry.EntityID).
		Str("action", string(entry.Action)).
		Str("by_user", entry.ByUser.String()).
		Msg("audit record failed")
}
