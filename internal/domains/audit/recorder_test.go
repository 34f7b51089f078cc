package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeStub struct {
	inserted []Entry
	err      error
	panicMsg string
	filter   ListFilter
	ctxErr   error
}

func (s *storeStub) Insert(ctx context.Context, entry *Entry) error {
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	s.ctxErr = ctx.Err()
	if s.err != nil {
		return s.err
	}
	s.inserted = append(s.inserted, *entry)
	return nil
}

func (s *storeStub) ListRecent(_ context.Context, filter ListFilter) ([]Entry, error) {
	s.filter = filter
	return s.inserted, nil
}

func TestRecordInsertsEntry(t *testing.T) {
	store := &storeStub{}
	rec := NewRecorder(store)

	entry := Entry{Entity: "photo_category", EntityID: uuid.NewString(), Action: ActionCreate, ByUser: uuid.New(), After: map[string]string{"slug": "lectures"}}
	rec.Record(context.Background(), entry)

	require.Len(t, store.inserted, 1)
	assert.Equal(t, entry, store.inserted[0])
}

func TestRecordSwallowsFailures(t *testing.T) {
	assert.NotPanics(t, func() {
		NewRecorder(&storeStub{err: errors.New("insert failed")}).Record(context.Background(), Entry{Entity: "photo"})
	})
	assert.NotPanics(t, func() {
		NewRecorder(&storeStub{panicMsg: "boom"}).Record(context.Background(), Entry{Entity: "photo"})
	})
	assert.NotPanics(t, func() {
		var rec *Recorder
		rec.Record(context.Background(), Entry{Entity: "photo"})
	})
}

func TestRecordSurvivesCancelledRequest(t *testing.T) {
	store := &storeStub{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	NewRecorder(store).Record(ctx, Entry{Entity: "publication", Action: ActionDelete})

	assert.NoError(t, store.ctxErr)
	assert.Len(t, store.inserted, 1)
}

func TestListFilterNormalize(t *testing.T) {
	assert.Equal(t, DefaultListLimit, ListFilter{}.Normalize().Limit)
	assert.Equal(t, MaxListLimit, ListFilter{Limit: 1000}.Normalize().Limit)
	assert.Equal(t, 10, ListFilter{Limit: 10}.Normalize().Limit)

	store := &storeStub{}
	_, err := NewRecorder(store).ListRecent(context.Background(), ListFilter{Entity: "photo"})
	require.NoError(t, err)
	assert.Equal(t, ListFilter{Entity: "photo", Limit: DefaultListLimit}, store.filter)
}
