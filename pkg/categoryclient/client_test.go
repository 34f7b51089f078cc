package categoryclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const okBody = `{"success":true,"data":[{"id":"6f1c","name":"Landscapes","slug":"landscapes","created_at":"2024-01-01T00:00:00Z"}]}`

type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) observe(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s.State)
}

func (r *recorder) seen() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

func TestNetworkErrorThenRefetchSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categories/photo", r.URL.Path)
		if atomic.AddInt32(&calls, 1) == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			if assert.NoError(t, err) {
				_ = conn.Close()
			}
			return
		}
		_, _ = w.Write([]byte(okBody))
	}))
	defer srv.Close()

	hook := New(srv.URL+"/api", srv.Client()).Hook("photo")
	rec := &recorder{}
	hook.OnChange(rec.observe)
	assert.Equal(t, StateIdle, hook.Snapshot().State)

	snap := hook.Fetch(context.Background())
	assert.Equal(t, StateError, snap.State)
	assert.NotEmpty(t, snap.Error)

	snap = hook.Refetch(context.Background())
	assert.Equal(t, StateSuccess, snap.State)
	require.Len(t, snap.Categories, 1)
	assert.Equal(t, "landscapes", snap.Categories[0].Slug)

	assert.Equal(t, []State{StateLoading, StateError, StateLoading, StateSuccess}, rec.seen())
}

func TestServerMessagePreferred(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"success false with message", http.StatusOK, `{"success":false,"error":"Server error","message":"db offline"}`, "db offline"},
		{"not found envelope", http.StatusNotFound, `{"success":false,"error":"Not found","message":"Unknown category variant"}`, "Unknown category variant"},
		{"non json", http.StatusBadGateway, `<html>bad gateway</html>`, GenericError},
		{"label only", http.StatusInternalServerError, `{"success":false,"error":"Server error"}`, "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			snap := New(srv.URL, srv.Client()).Hook("video").Fetch(context.Background())
			assert.Equal(t, StateError, snap.State)
			assert.Equal(t, tt.want, snap.Error)
		})
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	var calls int32
	firstArrived := make(chan struct{})
	releaseFirst := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(firstArrived)
			<-releaseFirst
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"old","name":"Old","slug":"old"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"new","name":"New","slug":"new"}]}`))
	}))
	defer srv.Close()

	hook := New(srv.URL, srv.Client()).Hook("publication")

	done := make(chan Snapshot)
	go func() { done <- hook.Fetch(context.Background()) }()
	<-firstArrived

	latest := hook.Refetch(context.Background())
	require.Equal(t, StateSuccess, latest.State)
	assert.Equal(t, "new", latest.Categories[0].ID)

	close(releaseFirst)
	stale := <-done
	assert.Equal(t, "new", stale.Categories[0].ID, fmt.Sprintf("stale fetch returned %+v", stale))
	assert.Equal(t, "new", hook.Snapshot().Categories[0].ID)
}

func TestUnsubscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer srv.Close()

	hook := New(srv.URL, srv.Client()).Hook("photo")
	rec := &recorder{}
	unsubscribe := hook.OnChange(rec.observe)
	unsubscribe()

	snap := hook.Fetch(context.Background())
	assert.Equal(t, StateSuccess, snap.State)
	assert.Empty(t, snap.Categories)
	assert.Empty(t, rec.seen())
}
