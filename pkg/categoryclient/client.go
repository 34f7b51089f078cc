// Package categoryclient fetches category lists from the admin API and keeps
// per-variant fetch state for dashboards.
package categoryclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// GenericError is shown when the server gives no usable message.
const GenericError = "Failed to load categories"

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is the observable state of a Hook.
type Snapshot struct {
	State      State
	Categories []Category
	Error      string
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// Client talks to the categories read endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API rooted at baseURL (e.g. https://host/api).
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Hook returns a fresh idle state machine for variant.
func (c *Client) Hook(variant string) *Hook {
	return &Hook{client: c, variant: variant, snap: Snapshot{State: StateIdle}}
}

// List performs one GET /categories/{variant}. The returned error text is
// suitable for display.
func (c *Client) List(ctx context.Context, variant string) ([]Category, error) {
	endpoint := fmt.Sprintf("%s/categories/%s", c.baseURL, url.PathEscape(variant))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", GenericError, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", GenericError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", GenericError, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)
	if resp.StatusCode < 200 || resp.StatusCode > 299 || decodeErr != nil || !env.Success {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: serverMessage(env)}
	}

	categories := []Category{}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &categories); err != nil {
			return nil, &ServerError{StatusCode: resp.StatusCode, Message: GenericError}
		}
	}
	return categories, nil
}

// ServerError is a non-OK or success:false reply.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

func serverMessage(env envelope) string {
	if m := strings.TrimSpace(env.Message); m != "" {
		return m
	}
	if m := strings.TrimSpace(env.Error); m != "" {
		return m
	}
	return GenericError
}

// ========== HOOK ==========

// Hook is the idle/loading/success/error state machine for one variant.
// It is safe for concurrent use. Each fetch takes a generation number and
// a response that settles after a newer fetch has started is dropped.
type Hook struct {
	client  *Client
	variant string

	mu        sync.Mutex
	gen       uint64
	snap      Snapshot
	observers map[int]func(Snapshot)
	nextObs   int
}

func (h *Hook) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snap
}

// OnChange registers fn for every state transition and returns a function
// that removes it. fn is called outside the hook's lock.
func (h *Hook) OnChange(fn func(Snapshot)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.observers == nil {
		h.observers = make(map[int]func(Snapshot))
	}
	id := h.nextObs
	h.nextObs++
	h.observers[id] = fn

	return func() {
		h.mu.Lock()
		delete(h.observers, id)
		h.mu.Unlock()
	}
}

// Fetch moves to loading, requests the list and settles in success or error.
// It returns the hook's state after the call, which belongs to a newer
// fetch if this one was superseded.
func (h *Hook) Fetch(ctx context.Context) Snapshot {
	h.mu.Lock()
	h.gen++
	gen := h.gen
	h.snap = Snapshot{State: StateLoading, Categories: h.snap.Categories}
	h.notifyLocked()

	categories, err := h.client.List(ctx, h.variant)

	h.mu.Lock()
	if gen != h.gen {
		snap := h.snap
		h.mu.Unlock()
		return snap
	}
	if err != nil {
		h.snap = Snapshot{State: StateError, Error: errorMessage(err)}
	} else {
		h.snap = Snapshot{State: StateSuccess, Categories: categories}
	}
	snap := h.snap
	h.notifyLocked()
	return snap
}

// Refetch re-enters the state machine from any state.
func (h *Hook) Refetch(ctx context.Context) Snapshot {
	return h.Fetch(ctx)
}

// notifyLocked releases h.mu and then calls every observer.
func (h *Hook) notifyLocked() {
	snap := h.snap
	fns := make([]func(Snapshot), 0, len(h.observers))
	for _, fn := range h.observers {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func errorMessage(err error) string {
	var se *ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericError
}
