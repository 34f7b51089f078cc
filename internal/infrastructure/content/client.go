package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"media-admin-backend/internal/config"
)

// ErrNotConfigured is returned when no project id or base URL is set.
var ErrNotConfigured = errors.New("content service is not configured")

// RequestError describes a failed call to the content service.
type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: status=%d", e.Op, e.StatusCode)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Client runs read-only GROQ queries against the headless content store.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

func NewClient(cfg config.ContentConfig, timeout time.Duration) *Client {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if endpoint == "" && cfg.ProjectID != "" {
		endpoint = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	}
	if endpoint != "" {
		endpoint = fmt.Sprintf("%s/v%s/data/query/%s", endpoint, strings.TrimPrefix(cfg.APIVersion, "v"), cfg.Dataset)
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}

	return &Client{
		endpoint:   endpoint,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

// Query runs query with params bound as $name and decodes the result into
// dest. A null result leaves dest untouched and returns found=false.
func (c *Client) Query(ctx context.Context, query string, params map[string]interface{}, dest interface{}) (bool, error) {
	if c.endpoint == "" {
		return false, ErrNotConfigured
	}

	values := url.Values{}
	values.Set("query", query)
	for name, value := range params {
		encoded, err := json.Marshal(value)
		if err != nil {
			return false, &RequestError{Op: "encode param " + name, Err: err}
		}
		values.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return false, &RequestError{Op: "build content request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, &RequestError{Op: "query content", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return false, &RequestError{Op: "read content response", StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, &RequestError{Op: "query content", StatusCode: resp.StatusCode}
	}

	var decoded queryResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return false, &RequestError{Op: "decode content response", StatusCode: resp.StatusCode, Err: err}
	}
	if len(decoded.Result) == 0 || string(decoded.Result) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(decoded.Result, dest); err != nil {
		return false, &RequestError{Op: "decode content result", StatusCode: resp.StatusCode, Err: err}
	}
	return true, nil
}
