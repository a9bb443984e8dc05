// Package remote is the app's HTTP client for the superlista API.
package remote

import (
	"bytes"
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

	"github.com/dukerupert/superlista/internal/model"
)

// UserIDHeader identifies the acting user on every request.
const UserIDHeader = "X-User-ID"

// Client talks to the API server. It satisfies shoplist.ItemStore,
// history.Backend and the session user directory.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.RWMutex
	identity func() string
}

// NewClient creates a client for the API at baseURL. A nil httpClient uses a
// client with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SetIdentity sets the function that supplies the acting user's id.
func (c *Client) SetIdentity(fn func() string) {
	c.mu.Lock()
	c.identity = fn
	c.mu.Unlock()
}

func (c *Client) userID() string {
	c.mu.RLock()
	fn := c.identity
	c.mu.RUnlock()
	if fn == nil {
		return ""
	}
	return fn()
}

type apiError struct {
	Error string `json:"error"`
	Field string `json:"field"`
}

// do sends a JSON request and decodes a JSON response into out when out is
// non-nil. 404 maps to model.ErrNotFound, 400 to *model.ValidationError and
// everything else that is not 2xx to *model.TransportError.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &model.TransportError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if id := c.userID(); id != "" {
		req.Header.Set(UserIDHeader, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &model.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, model.ErrNotFound)
	case resp.StatusCode == http.StatusBadRequest:
		var ae apiError
		if err := json.NewDecoder(resp.Body).Decode(&ae); err != nil || ae.Error == "" {
			return &model.ValidationError{Message: "invalid request"}
		}
		return &model.ValidationError{Field: ae.Field, Message: ae.Error}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var ae apiError
		json.NewDecoder(resp.Body).Decode(&ae)
		if ae.Error != "" {
			return &model.TransportError{Op: op, Err: fmt.Errorf("status %d: %s", resp.StatusCode, ae.Error)}
		}
		return &model.TransportError{Op: op, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &model.TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func itemPath(id string, suffix ...string) string {
	p := "/api/items/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// notFoundAsNil turns a not-found lookup into (nil, nil).
func notFoundAsNil[T any](v *T, err error) (*T, error) {
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Health reports whether the API answers its health check.
func (c *Client) Health(ctx context.Context) error {
	var out map[string]string
	return c.do(ctx, "health", http.MethodGet, "/health", nil, &out)
}
