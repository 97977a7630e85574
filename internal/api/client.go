package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wardenlabs/warden/internal/lifecycle"
)

// Error is a non-2xx response from the daemon.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("daemon returned %d: %s", e.StatusCode, e.Message)
}

// IsConflict reports whether the daemon rejected the request because of a
// lifecycle guard.
func (e *Error) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// Client talks to a running warden daemon.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a Client for the daemon listening at addr (host:port).
func NewClient(addr string) *Client {
	return &Client{
		baseURL: "http://" + addr,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Status fetches the daemon's lifecycle snapshot.
func (c *Client) Status(ctx context.Context) (lifecycle.Status, error) {
	var st lifecycle.Status
	err := c.do(ctx, http.MethodGet, "/v1/status", nil, &st)
	return st, err
}

// CreateServer asks the daemon to boot the server. The daemon answers as
// soon as the droplet is requested; use Status to watch the boot progress.
func (c *Client) CreateServer(ctx context.Context) (lifecycle.Status, error) {
	var st lifecycle.Status
	err := c.do(ctx, http.MethodPost, "/v1/server", nil, &st)
	return st, err
}

// StopServer asks the daemon to tear the server down.
func (c *Client) StopServer(ctx context.Context) (lifecycle.Status, error) {
	var st lifecycle.Status
	err := c.do(ctx, http.MethodDelete, "/v1/server", nil, &st)
	return st, err
}

// ForceState overrides the daemon's lifecycle state.
func (c *Client) ForceState(ctx context.Context, s lifecycle.State) (lifecycle.Status, error) {
	body := map[string]string{"state": string(s)}
	var st lifecycle.Status
	err := c.do(ctx, http.MethodPut, "/v1/state", body, &st)
	return st, err
}

// Healthy reports whether the daemon is reachable.
func (c *Client) Healthy(ctx context.Context) bool {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil) == nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("contact daemon: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // body close errors are not actionable

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &Error{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
