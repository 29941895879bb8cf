// Package api implements the single chokepoint for all CloudFlix API
// traffic: bearer-token injection, content negotiation, and the 401
// invalidation side effect.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/cloudflix/flixctl/internal/session"
	"github.com/cloudflix/flixctl/internal/shared"
)

// HTTPError is a response received with a non-2xx status. The body is
// forwarded as-is for the caller to interpret.
type HTTPError struct {
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.Status)
}

// Message extracts the server's {message} field when the body carries one,
// falling back to the raw body text.
func (e *HTTPError) Message() string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(e.Body)
}

// Response is a successful (2xx) API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Client issues requests against the CloudFlix API. Every outgoing request
// re-reads the credential store, so a session cleared anywhere in the
// process immediately stops bearer injection here.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          session.Store
	logger         *log.Logger
	onUnauthorized func()
}

// NewClient creates a pipeline client. An empty baseURL falls back to the
// local-development default; a nil http.Client uses http.DefaultClient.
func NewClient(baseURL string, client *http.Client, store session.Store, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = shared.DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
		store:      store,
		logger:     logger,
	}
}

// BaseURL returns the configured base address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnUnauthorized registers a hook invoked after a 401 response has cleared
// the credential store. The session context uses it to drop in-memory state.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Get performs a GET request to the specified path.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, "")
}

// GetQuery performs a GET request with query parameters.
func (c *Client) GetQuery(ctx context.Context, path string, params url.Values) (*Response, error) {
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, "")
}

// Post performs a POST request with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	data, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, path, data, "application/json")
}

// Put performs a PUT request with a JSON-encoded body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	data, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, path, data, "application/json")
}

// Patch performs a PATCH request with an optional JSON-encoded body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	data, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPatch, path, data, "application/json")
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, "")
}

// PostMultipart performs a POST with a prepared multipart body. The
// writer's content type (with its boundary) is sent as-is; JSON is never
// forced onto binary payloads.
func (c *Client) PostMultipart(ctx context.Context, path, contentType string, body io.Reader) (*Response, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, data, contentType)
}

func encodeBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return data, nil
}

// do dispatches one request through the pipeline.
func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string) (*Response, error) {
	fullURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-Id", shared.GenerateID())

	// The store is consulted per request rather than caching the token:
	// a logout elsewhere must take effect on the very next call.
	if current, err := c.store.Load(); err == nil && current != nil {
		req.Header.Set("Authorization", "Bearer "+current.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("401 from API, clearing stored session", "method", method, "path", path)
		if clearErr := c.store.Clear(); clearErr != nil {
			c.logger.Error("failed to clear session store", "err", clearErr)
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, &HTTPError{Status: resp.StatusCode, Body: respBody}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: respBody}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}, nil
}
