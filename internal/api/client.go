// Package api provides the authenticated REST client for the marketplace
// backend. Responses arrive wrapped in a {"data": ...} envelope; a 401 from
// any endpoint tears down the stored session before surfacing the error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"careport/internal/log"
	"careport/internal/session"
)

const defaultTimeout = 10 * time.Second

// Client talks to the marketplace backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *session.TokenStore
}

// Config holds client construction options.
type Config struct {
	// BaseURL is the backend root, e.g. "http://localhost:8000/api".
	BaseURL string
	// Timeout bounds each request. Zero means the default (10s).
	Timeout time.Duration
	// Tokens supplies the persisted bearer token (required).
	Tokens *session.TokenStore
}

// NewClient creates a client for the given backend.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("api: token store is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  cfg.Tokens,
	}, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the standard response wrapper. Endpoints that return bare
// payloads are tolerated: the body is decoded directly when no data key
// is present.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// Get issues a GET request and decodes the enveloped response into out.
// A nil out discards the body. Query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqID := uuid.NewString()[:8]
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Load(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Debug(log.CatAPI, "Request", "id", reqID, "method", method, "url", target)

	resp, err := c.http.Do(req)
	if err != nil {
		log.ErrorErr(log.CatAPI, "Request failed", err, "id", reqID, "method", method, "url", target)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	log.Debug(log.CatAPI, "Response", "id", reqID, "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode == http.StatusUnauthorized {
		// Global session teardown: the token is gone before callers see
		// the error, so no individual caller needs 401 handling.
		if clearErr := c.tokens.Clear(); clearErr != nil {
			log.ErrorErr(log.CatSession, "Failed to clear token after 401", clearErr)
		}
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			if vErr := decodeValidationError(resp.StatusCode, data); vErr != nil {
				return vErr
			}
		}
		return &StatusError{Status: resp.StatusCode, URL: target}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return decodeEnveloped(data, out)
}

// decodeEnveloped unwraps {"data": ...} when present, otherwise decodes the
// body directly into out.
func decodeEnveloped(data []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
