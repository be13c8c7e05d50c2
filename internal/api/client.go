// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

// Package api is the remote data gateway: the only component allowed to
// perform network I/O against the inventory backend. It translates UI
// intents into HTTP requests and parses JSON responses into the typed
// entities in internal/model. No business rules live here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/n3t-labs/n3t-tui/internal/logger"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the local development backend address.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds every request. The backend contract has no
	// retry semantics, so a hung call must fail rather than park a screen
	// in its loading state forever.
	DefaultTimeout = 15 * time.Second

	// MaxResponseSize caps response body reads.
	// SECURITY: bounded reads prevent memory exhaustion on a bad backend.
	MaxResponseSize = 4 * 1024 * 1024 // 4MB
)

// sharedHTTPClient pools connections across all gateway calls.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// ERRORS
// =============================================================================

// RemoteError is the single error kind for every gateway failure: a non-2xx
// status or a transport failure. Message resolution order is the backend's
// "detail" field, then "message", then the resource-specific default; an
// unparseable error body is tolerated and the default is used.
type RemoteError struct {
	Resource string // resource the call was for, e.g. "items"
	Status   int    // HTTP status, 0 for transport failures
	Message  string // resolved human-readable message
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return e.Message
}

// Is implements errors.Is support: two RemoteErrors match on resource.
func (e *RemoteError) Is(target error) bool {
	t, ok := target.(*RemoteError)
	if !ok {
		return false
	}
	return t.Resource == "" || t.Resource == e.Resource
}

// errorBody is the optional shape of a backend error payload. Both fields
// may be absent; the body may not even be JSON.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// resolveErrorMessage applies the resolution order to a raw error body.
func resolveErrorMessage(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		// Unparseable body: swallow the parse failure, use the default.
		return fallback
	}
	if eb.Detail != "" {
		return eb.Detail
	}
	if eb.Message != "" {
		return eb.Message
	}
	return fallback
}

// =============================================================================
// OBSERVER
// =============================================================================

// Observer receives the outcome of every gateway call. Used by the local
// activity log; a nil observer disables recording.
type Observer interface {
	Observe(resource string, ok bool, duration time.Duration)
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is the typed HTTP client for the inventory backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
	token      string
}

// NewClient creates a gateway client for the given base URL. An empty URL
// falls back to the local development default.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
	}
}

// WithTimeout sets the request timeout. Returns the client for chaining.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	// Copy the shared client rather than mutating it for everyone.
	hc := *c.httpClient
	hc.Timeout = timeout
	c.httpClient = &hc
	return c
}

// WithObserver attaches an outcome observer (the activity log).
func (c *Client) WithObserver(obs Observer) *Client {
	c.observer = obs
	return c
}

// SetToken stores the bearer token returned by login/register. An empty
// token clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do performs one HTTP round trip and decodes the JSON response into out
// (out may be nil for empty-body operations). Every failure path returns a
// *RemoteError; there are no retries and no caching.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, resource, fallback string) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Resource: resource, Message: fallback}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &RemoteError{Resource: resource, Message: fallback}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.record(resource, false, duration)
		logger.L().Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &RemoteError{Resource: resource, Message: fallback}
	}
	defer resp.Body.Close()

	respBody, err := readBounded(resp.Body)
	if err != nil {
		c.record(resource, false, duration)
		return &RemoteError{Resource: resource, Status: resp.StatusCode, Message: fallback}
	}

	logger.L().Debug("request complete",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.record(resource, false, duration)
		return &RemoteError{
			Resource: resource,
			Status:   resp.StatusCode,
			Message:  resolveErrorMessage(respBody, fallback),
		}
	}

	c.record(resource, true, duration)

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &RemoteError{Resource: resource, Status: resp.StatusCode, Message: fallback}
	}
	return nil
}

// readBounded reads a response body with a hard size limit.
func readBounded(r io.Reader) ([]byte, error) {
	limited := io.LimitReader(r, MaxResponseSize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", int64(MaxResponseSize))
	}
	return body, nil
}

func (c *Client) record(resource string, ok bool, d time.Duration) {
	if c.observer != nil {
		c.observer.Observe(resource, ok, d)
	}
}
