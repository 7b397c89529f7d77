// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

/*
Package transport provides the shared HTTP client for every backend call.

It is the single outbound gateway of the module: all API packages (session,
ads, articles, profile, admin) send their requests through one [*Client] so
the Authorization header, request correlation IDs, throttling, and error
normalization behave identically everywhere.

Architecture:

  - Default Header: Once a session is established, the access token is
    attached as 'Authorization: Bearer <token>' to every outgoing request.
    Only the session store mutates this header.
  - Correlation: Every request carries a fresh X-Request-ID so client logs
    can be matched against backend logs.
  - Throttling: A token-bucket limiter caps the outbound request rate.
  - Errors: Non-2xx responses are normalized into [apperr.APIError] values;
    transport failures are wrapped as network errors.
*/
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/okunevich/petsearch/internal/platform/apperr"
	"github.com/okunevich/petsearch/internal/platform/constants"
)

// Client is the shared backend HTTP client.
//
// # Concurrency
//
// Client is safe for concurrent use. The bearer header is guarded by a
// read/write mutex; everything else is immutable after construction.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger

	mu         sync.RWMutex
	authHeader string
}

// Options tunes a [*Client]. Zero values select sensible defaults.
type Options struct {
	// Timeout bounds a single request. Defaults to [constants.DefaultHTTPTimeout].
	Timeout time.Duration
	// Rate is the sustained outbound requests per second. Defaults to 10.
	Rate float64
	// Burst is the token-bucket burst capacity. Defaults to 20.
	Burst int
	// HTTPClient overrides the underlying client (tests). Timeout is ignored
	// when this is set.
	HTTPClient *http.Client
}

// NewClient constructs a [*Client] for the given API base URL.
//
// # Parameters
//   - baseURL: Backend origin without a trailing slash.
//   - logger: Structured logger for request diagnostics.
//   - options: Optional tuning; pass the zero value for defaults.
func NewClient(baseURL string, logger *slog.Logger, options Options) *Client {
	if options.Timeout <= 0 {
		options.Timeout = constants.DefaultHTTPTimeout
	}
	if options.Rate <= 0 {
		options.Rate = 10
	}
	if options.Burst <= 0 {
		options.Burst = 20
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.Timeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(options.Rate), options.Burst),
		logger:     logger,
	}
}

// # Default Authorization Header

// SetAuthToken installs the access token as the default bearer header.
//
// The session store is the sole caller: it owns the token lifecycle.
func (client *Client) SetAuthToken(accessToken string) {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.authHeader = constants.BearerPrefix + accessToken
}

// ClearAuthToken removes the default bearer header.
func (client *Client) ClearAuthToken() {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.authHeader = ""
}

// HasAuthToken reports whether a default bearer header is installed.
func (client *Client) HasAuthToken() bool {
	client.mu.RLock()
	defer client.mu.RUnlock()
	return client.authHeader != ""
}

// # Request Helpers

// GetJSON performs a GET request and decodes the JSON response into out.
func (client *Client) GetJSON(context context.Context, path string, out any) error {
	return client.do(context, http.MethodGet, path, nil, out)
}

// PostJSON performs a POST request with a JSON body and decodes the
// JSON response into out. Pass nil for out to discard the body.
func (client *Client) PostJSON(context context.Context, path string, body, out any) error {
	return client.do(context, http.MethodPost, path, body, out)
}

// PutJSON performs a PUT request with a JSON body.
func (client *Client) PutJSON(context context.Context, path string, body, out any) error {
	return client.do(context, http.MethodPut, path, body, out)
}

// Delete performs a DELETE request.
func (client *Client) Delete(context context.Context, path string) error {
	return client.do(context, http.MethodDelete, path, nil, nil)
}

// do executes one backend request end to end.
func (client *Client) do(context context.Context, method, path string, body, out any) error {

	// ── 1. Throttle ───────────────────────────────────────────────────────
	if err := client.limiter.Wait(context); err != nil {
		return apperr.Network(fmt.Errorf("transport_rate_limit_wait: %w", err))
	}

	// ── 2. Build Request ──────────────────────────────────────────────────
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("transport_encode_body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(context, method, client.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("transport_build_request: %w", err)
	}

	requestID := uuid.NewString()
	request.Header.Set(constants.HeaderRequestID, requestID)
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	client.mu.RLock()
	if client.authHeader != "" {
		request.Header.Set(constants.HeaderAuthorization, client.authHeader)
	}
	client.mu.RUnlock()

	// ── 3. Execute ────────────────────────────────────────────────────────
	started := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Warn("backend_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return apperr.Network(err)
	}
	defer func() { _ = response.Body.Close() }()

	client.logger.Debug("backend_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.String("request_id", requestID),
		slog.Duration("elapsed", time.Since(started)),
	)

	// ── 4. Decode ─────────────────────────────────────────────────────────
	payload, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return apperr.Network(fmt.Errorf("transport_read_body: %w", err))
	}

	if response.StatusCode >= 400 {
		return apperr.Normalize(response.StatusCode, payload, "")
	}

	if out == nil || response.StatusCode == http.StatusNoContent || len(payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("transport_decode_response: %w", err)
	}

	return nil
}

// maxBodyBytes caps response reads; the largest legitimate payload is a
// paginated advertisement page well under this bound.
const maxBodyBytes = 4 << 20
