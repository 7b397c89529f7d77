// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

/*
Package apperr defines the centralized error handling framework for the
Petsearch client.

It provides a rich error type that bridges the gap between raw HTTP failures
and the messages the interface layer shows to people.

Architecture:

  - APIError: A struct carrying the failure Kind, a display-ready message,
    and the per-field validation errors returned by the backend.
  - Normalization: The backend answers in several shapes (a flat field map,
    a {"detail": ...} object, or a bare string). Normalize folds all of them
    into one canonical APIError.
  - Classification: Helpers report whether a failure is recoverable through
    a token refresh (authentication) or terminal for the operation (network).

Every error that leaves the transport layer should be an [*APIError] so
callers never have to inspect HTTP internals.
*/
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies a client-side failure for handling decisions.
type Kind string

const (
	// KindValidation marks structured field errors from a 4xx response body.
	KindValidation Kind = "VALIDATION"

	// KindAuth marks 401/403 responses that may be recovered by a token refresh.
	KindAuth Kind = "AUTH"

	// KindNetwork marks transport failures where no response was received.
	KindNetwork Kind = "NETWORK"

	// KindServer marks 5xx responses and everything else unexpected.
	KindServer Kind = "SERVER"
)

// APIError is the canonical error type for every backend interaction.
//
// # Display Contract
//
// Message is always non-empty and safe to show directly. Fields, when
// present, carry the backend's per-field messages verbatim so forms can
// bind them next to their inputs.
type APIError struct {
	// Kind classifies the failure for handling decisions.
	Kind Kind
	// HTTPStatus is the response status code, or 0 for network failures.
	HTTPStatus int
	// Message is the single normalized, human-readable description.
	Message string
	// Fields holds per-field validation messages keyed by field name.
	Fields map[string][]string
	// Cause is the underlying error, kept for diagnostics only.
	Cause error
}

// Error implements the error interface. It returns the display message.
func (e *APIError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *APIError) Unwrap() error { return e.Cause }

// IsAuth reports whether the failure is a 401/403 authentication rejection.
func (e *APIError) IsAuth() bool { return e.Kind == KindAuth }

// IsNetwork reports whether the request never produced a response.
func (e *APIError) IsNetwork() bool { return e.Kind == KindNetwork }

// FirstField returns one "field: message" line for compact display,
// or the empty string when no field errors are present.
func (e *APIError) FirstField() string {
	if len(e.Fields) == 0 {
		return ""
	}

	// Deterministic pick: the alphabetically first failing field.
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	first := keys[0]
	if len(e.Fields[first]) == 0 {
		return first
	}
	return first + ": " + e.Fields[first][0]
}

// # Constructors

// Network wraps a transport failure where no HTTP response was received.
func Network(cause error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: "A network error occurred. Check your connection and try again.",
		Cause:   cause,
	}
}

// Auth creates an authentication failure for a 401/403 response.
func Auth(status int, message string) *APIError {
	if message == "" {
		message = "Authentication failed"
	}
	return &APIError{
		Kind:       KindAuth,
		HTTPStatus: status,
		Message:    message,
	}
}

// Normalize converts a backend error response into an [*APIError].
//
// # Supported Body Shapes
//
//  1. Flat field map: {"email": ["Enter a valid email address."], ...}
//  2. Detail object:  {"detail": "No active account found"}
//  3. Bare string:    "Service unavailable"
//
// # Parameters
//   - status: The HTTP response status code.
//   - body: The raw response body (may be empty or non-JSON).
//   - fallback: Message used when no shape yields a usable string.
//
// # Returns
//   - A non-nil [*APIError] whose Message is always non-empty.
func Normalize(status int, body []byte, fallback string) *APIError {
	apiError := &APIError{
		Kind:       kindForStatus(status),
		HTTPStatus: status,
		Message:    fallback,
	}

	if apiError.Message == "" {
		apiError.Message = http.StatusText(status)
	}

	if len(body) == 0 {
		return apiError
	}

	// ── 1. Bare String ────────────────────────────────────────────────────
	var plain string
	if err := json.Unmarshal(body, &plain); err == nil && strings.TrimSpace(plain) != "" {
		apiError.Message = plain
		return apiError
	}

	// ── 2. Detail Object ──────────────────────────────────────────────────
	var object map[string]json.RawMessage
	if err := json.Unmarshal(body, &object); err != nil || len(object) == 0 {
		return apiError
	}

	// The "detail" key takes priority: it is the single-message shape.
	if raw, ok := object["detail"]; ok {
		var detail string
		if err := json.Unmarshal(raw, &detail); err == nil && detail != "" {
			apiError.Message = detail
			return apiError
		}
	}

	// ── 3. Flat Field Map ─────────────────────────────────────────────────
	fields := make(map[string][]string, len(object))
	for field, raw := range object {
		var messages []string
		if err := json.Unmarshal(raw, &messages); err == nil && len(messages) > 0 {
			fields[field] = messages
			continue
		}

		// Some serializers emit a single string instead of a list.
		var single string
		if err := json.Unmarshal(raw, &single); err == nil && single != "" {
			fields[field] = []string{single}
		}
	}

	if len(fields) > 0 {
		apiError.Kind = KindValidation
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			apiError.Kind = KindAuth
		}
		apiError.Fields = fields
		apiError.Message = summarize(fields, apiError.Message)
	}

	return apiError
}

// # Helpers

// IsAPIError reports whether err (or any error in its chain) is an [*APIError].
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// As extracts the [*APIError] from err's chain. It returns nil if not found.
func As(err error) *APIError {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// kindForStatus maps an HTTP status code to a failure [Kind].
func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

// summarize produces the canonical one-line message from a field map.
//
// The alphabetically first failing field is reported, matching the
// deterministic display the interface relies on.
func summarize(fields map[string][]string, fallback string) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if len(fields[key]) > 0 {
			return fmt.Sprintf("%s: %s", key, fields[key][0])
		}
	}
	return fallback
}
