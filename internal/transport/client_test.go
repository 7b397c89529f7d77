// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package transport_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okunevich/petsearch/internal/platform/apperr"
	"github.com/okunevich/petsearch/internal/transport"
)

func newTestClient(t *testing.T, handler http.Handler) *transport.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return transport.NewClient(server.URL, slog.Default(), transport.Options{})
}

/*
TestClient_AttachesHeaders verifies the bearer and correlation headers.
*/
func TestClient_AttachesHeaders(t *testing.T) {
	var gotAuth, gotRequestID string

	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotAuth = request.Header.Get("Authorization")
		gotRequestID = request.Header.Get("X-Request-ID")
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"ok": true}`))
	}))

	// 1. Anonymous request: no Authorization header.
	var out map[string]bool
	require.NoError(t, client.GetJSON(context.Background(), "/ping", &out))
	assert.Empty(t, gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.True(t, out["ok"])

	// 2. Authenticated request: bearer header installed process-wide.
	client.SetAuthToken("token-123")
	require.NoError(t, client.GetJSON(context.Background(), "/ping", &out))
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.True(t, client.HasAuthToken())

	// 3. Cleared again.
	client.ClearAuthToken()
	require.NoError(t, client.GetJSON(context.Background(), "/ping", &out))
	assert.Empty(t, gotAuth)
	assert.False(t, client.HasAuthToken())
}

/*
TestClient_NormalizesErrors verifies that non-2xx responses surface as
APIError values with the backend's message.
*/
func TestClient_NormalizesErrors(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"detail": "Token is invalid or expired"}`))
	}))

	err := client.GetJSON(context.Background(), "/auth/users/me/", nil)
	require.Error(t, err)

	apiError := apperr.As(err)
	require.NotNil(t, apiError)
	assert.True(t, apiError.IsAuth())
	assert.Equal(t, http.StatusUnauthorized, apiError.HTTPStatus)
	assert.Equal(t, "Token is invalid or expired", apiError.Message)
}

/*
TestClient_NetworkFailure verifies transport failures wrap as network errors.
*/
func TestClient_NetworkFailure(t *testing.T) {
	// Closed server: connection refused.
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := transport.NewClient(server.URL, slog.Default(), transport.Options{})
	err := client.GetJSON(context.Background(), "/ping", nil)

	apiError := apperr.As(err)
	require.NotNil(t, apiError)
	assert.True(t, apiError.IsNetwork())
	assert.Equal(t, 0, apiError.HTTPStatus)
}

/*
TestClient_PostJSON verifies body encoding and 201/204 handling.
*/
func TestClient_PostJSON(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
		writer.WriteHeader(http.StatusNoContent)
	}))

	err := client.PostJSON(context.Background(), "/auth/users/", map[string]string{"email": "a@b.com"}, nil)
	assert.NoError(t, err)
}
