// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package admin_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okunevich/petsearch/internal/admin"
	"github.com/okunevich/petsearch/internal/platform/apperr"
	"github.com/okunevich/petsearch/internal/transport"
)

func newClient(t *testing.T, handler http.Handler) *admin.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return admin.NewClient(transport.NewClient(server.URL, slog.Default(), transport.Options{}))
}

func TestListUsers(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/users/", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "moderator", request.URL.Query().Get("role"))
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"count": 2,
			"results": []map[string]any{
				{"id": 3, "email": "mod@example.com", "role": "moderator", "is_active": true},
				{"id": 4, "email": "mod2@example.com", "role": "moderator", "is_active": false},
			},
		})
	})

	client := newClient(t, mux)
	page, err := client.ListUsers(context.Background(), admin.ListFilter{Role: "moderator"})
	require.NoError(t, err)

	require.Len(t, page.Results, 2)
	assert.True(t, page.Results[0].IsActive)
	assert.False(t, page.Results[1].IsActive)
}

/*
TestListUsers_Forbidden verifies that the backend's staff-only denial for
a non-staff bearer surfaces as an auth-kind error.
*/
func TestListUsers_Forbidden(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/users/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusForbidden)
		json.NewEncoder(writer).Encode(map[string]string{
			"detail": "You do not have permission to perform this action.",
		})
	})

	client := newClient(t, mux)
	_, err := client.ListUsers(context.Background(), admin.ListFilter{})
	require.Error(t, err)

	apiError := apperr.As(err)
	require.NotNil(t, apiError)
	assert.True(t, apiError.IsAuth())
}

func TestSetUserRole(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/admin/users/4/", func(writer http.ResponseWriter, request *http.Request) {
		var input admin.SetRoleInput
		require.NoError(t, json.NewDecoder(request.Body).Decode(&input))
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"id": 4, "email": "mod2@example.com", "role": input.Role,
		})
	})

	client := newClient(t, mux)
	user, err := client.SetUserRole(context.Background(), 4, "moderator")
	require.NoError(t, err)
	assert.Equal(t, "moderator", user.Role)
}

func TestDeactivateUser(t *testing.T) {
	var called bool
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/admin/users/4/", func(writer http.ResponseWriter, request *http.Request) {
		called = true
		writer.WriteHeader(http.StatusNoContent)
	})

	client := newClient(t, mux)
	require.NoError(t, client.DeactivateUser(context.Background(), 4))
	assert.True(t, called)
}
