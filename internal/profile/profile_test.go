// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package profile_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okunevich/petsearch/internal/platform/apperr"
	"github.com/okunevich/petsearch/internal/profile"
	"github.com/okunevich/petsearch/internal/transport"
)

func newClient(t *testing.T, handler http.Handler) *profile.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return profile.NewClient(transport.NewClient(server.URL, slog.Default(), transport.Options{}))
}

func TestGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/profile/9/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"id": 9, "display_name": "Anna", "username": "anna",
			"advertisements": []map[string]any{
				{"id": 4, "title": "Lost parrot", "status": "Lost", "location": "Moscow"},
			},
		})
	})

	client := newClient(t, mux)
	page, err := client.Get(context.Background(), 9)
	require.NoError(t, err)

	assert.Equal(t, "Anna", page.DisplayName)
	require.Len(t, page.Ads, 1)
	assert.Equal(t, "Lost parrot", page.Ads[0].Title)
	assert.Empty(t, page.Email, "contact details are viewer-dependent")
}

func TestUpdate_OwnProfileOnly(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/profile/9/", func(writer http.ResponseWriter, request *http.Request) {
		var input map[string]any
		require.NoError(t, json.NewDecoder(request.Body).Decode(&input))
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"id": 9, "display_name": input["display_name"], "username": "anna",
		})
	})
	mux.HandleFunc("PUT /api/profile/10/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusForbidden)
		json.NewEncoder(writer).Encode(map[string]string{"detail": "Not your profile."})
	})

	client := newClient(t, mux)

	updated, err := client.Update(context.Background(), 9, profile.UpdateInput{DisplayName: "Anna K."})
	require.NoError(t, err)
	assert.Equal(t, "Anna K.", updated.DisplayName)

	_, err = client.Update(context.Background(), 10, profile.UpdateInput{DisplayName: "x"})
	require.Error(t, err)
	apiError := apperr.As(err)
	require.NotNil(t, apiError)
	assert.True(t, apiError.IsAuth())
}
