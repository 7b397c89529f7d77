// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package ads_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okunevich/petsearch/internal/ads"
	"github.com/okunevich/petsearch/internal/platform/apperr"
	"github.com/okunevich/petsearch/internal/transport"
)

func newClient(t *testing.T, handler http.Handler) *ads.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return ads.NewClient(transport.NewClient(server.URL, slog.Default(), transport.Options{}))
}

/*
TestList_FilterEncoding verifies that listing filters are encoded as the
backend's query parameters and that the pagination envelope is decoded.
*/
func TestList_FilterEncoding(t *testing.T) {
	var captured string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/advertisements/", func(writer http.ResponseWriter, request *http.Request) {
		captured = request.URL.RawQuery
		next := "http://backend/api/advertisements/?species=2&page=2"
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"count":    13,
			"next":     next,
			"previous": nil,
			"results": []map[string]any{
				{"id": 1, "title": "Lost cat near the park", "status": "Lost", "location": "Moscow"},
			},
		})
	})

	client := newClient(t, mux)
	page, err := client.List(context.Background(), ads.ListFilter{
		Species:     2,
		AgeCategory: ads.AgeOneToThree,
		Search:      "cat",
	})
	require.NoError(t, err)

	assert.Contains(t, captured, "species=2")
	assert.Contains(t, captured, "age_category=1_3")
	assert.Contains(t, captured, "search=cat")
	assert.NotContains(t, captured, "region=", "zero filters stay out of the query")

	assert.EqualValues(t, 13, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Lost cat near the park", page.Results[0].Title)

	nextPage, ok := page.NextPage()
	require.True(t, ok)
	assert.Equal(t, 2, nextPage)
}

func TestGet_Detail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/advertisements/42/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"id":          42,
			"title":       "Found dog",
			"description": "Friendly, no collar.",
			"status":      "Found",
			"animal": map[string]any{
				"name": "Unknown", "species": "Dog", "breed": "Mixed",
				"age_years_months": "2 years",
			},
			"photos":    []map[string]any{{"id": 1, "image_url": "http://backend/media/1.jpg"}},
			"responses": []map[string]any{{"id": 5, "message": "I think I know the owner"}},
			"location":  "Kazan",
		})
	})

	client := newClient(t, mux)
	detail, err := client.Get(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "Found dog", detail.Title)
	require.NotNil(t, detail.Animal)
	assert.Equal(t, "2 years", detail.Animal.AgeYearsMonths)
	assert.Len(t, detail.Photos, 1)
	assert.Len(t, detail.Responses, 1)
}

func TestGet_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/advertisements/9000/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusNotFound)
		json.NewEncoder(writer).Encode(map[string]string{"detail": "Not found."})
	})

	client := newClient(t, mux)
	_, err := client.Get(context.Background(), 9000)
	require.Error(t, err)

	apiError := apperr.As(err)
	require.NotNil(t, apiError)
	assert.Equal(t, http.StatusNotFound, apiError.HTTPStatus)
}

/*
TestRespond verifies the response payload shape and that validation
failures surface their field errors.
*/
func TestRespond(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/advertisements/42/responses/", func(writer http.ResponseWriter, request *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))

		if payload["message"] == "" {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(writer).Encode(map[string][]string{"message": {"This field may not be blank."}})
			return
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusCreated)
		json.NewEncoder(writer).Encode(map[string]any{"id": 7, "message": payload["message"]})
	})

	client := newClient(t, mux)

	response, err := client.Respond(context.Background(), 42, "Seen this dog yesterday")
	require.NoError(t, err)
	assert.EqualValues(t, 7, response.ID)

	_, err = client.Respond(context.Background(), 42, "")
	require.Error(t, err)
	apiError := apperr.As(err)
	require.NotNil(t, apiError)
	assert.Equal(t, apperr.KindValidation, apiError.Kind)
	assert.Equal(t, "This field may not be blank.", apiError.FirstField("message"))
}

func TestFilterOptions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/filter-options/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(map[string]any{
			"regions":        []map[string]any{{"id": 1, "name": "Moscow"}},
			"species":        []map[string]any{{"id": 1, "name": "Cat"}, {"id": 2, "name": "Dog"}},
			"ad_statuses":    []map[string]any{{"id": 1, "name": "Lost"}},
			"colors":         []map[string]any{{"id": 3, "name": "Black"}},
			"genders":        []map[string]any{{"value": "M", "label": "Male"}},
			"age_categories": []map[string]any{{"value": "1_3", "label": "1-3 years"}},
		})
	})

	client := newClient(t, mux)
	options, err := client.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Len(t, options.Species, 2)
	assert.Equal(t, "M", options.Genders[0].Value)
	assert.Equal(t, ads.AgeOneToThree, options.AgeCategories[0].Value)
}

func TestBreeds_SpeciesFilter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/breeds/", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "2", request.URL.Query().Get("species"))
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode([]map[string]any{
			{"id": 10, "name": "Labrador", "species": 2},
		})
	})

	client := newClient(t, mux)
	breeds, err := client.Breeds(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, breeds, 1)
	assert.Equal(t, "Labrador", breeds[0].Name)
}
