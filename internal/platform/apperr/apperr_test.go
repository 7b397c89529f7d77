// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package apperr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okunevich/petsearch/internal/platform/apperr"
)

/*
TestNormalize_FieldMap verifies the flat {field: [messages]} backend shape.
*/
func TestNormalize_FieldMap(t *testing.T) {
	body := []byte(`{"email": ["Enter a valid email address."], "password": ["This field may not be blank."]}`)

	apiError := apperr.Normalize(http.StatusBadRequest, body, "Login failed")

	require.NotNil(t, apiError)
	assert.Equal(t, apperr.KindValidation, apiError.Kind)
	assert.Equal(t, http.StatusBadRequest, apiError.HTTPStatus)

	// 1. Structured map is preserved verbatim for form binding.
	require.Len(t, apiError.Fields, 2)
	assert.Equal(t, []string{"Enter a valid email address."}, apiError.Fields["email"])

	// 2. Display message reports the alphabetically first failing field.
	assert.Equal(t, "email: Enter a valid email address.", apiError.Message)
	assert.Equal(t, "email: Enter a valid email address.", apiError.FirstField())
}

/*
TestNormalize_Detail verifies the {"detail": "..."} backend shape.
*/
func TestNormalize_Detail(t *testing.T) {
	body := []byte(`{"detail": "No active account found with the given credentials"}`)

	apiError := apperr.Normalize(http.StatusUnauthorized, body, "Login failed")

	assert.Equal(t, apperr.KindAuth, apiError.Kind)
	assert.Equal(t, "No active account found with the given credentials", apiError.Message)
	assert.Empty(t, apiError.Fields)
	assert.True(t, apiError.IsAuth())
}

/*
TestNormalize_BareString verifies the bare JSON string backend shape.
*/
func TestNormalize_BareString(t *testing.T) {
	apiError := apperr.Normalize(http.StatusServiceUnavailable, []byte(`"Maintenance in progress"`), "")

	assert.Equal(t, apperr.KindServer, apiError.Kind)
	assert.Equal(t, "Maintenance in progress", apiError.Message)
}

/*
TestNormalize_SingleStringField verifies serializers that emit a single
string instead of a message list.
*/
func TestNormalize_SingleStringField(t *testing.T) {
	body := []byte(`{"username": "A user with that username already exists."}`)

	apiError := apperr.Normalize(http.StatusBadRequest, body, "Registration failed")

	require.Len(t, apiError.Fields, 1)
	assert.Equal(t, []string{"A user with that username already exists."}, apiError.Fields["username"])
	assert.Equal(t, "username: A user with that username already exists.", apiError.Message)
}

/*
TestNormalize_Fallbacks verifies that the message is never empty.
*/
func TestNormalize_Fallbacks(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     []byte
		fallback string
		expected string
	}{
		{"empty_body_with_fallback", 400, nil, "Request failed", "Request failed"},
		{"empty_body_no_fallback", 404, nil, "", "Not Found"},
		{"garbage_body", 500, []byte("<html>boom</html>"), "Server error", "Server error"},
		{"empty_object", 400, []byte(`{}`), "Bad input", "Bad input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiError := apperr.Normalize(tt.status, tt.body, tt.fallback)
			assert.Equal(t, tt.expected, apiError.Message)
			assert.NotEmpty(t, apiError.Message)
		})
	}
}

/*
TestNetwork verifies the transport failure wrapper.
*/
func TestNetwork(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	apiError := apperr.Network(cause)

	assert.True(t, apiError.IsNetwork())
	assert.Equal(t, 0, apiError.HTTPStatus)
	assert.NotEmpty(t, apiError.Message)
	assert.ErrorIs(t, apiError, cause)
}

/*
TestAs verifies extraction through wrapped error chains.
*/
func TestAs(t *testing.T) {
	inner := apperr.Auth(http.StatusForbidden, "Forbidden")
	wrapped := errors.Join(errors.New("outer"), inner)

	extracted := apperr.As(wrapped)
	require.NotNil(t, extracted)
	assert.Equal(t, http.StatusForbidden, extracted.HTTPStatus)

	assert.Nil(t, apperr.As(errors.New("plain")))
	assert.True(t, apperr.IsAPIError(wrapped))
}
