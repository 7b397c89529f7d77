// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

/*
Package constants provides centralized, immutable values for the entire client.

It defines the backend endpoint paths, durable storage keys, and default
timeouts that are shared between different layers of the module.

Categories:

  - Endpoints: Paths of the Djoser-style authentication API and site resources.
  - Storage: Keys under which the token pair is persisted.
  - Timing: HTTP and refresh-related timeouts.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the session and transport logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "petsearch"
	AppVersion = "0.1.0-dev"
)

// # Authentication Endpoints
//
// The backend follows the Djoser + SimpleJWT URL layout.

const (
	// EndpointTokenCreate issues an access/refresh pair for credentials.
	EndpointTokenCreate = "/auth/jwt/create/"

	// EndpointTokenRefresh exchanges a refresh token for a new access token.
	EndpointTokenRefresh = "/auth/jwt/refresh/"

	// EndpointUsers creates a new account.
	EndpointUsers = "/auth/users/"

	// EndpointCurrentUser returns the profile of the bearer of the access token.
	EndpointCurrentUser = "/auth/users/me/"

	// EndpointSocialFormat exchanges an OAuth code/state pair; the single
	// %s verb is the provider name (e.g. "google-oauth2").
	EndpointSocialFormat = "/auth/o/%s/"
)

// # Site Endpoints

const (
	EndpointAdvertisements    = "/api/advertisements/"
	EndpointArticles          = "/api/articles/"
	EndpointArticleCategories = "/api/article-categories/"
	EndpointFilterOptions     = "/api/filter-options/"
	EndpointBreeds            = "/api/breeds/"
	EndpointProfileFormat     = "/api/profile/%d/"
	EndpointAdminUsers        = "/api/admin/users/"
)

// # Durable Storage

const (
	// StorageKeyAccess is the durable storage key for the access token.
	StorageKeyAccess = "accessToken"

	// StorageKeyRefresh is the durable storage key for the refresh token.
	StorageKeyRefresh = "refreshToken"

	// DefaultTokenFileName is the per-user token file, resolved under the
	// OS config directory when TOKEN_FILE is not set.
	DefaultTokenFileName = "petsearch/tokens.json"
)

// # Timing

const (
	// DefaultHTTPTimeout bounds a single backend request.
	DefaultHTTPTimeout = 30 * time.Second

	// RefreshLeeway is subtracted from the access token expiry when deciding
	// whether a proactive refresh is worthwhile.
	RefreshLeeway = 30 * time.Second

	// CallbackTimeout is how long the social login loopback listener waits
	// for the provider redirect before giving up.
	CallbackTimeout = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	BearerPrefix        = "Bearer "
)

// # Redis Prefix (shared-session deployments)

const (
	RedisPrefixSession = "petsearch:session:"
)
