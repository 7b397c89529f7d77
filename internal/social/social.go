// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

/*
Package social drives the OAuth authorization-code flow for third-party
sign-in.

The backend performs the actual code-for-token exchange; this package only
produces the provider authorization URL and collects the code/state pair
that the provider delivers to the local callback listener. The collected
pair is then handed to the session store's SocialLogin.

# Flow

 1. Build the authorization URL with a fresh random state.
 2. Start a loopback HTTP listener for the provider redirect.
 3. The person opens the URL in a browser and approves access.
 4. The listener captures code and state, verifies the state matches,
    and hands the pair back.
*/
package social

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Provider names accepted by the backend's social endpoints.
const (
	ProviderGoogle = "google-oauth2"
	ProviderVK     = "vk-oauth2"
)

// Registry holds the configured OAuth providers.
type Registry struct {
	providers map[string]*oauth2.Config
}

/*
NewRegistry builds the provider registry from client identifiers.

Providers without a client ID are left unregistered. No client secret is
held: the secret lives on the backend, which performs the code exchange.

Parameters:
  - googleClientID: The Google OAuth client ID, or empty to disable.
  - vkClientID: The VK OAuth client ID, or empty to disable.
  - redirectURL: The loopback callback URL registered with the providers.

Returns:
  - *Registry: The configured registry.
*/
func NewRegistry(googleClientID, vkClientID, redirectURL string) *Registry {
	providers := make(map[string]*oauth2.Config)

	if googleClientID != "" {
		providers[ProviderGoogle] = &oauth2.Config{
			ClientID:    googleClientID,
			Endpoint:    endpoints.Google,
			RedirectURL: redirectURL,
			Scopes:      []string{"openid", "email", "profile"},
		}
	}

	if vkClientID != "" {
		providers[ProviderVK] = &oauth2.Config{
			ClientID:    vkClientID,
			Endpoint:    endpoints.Vk,
			RedirectURL: redirectURL,
			Scopes:      []string{"email"},
		}
	}

	return &Registry{providers: providers}
}

// Providers returns the registered provider names in stable order.
func (registry *Registry) Providers() []string {
	names := make([]string, 0, len(registry.providers))
	for name := range registry.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AuthorizationURL builds the provider consent URL with a fresh state.
//
// # Returns
//   - The URL to open in a browser.
//   - The state value the callback must echo back.
func (registry *Registry) AuthorizationURL(provider string) (string, string, error) {
	config, ok := registry.providers[provider]
	if !ok {
		return "", "", fmt.Errorf("social_unknown_provider: %q", provider)
	}

	state := uuid.NewString()
	return config.AuthCodeURL(state, oauth2.AccessTypeOnline), state, nil
}
