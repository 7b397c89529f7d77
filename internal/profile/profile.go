// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

// Package profile is the typed client for public member profile pages:
// the member's public details plus their published advertisements.
package profile

import (
	"context"
	"fmt"

	"github.com/okunevich/petsearch/internal/ads"
	"github.com/okunevich/petsearch/internal/platform/constants"
	"github.com/okunevich/petsearch/internal/transport"
)

// Profile is a member's public page: identity details and their listings.
type Profile struct {
	ID          int64    `json:"id"`
	DisplayName string   `json:"display_name"`
	Username    string   `json:"username"`
	AvatarURL   *string  `json:"avatar_url"`
	Region      *string  `json:"region"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	Email       string   `json:"email,omitempty"`
	DateJoined  string   `json:"date_joined,omitempty"`
	Ads         []ads.Ad `json:"advertisements"`
}

// Client calls the profile endpoints through the shared transport.
type Client struct {
	transport *transport.Client
}

// NewClient constructs a profile [*Client].
func NewClient(client *transport.Client) *Client {
	return &Client{transport: client}
}

// Get fetches a member's public profile page by user ID.
//
// Contact fields (email, phone) are present only when the backend decides
// the viewer may see them.
func (client *Client) Get(context context.Context, userID int64) (*Profile, error) {
	var profile Profile
	path := fmt.Sprintf(constants.EndpointProfileFormat, userID)
	if err := client.transport.GetJSON(context, path, &profile); err != nil {
		return nil, fmt.Errorf("profile_get_failed: %w", err)
	}
	return &profile, nil
}

// UpdateInput holds the editable fields of the caller's own profile.
type UpdateInput struct {
	DisplayName string `json:"display_name,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Region      *int64 `json:"region,omitempty"`
}

// Update modifies the caller's own profile. Requires an authenticated
// session; the backend rejects edits to other members.
func (client *Client) Update(context context.Context, userID int64, input UpdateInput) (*Profile, error) {
	var profile Profile
	path := fmt.Sprintf(constants.EndpointProfileFormat, userID)
	if err := client.transport.PutJSON(context, path, input, &profile); err != nil {
		return nil, fmt.Errorf("profile_update_failed: %w", err)
	}
	return &profile, nil
}
