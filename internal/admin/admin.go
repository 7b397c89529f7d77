// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

// Package admin is the typed client for the staff-only administration
// endpoints. The backend enforces the staff requirement; callers are
// expected to pre-check locally through the navigation guard so a denied
// person never issues the request at all.
package admin

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/okunevich/petsearch/internal/platform/constants"
	"github.com/okunevich/petsearch/internal/transport"
	"github.com/okunevich/petsearch/pkg/pagination"
)

// ManagedUser is one member row in the administration user list.
type ManagedUser struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	IsStaff     bool   `json:"is_staff"`
	IsActive    bool   `json:"is_active"`
	DateJoined  string `json:"date_joined"`
}

// Client calls the administration endpoints through the shared transport.
type Client struct {
	transport *transport.Client
}

// NewClient constructs an administration [*Client].
func NewClient(client *transport.Client) *Client {
	return &Client{transport: client}
}

// ListFilter narrows and pages the user list.
type ListFilter struct {
	Search string
	Role   string
	Page   int
}

func (filter ListFilter) query() string {
	values := url.Values{}
	if filter.Search != "" {
		values.Set("search", filter.Search)
	}
	if filter.Role != "" {
		values.Set("role", filter.Role)
	}
	if filter.Page > 1 {
		values.Set("page", strconv.Itoa(filter.Page))
	}

	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// ListUsers fetches one page of member rows matching the filter.
func (client *Client) ListUsers(context context.Context, filter ListFilter) (*pagination.Page[ManagedUser], error) {
	var page pagination.Page[ManagedUser]
	path := constants.EndpointAdminUsers + filter.query()
	if err := client.transport.GetJSON(context, path, &page); err != nil {
		return nil, fmt.Errorf("admin_list_users_failed: %w", err)
	}
	return &page, nil
}

// SetRoleInput names the role to assign.
type SetRoleInput struct {
	Role string `json:"role"`
}

// SetUserRole assigns a role to a member.
func (client *Client) SetUserRole(context context.Context, userID int64, role string) (*ManagedUser, error) {
	path := fmt.Sprintf("%s%d/", constants.EndpointAdminUsers, userID)

	var user ManagedUser
	if err := client.transport.PutJSON(context, path, SetRoleInput{Role: role}, &user); err != nil {
		return nil, fmt.Errorf("admin_set_user_role_failed: %w", err)
	}
	return &user, nil
}

// DeactivateUser disables a member account.
func (client *Client) DeactivateUser(context context.Context, userID int64) error {
	path := fmt.Sprintf("%s%d/", constants.EndpointAdminUsers, userID)
	if err := client.transport.Delete(context, path); err != nil {
		return fmt.Errorf("admin_deactivate_user_failed: %w", err)
	}
	return nil
}
