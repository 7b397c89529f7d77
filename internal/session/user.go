// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

/*
Package session implements the client-side authentication lifecycle.

It owns the token pair and the cached user profile, and is the single source
of truth for "is this client authenticated". Every mutation of durable token
storage and of the transport's default Authorization header happens here.

# Architecture

The store is a small state machine driven by backend responses:

	Anonymous --login/register/social--> Authenticating --profile--> Authenticated
	Authenticated --401/403--> RefreshPending --refresh ok--> Authenticating (retry)
	RefreshPending --refresh failed--> Anonymous (cleared)
	any state --logout--> Anonymous

At most one token refresh is ever in flight; concurrent rejected requests
share its outcome.
*/
package session

// # Domain Entities

// User is the server-provided identity and authorization profile.
//
// The field set mirrors the backend's current-user serializer; unknown
// fields are ignored on decode.
type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Role        string `json:"role,omitempty"`
	Region      string `json:"region,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	IsStaff     bool   `json:"is_staff,omitempty"`

	RolePermissions *RolePermissions `json:"role_permissions,omitempty"`
}

// RolePermissions is the capability set attached to a user's role.
//
// Capabilities are scoped to "own" versus "any" content, mirroring the
// backend's role model for articles, advertisements, and comments.
type RolePermissions struct {
	CanCreateArticle     bool `json:"can_create_article,omitempty"`
	CanEditOwnArticle    bool `json:"can_edit_own_article,omitempty"`
	CanEditAnyArticle    bool `json:"can_edit_any_article,omitempty"`
	CanDeleteOwnArticle  bool `json:"can_delete_own_article,omitempty"`
	CanDeleteAnyArticle  bool `json:"can_delete_any_article,omitempty"`
	CanEditOwnComment    bool `json:"can_edit_own_comment,omitempty"`
	CanDeleteOwnComment  bool `json:"can_delete_own_comment,omitempty"`
	CanDeleteAnyComment  bool `json:"can_delete_any_comment,omitempty"`
	CanCreateAd          bool `json:"can_create_advertisement,omitempty"`
	CanEditOwnAd         bool `json:"can_edit_own_advertisement,omitempty"`
	CanManageAnyAd       bool `json:"can_manage_any_advertisement,omitempty"`
	CanDeleteOwnAd       bool `json:"can_delete_own_advertisement,omitempty"`
	CanDeleteAnyAd       bool `json:"can_delete_any_advertisement,omitempty"`
}

// IsAdmin reports whether the user carries the staff/admin flag.
func (u *User) IsAdmin() bool {
	return u != nil && u.IsStaff
}

// Can reports a role capability, treating an absent permission set as "no".
func (u *User) Can(check func(RolePermissions) bool) bool {
	if u == nil || u.RolePermissions == nil {
		return false
	}
	return check(*u.RolePermissions)
}

// # Field Identifiers

// Field names shared between requests and surfaced validation errors.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldUsername = "username"
	FieldRefresh  = "refresh"
	FieldCode     = "code"
	FieldState    = "state"
)
