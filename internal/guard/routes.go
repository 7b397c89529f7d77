// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package guard

import (
	"strings"
	"unicode"
)

// # Route Paths

const (
	PathHome     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
)

// Route is one navigable destination with its access requirements.
//
// Parent chains model nested route records: a requirement declared on a
// parent applies to every descendant, which is how the admin panel gates
// all of its sub-routes at once.
type Route struct {
	Name         string
	Path         string
	Requirements Requirements
	Parent       *Route
}

// ChainRequiresAuth reports whether this route or any ancestor requires
// authentication. Admin-gated routes count: admin implies auth.
func (r *Route) ChainRequiresAuth() bool {
	for route := r; route != nil; route = route.Parent {
		if route.Requirements.RequiresAuth || route.Requirements.RequiresAdmin {
			return true
		}
	}
	return false
}

// ChainRequiresAdmin reports whether this route or any ancestor requires
// the admin flag.
func (r *Route) ChainRequiresAdmin() bool {
	for route := r; route != nil; route = route.Parent {
		if route.Requirements.RequiresAdmin {
			return true
		}
	}
	return false
}

// ChainRequiresModerator reports whether this route or any ancestor
// requires moderator-or-admin rights.
func (r *Route) ChainRequiresModerator() bool {
	for route := r; route != nil; route = route.Parent {
		if route.Requirements.RequiresModeratorOrAdmin {
			return true
		}
	}
	return false
}

// # Route Table

// adminPanel is the shared ancestor of every admin panel route.
var adminPanel = &Route{
	Name:         "AdminPanel",
	Path:         "/admin-panel",
	Requirements: Requirements{RequiresAuth: true, RequiresAdmin: true},
}

// Routes is the application's navigation table.
//
// Paths use {id} as a numeric placeholder segment.
var Routes = []*Route{
	{Name: "Home", Path: "/"},
	{Name: "Articles", Path: "/articles"},
	{Name: "ArticleDetail", Path: "/article/{id}"},
	{Name: "ArticleEdit", Path: "/articles/edit/{id}",
		Requirements: Requirements{RequiresAuth: true, RequiresAdmin: true}},
	{Name: "ArticleCreate", Path: "/articles/create",
		Requirements: Requirements{RequiresAuth: true, RequiresAdmin: true}},
	{Name: "Advertisements", Path: "/advertisements"},
	{Name: "AdvertisementDetail", Path: "/advertisement/{id}"},
	{Name: "AdvertisementEdit", Path: "/advertisements/edit/{id}",
		Requirements: Requirements{RequiresAuth: true}},
	{Name: "AdvertisementCreate", Path: "/advertisements/create",
		Requirements: Requirements{RequiresAuth: true}},
	{Name: "Rules", Path: "/rules"},
	{Name: "Contacts", Path: "/contacts"},
	{Name: "PostAd", Path: "/post-ad"},
	{Name: "Login", Path: PathLogin, Requirements: Requirements{GuestOnly: true}},
	{Name: "Register", Path: PathRegister, Requirements: Requirements{GuestOnly: true}},
	{Name: "Privacy", Path: "/privacy"},
	{Name: "Sitemap", Path: "/sitemap"},
	{Name: "Shelters", Path: "/shelters"},
	{Name: "Profile", Path: "/profile/{id}"},
	{Name: "AdminUsers", Path: "/admin-panel/users", Parent: adminPanel},
	{Name: "SocialAuthCallback", Path: "/social/auth/callback/"},
}

// Match resolves a concrete path against the route table.
//
// # Returns
//   - The matching route and true, or nil and false when no route matches.
//
// Query strings are ignored; {id} placeholders match a single all-digit
// segment. Trailing slashes are insignificant except on the root path.
func Match(path string) (*Route, bool) {
	if index := strings.IndexByte(path, '?'); index >= 0 {
		path = path[:index]
	}

	for _, route := range Routes {
		if matchPath(route.Path, path) {
			return route, true
		}
	}
	return nil, false
}

// matchPath compares a route pattern against a concrete path segment by
// segment.
func matchPath(pattern, path string) bool {
	patternSegments := splitPath(pattern)
	pathSegments := splitPath(path)

	if len(patternSegments) != len(pathSegments) {
		return false
	}

	for index, patternSegment := range patternSegments {
		if patternSegment == "{id}" {
			if !isNumeric(pathSegments[index]) {
				return false
			}
			continue
		}
		if patternSegment != pathSegments[index] {
			return false
		}
	}
	return true
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func isNumeric(segment string) bool {
	if segment == "" {
		return false
	}
	for _, character := range segment {
		if !unicode.IsDigit(character) {
			return false
		}
	}
	return true
}
