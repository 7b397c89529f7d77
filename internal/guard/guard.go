// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

/*
Package guard gates navigation against the current session state.

Every route transition is checked before the destination is allowed to
render. The guard reads an already-hydrated session snapshot synchronously;
it never performs network calls itself — session hydration happens once at
startup via the session store's InitAuth.

# Ordering

The admin check runs first, then the authentication check, then the
guest-only check: an admin-gated route implicitly requires authentication,
so the stricter rule must win.
*/
package guard

import (
	"log/slog"

	"github.com/okunevich/petsearch/internal/session"
)

// Requirements declares the access constraints of a route.
type Requirements struct {
	// RequiresAuth admits only authenticated sessions.
	RequiresAuth bool

	// RequiresAdmin admits only users carrying the staff/admin flag.
	RequiresAdmin bool

	// RequiresModeratorOrAdmin admits staff, plus roles granted the
	// manage-any-advertisement capability.
	RequiresModeratorOrAdmin bool

	// GuestOnly admits only unauthenticated sessions (login, registration).
	GuestOnly bool
}

// Action is the outcome category of a guard decision.
type Action string

const (
	// ActionAllow lets the navigation proceed.
	ActionAllow Action = "allow"

	// ActionRedirectLogin sends the visitor to the login route, carrying
	// the originally requested path as the return parameter.
	ActionRedirectLogin Action = "redirect_login"

	// ActionRedirectHome sends an already-authenticated visitor away from
	// a guest-only route.
	ActionRedirectHome Action = "redirect_home"

	// ActionRedirectHomeDenied sends a visitor home after an authorization
	// denial (admin/moderator requirement not met).
	ActionRedirectHomeDenied Action = "redirect_home_denied"
)

// Decision is the computed outcome for one navigation attempt.
type Decision struct {
	Action Action

	// Target is the path to navigate to instead; empty when allowed.
	Target string

	// Next carries the originally requested path for post-login return.
	// Set only for [ActionRedirectLogin].
	Next string

	// Reason is a short denial description for diagnostics.
	Reason string
}

// Allowed reports whether the navigation may proceed.
func (d Decision) Allowed() bool { return d.Action == ActionAllow }

// SessionState is the read-only session view the guard consults.
//
// # Why an interface?
//
// Defining SessionState here decouples the guard from the session store
// implementation, allowing tests to supply fixed snapshots.
type SessionState interface {
	IsAuthenticated() bool
	User() *session.User
}

// Guard evaluates route requirements against session state.
type Guard struct {
	logger *slog.Logger
}

// New constructs a [*Guard].
func New(logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{logger: logger}
}

// Decide computes the outcome for navigating to route with the given session.
//
// # Flow
//  1. If the route or any ancestor requires admin/moderator rights and the
//     user is absent or lacks them: redirect home, log the denial.
//  2. Else if the route requires authentication and the session is
//     anonymous: redirect to login with the return path.
//  3. Else if the route is guest-only and the session is authenticated:
//     redirect home.
//  4. Otherwise allow.
func (guard *Guard) Decide(route *Route, state SessionState) Decision {
	user := state.User()

	// ── 1. Authorization (route chain) ────────────────────────────────────
	if route.ChainRequiresAdmin() && !user.IsAdmin() {
		guard.logger.Warn("guard_admin_route_denied",
			slog.String("route", route.Name),
			slog.Bool("authenticated", state.IsAuthenticated()),
		)
		return Decision{
			Action: ActionRedirectHomeDenied,
			Target: PathHome,
			Reason: "admin access required",
		}
	}

	if route.ChainRequiresModerator() && !isModeratorOrAdmin(user) {
		guard.logger.Warn("guard_moderator_route_denied",
			slog.String("route", route.Name),
		)
		return Decision{
			Action: ActionRedirectHomeDenied,
			Target: PathHome,
			Reason: "moderator access required",
		}
	}

	// ── 2. Authentication ─────────────────────────────────────────────────
	if route.ChainRequiresAuth() && !state.IsAuthenticated() {
		return Decision{
			Action: ActionRedirectLogin,
			Target: PathLogin,
			Next:   route.Path,
			Reason: "authentication required",
		}
	}

	// ── 3. Guest-Only ─────────────────────────────────────────────────────
	if route.Requirements.GuestOnly && state.IsAuthenticated() {
		return Decision{
			Action: ActionRedirectHome,
			Target: PathHome,
			Reason: "already authenticated",
		}
	}

	// ── 4. Allowed ────────────────────────────────────────────────────────
	return Decision{Action: ActionAllow}
}

// isModeratorOrAdmin mirrors the backend's moderation rule: the staff flag
// always wins, otherwise the manage-any-advertisement capability counts.
func isModeratorOrAdmin(user *session.User) bool {
	if user.IsAdmin() {
		return true
	}
	return user.Can(func(p session.RolePermissions) bool { return p.CanManageAnyAd })
}
