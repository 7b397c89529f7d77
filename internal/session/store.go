// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/okunevich/petsearch/internal/platform/apperr"
	"github.com/okunevich/petsearch/internal/platform/constants"
	"github.com/okunevich/petsearch/internal/tokenstore"
	"github.com/okunevich/petsearch/internal/transport"
)

// State identifies where the session is in its lifecycle.
type State string

const (
	// StateAnonymous means no tokens are held.
	StateAnonymous State = "anonymous"

	// StateAuthenticating means tokens are held and the profile fetch is pending.
	StateAuthenticating State = "authenticating"

	// StateAuthenticated means tokens and a confirmed profile are held.
	StateAuthenticated State = "authenticated"

	// StateRefreshPending means the access token was rejected and a refresh
	// is in flight.
	StateRefreshPending State = "refresh_pending"
)

// ErrAccountCreated marks a registration whose account was created on the
// server but whose automatic sign-in failed afterwards. Callers can use
// [errors.Is] to tell the person their account exists.
var ErrAccountCreated = errors.New("account was created but automatic sign-in failed")

// Store manages the authentication lifecycle.
//
// # Review Process
//
// This store is critical for security. Any changes to token persistence,
// refresh, or clearing logic must be reviewed carefully: the invariant is
// that the in-memory pair, durable storage, and the transport's bearer
// header always move together.
//
// # Concurrency
//
// Store is safe for concurrent use. At most one token refresh request is in
// flight at any time; concurrent callers share its outcome.
type Store struct {
	transport *transport.Client
	storage   tokenstore.Store
	logger    *slog.Logger

	mu     sync.RWMutex
	state  State
	tokens tokenstore.Tokens
	user   *User

	flightMu sync.Mutex
	flight   *refreshFlight
}

// refreshFlight is the shared outcome of one in-flight refresh request.
type refreshFlight struct {
	done chan struct{}
	err  error
}

// NewStore constructs an anonymous [*Store].
//
// # Parameters
//   - client: The shared backend transport. The store becomes the sole
//     writer of its default Authorization header.
//   - storage: Durable token storage.
//   - logger: Structured logger for auth diagnostics.
func NewStore(client *transport.Client, storage tokenstore.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		transport: client,
		storage:   storage,
		logger:    logger,
		state:     StateAnonymous,
	}
}

// # Read Access

// State returns the current lifecycle state.
func (store *Store) State() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

// IsAuthenticated reports whether the session holds an access token.
func (store *Store) IsAuthenticated() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.tokens.Access != ""
}

// User returns the cached profile, or nil before the fetch completes.
func (store *Store) User() *User {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.user
}

// Claims returns the decoded access token claims, or nil when anonymous or
// undecodable. For display and expiry checks only; never for authorization.
func (store *Store) Claims() *AccessClaims {
	store.mu.RLock()
	access := store.tokens.Access
	store.mu.RUnlock()

	if access == "" {
		return nil
	}

	claims, err := ParseAccessClaims(access)
	if err != nil {
		return nil
	}
	return claims
}

// # Operations

// Credentials is the identifier/secret pair for [Store.Login].
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenPair is the backend's token issuance/refresh response.
type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair and hydrates the profile.
//
// # Flow
//  1. POST the credentials to the token issuance endpoint.
//  2. On success: persist both tokens, install the bearer header, fetch
//     the profile.
//  3. On failure: clear any partial session state and return the
//     normalized error (field errors included for form display).
//
// A profile fetch failure after successful issuance does not fail the
// login; the fetch handles its own session consequences and is logged.
func (store *Store) Login(context context.Context, credentials Credentials) error {
	var pair tokenPair
	if err := store.transport.PostJSON(context, constants.EndpointTokenCreate, credentials, &pair); err != nil {
		store.clearSession(context)
		store.logger.Warn("session_login_failed", slog.Any("error", err))
		return err
	}

	store.setTokens(context, pair.Access, pair.Refresh)

	if err := store.fetchUser(context, true); err != nil {
		store.logger.Warn("session_post_login_profile_fetch_failed", slog.Any("error", err))
	}

	return nil
}

// SocialLogin exchanges an OAuth authorization code/state pair for a token
// pair at the provider-specific backend endpoint. Success and failure
// behave exactly like [Store.Login].
func (store *Store) SocialLogin(context context.Context, provider, code, state string) error {
	payload := map[string]string{
		FieldCode:  code,
		FieldState: state,
	}

	path := fmt.Sprintf(constants.EndpointSocialFormat, provider)

	var pair tokenPair
	if err := store.transport.PostJSON(context, path, payload, &pair); err != nil {
		store.clearSession(context)
		store.logger.Warn("session_social_login_failed",
			slog.String("provider", provider),
			slog.Any("error", err),
		)
		return err
	}

	store.setTokens(context, pair.Access, pair.Refresh)

	if err := store.fetchUser(context, true); err != nil {
		store.logger.Warn("session_post_login_profile_fetch_failed", slog.Any("error", err))
	}

	return nil
}

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email       string `json:"email"`
	Username    string `json:"username,omitempty"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// Register creates an account, then immediately logs in with the same
// credentials to establish a session.
//
// # Returns
//   - Account creation failure: the normalized error with field details.
//   - Creation ok, auto-login failed: an error matching [ErrAccountCreated]
//     wrapping the login failure, so callers can report both facts.
func (store *Store) Register(context context.Context, input RegisterInput) error {
	if err := store.transport.PostJSON(context, constants.EndpointUsers, input, nil); err != nil {
		store.logger.Warn("session_register_failed", slog.Any("error", err))
		return err
	}

	if err := store.Login(context, Credentials{Email: input.Email, Password: input.Password}); err != nil {
		return fmt.Errorf("%w: %w", ErrAccountCreated, err)
	}

	return nil
}

// FetchUser requests the current-user profile with the held access token.
//
// With no access token present the session is cleared and nil is returned.
// A 401/403 triggers exactly one refresh-and-retry cycle; any other failure
// clears the session because identity cannot be confirmed.
func (store *Store) FetchUser(context context.Context) error {
	return store.fetchUser(context, true)
}

// Logout clears all session state and durable storage.
//
// It never calls the backend and is idempotent from any state.
func (store *Store) Logout(context context.Context) {
	store.clearSession(context)
	store.logger.Info("session_logged_out")
}

// InitAuth hydrates the session from durable storage at application start.
//
// If a persisted access token exists, the bearer header is installed and
// the profile is fetched to validate the session. The application proceeds
// regardless of the outcome; the returned error is diagnostic.
func (store *Store) InitAuth(context context.Context) error {
	tokens, err := store.storage.Load(context)
	if err != nil {
		store.logger.Warn("session_storage_load_failed", slog.Any("error", err))
		return err
	}

	if tokens.Access == "" {
		return nil
	}

	store.mu.Lock()
	store.tokens = tokens
	store.state = StateAuthenticating
	store.mu.Unlock()

	store.transport.SetAuthToken(tokens.Access)

	if err := store.fetchUser(context, true); err != nil {
		store.logger.Warn("session_init_auth_failed", slog.Any("error", err))
		return err
	}

	return nil
}

// # Internals

// fetchUser performs the profile fetch. allowRefresh bounds the recovery to
// a single refresh cycle per failed request.
func (store *Store) fetchUser(context context.Context, allowRefresh bool) error {

	// ── 1. Precondition ───────────────────────────────────────────────────
	store.mu.RLock()
	access := store.tokens.Access
	store.mu.RUnlock()

	if access == "" {
		store.clearSession(context)
		return nil
	}

	// ── 2. Profile Request ────────────────────────────────────────────────
	var user User
	err := store.transport.GetJSON(context, constants.EndpointCurrentUser, &user)
	if err == nil {
		store.mu.Lock()
		store.user = &user
		store.state = StateAuthenticated
		store.mu.Unlock()
		return nil
	}

	// ── 3. Recovery ───────────────────────────────────────────────────────
	apiError := apperr.As(err)
	if apiError != nil && apiError.IsAuth() && allowRefresh {
		if refreshErr := store.refreshTokens(context); refreshErr != nil {
			return refreshErr
		}
		return store.fetchUser(context, false)
	}

	// Identity cannot be confirmed: the whole session goes.
	store.clearSession(context)
	store.logger.Warn("session_profile_fetch_failed", slog.Any("error", err))
	return err
}

// refreshTokens serializes refresh requests behind a single in-flight call.
//
// The first caller performs the exchange; concurrent callers block on the
// shared outcome so only one refresh request is ever issued at a time.
func (store *Store) refreshTokens(context context.Context) error {
	store.flightMu.Lock()
	if flight := store.flight; flight != nil {
		store.flightMu.Unlock()
		select {
		case <-flight.done:
			return flight.err
		case <-context.Done():
			return apperr.Network(context.Err())
		}
	}

	flight := &refreshFlight{done: make(chan struct{})}
	store.flight = flight
	store.flightMu.Unlock()

	flight.err = store.doRefresh(context)

	store.flightMu.Lock()
	store.flight = nil
	store.flightMu.Unlock()
	close(flight.done)

	return flight.err
}

// doRefresh exchanges the refresh token for a new access token.
//
// Failure is always fatal to the session: no retry, no second refresh.
func (store *Store) doRefresh(context context.Context) error {
	store.mu.Lock()
	refresh := store.tokens.Refresh
	if refresh == "" {
		store.mu.Unlock()
		store.clearSession(context)
		return apperr.Auth(0, "Session expired. Please sign in again.")
	}
	store.state = StateRefreshPending
	store.mu.Unlock()

	store.logger.Debug("session_refreshing_access_token")

	var pair tokenPair
	err := store.transport.PostJSON(context, constants.EndpointTokenRefresh,
		map[string]string{FieldRefresh: refresh}, &pair)
	if err != nil {
		store.clearSession(context)
		store.logger.Warn("session_refresh_failed", slog.Any("error", err))
		return err
	}

	// Refresh token rotation is optional on the backend side.
	if pair.Refresh == "" {
		pair.Refresh = refresh
	}

	store.setTokens(context, pair.Access, pair.Refresh)
	return nil
}

// setTokens installs a new token pair everywhere it lives: in memory, in
// durable storage, and as the transport's default bearer header.
//
// A storage write failure is logged but does not abort the session; the
// in-memory session stays usable for the current run.
func (store *Store) setTokens(context context.Context, access, refresh string) {
	store.mu.Lock()
	store.tokens = tokenstore.Tokens{Access: access, Refresh: refresh}
	store.state = StateAuthenticating
	store.mu.Unlock()

	store.transport.SetAuthToken(access)

	if err := store.storage.Save(context, tokenstore.Tokens{Access: access, Refresh: refresh}); err != nil {
		store.logger.Warn("session_storage_save_failed", slog.Any("error", err))
	}
}

// clearSession wipes every trace of the session: memory, durable storage,
// and the transport's bearer header.
func (store *Store) clearSession(context context.Context) {
	store.mu.Lock()
	store.tokens = tokenstore.Tokens{}
	store.user = nil
	store.state = StateAnonymous
	store.mu.Unlock()

	store.transport.ClearAuthToken()

	if err := store.storage.Clear(context); err != nil {
		store.logger.Warn("session_storage_clear_failed", slog.Any("error", err))
	}
}
