// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package social

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/okunevich/petsearch/internal/platform/constants"
)

// CallbackPath is the loopback redirect path registered with providers.
const CallbackPath = "/social/auth/callback/"

// ErrStateMismatch means the provider redirect carried an unexpected state
// value. The flow is aborted: the code must not be trusted.
var ErrStateMismatch = errors.New("social_state_mismatch")

// Callback is the code/state pair delivered by the provider redirect.
type Callback struct {
	Code  string
	State string
}

// Listener is a single-use loopback HTTP server that captures one provider
// redirect.
type Listener struct {
	logger *slog.Logger

	listener net.Listener
	server   *http.Server

	once   sync.Once
	result chan callbackResult
}

type callbackResult struct {
	callback Callback
	err      error
}

/*
NewListener binds the loopback callback listener.

Parameters:
  - port: The TCP port to bind on 127.0.0.1. Zero picks a free port.
  - expectedState: The state value issued with the authorization URL.
  - logger: Structured logger for flow diagnostics.

Returns:
  - *Listener: The bound listener, not yet serving.
  - error: Binding failure, typically the port being in use.
*/
func NewListener(port int, expectedState string, logger *slog.Logger) (*Listener, error) {
	if logger == nil {
		logger = slog.Default()
	}

	netListener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("social_listener_bind_failed: %w", err)
	}

	listener := &Listener{
		logger:   logger,
		listener: netListener,
		result:   make(chan callbackResult, 1),
	}

	router := chi.NewRouter()
	router.Get(CallbackPath, listener.handleCallback(expectedState))

	listener.server = &http.Server{
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return listener, nil
}

// RedirectURL returns the full loopback URL providers must redirect to.
func (l *Listener) RedirectURL() string {
	return fmt.Sprintf("http://%s%s", l.listener.Addr().String(), CallbackPath)
}

// Wait serves until one redirect arrives, the timeout elapses, or the
// context is cancelled. The listener is closed before returning.
func (l *Listener) Wait(context context.Context) (Callback, error) {
	serveErr := make(chan error, 1)
	go func() {
		if err := l.server.Serve(l.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	defer l.Close()

	timeout := time.NewTimer(constants.CallbackTimeout)
	defer timeout.Stop()

	select {
	case result := <-l.result:
		return result.callback, result.err
	case err := <-serveErr:
		return Callback{}, fmt.Errorf("social_listener_failed: %w", err)
	case <-timeout.C:
		return Callback{}, errors.New("social_callback_timeout: no redirect received")
	case <-context.Done():
		return Callback{}, context.Err()
	}
}

// Close shuts the listener down. Safe to call more than once.
func (l *Listener) Close() {
	l.once.Do(func() {
		shutdownContext, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = l.server.Shutdown(shutdownContext)
	})
}

// handleCallback validates and captures the provider redirect.
func (l *Listener) handleCallback(expectedState string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {

		// ── 1. Provider-Reported Errors ───────────────────────────────────
		if providerError := request.FormValue("error"); providerError != "" {
			description := request.FormValue("error_description")
			l.logger.Warn("social_provider_error",
				slog.String("error", providerError),
				slog.String("description", description),
			)
			l.deliver(writer, Callback{}, fmt.Errorf("social_provider_error: %s: %s", providerError, description))
			return
		}

		code := request.FormValue("code")
		state := request.FormValue("state")
		if code == "" || state == "" {
			http.Error(writer, "missing code or state parameter", http.StatusBadRequest)
			return
		}

		// ── 2. State Verification ─────────────────────────────────────────
		if state != expectedState {
			l.logger.Warn("social_state_mismatch_rejected")
			l.deliver(writer, Callback{}, ErrStateMismatch)
			return
		}

		// ── 3. Delivery ───────────────────────────────────────────────────
		l.deliver(writer, Callback{Code: code, State: state}, nil)
	}
}

// deliver hands the outcome to the waiter and renders the browser page.
func (l *Listener) deliver(writer http.ResponseWriter, callback Callback, err error) {
	select {
	case l.result <- callbackResult{callback: callback, err: err}:
	default:
		// A redirect already landed; ignore duplicates.
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err != nil {
		writer.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(writer, "<html><body><h2>Sign-in failed</h2><p>You can close this window and try again.</p></body></html>")
		return
	}
	fmt.Fprint(writer, "<html><body><h2>Signed in</h2><p>You can close this window and return to the application.</p></body></html>")
}
