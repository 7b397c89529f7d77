// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

// Command petsearch is the command-line client for the Petsearch site.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Select durable token storage (Redis when configured, file otherwise).
//  4. Wire the transport, session store, guard, and API clients.
//  5. Hydrate the session from durable storage.
//  6. Dispatch the requested command.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/okunevich/petsearch/internal/admin"
	"github.com/okunevich/petsearch/internal/ads"
	"github.com/okunevich/petsearch/internal/articles"
	"github.com/okunevich/petsearch/internal/cli"
	"github.com/okunevich/petsearch/internal/guard"
	"github.com/okunevich/petsearch/internal/platform/config"
	"github.com/okunevich/petsearch/internal/platform/constants"
	redisplatform "github.com/okunevich/petsearch/internal/platform/redis"
	"github.com/okunevich/petsearch/internal/profile"
	"github.com/okunevich/petsearch/internal/session"
	"github.com/okunevich/petsearch/internal/social"
	"github.com/okunevich/petsearch/internal/tokenstore"
	"github.com/okunevich/petsearch/internal/transport"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	// Diagnostics go to stderr; stdout belongs to command output.
	rawLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Error("startup_failed", slog.String("step", "load configuration"), slog.Any("error", err))
		return 1
	}

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")

		banner := figure.NewFigure(constants.AppName, "cybermedium", true)
		banner.Print()
		fmt.Println()
	}

	// Root context: cancelled on interrupt so long waits (social login,
	// throttled requests) abort cleanly.
	rootContext, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// ── 3. Durable Token Storage ──────────────────────────────────────────
	storage, cleanup, err := newTokenStorage(rootContext, cfg, log)
	if err != nil {
		log.Error("startup_failed", slog.String("step", "open token storage"), slog.Any("error", err))
		return 1
	}
	defer cleanup()

	// ── 4. Wiring ─────────────────────────────────────────────────────────
	client := transport.NewClient(cfg.BaseURL(), log, transport.Options{
		Timeout: time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
		Rate:    cfg.RequestRate,
		Burst:   cfg.RequestBurst,
	})

	sessionStore := session.NewStore(client, storage, log)

	redirectURL := fmt.Sprintf("http://127.0.0.1:%d%s", cfg.CallbackPort, social.CallbackPath)
	registry := social.NewRegistry(cfg.GoogleClientID, cfg.VKClientID, redirectURL)

	app := cli.New(cli.Dependencies{
		Out:          os.Stdout,
		Logger:       log,
		Session:      sessionStore,
		Guard:        guard.New(log),
		Social:       registry,
		Ads:          ads.NewClient(client),
		Articles:     articles.NewClient(client),
		Profile:      profile.NewClient(client),
		Admin:        admin.NewClient(client),
		CallbackPort: cfg.CallbackPort,
	})

	// ── 5. Session Hydration ──────────────────────────────────────────────
	// Failures are diagnostic: the command proceeds with whatever session
	// state remains, exactly like the site booting with a stale token.
	if err := sessionStore.InitAuth(rootContext); err != nil {
		log.Warn("session_hydration_failed", slog.Any("error", err))
	}

	// ── 6. Command Dispatch ───────────────────────────────────────────────
	if err := app.Run(rootContext, os.Args[1:]); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}

// newTokenStorage selects where the session tokens persist: Redis for
// shared-session deployments, an encrypted local file otherwise.
func newTokenStorage(context context.Context, cfg *config.Config, log *slog.Logger) (tokenstore.Store, func(), error) {
	if cfg.RedisURL != "" {
		client, err := redisplatform.NewClient(context, cfg.RedisURL, log)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if closeErr := client.Close(); closeErr != nil {
				log.Error("redis_close_failed", slog.Any("error", closeErr))
			}
		}
		return tokenstore.NewRedisStore(client), cleanup, nil
	}

	store, err := tokenstore.NewFileStore(cfg.TokenFilePath, cfg.TokenFileSecret)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}
