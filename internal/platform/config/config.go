// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local .env file is
loaded first (if present) so that development machines do not need exported
variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (transport, session, token store)
    via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Petsearch client.
type Config struct {

	// Backend API
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8000"`

	// HTTPTimeout bounds every single backend request, in seconds.
	HTTPTimeoutSeconds int `env:"HTTP_TIMEOUT_SECONDS" envDefault:"30"`

	// Outbound request throttling
	RequestRate  float64 `env:"REQUEST_RATE"  envDefault:"10"`
	RequestBurst int     `env:"REQUEST_BURST" envDefault:"20"`

	// Durable token storage
	TokenFilePath string `env:"TOKEN_FILE" envDefault:""`

	// TokenFileSecret, when set, enables at-rest encryption of the token file.
	TokenFileSecret string `env:"TOKEN_FILE_SECRET"`

	// RedisURL, when set, stores the session tokens in Redis instead of a
	// local file. Used by headless deployments that share one session.
	RedisURL string `env:"REDIS_URL"`

	// Social login providers (OAuth authorization code flow)
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`
	VKClientID     string `env:"VK_CLIENT_ID"`

	// CallbackPort is the loopback port for the social login redirect.
	CallbackPort int `env:"CALLBACK_PORT" envDefault:"8123"`

	Debug bool `env:"DEBUG" envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A .env file in the working directory is loaded first when present;
// real environment variables always win over file values.
func Load() (*Config, error) {

	// Ignore the error: a missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects configurations the client cannot operate with.
func (c *Config) validate() error {
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("config: API_BASE_URL must be an http(s) URL, got %q", c.APIBaseURL)
	}

	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("config: HTTP_TIMEOUT_SECONDS must be positive, got %d", c.HTTPTimeoutSeconds)
	}

	if c.RequestRate <= 0 || c.RequestBurst <= 0 {
		return fmt.Errorf("config: REQUEST_RATE and REQUEST_BURST must be positive")
	}

	return nil
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.APIBaseURL, "/")
}
