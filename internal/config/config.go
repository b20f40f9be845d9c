// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

// Package config defines the service configuration and its layered loading.
//
// Configuration is assembled from three sources in increasing priority:
// built-in defaults, an optional YAML file, and environment variables.
// See LoadWithKoanf.
package config

import (
	"fmt"
	"time"

	"github.com/mkrogh/garderobe/internal/outfit"
	"github.com/mkrogh/garderobe/internal/store"
)

// Config is the root service configuration.
type Config struct {
	Server   ServerConfig   `json:"server" koanf:"server"`
	Store    store.Config   `json:"store" koanf:"store"`
	Engine   outfit.Config  `json:"engine" koanf:"engine"`
	Weather  WeatherConfig  `json:"weather" koanf:"weather"`
	Security SecurityConfig `json:"security" koanf:"security"`
	Logging  LoggingConfig  `json:"logging" koanf:"logging"`
	API      APIConfig      `json:"api" koanf:"api"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `json:"host" koanf:"host"`

	// Port is the listen port.
	Port int `json:"port" koanf:"port"`

	// Timeout bounds request read/write and graceful shutdown.
	Timeout time.Duration `json:"timeout" koanf:"timeout"`
}

// WeatherConfig describes how weather readings supplied by callers are
// interpreted. The service does not fetch forecasts itself.
type WeatherConfig struct {
	// LookaheadHours is the forecast window the feels-like average in
	// incoming readings is expected to cover.
	LookaheadHours int `json:"lookahead_hours" koanf:"lookahead_hours"`
}

// SecurityConfig holds the authentication settings.
type SecurityConfig struct {
	// AuthMode is "none" or "basic".
	AuthMode string `json:"auth_mode" koanf:"auth_mode"`

	// AdminUsername is the basic-auth username.
	AdminUsername string `json:"admin_username" koanf:"admin_username"`

	// AdminPasswordHash is the bcrypt hash of the basic-auth password.
	// Plaintext passwords are never configured.
	AdminPasswordHash string `json:"-" koanf:"admin_password_hash"`
}

// LoggingConfig holds the log settings; mirrors internal/logging.Config.
type LoggingConfig struct {
	Level  string `json:"level" koanf:"level"`
	Format string `json:"format" koanf:"format"`
	Caller bool   `json:"caller" koanf:"caller"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	// DefaultPageSize is the page size when the caller does not specify one.
	DefaultPageSize int `json:"default_page_size" koanf:"default_page_size"`

	// MaxPageSize caps caller-requested page sizes.
	MaxPageSize int `json:"max_page_size" koanf:"max_page_size"`

	// RateLimitReqs is the allowed request count per rate-limit window.
	// Zero disables rate limiting.
	RateLimitReqs int `json:"rate_limit_reqs" koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate-limit window duration.
	RateLimitWindow time.Duration `json:"rate_limit_window" koanf:"rate_limit_window"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `json:"cors_origins" koanf:"cors_origins"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be > 0, got %s", c.Server.Timeout)
	}
	if c.Weather.LookaheadHours < 1 || c.Weather.LookaheadHours > 48 {
		return fmt.Errorf("weather.lookahead_hours must be in 1-48, got %d", c.Weather.LookaheadHours)
	}
	switch c.Security.AuthMode {
	case "none":
	case "basic":
		if c.Security.AdminUsername == "" || c.Security.AdminPasswordHash == "" {
			return fmt.Errorf("security.auth_mode basic requires admin_username and admin_password_hash")
		}
	default:
		return fmt.Errorf("security.auth_mode must be none or basic, got %q", c.Security.AuthMode)
	}
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be >= 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must be >= default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.API.RateLimitReqs < 0 {
		return fmt.Errorf("api.rate_limit_reqs must be >= 0, got %d", c.API.RateLimitReqs)
	}
	if c.API.RateLimitReqs > 0 && c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api.rate_limit_window must be > 0 when rate limiting is enabled")
	}

	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
