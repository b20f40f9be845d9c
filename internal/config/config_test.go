// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig().Validate() error = %v", err)
	}
	if cfg.Server.Port != 8480 {
		t.Errorf("Server.Port = %d, want 8480", cfg.Server.Port)
	}
	if cfg.Weather.LookaheadHours != 10 {
		t.Errorf("Weather.LookaheadHours = %d, want 10", cfg.Weather.LookaheadHours)
	}
	if cfg.Security.AuthMode != "none" {
		t.Errorf("Security.AuthMode = %q, want none", cfg.Security.AuthMode)
	}
	if cfg.Engine.SynonymPenalty != 4 {
		t.Errorf("Engine.SynonymPenalty = %d, want 4", cfg.Engine.SynonymPenalty)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Config) {}},
		{
			name:    "port out of range",
			modify:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Server.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "lookahead out of range",
			modify:  func(c *Config) { c.Weather.LookaheadHours = 72 },
			wantErr: true,
		},
		{
			name:    "unknown auth mode",
			modify:  func(c *Config) { c.Security.AuthMode = "oauth" },
			wantErr: true,
		},
		{
			name:    "basic auth without credentials",
			modify:  func(c *Config) { c.Security.AuthMode = "basic" },
			wantErr: true,
		},
		{
			name: "basic auth with credentials",
			modify: func(c *Config) {
				c.Security.AuthMode = "basic"
				c.Security.AdminUsername = "admin"
				c.Security.AdminPasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
			},
		},
		{
			name:    "max page below default",
			modify:  func(c *Config) { c.API.MaxPageSize = 5 },
			wantErr: true,
		},
		{
			name:    "rate limit without window",
			modify:  func(c *Config) { c.API.RateLimitWindow = 0 },
			wantErr: true,
		},
		{
			name:   "rate limiting disabled",
			modify: func(c *Config) { c.API.RateLimitReqs = 0; c.API.RateLimitWindow = 0 },
		},
		{
			name:    "invalid engine constants",
			modify:  func(c *Config) { c.Engine.SynonymPenalty = -1 },
			wantErr: true,
		},
		{
			name:    "invalid store settings",
			modify:  func(c *Config) { c.Store.Path = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadWithKoanfDefaults(t *testing.T) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8480" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8480", cfg.Server.Addr())
	}
	if cfg.API.DefaultPageSize != 20 {
		t.Errorf("API.DefaultPageSize = %d, want 20", cfg.API.DefaultPageSize)
	}
}

func TestLoadWithKoanfEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENGINE_SYNONYM_PENALTY", "6")
	t.Setenv("API_CORS_ORIGINS", "http://a.example, http://b.example")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Engine.SynonymPenalty != 6 {
		t.Errorf("Engine.SynonymPenalty = %d, want 6", cfg.Engine.SynonymPenalty)
	}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[1] != "http://b.example" {
		t.Errorf("API.CORSOrigins = %v, want two trimmed origins", cfg.API.CORSOrigins)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := []byte(`
server:
  port: 7777
store:
  path: /tmp/garderobe-test
weather:
  lookahead_hours: 6
`)
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777 from file", cfg.Server.Port)
	}
	if cfg.Store.Path != "/tmp/garderobe-test" {
		t.Errorf("Store.Path = %q, want file value", cfg.Store.Path)
	}
	if cfg.Weather.LookaheadHours != 6 {
		t.Errorf("Weather.LookaheadHours = %d, want 6", cfg.Weather.LookaheadHours)
	}

	// Defaults still fill unspecified sections.
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %s, want default 30s", cfg.Server.Timeout)
	}
}

func TestLoadWithKoanfEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7777\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want env to override file", cfg.Server.Port)
	}
}

func TestEnvTransformDropsUnmappedVariables(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("envTransformFunc(PATH) = %q, want empty", got)
	}
	if got := envTransformFunc("HTTP_PORT"); got != "server.port" {
		t.Errorf("envTransformFunc(HTTP_PORT) = %q, want server.port", got)
	}
}
