// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/mkrogh/garderobe/internal/outfit"
	"github.com/mkrogh/garderobe/internal/store"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/garderobe/config.yaml",
	"/etc/garderobe/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. These load
// first and are overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8480,
			Timeout: 30 * time.Second,
		},
		Store:  *store.DefaultConfig(),
		Engine: *outfit.DefaultConfig(),
		Weather: WeatherConfig{
			LookaheadHours: 10,
		},
		Security: SecurityConfig{
			AuthMode: "none",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: override any setting
//
// Precedence: ENV > file > defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// GARDEROBE_STORE_PATH -> store.path, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which paths parse as comma-separated slices
// when supplied through the environment.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

// processSliceFields converts comma-separated env values to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults).
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
var envMappings = map[string]string{
	// Server
	"http_host":    "server.host",
	"http_port":    "server.port",
	"http_timeout": "server.timeout",

	// Store
	"garderobe_store_path": "store.path",
	"store_sync_writes":    "store.sync_writes",
	"store_gc_interval":    "store.gc_interval",
	"store_gc_ratio":       "store.gc_ratio",

	// Engine scoring constants
	"engine_synonym_penalty":           "engine.synonym_penalty",
	"engine_weather_penalty_factor":    "engine.weather_penalty_factor",
	"engine_success_bonus":             "engine.success_bonus",
	"engine_rejection_penalty":         "engine.rejection_penalty",
	"engine_incompatible_pair_penalty": "engine.incompatible_pair_penalty",
	"engine_top_pick_threshold":        "engine.top_pick_threshold",

	// Weather
	"weather_lookahead_hours": "weather.lookahead_hours",

	// Security
	"auth_mode":           "security.auth_mode",
	"admin_username":      "security.admin_username",
	"admin_password_hash": "security.admin_password_hash",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// API
	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",
	"api_rate_limit_reqs":   "api.rate_limit_reqs",
	"api_rate_limit_window": "api.rate_limit_window",
	"api_cors_origins":      "api.cors_origins",
}

// envTransformFunc transforms environment variable names to koanf paths.
// Unmapped variables are dropped so unrelated environment noise cannot
// leak into the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
