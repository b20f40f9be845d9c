// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// Key prefixes for BadgerDB storage.
const (
	itemKeyPrefix     = "item:"
	feedbackKeyPrefix = "feedback:"
	outfitKeyPrefix   = "outfit:"
	statsGlobalKey    = "stats:global"
)

// Sentinel errors returned by store lookups.
var (
	// ErrItemNotFound indicates the requested wardrobe item does not exist.
	ErrItemNotFound = errors.New("wardrobe item not found")

	// ErrFeedbackNotFound indicates no verdict is recorded for the key.
	ErrFeedbackNotFound = errors.New("feedback record not found")

	// ErrOutfitNotFound indicates the saved outfit does not exist.
	ErrOutfitNotFound = errors.New("outfit record not found")
)

// Config holds the BadgerDB settings for the document store.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string `json:"path" koanf:"path"`

	// InMemory runs Badger without a backing directory. Used by tests;
	// data is lost on close.
	InMemory bool `json:"in_memory" koanf:"in_memory"`

	// SyncWrites forces fsync on every write. Slower but durable across
	// power loss.
	SyncWrites bool `json:"sync_writes" koanf:"sync_writes"`

	// GCInterval is how often the value-log garbage collector runs.
	GCInterval time.Duration `json:"gc_interval" koanf:"gc_interval"`

	// GCRatio is the space-reclaim ratio passed to RunValueLogGC.
	GCRatio float64 `json:"gc_ratio" koanf:"gc_ratio"`
}

// DefaultConfig returns production store defaults.
func DefaultConfig() *Config {
	return &Config{
		Path:       "data/garderobe",
		SyncWrites: true,
		GCInterval: 10 * time.Minute,
		GCRatio:    0.5,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if !c.InMemory && c.Path == "" {
		return errors.New("path is required for a persistent store")
	}
	if c.GCInterval < 0 {
		return fmt.Errorf("gc_interval must be >= 0, got %s", c.GCInterval)
	}
	if c.GCRatio <= 0 || c.GCRatio >= 1 {
		return fmt.Errorf("gc_ratio must be in (0, 1), got %f", c.GCRatio)
	}
	return nil
}

// Store is the BadgerDB-backed document store. Safe for concurrent use.
type Store struct {
	db     *badger.DB
	config Config
	logger zerolog.Logger
}

// Open opens (or creates) the database described by cfg.
func Open(cfg *Config, logger zerolog.Logger) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid store config: %w", err)
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	s := &Store{
		db:     db,
		config: *cfg,
		logger: logger.With().Str("component", "store").Logger(),
	}

	s.logger.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("document store opened")
	return s, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close BadgerDB: %w", err)
	}
	return nil
}

// RunGC performs one value-log garbage collection pass.
// badger.ErrNoRewrite means nothing needed reclaiming and is not an error.
func (s *Store) RunGC() error {
	err := s.db.RunValueLogGC(s.config.GCRatio)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("value log GC: %w", err)
	}
	return nil
}

// GCInterval exposes the configured garbage-collection interval for the
// supervisor service driving RunGC.
func (s *Store) GCInterval() time.Duration {
	return s.config.GCInterval
}
