// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector matches the store's value-log GC surface.
type GarbageCollector interface {
	RunGC() error
}

// StoreGCService periodically reclaims Badger value-log space. Errors
// are logged and the loop continues; a failed GC pass is retried on the
// next tick.
type StoreGCService struct {
	gc       GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
}

// NewStoreGCService creates the GC loop. A non-positive interval falls
// back to ten minutes.
func NewStoreGCService(gc GarbageCollector, interval time.Duration, logger zerolog.Logger) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		gc:       gc,
		interval: interval,
		logger:   logger,
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.gc.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("value log gc pass failed")
				continue
			}
			s.logger.Debug().Msg("value log gc pass complete")
		}
	}
}

// String implements fmt.Stringer for suture's event log.
func (s *StoreGCService) String() string {
	return "store-gc"
}
