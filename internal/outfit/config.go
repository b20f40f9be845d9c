// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package outfit

import "fmt"

// Config contains the scoring constants for the outfit engine.
type Config struct {
	// SynonymPenalty is added to a color's list position when a match
	// resolves through the synonym map instead of the exact color.
	SynonymPenalty int `json:"synonym_penalty" koanf:"synonym_penalty"`

	// WeatherPenaltyFactor scales the absolute difference between the
	// forecast feels-like temperature and an item's historical average
	// wear temperature. Items never worn carry no penalty.
	WeatherPenaltyFactor float64 `json:"weather_penalty_factor" koanf:"weather_penalty_factor"`

	// SuccessBonus is subtracted from a candidate's score when the
	// resulting id-set is a subset of any previously approved outfit.
	SuccessBonus float64 `json:"success_bonus" koanf:"success_bonus"`

	// RejectionPenalty is added when the resulting id-set exactly
	// matches a previously rejected outfit. Deliberately larger than
	// SuccessBonus so an explicit rejection outweighs a partial success.
	RejectionPenalty float64 `json:"rejection_penalty" koanf:"rejection_penalty"`

	// IncompatiblePairPenalty substitutes for the pairwise score of an
	// incompatible pair when computing the style score of an assembled,
	// possibly inconsistent outfit.
	IncompatiblePairPenalty float64 `json:"incompatible_pair_penalty" koanf:"incompatible_pair_penalty"`

	// TopPickThreshold marks candidates scoring strictly below it (with
	// a non-empty selection) as top picks for the UI.
	TopPickThreshold float64 `json:"top_pick_threshold" koanf:"top_pick_threshold"`
}

// DefaultConfig returns the canonical scoring constants.
func DefaultConfig() *Config {
	return &Config{
		SynonymPenalty:          4,
		WeatherPenaltyFactor:    0.5,
		SuccessBonus:            2.0,
		RejectionPenalty:        5.0,
		IncompatiblePairPenalty: 10.0,
		TopPickThreshold:        2.0,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.SynonymPenalty < 0 {
		return fmt.Errorf("synonym_penalty must be >= 0, got %d", c.SynonymPenalty)
	}
	if c.WeatherPenaltyFactor < 0 {
		return fmt.Errorf("weather_penalty_factor must be >= 0, got %f", c.WeatherPenaltyFactor)
	}
	if c.SuccessBonus < 0 {
		return fmt.Errorf("success_bonus must be >= 0, got %f", c.SuccessBonus)
	}
	if c.RejectionPenalty < 0 {
		return fmt.Errorf("rejection_penalty must be >= 0, got %f", c.RejectionPenalty)
	}
	if c.RejectionPenalty < c.SuccessBonus {
		return fmt.Errorf("rejection_penalty (%f) must be >= success_bonus (%f)", c.RejectionPenalty, c.SuccessBonus)
	}
	if c.IncompatiblePairPenalty <= 0 {
		return fmt.Errorf("incompatible_pair_penalty must be > 0, got %f", c.IncompatiblePairPenalty)
	}
	if c.TopPickThreshold < 0 {
		return fmt.Errorf("top_pick_threshold must be >= 0, got %f", c.TopPickThreshold)
	}
	return nil
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
