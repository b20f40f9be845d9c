// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

// Package models defines the persisted record types shared across the
// application: wardrobe items with their color-compatibility metadata,
// saved outfit snapshots, feedback records, and weather readings.
//
// Records are explicit typed structs with validated required fields.
// Malformed entries are rejected or defaulted at the ingestion boundary
// (see internal/validation); the scoring core in internal/outfit never
// inspects loosely structured data.
//
// Category and color values use the Danish wire vocabulary produced by
// the image-analysis ingestion flow (e.g. "Bund", "Strømper", "Grå").
// English display labels are available via Category.Label for UI layers.
package models
