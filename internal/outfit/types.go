// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package outfit

import (
	"context"

	"github.com/mkrogh/garderobe/internal/models"
)

// Selection is the in-progress outfit: the items chosen so far, at most
// one per category. The one-item-per-category invariant is guaranteed by
// the caller; the engine never checks it.
type Selection []models.WardrobeItem

// IDs returns the item ids of the selection in selection order.
func (s Selection) IDs() []string {
	ids := make([]string, len(s))
	for i := range s {
		ids[i] = s[i].ID
	}
	return ids
}

// Categories returns the set of categories already filled.
func (s Selection) Categories() map[models.Category]struct{} {
	filled := make(map[models.Category]struct{}, len(s))
	for i := range s {
		filled[s[i].Category()] = struct{}{}
	}
	return filled
}

// Validity is the outcome of checking a candidate against a selection.
type Validity struct {
	// Valid reports whether the candidate is mutually compatible with
	// every selected item.
	Valid bool `json:"valid"`

	// ColorScore is the cumulative two-directional color score across
	// all pairs. Zero for an empty selection. Meaningless when invalid.
	ColorScore int `json:"color_score"`

	// UsedSynonym reports whether any pairwise match relied on the
	// synonym fallback.
	UsedSynonym bool `json:"used_synonym"`
}

// ScoreBreakdown itemizes the components of a candidate's ranking score.
type ScoreBreakdown struct {
	// ColorScore is the cumulative color score from the validity check.
	ColorScore int `json:"color_score"`

	// WeatherPenalty is the temperature-mismatch penalty. Zero when the
	// item has never been worn or no weather reading was supplied.
	WeatherPenalty float64 `json:"weather_penalty"`

	// HistoryAdjustment is the net feedback adjustment: negative for a
	// subset of an approved outfit, positive for an exact rejection.
	HistoryAdjustment float64 `json:"history_adjustment"`

	// UsedSynonym reports whether any color match used the synonym map.
	UsedSynonym bool `json:"used_synonym"`

	// TopPick flags a candidate scoring below the configured threshold
	// against a non-empty selection.
	TopPick bool `json:"top_pick"`
}

// ScoredCandidate pairs a candidate item with its ranking score.
type ScoredCandidate struct {
	// Item is the candidate wardrobe item.
	Item models.WardrobeItem `json:"item"`

	// Score is the combined ranking score; lower is more recommended.
	Score float64 `json:"score"`

	// Breakdown itemizes the score components.
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// HistoryProvider supplies historical feedback to the ranking engine.
// Implemented by the document store; the engine depends only on this
// interface so it carries no storage concerns. A nil provider, and any
// provider error, contributes neutrally to scoring.
type HistoryProvider interface {
	// ApprovedSets returns the item-id sets of all approved outfits.
	// A candidate set that is a subset of any returned set counts as
	// part of a success.
	ApprovedSets(ctx context.Context) ([][]string, error)

	// IsRejected reports whether the exact id-set behind the canonical
	// key was previously rejected. No subset semantics.
	IsRejected(ctx context.Context, key string) (bool, error)
}
