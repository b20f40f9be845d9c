// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package models

import (
	"sort"
	"strings"
	"time"
)

// OutfitKey derives the canonical identifier for a set of item ids.
// The key is order-independent: ids are sorted and joined, so any
// permutation of the same set produces the same key. One item per
// category makes duplicates impossible upstream, but duplicate ids are
// collapsed here anyway so the key is a true set identifier.
func OutfitKey(ids []string) string {
	if len(ids) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	sort.Strings(unique)
	return strings.Join(unique, "+")
}

// Verdict is the judgement recorded for an outfit combination.
type Verdict string

const (
	// VerdictApproved marks a combination the user liked.
	VerdictApproved Verdict = "approved"
	// VerdictRejected marks a combination the user turned down.
	VerdictRejected Verdict = "rejected"
)

// FeedbackRecord stores the verdict for one exact item-id set. Records are
// upserted by canonical key: re-judging the same set overwrites the prior
// verdict and comment (last write wins). Never deleted.
type FeedbackRecord struct {
	// Key is the canonical order-independent id-set identifier.
	Key string `json:"key"`

	// ItemIDs is the sorted member list behind the key, kept for subset
	// queries without re-splitting the key.
	ItemIDs []string `json:"item_ids"`

	// Verdict is approved or rejected.
	Verdict Verdict `json:"verdict"`

	// Comment is optional free text from the user.
	Comment string `json:"comment,omitempty"`

	// UpdatedAt is when the verdict was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// OutfitItemRef identifies one member of a saved outfit snapshot.
type OutfitItemRef struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Type     string   `json:"type,omitempty"`
}

// OutfitRecord is an immutable snapshot of an explicitly saved outfit.
// Created only on the save action, never mutated afterwards.
type OutfitRecord struct {
	// ID is the document identifier.
	ID string `json:"id"`

	// Items lists the outfit members at save time.
	Items []OutfitItemRef `json:"items"`

	// Weather is the weather reading at save time.
	Weather WeatherSnapshot `json:"weather"`

	// Location is a free-text place name supplied by the caller.
	Location string `json:"location,omitempty"`

	// StyleScore is the overall pairwise color score of the outfit.
	StyleScore float64 `json:"style_score"`

	// CreatedAt is when the outfit was saved.
	CreatedAt time.Time `json:"created_at"`
}

// ItemIDs returns the ids of the outfit members.
func (r *OutfitRecord) ItemIDs() []string {
	ids := make([]string, len(r.Items))
	for i, it := range r.Items {
		ids[i] = it.ID
	}
	return ids
}

// GlobalStyleStats is the single running aggregate of style scores across
// all explicitly saved outfits, maintained as a weighted incremental mean.
type GlobalStyleStats struct {
	// AvgScore is the running mean style score.
	AvgScore float64 `json:"avg_score"`

	// Count is the number of saved outfits folded into the mean.
	Count int `json:"count"`

	// UpdatedAt is when the aggregate was last advanced.
	UpdatedAt time.Time `json:"updated_at"`
}

// Fold advances the incremental mean with one new observation.
func (s *GlobalStyleStats) Fold(score float64, now time.Time) {
	s.AvgScore = (s.AvgScore*float64(s.Count) + score) / float64(s.Count+1)
	s.Count++
	s.UpdatedAt = now
}
