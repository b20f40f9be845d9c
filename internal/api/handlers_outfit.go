// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package api

import (
	"net/http"
	"time"

	"github.com/mkrogh/garderobe/internal/metrics"
	"github.com/mkrogh/garderobe/internal/models"
	"github.com/mkrogh/garderobe/internal/outfit"
)

// CheckRequest asks whether a candidate may join the current selection.
type CheckRequest struct {
	CandidateID  string   `json:"candidate_id"`
	SelectionIDs []string `json:"selection_ids"`
}

// CheckAddition handles POST /api/v1/outfit/check.
func (h *Handlers) CheckAddition(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req CheckRequest
	if !decodeJSON(rw, r, &req) {
		return
	}
	if req.CandidateID == "" {
		rw.BadRequest("candidate_id is required")
		return
	}

	candidate := h.loadItem(rw, r, req.CandidateID)
	if candidate == nil {
		return
	}
	selection, ok := h.loadSelection(rw, r, req.SelectionIDs)
	if !ok {
		return
	}

	rw.Success(h.engine.CheckAddition(candidate, selection))
}

// DeadEnd handles POST /api/v1/outfit/deadend.
func (h *Handlers) DeadEnd(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req CheckRequest
	if !decodeJSON(rw, r, &req) {
		return
	}
	if req.CandidateID == "" {
		rw.BadRequest("candidate_id is required")
		return
	}

	candidate := h.loadItem(rw, r, req.CandidateID)
	if candidate == nil {
		return
	}
	selection, ok := h.loadSelection(rw, r, req.SelectionIDs)
	if !ok {
		return
	}

	wardrobe, err := h.store.ListItems(r.Context())
	if err != nil {
		rw.StoreError(err)
		return
	}

	deadEnd := h.engine.IsDeadEnd(candidate, selection, wardrobe)
	metrics.RecordDeadEndCheck(deadEnd)

	rw.Success(map[string]bool{"dead_end": deadEnd})
}

// RankRequest asks for a ranked candidate list for one clothing slot.
type RankRequest struct {
	Category     models.Category         `json:"category"`
	SelectionIDs []string                `json:"selection_ids"`
	Weather      *models.WeatherSnapshot `json:"weather,omitempty"`
}

// RankCandidates handles POST /api/v1/outfit/rank. Candidates are the
// stocked items of the requested category minus already-selected ids;
// the response is ordered best first (ascending score).
func (h *Handlers) RankCandidates(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RankRequest
	if !decodeJSON(rw, r, &req) {
		return
	}
	if !req.Category.Valid() {
		rw.BadRequest("Unknown category: " + string(req.Category))
		return
	}

	selection, ok := h.loadSelection(rw, r, req.SelectionIDs)
	if !ok {
		return
	}

	stocked, err := h.store.ListItemsByCategory(r.Context(), req.Category)
	if err != nil {
		rw.StoreError(err)
		return
	}

	selected := make(map[string]struct{}, len(req.SelectionIDs))
	for _, id := range req.SelectionIDs {
		selected[id] = struct{}{}
	}
	candidates := make([]models.WardrobeItem, 0, len(stocked))
	for i := range stocked {
		if _, dup := selected[stocked[i].ID]; !dup {
			candidates = append(candidates, stocked[i])
		}
	}

	start := time.Now()
	ranked := h.engine.RankCandidates(r.Context(), candidates, selection, req.Weather)
	metrics.RecordRanking(len(candidates), time.Since(start))

	if ranked == nil {
		ranked = []outfit.ScoredCandidate{}
	}
	rw.Success(ranked)
}

// SelectionRequest carries just a selection id list.
type SelectionRequest struct {
	SelectionIDs []string `json:"selection_ids"`
}

// StyleScore handles POST /api/v1/outfit/style-score.
func (h *Handlers) StyleScore(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SelectionRequest
	if !decodeJSON(rw, r, &req) {
		return
	}

	selection, ok := h.loadSelection(rw, r, req.SelectionIDs)
	if !ok {
		return
	}

	rw.Success(map[string]float64{"style_score": h.engine.StyleScore(selection)})
}

// InspirationRequest asks for agreed colors for a still-missing slot.
type InspirationRequest struct {
	Category     models.Category `json:"category"`
	SelectionIDs []string        `json:"selection_ids"`
}

// Inspiration handles POST /api/v1/outfit/inspiration.
func (h *Handlers) Inspiration(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req InspirationRequest
	if !decodeJSON(rw, r, &req) {
		return
	}
	if !req.Category.Valid() {
		rw.BadRequest("Unknown category: " + string(req.Category))
		return
	}

	selection, ok := h.loadSelection(rw, r, req.SelectionIDs)
	if !ok {
		return
	}

	colors := h.engine.InspirationColors(selection, req.Category)
	if colors == nil {
		colors = []string{}
	}
	rw.Success(map[string][]string{"colors": colors})
}

// SaveOutfitRequest records that the assembled outfit was worn.
type SaveOutfitRequest struct {
	SelectionIDs []string                `json:"selection_ids"`
	Weather      *models.WeatherSnapshot `json:"weather,omitempty"`
	Location     string                  `json:"location,omitempty"`
}

// SaveOutfit handles POST /api/v1/outfit/save: it snapshots the outfit,
// folds the style score into the global aggregate, and advances each
// item's wear statistics with the observed feels-like temperature.
// Wear-stat failures are logged but do not fail the save.
func (h *Handlers) SaveOutfit(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req SaveOutfitRequest
	if !decodeJSON(rw, r, &req) {
		return
	}
	if len(req.SelectionIDs) == 0 {
		rw.BadRequest("selection_ids must not be empty")
		return
	}

	selection, ok := h.loadSelection(rw, r, req.SelectionIDs)
	if !ok {
		return
	}

	now := time.Now().UTC()
	record := &models.OutfitRecord{
		Items:      make([]models.OutfitItemRef, len(selection)),
		Location:   req.Location,
		StyleScore: h.engine.StyleScore(selection),
	}
	if req.Weather != nil {
		record.Weather = *req.Weather
	}
	for i := range selection {
		record.Items[i] = models.OutfitItemRef{
			ID:       selection[i].ID,
			Category: selection[i].Category(),
			Type:     selection[i].Analysis.Type,
		}
	}

	err := h.store.SaveOutfit(r.Context(), record, now)
	metrics.RecordStoreOperation("save_outfit", err)
	if err != nil {
		rw.StoreError(err)
		return
	}

	var feelsLike *float64
	if req.Weather != nil {
		feelsLike = req.Weather.FeelsLikeAvg
	}
	if err := h.store.RecordWear(r.Context(), req.SelectionIDs, feelsLike, now); err != nil {
		h.logger.Warn().Err(err).
			Str("outfit_id", record.ID).
			Msg("wear stats update failed after save")
	}

	h.logger.Info().
		Str("outfit_id", record.ID).
		Int("items", len(record.Items)).
		Float64("style_score", record.StyleScore).
		Msg("outfit saved")

	rw.Created(record)
}

// ListOutfits handles GET /api/v1/outfit.
func (h *Handlers) ListOutfits(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit := h.cfg.API.DefaultPageSize
	records, err := h.store.ListOutfits(r.Context(), limit)
	metrics.RecordStoreOperation("list_outfits", err)
	if err != nil {
		rw.StoreError(err)
		return
	}

	if records == nil {
		records = []models.OutfitRecord{}
	}
	rw.Success(records)
}

// StyleStats handles GET /api/v1/outfit/stats.
func (h *Handlers) StyleStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	stats, err := h.store.GetGlobalStyleStats(r.Context())
	metrics.RecordStoreOperation("get_style_stats", err)
	if err != nil {
		rw.StoreError(err)
		return
	}
	rw.Success(stats)
}
