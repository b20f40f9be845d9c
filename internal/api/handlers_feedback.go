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
)

// FeedbackRequest records a verdict for an exact item combination.
type FeedbackRequest struct {
	ItemIDs []string `json:"item_ids"`
	Comment string   `json:"comment,omitempty"`
}

// ApproveOutfit handles POST /api/v1/feedback/approve.
func (h *Handlers) ApproveOutfit(w http.ResponseWriter, r *http.Request) {
	h.recordFeedback(w, r, models.VerdictApproved)
}

// RejectOutfit handles POST /api/v1/feedback/reject.
func (h *Handlers) RejectOutfit(w http.ResponseWriter, r *http.Request) {
	h.recordFeedback(w, r, models.VerdictRejected)
}

func (h *Handlers) recordFeedback(w http.ResponseWriter, r *http.Request, verdict models.Verdict) {
	rw := NewResponseWriter(w, r)

	var req FeedbackRequest
	if !decodeJSON(rw, r, &req) {
		return
	}
	if len(req.ItemIDs) == 0 {
		rw.BadRequest("item_ids must not be empty")
		return
	}

	// The ids must reference real items; feedback on phantom ids would
	// poison the subset bonus forever.
	if _, ok := h.loadSelection(rw, r, req.ItemIDs); !ok {
		return
	}

	record, err := h.store.RecordFeedback(r.Context(), req.ItemIDs, verdict, req.Comment, time.Now().UTC())
	metrics.RecordStoreOperation("record_feedback", err)
	if err != nil {
		rw.StoreError(err)
		return
	}

	h.logger.Info().
		Str("key", record.Key).
		Str("verdict", string(record.Verdict)).
		Msg("feedback recorded")

	rw.Success(record)
}

// ListFeedback handles GET /api/v1/feedback.
func (h *Handlers) ListFeedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	records, err := h.store.ListFeedback(r.Context())
	metrics.RecordStoreOperation("list_feedback", err)
	if err != nil {
		rw.StoreError(err)
		return
	}

	if records == nil {
		records = []models.FeedbackRecord{}
	}
	rw.Success(records)
}
