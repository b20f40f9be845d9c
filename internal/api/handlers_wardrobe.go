// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mkrogh/garderobe/internal/metrics"
	"github.com/mkrogh/garderobe/internal/models"
	"github.com/mkrogh/garderobe/internal/validation"
)

// IngestItemRequest is the payload of POST /api/v1/wardrobe: the analyzed
// item metadata produced by the external image-analysis flow.
type IngestItemRequest struct {
	Filename  string              `json:"filename"`
	ImagePath string              `json:"image_path"`
	Analysis  models.ItemAnalysis `json:"analysis"`
}

// IngestItem validates and persists a newly analyzed wardrobe item.
func (h *Handlers) IngestItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req IngestItemRequest
	if !decodeJSON(rw, r, &req) {
		return
	}

	if verr := validation.ValidateStruct(&req.Analysis); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	// An item never pairs against its own slot; the analysis flow
	// occasionally emits such an entry and it is dropped here.
	delete(req.Analysis.Compatibility, req.Analysis.Category)

	item := &models.WardrobeItem{
		ID:        uuid.NewString(),
		Filename:  req.Filename,
		ImagePath: req.ImagePath,
		Analysis:  req.Analysis,
		CreatedAt: time.Now().UTC(),
	}

	err := h.store.PutItem(r.Context(), item)
	metrics.RecordStoreOperation("put_item", err)
	if err != nil {
		rw.StoreError(err)
		return
	}

	h.logger.Info().
		Str("item_id", item.ID).
		Str("category", string(item.Category())).
		Str("color", item.Analysis.PrimaryColor).
		Msg("item ingested")

	rw.Created(item)
}

// ListItems returns the catalog, optionally filtered by ?category=.
func (h *Handlers) ListItems(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var (
		items []models.WardrobeItem
		err   error
	)

	if category := r.URL.Query().Get("category"); category != "" {
		cat := models.Category(category)
		if !cat.Valid() {
			rw.BadRequest("Unknown category: " + category)
			return
		}
		items, err = h.store.ListItemsByCategory(r.Context(), cat)
	} else {
		items, err = h.store.ListItems(r.Context())
	}

	metrics.RecordStoreOperation("list_items", err)
	if err != nil {
		rw.StoreError(err)
		return
	}

	if items == nil {
		items = []models.WardrobeItem{}
	}
	rw.Success(items)
}

// GetItem returns a single wardrobe item.
func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	item := h.loadItem(rw, r, chi.URLParam(r, "id"))
	if item == nil {
		return
	}
	rw.Success(item)
}

// DeleteItem removes a wardrobe item from the catalog.
func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")

	if item := h.loadItem(rw, r, id); item == nil {
		return
	}

	err := h.store.DeleteItem(r.Context(), id)
	metrics.RecordStoreOperation("delete_item", err)
	if err != nil {
		rw.StoreError(err)
		return
	}

	h.logger.Info().Str("item_id", id).Msg("item deleted")
	rw.Success(map[string]string{"id": id})
}

// CountItems returns the number of items per category.
func (h *Handlers) CountItems(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	counts, err := h.store.CountItems(r.Context())
	metrics.RecordStoreOperation("count_items", err)
	if err != nil {
		rw.StoreError(err)
		return
	}

	for cat, n := range counts {
		metrics.WardrobeItems.WithLabelValues(string(cat)).Set(float64(n))
	}
	rw.Success(counts)
}
