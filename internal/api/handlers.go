// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/mkrogh/garderobe/internal/config"
	"github.com/mkrogh/garderobe/internal/models"
	"github.com/mkrogh/garderobe/internal/outfit"
	"github.com/mkrogh/garderobe/internal/store"
)

// Handlers carries the dependencies shared by all endpoint handlers.
type Handlers struct {
	store  *store.Store
	engine *outfit.Engine
	cfg    *config.Config
	logger zerolog.Logger
}

// NewHandlers creates the handler set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandlers(st *store.Store, engine *outfit.Engine, cfg *config.Config, logger zerolog.Logger) *Handlers {
	return &Handlers{
		store:  st,
		engine: engine,
		cfg:    cfg,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// decodeJSON decodes the request body into v. On failure it writes a
// 400 response and returns false.
func decodeJSON(rw *ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		rw.BadRequest("Invalid JSON body: " + err.Error())
		return false
	}
	return true
}

// loadSelection fetches the selection items behind the given ids. On
// failure it writes the appropriate response and returns false.
func (h *Handlers) loadSelection(rw *ResponseWriter, r *http.Request, ids []string) (outfit.Selection, bool) {
	if len(ids) == 0 {
		return nil, true
	}

	items, err := h.store.GetItems(r.Context(), ids)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			rw.NotFound("Unknown item id in selection: " + err.Error())
		} else {
			rw.StoreError(err)
		}
		return nil, false
	}
	return outfit.Selection(items), true
}

// loadItem fetches a single wardrobe item. On failure it writes the
// appropriate response and returns nil.
func (h *Handlers) loadItem(rw *ResponseWriter, r *http.Request, id string) *models.WardrobeItem {
	item, err := h.store.GetItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			rw.NotFound("Unknown item id: " + id)
		} else {
			rw.StoreError(err)
		}
		return nil
	}
	return item
}
