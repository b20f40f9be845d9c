// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkrogh/garderobe/internal/config"
)

// Router assembles the HTTP handler tree.
type Router struct {
	cfg      *config.Config
	handlers *Handlers
}

// NewRouter creates a router for the given configuration and handlers.
func NewRouter(cfg *config.Config, handlers *Handlers) *Router {
	return &Router{cfg: cfg, handlers: handlers}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(CORS(router.cfg.API.CORSOrigins))

	h := router.handlers

	// Health is public and unmetered so probes stay cheap.
	r.Get("/api/v1/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimit(&router.cfg.API))
		r.Use(PrometheusMetrics)
		r.Use(BasicAuth(&router.cfg.Security))

		r.Route("/wardrobe", func(r chi.Router) {
			r.Post("/", h.IngestItem)
			r.Get("/", h.ListItems)
			r.Get("/count", h.CountItems)
			r.Get("/{id}", h.GetItem)
			r.Delete("/{id}", h.DeleteItem)
		})

		r.Route("/outfit", func(r chi.Router) {
			r.Post("/check", h.CheckAddition)
			r.Post("/deadend", h.DeadEnd)
			r.Post("/rank", h.RankCandidates)
			r.Post("/style-score", h.StyleScore)
			r.Post("/inspiration", h.Inspiration)
			r.Post("/save", h.SaveOutfit)
			r.Get("/", h.ListOutfits)
			r.Get("/stats", h.StyleStats)
		})

		r.Route("/feedback", func(r chi.Router) {
			r.Post("/approve", h.ApproveOutfit)
			r.Post("/reject", h.RejectOutfit)
			r.Get("/", h.ListFeedback)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
