// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package api

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkrogh/garderobe/internal/config"
	"github.com/mkrogh/garderobe/internal/logging"
	"github.com/mkrogh/garderobe/internal/metrics"
)

// CORS returns the CORS middleware for the configured origins.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// RateLimit returns an IP-keyed rate limiting middleware. A zero request
// budget disables limiting.
func RateLimit(cfg *config.APIConfig) func(http.Handler) http.Handler {
	if cfg.RateLimitReqs <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		cfg.RateLimitReqs,
		cfg.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			NewResponseWriter(w, r).Error(http.StatusTooManyRequests,
				ErrCodeTooManyRequests, "Rate limit exceeded")
		}),
	)
}

// RequestLogger logs one structured line per completed request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logging.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// PrometheusMetrics records request counters and latency histograms.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		metrics.RecordAPIRequest(r.Method, r.URL.Path,
			strconv.Itoa(ww.Status()), time.Since(start))
	})
}

// BasicAuth enforces HTTP basic auth against the configured admin user and
// bcrypt password hash. With auth mode "none" it passes everything through.
func BasicAuth(sec *config.SecurityConfig) func(http.Handler) http.Handler {
	if sec.AuthMode != "basic" {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok {
				NewResponseWriter(w, r).Unauthorized("Authentication required")
				return
			}

			userMatch := subtle.ConstantTimeCompare(
				[]byte(user), []byte(sec.AdminUsername)) == 1
			passErr := bcrypt.CompareHashAndPassword(
				[]byte(sec.AdminPasswordHash), []byte(pass))

			if !userMatch || passErr != nil {
				logging.Warn().Str("user", user).Msg("basic auth rejected")
				NewResponseWriter(w, r).Unauthorized("Invalid credentials")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
