// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Morten Krogh (mkrogh)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkrogh/garderobe

package api

import (
	"net/http"
	"time"
)

// startTime marks process start for the uptime field.
var startTime = time.Now()

// HealthStatus is the GET /api/v1/health payload.
type HealthStatus struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Items         int    `json:"items"`
}

// Health reports service liveness and a quick store probe.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	counts, err := h.store.CountItems(r.Context())
	if err != nil {
		rw.Error(http.StatusServiceUnavailable, ErrCodeStoreError, "Store not reachable")
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	rw.Success(HealthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Items:         total,
	})
}
