// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports store backend reachability and cache occupancy

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Health returns API status with the store driver and cache size.
// An unreachable store reports "degraded" with 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code, storeStatus := "ok", http.StatusOK, "ok"
	if err := h.store.Ping(ctx); err != nil {
		slog.Warn("Store health check failed", "error", err)
		status, code, storeStatus = "degraded", http.StatusServiceUnavailable, "error"
	}

	h.writeJSON(w, code, map[string]any{
		"status":        status,
		"store":         h.cfg.StoreDriver,
		"store_status":  storeStatus,
		"cache_entries": h.cache.Len(),
	})
}
