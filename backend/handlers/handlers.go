// ABOUTME: HTTP handlers for the estimation API
// ABOUTME: Shared handler state plus JSON decode, response, and error mapping helpers

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/engestimate/estimator/backend/cache"
	"github.com/engestimate/estimator/backend/config"
	"github.com/engestimate/estimator/backend/middleware"
	"github.com/engestimate/estimator/backend/models"
	"github.com/engestimate/estimator/backend/services"
	"github.com/engestimate/estimator/backend/store"
)

// maxRequestBodySize limits JSON request bodies to 1MB to prevent DOS attacks
const maxRequestBodySize = 1 << 20 // 1MB

type Handler struct {
	cfg     *config.Config
	cache   *cache.Cache
	store   store.Store
	tables  *services.Tables
	engine  *services.Engine
	costs   *services.CostCalculator
	planner *services.ResourcePlanner
}

// NewHandler wires the calculators to the given config, cache, and store.
// Nil arguments get defaults so handlers can be exercised in isolation.
func NewHandler(cfg *config.Config, c *cache.Cache, st store.Store) *Handler {
	if cfg == nil {
		cfg = &config.Config{
			StoreDriver:           store.DriverMemory,
			CacheTTL:              300,
			DefaultContingencyPct: models.DefaultContingencyPercent,
			DefaultOverheadPct:    models.DefaultOverheadPercent,
		}
	}
	if c == nil {
		c = cache.New(time.Duration(cfg.CacheTTL)*time.Second, cfg.CacheSize)
	}
	if st == nil {
		st = store.NewMemory()
	}

	tables := services.DefaultTables()
	return &Handler{
		cfg:     cfg,
		cache:   c,
		store:   st,
		tables:  tables,
		engine:  services.NewEngine(tables),
		costs:   services.NewCostCalculator(tables, nil),
		planner: services.NewResourcePlanner(tables),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeErrorDetails(w, message, code, nil)
}

func (h *Handler) writeErrorDetails(w http.ResponseWriter, message string, code int, details map[string]any) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// decodeJSON reads a size-limited JSON body into dst and validates it.
// It writes the 400 response itself and returns false on any failure.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	// An empty body decodes as {} and is left to validation.
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return false
		}
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}

	fields, err := models.Validate(dst)
	if err != nil {
		if fields == nil {
			slog.Error("Request validation errored", "error", err)
			h.writeError(w, "Invalid request", http.StatusBadRequest)
			return false
		}
		h.writeErrorDetails(w, "Validation failed", http.StatusBadRequest, fields)
		return false
	}
	return true
}

// handleServiceError maps service errors to responses. Validation problems
// anywhere in the chain are the caller's fault; everything else is ours.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		h.writeErrorDetails(w, verr.Message, http.StatusBadRequest, verr.Details)
		return
	}

	slog.Error("Request failed",
		"request_id", middleware.RequestID(r.Context()),
		"path", r.URL.Path,
		"error", err)

	var cerr *services.CalculationError
	if errors.As(err, &cerr) {
		h.writeErrorDetails(w, cerr.Message, http.StatusInternalServerError, cerr.Details)
		return
	}
	h.writeError(w, "Internal server error", http.StatusInternalServerError)
}
