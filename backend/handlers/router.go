// ABOUTME: Builds the HTTP router from the route table
// ABOUTME: Wraps every route in logging, CORS, and rate limiting middleware

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/engestimate/estimator/backend/middleware"
)

// NewRouter registers every route on a ServeMux behind the middleware chain.
// CORS preflights for any API path are answered by the CORS middleware.
func (h *Handler) NewRouter() *http.ServeMux {
	var limiter *middleware.RateLimiter
	if h.cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(h.cfg.RateLimitRPS, h.cfg.RateLimitBurst)
		slog.Info("Rate limiting enabled", "rps", h.cfg.RateLimitRPS, "burst", h.cfg.RateLimitBurst)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	wrap := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.Chain(next,
			middleware.LogRequest,
			middleware.CORSWithConfig(h.cfg.CORSAllowedOrigins),
			middleware.RateLimit(limiter, middleware.ClientIP),
		)
	}

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		mux.HandleFunc(route.Pattern(), wrap(route.Handler))
	}
	mux.HandleFunc("OPTIONS /api/v1/", middleware.CORSWithConfig(h.cfg.CORSAllowedOrigins)(http.NotFound))
	return mux
}
