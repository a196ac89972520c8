// ABOUTME: Middleware type and chaining utility for the API router
// ABOUTME: Applies middleware in declaration order (first is outermost)

package middleware

import "net/http"

// Middleware wraps a handler with additional behaviour.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// Chain wraps h so the first middleware runs first. Nil entries are skipped.
// Chain(h, LogRequest, cors) serves as LogRequest(cors(h)).
func Chain(h http.HandlerFunc, middlewares ...Middleware) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] == nil {
			continue
		}
		h = middlewares[i](h)
	}
	return h
}
