// ABOUTME: Handler for serving the OpenAPI description of the API
// ABOUTME: Embeds openapi.yaml at compile time

package handlers

import (
	_ "embed"
	"log/slog"
	"net/http"
)

//go:embed openapi.yaml
var openapiSpec []byte

// OpenAPISpec serves the embedded OpenAPI document.
func (h *Handler) OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(openapiSpec); err != nil {
		slog.Debug("Failed to write OpenAPI document", "error", err)
	}
}
