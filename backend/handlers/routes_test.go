// ABOUTME: Tests for route table definitions
// ABOUTME: Verifies all routes have required fields and no duplicates

package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestRoutes_AllRoutesHaveRequiredFields(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	routes := h.Routes()

	if len(routes) == 0 {
		t.Fatal("Routes() returned empty slice")
	}

	for i, route := range routes {
		if route.Method == "" {
			t.Errorf("Route %d: Method is empty", i)
		}
		if route.Path == "" {
			t.Errorf("Route %d: Path is empty", i)
		}
		if route.Handler == nil {
			t.Errorf("Route %d: Handler is nil", i)
		}
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			t.Errorf("Route %d: Path %q must start with /api/v1/", i, route.Path)
		}
	}
}

func TestRoutes_NoDuplicatePaths(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	routes := h.Routes()

	seen := make(map[string]bool)
	for _, route := range routes {
		key := route.Pattern()
		if seen[key] {
			t.Errorf("Duplicate route: %s", key)
		}
		seen[key] = true
	}
}

func TestRoutes_ExpectedEndpoints(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	routes := h.Routes()

	expected := map[string]bool{
		"GET /api/v1/health":                            false,
		"GET /api/v1/estimation/complexity-factors":     false,
		"GET /api/v1/estimation/rates":                  false,
		"POST /api/v1/estimation/quick-estimate":        false,
		"POST /api/v1/estimation/schedule":              false,
		"POST /api/v1/estimation/calculate-costs":       false,
		"POST /api/v1/resource-planning/calculate-fte":  false,
		"POST /api/v1/resource-planning/recommend-team": false,
		"POST /api/v1/resource-planning/reality-check":  false,
		"POST /api/v1/projects":                         false,
		"GET /api/v1/projects":                          false,
		"GET /api/v1/projects/{id}":                     false,
		"DELETE /api/v1/projects/{id}":                  false,
		"POST /api/v1/projects/{id}/estimate":           false,
		"GET /api/v1/openapi.yaml":                      false,
	}

	for _, route := range routes {
		if _, ok := expected[route.Pattern()]; ok {
			expected[route.Pattern()] = true
		}
	}

	for key, found := range expected {
		if !found {
			t.Errorf("Missing expected route: %s", key)
		}
	}
}

func TestRoutes_RegisterOnServeMux(t *testing.T) {
	h := NewHandler(nil, nil, nil)
	mux := http.NewServeMux()

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Registering routes panicked: %v", r)
		}
	}()
	for _, route := range h.Routes() {
		mux.HandleFunc(route.Pattern(), route.Handler)
	}
}
