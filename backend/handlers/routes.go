// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Pattern returns the ServeMux pattern for the route.
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Estimation
		{Method: http.MethodGet, Path: "/api/v1/estimation/complexity-factors", Handler: h.ComplexityFactors},
		{Method: http.MethodGet, Path: "/api/v1/estimation/rates", Handler: h.Rates},
		{Method: http.MethodPost, Path: "/api/v1/estimation/quick-estimate", Handler: h.QuickEstimate},
		{Method: http.MethodPost, Path: "/api/v1/estimation/schedule", Handler: h.Schedule},
		{Method: http.MethodPost, Path: "/api/v1/estimation/calculate-costs", Handler: h.CalculateCosts},

		// Resource planning
		{Method: http.MethodPost, Path: "/api/v1/resource-planning/calculate-fte", Handler: h.CalculateFTE},
		{Method: http.MethodPost, Path: "/api/v1/resource-planning/recommend-team", Handler: h.RecommendTeam},
		{Method: http.MethodPost, Path: "/api/v1/resource-planning/reality-check", Handler: h.RealityCheck},

		// Projects
		{Method: http.MethodPost, Path: "/api/v1/projects", Handler: h.CreateProject},
		{Method: http.MethodGet, Path: "/api/v1/projects", Handler: h.ListProjects},
		{Method: http.MethodGet, Path: "/api/v1/projects/{id}", Handler: h.GetProject},
		{Method: http.MethodDelete, Path: "/api/v1/projects/{id}", Handler: h.ArchiveProject},
		{Method: http.MethodPost, Path: "/api/v1/projects/{id}/estimate", Handler: h.EstimateProject},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}
