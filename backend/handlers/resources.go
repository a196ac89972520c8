// ABOUTME: HTTP handlers for resource planning endpoints
// ABOUTME: Weekly FTE requirements, team recommendations, and reality checks

package handlers

import (
	"net/http"

	"github.com/engestimate/estimator/backend/models"
)

// FTEResponse holds the weekly requirement rows.
type FTEResponse struct {
	DurationWeeks int                          `json:"duration_weeks"`
	Requirements  []models.ResourceRequirement `json:"requirements"`
}

// TeamResponse is a recommended roster with its sizing metadata.
type TeamResponse struct {
	Team     []models.TeamRecommendation `json:"team"`
	Metadata models.TeamMetadata         `json:"metadata"`
}

// RealityCheckResponse bundles the plan that was checked with its warnings.
type RealityCheckResponse struct {
	Requirements []models.ResourceRequirement `json:"requirements"`
	Team         []models.TeamRecommendation  `json:"team"`
	Metadata     models.TeamMetadata          `json:"metadata"`
	Warnings     []models.Warning             `json:"warnings"`
}

// CalculateFTE spreads deliverable hours across weeks per discipline.
func (h *Handler) CalculateFTE(w http.ResponseWriter, r *http.Request) {
	var req models.FTERequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	reqs, err := h.planner.CalculateFTE(req.Deliverables, req.Weeks())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, FTEResponse{DurationWeeks: req.Weeks(), Requirements: reqs})
}

// RecommendTeam returns a roster sized for the total hours.
func (h *Handler) RecommendTeam(w http.ResponseWriter, r *http.Request) {
	var req models.TeamRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	team, meta, err := h.planner.RecommendTeam(req.TotalHours, req.Weeks())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, TeamResponse{Team: team, Metadata: meta})
}

// RealityCheck builds requirements and a roster, then runs the staffing
// heuristics over both. Without total_hours the deliverable hours are summed.
func (h *Handler) RealityCheck(w http.ResponseWriter, r *http.Request) {
	var req models.RealityCheckRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	weeks := req.Weeks()
	reqs, err := h.planner.CalculateFTE(req.Deliverables, weeks)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	total := req.TotalHours
	if total == 0 {
		for _, d := range req.Deliverables {
			total += d.Hours()
		}
	}
	team, meta, err := h.planner.RecommendTeam(total, weeks)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, RealityCheckResponse{
		Requirements: reqs,
		Team:         team,
		Metadata:     meta,
		Warnings:     h.planner.RealityChecks(reqs, team),
	})
}
