// ABOUTME: HTTP handlers for estimation endpoints
// ABOUTME: Factor catalogue, rate tables, quick estimates, schedules, and costs

package handlers

import (
	"log/slog"
	"maps"
	"net/http"

	"github.com/engestimate/estimator/backend/models"
	"github.com/engestimate/estimator/backend/services"
)

const (
	factorsCacheKey = "catalogue:factors"
	ratesCacheKey   = "catalogue:rates"
)

// FactorsResponse lists the complexity factors and confidence levels.
type FactorsResponse struct {
	Factors          []models.FactorInfo `json:"factors"`
	ConfidenceLevels []ConfidenceLevel   `json:"confidence_levels"`
}

// ConfidenceLevel describes one confidence band.
type ConfidenceLevel struct {
	Level       models.ConfidenceLevel `json:"level"`
	Description string                 `json:"description"`
}

// RatesResponse lists default rates and the deliverable catalogue.
type RatesResponse struct {
	Rates                    map[models.Role]float64          `json:"rates"`
	DeliverableTypes         []models.DeliverableType         `json:"deliverable_types"`
	Deliverables             []services.CatalogueEntry        `json:"deliverables"`
	ClientProfileMultipliers map[models.ClientProfile]float64 `json:"client_profile_multipliers"`
}

// QuickEstimateResponse is an estimate plus the per-deliverable activity template.
type QuickEstimateResponse struct {
	models.EstimationResult
	DeliverableTemplate models.DeliverableHours `json:"deliverable_template"`
	RecommendedTeamSize int                     `json:"recommended_team_size"`
}

// ComplexityFactors returns the factor catalogue.
func (h *Handler) ComplexityFactors(w http.ResponseWriter, r *http.Request) {
	resp, err := h.cache.GetOrLoad(factorsCacheKey, func() (any, error) {
		levels := []models.ConfidenceLevel{
			models.ConfidenceVeryHigh, models.ConfidenceHigh, models.ConfidenceMedium, models.ConfidenceLow,
		}
		out := FactorsResponse{Factors: h.engine.Complexity().Factors()}
		for _, l := range levels {
			out.ConfidenceLevels = append(out.ConfidenceLevels, ConfidenceLevel{Level: l, Description: l.Description()})
		}
		return out, nil
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Rates returns default role rates and the deliverable catalogue.
func (h *Handler) Rates(w http.ResponseWriter, r *http.Request) {
	resp, err := h.cache.GetOrLoad(ratesCacheKey, func() (any, error) {
		return RatesResponse{
			Rates:                    h.costs.Rates(),
			DeliverableTypes:         models.DeliverableTypes,
			Deliverables:             h.tables.DeliverableCatalogue(),
			ClientProfileMultipliers: maps.Clone(h.tables.ProfileMultipliers),
		}, nil
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// QuickEstimate runs the estimation engine without persisting anything.
func (h *Handler) QuickEstimate(w http.ResponseWriter, r *http.Request) {
	var req models.EstimateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.engine.Estimate(req.ToInput(h.cfg.DefaultContingencyPct, h.cfg.DefaultOverheadPct))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	size, _ := models.ParseProjectSize(req.ProjectSize)
	h.writeJSON(w, http.StatusOK, QuickEstimateResponse{
		EstimationResult:    result,
		DeliverableTemplate: h.engine.Hours().DeliverableHours(result.ComplexityMultiplier),
		RecommendedTeamSize: h.engine.Hours().TeamSize(size),
	})
}

// Schedule checks whether a team can deliver hours within a target duration.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	report, err := h.engine.Duration().OptimizeSchedule(req.TotalHours, req.TeamSize, req.TargetWeeks)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// CalculateCosts prices deliverables by role, optionally with custom rates.
func (h *Handler) CalculateCosts(w http.ResponseWriter, r *http.Request) {
	var req models.CostRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	calc := h.costs
	if len(req.CustomRates) > 0 {
		calc = services.NewCostCalculator(h.tables, req.CustomRates)
	}
	for role, rate := range req.RateOverrides {
		calc = calc.WithRate(role, rate)
	}

	result, err := calc.ProjectCost(req.Deliverables)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	slog.Debug("Costs calculated", "deliverables", len(req.Deliverables), "custom_rates", len(req.CustomRates) > 0, "overrides", len(req.RateOverrides))
	h.writeJSON(w, http.StatusOK, result)
}
