// ABOUTME: API request bodies with validation tags
// ABOUTME: Validated with go-playground/validator before reaching the services

package models

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultPlanningWeeks is used when a planning request omits its duration.
const DefaultPlanningWeeks = 12

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks v against its struct tags. On failure it returns the
// offending fields keyed by JSON-ish name with the failed rule as value.
func Validate(v any) (map[string]any, error) {
	err := validate.Struct(v)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fieldPath(fe.Namespace())] = rule
	}
	return fields, errors.New("request validation failed")
}

// fieldPath drops the top-level struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// EstimateRequest is the body of a quick estimate.
type EstimateRequest struct {
	ProjectSize          string             `json:"project_size" validate:"required,oneof=SMALL MEDIUM LARGE small medium large"`
	ComplexityFactors    map[string]bool    `json:"complexity_factors"`
	ClientProfile        ClientProfile      `json:"client_profile" validate:"omitempty,oneof=TYPE_A TYPE_B TYPE_C NEW_CLIENT"`
	ResourceAvailability map[string]float64 `json:"resource_availability"`
	ContingencyPercent   *float64           `json:"contingency_percent" validate:"omitempty,min=0,max=100"`
	OverheadPercent      *float64           `json:"overhead_percent" validate:"omitempty,min=0,max=100"`
	BaseHoursOverride    *int               `json:"base_hours_override" validate:"omitempty,min=0"`
	ClientComplexity     *int               `json:"client_complexity" validate:"omitempty,min=1,max=10"`
}

// ToInput converts the request into engine input, filling unset
// percentages from the supplied defaults.
func (r EstimateRequest) ToInput(contingency, overhead float64) EstimateInput {
	size, _ := ParseProjectSize(r.ProjectSize)
	in := EstimateInput{
		Size:               size,
		ComplexityFactors:  ParseComplexityFactors(r.ComplexityFactors),
		ClientProfile:      r.ClientProfile,
		Availability:       ResourceAvailability(r.ResourceAvailability),
		ContingencyPercent: contingency,
		OverheadPercent:    overhead,
		ClientComplexity:   DefaultClientComplexity,
	}
	if r.ContingencyPercent != nil {
		in.ContingencyPercent = *r.ContingencyPercent
	}
	if r.OverheadPercent != nil {
		in.OverheadPercent = *r.OverheadPercent
	}
	if r.BaseHoursOverride != nil {
		in.BaseHoursOverride = *r.BaseHoursOverride
	}
	if r.ClientComplexity != nil {
		in.ClientComplexity = *r.ClientComplexity
	}
	return in
}

// ProjectEstimateRequest estimates a stored project. Size and client
// attributes come from the project record.
type ProjectEstimateRequest struct {
	ComplexityFactors    map[string]bool    `json:"complexity_factors"`
	ResourceAvailability map[string]float64 `json:"resource_availability"`
	ContingencyPercent   *float64           `json:"contingency_percent" validate:"omitempty,min=0,max=100"`
	OverheadPercent      *float64           `json:"overhead_percent" validate:"omitempty,min=0,max=100"`
	BaseHoursOverride    *int               `json:"base_hours_override" validate:"omitempty,min=0"`
}

// ForProject merges the request with the stored project attributes.
func (r ProjectEstimateRequest) ForProject(p Project) EstimateRequest {
	complexity := p.ClientComplexity
	return EstimateRequest{
		ProjectSize:          string(p.Size),
		ComplexityFactors:    r.ComplexityFactors,
		ClientProfile:        p.ClientProfile,
		ResourceAvailability: r.ResourceAvailability,
		ContingencyPercent:   r.ContingencyPercent,
		OverheadPercent:      r.OverheadPercent,
		BaseHoursOverride:    r.BaseHoursOverride,
		ClientComplexity:     &complexity,
	}
}

// ScheduleRequest asks whether a team can deliver hours within a target.
type ScheduleRequest struct {
	TotalHours  int `json:"total_hours" validate:"min=0"`
	TeamSize    int `json:"team_size" validate:"required,min=1"`
	TargetWeeks int `json:"target_weeks" validate:"required,min=1"`
}

// CostRequest prices a set of deliverables.
type CostRequest struct {
	Deliverables  []DeliverableInput `json:"deliverables" validate:"required,min=1,dive"`
	CustomRates   map[Role]float64   `json:"custom_rates,omitempty" validate:"dive,gt=0"`
	// RateOverrides adjusts single roles on top of the active rate table.
	RateOverrides map[Role]float64   `json:"rate_overrides,omitempty" validate:"dive,gt=0"`
}

// FTERequest spreads deliverable hours across weeks.
type FTERequest struct {
	Deliverables  []PlanningDeliverable `json:"deliverables" validate:"dive"`
	DurationWeeks int                   `json:"duration_weeks" validate:"omitempty,min=1,max=520"`
}

// Weeks returns the requested duration or the default.
func (r FTERequest) Weeks() int {
	if r.DurationWeeks == 0 {
		return DefaultPlanningWeeks
	}
	return r.DurationWeeks
}

// TeamRequest asks for a roster for a total hour budget.
type TeamRequest struct {
	TotalHours    int `json:"total_hours" validate:"min=0"`
	DurationWeeks int `json:"duration_weeks" validate:"omitempty,min=1,max=520"`
}

// Weeks returns the requested duration or the default.
func (r TeamRequest) Weeks() int {
	if r.DurationWeeks == 0 {
		return DefaultPlanningWeeks
	}
	return r.DurationWeeks
}

// RealityCheckRequest runs the staffing heuristics over a plan.
type RealityCheckRequest struct {
	Deliverables  []PlanningDeliverable `json:"deliverables" validate:"dive"`
	DurationWeeks int                   `json:"duration_weeks" validate:"omitempty,min=1,max=520"`
	TotalHours    int                   `json:"total_hours" validate:"min=0"`
}

// Weeks returns the requested duration or the default.
func (r RealityCheckRequest) Weeks() int {
	if r.DurationWeeks == 0 {
		return DefaultPlanningWeeks
	}
	return r.DurationWeeks
}

// CreateProjectRequest registers a project for later estimation.
type CreateProjectRequest struct {
	Name             string        `json:"name" validate:"required,max=200"`
	ProjectSize      string        `json:"project_size" validate:"required,oneof=SMALL MEDIUM LARGE small medium large"`
	ClientProfile    ClientProfile `json:"client_profile" validate:"omitempty,oneof=TYPE_A TYPE_B TYPE_C NEW_CLIENT"`
	ClientComplexity *int          `json:"client_complexity" validate:"omitempty,min=1,max=10"`
}
