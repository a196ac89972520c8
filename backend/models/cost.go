// ABOUTME: Roles, deliverable types, and cost breakdown records
// ABOUTME: Used by the cost calculator and the calculate-costs endpoint

package models

// Role is a labor category used in hour and cost breakdowns.
type Role string

const (
	RoleLeadEngineer       Role = "lead_engineer"
	RoleSeniorEngineer     Role = "senior_engineer"
	RoleEngineer           Role = "engineer"
	RoleDesigner           Role = "designer"
	RoleQAChecker          Role = "qa_checker"
	RoleTechnicalReviewer  Role = "technical_reviewer"
	RoleDocumentController Role = "document_controller"
	RoleProjectManager     Role = "project_manager"
	RoleCADTechnician      Role = "cad_technician"
	RoleCostEstimator      Role = "cost_estimator"
	RoleScheduler          Role = "scheduler"

	// Roles used only by the tier-level hour split.
	RoleQAReviewer    Role = "qa_reviewer"
	RoleTechnicalLead Role = "technical_lead"
)

// DeliverableType classifies a deliverable for role distribution.
type DeliverableType string

const (
	DeliverableDrawing     DeliverableType = "drawing"
	DeliverableCalculation DeliverableType = "calculation"
	DeliverableDocument    DeliverableType = "document"
	DeliverableList        DeliverableType = "list"
	DeliverableModel       DeliverableType = "model"
	DeliverablePlanning    DeliverableType = "planning"
)

// DeliverableTypes lists every type in display order.
var DeliverableTypes = []DeliverableType{
	DeliverableDrawing,
	DeliverableCalculation,
	DeliverableDocument,
	DeliverableList,
	DeliverableModel,
	DeliverablePlanning,
}

// RoleCost is the hours and cost one role contributes to a deliverable.
type RoleCost struct {
	Role  Role    `json:"role"`
	Hours int     `json:"hours"`
	Rate  float64 `json:"rate"`
	Cost  float64 `json:"cost"`
}

// CostBreakdown is the costed role split of a single deliverable.
type CostBreakdown struct {
	DeliverableName string          `json:"deliverable_name"`
	DeliverableType DeliverableType `json:"deliverable_type"`
	TotalHours      int             `json:"total_hours"`
	TotalCost       float64         `json:"total_cost"`
	Roles           []RoleCost      `json:"role_breakdown"`
}

// DeliverableInput is one deliverable submitted for project costing.
// AdjustedHours takes precedence over Hours when present.
type DeliverableInput struct {
	Name          string `json:"name" yaml:"name" validate:"required"`
	Hours         int    `json:"hours" yaml:"hours" validate:"min=0"`
	AdjustedHours *int   `json:"adjusted_hours,omitempty" yaml:"adjusted_hours,omitempty" validate:"omitempty,min=0"`
}

// EffectiveHours returns AdjustedHours when set, otherwise Hours.
func (d DeliverableInput) EffectiveHours() int {
	if d.AdjustedHours != nil {
		return *d.AdjustedHours
	}
	return d.Hours
}

// RoleSummary aggregates one role across a project.
type RoleSummary struct {
	Role       Role    `json:"role"`
	Hours      int     `json:"hours"`
	Cost       float64 `json:"cost"`
	Percentage float64 `json:"percentage"`
}

// CostSummary holds project totals.
type CostSummary struct {
	TotalHours         int     `json:"total_hours"`
	TotalCost          float64 `json:"total_cost"`
	DeliverableCount   int     `json:"deliverable_count"`
	AverageCostPerHour float64 `json:"average_cost_per_hour"`
}

// ProjectCost is the full cost report across a set of deliverables.
type ProjectCost struct {
	Summary       CostSummary     `json:"summary"`
	ByRole        []RoleSummary   `json:"by_role"`
	ByDeliverable []CostBreakdown `json:"by_deliverable"`
}
