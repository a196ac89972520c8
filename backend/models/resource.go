// ABOUTME: Resource planning records: weekly FTE rows, team rosters, warnings
// ABOUTME: Produced by the resource planner and returned by resource-planning endpoints

package models

// DefaultDiscipline is used for deliverables without a discipline.
const DefaultDiscipline = "General"

// PlanningDeliverable is a deliverable as seen by the resource planner.
// AdjustedHours is preferred; a zero value falls back to BaseHours.
type PlanningDeliverable struct {
	Name          string `json:"name,omitempty" yaml:"name"`
	Discipline    string `json:"discipline,omitempty" yaml:"discipline"`
	BaseHours     int    `json:"base_hours,omitempty" yaml:"base_hours" validate:"min=0"`
	AdjustedHours int    `json:"adjusted_hours,omitempty" yaml:"adjusted_hours" validate:"min=0"`
}

// Hours returns the hours the planner distributes for this deliverable.
func (d PlanningDeliverable) Hours() int {
	if d.AdjustedHours > 0 {
		return d.AdjustedHours
	}
	return d.BaseHours
}

// ResourceRequirement is one (discipline, week) row of the staffing plan.
type ResourceRequirement struct {
	Week         int      `json:"week"`
	Discipline   string   `json:"discipline"`
	HoursPerWeek int      `json:"hours"`
	FTE          float64  `json:"fte"`
	Conflicts    []string `json:"conflicts"`
}

// TeamRecommendation is one role line of a recommended roster.
type TeamRecommendation struct {
	Role        string  `json:"role"`
	Count       float64 `json:"count"`
	Utilization int     `json:"utilization"`
	Cost        float64 `json:"cost"`
}

// TeamMetadata explains how a roster was chosen.
type TeamMetadata struct {
	ProjectSize          string  `json:"project_size"`
	CoordinationOverhead float64 `json:"coordination_overhead"`
	BaseFTERequired      float64 `json:"base_fte_required"`
	TotalHours           int     `json:"total_hours"`
	AdjustedHours        int     `json:"adjusted_hours"`
	DurationWeeks        int     `json:"duration_weeks"`
}

// Severity ranks reality check warnings.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank orders severities so thresholds can be compared.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Warning is a heuristic finding about a staffing plan.
type Warning struct {
	Type           string   `json:"type"`
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Message        string   `json:"message"`
	Details        []string `json:"details,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}
