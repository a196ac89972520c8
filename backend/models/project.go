// ABOUTME: Stored project record and its latest estimate snapshot
// ABOUTME: Persisted by the store package and served by the projects API

package models

import "time"

// Project is a named engineering project tracked by the service.
type Project struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Size             ProjectSize       `json:"project_size"`
	ClientProfile    ClientProfile     `json:"client_profile,omitempty"`
	ClientComplexity int               `json:"client_complexity"`
	Archived         bool              `json:"archived"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	Estimate         *EstimateSnapshot `json:"estimate,omitempty"`
}

// EstimateSnapshot is the subset of an estimate stored on a project.
type EstimateSnapshot struct {
	BaseHours            int             `json:"base_hours"`
	ComplexityMultiplier float64         `json:"complexity_multiplier"`
	AdjustedHours        int             `json:"adjusted_hours"`
	TotalHours           int             `json:"total_hours"`
	DurationWeeks        int             `json:"duration_weeks"`
	ConfidenceLevel      ConfidenceLevel `json:"confidence_level"`
	EstimatedAt          time.Time       `json:"estimated_at"`
}

// Snapshot captures the persisted fields of r at time at.
func (r EstimationResult) Snapshot(at time.Time) EstimateSnapshot {
	return EstimateSnapshot{
		BaseHours:            r.BaseHours,
		ComplexityMultiplier: r.ComplexityMultiplier,
		AdjustedHours:        r.AdjustedHours,
		TotalHours:           r.TotalHours,
		DurationWeeks:        r.DurationWeeks,
		ConfidenceLevel:      r.ConfidenceLevel,
		EstimatedAt:          at,
	}
}
