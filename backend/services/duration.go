// ABOUTME: Project duration from tier, availability, and complexity
// ABOUTME: Also checks whether a team can hit a target schedule

package services

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/engestimate/estimator/backend/models"
)

const (
	hoursPerWeek = 40
	// Weight of extra complexity on schedule length.
	complexityDurationWeight = 0.3
	// Applied when average availability is zero.
	zeroAvailabilityFactor = 2.0
)

// DurationOptimizer computes schedule length and schedule feasibility.
type DurationOptimizer struct {
	hours *HoursCalculator
}

// NewDurationOptimizer creates an optimizer over the given tables.
func NewDurationOptimizer(tables *Tables) *DurationOptimizer {
	return &DurationOptimizer{hours: NewHoursCalculator(tables)}
}

// Duration returns the project length in whole weeks:
// ceil(baseDuration * 100/availability * (1 + (multiplier-1)*0.3)).
// baseHours and totalHours are accepted for callers that pass the full
// estimate context; the formula itself depends only on tier duration.
func (d *DurationOptimizer) Duration(baseHours, totalHours int, complexityMultiplier float64,
	availability models.ResourceAvailability, size models.ProjectSize) int {
	baseWeeks := d.hours.BaseDuration(size)
	avg := availability.Average()

	availabilityFactor := zeroAvailabilityFactor
	if avg > 0 {
		availabilityFactor = 100.0 / avg
	}
	impact := 1.0 + (complexityMultiplier-1.0)*complexityDurationWeight

	weeks := int(math.Ceil(float64(baseWeeks) * availabilityFactor * impact))

	slog.Info("Duration calculated",
		"base_weeks", baseWeeks,
		"availability", avg,
		"complexity_impact", impact,
		"weeks", weeks,
		"base_hours", baseHours,
		"total_hours", totalHours,
	)
	return weeks
}

// OptimizeSchedule reports whether teamSize people can deliver totalHours
// within targetWeeks at 40 hours per person per week.
func (d *DurationOptimizer) OptimizeSchedule(totalHours, teamSize, targetWeeks int) (models.ScheduleReport, error) {
	if teamSize <= 0 {
		return models.ScheduleReport{}, NewValidationError("team size must be positive", "team_size", teamSize)
	}
	if targetWeeks <= 0 {
		return models.ScheduleReport{}, NewValidationError("target duration must be positive", "target_weeks", targetWeeks)
	}

	required := float64(totalHours) / float64(targetWeeks)
	available := teamSize * hoursPerWeek
	allocation := required / float64(available) * 100
	feasible := allocation <= 100

	return models.ScheduleReport{
		TargetDurationWeeks:       targetWeeks,
		TotalHours:                totalHours,
		TeamSize:                  teamSize,
		RequiredHoursPerWeek:      round1(required),
		AvailableHoursPerWeek:     available,
		RequiredAllocationPercent: round1(allocation),
		IsFeasible:                feasible,
		Recommendation:            scheduleRecommendation(allocation, feasible),
	}, nil
}

func scheduleRecommendation(allocation float64, feasible bool) string {
	switch {
	case feasible && allocation <= 80:
		return "Schedule is feasible with current team size"
	case feasible:
		return "Schedule is tight. Consider adding buffer or reducing scope"
	default:
		extra := int(math.Ceil((allocation - 100) / 100))
		return fmt.Sprintf("Schedule requires %d additional team member(s)", extra)
	}
}
