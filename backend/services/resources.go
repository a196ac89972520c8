// ABOUTME: Resource planner: weekly FTE requirements, team rosters, and reality checks
// ABOUTME: Applies ramp-up and review-cycle factors to an even weekly spread of hours

package services

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/engestimate/estimator/backend/models"
)

const (
	// Billable hours per FTE per week: 40h at 85% utilization.
	billableHoursPerFTE = hoursPerWeek * 0.85

	rampUpWeeks       = 3
	rampUpFactor      = 1.3
	reviewCycleWeeks  = 4
	reviewCycleFactor = 1.2

	lowUtilizationFTE       = 0.5
	veryLowUtilizationFTE   = 0.3
	maxLowUtilizationRows   = 5
	spikeRatio              = 1.5
	largeTeamHeadcount      = 15
	maxFractionalDetailRows = 5
)

// ResourcePlanner turns deliverable hours into staffing requirements.
type ResourcePlanner struct {
	tables *Tables
}

// NewResourcePlanner creates a planner over the given tables.
func NewResourcePlanner(tables *Tables) *ResourcePlanner {
	return &ResourcePlanner{tables: tables}
}

// CalculateFTE groups deliverable hours by discipline, spreads them evenly
// over weeks, and applies ramp-up and review-cycle factors per week.
// Rows are ordered by discipline (first seen) and then by week.
func (p *ResourcePlanner) CalculateFTE(deliverables []models.PlanningDeliverable, weeks int) ([]models.ResourceRequirement, error) {
	if weeks <= 0 {
		return nil, NewValidationError("duration weeks must be positive", "duration_weeks", weeks)
	}

	var disciplines []string
	workload := map[string]int{}
	for _, d := range deliverables {
		discipline := d.Discipline
		if discipline == "" {
			discipline = models.DefaultDiscipline
		}
		if _, seen := workload[discipline]; !seen {
			disciplines = append(disciplines, discipline)
		}
		workload[discipline] += d.Hours()
	}

	requirements := make([]models.ResourceRequirement, 0, len(disciplines)*weeks)
	for _, discipline := range disciplines {
		perWeek := float64(workload[discipline]) / float64(weeks)
		for week := 1; week <= weeks; week++ {
			actual := applyRealityFactors(perWeek, week)
			fte := actual / billableHoursPerFTE
			requirements = append(requirements, models.ResourceRequirement{
				Week:         week,
				Discipline:   discipline,
				HoursPerWeek: int(actual),
				FTE:          round2(fte),
				Conflicts:    fteConflicts(fte),
			})
		}
	}

	slog.Info("FTE requirements calculated", "disciplines", len(disciplines), "weeks", weeks, "rows", len(requirements))
	return requirements, nil
}

func applyRealityFactors(hours float64, week int) float64 {
	multiplier := 1.0
	if week <= rampUpWeeks {
		multiplier *= rampUpFactor
	}
	if week%reviewCycleWeeks == 0 {
		multiplier *= reviewCycleFactor
	}
	return hours * multiplier
}

func fteConflicts(fte float64) []string {
	conflicts := []string{}
	switch {
	case fte > 0 && fte < lowUtilizationFTE:
		conflicts = append(conflicts, fmt.Sprintf("Low utilization: %.1f FTE is inefficient", fte))
	case fte != math.Trunc(fte) && fte > 1.0:
		conflicts = append(conflicts, fmt.Sprintf("Fractional FTE: %.1f → Need to round to %d", fte, int(math.Ceil(fte))))
	}
	return conflicts
}

// RecommendTeam picks a roster tier by total hours and costs it over weeks.
func (p *ResourcePlanner) RecommendTeam(totalHours, weeks int) ([]models.TeamRecommendation, models.TeamMetadata, error) {
	if weeks <= 0 {
		return nil, models.TeamMetadata{}, NewValidationError("duration weeks must be positive", "duration_weeks", weeks)
	}
	if totalHours < 0 {
		return nil, models.TeamMetadata{}, NewValidationError("total hours must not be negative", "total_hours", totalHours)
	}

	tier := p.tierFor(totalHours)
	adjusted := float64(totalHours) * tier.CoordinationOverhead
	baseFTE := adjusted / (float64(weeks) * billableHoursPerFTE)

	recs := make([]models.TeamRecommendation, 0, len(tier.Roster))
	for _, line := range tier.Roster {
		recs = append(recs, models.TeamRecommendation{
			Role:        line.Role,
			Count:       line.Count,
			Utilization: line.Utilization,
			Cost:        line.Count * line.Rate * hoursPerWeek * float64(weeks),
		})
	}

	meta := models.TeamMetadata{
		ProjectSize:          tier.Name,
		CoordinationOverhead: tier.CoordinationOverhead,
		BaseFTERequired:      round2(baseFTE),
		TotalHours:           totalHours,
		AdjustedHours:        int(adjusted),
		DurationWeeks:        weeks,
	}
	slog.Info("Team recommended", "tier", tier.Name, "total_hours", totalHours, "weeks", weeks, "base_fte", meta.BaseFTERequired)
	return recs, meta, nil
}

func (p *ResourcePlanner) tierFor(totalHours int) TeamTier {
	for _, tier := range p.tables.TeamTiers {
		if tier.MaxHours == 0 || totalHours < tier.MaxHours {
			return tier
		}
	}
	return p.tables.TeamTiers[len(p.tables.TeamTiers)-1]
}

// RealityChecks flags fractional staffing, weekly spikes, scattered low
// utilization, and oversized teams.
func (p *ResourcePlanner) RealityChecks(requirements []models.ResourceRequirement, team []models.TeamRecommendation) []models.Warning {
	warnings := []models.Warning{}

	var fractional []models.ResourceRequirement
	for _, r := range requirements {
		if r.FTE > 1.0 && r.FTE != math.Trunc(r.FTE) {
			fractional = append(fractional, r)
		}
	}
	if len(fractional) > 0 {
		details := make([]string, 0, maxFractionalDetailRows)
		for _, r := range fractional[:min(len(fractional), maxFractionalDetailRows)] {
			details = append(details, fmt.Sprintf("Week %d (%s): %.1f FTE", r.Week, r.Discipline, r.FTE))
		}
		warnings = append(warnings, models.Warning{
			Type:     "fractional_fte",
			Severity: models.SeverityMedium,
			Title:    "Fractional FTE Requirements",
			Message: fmt.Sprintf("Found %d periods requiring fractional staffing. Consider rounding up or adjusting timeline.",
				len(fractional)),
			Details: details,
		})
	}

	if peakWeek, peak, avg, ok := weeklyPeak(requirements); ok && peak > avg*spikeRatio {
		warnings = append(warnings, models.Warning{
			Type:           "staffing_spike",
			Severity:       models.SeverityHigh,
			Title:          "Staffing Spike Detected",
			Message:        fmt.Sprintf("Week %d requires %.1f FTE (average: %.1f)", peakWeek, peak, avg),
			Recommendation: "Consider leveling workload or planning for temporary staff",
		})
	}

	lowUtil := 0
	for _, r := range requirements {
		if r.FTE > 0 && r.FTE < veryLowUtilizationFTE {
			lowUtil++
		}
	}
	if lowUtil > maxLowUtilizationRows {
		warnings = append(warnings, models.Warning{
			Type:           "low_utilization",
			Severity:       models.SeverityLow,
			Title:          "Low Utilization Periods",
			Message:        fmt.Sprintf("%d periods with <30%% utilization detected", lowUtil),
			Recommendation: "Consider consolidating work or adjusting resource assignments",
		})
	}

	var headcount float64
	for _, t := range team {
		headcount += t.Count
	}
	if headcount > largeTeamHeadcount {
		warnings = append(warnings, models.Warning{
			Type:           "large_team",
			Severity:       models.SeverityMedium,
			Title:          "Large Team Size",
			Message:        fmt.Sprintf("Recommended team size: %.0f people", headcount),
			Recommendation: "Large teams require significant coordination. Consider +25% overhead for meetings/communication.",
		})
	}

	slog.Info("Reality checks completed", "requirements", len(requirements), "warnings", len(warnings))
	return warnings
}

// weeklyPeak sums FTE per week and returns the earliest week with the
// highest total, that total, and the mean across weeks.
func weeklyPeak(requirements []models.ResourceRequirement) (week int, peak, avg float64, ok bool) {
	if len(requirements) == 0 {
		return 0, 0, 0, false
	}
	var weeks []int
	byWeek := map[int]float64{}
	for _, r := range requirements {
		if _, seen := byWeek[r.Week]; !seen {
			weeks = append(weeks, r.Week)
		}
		byWeek[r.Week] += r.FTE
	}
	var sum float64
	for i, w := range weeks {
		sum += byWeek[w]
		if i == 0 || byWeek[w] > peak {
			week, peak = w, byWeek[w]
		}
	}
	return week, peak, sum / float64(len(weeks)), true
}
