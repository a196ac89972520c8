// ABOUTME: Hours lookups by project size tier and role split of total hours
// ABOUTME: Also provides the per-deliverable activity hour template

package services

import (
	"log/slog"

	"github.com/engestimate/estimator/backend/models"
)

// HoursCalculator answers tier lookups for hours, team size, and duration.
type HoursCalculator struct {
	tables *Tables
}

// NewHoursCalculator creates a calculator over the given tables.
func NewHoursCalculator(tables *Tables) *HoursCalculator {
	return &HoursCalculator{tables: tables}
}

// BaseHours returns the template effort for a tier.
func (c *HoursCalculator) BaseHours(size models.ProjectSize) (int, error) {
	hours, ok := c.tables.BaseHours[size]
	if !ok {
		return 0, NewValidationError("Invalid project size: "+string(size),
			"valid_sizes", models.ProjectSizes)
	}
	slog.Debug("Base hours", "size", size, "hours", hours)
	return hours, nil
}

// TeamSize returns the recommended headcount for a tier.
// Unknown tiers get the MEDIUM value.
func (c *HoursCalculator) TeamSize(size models.ProjectSize) int {
	if n, ok := c.tables.TeamSize[size]; ok {
		return n
	}
	return c.tables.TeamSize[models.SizeMedium]
}

// BaseDuration returns the template duration in weeks for a tier.
// Unknown tiers get the MEDIUM value.
func (c *HoursCalculator) BaseDuration(size models.ProjectSize) int {
	if w, ok := c.tables.BaseDuration[size]; ok {
		return w
	}
	return c.tables.BaseDuration[models.SizeMedium]
}

// HoursByRole splits total hours across the tier's five roles, truncating
// each share. The parts may sum to slightly less than total.
func (c *HoursCalculator) HoursByRole(total int, size models.ProjectSize) []models.RoleHours {
	split, ok := c.tables.TierRoleSplit[size]
	if !ok {
		split = c.tables.TierRoleSplit[models.SizeMedium]
	}
	out := make([]models.RoleHours, 0, len(split))
	for _, rs := range split {
		out = append(out, models.RoleHours{Role: rs.Role, Hours: int(float64(total) * rs.Share)})
	}
	slog.Debug("Hours by role", "size", size, "total", total, "breakdown", out)
	return out
}

// Activity hours for a single deliverable at complexity 1.0.
const (
	deliverableCreateHours   = 40
	deliverableReviewHours   = 8
	deliverableQAHours       = 4
	deliverableDocHours      = 6
	deliverableRevisionHours = 10
	deliverablePMHours       = 4
)

// DeliverableHours scales the activity template by complexity, truncating each activity.
func (c *HoursCalculator) DeliverableHours(complexity float64) models.DeliverableHours {
	h := models.DeliverableHours{
		Create:    int(deliverableCreateHours * complexity),
		Review:    int(deliverableReviewHours * complexity),
		QA:        int(deliverableQAHours * complexity),
		Doc:       int(deliverableDocHours * complexity),
		Revisions: int(deliverableRevisionHours * complexity),
		PM:        int(deliverablePMHours * complexity),
	}
	h.Total = h.Create + h.Review + h.QA + h.Doc + h.Revisions + h.PM
	return h
}
