// ABOUTME: Role-based cost calculation for deliverables and whole projects
// ABOUTME: Applies hourly rates to role hour breakdowns and aggregates by role

package services

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/engestimate/estimator/backend/models"
)

// fallbackRate applies when neither the role nor engineer has a rate.
const fallbackRate = 100.0

// CostCalculator prices deliverables against a rate table.
type CostCalculator struct {
	tables *Tables
	rates  map[models.Role]float64
}

// NewCostCalculator creates a calculator. A non-empty customRates replaces
// the default rate table entirely.
func NewCostCalculator(tables *Tables, customRates map[models.Role]float64) *CostCalculator {
	rates := maps.Clone(tables.RoleRates)
	if len(customRates) > 0 {
		rates = maps.Clone(customRates)
	}
	slog.Debug("Cost calculator initialized", "rates", len(rates), "custom", len(customRates) > 0)
	return &CostCalculator{tables: tables, rates: rates}
}

// Rates returns a copy of the active rate table.
func (c *CostCalculator) Rates() map[models.Role]float64 {
	return maps.Clone(c.rates)
}

// WithRate returns a calculator that differs only in the rate for role.
func (c *CostCalculator) WithRate(role models.Role, rate float64) *CostCalculator {
	rates := maps.Clone(c.rates)
	rates[role] = rate
	slog.Debug("Role rate overridden", "role", role, "rate", rate)
	return &CostCalculator{tables: c.tables, rates: rates}
}

// Rate returns the hourly rate for role, falling back to the engineer rate.
func (c *CostCalculator) Rate(role models.Role) float64 {
	if r, ok := c.rates[role]; ok {
		return r
	}
	if r, ok := c.rates[models.RoleEngineer]; ok {
		return r
	}
	return fallbackRate
}

// DeliverableCost breaks a deliverable's hours down by role and prices each role.
func (c *CostCalculator) DeliverableCost(name string, hours int) (models.CostBreakdown, error) {
	if hours < 0 {
		return models.CostBreakdown{}, NewValidationError("hours must not be negative",
			"deliverable", name, "hours", hours)
	}

	info := c.tables.ClassifyDeliverable(name)
	split := c.tables.RoleBreakdown(hours, info.Type)

	roles := make([]models.RoleCost, 0, len(split))
	var total float64
	for _, rh := range split {
		rate := c.Rate(rh.Role)
		cost := float64(rh.Hours) * rate
		roles = append(roles, models.RoleCost{
			Role:  rh.Role,
			Hours: rh.Hours,
			Rate:  rate,
			Cost:  round2(cost),
		})
		total += cost
	}

	slog.Debug("Calculated deliverable cost", "deliverable", name, "type", info.Type, "hours", hours, "cost", total)

	return models.CostBreakdown{
		DeliverableName: name,
		DeliverableType: info.Type,
		TotalHours:      hours,
		TotalCost:       round2(total),
		Roles:           roles,
	}, nil
}

// ProjectCost prices every deliverable and aggregates hours and cost by role.
func (c *CostCalculator) ProjectCost(deliverables []models.DeliverableInput) (models.ProjectCost, error) {
	report := models.ProjectCost{
		ByRole:        []models.RoleSummary{},
		ByDeliverable: make([]models.CostBreakdown, 0, len(deliverables)),
	}

	var totalCost float64
	totalHours := 0
	roleHours := map[models.Role]int{}
	roleCost := map[models.Role]float64{}
	var roleOrder []models.Role

	for _, d := range deliverables {
		name := d.Name
		if name == "" {
			name = "Unknown"
		}
		breakdown, err := c.DeliverableCost(name, d.EffectiveHours())
		if err != nil {
			return models.ProjectCost{}, err
		}
		report.ByDeliverable = append(report.ByDeliverable, breakdown)
		totalHours += breakdown.TotalHours
		totalCost += breakdown.TotalCost

		for _, rc := range breakdown.Roles {
			if _, seen := roleHours[rc.Role]; !seen {
				roleOrder = append(roleOrder, rc.Role)
			}
			roleHours[rc.Role] += rc.Hours
			roleCost[rc.Role] += rc.Cost
		}
	}

	for _, role := range roleOrder {
		pct := 0.0
		if totalHours > 0 {
			pct = float64(roleHours[role]) / float64(totalHours) * 100
		}
		report.ByRole = append(report.ByRole, models.RoleSummary{
			Role:       role,
			Hours:      roleHours[role],
			Cost:       round2(roleCost[role]),
			Percentage: round1(pct),
		})
	}
	slices.SortStableFunc(report.ByRole, func(a, b models.RoleSummary) int {
		return b.Hours - a.Hours
	})

	avg := 0.0
	if totalHours > 0 {
		avg = round2(totalCost / float64(totalHours))
	}
	report.Summary = models.CostSummary{
		TotalHours:         totalHours,
		TotalCost:          round2(totalCost),
		DeliverableCount:   len(deliverables),
		AverageCostPerHour: avg,
	}

	slog.Info("Project cost calculated",
		"deliverables", len(deliverables),
		"total_hours", totalHours,
		"total_cost", report.Summary.TotalCost,
	)
	return report, nil
}
