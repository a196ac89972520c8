// ABOUTME: Complexity multiplier calculation from binary project factors
// ABOUTME: Factors are additive on top of a 1.0 baseline

package services

import (
	"log/slog"

	"github.com/engestimate/estimator/backend/models"
)

// ComplexityCalculator turns active complexity factors into a multiplier.
type ComplexityCalculator struct {
	tables *Tables
}

// NewComplexityCalculator creates a calculator over the given tables.
func NewComplexityCalculator(tables *Tables) *ComplexityCalculator {
	return &ComplexityCalculator{tables: tables}
}

// Multiplier returns 1.0 plus the weight of every active known factor.
// Weights are summed in catalogue order so results are reproducible.
func (c *ComplexityCalculator) Multiplier(factors models.ComplexityFactors) float64 {
	multiplier := 1.0
	for _, name := range factors.Active() {
		weight := c.tables.FactorWeights[name]
		multiplier += weight
		slog.Debug("Applied complexity factor", "factor", name, "weight", weight, "running_total", multiplier)
	}
	slog.Debug("Total complexity multiplier", "multiplier", multiplier)
	return multiplier
}

// Factors returns the factor catalogue in display order.
func (c *ComplexityCalculator) Factors() []models.FactorInfo {
	infos := make([]models.FactorInfo, 0, len(models.AllComplexityFactors))
	for _, name := range models.AllComplexityFactors {
		weight := c.tables.FactorWeights[name]
		infos = append(infos, models.FactorInfo{
			Name:          name,
			Value:         weight,
			Description:   c.tables.FactorDescriptions[name],
			ImpactPercent: int(weight * 100),
		})
	}
	return infos
}

// ClientComplexityMultiplier maps a 1-10 client complexity rating to a
// multiplier. 5 is neutral; each step moves the result by 5%.
// Out-of-range ratings are clamped.
func ClientComplexityMultiplier(rating int) float64 {
	rating = max(1, min(10, rating))
	return round2(1.0 + float64(rating-5)*0.05)
}
