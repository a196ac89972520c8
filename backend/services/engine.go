// ABOUTME: Estimation engine orchestrating hours, complexity, duration, and confidence
// ABOUTME: Produces a complete EstimationResult or a CalculationError, never a partial result

package services

import (
	"log/slog"

	"github.com/engestimate/estimator/backend/models"
)

// Engine runs the estimation sequence over shared reference tables.
type Engine struct {
	hours      *HoursCalculator
	complexity *ComplexityCalculator
	duration   *DurationOptimizer
	confidence *ConfidenceScorer
}

// NewEngine wires the calculators over one set of tables.
func NewEngine(tables *Tables) *Engine {
	return &Engine{
		hours:      NewHoursCalculator(tables),
		complexity: NewComplexityCalculator(tables),
		duration:   NewDurationOptimizer(tables),
		confidence: NewConfidenceScorer(tables),
	}
}

// Complexity exposes the engine's complexity calculator.
func (e *Engine) Complexity() *ComplexityCalculator { return e.complexity }

// Duration exposes the engine's duration optimizer.
func (e *Engine) Duration() *DurationOptimizer { return e.duration }

// Hours exposes the engine's hours calculator.
func (e *Engine) Hours() *HoursCalculator { return e.hours }

// Estimate computes base, adjusted, and total hours, duration, and confidence.
//
//	total = floor(base * complexity * client) + contingency + overhead
//	weeks = ceil(baseDuration * 100/availability * (1 + (complexity-1)*0.3))
func (e *Engine) Estimate(in models.EstimateInput) (models.EstimationResult, error) {
	result, err := e.estimate(in)
	if err != nil {
		slog.Error("Estimation calculation failed", "size", in.Size, "error", err)
		return models.EstimationResult{}, &CalculationError{
			Message: "Failed to calculate estimate",
			Details: map[string]any{"error": err.Error()},
			Cause:   err,
		}
	}
	return result, nil
}

func (e *Engine) estimate(in models.EstimateInput) (models.EstimationResult, error) {
	slog.Info("Starting estimation", "size", in.Size)

	if err := validateEstimateInput(in); err != nil {
		return models.EstimationResult{}, err
	}

	baseHours := in.BaseHoursOverride
	if baseHours == 0 {
		var err error
		if baseHours, err = e.hours.BaseHours(in.Size); err != nil {
			return models.EstimationResult{}, err
		}
	}

	complexityMultiplier := e.complexity.Multiplier(in.ComplexityFactors)
	clientMultiplier := ClientComplexityMultiplier(in.ClientComplexity)

	adjusted := int(float64(baseHours) * complexityMultiplier * clientMultiplier)
	contingency := int(float64(adjusted) * (in.ContingencyPercent / 100))
	overhead := int(float64(adjusted) * (in.OverheadPercent / 100))
	total := adjusted + contingency + overhead

	slog.Debug("Hours computed",
		"base_hours", baseHours,
		"complexity_multiplier", complexityMultiplier,
		"client_multiplier", clientMultiplier,
		"adjusted_hours", adjusted,
		"contingency_hours", contingency,
		"overhead_hours", overhead,
	)

	weeks := e.duration.Duration(baseHours, total, complexityMultiplier, in.Availability, in.Size)

	// TODO: pass true once completed projects record actual hours the store can match against.
	confidence := e.confidence.Score(in.ComplexityFactors, in.Availability, in.Size, false)

	slog.Info("Estimation completed", "total_hours", total, "duration_weeks", weeks, "confidence", confidence.Level)

	return models.EstimationResult{
		BaseHours:            baseHours,
		ComplexityMultiplier: complexityMultiplier,
		ClientMultiplier:     clientMultiplier,
		AdjustedHours:        adjusted,
		ContingencyHours:     contingency,
		OverheadHours:        overhead,
		TotalHours:           total,
		DurationWeeks:        weeks,
		ConfidenceScore:      confidence.Score,
		ConfidenceLevel:      confidence.Level,
		Confidence:           confidence,
		HoursByRole:          e.hours.HoursByRole(total, in.Size),
	}, nil
}

func validateEstimateInput(in models.EstimateInput) error {
	if !in.Size.Valid() {
		return NewValidationError("Invalid project size: "+string(in.Size), "valid_sizes", models.ProjectSizes)
	}
	if in.ContingencyPercent < 0 || in.ContingencyPercent > 100 {
		return NewValidationError("contingency percent must be between 0 and 100", "contingency_percent", in.ContingencyPercent)
	}
	if in.OverheadPercent < 0 || in.OverheadPercent > 100 {
		return NewValidationError("overhead percent must be between 0 and 100", "overhead_percent", in.OverheadPercent)
	}
	if in.BaseHoursOverride < 0 {
		return NewValidationError("base hours override must not be negative", "base_hours_override", in.BaseHoursOverride)
	}
	return nil
}
