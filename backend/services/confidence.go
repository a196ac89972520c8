// ABOUTME: Confidence scoring for estimates from complexity, availability, size, and history
// ABOUTME: Maps a 0-100 score onto VERY_HIGH, HIGH, MEDIUM, and LOW levels

package services

import (
	"log/slog"

	"github.com/engestimate/estimator/backend/models"
)

// Confidence penalties.
const (
	confidenceBase               = 100.0
	confidencePerFactorPenalty   = 8.0
	confidenceAvailabilityFloor  = 80.0
	confidenceAvailabilityRate   = 0.5
	confidenceNoHistoryPenalty   = 15.0
	confidenceDefaultSizePenalty = 5.0
)

// ConfidenceScorer rates how much an estimate can be trusted.
type ConfidenceScorer struct {
	tables *Tables
}

// NewConfidenceScorer creates a scorer over the given tables.
func NewConfidenceScorer(tables *Tables) *ConfidenceScorer {
	return &ConfidenceScorer{tables: tables}
}

// Score computes the confidence for one estimate.
func (s *ConfidenceScorer) Score(factors models.ComplexityFactors, availability models.ResourceAvailability,
	size models.ProjectSize, hasHistoricalData bool) models.Confidence {
	score := confidenceBase

	active := len(factors.Active())
	score -= float64(active) * confidencePerFactorPenalty

	avg := availability.Average()
	if avg < confidenceAvailabilityFloor {
		score -= (confidenceAvailabilityFloor - avg) * confidenceAvailabilityRate
	}

	penalty, ok := s.tables.SizePenalty[size]
	if !ok {
		penalty = confidenceDefaultSizePenalty
	}
	score -= penalty

	if !hasHistoricalData {
		score -= confidenceNoHistoryPenalty
	}

	score = max(0, min(100, score))
	level := ConfidenceLevelFor(score)

	slog.Info("Confidence calculated",
		"score", score,
		"level", level,
		"factors", active,
		"availability", avg,
	)

	return models.Confidence{
		Score:               score,
		Level:               level,
		Description:         level.Description(),
		ActiveFactors:       active,
		AverageAvailability: avg,
		ProjectSize:         size,
		HasHistoricalData:   hasHistoricalData,
	}
}

// ConfidenceLevelFor buckets a score.
func ConfidenceLevelFor(score float64) models.ConfidenceLevel {
	switch {
	case score >= 95:
		return models.ConfidenceVeryHigh
	case score >= 85:
		return models.ConfidenceHigh
	case score >= 70:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
