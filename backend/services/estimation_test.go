// ABOUTME: Tests for hours, complexity, confidence, duration, and the estimation engine
// ABOUTME: Covers tier lookups, multiplier sums, clamping, and end-to-end estimates

package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engestimate/estimator/backend/models"
)

func factors(names ...string) models.ComplexityFactors {
	return models.FactorsFromNames(names)
}

func TestBaseHours_ByTier(t *testing.T) {
	calc := NewHoursCalculator(DefaultTables())

	for size, want := range map[models.ProjectSize]int{
		models.SizeSmall:  300,
		models.SizeMedium: 1200,
		models.SizeLarge:  3500,
	} {
		got, err := calc.BaseHours(size)
		require.NoError(t, err)
		assert.Equal(t, want, got, "base hours for %s", size)
	}
}

func TestBaseHours_InvalidTier(t *testing.T) {
	calc := NewHoursCalculator(DefaultTables())

	_, err := calc.BaseHours("HUGE")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "HUGE")
	assert.Contains(t, verr.Details, "valid_sizes")
}

func TestTeamSizeAndDuration_FallBackToMedium(t *testing.T) {
	calc := NewHoursCalculator(DefaultTables())

	assert.Equal(t, 3, calc.TeamSize(models.SizeSmall))
	assert.Equal(t, 8, calc.TeamSize(models.SizeLarge))
	assert.Equal(t, 5, calc.TeamSize("UNKNOWN"))
	assert.Equal(t, 32, calc.BaseDuration(models.SizeLarge))
	assert.Equal(t, 16, calc.BaseDuration("UNKNOWN"))
}

func TestHoursByRole_TruncatesShares(t *testing.T) {
	calc := NewHoursCalculator(DefaultTables())

	got := calc.HoursByRole(1001, models.SizeSmall)
	require.Len(t, got, 5)
	assert.Equal(t, models.RoleHours{Role: models.RoleEngineer, Hours: 600}, got[0])
	assert.Equal(t, models.RoleHours{Role: models.RoleTechnicalLead, Hours: 50}, got[4])

	sum := 0
	for _, rh := range got {
		sum += rh.Hours
	}
	assert.LessOrEqual(t, sum, 1001)
}

func TestDeliverableHours_ScalesTemplate(t *testing.T) {
	calc := NewHoursCalculator(DefaultTables())

	base := calc.DeliverableHours(1.0)
	assert.Equal(t, models.DeliverableHours{Create: 40, Review: 8, QA: 4, Doc: 6, Revisions: 10, PM: 4, Total: 72}, base)

	scaled := calc.DeliverableHours(1.5)
	assert.Equal(t, 60, scaled.Create)
	assert.Equal(t, 15, scaled.Revisions)
	assert.Equal(t, 60+12+6+9+15+6, scaled.Total)
}

func TestComplexityMultiplier(t *testing.T) {
	calc := NewComplexityCalculator(DefaultTables())

	tests := []struct {
		name    string
		factors models.ComplexityFactors
		want    float64
	}{
		{"none", models.ComplexityFactors{}, 1.0},
		{"nil", nil, 1.0},
		{"multidiscipline and fasttrack", factors("multidiscipline", "fasttrack"), 1.50},
		{"unknown key ignored", models.ParseComplexityFactors(map[string]bool{"unknown": true}), 1.0},
		{"false values skipped", models.ParseComplexityFactors(map[string]bool{"brownfield": false, "regulatory": true}), 1.15},
		{"all factors", factors("multidiscipline", "fasttrack", "brownfield", "regulatory", "international", "incomplete_requirements"), 2.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, calc.Multiplier(tt.factors), 1e-9)
		})
	}
}

func TestComplexityFactors_Catalogue(t *testing.T) {
	calc := NewComplexityCalculator(DefaultTables())

	infos := calc.Factors()
	require.Len(t, infos, 6)
	assert.Equal(t, models.FactorMultidiscipline, infos[0].Name)
	assert.Equal(t, "Multiple engineering disciplines involved", infos[0].Description)
	assert.Equal(t, 20, infos[0].ImpactPercent)
	assert.Equal(t, models.FactorIncompleteRequirements, infos[5].Name)
	assert.Equal(t, 35, infos[5].ImpactPercent)
}

func TestClientComplexityMultiplier(t *testing.T) {
	tests := []struct {
		rating int
		want   float64
	}{
		{5, 1.00},
		{1, 0.80},
		{10, 1.25},
		{7, 1.10},
		{0, 0.80},
		{11, 1.25},
		{-3, 0.80},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, ClientComplexityMultiplier(tt.rating), 1e-9, "rating %d", tt.rating)
	}
}

func TestConfidence(t *testing.T) {
	scorer := NewConfidenceScorer(DefaultTables())

	tests := []struct {
		name         string
		factors      models.ComplexityFactors
		availability models.ResourceAvailability
		size         models.ProjectSize
		history      bool
		wantScore    float64
		wantLevel    models.ConfidenceLevel
	}{
		{"small defaults", nil, nil, models.SizeSmall, false, 85, models.ConfidenceHigh},
		{"small with history", nil, nil, models.SizeSmall, true, 100, models.ConfidenceVeryHigh},
		{"medium defaults", nil, nil, models.SizeMedium, false, 80, models.ConfidenceMedium},
		{"low availability", factors("multidiscipline", "fasttrack", "brownfield"), models.ResourceAvailability{"eng": 60}, models.SizeLarge, false, 41, models.ConfidenceLow},
		{"clamped at zero", factors("multidiscipline", "fasttrack", "brownfield", "regulatory", "international", "incomplete_requirements"), models.ResourceAvailability{"eng": 0}, models.SizeLarge, false, 0, models.ConfidenceLow},
		{"unknown size penalized as medium", nil, nil, "HUGE", true, 95, models.ConfidenceVeryHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.factors, tt.availability, tt.size, tt.history)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantLevel.Description(), got.Description)
			assert.Equal(t, tt.history, got.HasHistoricalData)
		})
	}
}

func TestConfidenceLevelFor_Boundaries(t *testing.T) {
	assert.Equal(t, models.ConfidenceVeryHigh, ConfidenceLevelFor(95))
	assert.Equal(t, models.ConfidenceHigh, ConfidenceLevelFor(94.99))
	assert.Equal(t, models.ConfidenceHigh, ConfidenceLevelFor(85))
	assert.Equal(t, models.ConfidenceMedium, ConfidenceLevelFor(70))
	assert.Equal(t, models.ConfidenceLow, ConfidenceLevelFor(69.9))
}

func TestDuration(t *testing.T) {
	opt := NewDurationOptimizer(DefaultTables())

	tests := []struct {
		name         string
		multiplier   float64
		availability models.ResourceAvailability
		size         models.ProjectSize
		want         int
	}{
		{"small defaults", 1.0, nil, models.SizeSmall, 10},
		{"large defaults", 1.0, nil, models.SizeLarge, 40},
		{"medium half availability", 1.0, models.ResourceAvailability{"a": 50}, models.SizeMedium, 32},
		{"medium complex", 1.5, nil, models.SizeMedium, 23},
		{"zero availability doubles", 1.0, models.ResourceAvailability{"a": 0}, models.SizeSmall, 16},
		{"out of range entries ignored", 1.0, models.ResourceAvailability{"a": 150, "b": -5}, models.SizeSmall, 10},
		{"rounds up", 1.5, models.ResourceAvailability{"a": 60}, models.SizeLarge, 62},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, opt.Duration(0, 0, tt.multiplier, tt.availability, tt.size))
		})
	}
}

func TestOptimizeSchedule(t *testing.T) {
	opt := NewDurationOptimizer(DefaultTables())

	tests := []struct {
		name           string
		hours          int
		team           int
		weeks          int
		wantAllocation float64
		wantFeasible   bool
		wantRec        string
	}{
		{"comfortable", 1000, 5, 10, 50, true, "Schedule is feasible with current team size"},
		{"tight", 1800, 5, 10, 90, true, "Schedule is tight. Consider adding buffer or reducing scope"},
		{"exactly full", 2000, 5, 10, 100, true, "Schedule is tight. Consider adding buffer or reducing scope"},
		{"one short", 3000, 5, 10, 150, false, "Schedule requires 1 additional team member(s)"},
		{"two short", 5000, 5, 10, 250, false, "Schedule requires 2 additional team member(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := opt.OptimizeSchedule(tt.hours, tt.team, tt.weeks)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantAllocation, report.RequiredAllocationPercent, 1e-9)
			assert.Equal(t, tt.wantFeasible, report.IsFeasible)
			assert.Equal(t, tt.wantRec, report.Recommendation)
			assert.Equal(t, tt.team*40, report.AvailableHoursPerWeek)
		})
	}
}

func TestOptimizeSchedule_RejectsNonPositiveInputs(t *testing.T) {
	opt := NewDurationOptimizer(DefaultTables())

	_, err := opt.OptimizeSchedule(100, 0, 10)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = opt.OptimizeSchedule(100, 2, 0)
	assert.ErrorAs(t, err, &verr)
}

func TestEngine_MediumScenario(t *testing.T) {
	engine := NewEngine(DefaultTables())

	result, err := engine.Estimate(models.EstimateInput{
		Size:               models.SizeMedium,
		ComplexityFactors:  factors("multidiscipline", "fasttrack"),
		ContingencyPercent: 15,
		OverheadPercent:    10,
		ClientComplexity:   5,
	})
	require.NoError(t, err)

	assert.Equal(t, 1200, result.BaseHours)
	assert.InDelta(t, 1.50, result.ComplexityMultiplier, 1e-9)
	assert.InDelta(t, 1.00, result.ClientMultiplier, 1e-9)
	assert.Equal(t, 1800, result.AdjustedHours)
	assert.Equal(t, 270, result.ContingencyHours)
	assert.Equal(t, 180, result.OverheadHours)
	assert.Equal(t, 2250, result.TotalHours)
	assert.Equal(t, 23, result.DurationWeeks)
	assert.InDelta(t, 64, result.ConfidenceScore, 1e-9)
	assert.Equal(t, models.ConfidenceLow, result.ConfidenceLevel)
	assert.False(t, result.Confidence.HasHistoricalData)
	assert.Len(t, result.HoursByRole, 5)
}

func TestEngine_BaseHoursOverrideAndClientComplexity(t *testing.T) {
	engine := NewEngine(DefaultTables())

	result, err := engine.Estimate(models.EstimateInput{
		Size:               models.SizeSmall,
		BaseHoursOverride:  500,
		ContingencyPercent: 15,
		OverheadPercent:    10,
		ClientComplexity:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, 500, result.BaseHours)
	assert.Equal(t, 400, result.AdjustedHours)
	assert.Equal(t, 60, result.ContingencyHours)
	assert.Equal(t, 40, result.OverheadHours)
	assert.Equal(t, 500, result.TotalHours)
	assert.Equal(t, 10, result.DurationWeeks)
}

func TestEngine_TotalIsSumOfParts(t *testing.T) {
	engine := NewEngine(DefaultTables())

	for _, size := range models.ProjectSizes {
		for rating := 1; rating <= 10; rating++ {
			result, err := engine.Estimate(models.EstimateInput{
				Size:               size,
				ComplexityFactors:  factors("brownfield", "international"),
				ContingencyPercent: 12.5,
				OverheadPercent:    7,
				ClientComplexity:   rating,
			})
			require.NoError(t, err)
			assert.Equal(t, result.AdjustedHours+result.ContingencyHours+result.OverheadHours, result.TotalHours)
			assert.GreaterOrEqual(t, result.ComplexityMultiplier, 1.0)
		}
	}
}

func TestEngine_InvalidTierWrapsValidationError(t *testing.T) {
	engine := NewEngine(DefaultTables())

	_, err := engine.Estimate(models.EstimateInput{Size: "HUGE", ClientComplexity: 5})
	require.Error(t, err)

	var calcErr *CalculationError
	require.ErrorAs(t, err, &calcErr)
	assert.Equal(t, "Failed to calculate estimate", calcErr.Message)
	assert.Contains(t, calcErr.Details, "error")

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr), "cause should be reachable with errors.As")
}

func TestEngine_RejectsOutOfRangePercentages(t *testing.T) {
	engine := NewEngine(DefaultTables())

	_, err := engine.Estimate(models.EstimateInput{Size: models.SizeSmall, ContingencyPercent: 120})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = engine.Estimate(models.EstimateInput{Size: models.SizeSmall, OverheadPercent: -1})
	assert.ErrorAs(t, err, &verr)
}

func TestProfileMultiplier_Legacy(t *testing.T) {
	tables := DefaultTables()

	assert.InDelta(t, 1.40, tables.ProfileMultiplier(models.ClientTypeA), 1e-9)
	assert.InDelta(t, 0.85, tables.ProfileMultiplier(models.ClientTypeC), 1e-9)
	assert.InDelta(t, 1.0, tables.ProfileMultiplier(""), 1e-9)
}
