// ABOUTME: Tests for role breakdowns and deliverable and project cost calculation
// ABOUTME: Verifies reconciliation, rate fallbacks, aggregation, and ordering

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engestimate/estimator/backend/models"
)

func intPtr(v int) *int { return &v }

func TestClassifyDeliverable(t *testing.T) {
	tables := DefaultTables()

	assert.Equal(t, models.DeliverableDrawing, tables.ClassifyDeliverable("P&IDs").Type)
	assert.Equal(t, models.DeliverableList, tables.ClassifyDeliverable("Equipment List").Type)
	assert.Equal(t, models.DeliverableCalculation, tables.ClassifyDeliverable("Foundation Design Calculations").Type)
	assert.Equal(t, models.DeliverableModel, tables.ClassifyDeliverable("3D Model").Type)
	assert.Equal(t, models.DeliverablePlanning, tables.ClassifyDeliverable("Project Execution Plan").Type)
	assert.Equal(t, models.DeliverableDocument, tables.ClassifyDeliverable("Something Bespoke").Type)
}

func TestDeliverableCatalogue_SortedByName(t *testing.T) {
	entries := DefaultTables().DeliverableCatalogue()

	require.Len(t, entries, 23)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Name, entries[i].Name)
	}
}

func TestRoleDistributions_SumToOne(t *testing.T) {
	tables := DefaultTables()

	for dt, dist := range tables.RoleDistributions {
		var sum float64
		for _, rs := range dist {
			sum += rs.Share
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "distribution %s", dt)
	}
	for size, split := range tables.TierRoleSplit {
		var sum float64
		for _, rs := range split {
			sum += rs.Share
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "tier split %s", size)
	}
}

func TestRoleBreakdown_AlwaysSumsToHours(t *testing.T) {
	tables := DefaultTables()

	for _, dt := range models.DeliverableTypes {
		for hours := 0; hours <= 500; hours++ {
			split := tables.RoleBreakdown(hours, dt)
			sum := 0
			for _, rh := range split {
				sum += rh.Hours
			}
			require.Equal(t, hours, sum, "type %s hours %d", dt, hours)
		}
	}
}

func TestRoleBreakdown_RemainderGoesToLargestShare(t *testing.T) {
	tables := DefaultTables()

	// 10h document: 4.5 rounds to 4, three 1.5 shares round to 2, 0.8 to 1.
	// Allocated 11, so the senior engineer gives one hour back.
	split := tables.RoleBreakdown(10, models.DeliverableDocument)
	assert.Equal(t, []models.RoleHours{
		{Role: models.RoleSeniorEngineer, Hours: 3},
		{Role: models.RoleLeadEngineer, Hours: 2},
		{Role: models.RoleEngineer, Hours: 2},
		{Role: models.RoleQAChecker, Hours: 2},
		{Role: models.RoleDocumentController, Hours: 1},
		{Role: models.RoleProjectManager, Hours: 0},
	}, split)

	split = tables.RoleBreakdown(3, models.DeliverableDocument)
	assert.Equal(t, 3, split[0].Hours)
}

func TestDeliverableCost_PIDs(t *testing.T) {
	calc := NewCostCalculator(DefaultTables(), nil)

	breakdown, err := calc.DeliverableCost("P&IDs", 200)
	require.NoError(t, err)

	assert.Equal(t, models.DeliverableDrawing, breakdown.DeliverableType)
	assert.Equal(t, 200, breakdown.TotalHours)

	want := map[models.Role]int{
		models.RoleDesigner:           110,
		models.RoleLeadEngineer:       30,
		models.RoleQAChecker:          30,
		models.RoleDocumentController: 20,
		models.RoleProjectManager:     10,
	}
	require.Len(t, breakdown.Roles, len(want))
	for _, rc := range breakdown.Roles {
		assert.Equal(t, want[rc.Role], rc.Hours, "hours for %s", rc.Role)
	}
	assert.Equal(t, models.RoleDesigner, breakdown.Roles[0].Role)
	assert.InDelta(t, 9350.0, breakdown.Roles[0].Cost, 1e-9)
	assert.InDelta(t, 19600.0, breakdown.TotalCost, 1e-9)
}

func TestDeliverableCost_RejectsNegativeHours(t *testing.T) {
	calc := NewCostCalculator(DefaultTables(), nil)

	_, err := calc.DeliverableCost("P&IDs", -1)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCostCalculator_CustomRatesReplaceDefaults(t *testing.T) {
	calc := NewCostCalculator(DefaultTables(), map[models.Role]float64{
		models.RoleEngineer: 120,
		models.RoleDesigner: 90,
	})

	assert.Len(t, calc.Rates(), 2)
	assert.InDelta(t, 90.0, calc.Rate(models.RoleDesigner), 1e-9)
	// Roles missing from the custom table fall back to engineer.
	assert.InDelta(t, 120.0, calc.Rate(models.RoleProjectManager), 1e-9)

	noEngineer := NewCostCalculator(DefaultTables(), map[models.Role]float64{models.RoleDesigner: 90})
	assert.InDelta(t, fallbackRate, noEngineer.Rate(models.RoleScheduler), 1e-9)
}

func TestCostCalculator_UnknownRoleUsesEngineerRate(t *testing.T) {
	calc := NewCostCalculator(DefaultTables(), nil)

	assert.InDelta(t, 100.0, calc.Rate("astronaut"), 1e-9)
	assert.InDelta(t, 160.0, calc.Rate(models.RoleProjectManager), 1e-9)
}

func TestCostCalculator_WithRateLeavesOriginalUntouched(t *testing.T) {
	calc := NewCostCalculator(DefaultTables(), nil)

	updated := calc.WithRate(models.RoleDesigner, 99)
	assert.InDelta(t, 99.0, updated.Rate(models.RoleDesigner), 1e-9)
	assert.InDelta(t, 85.0, calc.Rate(models.RoleDesigner), 1e-9)

	rates := calc.Rates()
	rates[models.RoleDesigner] = 1
	assert.InDelta(t, 85.0, calc.Rate(models.RoleDesigner), 1e-9)
}

func TestProjectCost_Aggregates(t *testing.T) {
	calc := NewCostCalculator(DefaultTables(), nil)

	report, err := calc.ProjectCost([]models.DeliverableInput{
		{Name: "P&IDs", Hours: 200},
		{Name: "Foundation Design Calculations", Hours: 80, AdjustedHours: intPtr(100)},
	})
	require.NoError(t, err)

	assert.Equal(t, 300, report.Summary.TotalHours)
	assert.InDelta(t, 29935.0, report.Summary.TotalCost, 1e-9)
	assert.Equal(t, 2, report.Summary.DeliverableCount)
	assert.InDelta(t, 99.78, report.Summary.AverageCostPerHour, 1e-9)

	require.Len(t, report.ByDeliverable, 2)
	assert.Equal(t, 100, report.ByDeliverable[1].TotalHours)
	assert.InDelta(t, 10335.0, report.ByDeliverable[1].TotalCost, 1e-9)

	roles := make([]models.Role, 0, len(report.ByRole))
	for _, rs := range report.ByRole {
		roles = append(roles, rs.Role)
	}
	assert.Equal(t, []models.Role{
		models.RoleDesigner,
		models.RoleQAChecker,
		models.RoleEngineer,
		models.RoleLeadEngineer,
		models.RoleDocumentController,
		models.RoleSeniorEngineer,
		models.RoleProjectManager,
	}, roles)
	assert.Equal(t, 110, report.ByRole[0].Hours)
	assert.InDelta(t, 36.7, report.ByRole[0].Percentage, 1e-9)
	assert.Equal(t, 50, report.ByRole[1].Hours)
	assert.InDelta(t, 4750.0, report.ByRole[1].Cost, 1e-9)
}

func TestProjectCost_EmptyAndZeroHours(t *testing.T) {
	calc := NewCostCalculator(DefaultTables(), nil)

	report, err := calc.ProjectCost(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Summary.TotalHours)
	assert.Equal(t, 0.0, report.Summary.AverageCostPerHour)
	assert.Empty(t, report.ByRole)

	report, err = calc.ProjectCost([]models.DeliverableInput{{Name: "Equipment List", Hours: 0}})
	require.NoError(t, err)
	for _, rs := range report.ByRole {
		assert.Equal(t, 0.0, rs.Percentage)
	}
}

func TestProjectCost_UnnamedDeliverable(t *testing.T) {
	calc := NewCostCalculator(DefaultTables(), nil)

	report, err := calc.ProjectCost([]models.DeliverableInput{{Hours: 40}})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", report.ByDeliverable[0].DeliverableName)
	assert.Equal(t, models.DeliverableDocument, report.ByDeliverable[0].DeliverableType)
}
