// ABOUTME: Tests for request validation and request-to-input conversion
// ABOUTME: Exercises validator tags on estimate, cost, and planning requests

package models

import (
	"testing"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestValidate_EstimateRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       EstimateRequest
		wantField string
	}{
		{"valid minimal", EstimateRequest{ProjectSize: "SMALL"}, ""},
		{"lowercase size", EstimateRequest{ProjectSize: "large"}, ""},
		{"missing size", EstimateRequest{}, "ProjectSize"},
		{"bad size", EstimateRequest{ProjectSize: "HUGE"}, "ProjectSize"},
		{"contingency over 100", EstimateRequest{ProjectSize: "SMALL", ContingencyPercent: floatPtr(101)}, "ContingencyPercent"},
		{"negative overhead", EstimateRequest{ProjectSize: "SMALL", OverheadPercent: floatPtr(-5)}, "OverheadPercent"},
		{"client complexity 11", EstimateRequest{ProjectSize: "SMALL", ClientComplexity: intPtr(11)}, "ClientComplexity"},
		{"availability out of range left to the core", EstimateRequest{ProjectSize: "SMALL", ResourceAvailability: map[string]float64{"eng": 120, "qa": -5}}, ""},
		{"bad profile", EstimateRequest{ProjectSize: "SMALL", ClientProfile: "TYPE_Z"}, "ClientProfile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := Validate(tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v (%v)", err, fields)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected validation error for %s", tt.wantField)
			}
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("Expected field %s in %v", tt.wantField, fields)
			}
		})
	}
}

func TestEstimateRequest_ToInputAppliesDefaults(t *testing.T) {
	req := EstimateRequest{
		ProjectSize:       "medium",
		ComplexityFactors: map[string]bool{"fasttrack": true, "bogus": true},
	}

	in := req.ToInput(15, 10)

	if in.Size != SizeMedium {
		t.Errorf("Expected MEDIUM, got %s", in.Size)
	}
	if in.ContingencyPercent != 15 || in.OverheadPercent != 10 {
		t.Errorf("Expected default percentages 15/10, got %v/%v", in.ContingencyPercent, in.OverheadPercent)
	}
	if in.ClientComplexity != DefaultClientComplexity {
		t.Errorf("Expected default client complexity, got %d", in.ClientComplexity)
	}
	if len(in.ComplexityFactors) != 1 || !in.ComplexityFactors[FactorFasttrack] {
		t.Errorf("Expected only fasttrack active, got %v", in.ComplexityFactors)
	}
}

func TestEstimateRequest_ToInputHonorsOverrides(t *testing.T) {
	req := EstimateRequest{
		ProjectSize:        "SMALL",
		ContingencyPercent: floatPtr(0),
		OverheadPercent:    floatPtr(20),
		BaseHoursOverride:  intPtr(450),
		ClientComplexity:   intPtr(8),
	}

	in := req.ToInput(15, 10)

	if in.ContingencyPercent != 0 {
		t.Errorf("Expected explicit zero contingency, got %v", in.ContingencyPercent)
	}
	if in.OverheadPercent != 20 {
		t.Errorf("Expected overhead 20, got %v", in.OverheadPercent)
	}
	if in.BaseHoursOverride != 450 {
		t.Errorf("Expected override 450, got %d", in.BaseHoursOverride)
	}
	if in.ClientComplexity != 8 {
		t.Errorf("Expected client complexity 8, got %d", in.ClientComplexity)
	}
}

func TestProjectEstimateRequest_ForProject(t *testing.T) {
	p := Project{Size: SizeLarge, ClientProfile: ClientTypeA, ClientComplexity: 7}
	req := ProjectEstimateRequest{ComplexityFactors: map[string]bool{"regulatory": true}}

	merged := req.ForProject(p)

	if merged.ProjectSize != "LARGE" {
		t.Errorf("Expected LARGE, got %s", merged.ProjectSize)
	}
	if merged.ClientProfile != ClientTypeA {
		t.Errorf("Expected TYPE_A, got %s", merged.ClientProfile)
	}
	if merged.ClientComplexity == nil || *merged.ClientComplexity != 7 {
		t.Errorf("Expected client complexity 7, got %v", merged.ClientComplexity)
	}
}

func TestValidate_CostRequest(t *testing.T) {
	if _, err := Validate(CostRequest{}); err == nil {
		t.Error("Expected error for empty deliverables")
	}

	fields, err := Validate(CostRequest{Deliverables: []DeliverableInput{{Name: "", Hours: 10}}})
	if err == nil {
		t.Fatal("Expected error for unnamed deliverable")
	}
	if _, ok := fields["Deliverables[0].Name"]; !ok {
		t.Errorf("Expected Deliverables[0].Name in %v", fields)
	}

	_, err = Validate(CostRequest{
		Deliverables: []DeliverableInput{{Name: "P&IDs", Hours: 10}},
		CustomRates:  map[Role]float64{RoleEngineer: 0},
	})
	if err == nil {
		t.Error("Expected error for zero custom rate")
	}
}

func TestPlanningRequests_DefaultWeeks(t *testing.T) {
	if (FTERequest{}).Weeks() != DefaultPlanningWeeks {
		t.Error("Expected FTE request to default to 12 weeks")
	}
	if (TeamRequest{DurationWeeks: 20}).Weeks() != 20 {
		t.Error("Expected explicit team request weeks to be kept")
	}
	if (RealityCheckRequest{}).Weeks() != DefaultPlanningWeeks {
		t.Error("Expected reality check request to default to 12 weeks")
	}
	if _, err := Validate(FTERequest{DurationWeeks: -1}); err == nil {
		t.Error("Expected error for negative weeks")
	}
}
