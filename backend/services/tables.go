// ABOUTME: Reference lookup tables for hours, durations, factors, rates, and rosters
// ABOUTME: Built once by DefaultTables and shared read-only by every calculator

package services

import "github.com/engestimate/estimator/backend/models"

// RoleShare is one role's fraction of a set of hours.
type RoleShare struct {
	Role  models.Role
	Share float64
}

// DeliverableInfo classifies a standard deliverable.
type DeliverableInfo struct {
	Type        models.DeliverableType `json:"type"`
	Description string                 `json:"description"`
}

// RosterLine is one role of a recommended team tier.
type RosterLine struct {
	Role        string
	Count       float64
	Utilization int
	Rate        float64
}

// TeamTier is a roster template for projects below MaxHours.
// A zero MaxHours marks the unbounded top tier.
type TeamTier struct {
	Name                 string
	MaxHours             int
	CoordinationOverhead float64
	Roster               []RosterLine
}

// Tables holds every reference value the calculators read.
// Treat a Tables value as immutable once built.
type Tables struct {
	BaseHours          map[models.ProjectSize]int
	TeamSize           map[models.ProjectSize]int
	BaseDuration       map[models.ProjectSize]int
	TierRoleSplit      map[models.ProjectSize][]RoleShare
	FactorWeights      map[models.ComplexityFactor]float64
	FactorDescriptions map[models.ComplexityFactor]string
	SizePenalty        map[models.ProjectSize]float64
	RoleRates          map[models.Role]float64
	RoleDistributions  map[models.DeliverableType][]RoleShare
	Deliverables       map[string]DeliverableInfo
	TeamTiers          []TeamTier
	ProfileMultipliers map[models.ClientProfile]float64
}

// DefaultTables returns the standard reference data.
func DefaultTables() *Tables {
	return &Tables{
		BaseHours: map[models.ProjectSize]int{
			models.SizeSmall:  300,
			models.SizeMedium: 1200,
			models.SizeLarge:  3500,
		},
		TeamSize: map[models.ProjectSize]int{
			models.SizeSmall:  3,
			models.SizeMedium: 5,
			models.SizeLarge:  8,
		},
		BaseDuration: map[models.ProjectSize]int{
			models.SizeSmall:  8,
			models.SizeMedium: 16,
			models.SizeLarge:  32,
		},
		TierRoleSplit: map[models.ProjectSize][]RoleShare{
			models.SizeSmall: {
				{models.RoleEngineer, 0.60},
				{models.RoleDesigner, 0.15},
				{models.RoleQAReviewer, 0.10},
				{models.RoleProjectManager, 0.10},
				{models.RoleTechnicalLead, 0.05},
			},
			models.SizeMedium: {
				{models.RoleEngineer, 0.50},
				{models.RoleDesigner, 0.20},
				{models.RoleQAReviewer, 0.12},
				{models.RoleProjectManager, 0.12},
				{models.RoleTechnicalLead, 0.06},
			},
			models.SizeLarge: {
				{models.RoleEngineer, 0.45},
				{models.RoleDesigner, 0.20},
				{models.RoleQAReviewer, 0.12},
				{models.RoleProjectManager, 0.15},
				{models.RoleTechnicalLead, 0.08},
			},
		},
		FactorWeights: map[models.ComplexityFactor]float64{
			models.FactorMultidiscipline:        0.20,
			models.FactorFasttrack:              0.30,
			models.FactorBrownfield:             0.25,
			models.FactorRegulatory:             0.15,
			models.FactorInternational:          0.20,
			models.FactorIncompleteRequirements: 0.35,
		},
		FactorDescriptions: map[models.ComplexityFactor]string{
			models.FactorMultidiscipline:        "Multiple engineering disciplines involved",
			models.FactorFasttrack:              "Compressed schedule with overlapping phases",
			models.FactorBrownfield:             "Modification to existing facility",
			models.FactorRegulatory:             "Heavy regulatory compliance requirements",
			models.FactorInternational:          "Cross-border project with international standards",
			models.FactorIncompleteRequirements: "Requirements not fully defined at start",
		},
		SizePenalty: map[models.ProjectSize]float64{
			models.SizeSmall:  0,
			models.SizeMedium: 5,
			models.SizeLarge:  10,
		},
		RoleRates: map[models.Role]float64{
			models.RoleLeadEngineer:       150,
			models.RoleSeniorEngineer:     125,
			models.RoleEngineer:           100,
			models.RoleDesigner:           85,
			models.RoleQAChecker:          95,
			models.RoleTechnicalReviewer:  115,
			models.RoleDocumentController: 65,
			models.RoleProjectManager:     160,
			models.RoleCADTechnician:      75,
			models.RoleCostEstimator:      110,
			models.RoleScheduler:          105,
		},
		RoleDistributions: map[models.DeliverableType][]RoleShare{
			models.DeliverableDrawing: {
				{models.RoleDesigner, 0.55},
				{models.RoleLeadEngineer, 0.15},
				{models.RoleQAChecker, 0.15},
				{models.RoleDocumentController, 0.10},
				{models.RoleProjectManager, 0.05},
			},
			models.DeliverableCalculation: {
				{models.RoleEngineer, 0.50},
				{models.RoleSeniorEngineer, 0.20},
				{models.RoleQAChecker, 0.20},
				{models.RoleDocumentController, 0.07},
				{models.RoleProjectManager, 0.03},
			},
			models.DeliverableDocument: {
				{models.RoleSeniorEngineer, 0.45},
				{models.RoleLeadEngineer, 0.15},
				{models.RoleEngineer, 0.15},
				{models.RoleQAChecker, 0.15},
				{models.RoleDocumentController, 0.08},
				{models.RoleProjectManager, 0.02},
			},
			models.DeliverableList: {
				{models.RoleEngineer, 0.55},
				{models.RoleSeniorEngineer, 0.15},
				{models.RoleQAChecker, 0.15},
				{models.RoleDocumentController, 0.10},
				{models.RoleProjectManager, 0.05},
			},
			models.DeliverableModel: {
				{models.RoleDesigner, 0.50},
				{models.RoleCADTechnician, 0.25},
				{models.RoleLeadEngineer, 0.15},
				{models.RoleQAChecker, 0.08},
				{models.RoleProjectManager, 0.02},
			},
			models.DeliverablePlanning: {
				{models.RoleProjectManager, 0.40},
				{models.RoleScheduler, 0.25},
				{models.RoleCostEstimator, 0.15},
				{models.RoleLeadEngineer, 0.15},
				{models.RoleDocumentController, 0.05},
			},
		},
		Deliverables: map[string]DeliverableInfo{
			"Project Execution Plan":         {models.DeliverablePlanning, "Comprehensive project plan covering scope, schedule, resources, and risk management"},
			"Design Basis Memorandum":        {models.DeliverableDocument, "Technical foundation document establishing design criteria and assumptions"},
			"Plot Plan / Site Layout":        {models.DeliverableDrawing, "Site arrangement showing equipment, buildings, and infrastructure layout"},
			"3D Model":                       {models.DeliverableModel, "3D CAD model for visualization, clash detection, and coordination"},
			"Specifications":                 {models.DeliverableDocument, "Technical specifications for materials, equipment, and construction methods"},
			"Material Take-Offs":             {models.DeliverableList, "Quantified bill of materials from drawings and specifications"},
			"Construction Support Documents": {models.DeliverableDocument, "As-built documentation, operation manuals, and closeout documents"},
			"Site Survey Report":             {models.DeliverableDocument, "Topographical survey and site conditions report"},
			"Civil Site Layout":              {models.DeliverableDrawing, "Civil infrastructure layout including roads, drainage, and utilities"},
			"Foundation Design Calculations": {models.DeliverableCalculation, "Structural calculations for foundation sizing and design"},
			"Civil Construction Drawings":    {models.DeliverableDrawing, "Detailed construction drawings for civil works"},
			"Equipment List":                 {models.DeliverableList, "Master list of all mechanical equipment with key parameters"},
			"Equipment Datasheets":           {models.DeliverableDocument, "Detailed technical specifications for each major equipment item"},
			"P&IDs":                          {models.DeliverableDrawing, "Piping and Instrumentation Diagrams showing process flow and control"},
			"Equipment Layout Drawings":      {models.DeliverableDrawing, "Detailed equipment arrangement and spacing drawings"},
			"Piping Isometric Drawings":      {models.DeliverableDrawing, "3D piping spool drawings for fabrication and installation"},
			"Material Requisitions":          {models.DeliverableDocument, "Purchase requisitions for equipment and bulk materials"},
			"Electrical Load List":           {models.DeliverableList, "Complete electrical load schedule with power requirements"},
			"Single Line Diagram":            {models.DeliverableDrawing, "Power distribution one-line diagram showing electrical architecture"},
			"Cable Schedules":                {models.DeliverableList, "Detailed cable routing and specification schedules"},
			"Structural Basis of Design":     {models.DeliverableDocument, "Design criteria, codes, and loading assumptions for structures"},
			"Structural Load Calculations":   {models.DeliverableCalculation, "Engineering calculations for structural member sizing"},
			"Foundation Design":              {models.DeliverableCalculation, "Foundation design calculations and drawings"},
		},
		TeamTiers: []TeamTier{
			{
				Name:                 "small",
				MaxHours:             1000,
				CoordinationOverhead: 1.1,
				Roster: []RosterLine{
					{"Lead Engineer", 0.2, 60, 210},
					{"Senior Engineer", 1, 85, 185},
					{"Engineer", 1, 90, 145},
				},
			},
			{
				Name:                 "medium",
				MaxHours:             5000,
				CoordinationOverhead: 1.15,
				Roster: []RosterLine{
					{"Lead Engineer", 0.5, 60, 210},
					{"Senior Engineer", 2, 85, 185},
					{"Engineer", 3, 90, 145},
					{"Junior Engineer", 1, 95, 95},
				},
			},
			{
				Name:                 "large",
				CoordinationOverhead: 1.25,
				Roster: []RosterLine{
					{"Project Manager", 1, 80, 220},
					{"Lead Engineer", 1, 60, 210},
					{"Senior Engineer", 5, 85, 185},
					{"Engineer", 8, 90, 145},
					{"Junior Engineer", 3, 95, 95},
					{"Document Control", 1, 90, 85},
				},
			},
		},
		ProfileMultipliers: map[models.ClientProfile]float64{
			models.ClientTypeA:     1.40,
			models.ClientTypeB:     1.00,
			models.ClientTypeC:     0.85,
			models.ClientNewClient: 1.25,
		},
	}
}

// ProfileMultiplier returns the legacy multiplier for a client profile.
// Estimates no longer apply it; it is reported for reference only.
func (t *Tables) ProfileMultiplier(p models.ClientProfile) float64 {
	if m, ok := t.ProfileMultipliers[p]; ok {
		return m
	}
	return 1.0
}
