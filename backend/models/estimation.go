// ABOUTME: Estimation input and result records plus confidence and schedule types
// ABOUTME: Produced by the estimation engine and returned by the estimation API

package models

// Default percentages applied when a request leaves them unset.
const (
	DefaultContingencyPercent = 15.0
	DefaultOverheadPercent    = 10.0
	DefaultClientComplexity   = 5
)

// EstimateInput is everything the engine needs for one estimate.
type EstimateInput struct {
	Size               ProjectSize
	ComplexityFactors  ComplexityFactors
	ClientProfile      ClientProfile
	Availability       ResourceAvailability
	ContingencyPercent float64
	OverheadPercent    float64
	BaseHoursOverride  int // zero means no override
	ClientComplexity   int
}

// EstimationResult is the immutable output of one engine run.
type EstimationResult struct {
	BaseHours            int             `json:"base_hours"`
	ComplexityMultiplier float64         `json:"complexity_multiplier"`
	ClientMultiplier     float64         `json:"client_multiplier"`
	AdjustedHours        int             `json:"adjusted_hours"`
	ContingencyHours     int             `json:"contingency_hours"`
	OverheadHours        int             `json:"overhead_hours"`
	TotalHours           int             `json:"total_hours"`
	DurationWeeks        int             `json:"duration_weeks"`
	ConfidenceScore      float64         `json:"confidence_score"`
	ConfidenceLevel      ConfidenceLevel `json:"confidence_level"`
	Confidence           Confidence      `json:"confidence"`
	HoursByRole          []RoleHours     `json:"hours_by_role"`
}

// ConfidenceLevel buckets a confidence score.
type ConfidenceLevel string

const (
	ConfidenceVeryHigh ConfidenceLevel = "VERY_HIGH"
	ConfidenceHigh     ConfidenceLevel = "HIGH"
	ConfidenceMedium   ConfidenceLevel = "MEDIUM"
	ConfidenceLow      ConfidenceLevel = "LOW"
)

// Description returns a human explanation of the level.
func (l ConfidenceLevel) Description() string {
	switch l {
	case ConfidenceVeryHigh:
		return "Very high confidence (>95%). Estimate is highly reliable."
	case ConfidenceHigh:
		return "High confidence (85-95%). Estimate is reliable with minor uncertainty."
	case ConfidenceMedium:
		return "Medium confidence (70-85%). Estimate has moderate uncertainty."
	case ConfidenceLow:
		return "Low confidence (<70%). Estimate has significant uncertainty."
	default:
		return "Unknown confidence level"
	}
}

// Confidence is the scored result plus the inputs that produced it.
type Confidence struct {
	Score               float64         `json:"score"`
	Level               ConfidenceLevel `json:"level"`
	Description         string          `json:"description"`
	ActiveFactors       int             `json:"active_factors"`
	AverageAvailability float64         `json:"average_availability"`
	ProjectSize         ProjectSize     `json:"project_size"`
	HasHistoricalData   bool            `json:"has_historical_data"`
}

// RoleHours is a (role, hours) pair in a breakdown.
type RoleHours struct {
	Role  Role `json:"role"`
	Hours int  `json:"hours"`
}

// DeliverableHours is the per-activity hour template for a single deliverable.
type DeliverableHours struct {
	Create    int `json:"hours_create"`
	Review    int `json:"hours_review"`
	QA        int `json:"hours_qa"`
	Doc       int `json:"hours_doc"`
	Revisions int `json:"hours_revisions"`
	PM        int `json:"hours_pm"`
	Total     int `json:"hours_total"`
}

// FactorInfo describes one complexity factor for display.
type FactorInfo struct {
	Name          ComplexityFactor `json:"name"`
	Value         float64          `json:"value"`
	Description   string           `json:"description"`
	ImpactPercent int              `json:"impact_percent"`
}

// ScheduleReport is the feasibility analysis of a target schedule.
type ScheduleReport struct {
	TargetDurationWeeks       int     `json:"target_duration_weeks"`
	TotalHours                int     `json:"total_hours"`
	TeamSize                  int     `json:"team_size"`
	RequiredHoursPerWeek      float64 `json:"required_hours_per_week"`
	AvailableHoursPerWeek     int     `json:"available_hours_per_week"`
	RequiredAllocationPercent float64 `json:"required_allocation_percent"`
	IsFeasible                bool    `json:"is_feasible"`
	Recommendation            string  `json:"recommendation"`
}
