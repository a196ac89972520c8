// ABOUTME: Core value types for project estimation: size tiers, factors, availability
// ABOUTME: JSON-serializable structures shared by services, handlers, and the store

package models

import (
	"math"
	"strings"
)

// ProjectSize is the coarse size tier of an engineering project.
type ProjectSize string

const (
	SizeSmall  ProjectSize = "SMALL"
	SizeMedium ProjectSize = "MEDIUM"
	SizeLarge  ProjectSize = "LARGE"
)

// ProjectSizes lists the valid tiers in ascending order.
var ProjectSizes = []ProjectSize{SizeSmall, SizeMedium, SizeLarge}

// Valid reports whether s is one of the three known tiers.
func (s ProjectSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// ParseProjectSize accepts any letter case and returns the canonical tier.
func ParseProjectSize(s string) (ProjectSize, bool) {
	size := ProjectSize(strings.ToUpper(strings.TrimSpace(s)))
	return size, size.Valid()
}

// ClientProfile is the legacy client classification carried on projects.
// Estimates use the numeric client complexity instead.
type ClientProfile string

const (
	ClientTypeA     ClientProfile = "TYPE_A"
	ClientTypeB     ClientProfile = "TYPE_B"
	ClientTypeC     ClientProfile = "TYPE_C"
	ClientNewClient ClientProfile = "NEW_CLIENT"
)

// Valid reports whether p is a known profile. The empty profile is valid.
func (p ClientProfile) Valid() bool {
	switch p {
	case "", ClientTypeA, ClientTypeB, ClientTypeC, ClientNewClient:
		return true
	}
	return false
}

// ComplexityFactor names one binary project characteristic that adds effort.
type ComplexityFactor string

const (
	FactorMultidiscipline        ComplexityFactor = "multidiscipline"
	FactorFasttrack              ComplexityFactor = "fasttrack"
	FactorBrownfield             ComplexityFactor = "brownfield"
	FactorRegulatory             ComplexityFactor = "regulatory"
	FactorInternational          ComplexityFactor = "international"
	FactorIncompleteRequirements ComplexityFactor = "incomplete_requirements"
)

// AllComplexityFactors is the fixed catalogue order used for summation and display.
var AllComplexityFactors = []ComplexityFactor{
	FactorMultidiscipline,
	FactorFasttrack,
	FactorBrownfield,
	FactorRegulatory,
	FactorInternational,
	FactorIncompleteRequirements,
}

// ComplexityFactors is the set of active factors for a project.
// Unknown names never enter the set.
type ComplexityFactors map[ComplexityFactor]bool

// ParseComplexityFactors builds a factor set from loosely typed input.
// Unknown names and false values are dropped.
func ParseComplexityFactors(raw map[string]bool) ComplexityFactors {
	factors := make(ComplexityFactors, len(raw))
	for _, f := range AllComplexityFactors {
		if raw[string(f)] {
			factors[f] = true
		}
	}
	return factors
}

// FactorsFromNames builds a factor set from a list of names.
func FactorsFromNames(names []string) ComplexityFactors {
	raw := make(map[string]bool, len(names))
	for _, n := range names {
		raw[strings.ToLower(strings.TrimSpace(n))] = true
	}
	return ParseComplexityFactors(raw)
}

// Active returns the active known factors in catalogue order.
func (f ComplexityFactors) Active() []ComplexityFactor {
	var active []ComplexityFactor
	for _, name := range AllComplexityFactors {
		if f[name] {
			active = append(active, name)
		}
	}
	return active
}

// DefaultAvailabilityPercent is assumed when no usable availability data is given.
const DefaultAvailabilityPercent = 80.0

// ResourceAvailability maps a resource or team label to its availability percent.
type ResourceAvailability map[string]float64

// Average returns the mean of the entries within [0, 100].
// Returns DefaultAvailabilityPercent when no entry qualifies.
func (a ResourceAvailability) Average() float64 {
	var sum float64
	var n int
	for _, v := range a {
		if math.IsNaN(v) || v < 0 || v > 100 {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return DefaultAvailabilityPercent
	}
	return sum / float64(n)
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
	Code    int            `json:"code"`
}
