// ABOUTME: Typed errors returned by the estimation and planning services
// ABOUTME: Handlers map ValidationError to 400 and CalculationError to 500

package services

import "fmt"

// ValidationError reports input the services cannot work with.
type ValidationError struct {
	Message string
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Details)
}

// NewValidationError builds a ValidationError with optional key/value details.
func NewValidationError(message string, kv ...any) *ValidationError {
	return &ValidationError{Message: message, Details: detailsFromPairs(kv)}
}

// CalculationError wraps any failure inside an estimation run.
type CalculationError struct {
	Message string
	Details map[string]any
	Cause   error
}

func (e *CalculationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *CalculationError) Unwrap() error {
	return e.Cause
}

func detailsFromPairs(kv []any) map[string]any {
	if len(kv) == 0 {
		return nil
	}
	details := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		details[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return details
}
