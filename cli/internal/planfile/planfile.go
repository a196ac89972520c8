// ABOUTME: Loads deliverable lists from YAML (or JSON) files for cost and planning commands
// ABOUTME: Converts file entries into cost and resource planning request bodies

package planfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/engestimate/estimator/backend/models"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Deliverable is one entry of a plan file.
type Deliverable struct {
	Name          string `yaml:"name"`
	Discipline    string `yaml:"discipline"`
	Hours         int    `yaml:"hours"`
	AdjustedHours int    `yaml:"adjusted_hours"`
}

// File is a deliverable list with optional plan-wide settings.
//
//	duration_weeks: 16
//	custom_rates:
//	  engineer: 110
//	deliverables:
//	  - name: P&IDs
//	    discipline: Process
//	    hours: 200
type File struct {
	DurationWeeks int                     `yaml:"duration_weeks"`
	TotalHours    int                     `yaml:"total_hours"`
	CustomRates   map[models.Role]float64 `yaml:"custom_rates"`
	Deliverables  []Deliverable           `yaml:"deliverables"`
}

// Load reads and validates the plan file at path. "-" reads stdin.
func Load(path string) (*File, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates plan file contents. JSON is accepted as a
// subset of YAML.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("plan file is empty")
		}
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	var result *multierror.Error

	if len(f.Deliverables) == 0 {
		result = multierror.Append(result, errors.New("at least one deliverable is required"))
	}
	if f.DurationWeeks < 0 {
		result = multierror.Append(result, fmt.Errorf("duration_weeks must not be negative, got %d", f.DurationWeeks))
	}
	if f.TotalHours < 0 {
		result = multierror.Append(result, fmt.Errorf("total_hours must not be negative, got %d", f.TotalHours))
	}
	for role, rate := range f.CustomRates {
		if rate <= 0 {
			result = multierror.Append(result, fmt.Errorf("custom rate for %s must be positive", role))
		}
	}
	for i, d := range f.Deliverables {
		if strings.TrimSpace(d.Name) == "" {
			result = multierror.Append(result, fmt.Errorf("deliverable %d: name is required", i+1))
		}
		if d.Hours < 0 || d.AdjustedHours < 0 {
			result = multierror.Append(result, fmt.Errorf("deliverable %d: hours must not be negative", i+1))
		}
	}

	return result.ErrorOrNil()
}

// Weeks returns the file duration, then fallback when the file has none.
func (f *File) Weeks(fallback int) int {
	if f.DurationWeeks > 0 {
		return f.DurationWeeks
	}
	return fallback
}

// CostRequest builds a calculate-costs body.
func (f *File) CostRequest() *models.CostRequest {
	req := &models.CostRequest{
		Deliverables: make([]models.DeliverableInput, 0, len(f.Deliverables)),
		CustomRates:  f.CustomRates,
	}
	for _, d := range f.Deliverables {
		in := models.DeliverableInput{Name: d.Name, Hours: d.Hours}
		if d.AdjustedHours > 0 {
			adjusted := d.AdjustedHours
			in.AdjustedHours = &adjusted
		}
		req.Deliverables = append(req.Deliverables, in)
	}
	return req
}

// PlanningDeliverables converts the entries for the resource planner.
func (f *File) PlanningDeliverables() []models.PlanningDeliverable {
	out := make([]models.PlanningDeliverable, 0, len(f.Deliverables))
	for _, d := range f.Deliverables {
		out = append(out, models.PlanningDeliverable{
			Name:          d.Name,
			Discipline:    d.Discipline,
			BaseHours:     d.Hours,
			AdjustedHours: d.AdjustedHours,
		})
	}
	return out
}
