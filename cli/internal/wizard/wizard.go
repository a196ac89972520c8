// ABOUTME: Interactive estimate wizard built from huh forms
// ABOUTME: Collects size, complexity factors, and percentages into an estimate request

package wizard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/engestimate/estimator/backend/models"
	"github.com/engestimate/estimator/cli/internal/styles"
)

// Answers holds the raw form values. huh inputs bind to strings.
type Answers struct {
	Size             string
	ClientProfile    string
	Factors          []string
	Contingency      string
	Overhead         string
	ClientComplexity string
}

// Defaults returns the answers the form starts from.
func Defaults() *Answers {
	return &Answers{
		Size:             string(models.SizeMedium),
		Contingency:      "15",
		Overhead:         "10",
		ClientComplexity: "5",
	}
}

var sizeOptions = []huh.Option[string]{
	huh.NewOption("Small (300 base hours)", string(models.SizeSmall)),
	huh.NewOption("Medium (1200 base hours)", string(models.SizeMedium)),
	huh.NewOption("Large (3500 base hours)", string(models.SizeLarge)),
}

var profileOptions = []huh.Option[string]{
	huh.NewOption("Not specified", ""),
	huh.NewOption("Type A", string(models.ClientTypeA)),
	huh.NewOption("Type B", string(models.ClientTypeB)),
	huh.NewOption("Type C", string(models.ClientTypeC)),
	huh.NewOption("New client", string(models.ClientNewClient)),
}

func factorOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(models.AllComplexityFactors))
	for _, f := range models.AllComplexityFactors {
		label := strings.ReplaceAll(string(f), "_", " ")
		opts = append(opts, huh.NewOption(label, string(f)))
	}
	return opts
}

// NewForm builds the estimate form bound to a.
func NewForm(a *Answers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Project size").
				Options(sizeOptions...).
				Value(&a.Size),
			huh.NewSelect[string]().
				Title("Client profile").
				Options(profileOptions...).
				Value(&a.ClientProfile),
			huh.NewMultiSelect[string]().
				Title("Complexity factors").
				Description("Space to toggle, Enter to confirm").
				Options(factorOptions()...).
				Value(&a.Factors),
		).Title("Scope"),
		huh.NewGroup(
			huh.NewInput().
				Title("Contingency %").
				CharLimit(5).
				Value(&a.Contingency).
				Validate(validatePercentage),
			huh.NewInput().
				Title("Overhead %").
				CharLimit(5).
				Value(&a.Overhead).
				Validate(validatePercentage),
			huh.NewInput().
				Title("Client complexity (1-10)").
				CharLimit(2).
				Value(&a.ClientComplexity).
				Validate(validateComplexity),
		).Title("Allowances"),
	).WithTheme(createTheme())
}

// Run shows the form and returns the resulting request.
func Run(ctx context.Context) (*models.EstimateRequest, error) {
	a := Defaults()
	if err := NewForm(a).RunWithContext(ctx); err != nil {
		return nil, err
	}
	return a.Request()
}

// Request converts the answers into an estimate request.
func (a *Answers) Request() (*models.EstimateRequest, error) {
	if err := validatePercentage(a.Contingency); err != nil {
		return nil, fmt.Errorf("contingency: %w", err)
	}
	if err := validatePercentage(a.Overhead); err != nil {
		return nil, fmt.Errorf("overhead: %w", err)
	}
	if err := validateComplexity(a.ClientComplexity); err != nil {
		return nil, fmt.Errorf("client complexity: %w", err)
	}

	contingency, _ := strconv.ParseFloat(a.Contingency, 64)
	overhead, _ := strconv.ParseFloat(a.Overhead, 64)
	complexity, _ := strconv.Atoi(a.ClientComplexity)

	factors := make(map[string]bool, len(a.Factors))
	for _, f := range a.Factors {
		factors[f] = true
	}

	return &models.EstimateRequest{
		ProjectSize:        a.Size,
		ClientProfile:      models.ClientProfile(a.ClientProfile),
		ComplexityFactors:  factors,
		ContingencyPercent: &contingency,
		OverheadPercent:    &overhead,
		ClientComplexity:   &complexity,
	}, nil
}

func validatePercentage(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}

func validateComplexity(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 || v > 10 {
		return fmt.Errorf("must be a whole number from 1 to 10")
	}
	return nil
}

// createTheme returns a huh theme using the CLI palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)
	t.Focused.SelectSelector = lipgloss.NewStyle().
		Foreground(styles.Primary).
		SetString("> ")
	t.Focused.SelectedOption = lipgloss.NewStyle().
		Foreground(styles.Secondary).
		Bold(true)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)

	return t
}
