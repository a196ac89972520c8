// ABOUTME: Estimate and schedule commands for the estimator CLI
// ABOUTME: Runs quick estimates from flags or an interactive form and checks schedule feasibility

package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/engestimate/estimator/backend/models"
	"github.com/engestimate/estimator/cli/internal/client"
	"github.com/engestimate/estimator/cli/internal/styles"
	"github.com/engestimate/estimator/cli/internal/wizard"
	"github.com/spf13/cobra"
)

// estimateOptions mirrors the estimate command flags.
type estimateOptions struct {
	size             string
	factors          []string
	clientProfile    string
	availability     map[string]string
	contingency      float64
	overhead         float64
	baseHours        int
	clientComplexity int
	interactive      bool
}

var estimateOpts estimateOptions

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate hours, duration, and confidence",
	Long: `Run a quick estimate for a project size and set of complexity factors.

Example:
  estimator estimate --size MEDIUM --factor multidiscipline --factor fasttrack
  estimator estimate --size LARGE --availability lead=100 --availability designer=60
  estimator estimate --interactive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		var (
			req *models.EstimateRequest
			err error
		)
		if estimateOpts.interactive {
			req, err = wizard.Run(ctx)
		} else {
			req, err = buildEstimateRequest(estimateOpts, cmd.Flags().Changed)
		}
		if err != nil {
			return err
		}
		return runEstimate(ctx, client.New(GetAPIURL()), cmd.OutOrStdout(), req, IsJSONOutput())
	},
}

var (
	scheduleHours int
	scheduleTeam  int
	scheduleWeeks int
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Check whether a team can meet a target duration",
	Long: `Compare the weekly hours a target duration requires with what a team can supply.

Example:
  estimator schedule --hours 2000 --team 3 --weeks 16`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		req := &models.ScheduleRequest{TotalHours: scheduleHours, TeamSize: scheduleTeam, TargetWeeks: scheduleWeeks}
		return runSchedule(ctx, client.New(GetAPIURL()), cmd.OutOrStdout(), req, IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	f := estimateCmd.Flags()
	f.StringVar(&estimateOpts.size, "size", "MEDIUM", "Project size: SMALL, MEDIUM, or LARGE")
	f.StringSliceVar(&estimateOpts.factors, "factor", nil, "Active complexity factor (repeatable)")
	f.StringVar(&estimateOpts.clientProfile, "client-profile", "", "Client profile: TYPE_A, TYPE_B, TYPE_C, NEW_CLIENT")
	f.StringToStringVar(&estimateOpts.availability, "availability", nil, "Resource availability percent as name=value (repeatable)")
	f.Float64Var(&estimateOpts.contingency, "contingency", 0, "Contingency percent (default from backend)")
	f.Float64Var(&estimateOpts.overhead, "overhead", 0, "Overhead percent (default from backend)")
	f.IntVar(&estimateOpts.baseHours, "base-hours", 0, "Override the base hours for the size tier")
	f.IntVar(&estimateOpts.clientComplexity, "client-complexity", 0, "Client complexity from 1 to 10 (default 5)")
	f.BoolVarP(&estimateOpts.interactive, "interactive", "i", false, "Prompt for inputs with a form")

	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().IntVar(&scheduleHours, "hours", 0, "Total hours to deliver")
	scheduleCmd.Flags().IntVar(&scheduleTeam, "team", 0, "Team size")
	scheduleCmd.Flags().IntVar(&scheduleWeeks, "weeks", 0, "Target duration in weeks")
	_ = scheduleCmd.MarkFlagRequired("hours")
	_ = scheduleCmd.MarkFlagRequired("team")
	_ = scheduleCmd.MarkFlagRequired("weeks")
}

// buildEstimateRequest converts flags into a request. changed reports
// whether a flag was set so unset percentages fall back to server defaults.
func buildEstimateRequest(o estimateOptions, changed func(string) bool) (*models.EstimateRequest, error) {
	req := &models.EstimateRequest{
		ProjectSize:   strings.ToUpper(o.size),
		ClientProfile: models.ClientProfile(strings.ToUpper(o.clientProfile)),
	}

	if len(o.factors) > 0 {
		req.ComplexityFactors = make(map[string]bool, len(o.factors))
		for _, f := range o.factors {
			req.ComplexityFactors[strings.ToLower(strings.TrimSpace(f))] = true
		}
	}

	if len(o.availability) > 0 {
		req.ResourceAvailability = make(map[string]float64, len(o.availability))
		for name, raw := range o.availability {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("--availability %s: %q is not a number", name, raw)
			}
			req.ResourceAvailability[name] = v
		}
	}

	if changed("contingency") {
		v := o.contingency
		req.ContingencyPercent = &v
	}
	if changed("overhead") {
		v := o.overhead
		req.OverheadPercent = &v
	}
	if changed("base-hours") {
		v := o.baseHours
		req.BaseHoursOverride = &v
	}
	if changed("client-complexity") {
		v := o.clientComplexity
		req.ClientComplexity = &v
	}
	return req, nil
}

func runEstimate(ctx context.Context, c *client.Client, w io.Writer, req *models.EstimateRequest, jsonOut bool) error {
	resp, err := c.QuickEstimate(ctx, req)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(w, resp)
	}
	fmt.Fprintln(w, formatEstimateHuman(resp))
	return nil
}

func formatEstimateHuman(resp *client.EstimateResponse) string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Estimate") + "\n")
	b.WriteString(styles.Row("Base hours:", strconv.Itoa(resp.BaseHours)) + "\n")
	b.WriteString(styles.Row("Complexity multiplier:", fmt.Sprintf("%.2f", resp.ComplexityMultiplier)) + "\n")
	b.WriteString(styles.Row("Adjusted hours:", strconv.Itoa(resp.AdjustedHours)) + "\n")
	b.WriteString(styles.Row("Contingency hours:", strconv.Itoa(resp.ContingencyHours)) + "\n")
	b.WriteString(styles.Row("Overhead hours:", strconv.Itoa(resp.OverheadHours)) + "\n")
	b.WriteString(styles.Row("Total hours:", strconv.Itoa(resp.TotalHours)) + "\n")
	b.WriteString(styles.Row("Duration:", fmt.Sprintf("%d weeks", resp.DurationWeeks)) + "\n")
	b.WriteString(styles.Row("Team size:", strconv.Itoa(resp.RecommendedTeamSize)) + "\n")

	level := styles.Badge(string(resp.ConfidenceLevel), styles.ConfidenceStyle(resp.ConfidenceLevel))
	b.WriteString(styles.Row("Confidence:", fmt.Sprintf("%.0f%% %s", resp.ConfidenceScore, level)) + "\n")
	b.WriteString(styles.ProgressBar(resp.ConfidenceScore, 30) + "\n")

	if len(resp.HoursByRole) > 0 {
		roles := append([]models.RoleHours(nil), resp.HoursByRole...)
		sort.SliceStable(roles, func(i, j int) bool { return roles[i].Hours > roles[j].Hours })
		b.WriteString("\n" + styles.Subtitle.Render("Hours by role") + "\n")
		for _, r := range roles {
			b.WriteString(styles.Row(string(r.Role), strconv.Itoa(r.Hours)) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func runSchedule(ctx context.Context, c *client.Client, w io.Writer, req *models.ScheduleRequest, jsonOut bool) error {
	report, err := c.Schedule(ctx, req)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(w, report)
	}

	verdict := styles.StatusOK.Render("FEASIBLE")
	if !report.IsFeasible {
		verdict = styles.StatusCritical.Render("NOT FEASIBLE")
	}
	fmt.Fprintln(w, styles.Title.Render("Schedule")+" "+verdict)
	fmt.Fprintln(w, styles.Row("Required hours/week:", fmt.Sprintf("%.1f", report.RequiredHoursPerWeek)))
	fmt.Fprintln(w, styles.Row("Available hours/week:", strconv.Itoa(report.AvailableHoursPerWeek)))
	fmt.Fprintln(w, styles.Row("Allocation:", fmt.Sprintf("%.1f%% %s",
		report.RequiredAllocationPercent, styles.ProgressBar(report.RequiredAllocationPercent, 20))))
	fmt.Fprintln(w, report.Recommendation)
	return nil
}
