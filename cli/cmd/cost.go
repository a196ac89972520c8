// ABOUTME: Cost and plan commands for the estimator CLI
// ABOUTME: Prices deliverable files by role and spreads their hours into weekly FTE

package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/engestimate/estimator/backend/models"
	"github.com/engestimate/estimator/cli/internal/client"
	"github.com/engestimate/estimator/cli/internal/planfile"
	"github.com/engestimate/estimator/cli/internal/styles"
	"github.com/spf13/cobra"
)

var (
	costFile  string
	costRates map[string]string
	planFile  string
	planWeeks int
)

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Price a deliverable file by role",
	Long: `Calculate labour cost for the deliverables in a YAML or JSON file.

Example:
  estimator cost --file deliverables.yaml
  estimator cost --file deliverables.yaml --rate designer=95`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		f, err := planfile.Load(costFile)
		if err != nil {
			return err
		}
		overrides, err := parseRateOverrides(costRates)
		if err != nil {
			return err
		}
		return runCost(ctx, client.New(GetAPIURL()), cmd.OutOrStdout(), f, overrides, IsJSONOutput())
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Spread deliverable hours into weekly FTE",
	Long: `Calculate weekly FTE requirements per discipline for a deliverable file.

Example:
  estimator plan --file deliverables.yaml --weeks 16`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		f, err := planfile.Load(planFile)
		if err != nil {
			return err
		}
		return runPlan(ctx, client.New(GetAPIURL()), cmd.OutOrStdout(), f, planWeeks, IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(costCmd)
	costCmd.Flags().StringVarP(&costFile, "file", "f", "", "Deliverable file (YAML or JSON, - for stdin)")
	costCmd.Flags().StringToStringVar(&costRates, "rate", nil, "Override one role's hourly rate (role=rate, repeatable)")
	_ = costCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVarP(&planFile, "file", "f", "", "Deliverable file (YAML or JSON, - for stdin)")
	planCmd.Flags().IntVar(&planWeeks, "weeks", 0, "Duration in weeks (default from file, else 12)")
	_ = planCmd.MarkFlagRequired("file")
}

func runCost(ctx context.Context, c *client.Client, w io.Writer, f *planfile.File, overrides map[models.Role]float64, jsonOut bool) error {
	req := f.CostRequest()
	req.RateOverrides = overrides
	cost, err := c.CalculateCosts(ctx, req)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(w, cost)
	}

	fmt.Fprintln(w, styles.Title.Render("Project cost"))
	fmt.Fprintln(w, styles.Row("Deliverables:", fmt.Sprint(cost.Summary.DeliverableCount)))
	fmt.Fprintln(w, styles.Row("Total hours:", fmt.Sprint(cost.Summary.TotalHours)))
	fmt.Fprintln(w, styles.Row("Total cost:", formatMoney(cost.Summary.TotalCost)))
	fmt.Fprintln(w, styles.Row("Average rate:", formatMoney(cost.Summary.AverageCostPerHour)+"/h"))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROLE\tHOURS\tCOST\tSHARE")
	for _, r := range cost.ByRole {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.1f%%\n", r.Role, r.Hours, formatMoney(r.Cost), r.Percentage)
	}
	fmt.Fprintln(tw, "\t\t\t")
	fmt.Fprintln(tw, "DELIVERABLE\tTYPE\tHOURS\tCOST")
	for _, d := range cost.ByDeliverable {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", d.DeliverableName, d.DeliverableType, d.TotalHours, formatMoney(d.TotalCost))
	}
	return tw.Flush()
}

func runPlan(ctx context.Context, c *client.Client, w io.Writer, f *planfile.File, weeks int, jsonOut bool) error {
	req := &models.FTERequest{
		Deliverables:  f.PlanningDeliverables(),
		DurationWeeks: resolveWeeks(weeks, f),
	}
	resp, err := c.CalculateFTE(ctx, req)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(w, resp)
	}

	fmt.Fprintln(w, styles.Title.Render(fmt.Sprintf("Staffing plan (%d weeks)", resp.DurationWeeks)))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WEEK\tDISCIPLINE\tHOURS\tFTE")
	for _, r := range resp.Requirements {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\n", r.Week, r.Discipline, r.HoursPerWeek, r.FTE)
	}
	return tw.Flush()
}

// parseRateOverrides turns role=rate flag pairs into positive per-role rates.
func parseRateOverrides(raw map[string]string) (map[models.Role]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	rates := make(map[models.Role]float64, len(raw))
	for role, v := range raw {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil || rate <= 0 {
			return nil, fmt.Errorf("invalid rate for %s: %q must be a positive number", role, v)
		}
		rates[models.Role(role)] = rate
	}
	return rates, nil
}

// resolveWeeks prefers the flag, then the file, then the server default.
func resolveWeeks(flag int, f *planfile.File) int {
	if flag > 0 {
		return flag
	}
	return f.Weeks(models.DefaultPlanningWeeks)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
