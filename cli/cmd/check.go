// ABOUTME: Check command for the estimator CLI
// ABOUTME: Runs staffing reality checks on a deliverable file for CI/CD pipelines

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/engestimate/estimator/backend/models"
	"github.com/engestimate/estimator/cli/internal/client"
	"github.com/engestimate/estimator/cli/internal/planfile"
	"github.com/engestimate/estimator/cli/internal/styles"
	"github.com/spf13/cobra"
)

var (
	checkFile       string
	checkWeeks      int
	checkTotalHours int
	checkFailOn     string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Reality-check a staffing plan",
	Long: `Run staffing heuristics over a deliverable file and exit non-zero if
any warning reaches the --fail-on severity.

Exit codes:
  0 - No warnings at or above the threshold
  1 - One or more warnings at or above the threshold
  2 - Error (connectivity, invalid file, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		exitCode := runCheck(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "Deliverable file (YAML or JSON, - for stdin)")
	checkCmd.Flags().IntVar(&checkWeeks, "weeks", 0, "Duration in weeks (default from file, else 12)")
	checkCmd.Flags().IntVar(&checkTotalHours, "total-hours", 0, "Total project hours (default from file, else sum of deliverables)")
	checkCmd.Flags().StringVar(&checkFailOn, "fail-on", "medium", "Lowest severity that fails the check: low, medium, high")
}

// runCheck executes the reality check and returns exit code
func runCheck(ctx context.Context, w io.Writer) int {
	threshold, err := parseSeverity(checkFailOn)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if checkFile == "" {
		fmt.Fprintln(w, "Error: --file is required")
		return 2
	}
	if checkWeeks < 0 || checkTotalHours < 0 {
		fmt.Fprintln(w, "Error: --weeks and --total-hours must not be negative")
		return 2
	}

	f, err := planfile.Load(checkFile)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	total := checkTotalHours
	if total == 0 {
		total = f.TotalHours
	}
	req := &models.RealityCheckRequest{
		Deliverables:  f.PlanningDeliverables(),
		DurationWeeks: resolveWeeks(checkWeeks, f),
		TotalHours:    total,
	}

	resp, err := client.New(GetAPIURL()).RealityCheck(ctx, req)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	failing := countFailing(resp.Warnings, threshold)
	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(resp, threshold, failing))
	} else {
		fmt.Fprintln(w, formatCheckHuman(resp, threshold, failing))
	}

	if failing > 0 {
		return 1
	}
	return 0
}

// parseSeverity validates the --fail-on value
func parseSeverity(s string) (models.Severity, error) {
	sev := models.Severity(strings.ToLower(strings.TrimSpace(s)))
	if sev.Rank() == 0 {
		return "", fmt.Errorf("--fail-on must be one of low, medium, high")
	}
	return sev, nil
}

// countFailing returns how many warnings reach the threshold
func countFailing(warnings []models.Warning, threshold models.Severity) int {
	n := 0
	for _, warn := range warnings {
		if warn.Severity.Rank() >= threshold.Rank() {
			n++
		}
	}
	return n
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(resp *client.RealityCheckResponse, threshold models.Severity, failing int) string {
	var b strings.Builder

	meta := resp.Metadata
	fmt.Fprintf(&b, "%s\n", styles.Title.Render("Reality check"))
	fmt.Fprintf(&b, "%s\n", styles.Row("Team tier:", meta.ProjectSize))
	fmt.Fprintf(&b, "%s\n", styles.Row("Total hours:", fmt.Sprintf("%d (%d with coordination)", meta.TotalHours, meta.AdjustedHours)))
	fmt.Fprintf(&b, "%s\n", styles.Row("Duration:", fmt.Sprintf("%d weeks", meta.DurationWeeks)))
	fmt.Fprintf(&b, "%s\n\n", styles.Row("Base FTE:", fmt.Sprintf("%.2f", meta.BaseFTERequired)))

	for _, warn := range resp.Warnings {
		symbol := "•"
		if warn.Severity.Rank() >= threshold.Rank() {
			symbol = "✗"
		}
		fmt.Fprintf(&b, "%s %s %s: %s\n", symbol, styles.Badge(string(warn.Severity), styles.SeverityStyle(warn.Severity)), warn.Title, warn.Message)
		for _, d := range warn.Details {
			fmt.Fprintf(&b, "    - %s\n", d)
		}
		if warn.Recommendation != "" {
			fmt.Fprintf(&b, "    %s\n", styles.Subtitle.Render(warn.Recommendation))
		}
	}

	if failing > 0 {
		fmt.Fprintf(&b, "\nFAILED: %d warning(s) at or above %s", failing, threshold)
	} else {
		fmt.Fprintf(&b, "\nPASSED: %d warning(s), none at or above %s", len(resp.Warnings), threshold)
	}
	return b.String()
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(resp *client.RealityCheckResponse, threshold models.Severity, failing int) string {
	status := "passed"
	if failing > 0 {
		status = "failed"
	}

	output := map[string]any{
		"status":   status,
		"fail_on":  threshold,
		"failing":  failing,
		"warnings": resp.Warnings,
		"team":     resp.Team,
		"metadata": resp.Metadata,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
