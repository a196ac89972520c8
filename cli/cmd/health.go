// ABOUTME: Health command for the estimator CLI
// ABOUTME: Checks backend connectivity and store status

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/engestimate/estimator/cli/internal/client"
	"github.com/engestimate/estimator/cli/internal/styles"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long: `Check connectivity to the estimator backend and verify store status.

Exit codes:
  0 - Backend healthy
  1 - Backend reachable but degraded
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url)

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	if resp.Status != "ok" {
		return 1
	}
	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *client.HealthResponse) string {
	status := styles.StatusOK.Render(resp.Status)
	if resp.Status != "ok" {
		status = styles.StatusCritical.Render(resp.Status)
	}
	lines := []string{
		styles.Row("Backend:", url),
		styles.Row("Status:", status),
		styles.Row("Store:", fmt.Sprintf("%s (%s)", resp.Store, resp.StoreStatus)),
		styles.Row("Cache entries:", fmt.Sprint(resp.CacheEntries)),
	}
	return strings.Join(lines, "\n")
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *client.HealthResponse) string {
	output := map[string]any{
		"backend":       url,
		"status":        resp.Status,
		"store":         resp.Store,
		"store_status":  resp.StoreStatus,
		"cache_entries": resp.CacheEntries,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
