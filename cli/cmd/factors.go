// ABOUTME: Factors command for the estimator CLI
// ABOUTME: Lists complexity factors and confidence levels from the backend catalogue

package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/engestimate/estimator/cli/internal/client"
	"github.com/engestimate/estimator/cli/internal/styles"
	"github.com/spf13/cobra"
)

var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "List complexity factors",
	Long:  `List the complexity factors the estimator understands, their weights, and the confidence levels it reports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		return runFactors(ctx, client.New(GetAPIURL()), cmd.OutOrStdout(), IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(factorsCmd)
}

func runFactors(ctx context.Context, c *client.Client, w io.Writer, jsonOut bool) error {
	resp, err := c.ComplexityFactors(ctx)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(w, resp)
	}

	fmt.Fprintln(w, styles.Title.Render("Complexity factors"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FACTOR\tWEIGHT\tIMPACT\tDESCRIPTION")
	for _, f := range resp.Factors {
		fmt.Fprintf(tw, "%s\t%.2f\t+%d%%\t%s\n", f.Name, f.Value, f.ImpactPercent, f.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Title.Render("Confidence levels"))
	for _, l := range resp.ConfidenceLevels {
		fmt.Fprintf(w, "%s %s\n", styles.Badge(string(l.Level), styles.ConfidenceStyle(l.Level)), l.Description)
	}
	return nil
}
