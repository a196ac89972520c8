// ABOUTME: Entry point for the estimator CLI
// ABOUTME: Command-line client for project estimates, costing, and staffing checks

package main

import (
	"fmt"
	"os"

	"github.com/engestimate/estimator/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
