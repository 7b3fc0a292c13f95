package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/piwi3910/TreeFit/internal/engine"
	"github.com/spf13/cobra"
)

// errDisagreement is returned when the pre-check and the full search
// disagree on some region.
var errDisagreement = errors.New("pre-check and search disagree")

func newVerifyCmd(c *cli) *cobra.Command {
	var regions string
	cmd := &cobra.Command{
		Use:   "verify <input>",
		Short: "Check the pre-check's verdicts against the full search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVerify(cmd.OutOrStdout(), args[0], regions)
		},
	}
	cmd.Flags().StringVar(&regions, "regions", "", "replace the puzzle's regions with a CSV or Excel region list")
	return cmd
}

func (c *cli) runVerify(out io.Writer, input, regionsPath string) error {
	puzzle, err := c.loadPuzzle(input, regionsPath)
	if err != nil {
		return err
	}

	settings := c.config.Solver
	c.config.ApplyToSettings(&settings)

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(settings), puzzle)
	for _, r := range results {
		fmt.Fprintf(out, "%-12s %d of %d fit, %d searched, %d nodes, %.1f ms\n",
			r.Scenario.Name, r.FitCount, r.Report.RegionCount(), r.SearchCount, r.NodesVisited, r.TotalDuration)
	}

	disagreements := engine.FindDisagreements(results)
	if len(disagreements) == 0 {
		fmt.Fprintln(out, "all scenarios agree")
		return nil
	}
	for _, d := range disagreements {
		fmt.Fprintln(out, d.String())
	}
	return sysErr(fmt.Errorf("%d regions: %w", len(disagreements), errDisagreement))
}
