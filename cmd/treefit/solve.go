package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/piwi3910/TreeFit/internal/engine"
	"github.com/piwi3910/TreeFit/internal/export"
	"github.com/piwi3910/TreeFit/internal/importer"
	"github.com/piwi3910/TreeFit/internal/model"
	"github.com/piwi3910/TreeFit/internal/project"
	"github.com/spf13/cobra"
)

// historyLimit is the number of runs kept in the history file.
const historyLimit = 100

type solveOptions struct {
	json       bool
	pdf        string
	xlsx       string
	labels     string
	regions    string
	noPrecheck bool
}

func newSolveCmd(c *cli) *cobra.Command {
	opts := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve <input>",
		Short: "Report which regions of a puzzle can hold their presents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write a PDF report to this path")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write an Excel report to this path")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "write QR region labels to this PDF path")
	cmd.Flags().StringVar(&opts.regions, "regions", "", "replace the puzzle's regions with a CSV or Excel region list")
	cmd.Flags().BoolVar(&opts.noPrecheck, "no-precheck", false, "always run the full search")
	return cmd
}

func (c *cli) runSolve(out io.Writer, input string, opts *solveOptions) error {
	puzzle, err := c.loadPuzzle(input, opts.regions)
	if err != nil {
		return err
	}

	settings := c.config.Solver
	c.config.ApplyToSettings(&settings)
	if opts.noPrecheck {
		settings.UsePrecheck = false
	}
	if opts.pdf != "" {
		settings.KeepWitness = true
	}

	report := engine.New(settings).Run(filepath.Base(input), puzzle)

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return sysErr(fmt.Errorf("failed to write report: %w", err))
		}
	} else {
		printReport(out, report)
	}

	if err := c.writeExports(report, opts); err != nil {
		return err
	}
	c.recordRun(input, report)
	return nil
}

// loadPuzzle parses input and, when regionsPath is set, swaps in the
// regions listed in that CSV or Excel file.
func (c *cli) loadPuzzle(input, regionsPath string) (model.Puzzle, error) {
	puzzle, err := importer.ImportPuzzleFile(input)
	if err != nil {
		return model.Puzzle{}, err
	}
	if regionsPath == "" {
		return puzzle, nil
	}

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(regionsPath)) {
	case ".xlsx", ".xls":
		result = importer.ImportRegionsExcel(regionsPath)
	default:
		result = importer.ImportRegionsCSV(regionsPath)
	}
	for _, w := range result.Warnings {
		slog.Warn("region import", "file", regionsPath, "warning", w)
	}
	if len(result.Errors) > 0 {
		return model.Puzzle{}, fmt.Errorf("%s: %s", regionsPath, strings.Join(result.Errors, "; "))
	}
	puzzle.Regions = result.Regions
	return puzzle, nil
}

func (c *cli) writeExports(report model.Report, opts *solveOptions) error {
	exports := []struct {
		path  string
		write func(string, model.Report) error
	}{
		{opts.pdf, export.ExportPDF},
		{opts.xlsx, export.ExportExcel},
		{opts.labels, export.ExportLabels},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		path := c.exportPath(e.path)
		if err := e.write(path, report); err != nil {
			return sysErr(fmt.Errorf("failed to export %s: %w", path, err))
		}
		slog.Info("report exported", "path", path)
	}
	return nil
}

// exportPath resolves relative export paths against the configured export directory.
func (c *cli) exportPath(path string) string {
	if filepath.IsAbs(path) || c.config.ExportDir == "" {
		return path
	}
	return filepath.Join(c.config.ExportDir, path)
}

// recordRun appends the run to the history and the recent inputs list.
// Failures are logged; the run itself has already succeeded.
func (c *cli) recordRun(input string, report model.Report) {
	rec := model.NewRunRecord(input, report, time.Now().UTC().Format(time.RFC3339))
	if _, err := project.AppendHistory(c.historyPath(), rec, historyLimit); err != nil {
		slog.Warn("failed to record run", "error", err)
	}

	if abs, err := filepath.Abs(input); err == nil {
		input = abs
	}
	c.config.AddRecentInput(input)
	if err := project.SaveAppConfig(c.configPath, c.config); err != nil {
		slog.Warn("failed to save config", "error", err)
	}
}

func printReport(out io.Writer, report model.Report) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REGION\tSIZE\tPRESENTS\tFILL\tRESULT\tDECISION")
	for _, r := range report.Results {
		verdict := "no fit"
		if r.Fits {
			verdict = "fits"
		}
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%.1f%%\t%s\t%s\n",
			r.Region.Label, r.Region.Width, r.Region.Height,
			r.Stats.PresentCount, r.Stats.FillPercent, verdict, r.Decision)
	}
	tw.Flush()
	fmt.Fprintf(out, "%d of %d regions fit\n", report.FitCount, report.RegionCount())
}
