package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/askeland/pinplace/pkg/design"
	"github.com/askeland/pinplace/pkg/pipeline"
)

// renderCommand creates the render command for drawing a saved placement.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [design.toml] [report.json]",
		Short: "Render artifacts from a saved placement report",
		Long: `Render artifacts from a saved placement report.

The render command takes a design file and a report (produced by
'place -f json') and draws the placed boundary without re-solving the
assignment. Use it to try different scales or formats on a finished run.

Rendered artifacts are cached locally, keyed by the report content.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], args[1], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "svg", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "drawing scale for dot/svg/png output")
	cmd.Flags().BoolVar(&opts.ShowSlots, "show-slots", opts.ShowSlots, "draw unoccupied slots")

	return cmd
}

// runRender loads the design and report, renders, and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, designPath, reportPath string, opts pipeline.Options, output string, noCache bool) error {
	d, err := design.Load(designPath)
	if err != nil {
		return fmt.Errorf("load design %s: %w", designPath, err)
	}
	rep, err := readReportFile(reportPath)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Rendering placement...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, d, rep, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.StopWithError("Render cancelled")
		} else {
			spinner.StopWithError("Render failed")
		}
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	base := basePath(output, reportPath)
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Rendered %s", d.Name)
	printStats(len(d.Pins), len(d.Slots), cacheHit)
	return nil
}

// readReportFile reads a placement report from disk.
func readReportFile(path string) (*design.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report %s: %w", path, err)
	}
	defer f.Close()
	rep, err := design.ReadReport(f)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}
	return rep, nil
}
