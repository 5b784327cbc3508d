package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/askeland/pinplace/pkg/pipeline"
	"github.com/askeland/pinplace/pkg/runstore"
)

// placeCommand creates the place command, the main entry point of the tool.
func (c *CLI) placeCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
		save       bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "place [design.toml]",
		Short: "Assign I/O pins to boundary slots",
		Long: `Assign I/O pins to boundary slots.

The place command reads a design file (TOML or JSON) describing the die
boundary, its legal pin slots, the pins with their net sinks, and the
constraint sections, then solves a minimum-cost assignment per section.
Pin groups stay contiguous and mirrored pairs land on geometrically
opposed slots.

Placement results are cached locally, keyed by the design content, for
faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runPlace(cmd.Context(), args[0], opts, output, noCache, save)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even on a cache hit")

	// Placement flags
	cmd.Flags().IntVarP(&opts.Workers, "workers", "w", pipeline.DefaultWorkers, "parallel section workers (mirrored designs run serially)")
	cmd.Flags().BoolVar(&save, "save", false, "persist the run under the local run store")

	// Render flags
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "drawing scale for dot/svg/png output")
	cmd.Flags().BoolVar(&opts.ShowSlots, "show-slots", opts.ShowSlots, "draw unoccupied slots in visual output")

	return cmd
}

// runPlace executes the pipeline and writes the requested artifacts.
func (c *CLI) runPlace(ctx context.Context, input string, opts pipeline.Options, output string, noCache, save bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.DesignPath = input
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Placing pins...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.StopWithError("Placement cancelled")
		} else {
			spinner.StopWithError("Placement failed")
		}
		return fmt.Errorf("place %s: %w", input, err)
	}
	spinner.Stop()
	prog.done("Solved %d sections", result.Report.Stats.Sections)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(output, input)
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}

	if save {
		store, err := runstore.NewFileStore("")
		if err != nil {
			return fmt.Errorf("open run store: %w", err)
		}
		run := runstore.New(result.Design.Hash, result.Report)
		if err := store.Put(ctx, run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		printDetail("Run: %s", run.ID)
	}

	stats := result.Report.Stats
	printSuccess("Placed %d of %d pins", stats.Placed, result.Stats.PinCount)
	printStats(result.Stats.PinCount, result.Stats.SlotCount, result.CacheInfo.PlaceHit)
	if stats.Warnings > 0 || stats.Errors > 0 {
		printWarning("%d warnings, %d errors — see the report for details", stats.Warnings, stats.Errors)
	}
	if _, ok := result.Artifacts[pipeline.FormatJSON]; ok {
		printNewline()
		printNextStep("Inspect", "pinplace report "+base+".json")
	}

	return nil
}
