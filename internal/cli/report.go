package cli

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/askeland/pinplace/pkg/design"
	"github.com/askeland/pinplace/pkg/ioplace"
	"github.com/askeland/pinplace/pkg/runstore"
)

// reportCommand creates the report command for inspecting placement results.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		interactive bool
		listRuns    bool
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "report [report.json]",
		Short: "Show a placement report as a table",
		Long: `Show a placement report as a table.

With a report file argument the command prints the per-pin placements and
any diagnostics. With --runs it lists the runs persisted via 'place --save'
instead; pass a run ID as the argument to print one of those.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listRuns {
				return c.runListRuns(cmd.Context(), limit)
			}
			if len(args) == 0 {
				return fmt.Errorf("report file or run ID required (or use --runs)")
			}
			return c.runReport(cmd.Context(), args[0], interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse placements interactively")
	cmd.Flags().BoolVar(&listRuns, "runs", false, "list persisted runs")
	cmd.Flags().IntVar(&limit, "limit", defaultListLimit, "maximum runs to list")

	return cmd
}

// runReport loads a report from a file (or the run store, when the argument
// parses as a run ID) and prints it.
func (c *CLI) runReport(ctx context.Context, arg string, interactive bool) error {
	rep, err := loadReportArg(ctx, arg)
	if err != nil {
		return err
	}

	if interactive {
		model := NewPlacementListModel(rep)
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return fmt.Errorf("interactive browser: %w", err)
		}
		return nil
	}

	fmt.Println(StyleTitle.Render(rep.Design))
	printKeyValue("Placed", strconv.Itoa(rep.Stats.Placed))
	printKeyValue("Sections", strconv.Itoa(rep.Stats.Sections))
	printKeyValue("Solve time", rep.Stats.SolveTime.String())
	printNewline()
	fmt.Println(placementTable(rep.Placements))

	if len(rep.Diagnostics) > 0 {
		printNewline()
		fmt.Println(diagnosticTable(rep.Diagnostics))
	}
	return nil
}

// loadReportArg resolves arg as a report file first, then as a run ID in the
// local run store.
func loadReportArg(ctx context.Context, arg string) (*design.Report, error) {
	rep, fileErr := readReportFile(arg)
	if fileErr == nil {
		return rep, nil
	}

	store, err := runstore.NewFileStore("")
	if err != nil {
		return nil, fileErr
	}
	run, err := store.Get(ctx, arg)
	if err != nil || run == nil {
		return nil, fileErr
	}
	return run.Report, nil
}

// runListRuns prints the persisted runs, newest first.
func (c *CLI) runListRuns(ctx context.Context, limit int) error {
	store, err := runstore.NewFileStore("")
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}

	runs, err := store.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		printInfo("No saved runs")
		return nil
	}

	rows := make([][]string, len(runs))
	for i, run := range runs {
		rows[i] = []string{
			run.ID,
			run.Report.Design,
			strconv.Itoa(run.Report.Stats.Placed),
			strconv.Itoa(run.Report.Stats.Warnings + run.Report.Stats.Errors),
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
		}
	}
	fmt.Println(styledTable([]string{"Run", "Design", "Placed", "Faults", "Created"}, rows))
	return nil
}

// =============================================================================
// Tables
// =============================================================================

// placementTable renders the per-pin placement table.
func placementTable(placements []ioplace.Placement) string {
	rows := make([][]string, len(placements))
	for i, p := range placements {
		rows[i] = []string{
			p.Name,
			p.Pos.String(),
			"m" + strconv.Itoa(p.Layer),
			strconv.Itoa(p.Slot),
		}
	}
	return styledTable([]string{"Pin", "Position", "Layer", "Slot"}, rows)
}

// diagnosticTable renders the diagnostics table, coloring by severity.
func diagnosticTable(diags []ioplace.Diagnostic) string {
	rows := make([][]string, len(diags))
	for i, d := range diags {
		rows[i] = []string{d.Severity.String(), d.Pin, string(d.Code), d.Message}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Severity", "Pin", "Code", "Message").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				if rows[row][0] == "error" {
					return StyleError
				}
				return StyleWarning
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// styledTable renders a plain rounded-border table.
func styledTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return StyleValue
		})
	return t.Render()
}
