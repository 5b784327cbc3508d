package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/askeland/pinplace/pkg/assign"
)

// solveCommand creates the solve command for running the raw assignment
// solver on a cost matrix (debug tool).
func (c *CLI) solveCommand() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "solve [matrix.json]",
		Short: "Solve a raw cost matrix (debug tool)",
		Long: `Solve a raw cost matrix with the assignment solver.

The input is a JSON array of rows, one per pin, each holding the cost of
every column (slot). Negative entries mark infeasible cells. The command
prints the chosen column per row and the total cost.`,
		Example: `  # 3 pins over 3 slots
  echo '[[4,1,3],[2,0,5],[3,2,2]]' > m.json
  pinplace solve m.json

  # Cross-check against exhaustive search (≤ 10 rows)
  pinplace solve m.json --check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(args[0], check)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "cross-check the result against exhaustive search")

	return cmd
}

// runSolve reads the matrix, solves it, and prints the assignment.
func runSolve(input string, check bool) error {
	m, err := readMatrix(input)
	if err != nil {
		return err
	}

	cols := assign.Solve(m)
	total := assign.Total(m, cols)

	for row, col := range cols {
		if col == assign.Unassigned {
			printWarning("row %d: unassigned", row)
			continue
		}
		printKeyValue(fmt.Sprintf("row %d", row), fmt.Sprintf("column %d (cost %d)", col, m[row][col]))
	}
	printKeyValue("Total cost", strconv.FormatInt(total, 10))

	if check {
		if len(m) > assign.BruteForceLimit {
			return fmt.Errorf("--check needs at most %d rows, got %d", assign.BruteForceLimit, len(m))
		}
		_, want := assign.BruteForce(m)
		if total != want {
			return fmt.Errorf("solver cost %d disagrees with exhaustive search %d", total, want)
		}
		printSuccess("Exhaustive search agrees")
	}

	return nil
}

// readMatrix parses a JSON cost matrix, mapping negative cells to the
// solver's infeasible sentinel.
func readMatrix(path string) (assign.Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matrix %s: %w", path, err)
	}

	var raw [][]int64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse matrix %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("matrix %s is empty", path)
	}

	m := make(assign.Matrix, len(raw))
	for i, row := range raw {
		if len(row) != len(raw[0]) {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i, len(row), len(raw[0]))
		}
		m[i] = make([]int64, len(row))
		for j, v := range row {
			if v < 0 {
				m[i][j] = assign.Infeasible
			} else {
				m[i][j] = v
			}
		}
	}
	return m, nil
}
