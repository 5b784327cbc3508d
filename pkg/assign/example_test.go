package assign_test

import (
	"fmt"

	"github.com/askeland/pinplace/pkg/assign"
)

func ExampleSolve() {
	// Three candidate positions (rows) compete for two pins (columns).
	// The middle position is cheap for pin 0, the last one for pin 1.
	m := assign.Matrix{
		{5, assign.Infeasible},
		{1, 9},
		{assign.Infeasible, 2},
	}

	result := assign.Solve(m)
	for row, col := range result {
		if col == assign.Unassigned {
			fmt.Printf("row %d: unmatched\n", row)
			continue
		}
		fmt.Printf("row %d: column %d (cost %d)\n", row, col, m[row][col])
	}
	fmt.Printf("total: %d\n", assign.Total(m, result))
	// Output:
	// row 0: unmatched
	// row 1: column 0 (cost 1)
	// row 2: column 1 (cost 2)
	// total: 3
}

func ExampleBruteForce() {
	m := assign.Matrix{
		{4, 1},
		{2, 0},
	}
	result, total := assign.BruteForce(m)
	fmt.Println(result, total)
	// Output:
	// [1 0] 3
}
