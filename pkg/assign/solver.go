package assign

import "math"

// Infeasible marks a matrix cell whose pairing is not acceptable.
// It is the maximum representable cost, never "unknown". Callers must not
// do arithmetic on it; build sums with a saturating type and convert at
// the boundary.
const Infeasible int64 = math.MaxInt64

// Unassigned is the result value for a row that received no column.
// It can only appear when the matrix has fewer columns than rows.
const Unassigned = -1

// Matrix is a dense rectangular cost matrix. All rows must have the same
// length. A nil or empty matrix is valid and solves to an empty assignment.
type Matrix [][]int64

// Rows returns the number of rows in the matrix.
func (m Matrix) Rows() int { return len(m) }

// Cols returns the number of columns, or 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// bigCost stands in for Infeasible and padding inside the float64 solver
// core. It is large enough to dominate any realistic cost sum and small
// enough that potential updates never overflow.
const bigCost = 1e18

// Solve computes a minimum-cost maximum-cardinality matching of rows to
// columns and returns result[row] = column, or Unassigned for rows left
// over when columns < rows.
//
// Infeasible cells are costs, not constraints: a row whose cells are all
// Infeasible is still matched whenever enough columns exist. Solve never
// modifies m.
func Solve(m Matrix) []int {
	rows := m.Rows()
	cols := m.Cols()
	if rows == 0 {
		return nil
	}
	if cols == 0 {
		result := make([]int, rows)
		for i := range result {
			result[i] = Unassigned
		}
		return result
	}

	// Pad to a square matrix. Padded cells carry bigCost so real pairings
	// are always preferred when available.
	dim := max(rows, cols)
	c := make([][]float64, dim)
	for i := 0; i < dim; i++ {
		c[i] = make([]float64, dim)
		for j := 0; j < dim; j++ {
			switch {
			case i >= rows || j >= cols:
				c[i][j] = bigCost
			case m[i][j] == Infeasible:
				c[i][j] = bigCost
			default:
				c[i][j] = float64(m[i][j])
			}
		}
	}

	// Hungarian method with potentials, 1-indexed for cleaner arithmetic.
	// Column 0 is a virtual column that roots each augmenting path.
	const inf = math.MaxFloat64 / 2
	u := make([]float64, dim+1)   // row potentials
	v := make([]float64, dim+1)   // column potentials
	p := make([]int, dim+1)       // p[j] = row matched to column j
	way := make([]int, dim+1)     // way[j] = previous column on the path
	minv := make([]float64, dim+1)
	used := make([]bool, dim+1)

	for i := 1; i <= dim; i++ {
		p[0] = i
		j0 := 0
		for j := 1; j <= dim; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1

			for j := 1; j <= dim; j++ {
				if used[j] {
					continue
				}
				cur := c[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			if j1 < 0 {
				break
			}

			for j := 0; j <= dim; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Augment along the alternating path back to the virtual column.
		for j0 != 0 {
			p[j0] = p[way[j0]]
			j0 = way[j0]
		}
	}

	result := make([]int, rows)
	for i := range result {
		result[i] = Unassigned
	}
	for j := 1; j <= dim; j++ {
		row := p[j] - 1
		col := j - 1
		if row >= 0 && row < rows && col < cols {
			result[row] = col
		}
	}
	return result
}

// Total sums the cost of an assignment over m. The sum saturates to
// Infeasible as soon as any selected cell is Infeasible. Rows with
// Unassigned contribute nothing.
func Total(m Matrix, assignment []int) int64 {
	var total int64
	for row, col := range assignment {
		if col == Unassigned {
			continue
		}
		cost := m[row][col]
		if cost == Infeasible {
			return Infeasible
		}
		total += cost
	}
	return total
}
