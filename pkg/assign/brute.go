package assign

// BruteForceLimit is the largest square dimension BruteForce accepts.
// 10! ≈ 3.6M matchings is the most that stays comfortably interactive.
const BruteForceLimit = 10

// BruteForce finds a minimum-cost maximum-cardinality matching by
// enumerating every permutation of the (padded) square matrix. It returns
// the optimal assignment in the same shape as [Solve] plus its total cost
// per [Total].
//
// BruteForce exists to cross-check Solve on small inputs, both in tests
// and behind the solve command's --check flag. It returns nil if
// max(rows, cols) exceeds BruteForceLimit.
func BruteForce(m Matrix) ([]int, int64) {
	rows := m.Rows()
	cols := m.Cols()
	if rows == 0 {
		return nil, 0
	}
	if cols == 0 {
		result := make([]int, rows)
		for i := range result {
			result[i] = Unassigned
		}
		return result, 0
	}

	dim := max(rows, cols)
	if dim > BruteForceLimit {
		return nil, 0
	}

	// Score a permutation of columns over the padded square. Padding cells
	// count as a fixed large penalty so maximum cardinality always wins;
	// Infeasible real cells get the same penalty plus one so the search
	// prefers leaving a hopeless row unmatched over occupying a column.
	const padPenalty = int64(1) << 40
	score := func(perm []int) int64 {
		var total int64
		for i := 0; i < dim; i++ {
			j := perm[i]
			if i >= rows || j >= cols {
				total += padPenalty
				continue
			}
			if m[i][j] == Infeasible {
				total += padPenalty + 1
				continue
			}
			total += m[i][j]
		}
		return total
	}

	best := make([]int, dim)
	bestScore := int64(-1)
	permutations(dim, func(perm []int) {
		if s := score(perm); bestScore < 0 || s < bestScore {
			bestScore = s
			copy(best, perm)
		}
	})

	result := make([]int, rows)
	for i := 0; i < rows; i++ {
		if j := best[i]; j < cols {
			result[i] = j
		} else {
			result[i] = Unassigned
		}
	}
	return result, Total(m, result)
}

// permutations visits every permutation of [0, n) exactly once using the
// iterative form of Heap's algorithm. The slice passed to visit is reused
// between calls; visit must not retain it.
func permutations(n int, visit func([]int)) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	visit(perm)

	state := make([]int, n)
	for i := 0; i < n; {
		if state[i] < i {
			if i&1 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[state[i]], perm[i] = perm[i], perm[state[i]]
			}
			visit(perm)
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
}
