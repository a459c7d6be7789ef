package assdraw

import "math"

// minCostAssignment solves the rectangular assignment problem over the
// given cost matrix using the Hungarian algorithm with potentials. It
// returns, for each row, the column assigned to it, or -1 when there are
// more rows than columns and the row stays unassigned.
//
// Runs in O(n·m·min(n,m)) time. Costs must be finite.
func minCostAssignment(cost [][]float64) []int {
	rows := len(cost)
	if rows == 0 {
		return nil
	}
	cols := len(cost[0])
	if cols == 0 {
		out := make([]int, rows)
		for i := range out {
			out[i] = -1
		}
		return out
	}

	if rows > cols {
		// Solve the transposed problem and invert the result.
		t := make([][]float64, cols)
		for j := 0; j < cols; j++ {
			t[j] = make([]float64, rows)
			for i := 0; i < rows; i++ {
				t[j][i] = cost[i][j]
			}
		}
		byCol := minCostAssignment(t)
		out := make([]int, rows)
		for i := range out {
			out[i] = -1
		}
		for j, i := range byCol {
			if i >= 0 {
				out[i] = j
			}
		}
		return out
	}

	// Potentials method, 1-based internally. p[j] holds the row matched
	// to column j; column 0 is the virtual unmatched column.
	u := make([]float64, rows+1)
	v := make([]float64, cols+1)
	p := make([]int, cols+1)
	way := make([]int, cols+1)

	for i := 1; i <= rows; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, cols+1)
		used := make([]bool, cols+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		for p[j0] != 0 {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= cols; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= cols; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	out := make([]int, rows)
	for i := range out {
		out[i] = -1
	}
	for j := 1; j <= cols; j++ {
		if p[j] != 0 {
			out[p[j]-1] = j - 1
		}
	}
	return out
}
