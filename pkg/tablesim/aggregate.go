package tablesim

import "sort"

// aggregateRanks normalizes the frequency matrix to probabilities and
// reorders its rows by each team's rank sum, strongest first. It returns
// the reordered matrix, the matching permutation of the caller's labels,
// and the mean final rank per (reordered) team.
func aggregateRanks(freq [][]int, names []string, iterations int) ([][]float64, []string, []float64) {
	teamCount := len(freq)

	rankSums := make([]int64, teamCount)
	for t := 0; t < teamCount; t++ {
		for r, n := range freq[t] {
			rankSums[t] += int64(r+1) * int64(n)
		}
	}

	order := make([]int, teamCount)
	for t := range order {
		order[t] = t
	}
	// Stable so equal rank sums keep the input ordering deterministically.
	sort.SliceStable(order, func(i, j int) bool {
		return rankSums[order[i]] < rankSums[order[j]]
	})

	matrix := make([][]float64, teamCount)
	outNames := make([]string, teamCount)
	expected := make([]float64, teamCount)
	for i, t := range order {
		row := make([]float64, teamCount)
		for r, n := range freq[t] {
			row[r] = float64(n) / float64(iterations)
		}
		matrix[i] = row
		outNames[i] = names[t]
		expected[i] = float64(rankSums[t]) / float64(iterations)
	}

	return matrix, outNames, expected
}
