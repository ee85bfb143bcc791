package tablesim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateRanksOrdersByRankSum(t *testing.T) {
	// Team 1 mostly wins, team 0 mostly finishes last, team 2 sits in
	// between: output rows come back strongest first.
	freq := [][]int{
		{0, 2, 8},
		{9, 1, 0},
		{1, 7, 2},
	}
	names := []string{"bottom", "top", "middle"}

	matrix, outNames, expected := aggregateRanks(freq, names, 10)

	assert.Equal(t, []string{"top", "middle", "bottom"}, outNames)
	assert.Equal(t, []float64{0.9, 0.1, 0}, matrix[0])
	assert.InDelta(t, 1.1, expected[0], 1e-12)
	assert.InDelta(t, 2.1, expected[1], 1e-12)
	assert.InDelta(t, 2.8, expected[2], 1e-12)
}

func TestAggregateRanksStableOnTies(t *testing.T) {
	// Identical rank sums keep the input order, so output is
	// deterministic regardless of how the iterations were scheduled.
	freq := [][]int{
		{5, 5},
		{5, 5},
	}

	_, outNames, _ := aggregateRanks(freq, []string{"first", "second"}, 10)
	assert.Equal(t, []string{"first", "second"}, outNames)
}
