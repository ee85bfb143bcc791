package tablesim

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestTable(teamCount int, matches []simMatch, adj adjustments) []TableRow {
	rows := make([]TableRow, teamCount)
	order := make([]int, teamCount)
	buildTable(matches, adj, rows, order)
	return rows
}

func played(home, away, homeGoals, awayGoals int) simMatch {
	return simMatch{home: home, away: away, homeGoals: homeGoals, awayGoals: awayGoals, played: true}
}

func TestPointsMapping(t *testing.T) {
	rows := buildTestTable(2, []simMatch{played(0, 1, 2, 1)}, adjustments{})
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, 0, rows[1].Points)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 2, rows[1].Rank)

	rows = buildTestTable(2, []simMatch{played(0, 1, 1, 1)}, adjustments{})
	assert.Equal(t, 1, rows[0].Points)
	assert.Equal(t, 1, rows[1].Points)
}

func TestGoalAccumulation(t *testing.T) {
	rows := buildTestTable(3, []simMatch{
		played(0, 1, 3, 1),
		played(1, 2, 2, 2),
		played(2, 0, 0, 1),
	}, adjustments{})

	assert.Equal(t, TableRow{Team: 0, Rank: 1, GoalsFor: 4, GoalsAgainst: 1, GoalDiff: 3, Points: 6}, rows[0])
	assert.Equal(t, TableRow{Team: 1, Rank: 3, GoalsFor: 3, GoalsAgainst: 5, GoalDiff: -2, Points: 1}, rows[1])
	assert.Equal(t, TableRow{Team: 2, Rank: 2, GoalsFor: 2, GoalsAgainst: 3, GoalDiff: -1, Points: 1}, rows[2])
}

func TestTiedTeamsShareWorstPosition(t *testing.T) {
	// Teams 0 and 1 finish with identical points, goal difference and
	// goals scored: both take rank 2 and nobody is ranked 1.
	rows := buildTestTable(3, []simMatch{
		played(0, 2, 1, 0),
		played(1, 2, 1, 0),
	}, adjustments{})

	assert.Equal(t, 2, rows[0].Rank)
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, 3, rows[2].Rank)
}

func TestAllDrawsCascadeToGoalsFor(t *testing.T) {
	// Every match drawn: points and goal difference tie everywhere, so
	// goals scored decides the order.
	rows := buildTestTable(3, []simMatch{
		played(0, 1, 2, 2),
		played(1, 2, 1, 1),
		played(2, 0, 3, 3),
	}, adjustments{})

	for _, row := range rows {
		assert.Equal(t, 2, row.Points)
		assert.Equal(t, 0, row.GoalDiff)
	}
	assert.Equal(t, 1, rows[0].Rank) // 5 goals scored
	assert.Equal(t, 2, rows[2].Rank) // 4
	assert.Equal(t, 3, rows[1].Rank) // 3
}

func TestEmptyScheduleUsesAdjustmentsOnly(t *testing.T) {
	rows := buildTestTable(3, nil, adjustments{
		points:   []int{3, 1, 2},
		goalsFor: []int{10, 20, 30},
	})

	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 3, rows[1].Rank)
	assert.Equal(t, 2, rows[2].Rank)
	assert.Equal(t, 20, rows[1].GoalsFor)
}

func TestPointsAdjustmentShiftsTable(t *testing.T) {
	// A heavy penalty drops an otherwise dominant team to the bottom.
	rows := buildTestTable(2, []simMatch{played(0, 1, 5, 0)}, adjustments{
		points: []int{-50, 0},
	})

	assert.Equal(t, 2, rows[0].Rank)
	assert.Equal(t, 1, rows[1].Rank)
	assert.Equal(t, -47, rows[0].Points)
}

func TestTableOrderInvariance(t *testing.T) {
	matches := []simMatch{
		played(0, 1, 2, 0),
		played(1, 2, 1, 1),
		played(2, 3, 0, 3),
		played(3, 0, 2, 2),
		played(1, 3, 4, 1),
		played(2, 0, 1, 2),
	}

	want := buildTestTable(4, matches, adjustments{})

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]simMatch, len(matches))
		copy(shuffled, matches)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		require.Equal(t, want, buildTestTable(4, shuffled, adjustments{}))
	}
}

func TestRankScorePacking(t *testing.T) {
	// Points dominate goal difference, goal difference dominates goals
	// scored.
	assert.Greater(t,
		rankScore(TableRow{Points: 1, GoalDiff: -20, GoalsFor: 0}),
		rankScore(TableRow{Points: 0, GoalDiff: 30, GoalsFor: 90}))
	assert.Greater(t,
		rankScore(TableRow{Points: 10, GoalDiff: 1, GoalsFor: 0}),
		rankScore(TableRow{Points: 10, GoalDiff: 0, GoalsFor: 50}))
}

func TestRanksCoverTableWithoutTies(t *testing.T) {
	// Distinct adjustment spacing forces distinct rank scores, so the
	// ranks are exactly 1..T.
	adjPoints := []int{0, 1000, 2000, 3000, 4000}
	rows := buildTestTable(5, []simMatch{played(0, 1, 1, 0)}, adjustments{points: adjPoints})

	ranks := make([]int, 0, len(rows))
	for _, row := range rows {
		ranks = append(ranks, row.Rank)
	}
	sort.Ints(ranks)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ranks)
}
