package tablesim

import "sort"

// rankScore packs the tie-break order (points, then goal difference, then
// goals scored) into a single comparable scalar. The weights leave ample
// headroom for any realistic season's component magnitudes.
func rankScore(r TableRow) int {
	return 10000*r.Points + 100*r.GoalDiff + r.GoalsFor
}

// buildTable accumulates a completed schedule into rows, starting from the
// adjustment vectors, and assigns ranks. rows and order are caller-owned
// scratch of length T, reused across iterations.
func buildTable(matches []simMatch, adj adjustments, rows []TableRow, order []int) {
	for t := range rows {
		rows[t] = TableRow{Team: t}
		if adj.points != nil {
			rows[t].Points = adj.points[t]
		}
		if adj.goalsFor != nil {
			rows[t].GoalsFor = adj.goalsFor[t]
		}
		if adj.goalsAgainst != nil {
			rows[t].GoalsAgainst = adj.goalsAgainst[t]
		}
		if adj.goalDiff != nil {
			rows[t].GoalDiff = adj.goalDiff[t]
		}
	}

	for _, m := range matches {
		diff := m.homeGoals - m.awayGoals
		home := &rows[m.home]
		away := &rows[m.away]

		home.GoalsFor += m.homeGoals
		home.GoalsAgainst += m.awayGoals
		home.GoalDiff += diff
		away.GoalsFor += m.awayGoals
		away.GoalsAgainst += m.homeGoals
		away.GoalDiff -= diff

		switch {
		case diff > 0:
			home.Points += 3
		case diff < 0:
			away.Points += 3
		default:
			home.Points++
			away.Points++
		}
	}

	assignRanks(rows, order)
}

// assignRanks sorts teams by descending rank score and numbers them from
// 1. Teams with identical scores all take the worst position of their
// tied block.
func assignRanks(rows []TableRow, order []int) {
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return rankScore(rows[order[i]]) > rankScore(rows[order[j]])
	})

	i := 0
	for i < len(order) {
		score := rankScore(rows[order[i]])
		j := i
		for j+1 < len(order) && rankScore(rows[order[j+1]]) == score {
			j++
		}
		for k := i; k <= j; k++ {
			rows[order[k]].Rank = j + 1
		}
		i = j + 1
	}
}
