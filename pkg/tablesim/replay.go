package tablesim

import "math/rand"

// replaySeason walks the schedule in order, threading a single mutable
// rating vector through every match. Known results update the ratings as
// they stand when the match is reached; unknown results are sampled first
// and then applied the same way. Sampled scores are written back into the
// schedule so the table can be built from it afterwards.
func replaySeason(matches []simMatch, elos []float64, p modelParams, rng *rand.Rand) {
	for i := range matches {
		m := &matches[i]
		if !m.played {
			m.homeGoals, m.awayGoals = sampleGoals(rng.Float64(), rng.Float64(), elos[m.home], elos[m.away], p)
			m.played = true
		}
		elos[m.home], elos[m.away] = updateKnown(elos[m.home], elos[m.away], m.homeGoals, m.awayGoals, p)
	}
}

// toSimMatches converts the wire schedule into the flat form the
// iteration loop clones.
func toSimMatches(schedule []Match) []simMatch {
	matches := make([]simMatch, len(schedule))
	for i, m := range schedule {
		matches[i] = simMatch{home: m.Home, away: m.Away}
		if m.Played() {
			matches[i].homeGoals = *m.HomeGoals
			matches[i].awayGoals = *m.AwayGoals
			matches[i].played = true
		}
	}
	return matches
}
