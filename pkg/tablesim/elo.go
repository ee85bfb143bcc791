package tablesim

import "math"

// eloExpectation maps a rating difference (home minus away, home advantage
// already added) to the home side's expected score. The difference is
// clamped so a gap beyond 400 points cannot push the expectation past
// ~0.909 and blow up the update step.
func eloExpectation(delta float64) float64 {
	if delta > eloDeltaClamp {
		delta = eloDeltaClamp
	} else if delta < -eloDeltaClamp {
		delta = -eloDeltaClamp
	}
	return 1 / (1 + math.Pow(10, -delta/400))
}

// updateKnown applies the rating exchange for a match with a known score
// and returns the new home and away ratings. The exchange is zero-sum and
// scaled by the square root of the winning margin.
func updateKnown(eloHome, eloAway float64, goalsHome, goalsAway int, p modelParams) (float64, float64) {
	expected := eloExpectation(eloHome + p.homeAdvantage - eloAway)

	actual := 0.0
	switch {
	case goalsHome > goalsAway:
		actual = 1.0
	case goalsHome == goalsAway:
		actual = 0.5
	}

	margin := goalsHome - goalsAway
	if margin < 0 {
		margin = -margin
	}
	if margin < 1 {
		margin = 1
	}

	shift := p.modFactor * math.Sqrt(float64(margin)) * (actual - expected)
	return eloHome + shift, eloAway - shift
}

// goalMeans fits the two Poisson means from the rating difference. The
// line is symmetric: the away mean uses the negated difference.
func goalMeans(delta float64, p modelParams) (float64, float64) {
	home := delta*p.toreSlope + p.toreIntercept
	away := -delta*p.toreSlope + p.toreIntercept
	if home < minGoalMean {
		home = minGoalMean
	}
	if away < minGoalMean {
		away = minGoalMean
	}
	return home, away
}

// poissonQuantile inverts the Poisson CDF at mean lambda: it returns the
// smallest g with cdf(g) > u. A u that lands exactly on a CDF step
// advances to the next count.
func poissonQuantile(u, lambda float64) int {
	p := math.Exp(-lambda)
	cdf := p
	g := 0
	for cdf <= u {
		g++
		p *= lambda / float64(g)
		cdf += p
		if p == 0 {
			// Mass exhausted by underflow; u was in the far tail.
			break
		}
	}
	return g
}

// sampleGoals draws a score for an unplayed match from two uniform
// variates. The home draw is consumed first.
func sampleGoals(uHome, uAway, eloHome, eloAway float64, p modelParams) (int, int) {
	homeMean, awayMean := goalMeans(eloHome+p.homeAdvantage-eloAway, p)
	return poissonQuantile(uHome, homeMean), poissonQuantile(uAway, awayMean)
}
