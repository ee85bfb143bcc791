package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/jhw/go-tablesim/pkg/tablesim"
	"github.com/jhw/go-tablesim/pkg/telemetry"
)

// runDemo synthesizes a mid-season 18-team league and prints the rank
// probabilities, so the engine can be exercised without any fixture
// files.
func runDemo() {
	iterations := 10000
	seed := int64(2026)
	playedRounds := 17 // half the double round-robin

	for _, arg := range os.Args[2:] {
		switch {
		case strings.HasPrefix(arg, "--iterations="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--iterations="))
			if err != nil {
				telemetry.Errorf("invalid iterations: %s", arg)
				os.Exit(1)
			}
			iterations = n
		case strings.HasPrefix(arg, "--seed="):
			n, err := strconv.ParseInt(strings.TrimPrefix(arg, "--seed="), 10, 64)
			if err != nil {
				telemetry.Errorf("invalid seed: %s", arg)
				os.Exit(1)
			}
			seed = n
		default:
			telemetry.Errorf("unknown argument: %s", arg)
			os.Exit(1)
		}
	}

	const teamCount = 18
	names := make([]string, teamCount)
	elos := make([]float64, teamCount)
	rng := rand.New(rand.NewSource(seed))
	for i := range names {
		names[i] = fmt.Sprintf("Club %02d", i+1)
		elos[i] = 1500 + 120*rng.NormFloat64()
	}

	// Every ordered pairing once, in home-team order. The counter advances
	// per fixture, so in each block of 2*teamCount-2 fixtures the first
	// playedRounds carry sampled historical scores and the rest stay open.
	// With 18 teams a block is two clubs' home fixtures: the even-indexed
	// clubs have played all their home matches, the odd-indexed none. The
	// played fixtures are not grouped by matchday.
	var schedule []tablesim.Match
	round := 0
	for home := 0; home < teamCount; home++ {
		for away := 0; away < teamCount; away++ {
			if home == away {
				continue
			}
			m := tablesim.Match{Home: home, Away: away}
			if round%(2*teamCount-2) < playedRounds {
				h := rng.Intn(4)
				a := rng.Intn(3)
				m.HomeGoals = &h
				m.AwayGoals = &a
			}
			round++
			schedule = append(schedule, m)
		}
	}

	req := tablesim.Request{
		Schedule:      schedule,
		EloValues:     elos,
		TeamNames:     names,
		Iterations:    iterations,
		ModFactor:     20,
		HomeAdvantage: 65,
		Seed:          seed,
	}

	telemetry.Infof("demo: %d teams, %d matches, %d iterations", teamCount, len(schedule), iterations)

	result, err := tablesim.Simulate(context.Background(), req)
	if err != nil {
		telemetry.Errorf("simulate: %v", err)
		os.Exit(1)
	}

	telemetry.Infof("%d iterations in %dms", result.SimulationsPerformed, result.TimeMs)
	for i, name := range result.TeamNames {
		probs := result.ProbabilityMatrix[i]
		telemetry.Infof("%2d. %s  expected rank %5.2f  title %5.1f%%  bottom %5.1f%%",
			i+1, name, result.ExpectedRanks[i], 100*probs[0], 100*probs[len(probs)-1])
	}
}
