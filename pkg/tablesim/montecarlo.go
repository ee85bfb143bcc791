package tablesim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrCancelled is returned when the caller's context ends before all
// iterations have run. No partial results accompany it.
var ErrCancelled = errors.New("simulation cancelled")

// iterationBatch is the dispatch granularity: workers claim this many
// iterations at a time and check for cancellation between claims.
const iterationBatch = 64

// splitmix64 is the standard 64-bit finalizing mix. It turns the master
// seed and an iteration index into well-separated PRNG seeds.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// iterationSeed depends only on the master seed and the iteration index,
// never on which worker runs the iteration, so results are stable across
// worker counts.
func iterationSeed(master int64, iteration int) int64 {
	return int64(splitmix64(uint64(master) ^ splitmix64(uint64(iteration))))
}

// runMonteCarlo executes the iterations across workers and returns the
// merged (team, rank) frequency matrix: freq[t][r] counts iterations in
// which team t finished at rank r+1. Workers share nothing but the
// read-only inputs and an atomic dispatch cursor.
func runMonteCarlo(ctx context.Context, matches []simMatch, elos []float64, adj adjustments, p modelParams, iterations int, seed int64) ([][]int, error) {
	teamCount := len(elos)

	workers := runtime.GOMAXPROCS(0)
	if workers > iterations {
		workers = iterations
	}

	var cursor int64
	freqCh := make(chan [][]int, workers)
	errCh := make(chan error, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			freq := make([][]int, teamCount)
			for t := range freq {
				freq[t] = make([]int, teamCount)
			}
			matchBuf := make([]simMatch, len(matches))
			eloBuf := make([]float64, teamCount)
			rows := make([]TableRow, teamCount)
			order := make([]int, teamCount)

			for {
				if ctx.Err() != nil {
					errCh <- ErrCancelled
					return
				}
				start := int(atomic.AddInt64(&cursor, iterationBatch)) - iterationBatch
				if start >= iterations {
					break
				}
				end := start + iterationBatch
				if end > iterations {
					end = iterations
				}

				for i := start; i < end; i++ {
					copy(matchBuf, matches)
					copy(eloBuf, elos)
					rng := rand.New(rand.NewSource(iterationSeed(seed, i)))

					replaySeason(matchBuf, eloBuf, p, rng)
					buildTable(matchBuf, adj, rows, order)

					for _, row := range rows {
						if row.Rank < 1 || row.Rank > teamCount {
							errCh <- fmt.Errorf("iteration %d: rank %d for team %d out of range", i, row.Rank, row.Team)
							return
						}
						freq[row.Team][row.Rank-1]++
					}
				}
			}

			freqCh <- freq
		}()
	}

	wg.Wait()
	close(freqCh)
	close(errCh)

	if err := <-errCh; err != nil {
		return nil, err
	}

	// Elementwise merge; integer addition makes the result independent of
	// worker completion order.
	merged := make([][]int, teamCount)
	for t := range merged {
		merged[t] = make([]int, teamCount)
	}
	for freq := range freqCh {
		for t := range freq {
			for r, n := range freq[t] {
				merged[t][r] += n
			}
		}
	}

	return merged, nil
}
