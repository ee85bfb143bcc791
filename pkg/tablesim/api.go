package tablesim

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// applyDefaults fills the zero-valued hyperparameters the way the
// reference callers do. A zero mod factor or tore parameter means "use
// the model constant"; home advantage is a legitimate zero.
func applyDefaults(req *Request) {
	if req.ModFactor == 0 {
		req.ModFactor = DefaultModFactor
	}
	if req.ToreSlope == 0 {
		req.ToreSlope = DefaultToreSlope
	}
	if req.ToreIntercept == 0 {
		req.ToreIntercept = DefaultToreIntercept
	}
}

// Simulate validates the request, runs the Monte Carlo iterations and
// returns the rank probability matrix. The context cancels cooperatively
// between iteration batches; on cancellation ErrCancelled comes back and
// completed iterations are discarded.
func Simulate(ctx context.Context, req Request) (Response, error) {
	start := time.Now()

	applyDefaults(&req)
	if err := validateRequest(req); err != nil {
		return Response{}, err
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	p := modelParams{
		modFactor:     req.ModFactor,
		homeAdvantage: req.HomeAdvantage,
		toreSlope:     req.ToreSlope,
		toreIntercept: req.ToreIntercept,
	}
	adj := adjustments{
		points:       req.AdjPoints,
		goalsFor:     req.AdjGoals,
		goalsAgainst: req.AdjGoalsAgainst,
		goalDiff:     req.AdjGoalDiff,
	}

	freq, err := runMonteCarlo(ctx, toSimMatches(req.Schedule), req.EloValues, adj, p, req.Iterations, seed)
	if err != nil {
		return Response{}, err
	}

	matrix, names, expected := aggregateRanks(freq, req.TeamNames, req.Iterations)

	return Response{
		ProbabilityMatrix:    matrix,
		TeamNames:            names,
		ExpectedRanks:        expected,
		SimulationsPerformed: req.Iterations,
		TimeMs:               time.Since(start).Milliseconds(),
	}, nil
}

// SimulateBatch runs one simulation per league, concurrently. The whole
// batch is validated up front and rejected on the first invalid entry;
// nothing runs unless every entry is well-formed.
func SimulateBatch(ctx context.Context, batch BatchRequest) (BatchResponse, error) {
	start := time.Now()

	if len(batch.Leagues) == 0 {
		return BatchResponse{}, ValidationError{Field: "leagues", Message: "must not be empty"}
	}
	for i := range batch.Leagues {
		applyDefaults(&batch.Leagues[i].Request)
		if err := validateRequest(batch.Leagues[i].Request); err != nil {
			return BatchResponse{}, fmt.Errorf("league %q: %w", batch.Leagues[i].Name, err)
		}
	}

	results := make([]BatchResult, len(batch.Leagues))
	errs := make([]error, len(batch.Leagues))
	var wg sync.WaitGroup
	for i, entry := range batch.Leagues {
		wg.Add(1)
		go func(i int, entry BatchEntry) {
			defer wg.Done()
			resp, err := Simulate(ctx, entry.Request)
			if err != nil {
				errs[i] = fmt.Errorf("league %q: %w", entry.Name, err)
				return
			}
			results[i] = BatchResult{Name: entry.Name, Response: resp}
		}(i, entry)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return BatchResponse{}, err
		}
	}

	return BatchResponse{
		Results:     results,
		TotalTimeMs: time.Since(start).Milliseconds(),
	}, nil
}
