package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/jhw/go-tablesim/pkg/tablesim"
	"github.com/jhw/go-tablesim/pkg/telemetry"
)

// Server exposes the engine as a synchronous JSON-over-HTTP surface.
type Server struct {
	cfg       Config
	presets   LeaguePresets
	startTime time.Time

	// iterations/sec observed on the most recent simulate call, for the
	// health endpoint.
	lastRate atomic.Int64
}

func New(cfg Config) (*Server, error) {
	s := &Server{
		cfg:       cfg,
		startTime: time.Now(),
	}

	if cfg.LeaguePresetsPath != "" {
		presets, err := LoadLeaguePresets(cfg.LeaguePresetsPath)
		if err != nil {
			return nil, err
		}
		s.presets = presets
		telemetry.Infof("server: loaded %d league presets from %s", len(presets), cfg.LeaguePresetsPath)
	}

	return s, nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/simulate", s.handleSimulate)
	mux.HandleFunc("/simulate/batch", s.handleSimulateBatch)
	return mux
}

// Run serves until the context ends, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Infof("server: listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// applyPreset fills zero-valued parameters from the preset named by the
// request's league field, if one is configured.
func (s *Server) applyPreset(req *tablesim.Request) {
	preset, ok := s.presets[req.League]
	if !ok {
		return
	}
	if req.ModFactor == 0 {
		req.ModFactor = preset.ModFactor
	}
	if req.HomeAdvantage == 0 {
		req.HomeAdvantage = preset.HomeAdvantage
	}
	if req.Iterations == 0 {
		req.Iterations = preset.Iterations
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": tablesim.Version,
		"performance": map[string]any{
			"uptime_seconds":          int64(time.Since(s.startTime).Seconds()),
			"last_iterations_per_sec": s.lastRate.Load(),
		},
	})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()

	var req tablesim.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		telemetry.Warnf("simulate %s: bad JSON: %v", requestID, err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	s.applyPreset(&req)

	resp, err := tablesim.Simulate(r.Context(), req)
	if err != nil {
		s.writeSimulateError(w, requestID, err)
		return
	}

	s.recordRate(resp.SimulationsPerformed, resp.TimeMs)
	telemetry.Infof("simulate %s: %d teams, %d iterations in %dms", requestID, len(resp.TeamNames), resp.SimulationsPerformed, resp.TimeMs)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSimulateBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()

	var batch tablesim.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		telemetry.Warnf("batch %s: bad JSON: %v", requestID, err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if len(batch.Leagues) > s.cfg.MaxBatchSize {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "batch exceeds maximum size",
		})
		return
	}
	for i := range batch.Leagues {
		s.applyPreset(&batch.Leagues[i].Request)
	}

	resp, err := tablesim.SimulateBatch(r.Context(), batch)
	if err != nil {
		s.writeSimulateError(w, requestID, err)
		return
	}

	telemetry.Infof("batch %s: %d leagues in %dms", requestID, len(resp.Results), resp.TotalTimeMs)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeSimulateError(w http.ResponseWriter, requestID string, err error) {
	switch {
	case tablesim.IsValidationError(err):
		telemetry.Warnf("simulate %s: rejected: %v", requestID, err)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, tablesim.ErrCancelled):
		// Client went away; nothing useful to write.
		telemetry.Warnf("simulate %s: cancelled", requestID)
	default:
		telemetry.Errorf("simulate %s: %v", requestID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (s *Server) recordRate(iterations int, timeMs int64) {
	if timeMs <= 0 {
		timeMs = 1
	}
	s.lastRate.Store(int64(iterations) * 1000 / timeMs)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		telemetry.Errorf("server: write response: %v", err)
	}
}
