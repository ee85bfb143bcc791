package tablesim

import (
	"errors"
	"fmt"
	"math"
)

// ValidationError reports a single rejected request field. It is the only
// expected error kind: everything else coming out of the engine indicates
// a defect or a cancellation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a request-validation failure.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

func validateAdjustment(name string, values []int, teamCount int) error {
	if values != nil && len(values) != teamCount {
		return ValidationError{
			Field:   name,
			Message: fmt.Sprintf("length %d does not match team count %d", len(values), teamCount),
		}
	}
	return nil
}

// validateRequest runs every check before any iteration is scheduled.
// Defaults are assumed to have been applied already.
func validateRequest(req Request) error {
	teamCount := req.TeamCount()
	if teamCount == 0 {
		return ValidationError{Field: "elo_values", Message: "must not be empty"}
	}
	if len(req.TeamNames) != teamCount {
		return ValidationError{
			Field:   "team_names",
			Message: fmt.Sprintf("length %d does not match team count %d", len(req.TeamNames), teamCount),
		}
	}
	if req.Iterations <= 0 {
		return ValidationError{
			Field:   "iterations",
			Message: fmt.Sprintf("must be positive, got %d", req.Iterations),
		}
	}

	for i, v := range req.EloValues {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ValidationError{
				Field:   fmt.Sprintf("elo_values[%d]", i),
				Message: fmt.Sprintf("must be finite, got %v", v),
			}
		}
	}

	for _, check := range []struct {
		name  string
		value float64
	}{
		{"mod_factor", req.ModFactor},
		{"home_advantage", req.HomeAdvantage},
		{"tore_slope", req.ToreSlope},
		{"tore_intercept", req.ToreIntercept},
	} {
		if math.IsNaN(check.value) || math.IsInf(check.value, 0) {
			return ValidationError{Field: check.name, Message: fmt.Sprintf("must be finite, got %v", check.value)}
		}
	}
	if req.ModFactor < 0 {
		return ValidationError{
			Field:   "mod_factor",
			Message: fmt.Sprintf("must not be negative, got %v", req.ModFactor),
		}
	}

	for i, m := range req.Schedule {
		field := fmt.Sprintf("schedule[%d]", i)
		if m.Home < 0 || m.Home >= teamCount {
			return ValidationError{Field: field, Message: fmt.Sprintf("home index %d out of range [0, %d)", m.Home, teamCount)}
		}
		if m.Away < 0 || m.Away >= teamCount {
			return ValidationError{Field: field, Message: fmt.Sprintf("away index %d out of range [0, %d)", m.Away, teamCount)}
		}
		if m.Home == m.Away {
			return ValidationError{Field: field, Message: fmt.Sprintf("team %d cannot play itself", m.Home)}
		}
		if (m.HomeGoals == nil) != (m.AwayGoals == nil) {
			return ValidationError{Field: field, Message: "goals must be present for both sides or neither"}
		}
		if m.Played() && (*m.HomeGoals < 0 || *m.AwayGoals < 0) {
			return ValidationError{Field: field, Message: fmt.Sprintf("goals must not be negative, got %d-%d", *m.HomeGoals, *m.AwayGoals)}
		}
	}

	for _, adj := range []struct {
		name   string
		values []int
	}{
		{"adj_points", req.AdjPoints},
		{"adj_goals", req.AdjGoals},
		{"adj_goals_against", req.AdjGoalsAgainst},
		{"adj_goal_diff", req.AdjGoalDiff},
	} {
		if err := validateAdjustment(adj.name, adj.values, teamCount); err != nil {
			return err
		}
	}

	return nil
}
