package tablesim

// Version is reported by the health endpoint.
const Version = "1.0.0"

const (
	DefaultModFactor     = 20.0
	DefaultToreSlope     = 0.00179
	DefaultToreIntercept = 1.32

	// minGoalMean keeps the sampled goal distribution defined when a huge
	// rating gap pushes the fitted mean below zero.
	minGoalMean = 0.001

	// eloDeltaClamp caps the rating difference fed into the expectation
	// curve, limiting the update size for extreme mismatches.
	eloDeltaClamp = 400.0
)

// Match is one fixture. Goals are nil until the match has been played;
// both are set or both are nil.
type Match struct {
	Home      int  `json:"home"`
	Away      int  `json:"away"`
	HomeGoals *int `json:"home_goals"`
	AwayGoals *int `json:"away_goals"`
}

// Played reports whether the result is known.
func (m Match) Played() bool {
	return m.HomeGoals != nil && m.AwayGoals != nil
}

// simMatch is the compact schedule entry used inside the iteration loop.
// Converting once up front keeps the per-iteration clone a flat copy.
type simMatch struct {
	home, away           int
	homeGoals, awayGoals int
	played               bool
}

// TableRow is one team's line in a completed standings table.
type TableRow struct {
	Team         int `json:"team"`
	Rank         int `json:"rank"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
	GoalDiff     int `json:"goal_diff"`
	Points       int `json:"points"`
}

// modelParams bundles the match-model hyperparameters threaded through the
// replay loop.
type modelParams struct {
	modFactor     float64
	homeAdvantage float64
	toreSlope     float64
	toreIntercept float64
}

// adjustments are the caller-supplied starting offsets. Nil vectors mean
// all zeros.
type adjustments struct {
	points       []int
	goalsFor     []int
	goalsAgainst []int
	goalDiff     []int
}

// Request is the input to Simulate.
type Request struct {
	Schedule      []Match   `json:"schedule"`
	EloValues     []float64 `json:"elo_values"`
	TeamNames     []string  `json:"team_names"`
	Iterations    int       `json:"iterations"`
	ModFactor     float64   `json:"mod_factor"`
	HomeAdvantage float64   `json:"home_advantage"`
	ToreSlope     float64   `json:"tore_slope,omitempty"`
	ToreIntercept float64   `json:"tore_intercept,omitempty"`

	AdjPoints       []int `json:"adj_points,omitempty"`
	AdjGoals        []int `json:"adj_goals,omitempty"`
	AdjGoalsAgainst []int `json:"adj_goals_against,omitempty"`
	AdjGoalDiff     []int `json:"adj_goal_diff,omitempty"`

	// Seed drives the per-iteration PRNG streams. Zero means derive one
	// from the wall clock; any fixed value gives reproducible output
	// regardless of worker count.
	Seed int64 `json:"seed,omitempty"`

	// League optionally names a server-side parameter preset. The engine
	// ignores it.
	League string `json:"league,omitempty"`
}

// TeamCount returns T, the league size implied by the rating vector.
func (r Request) TeamCount() int {
	return len(r.EloValues)
}

// Response is the output of Simulate. Row i of ProbabilityMatrix belongs
// to TeamNames[i]; rows are ordered strongest team first.
type Response struct {
	ProbabilityMatrix    [][]float64 `json:"probability_matrix"`
	TeamNames            []string    `json:"team_names"`
	ExpectedRanks        []float64   `json:"expected_ranks"`
	SimulationsPerformed int         `json:"simulations_performed"`
	TimeMs               int64       `json:"time_ms"`
}

// BatchEntry pairs a league name with its simulation request.
type BatchEntry struct {
	Name    string  `json:"name"`
	Request Request `json:"request"`
}

// BatchRequest is the input to SimulateBatch.
type BatchRequest struct {
	Leagues []BatchEntry `json:"leagues"`
}

// BatchResult is one league's outcome within a batch.
type BatchResult struct {
	Name     string   `json:"name"`
	Response Response `json:"response"`
}

// BatchResponse is the output of SimulateBatch.
type BatchResponse struct {
	Results     []BatchResult `json:"results"`
	TotalTimeMs int64         `json:"total_time_ms"`
}
