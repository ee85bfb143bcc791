package server

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the HTTP surface's settings. Everything comes from the
// environment (a .env file is honoured when present); the league presets
// live in a YAML file referenced by LEAGUE_PRESETS_PATH.
type Config struct {
	Addr              string
	LogLevel          string
	LeaguePresetsPath string
	MaxBatchSize      int
	ShutdownTimeout   time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:              envStr("TABLESIM_ADDR", ":8000"),
		LogLevel:          envStr("TABLESIM_LOG_LEVEL", "info"),
		LeaguePresetsPath: envStr("LEAGUE_PRESETS_PATH", ""),
		MaxBatchSize:      envInt("TABLESIM_MAX_BATCH_SIZE", 16),
		ShutdownTimeout:   time.Duration(envInt("TABLESIM_SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// LeaguePreset carries per-league defaults for the three tiers, which run
// with different home advantage and iteration counts. Presets fill only
// zero-valued request fields.
type LeaguePreset struct {
	ModFactor     float64 `yaml:"mod_factor"`
	HomeAdvantage float64 `yaml:"home_advantage"`
	Iterations    int     `yaml:"iterations"`
}

type LeaguePresets map[string]LeaguePreset

func LoadLeaguePresets(path string) (LeaguePresets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read league presets: %w", err)
	}

	var presets LeaguePresets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("parse league presets: %w", err)
	}

	return presets, nil
}
