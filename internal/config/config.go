// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package config

// Config holds all application configuration.
type Config struct {
	Simulation SimulationConfig `koanf:"simulation"`
	Logging    LoggingConfig    `koanf:"logging"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Output     OutputConfig     `koanf:"output"`
}

// SimulationConfig describes the trials to run.
//
// Environment Variables:
//   - INTENTPAGE_TRIALS, INTENTPAGE_NUM_INTENTS, INTENTPAGE_NUM_CANDIDATES
//   - INTENTPAGE_PAGELEN, INTENTPAGE_SEED, INTENTPAGE_WORKERS
//   - INTENTPAGE_STRATEGIES (comma separated), INTENTPAGE_BASELINE
//   - INTENTPAGE_EQUAL_INTENT_WEIGHTS, INTENTPAGE_HEADROOM_POLICY
//   - INTENTPAGE_INTENT_SAMPLING
type SimulationConfig struct {
	// Trials is the number of generated pools.
	// Default: 1000
	Trials int `koanf:"trials" validate:"gte=1"`

	// NumIntents is the number of intents (V) per pool.
	// Default: 5
	NumIntents int `koanf:"num_intents" validate:"gte=1"`

	// NumCandidates is the number of items (N) per pool.
	// Default: 100
	NumCandidates int `koanf:"num_candidates" validate:"gte=1"`

	// PageLen is the number of items each strategy selects.
	// Default: 10
	PageLen int `koanf:"pagelen" validate:"gte=0,ltefield=NumCandidates"`

	// Seed is the root random seed. The same seed reproduces a run exactly.
	// Default: 1
	Seed uint64 `koanf:"seed"`

	// Strategies lists the page orderers to compare.
	// Default: topk, vm_sort, intent_diversity
	Strategies []string `koanf:"strategies" validate:"min=1,dive,identifier"`

	// Baseline is the strategy the others are compared against.
	// Default: empty (the first strategy)
	Baseline string `koanf:"baseline" validate:"omitempty,identifier"`

	// EqualIntentWeights gives every intent raw weight 1 instead of U(0.3, 3).
	EqualIntentWeights bool `koanf:"equal_intent_weights"`

	// HeadroomPolicy guards the greedy per-intent ratio: propagate or floor.
	// Default: propagate
	HeadroomPolicy string `koanf:"headroom_policy" validate:"oneof=propagate floor"`

	// IntentSampling selects the vector the evaluated intent is drawn by:
	// raw_weights or coefficients.
	// Default: raw_weights
	IntentSampling string `koanf:"intent_sampling" validate:"oneof=raw_weights coefficients"`

	// Workers bounds concurrent trials. 0 uses GOMAXPROCS.
	Workers int `koanf:"workers" validate:"gte=0"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - INTENTPAGE_LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - INTENTPAGE_LOG_FORMAT: json, console (default: console)
//   - INTENTPAGE_LOG_CALLER: true/false (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// MetricsConfig controls the status server that exposes /metrics and the
// latest report.
//
// Environment Variables:
//   - INTENTPAGE_METRICS_ENABLED: true/false (default: false)
//   - INTENTPAGE_METRICS_ADDR: listen address (default: :9464)
//   - INTENTPAGE_METRICS_HOLD: keep serving after the run (default: false)
//   - INTENTPAGE_METRICS_CORS_ORIGINS: comma-separated allowed origins
//   - INTENTPAGE_METRICS_RATE_LIMIT: requests per minute per IP (default: 120)
type MetricsConfig struct {
	// Enabled starts the status server while the simulation runs.
	Enabled bool `koanf:"enabled"`

	// Addr is the listen address of the status server.
	Addr string `koanf:"addr" validate:"omitempty,hostname_port"`

	// Hold keeps the server up after the run until interrupted.
	Hold bool `koanf:"hold"`

	// CORSOrigins enables CORS on the status server for these origins.
	CORSOrigins []string `koanf:"cors_origins" validate:"dive,url"`

	// RateLimit bounds /api/v1 requests per minute per client IP. 0 disables.
	RateLimit int `koanf:"rate_limit" validate:"gte=0"`
}

// OutputConfig controls report rendering.
//
// Environment Variables:
//   - INTENTPAGE_OUTPUT_FORMAT: table or json (default: table)
//   - INTENTPAGE_OUTPUT_TRIALS: include per-trial results (default: false)
//   - INTENTPAGE_NO_COLOR: disable colored output (default: false)
type OutputConfig struct {
	Format  string `koanf:"format" validate:"oneof=table json"`
	Trials  bool   `koanf:"trials"`
	NoColor bool   `koanf:"no_color"`
}
