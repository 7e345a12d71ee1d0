// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"intentpage.yaml",
	"intentpage.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is the prefix of every environment variable the loader reads.
const EnvPrefix = "INTENTPAGE_"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Trials:         1000,
			NumIntents:     5,
			NumCandidates:  100,
			PageLen:        10,
			Seed:           1,
			Strategies:     []string{"topk", "vm_sort", "intent_diversity"},
			HeadroomPolicy: "propagate",
			IntentSampling: "raw_weights",
			Workers:        0, // 0 = GOMAXPROCS
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Addr:      ":9464",
			RateLimit: 120,
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

// Default returns the built-in configuration without reading any source.
func Default() *Config {
	return defaultConfig()
}

// Load reads configuration from defaults, a YAML file and the environment,
// in that order of increasing priority, and validates the result.
//
// path selects the config file explicitly; when empty, CONFIG_PATH and then
// DefaultConfigPaths are searched. A missing explicit path is an error; a
// missing default file is not.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are keys that accept comma-separated strings from the
// environment.
var sliceConfigPaths = []string{
	"simulation.strategies",
	"metrics.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased variable names (prefix stripped) to config keys.
var envMappings = map[string]string{
	"trials":               "simulation.trials",
	"num_intents":          "simulation.num_intents",
	"num_candidates":       "simulation.num_candidates",
	"pagelen":              "simulation.pagelen",
	"seed":                 "simulation.seed",
	"strategies":           "simulation.strategies",
	"baseline":             "simulation.baseline",
	"equal_intent_weights": "simulation.equal_intent_weights",
	"headroom_policy":      "simulation.headroom_policy",
	"intent_sampling":      "simulation.intent_sampling",
	"workers":              "simulation.workers",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	"metrics_enabled":      "metrics.enabled",
	"metrics_addr":         "metrics.addr",
	"metrics_hold":         "metrics.hold",
	"metrics_cors_origins": "metrics.cors_origins",
	"metrics_rate_limit":   "metrics.rate_limit",

	"output_format": "output.format",
	"output_trials": "output.trials",
	"no_color":      "output.no_color",
}

func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped variables are skipped so stray INTENTPAGE_* values cannot
	// create unknown keys.
	return ""
}

// MarshalYAML renders cfg with the same keys Load reads.
func MarshalYAML(cfg *Config) ([]byte, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	data, err := k.Marshal(yaml.Parser())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return data, nil
}
