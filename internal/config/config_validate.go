// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package config

import (
	"fmt"
	"slices"

	"github.com/tomtom215/intentpage/internal/logging"
	"github.com/tomtom215/intentpage/internal/pageorder"
	"github.com/tomtom215/intentpage/internal/validation"
)

// Validate checks field ranges and the rules that span fields.
func (c *Config) Validate() error {
	if err := c.validateSimulation(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if verr := validation.ValidateStruct(&c.Metrics); verr != nil {
		return fmt.Errorf("metrics: %w", verr)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics: Addr is required when the status server is enabled")
	}
	if verr := validation.ValidateStruct(&c.Output); verr != nil {
		return fmt.Errorf("output: %w", verr)
	}
	return nil
}

func (c *Config) validateSimulation() error {
	s := &c.Simulation
	if verr := validation.ValidateStruct(s); verr != nil {
		return fmt.Errorf("simulation: %w", verr)
	}

	known := pageorder.Names()
	seen := make(map[string]bool, len(s.Strategies))
	for _, name := range s.Strategies {
		if !slices.Contains(known, name) {
			return fmt.Errorf("simulation: unknown strategy %q (known: %v)", name, known)
		}
		if seen[name] {
			return fmt.Errorf("simulation: strategy %q listed twice", name)
		}
		seen[name] = true
	}
	if s.Baseline != "" && !seen[s.Baseline] {
		return fmt.Errorf("simulation: baseline %q is not among the strategies %v", s.Baseline, s.Strategies)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if verr := validation.ValidateStruct(&c.Logging); verr != nil {
		return fmt.Errorf("logging: %w", verr)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging: invalid level %q", c.Logging.Level)
	}
	return nil
}
