// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package config

import (
	"fmt"

	"github.com/tomtom215/intentpage/internal/evaluate"
	"github.com/tomtom215/intentpage/internal/pageorder"
	"github.com/tomtom215/intentpage/internal/simulate"
)

// SimulateConfig converts the simulation section into a runner configuration.
func (c *Config) SimulateConfig() (simulate.Config, error) {
	s := c.Simulation

	policy, err := pageorder.ParseHeadroomPolicy(s.HeadroomPolicy)
	if err != nil {
		return simulate.Config{}, fmt.Errorf("simulation.headroom_policy: %w", err)
	}
	sampling, err := evaluate.ParseSampleWeights(s.IntentSampling)
	if err != nil {
		return simulate.Config{}, fmt.Errorf("simulation.intent_sampling: %w", err)
	}

	return simulate.Config{
		Trials:             s.Trials,
		NumIntents:         s.NumIntents,
		NumCandidates:      s.NumCandidates,
		PageLen:            s.PageLen,
		Seed:               s.Seed,
		Strategies:         append([]string(nil), s.Strategies...),
		Baseline:           s.Baseline,
		EqualIntentWeights: s.EqualIntentWeights,
		HeadroomPolicy:     policy,
		SampleWeights:      sampling,
		Workers:            s.Workers,
		KeepTrials:         c.Output.Trials,
	}, nil
}
