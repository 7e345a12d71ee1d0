// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

/*
Package metrics provides Prometheus instrumentation for simulation runs.

All collectors are registered on the default registry at init through
promauto. The CLI exposes them on /metrics when metrics.enabled is set:

	curl http://localhost:9464/metrics

# Available Metrics

Simulation:
  - intentpage_trials_total: trials by outcome (counter)
    Labels: outcome (ok, error, canceled)
  - intentpage_trial_duration_seconds: one trial, all strategies (histogram)
  - intentpage_simulation_runs_total: completed runs (counter)
  - intentpage_active_workers: running trial workers (gauge)

Evaluation:
  - intentpage_evaluation_score: score against the oracle (histogram)
    Labels: strategy
  - intentpage_evaluation_non_finite_total: NaN or Inf scores (counter)
    Labels: strategy
  - intentpage_invalid_pages_total: pages failing validation (counter)
    Labels: strategy
  - intentpage_intent_samples_total: sampled intents (counter)
    Labels: intent

Page ordering:
  - intentpage_order_duration_seconds: Order call latency (histogram)
    Labels: strategy
  - intentpage_degenerate_weights_total: greedy steps with NaN/Inf weights (counter)
    Labels: policy
  - intentpage_negative_headroom_total: greedy steps with rounding drift (counter)
    Labels: policy

# Usage

	start := time.Now()
	page, err := orderer.Order(ctx, p, pagelen)
	metrics.RecordOrder(orderer.Name(), time.Since(start))

# Thread Safety

All functions are safe for concurrent use.
*/
package metrics
