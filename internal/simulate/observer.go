// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package simulate

import (
	"sync/atomic"

	"github.com/tomtom215/intentpage/internal/metrics"
	"github.com/tomtom215/intentpage/internal/pageorder"
)

// stepCounter tallies numerically unhealthy greedy steps. It is shared by
// all workers.
type stepCounter struct {
	policy     string
	degenerate atomic.Int64
	negative   atomic.Int64
}

func (c *stepCounter) observe(step pageorder.GreedyStep) {
	negative := step.ValueModelHeadroom < 0
	for _, h := range step.IntentHeadroom {
		if h < 0 {
			negative = true
			break
		}
	}

	if step.NonFiniteWeights > 0 {
		c.degenerate.Add(1)
	}
	if negative {
		c.negative.Add(1)
	}
	metrics.RecordGreedyStep(c.policy, step.NonFiniteWeights, negative)
}
