// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

/*
Package simulate runs many evaluation trials and compares strategies.

Each trial generates a fresh candidate pool and scores every configured
strategy on it. Trials run on a bounded errgroup; trial t derives its
generator and harness seeds from rand.NewPCG(Seed, t), so a report depends
only on the configuration and never on the worker count.

Within a trial all strategies see the same pool and the same sampled
intent, which keeps the comparison against the baseline paired.

# Usage

	runner, err := simulate.NewRunner(simulate.Config{
	    Trials:        1000,
	    NumIntents:    5,
	    NumCandidates: 100,
	    PageLen:       10,
	    Seed:          1,
	    Strategies:    []string{"topk", "vm_sort", "intent_diversity"},
	}, logger)
	if err != nil {
	    return err
	}
	report, err := runner.Run(ctx)
*/
package simulate
