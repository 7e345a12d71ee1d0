// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package pageorder

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/intentpage/internal/pool"
)

// minRatio is the floor applied to the value-model headroom ratio (and, under
// HeadroomFloor, to every intent headroom ratio).
const minRatio = 1e-6

// HeadroomPolicy selects how the per-intent headroom ratio is guarded.
type HeadroomPolicy int

const (
	// HeadroomPropagate leaves the per-intent ratio unguarded. A zero headroom
	// turns that intent's weight into NaN or Inf.
	HeadroomPropagate HeadroomPolicy = iota
	// HeadroomFloor floors every ratio at 1e-6, NaN included.
	HeadroomFloor
)

// String returns the configuration name of the policy.
func (p HeadroomPolicy) String() string {
	switch p {
	case HeadroomPropagate:
		return "propagate"
	case HeadroomFloor:
		return "floor"
	default:
		return "unknown"
	}
}

// ParseHeadroomPolicy converts a configuration string to a HeadroomPolicy.
// The empty string selects HeadroomPropagate.
func ParseHeadroomPolicy(s string) (HeadroomPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "propagate":
		return HeadroomPropagate, nil
	case "floor":
		return HeadroomFloor, nil
	default:
		return HeadroomPropagate, fmt.Errorf("%w: unknown headroom policy %q (want propagate or floor)", pool.ErrInvalidConfig, s)
	}
}

// GreedyStep is a snapshot of the greedy state after one pick.
type GreedyStep struct {
	// Iteration is the zero-based page position that was filled.
	Iteration int

	// Row is the pool row of the picked item; ItemID its id.
	Row    int
	ItemID int

	// Score is the picked item's selection score (NaN when every remaining
	// score was NaN).
	Score float64

	// Weights is cwt after the update.
	Weights []float64

	// IntentHeadroom and ValueModelHeadroom are the headrooms after the update.
	IntentHeadroom     []float64
	ValueModelHeadroom float64

	// NonFiniteWeights counts entries of Weights that are NaN or Inf.
	NonFiniteWeights int
}

// StepObserver receives a GreedyStep after every pick. Slices in the step are
// copies owned by the observer.
type StepObserver func(GreedyStep)

// GreedyConfig configures IntentDiversityGreedy.
type GreedyConfig struct {
	// HeadroomPolicy selects the per-intent ratio guard.
	// Default: HeadroomPropagate.
	HeadroomPolicy HeadroomPolicy

	// Observer, if set, is called after every pick.
	Observer StepObserver
}

// IntentDiversityGreedy selects a page that is both high-value and diverse
// across intents by greedily reweighting intents as their headroom is used.
type IntentDiversityGreedy struct {
	policy   HeadroomPolicy
	observer StepObserver
	logger   zerolog.Logger
}

// NewIntentDiversityGreedy creates the greedy orderer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIntentDiversityGreedy(cfg GreedyConfig, logger zerolog.Logger) *IntentDiversityGreedy {
	return &IntentDiversityGreedy{
		policy:   cfg.HeadroomPolicy,
		observer: cfg.Observer,
		logger:   logger.With().Str("orderer", NameIntentDiversity).Logger(),
	}
}

// Name returns the orderer identifier.
func (g *IntentDiversityGreedy) Name() string {
	return NameIntentDiversity
}

// Policy returns the configured headroom policy.
func (g *IntentDiversityGreedy) Policy() HeadroomPolicy {
	return g.policy
}

// Order runs exactly pagelen greedy iterations and returns the picked ids.
func (g *IntentDiversityGreedy) Order(ctx context.Context, p *pool.CandidatePool, pagelen int) (pool.Page, error) {
	if err := checkInput(p, pagelen); err != nil {
		return nil, err
	}
	n, v := p.N(), p.V()

	// Intent weights, normalized to sum to 1.
	cwt := append([]float64(nil), p.Coefficients...)
	floats.Scale(1/floats.Sum(cwt), cwt)

	// Fixed ceilings over the unmodified pool.
	esHeadroom := p.ColumnHeadrooms(pagelen)
	vmHeadroom := p.ValueModelHeadroom(pagelen)

	workingE, workingVm := p.Clone()
	picked := make([]bool, n)

	weights := mat.NewVecDense(v, cwt) // aliases cwt
	scoreVec := mat.NewVecDense(n, nil)
	scores := scoreVec.RawVector().Data

	page := make(pool.Page, 0, pagelen)
	for it := 0; it < pagelen; it++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// score[i] = vm[i] * sum_v e[i, v] * cwt[v]
		scoreVec.MulVec(workingE, weights)
		floats.Mul(scores, workingVm)

		best := pickBest(scores, picked)
		score := scores[best]
		page = append(page, p.ItemIDs[best])
		picked[best] = true

		row := workingE.RawRowView(best)
		g.reweight(cwt, esHeadroom, row, vmHeadroom, workingVm[best])

		floats.Sub(esHeadroom, row)
		vmHeadroom -= workingVm[best]

		for j := range row {
			row[j] = 0
		}
		workingVm[best] = 0

		g.emit(it, best, p.ItemIDs[best], score, cwt, esHeadroom, vmHeadroom)
	}

	return page, nil
}

// reweight applies the multiplicative cwt update for a pick whose event row
// is row and whose value-model score is vm.
func (g *IntentDiversityGreedy) reweight(cwt, esHeadroom, row []float64, vmHeadroom, vm float64) {
	denom := (vmHeadroom - vm) / vmHeadroom
	switch g.policy {
	case HeadroomFloor:
		if !(denom > minRatio) {
			denom = minRatio
		}
	default:
		// NaN passes through unchanged.
		if minRatio > denom {
			denom = minRatio
		}
	}

	for j := range cwt {
		ratio := (esHeadroom[j] - row[j]) / esHeadroom[j]
		if g.policy == HeadroomFloor && !(ratio > minRatio) {
			ratio = minRatio
		}
		cwt[j] *= ratio / denom
	}
}

// pickBest returns the first row with the maximum score among rows not yet
// picked. NaN scores never win; if every remaining score is NaN the first
// remaining row is returned.
func pickBest(scores []float64, picked []bool) int {
	first := -1
	for i, done := range picked {
		if done {
			scores[i] = math.NaN()
		} else if first < 0 {
			first = i
		}
	}
	best := floats.MaxIdx(scores)
	if math.IsNaN(scores[best]) {
		return first
	}
	return best
}

func (g *IntentDiversityGreedy) emit(it, row, id int, score float64, cwt, esHeadroom []float64, vmHeadroom float64) {
	nonFinite := 0
	for _, w := range cwt {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			nonFinite++
		}
	}

	g.logger.Debug().
		Int("iteration", it).
		Int("item", id).
		Float64("score", score).
		Floats64("weights", cwt).
		Floats64("intent_headroom", esHeadroom).
		Float64("vm_headroom", vmHeadroom).
		Msg("greedy pick")

	if nonFinite > 0 {
		g.logger.Debug().
			Int("iteration", it).
			Int("non_finite_weights", nonFinite).
			Str("policy", g.policy.String()).
			Msg("intent weight became non-finite")
	}

	if g.observer == nil {
		return
	}
	g.observer(GreedyStep{
		Iteration:          it,
		Row:                row,
		ItemID:             id,
		Score:              score,
		Weights:            append([]float64(nil), cwt...),
		IntentHeadroom:     append([]float64(nil), esHeadroom...),
		ValueModelHeadroom: vmHeadroom,
		NonFiniteWeights:   nonFinite,
	})
}

// Ensure IntentDiversityGreedy implements the interface.
var _ Orderer = (*IntentDiversityGreedy)(nil)
