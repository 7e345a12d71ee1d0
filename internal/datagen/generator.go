// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package datagen

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tomtom215/intentpage/internal/pool"
)

// Generation constants.
const (
	// HalfLife is the rank distance over which an intent's event score halves.
	HalfLife = 10

	minExponent = 1.0
	maxExponent = 3.5

	minRawWeight = 0.3
	maxRawWeight = 3.0
)

// Alpha is the per-rank decay factor, alpha^HalfLife = 0.5.
var Alpha = math.Pow(0.5, 1.0/HalfLife)

// ErrNilSource is returned by NewGenerator when no random source is given.
var ErrNilSource = errors.New("datagen: random source is required")

// Generator produces synthetic candidate pools. Each intent column is a
// shuffled geometric sequence maxval * Alpha^i with maxval = 10^-b and
// b ~ U(1, 3.5), so intents live on very different scales. Coefficients
// are raw weights divided by maxval, which puts every intent on an equal
// footing once weighted.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	rng    *rand.Rand
	src    rand.Source
	logger zerolog.Logger
}

// NewGenerator creates a generator that draws from src.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGenerator(src rand.Source, logger zerolog.Logger) (*Generator, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	return &Generator{
		rng:    rand.New(src),
		src:    src,
		logger: logger.With().Str("component", "datagen").Logger(),
	}, nil
}

// Generate builds a pool of numCandidates items over numIntents intents.
// With equalIntentWeights every raw weight is 1; otherwise raw weights are
// drawn from U(0.3, 3).
func (g *Generator) Generate(numCandidates, numIntents int, equalIntentWeights bool) (*pool.CandidatePool, error) {
	if numCandidates <= 0 {
		return nil, fmt.Errorf("%w: number of candidates must be positive, got %d", pool.ErrInvalidConfig, numCandidates)
	}
	if numIntents <= 0 {
		return nil, fmt.Errorf("%w: number of intents must be positive, got %d", pool.ErrInvalidConfig, numIntents)
	}

	events := mat.NewDense(numCandidates, numIntents, nil)
	maxVals := make([]float64, numIntents)
	exponent := distuv.Uniform{Min: minExponent, Max: maxExponent, Src: g.src}
	column := make([]float64, numCandidates)

	for v := 0; v < numIntents; v++ {
		maxVals[v] = math.Pow(10, -exponent.Rand())
		for i := range column {
			column[i] = maxVals[v] * math.Pow(Alpha, float64(i))
		}
		g.rng.Shuffle(len(column), func(a, b int) {
			column[a], column[b] = column[b], column[a]
		})
		events.SetCol(v, column)
	}

	rawWeights := make([]float64, numIntents)
	if equalIntentWeights {
		for v := range rawWeights {
			rawWeights[v] = 1
		}
	} else {
		weight := distuv.Uniform{Min: minRawWeight, Max: maxRawWeight, Src: g.src}
		for v := range rawWeights {
			rawWeights[v] = weight.Rand()
		}
	}

	coefficients := make([]float64, numIntents)
	for v := range coefficients {
		coefficients[v] = rawWeights[v] / maxVals[v]
	}

	var vm mat.VecDense
	vm.MulVec(events, mat.NewVecDense(numIntents, coefficients))

	g.logger.Debug().
		Int("candidates", numCandidates).
		Int("intents", numIntents).
		Floats64("max_vals", maxVals).
		Floats64("raw_weights", rawWeights).
		Floats64("coefficients", coefficients).
		Msg("Generated candidate pool")

	return pool.New(pool.SequentialIDs(numCandidates), events, vm.RawVector().Data, coefficients, maxVals, rawWeights)
}
