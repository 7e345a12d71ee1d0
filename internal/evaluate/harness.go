// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package evaluate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tomtom215/intentpage/internal/metrics"
	"github.com/tomtom215/intentpage/internal/pageorder"
	"github.com/tomtom215/intentpage/internal/pool"
)

// ErrNilSource is returned by NewHarness when no random source is given.
var ErrNilSource = errors.New("evaluate: random source is required")

// SampleWeights selects which per-intent vector the evaluated intent is
// drawn in proportion to.
type SampleWeights int

const (
	// SampleRawWeights draws v with probability w_v / sum(w).
	SampleRawWeights SampleWeights = iota
	// SampleCoefficients draws v with probability c_v / sum(c).
	SampleCoefficients
)

// String returns the configuration name.
func (s SampleWeights) String() string {
	switch s {
	case SampleRawWeights:
		return "raw_weights"
	case SampleCoefficients:
		return "coefficients"
	default:
		return "unknown"
	}
}

// ParseSampleWeights converts a configuration string to a SampleWeights.
// The empty string selects SampleRawWeights.
func ParseSampleWeights(s string) (SampleWeights, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raw_weights":
		return SampleRawWeights, nil
	case "coefficients":
		return SampleCoefficients, nil
	default:
		return SampleRawWeights, fmt.Errorf("%w: unknown intent sampling %q (want raw_weights or coefficients)", pool.ErrInvalidConfig, s)
	}
}

// Result is the outcome of one evaluation.
type Result struct {
	Strategy    string    `json:"strategy"`
	Intent      int       `json:"intent"`
	Page        pool.Page `json:"page"`
	Numerator   float64   `json:"numerator"`
	Denominator float64   `json:"denominator"`

	// Score is Numerator / Denominator. It is NaN or Inf when the sampled
	// intent has no mass in its top pagelen items.
	Score float64 `json:"score"`
}

// Option configures a Harness.
type Option func(*Harness)

// WithSampleWeights selects the intent sampling vector.
func WithSampleWeights(s SampleWeights) Option {
	return func(h *Harness) {
		h.sampleBy = s
	}
}

// WithLogger sets the harness logger.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// Harness scores a page orderer against an oracle that knows the sampled
// intent. A Harness owns its random source and is not safe for concurrent
// use; create one per worker.
type Harness struct {
	src      rand.Source
	sampleBy SampleWeights
	logger   zerolog.Logger
}

// NewHarness creates a harness that draws intents from src.
func NewHarness(src rand.Source, opts ...Option) (*Harness, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	h := &Harness{
		src:    src,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With().Str("component", "evaluate").Logger()
	return h, nil
}

// SampleIntent draws one intent index from p.
func (h *Harness) SampleIntent(p *pool.CandidatePool) (int, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: candidate pool is required", pool.ErrInvalidConfig)
	}
	w := p.RawWeights
	if h.sampleBy == SampleCoefficients {
		w = p.Coefficients
	}
	return int(distuv.NewCategorical(w, h.src).Rand()), nil
}

// Evaluate samples an intent, asks o for a page, and scores the page as
// the share of the intent's best achievable total it captures:
//
//	score = sum_{i in page} e[i, v] / TopKSum(e[:, v], pagelen)
func (h *Harness) Evaluate(ctx context.Context, p *pool.CandidatePool, pagelen int, o pageorder.Orderer) (Result, error) {
	if o == nil {
		return Result{}, fmt.Errorf("%w: page orderer is required", pool.ErrInvalidConfig)
	}
	intent, err := h.SampleIntent(p)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	page, err := o.Order(ctx, p, pagelen)
	metrics.RecordOrder(o.Name(), time.Since(start))
	if err != nil {
		return Result{}, fmt.Errorf("order page with %s: %w", o.Name(), err)
	}

	res, err := Score(p, page, intent, pagelen)
	if err != nil {
		metrics.RecordInvalidPage(o.Name())
		return Result{}, fmt.Errorf("strategy %s: %w", o.Name(), err)
	}
	res.Strategy = o.Name()

	if math.IsNaN(res.Score) || math.IsInf(res.Score, 0) {
		h.logger.Warn().
			Str("strategy", res.Strategy).
			Int("intent", intent).
			Int("pagelen", pagelen).
			Float64("denominator", res.Denominator).
			Msg("Oracle denominator is zero, score is not finite")
	}
	metrics.RecordEvaluation(res.Strategy, strconv.Itoa(intent), res.Score)

	h.logger.Debug().
		Str("strategy", res.Strategy).
		Int("intent", intent).
		Ints("page", page).
		Float64("score", res.Score).
		Msg("Page evaluated")

	return res, nil
}

// Score computes the oracle ratio of page for a known intent. It fails with
// pool.ErrInvalidPage when page violates the page postcondition.
func Score(p *pool.CandidatePool, page pool.Page, intent, pagelen int) (Result, error) {
	if p == nil {
		return Result{}, fmt.Errorf("%w: candidate pool is required", pool.ErrInvalidConfig)
	}
	if intent < 0 || intent >= p.V() {
		return Result{}, fmt.Errorf("%w: intent %d outside [0, %d)", pool.ErrInvalidConfig, intent, p.V())
	}
	rows, err := p.ValidatePage(page, pagelen)
	if err != nil {
		return Result{}, err
	}

	col := p.EventColumn(intent)
	picked := make([]float64, len(rows))
	for k, row := range rows {
		picked[k] = col[row]
	}

	res := Result{
		Intent:      intent,
		Page:        append(pool.Page(nil), page...),
		Numerator:   floats.Sum(picked),
		Denominator: pool.TopKSum(col, pagelen),
	}
	res.Score = res.Numerator / res.Denominator
	return res, nil
}
