// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package simulate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/intentpage/internal/datagen"
	"github.com/tomtom215/intentpage/internal/evaluate"
	"github.com/tomtom215/intentpage/internal/logging"
	"github.com/tomtom215/intentpage/internal/metrics"
	"github.com/tomtom215/intentpage/internal/pageorder"
	"github.com/tomtom215/intentpage/internal/pool"
)

// Config describes one simulation run.
type Config struct {
	Trials        int
	NumIntents    int
	NumCandidates int
	PageLen       int

	// Seed is the root seed. Trial t draws from rand.NewPCG(Seed, t).
	Seed uint64

	// Strategies are evaluated in order on every trial.
	Strategies []string

	// Baseline names the strategy the others are compared against.
	// Default: the first strategy.
	Baseline string

	EqualIntentWeights bool
	HeadroomPolicy     pageorder.HeadroomPolicy
	SampleWeights      evaluate.SampleWeights

	// Workers bounds the trials evaluated concurrently.
	// Default: runtime.GOMAXPROCS(0).
	Workers int

	// KeepTrials retains every per-trial result in the report.
	KeepTrials bool
}

// StrategySummary aggregates one strategy over all trials.
type StrategySummary struct {
	Strategy string  `json:"strategy"`
	Mean     float64 `json:"mean"`

	// Ratio is Mean divided by the baseline mean; Increase is Ratio - 1.
	Ratio    float64 `json:"ratio"`
	Increase float64 `json:"increase"`

	// NonFinite counts trials whose score was NaN or Inf. Any such trial
	// makes Mean NaN or Inf as well.
	NonFinite int `json:"non_finite"`
}

// Trial holds the results of every strategy for one generated pool.
type Trial struct {
	Index   int               `json:"index"`
	Results []evaluate.Result `json:"results"`
}

// Report is the outcome of Run.
type Report struct {
	RunID     string            `json:"run_id"`
	Seed      uint64            `json:"seed"`
	Trials    int               `json:"trials"`
	Baseline  string            `json:"baseline"`
	Summaries []StrategySummary `json:"summaries"`
	Details   []Trial           `json:"details,omitempty"`
	Duration  time.Duration     `json:"duration_ns"`
}

// Runner executes simulation trials.
type Runner struct {
	cfg       Config
	orderers  []pageorder.Orderer
	baseline  int
	logger    zerolog.Logger
	stepStats *stepCounter
}

// NewRunner validates cfg and builds the requested orderers.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRunner(cfg Config, logger zerolog.Logger) (*Runner, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", pool.ErrInvalidConfig, cfg.Trials)
	}
	if cfg.NumCandidates <= 0 || cfg.NumIntents <= 0 {
		return nil, fmt.Errorf("%w: candidates and intents must be positive, got %d and %d",
			pool.ErrInvalidConfig, cfg.NumCandidates, cfg.NumIntents)
	}
	if cfg.PageLen < 0 || cfg.PageLen > cfg.NumCandidates {
		return nil, fmt.Errorf("%w: page length %d outside [0, %d]", pool.ErrInvalidConfig, cfg.PageLen, cfg.NumCandidates)
	}
	if len(cfg.Strategies) == 0 {
		return nil, fmt.Errorf("%w: at least one strategy is required", pool.ErrInvalidConfig)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Baseline == "" {
		cfg.Baseline = cfg.Strategies[0]
	}

	r := &Runner{
		cfg:       cfg,
		baseline:  -1,
		logger:    logger.With().Str("component", "simulate").Logger(),
		stepStats: &stepCounter{policy: cfg.HeadroomPolicy.String()},
	}
	greedyCfg := pageorder.GreedyConfig{
		HeadroomPolicy: cfg.HeadroomPolicy,
		Observer:       r.stepStats.observe,
	}

	seen := make(map[string]bool, len(cfg.Strategies))
	for i, name := range cfg.Strategies {
		if seen[name] {
			return nil, fmt.Errorf("%w: strategy %q listed twice", pool.ErrInvalidConfig, name)
		}
		seen[name] = true
		o, err := pageorder.New(name, greedyCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", pool.ErrInvalidConfig, err)
		}
		r.orderers = append(r.orderers, o)
		if name == cfg.Baseline {
			r.baseline = i
		}
	}
	if r.baseline < 0 {
		return nil, fmt.Errorf("%w: baseline %q is not among the strategies %v", pool.ErrInvalidConfig, cfg.Baseline, cfg.Strategies)
	}
	return r, nil
}

// Config returns the effective configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

// Run evaluates every strategy on Trials generated pools and summarizes the
// scores. Results depend only on the configuration, never on scheduling.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	runID := logging.RunIDFromContext(ctx)
	if runID == "" {
		runID = logging.GenerateRunID()
		ctx = logging.ContextWithRunID(ctx, runID)
	}
	logger := r.logger.With().Str("run_id", runID).Logger()

	logger.Info().
		Int("trials", r.cfg.Trials).
		Int("candidates", r.cfg.NumCandidates).
		Int("intents", r.cfg.NumIntents).
		Int("pagelen", r.cfg.PageLen).
		Strs("strategies", r.cfg.Strategies).
		Uint64("seed", r.cfg.Seed).
		Int("workers", r.cfg.Workers).
		Msg("Simulation starting")

	trials := make([]Trial, r.cfg.Trials)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for t := 0; t < r.cfg.Trials; t++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			metrics.TrackActiveWorker(true)
			defer metrics.TrackActiveWorker(false)

			trialStart := time.Now()
			res, err := r.runTrial(gctx, t)
			switch {
			case err == nil:
				metrics.RecordTrial(metrics.OutcomeOK, time.Since(trialStart))
			case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
				metrics.RecordTrial(metrics.OutcomeCanceled, time.Since(trialStart))
				return err
			default:
				metrics.RecordTrial(metrics.OutcomeError, time.Since(trialStart))
				return fmt.Errorf("trial %d: %w", t, err)
			}
			trials[t] = Trial{Index: t, Results: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("Simulation aborted")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:     runID,
		Seed:      r.cfg.Seed,
		Trials:    r.cfg.Trials,
		Baseline:  r.cfg.Baseline,
		Summaries: r.summarize(trials),
		Duration:  time.Since(start),
	}
	if r.cfg.KeepTrials {
		report.Details = trials
	}
	metrics.SimulationRuns.Inc()

	for _, s := range report.Summaries {
		logger.Info().
			Str("strategy", s.Strategy).
			Float64("mean", s.Mean).
			Float64("increase", s.Increase).
			Int("non_finite", s.NonFinite).
			Msg("Strategy summary")
	}
	logger.Info().
		Dur("duration", report.Duration).
		Int64("degenerate_steps", r.stepStats.degenerate.Load()).
		Int64("negative_headroom_steps", r.stepStats.negative.Load()).
		Msg("Simulation complete")

	return report, nil
}

// runTrial generates one pool and evaluates every strategy on it. Each
// strategy's harness gets an identically seeded source, so all strategies
// are scored against the same sampled intent.
func (r *Runner) runTrial(ctx context.Context, trial int) ([]evaluate.Result, error) {
	seeds := rand.New(rand.NewPCG(r.cfg.Seed, uint64(trial)))
	genSeed, evalSeed := seeds.Uint64(), seeds.Uint64()

	gen, err := datagen.NewGenerator(rand.NewPCG(genSeed, 0), r.logger)
	if err != nil {
		return nil, err
	}
	p, err := gen.Generate(r.cfg.NumCandidates, r.cfg.NumIntents, r.cfg.EqualIntentWeights)
	if err != nil {
		return nil, fmt.Errorf("generate pool: %w", err)
	}

	results := make([]evaluate.Result, len(r.orderers))
	for i, o := range r.orderers {
		h, err := evaluate.NewHarness(rand.NewPCG(evalSeed, 0),
			evaluate.WithSampleWeights(r.cfg.SampleWeights),
			evaluate.WithLogger(r.logger),
		)
		if err != nil {
			return nil, err
		}
		if results[i], err = h.Evaluate(ctx, p, r.cfg.PageLen, o); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (r *Runner) summarize(trials []Trial) []StrategySummary {
	summaries := make([]StrategySummary, len(r.orderers))
	scores := make([]float64, len(trials))

	for i, o := range r.orderers {
		nonFinite := 0
		for t, trial := range trials {
			scores[t] = trial.Results[i].Score
			if math.IsNaN(scores[t]) || math.IsInf(scores[t], 0) {
				nonFinite++
			}
		}
		summaries[i] = StrategySummary{
			Strategy:  o.Name(),
			Mean:      stat.Mean(scores, nil),
			NonFinite: nonFinite,
		}
	}

	base := summaries[r.baseline].Mean
	for i := range summaries {
		summaries[i].Ratio = summaries[i].Mean / base
		summaries[i].Increase = summaries[i].Ratio - 1
	}
	return summaries
}
