// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/intentpage/internal/api"
	"github.com/tomtom215/intentpage/internal/config"
	"github.com/tomtom215/intentpage/internal/logging"
	"github.com/tomtom215/intentpage/internal/metrics"
	"github.com/tomtom215/intentpage/internal/output"
	"github.com/tomtom215/intentpage/internal/simulate"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation and print per-strategy results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}
			return runSimulation(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.Int("trials", 0, "number of generated pools")
	f.Int("intents", 0, "number of intents per pool")
	f.Int("candidates", 0, "number of candidate items per pool")
	f.Int("pagelen", 0, "number of items per page")
	f.Uint64("seed", 0, "root random seed")
	f.StringSlice("strategies", nil, "strategies to compare, in order")
	f.String("baseline", "", "strategy the others are compared against (default: first strategy)")
	f.Bool("equal-weights", false, "give every intent the same raw weight")
	f.String("headroom-policy", "", "greedy headroom guard: propagate or floor")
	f.String("intent-sampling", "", "intent draw weights: raw_weights or coefficients")
	f.Int("workers", 0, "concurrent trials (0 = GOMAXPROCS)")
	f.String("format", "", "output format: table or json")
	f.Bool("details", false, "include every trial in the output")
	f.Bool("metrics", false, "serve /metrics and the report while running")
	f.String("metrics-addr", "", "status server listen address")
	f.Bool("hold", false, "keep the status server up after the run until interrupted")

	return cmd
}

// loadConfig layers flags over config.Load and revalidates.
func loadConfig(cmd *cobra.Command, root *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(root.configPath)
	if err != nil {
		return nil, err
	}

	if root.logLevel != "" {
		cfg.Logging.Level = root.logLevel
	}
	if root.logFormat != "" {
		cfg.Logging.Format = root.logFormat
	}
	if root.noColor {
		cfg.Output.NoColor = true
	}

	if err := applyRunFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// applyRunFlags copies explicitly set run flags into cfg. Commands without
// run flags are left untouched.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	s := &cfg.Simulation

	var err error
	set := func(name string, apply func() error) {
		if err == nil && f.Lookup(name) != nil && f.Changed(name) {
			err = apply()
		}
	}

	set("trials", func() (e error) { s.Trials, e = f.GetInt("trials"); return })
	set("intents", func() (e error) { s.NumIntents, e = f.GetInt("intents"); return })
	set("candidates", func() (e error) { s.NumCandidates, e = f.GetInt("candidates"); return })
	set("pagelen", func() (e error) { s.PageLen, e = f.GetInt("pagelen"); return })
	set("seed", func() (e error) { s.Seed, e = f.GetUint64("seed"); return })
	set("strategies", func() (e error) { s.Strategies, e = f.GetStringSlice("strategies"); return })
	set("baseline", func() (e error) { s.Baseline, e = f.GetString("baseline"); return })
	set("equal-weights", func() (e error) { s.EqualIntentWeights, e = f.GetBool("equal-weights"); return })
	set("headroom-policy", func() (e error) { s.HeadroomPolicy, e = f.GetString("headroom-policy"); return })
	set("intent-sampling", func() (e error) { s.IntentSampling, e = f.GetString("intent-sampling"); return })
	set("workers", func() (e error) { s.Workers, e = f.GetInt("workers"); return })
	set("format", func() (e error) { cfg.Output.Format, e = f.GetString("format"); return })
	set("details", func() (e error) { cfg.Output.Trials, e = f.GetBool("details"); return })
	set("metrics", func() (e error) { cfg.Metrics.Enabled, e = f.GetBool("metrics"); return })
	set("metrics-addr", func() (e error) { cfg.Metrics.Addr, e = f.GetString("metrics-addr"); return })
	set("hold", func() (e error) { cfg.Metrics.Hold, e = f.GetBool("hold"); return })

	if err != nil {
		return fmt.Errorf("read flags: %w", err)
	}
	return nil
}

func initLogging(cmd *cobra.Command, cfg *config.Config) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logCfg.Output = cmd.ErrOrStderr()
	logging.Init(logCfg)
}

func runSimulation(cmd *cobra.Command, cfg *config.Config) error {
	initLogging(cmd, cfg)
	metrics.SetAppInfo(version)

	simCfg, err := cfg.SimulateConfig()
	if err != nil {
		return err
	}
	runner, err := simulate.NewRunner(simCfg, logging.Logger())
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	runID := logging.GenerateRunID()
	ctx = logging.ContextWithRunID(ctx, runID)

	var server *api.Server
	var g errgroup.Group
	srvCtx, stopServer := context.WithCancel(ctx)
	defer stopServer()
	if cfg.Metrics.Enabled {
		server = api.NewServer(api.Config{
			Addr:        cfg.Metrics.Addr,
			CORSOrigins: cfg.Metrics.CORSOrigins,
			RateLimit:   cfg.Metrics.RateLimit,
		}, logging.Logger())
		g.Go(func() error { return server.Serve(srvCtx) })
		server.SetRunning(true)
	}

	report, runErr := runner.Run(ctx)
	if server != nil {
		server.SetRunning(false)
	}

	if runErr == nil {
		if server != nil {
			server.SetReport(report)
		}
		w := output.NewWriter(cmd.OutOrStdout(), format, output.UseColors(cfg.Output.NoColor))
		runErr = w.Write(report)
	}

	if server != nil && cfg.Metrics.Hold && runErr == nil {
		logging.Ctx(ctx).Info().Str("addr", cfg.Metrics.Addr).Msg("Run complete, status server stays up until interrupted")
		<-ctx.Done()
	}
	stopServer()
	srvErr := g.Wait()

	if errors.Is(runErr, context.Canceled) {
		logging.Ctx(ctx).Warn().Msg("Simulation interrupted")
	}
	return errors.Join(runErr, srvErr)
}
