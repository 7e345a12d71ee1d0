// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

// Package logging provides centralized zerolog-based logging for intentpage.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("trials", 1000).Msg("Simulation starting")
//
//	ctx = logging.ContextWithRunID(ctx, logging.GenerateRunID())
//	logging.Ctx(ctx).Info().Msg("Trial finished") // carries run_id
//
// Components receive a zerolog.Logger and add their own component field,
// so tests can pass zerolog.Nop() or a buffer-backed logger.
//
// # Configuration
//
// Configured through the logging section of the application config
// (INTENTPAGE_LOG_LEVEL, INTENTPAGE_LOG_FORMAT, INTENTPAGE_LOG_CALLER).
// Logs go to stderr so that reports written to stdout stay machine readable.
package logging
