// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

// Package config loads and validates the simulator configuration.
//
// Configuration is layered with Koanf v2, lowest priority first:
//
//  1. Built-in defaults (defaultConfig)
//  2. A YAML file: the path passed to Load, else CONFIG_PATH, else
//     intentpage.yaml or intentpage.yml in the working directory
//  3. INTENTPAGE_* environment variables
//
// Command-line flags are applied on top by the caller.
//
// # Example File
//
//	simulation:
//	  trials: 1000
//	  num_intents: 5
//	  num_candidates: 100
//	  pagelen: 10
//	  seed: 42
//	  strategies: [topk, vm_sort, intent_diversity]
//	  headroom_policy: propagate
//	logging:
//	  level: info
//	  format: console
//	output:
//	  format: table
//
// # Environment Variables
//
// Only the variables listed on each section type are read; any other
// INTENTPAGE_* variable is ignored. INTENTPAGE_STRATEGIES takes a
// comma-separated list.
//
// # Validation
//
// Validate applies struct tags through internal/validation and then the
// rules that span fields: every strategy must be registered in pageorder,
// names must be unique and the baseline must be one of them.
package config
