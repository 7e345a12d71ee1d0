// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	noColor    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "intentpage",
		Short: "Intent-diverse page selection simulator",
		Long: `intentpage generates synthetic candidate pools, lets each page-ordering
strategy pick a page, and scores the page against the best achievable page for
a randomly sampled user intent.

Configuration is read from defaults, then a YAML file (--config, CONFIG_PATH or
./intentpage.yaml), then INTENTPAGE_* environment variables, then flags.

Example usage:
  intentpage run                               # 1000 trials, all strategies
  intentpage run --trials 200 --pagelen 5      # smaller pages
  intentpage run --headroom-policy floor       # guard degenerate intents
  intentpage run --format json --details       # machine-readable, per trial
  intentpage strategies                        # list page orderers`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file (default: CONFIG_PATH or ./intentpage.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, disabled")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format: console or json")
	pf.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newRunCmd(opts),
		newStrategiesCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return cmd
}
