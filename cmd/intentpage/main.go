// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

// Command intentpage compares page-ordering strategies on synthetic
// candidate pools and reports how much each gains over a baseline.
//
//	intentpage run --trials 1000 --seed 42
//	intentpage run --strategies topk,intent_diversity --format json
//	intentpage strategies
package main

import (
	"fmt"
	"os"
)

// Set at build time via -ldflags "-X main.version=..."
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}
