// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

// Package validation provides struct validation using go-playground/validator v10.
//
// The package keeps one thread-safe validator instance (struct metadata is
// cached across calls) and translates field errors into short human-readable
// messages.
//
// # Quick Start
//
//	type SimulationConfig struct {
//	    Trials     int      `validate:"gte=1"`
//	    Strategies []string `validate:"min=1,dive,identifier"`
//	}
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    for _, fe := range verr.Errors() {
//	        fmt.Println(fe.Field(), fe.Tag(), fe.Error())
//	    }
//	}
//
// # Custom Validators
//
//   - identifier: lowercase snake_case name, e.g. "intent_diversity"
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use.
package validation
