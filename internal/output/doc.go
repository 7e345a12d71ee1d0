// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

// Package output renders simulation reports for the terminal or as JSON.
//
// Table output uses tablewriter with borders disabled; increases over the
// baseline are colored with fatih/color when colors are enabled. JSON output
// uses goccy/go-json and keeps full float precision, with non-finite values
// written as null.
package output
