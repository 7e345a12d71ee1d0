// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package output

import (
	"fmt"
	"math"
	"os"
	"strings"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return FormatTable, fmt.Errorf("invalid output format %q: must be table or json", s)
	}
}

// Round3 rounds x to three decimals, half away from zero.
func Round3(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return math.Round(x*1000) / 1000
}

// Increase is the relative gain printed next to a ratio: the ratio rounded
// to three decimals, minus one.
func Increase(ratio float64) float64 {
	return Round3(Round3(ratio) - 1)
}

// UseColors reports whether colored output should be used. NO_COLOR and
// TERM=dumb always disable colors.
func UseColors(noColor bool) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func formatFloat(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "+Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}
	return fmt.Sprintf("%.3f", Round3(x))
}

func formatPage(page []int) string {
	parts := make([]string, len(page))
	for i, id := range page {
		parts[i] = fmt.Sprint(id)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
