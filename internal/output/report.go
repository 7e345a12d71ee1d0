// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package output

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"

	"github.com/tomtom215/intentpage/internal/simulate"
)

// Writer renders reports to an io.Writer.
type Writer struct {
	out       io.Writer
	format    Format
	useColors bool
}

// NewWriter creates a report writer.
func NewWriter(out io.Writer, format Format, useColors bool) *Writer {
	return &Writer{out: out, format: format, useColors: useColors}
}

// Write renders r in the configured format.
func (w *Writer) Write(r *simulate.Report) error {
	if r == nil {
		return fmt.Errorf("output: nil report")
	}
	if w.format == FormatJSON {
		return WriteJSON(w.out, r)
	}
	return w.writeTable(r)
}

func (w *Writer) writeTable(r *simulate.Report) error {
	header := fmt.Sprintf("Run %s  seed=%d  trials=%d  baseline=%s  (%s)",
		r.RunID, r.Seed, r.Trials, r.Baseline, r.Duration.Round(time.Millisecond))
	if w.useColors {
		header = color.New(color.Bold).Sprint(header)
	}
	if _, err := fmt.Fprintf(w.out, "%s\n\n", header); err != nil {
		return err
	}

	t := NewTable(w.out, []string{"Strategy", "Mean", "Ratio", "Increase", "Non-Finite"})
	for _, s := range r.Summaries {
		t.AddRow([]string{
			s.Strategy,
			formatFloat(s.Mean),
			formatFloat(s.Ratio),
			w.colorIncrease(s.Ratio),
			fmt.Sprint(s.NonFinite),
		})
	}
	if err := t.Render(); err != nil {
		return err
	}

	if len(r.Details) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w.out); err != nil {
		return err
	}
	d := NewTable(w.out, []string{"Trial", "Strategy", "Intent", "Page", "Score"})
	for _, trial := range r.Details {
		for _, res := range trial.Results {
			d.AddRow([]string{
				fmt.Sprint(trial.Index),
				res.Strategy,
				fmt.Sprint(res.Intent),
				formatPage(res.Page),
				formatFloat(res.Score),
			})
		}
	}
	return d.Render()
}

func (w *Writer) colorIncrease(ratio float64) string {
	inc := Increase(ratio)
	text := formatFloat(inc)
	if inc >= 0 && !math.IsInf(inc, 1) {
		text = "+" + text
	}
	if !w.useColors {
		return text
	}
	switch {
	case inc > 0:
		return color.GreenString(text)
	case inc < 0:
		return color.RedString(text)
	default:
		return text
	}
}

// JSONSummary is StrategySummary with non-finite values as null.
type JSONSummary struct {
	Strategy  string   `json:"strategy"`
	Mean      *float64 `json:"mean"`
	Ratio     *float64 `json:"ratio"`
	Increase  *float64 `json:"increase"`
	NonFinite int      `json:"non_finite"`
}

// JSONResult is evaluate.Result with a non-finite score as null.
type JSONResult struct {
	Strategy    string   `json:"strategy"`
	Intent      int      `json:"intent"`
	Page        []int    `json:"page"`
	Numerator   float64  `json:"numerator"`
	Denominator float64  `json:"denominator"`
	Score       *float64 `json:"score"`
}

// JSONTrial holds the results of one trial.
type JSONTrial struct {
	Index   int          `json:"index"`
	Results []JSONResult `json:"results"`
}

// JSONReport is the JSON document for a simulate.Report.
type JSONReport struct {
	RunID      string        `json:"run_id"`
	Seed       uint64        `json:"seed"`
	Trials     int           `json:"trials"`
	Baseline   string        `json:"baseline"`
	DurationMS int64         `json:"duration_ms"`
	Summaries  []JSONSummary `json:"summaries"`
	Details    []JSONTrial   `json:"details,omitempty"`
}

// finite returns nil for NaN and Inf, which JSON cannot represent.
func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}

// NewJSONReport converts r into its JSON document.
func NewJSONReport(r *simulate.Report) JSONReport {
	doc := JSONReport{
		RunID:      r.RunID,
		Seed:       r.Seed,
		Trials:     r.Trials,
		Baseline:   r.Baseline,
		DurationMS: r.Duration.Milliseconds(),
		Summaries:  make([]JSONSummary, len(r.Summaries)),
	}
	for i, s := range r.Summaries {
		doc.Summaries[i] = JSONSummary{
			Strategy:  s.Strategy,
			Mean:      finite(s.Mean),
			Ratio:     finite(s.Ratio),
			Increase:  finite(s.Increase),
			NonFinite: s.NonFinite,
		}
	}
	for _, trial := range r.Details {
		jt := JSONTrial{Index: trial.Index, Results: make([]JSONResult, len(trial.Results))}
		for i, res := range trial.Results {
			jt.Results[i] = JSONResult{
				Strategy:    res.Strategy,
				Intent:      res.Intent,
				Page:        res.Page,
				Numerator:   res.Numerator,
				Denominator: res.Denominator,
				Score:       finite(res.Score),
			}
		}
		doc.Details = append(doc.Details, jt)
	}
	return doc
}

// WriteJSON writes r as indented JSON.
func WriteJSON(out io.Writer, r *simulate.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewJSONReport(r)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
