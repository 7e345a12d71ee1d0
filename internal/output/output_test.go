// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package output

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/intentpage/internal/evaluate"
	"github.com/tomtom215/intentpage/internal/simulate"
)

func sampleReport() *simulate.Report {
	return &simulate.Report{
		RunID:    "run-1",
		Seed:     42,
		Trials:   2,
		Baseline: "topk",
		Duration: 1500 * time.Millisecond,
		Summaries: []simulate.StrategySummary{
			{Strategy: "topk", Mean: 0.4, Ratio: 1, Increase: 0},
			{Strategy: "vm_sort", Mean: 0.32, Ratio: 0.8, Increase: -0.2},
			{Strategy: "intent_diversity", Mean: 0.5, Ratio: 1.25, Increase: 0.25},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"", FormatTable, false},
		{"csv", FormatTable, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRound3(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.23449, 1.234},
		{1.2345, 1.235},
		{-0.0004, 0},
		{2, 2},
	}
	for _, tt := range tests {
		if got := Round3(tt.in); got != tt.want {
			t.Errorf("Round3(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !math.IsNaN(Round3(math.NaN())) {
		t.Error("Round3(NaN) should stay NaN")
	}
}

func TestIncrease(t *testing.T) {
	tests := []struct {
		ratio, want float64
	}{
		{1, 0},
		{1.25, 0.25},
		{0.8, -0.2},
		{1.0004, 0},
		{1.1236, 0.124},
	}
	for _, tt := range tests {
		if got := Increase(tt.ratio); got != tt.want {
			t.Errorf("Increase(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}

func TestUseColors(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "")
	if UseColors(false) {
		t.Error("UseColors() with NO_COLOR set should be false")
	}
	if UseColors(true) {
		t.Error("UseColors(noColor=true) should be false")
	}
}

func TestWriter_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf, FormatTable, false).Write(sampleReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"run-1", "seed=42", "baseline=topk",
		"topk", "vm_sort", "intent_diversity",
		"+0.000", "-0.200", "+0.250", "1.250", "0.320",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("table output contains color codes with colors disabled")
	}
}

func TestWriter_TableDetails(t *testing.T) {
	r := sampleReport()
	r.Details = []simulate.Trial{{
		Index: 0,
		Results: []evaluate.Result{
			{Strategy: "topk", Intent: 2, Page: []int{4, 1}, Score: math.NaN()},
		},
	}}

	var buf bytes.Buffer
	if err := NewWriter(&buf, FormatTable, false).Write(r); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "[4 1]") || !strings.Contains(out, "NaN") {
		t.Errorf("details missing page or NaN score:\n%s", out)
	}
}

func TestWriter_NilReport(t *testing.T) {
	if err := NewWriter(&bytes.Buffer{}, FormatTable, false).Write(nil); err == nil {
		t.Error("Write(nil) = nil, want error")
	}
}

func TestWriteJSON(t *testing.T) {
	r := sampleReport()
	r.Summaries[1].Mean = math.NaN()
	r.Summaries[1].Ratio = math.NaN()
	r.Summaries[1].Increase = math.NaN()
	r.Summaries[1].NonFinite = 1

	var buf bytes.Buffer
	if err := NewWriter(&buf, FormatJSON, true).Write(r); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var got JSONReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v\n%s", err, buf.String())
	}
	if got.RunID != "run-1" || got.Seed != 42 || got.DurationMS != 1500 {
		t.Errorf("header = %+v", got)
	}
	if len(got.Summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(got.Summaries))
	}
	if got.Summaries[1].Mean != nil || got.Summaries[1].NonFinite != 1 {
		t.Errorf("NaN summary = %+v, want null mean and non_finite 1", got.Summaries[1])
	}
	if m := got.Summaries[2].Mean; m == nil || *m != 0.5 {
		t.Errorf("intent_diversity mean = %v, want 0.5", m)
	}
	if got.Details != nil {
		t.Errorf("Details = %v, want omitted", got.Details)
	}
}
