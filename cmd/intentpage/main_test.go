// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/intentpage/internal/config"
	"github.com/tomtom215/intentpage/internal/output"
)

// execute runs the CLI in an empty directory and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv(config.ConfigPathEnvVar, "")
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	for _, field := range []string{"commit:", "built:", "go version:", "platform:"} {
		if !strings.Contains(out, field) {
			t.Errorf("version output missing %q field. Got:\n%s", field, out)
		}
	}

	out, err = execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version --short failed: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q, want %q", out, version)
	}

	out, err = execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json failed: %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if info["version"] != version {
		t.Errorf("version = %q, want %q", info["version"], version)
	}
}

func TestStrategies(t *testing.T) {
	out, err := execute(t, "strategies")
	if err != nil {
		t.Fatalf("strategies failed: %v", err)
	}
	for _, name := range []string{"topk", "vm_sort", "intent_diversity", "headroom"} {
		if !strings.Contains(out, name) {
			t.Errorf("strategies output missing %q:\n%s", name, out)
		}
	}
}

func TestRun_Table(t *testing.T) {
	out, err := execute(t, "run",
		"--trials", "20", "--candidates", "30", "--intents", "3", "--pagelen", "5",
		"--seed", "9", "--log-level", "disabled")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{"seed=9", "trials=20", "baseline=topk", "intent_diversity", "+0.000"} {
		if !strings.Contains(out, want) {
			t.Errorf("run output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_JSON(t *testing.T) {
	out, err := execute(t, "run",
		"--trials", "10", "--candidates", "20", "--intents", "2", "--pagelen", "4",
		"--strategies", "vm_sort,intent_diversity", "--baseline", "intent_diversity",
		"--format", "json", "--details", "--log-level", "disabled")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var report output.JSONReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if report.Trials != 10 || report.Baseline != "intent_diversity" {
		t.Errorf("trials/baseline = %d/%s, want 10/intent_diversity", report.Trials, report.Baseline)
	}
	if len(report.Summaries) != 2 || report.Summaries[0].Strategy != "vm_sort" {
		t.Errorf("summaries = %+v", report.Summaries)
	}
	if len(report.Details) != 10 {
		t.Errorf("details = %d trials, want 10", len(report.Details))
	}
	for _, res := range report.Details[0].Results {
		if len(res.Page) != 4 {
			t.Errorf("%s page = %v, want 4 items", res.Strategy, res.Page)
		}
	}
}

func TestRun_Reproducible(t *testing.T) {
	args := []string{"run", "--trials", "15", "--candidates", "25", "--pagelen", "5",
		"--seed", "3", "--format", "json", "--log-level", "disabled"}

	first, err := execute(t, args...)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := execute(t, args...)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	var a, b output.JSONReport
	if err := json.Unmarshal([]byte(first), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(second), &b); err != nil {
		t.Fatal(err)
	}
	for i := range a.Summaries {
		if *a.Summaries[i].Mean != *b.Summaries[i].Mean {
			t.Errorf("%s mean differs between runs: %v vs %v",
				a.Summaries[i].Strategy, *a.Summaries[i].Mean, *b.Summaries[i].Mean)
		}
	}
}

func TestRun_InvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"pagelen above candidates", []string{"--candidates", "5", "--pagelen", "6"}, "PageLen"},
		{"unknown strategy", []string{"--strategies", "random"}, "unknown strategy"},
		{"baseline not listed", []string{"--strategies", "topk", "--baseline", "vm_sort"}, "baseline"},
		{"bad policy", []string{"--headroom-policy", "clamp"}, "HeadroomPolicy"},
		{"bad format", []string{"--format", "xml"}, "Format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"run", "--log-level", "disabled"}, tt.args...)...)
			if err == nil {
				t.Fatal("run succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigCmd(t *testing.T) {
	t.Setenv("INTENTPAGE_TRIALS", "123")

	out, err := execute(t, "config", "--log-level", "debug")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	for _, want := range []string{"trials: 123", "level: debug", "headroom_policy: propagate"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}
