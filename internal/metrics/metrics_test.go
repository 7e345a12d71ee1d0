// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package metrics

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount extracts the sample count of one histogram series.
func histogramCount(t *testing.T, vec *prometheus.HistogramVec, labels ...string) uint64 {
	t.Helper()
	obs, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("failed to get histogram: %v", err)
	}
	var m io_prometheus_client.Metric
	if err := obs.(prometheus.Metric).Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordTrial(t *testing.T) {
	before := testutil.ToFloat64(TrialsTotal.WithLabelValues(OutcomeOK))
	RecordTrial(OutcomeOK, 3*time.Millisecond)
	RecordTrial(OutcomeOK, time.Millisecond)

	if got := testutil.ToFloat64(TrialsTotal.WithLabelValues(OutcomeOK)) - before; got != 2 {
		t.Errorf("trials_total{outcome=ok} delta = %v, want 2", got)
	}
}

func TestRecordEvaluation(t *testing.T) {
	tests := []struct {
		name          string
		score         float64
		wantNonFinite float64
	}{
		{"finite score", 0.75, 0},
		{"perfect score", 1, 0},
		{"NaN score", math.NaN(), 1},
		{"Inf score", math.Inf(1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const strategy = "test_eval"
			before := testutil.ToFloat64(EvaluationNonFinite.WithLabelValues(strategy))
			observed := histogramCount(t, EvaluationScore, strategy)
			samples := testutil.ToFloat64(IntentSamples.WithLabelValues("3"))

			RecordEvaluation(strategy, "3", tt.score)

			if got := testutil.ToFloat64(EvaluationNonFinite.WithLabelValues(strategy)) - before; got != tt.wantNonFinite {
				t.Errorf("non-finite delta = %v, want %v", got, tt.wantNonFinite)
			}
			wantObserved := uint64(1)
			if tt.wantNonFinite > 0 {
				wantObserved = 0
			}
			if got := histogramCount(t, EvaluationScore, strategy) - observed; got != wantObserved {
				t.Errorf("score observations delta = %d, want %d", got, wantObserved)
			}
			if got := testutil.ToFloat64(IntentSamples.WithLabelValues("3")) - samples; got != 1 {
				t.Errorf("intent samples delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordGreedyStep(t *testing.T) {
	tests := []struct {
		name         string
		nonFinite    int
		negative     bool
		wantDegen    float64
		wantNegative float64
	}{
		{"healthy step", 0, false, 0, 0},
		{"NaN weights", 2, false, 1, 0},
		{"drift only", 0, true, 0, 1},
		{"both", 1, true, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			degen := testutil.ToFloat64(DegenerateWeights.WithLabelValues("propagate"))
			neg := testutil.ToFloat64(NegativeHeadroom.WithLabelValues("propagate"))

			RecordGreedyStep("propagate", tt.nonFinite, tt.negative)

			if got := testutil.ToFloat64(DegenerateWeights.WithLabelValues("propagate")) - degen; got != tt.wantDegen {
				t.Errorf("degenerate delta = %v, want %v", got, tt.wantDegen)
			}
			if got := testutil.ToFloat64(NegativeHeadroom.WithLabelValues("propagate")) - neg; got != tt.wantNegative {
				t.Errorf("negative headroom delta = %v, want %v", got, tt.wantNegative)
			}
		})
	}
}

func TestRecordInvalidPage(t *testing.T) {
	before := testutil.ToFloat64(InvalidPages.WithLabelValues("broken"))
	RecordInvalidPage("broken")
	if got := testutil.ToFloat64(InvalidPages.WithLabelValues("broken")) - before; got != 1 {
		t.Errorf("invalid pages delta = %v, want 1", got)
	}
}

func TestTrackActiveWorker_Concurrent(t *testing.T) {
	before := testutil.ToFloat64(ActiveWorkers)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveWorker(true)
			RecordOrder("topk", time.Microsecond)
			TrackActiveWorker(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(ActiveWorkers); got != before {
		t.Errorf("active workers = %v, want %v", got, before)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/report", "404"))
	active := testutil.ToFloat64(HTTPActiveRequests)

	TrackActiveRequest(true)
	RecordHTTPRequest("GET", "/api/v1/report", "404", 2*time.Millisecond)
	TrackActiveRequest(false)

	if got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/report", "404")) - before; got != 1 {
		t.Errorf("http requests delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(HTTPActiveRequests); got != active {
		t.Errorf("active requests = %v, want %v", got, active)
	}
	if got := histogramCount(t, HTTPRequestDuration, "GET", "/api/v1/report"); got < 1 {
		t.Errorf("request duration samples = %d, want at least 1", got)
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("v0.0.0-test")
	if n := testutil.CollectAndCount(AppInfo); n < 1 {
		t.Errorf("app_info series = %d, want at least 1", n)
	}
}

func TestMetricGathering(t *testing.T) {
	RecordTrial(OutcomeError, time.Millisecond)
	RecordOrder("intent_diversity", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}
