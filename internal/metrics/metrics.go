// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

package metrics

import (
	"math"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Simulation Metrics
	TrialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intentpage_trials_total",
			Help: "Total number of simulation trials by outcome",
		},
		[]string{"outcome"}, // "ok", "error", "canceled"
	)

	TrialDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "intentpage_trial_duration_seconds",
			Help:    "Duration of one trial (generation plus every strategy)",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	SimulationRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intentpage_simulation_runs_total",
			Help: "Total number of completed simulation runs",
		},
	)

	ActiveWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "intentpage_active_workers",
			Help: "Number of trial workers currently running",
		},
	)

	// Evaluation Metrics
	EvaluationScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intentpage_evaluation_score",
			Help:    "Page score against the oracle for the sampled intent",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
		[]string{"strategy"},
	)

	EvaluationNonFinite = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intentpage_evaluation_non_finite_total",
			Help: "Evaluations whose score was NaN or Inf (zero oracle denominator)",
		},
		[]string{"strategy"},
	)

	InvalidPages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intentpage_invalid_pages_total",
			Help: "Pages rejected because they violated the page postcondition",
		},
		[]string{"strategy"},
	)

	IntentSamples = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intentpage_intent_samples_total",
			Help: "Number of times each intent index was sampled for evaluation",
		},
		[]string{"intent"},
	)

	// Page Ordering Metrics
	OrderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intentpage_order_duration_seconds",
			Help:    "Duration of a single page ordering call",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"strategy"},
	)

	DegenerateWeights = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intentpage_degenerate_weights_total",
			Help: "Greedy steps that left at least one intent weight NaN or Inf",
		},
		[]string{"policy"}, // "propagate", "floor"
	)

	NegativeHeadroom = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intentpage_negative_headroom_total",
			Help: "Greedy steps that left a headroom below zero through rounding",
		},
		[]string{"policy"},
	)

	// Status Server Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intentpage_http_requests_total",
			Help: "Total number of status server requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intentpage_http_request_duration_seconds",
			Help:    "Status server request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "intentpage_http_active_requests",
			Help: "Number of status server requests in flight",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "intentpage_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// Trial outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// RecordTrial records the outcome and duration of one trial.
func RecordTrial(outcome string, duration time.Duration) {
	TrialsTotal.WithLabelValues(outcome).Inc()
	TrialDuration.Observe(duration.Seconds())
}

// RecordEvaluation records one harness result. Non-finite scores are counted
// instead of observed.
func RecordEvaluation(strategy, intent string, score float64) {
	IntentSamples.WithLabelValues(intent).Inc()
	if math.IsNaN(score) || math.IsInf(score, 0) {
		EvaluationNonFinite.WithLabelValues(strategy).Inc()
		return
	}
	EvaluationScore.WithLabelValues(strategy).Observe(score)
}

// RecordInvalidPage counts a page that failed validation.
func RecordInvalidPage(strategy string) {
	InvalidPages.WithLabelValues(strategy).Inc()
}

// RecordOrder records the duration of an Order call.
func RecordOrder(strategy string, duration time.Duration) {
	OrderDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordGreedyStep records the numeric health of one greedy step.
func RecordGreedyStep(policy string, nonFiniteWeights int, negativeHeadroom bool) {
	if nonFiniteWeights > 0 {
		DegenerateWeights.WithLabelValues(policy).Inc()
	}
	if negativeHeadroom {
		NegativeHeadroom.WithLabelValues(policy).Inc()
	}
}

// RecordHTTPRequest records one status server request. route is the chi
// route pattern, not the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight status server requests.
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// TrackActiveWorker tracks running trial workers.
func TrackActiveWorker(inc bool) {
	if inc {
		ActiveWorkers.Inc()
	} else {
		ActiveWorkers.Dec()
	}
}

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
