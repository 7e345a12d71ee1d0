// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

/*
Package middleware provides HTTP middleware for the status server.

Key Components:

  - RequestID: UUID request IDs, echoed in X-Request-ID and stored in the
    logging context so logging.Ctx adds a request_id field
  - PrometheusMetrics: request count, latency and in-flight gauge, labeled
    by chi route pattern

Both are plain func(http.Handler) http.Handler and plug into chi's r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
