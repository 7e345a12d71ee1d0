// Intentpage - Intent-Diverse Page Selection Simulator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/intentpage

/*
Package api serves the optional status endpoint that runs beside a simulation.

Routes (Chi router):

	GET /metrics              Prometheus exposition (promhttp)
	GET /api/v1/health        liveness plus run state
	GET /api/v1/strategies    registered page orderers
	GET /api/v1/report        latest completed report, 404 until one exists

Every response under /api/v1 uses the APIResponse envelope. Reports are
encoded through output.NewJSONReport, so NaN and Inf appear as null.

Middleware, outermost first: request ID, panic recovery, Prometheus
instrumentation, then CORS when origins are configured. The /api/v1 group is
rate limited per client IP with go-chi/httprate when RateLimit is positive.
*/
package api
