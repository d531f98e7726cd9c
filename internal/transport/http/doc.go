// Package http implements the HTTP handlers of the analysis service. Handlers
// stay thin: they parse the request, call a service and render the result or
// hand the error to the shared RFC 7807 error handler.
//
// Routes:
//
//	POST /analyze, /api/analyze    multipart upload (field "file"), returns the report
//	GET  /api/health               overall health
//	GET  /api/health/live          liveness probe
//	GET  /api/health/ready         readiness probe (503 when not ready)
//	GET  /api/version              build and version information
//	POST /api/client-log           dashboard log forwarding
//	GET  /static/*                 dashboard assets, when a static dir is configured
//
// Error responses use application/problem+json style bodies with
// error_code and trace_id extensions; see internal/errors.
package http
