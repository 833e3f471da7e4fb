// Package http provides the HTTP API of the demo service.
//
// The HTTP server exposes endpoints for:
//   - A static greeting (GET /)
//   - Echoing a JSON payload (POST /echo)
//   - Prometheus metrics (GET /metrics)
//
// Every greeting and echo request increments http_requests_total, observes
// http_request_latency_seconds and runs inside a handler span.
package http
