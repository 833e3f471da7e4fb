// Package prometheus provides the request metrics collector.
//
// Each Collector owns a private registry, so independent collectors never
// share samples. The exported series are:
//   - http_requests_total{method, endpoint, http_status}
//   - http_request_latency_seconds{endpoint}
package prometheus
