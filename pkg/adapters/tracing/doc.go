// Package tracing provides the OpenTelemetry tracer provider for the service.
//
// Completed spans are written to a console sink (standard output or standard
// error) through the stdouttrace exporter.
package tracing
