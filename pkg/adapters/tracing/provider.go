package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Config holds tracer provider configuration
type Config struct {
	ServiceName string
	Logger      *zap.Logger
}

// Provider owns the tracer provider and the tracer handed to HTTP handlers
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	logger   *zap.Logger
}

// NewConsoleExporter creates an exporter that writes completed spans to w as JSON
func NewConsoleExporter(w io.Writer, prettyPrint bool) (sdktrace.SpanExporter, error) {
	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if prettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}

	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create console exporter: %w", err)
	}
	return exporter, nil
}

// NewProvider creates a tracer provider. Each span is exported synchronously
// when it ends. A nil exporter still records spans but exports nothing.
//
// The provider is not installed globally; callers pass Tracer() to the
// components that create spans.
func NewProvider(cfg *Config, exporter sdktrace.SpanExporter) (*Provider, error) {
	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	)

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithSyncer(exporter))
	}

	provider := sdktrace.NewTracerProvider(opts...)

	logger.Info("tracing initialized",
		zap.String("service_name", cfg.ServiceName),
		zap.Bool("exporting", exporter != nil))

	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(cfg.ServiceName),
		logger:   logger,
	}, nil
}

// Tracer returns the tracer used to start spans
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Shutdown flushes pending spans and stops the exporter
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.provider.Shutdown(ctx); err != nil {
		p.logger.Error("failed to shutdown tracer provider", zap.Error(err))
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}

	p.logger.Info("tracer provider shut down")
	return nil
}
