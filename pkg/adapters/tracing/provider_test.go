package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func TestNewProvider_RequiresServiceName(t *testing.T) {
	_, err := NewProvider(&Config{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service name")
}

func TestProvider_ExportsEndedSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	p, err := NewProvider(&Config{ServiceName: "devops-demo", Logger: zap.NewNop()}, exporter)
	require.NoError(t, err)
	defer func() { _ = p.Shutdown(context.Background()) }()

	ctx, parent := p.Tracer().Start(context.Background(), "parent", trace.WithSpanKind(trace.SpanKindServer))
	_, child := p.Tracer().Start(ctx, "child")

	assert.Empty(t, exporter.GetSpans(), "spans are exported only once ended")

	child.End()
	parent.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "child", spans[0].Name)
	assert.Equal(t, "parent", spans[1].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Equal(t, trace.SpanKindServer, spans[1].SpanKind)

	var serviceName string
	for _, kv := range spans[1].Resource.Attributes() {
		if kv.Key == "service.name" {
			serviceName = kv.Value.AsString()
		}
	}
	assert.Equal(t, "devops-demo", serviceName)
}

func TestProvider_NilExporterStillRecords(t *testing.T) {
	p, err := NewProvider(&Config{ServiceName: "devops-demo"}, nil)
	require.NoError(t, err)

	_, span := p.Tracer().Start(context.Background(), "noop")
	assert.True(t, span.IsRecording())
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
}

func TestConsoleExporter_WritesSpans(t *testing.T) {
	tests := []struct {
		name   string
		pretty bool
	}{
		{name: "compact", pretty: false},
		{name: "pretty", pretty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			exporter, err := NewConsoleExporter(&buf, tt.pretty)
			require.NoError(t, err)

			p, err := NewProvider(&Config{ServiceName: "devops-demo"}, exporter)
			require.NoError(t, err)

			_, span := p.Tracer().Start(context.Background(), "hello-handler")
			span.End()
			require.NoError(t, p.Shutdown(context.Background()))

			assert.Contains(t, buf.String(), `"Name"`)
			assert.Contains(t, buf.String(), "hello-handler")
		})
	}
}
