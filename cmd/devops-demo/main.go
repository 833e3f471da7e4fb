package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/devops-demo/internal/config"
	"github.com/aescanero/devops-demo/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/devops-demo/pkg/adapters/tracing"
	"github.com/aescanero/devops-demo/pkg/api/http"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting devops demo",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	exporter, err := newSpanExporter(cfg.Tracing)
	if err != nil {
		logger.Fatal("failed to create span exporter", zap.Error(err))
	}

	tracerProvider, err := tracing.NewProvider(&tracing.Config{
		ServiceName: cfg.Tracing.ServiceName,
		Logger:      logger,
	}, exporter)
	if err != nil {
		logger.Fatal("failed to create tracer provider", zap.Error(err))
	}

	metricsCollector := prometheus.NewCollector()

	httpServer := http.NewServer(&http.Config{
		Addr:              cfg.GetHTTPAddr(),
		ReadHeaderTimeout: cfg.Timeouts.ReadHeaderTimeout,
		Metrics:           metricsCollector,
		Tracer:            tracerProvider.Tracer(),
		Logger:            logger,
	})

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	logger.Info("devops demo started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.String("trace_sink", cfg.Tracing.Sink))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		logger.Error("tracer provider shutdown error", zap.Error(err))
	}

	logger.Info("devops demo shut down complete")
}

// newSpanExporter returns the console exporter for the configured sink, or
// nil when spans should not be exported
func newSpanExporter(cfg config.TracingConfig) (sdktrace.SpanExporter, error) {
	var w io.Writer
	switch cfg.Sink {
	case config.TraceSinkStdout:
		w = os.Stdout
	case config.TraceSinkStderr:
		w = os.Stderr
	case config.TraceSinkNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported trace sink: %s", cfg.Sink)
	}

	return tracing.NewConsoleExporter(w, cfg.PrettyPrint)
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	logger, err := newLoggerConfig(level).Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}

// newLoggerConfig returns the production config without sampling, so every
// handled request keeps its log line
func newLoggerConfig(level string) zap.Config {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.OutputPaths = []string{"stdout"}
	config.Sampling = nil
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return config
}
