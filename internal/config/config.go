package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Trace sinks accepted by TRACE_SINK.
const (
	TraceSinkStdout = "stdout"
	TraceSinkStderr = "stderr"
	TraceSinkNone   = "none"
)

// Config holds all configuration for the demo service
type Config struct {
	// Server configuration
	HTTPPort int    `env:"DEMO_HTTP_PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Tracing configuration
	Tracing TracingConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// TracingConfig holds span export configuration
type TracingConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"devops-demo"`
	Sink        string `env:"TRACE_SINK" envDefault:"stdout"`
	PrettyPrint bool   `env:"TRACE_PRETTY" envDefault:"false"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ReadHeaderTimeout time.Duration `env:"TIMEOUT_READ_HEADER" envDefault:"10s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	switch c.Tracing.Sink {
	case TraceSinkStdout, TraceSinkStderr, TraceSinkNone:
	default:
		return fmt.Errorf("invalid trace sink: %s (must be stdout, stderr, or none)", c.Tracing.Sink)
	}
	if c.Tracing.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}

	if c.Timeouts.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("read header timeout must be positive")
	}
	if c.Timeouts.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
