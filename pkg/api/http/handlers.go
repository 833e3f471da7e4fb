package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	helloMessage = "Hello, DevOps!"

	errUnsupportedMediaType = "Content-Type must be application/json"
	errInvalidJSON          = "Request body must be valid JSON"
)

// HelloResponse is the body returned by GET /
type HelloResponse struct {
	Message string `json:"message"`
}

// EchoResponse wraps the payload received by POST /echo
type EchoResponse struct {
	YouSent interface{} `json:"you_sent"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleHello handles GET /
func (s *Server) handleHello(c *gin.Context) {
	start := time.Now()

	_, span := s.tracer.Start(c.Request.Context(), "hello-handler")
	defer span.End()

	s.observe(c, span, "/", http.StatusOK, start)

	s.logger.Info("hello served",
		zap.String("path", "/"),
		zap.String("method", c.Request.Method),
		zap.String("request_id", c.GetString(requestIDKey)))

	c.JSON(http.StatusOK, HelloResponse{Message: helloMessage})
}

// handleEcho handles POST /echo
func (s *Server) handleEcho(c *gin.Context) {
	start := time.Now()

	_, span := s.tracer.Start(c.Request.Context(), "echo-handler")
	defer span.End()

	if !isJSONContentType(c.GetHeader("Content-Type")) {
		s.observe(c, span, "/echo", http.StatusUnsupportedMediaType, start)
		s.logger.Info("echo rejected",
			zap.String("content_type", c.GetHeader("Content-Type")),
			zap.String("request_id", c.GetString(requestIDKey)))
		c.JSON(http.StatusUnsupportedMediaType, ErrorResponse{Error: errUnsupportedMediaType})
		return
	}

	payload, err := decodeJSONBody(c.Request.Body)
	if err != nil {
		span.RecordError(err)
		s.observe(c, span, "/echo", http.StatusBadRequest, start)
		s.logger.Info("echo rejected",
			zap.Error(err),
			zap.String("request_id", c.GetString(requestIDKey)))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: errInvalidJSON})
		return
	}

	s.observe(c, span, "/echo", http.StatusOK, start)

	s.logger.Info("echo",
		zap.Any("payload", payload),
		zap.String("request_id", c.GetString(requestIDKey)))

	c.JSON(http.StatusOK, EchoResponse{YouSent: payload})
}

// observe records the counter and latency pair for one handled request
func (s *Server) observe(c *gin.Context, span trace.Span, endpoint string, status int, start time.Time) {
	s.metrics.RecordRequest(c.Request.Method, endpoint, status)
	s.metrics.ObserveLatency(endpoint, time.Since(start))
	span.SetAttributes(attribute.Int("http.response.status_code", status))
}

// decodeJSONBody decodes exactly one JSON value from r. Numbers are kept as
// json.Number so integers beyond float64 precision round-trip unchanged.
func decodeJSONBody(r io.Reader) (interface{}, error) {
	if r == nil {
		return nil, errors.New("empty request body")
	}

	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var payload interface{}
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode JSON body: %w", err)
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}

	return payload, nil
}

// isJSONContentType reports whether header names application/json or an
// application/*+json media type. Parameters are ignored.
func isJSONContentType(header string) bool {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return false
	}

	if mediaType == "application/json" {
		return true
	}
	return strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json")
}
