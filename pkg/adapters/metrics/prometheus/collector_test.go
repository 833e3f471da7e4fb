package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCollector_RecordRequest(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		endpoint string
		status   int
		times    int
	}{
		{name: "single hello", method: http.MethodGet, endpoint: "/", status: http.StatusOK, times: 1},
		{name: "repeated echo", method: http.MethodPost, endpoint: "/echo", status: http.StatusOK, times: 5},
		{name: "unsupported media type", method: http.MethodPost, endpoint: "/echo", status: http.StatusUnsupportedMediaType, times: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector()
			for i := 0; i < tt.times; i++ {
				c.RecordRequest(tt.method, tt.endpoint, tt.status)
			}

			got := testutil.ToFloat64(c.requestsTotal.WithLabelValues(tt.method, tt.endpoint, strconv.Itoa(tt.status)))
			assert.Equal(t, float64(tt.times), got)
		})
	}
}

func TestCollector_ObserveLatency(t *testing.T) {
	c := NewCollector()

	c.ObserveLatency("/", 5*time.Millisecond)
	c.ObserveLatency("/", 20*time.Millisecond)
	c.ObserveLatency("/echo", time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(c.requestLatency))
}

func TestCollector_Isolation(t *testing.T) {
	a := NewCollector()
	b := NewCollector()

	a.RecordRequest(http.MethodGet, "/", http.StatusOK)

	assert.Equal(t, 1, testutil.CollectAndCount(a.requestsTotal))
	assert.Equal(t, 0, testutil.CollectAndCount(b.requestsTotal))
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	c := NewCollector()

	const workers, perWorker = 8, 250
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.RecordRequest(http.MethodGet, "/", http.StatusOK)
				c.ObserveLatency("/", time.Microsecond)
			}
		}()
	}
	wg.Wait()

	got := testutil.ToFloat64(c.requestsTotal.WithLabelValues(http.MethodGet, "/", "200"))
	assert.Equal(t, float64(workers*perWorker), got)
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.RecordRequest(http.MethodGet, "/", http.StatusOK)
	c.ObserveLatency("/", 10*time.Millisecond)

	srv := httptest.NewServer(c.Handler(zap.NewNop()))
	defer srv.Close()

	expected := `
# HELP http_requests_total Total HTTP requests
# TYPE http_requests_total counter
http_requests_total{endpoint="/",http_status="200",method="GET"} 1
`
	require.NoError(t, testutil.ScrapeAndCompare(srv.URL, strings.NewReader(expected), "http_requests_total"))

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain; version=0.0.4"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_request_latency_seconds_bucket")
	assert.Contains(t, string(body), "go_goroutines")
}
