package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()

	m.KeyPress("correct")
	m.KeyPress("correct")
	m.KeyPress("incorrect")
	m.LevelCompleted("1")
	m.LoadFailed()
	m.RecordFailed()
	m.RecordFailed()
	m.ObserveFetch(20 * time.Millisecond)
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.Request("/game/current_level", "200")

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"correct presses", testutil.ToFloat64(m.keyPresses.WithLabelValues("correct")), 2},
		{"incorrect presses", testutil.ToFloat64(m.keyPresses.WithLabelValues("incorrect")), 1},
		{"completions", testutil.ToFloat64(m.completions.WithLabelValues("1")), 1},
		{"load failures", testutil.ToFloat64(m.loadFailures), 1},
		{"record failures", testutil.ToFloat64(m.recordFailures), 2},
		{"sessions", testutil.ToFloat64(m.sessions), 1},
		{"requests", testutil.ToFloat64(m.requests.WithLabelValues("/game/current_level", "200")), 1},
	}

	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("%s = %v, expected %v", tc.name, tc.got, tc.expected)
		}
	}

	if n := testutil.CollectAndCount(m.fetchLatency); n != 1 {
		t.Errorf("fetch latency series = %d, expected 1", n)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.KeyPress("correct")
	m.LevelCompleted("1")
	m.LoadFailed()
	m.RecordFailed()
	m.ObserveFetch(time.Second)
	m.SessionOpened()
	m.SessionClosed()
	m.Request("/", "200")
	if m.Registry() != nil {
		t.Error("nil metrics should have no registry")
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("nil handler status = %d, expected 404", rec.Code)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.KeyPress("correct")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	if !strings.Contains(string(body), `turtle_key_presses_total{verdict="correct"} 1`) {
		t.Errorf("exposition missing key press counter:\n%s", body)
	}
}
