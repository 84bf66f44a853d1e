package main

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vovakirdan/toxic-turtle/internal/metrics"
)

func TestMetricsHandlerIncludesRuntime(t *testing.T) {
	m := metrics.New()
	m.LevelCompleted("3")

	rec := httptest.NewRecorder()
	metricsHandler(m).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{"go_goroutines", `level="3"`} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
