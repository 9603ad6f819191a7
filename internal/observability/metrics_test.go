package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/valter-silva-au/sentinel/pkg/models"
)

func TestCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	c.ObserveLoad(41.5)
	c.ObserveLoad(47.25)
	c.ObserveLatency("API Gateway", 26)
	c.CountLogEntry(models.SeverityWarning)
	c.CountLogEntry(models.SeveritySuccess)
	c.CountLogEntry(models.SeveritySuccess)

	if got := testutil.ToFloat64(c.Load); got != 47.25 {
		t.Errorf("sentinel_load = %v, want 47.25", got)
	}
	if got := testutil.ToFloat64(c.WalkTicks); got != 2 {
		t.Errorf("sentinel_walk_ticks_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.ServiceLatency.WithLabelValues("API Gateway")); got != 26 {
		t.Errorf("latency = %v, want 26", got)
	}
	if got := testutil.ToFloat64(c.LogEntries.WithLabelValues("success")); got != 2 {
		t.Errorf("success entries = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.LogEntries.WithLabelValues("warning")); got != 1 {
		t.Errorf("warning entries = %v, want 1", got)
	}
}

func TestCollector_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("first NewCollector: %v", err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}

	first.ObserveLoad(10)
	second.ObserveLoad(20)
	if got := testutil.ToFloat64(first.WalkTicks); got != 2 {
		t.Errorf("shared ticks = %v, want 2", got)
	}
}

func TestCollector_NilIsSafe(t *testing.T) {
	var c *Collector
	c.ObserveLoad(1)
	c.ObserveLatency("x", 1)
	c.CountLogEntry(models.SeverityWarning)
}

func TestCollector_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	c.ObserveLoad(55)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	if !strings.Contains(string(body), "sentinel_load 55") {
		t.Errorf("exposition missing sentinel_load:\n%s", body)
	}
}
