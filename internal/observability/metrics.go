package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valter-silva-au/sentinel/pkg/models"
)

// Collector exports engine activity as Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	Load           prometheus.Gauge
	WalkTicks      prometheus.Counter
	ServiceLatency *prometheus.GaugeVec
	LogEntries     *prometheus.CounterVec
}

// NewCollector registers sentinel metrics against reg, defaulting to the
// global Prometheus registry when nil. Registering twice against the same
// registry reuses the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	load, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sentinel_load",
		Help: "Most recent random walk sample, in percent.",
	}), "sentinel_load")
	if err != nil {
		return nil, err
	}

	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sentinel_walk_ticks_total",
		Help: "Total number of random walk steps taken.",
	}), "sentinel_walk_ticks_total")
	if err != nil {
		return nil, err
	}

	latency, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sentinel_service_latency_ms",
		Help: "Simulated latency per monitored service, in milliseconds.",
	}, []string{"service"}), "sentinel_service_latency_ms")
	if err != nil {
		return nil, err
	}

	entries, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sentinel_log_entries_total",
		Help: "Live stream entries recorded, labeled by severity.",
	}, []string{"severity"}), "sentinel_log_entries_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:       gatherer,
		Load:           load,
		WalkTicks:      ticks,
		ServiceLatency: latency,
		LogEntries:     entries,
	}, nil
}

// ObserveLoad records a new walk sample.
func (c *Collector) ObserveLoad(v float64) {
	if c == nil {
		return
	}
	c.Load.Set(v)
	c.WalkTicks.Inc()
}

// ObserveLatency records the latency of one service.
func (c *Collector) ObserveLatency(service string, ms int) {
	if c == nil {
		return
	}
	c.ServiceLatency.WithLabelValues(service).Set(float64(ms))
}

// CountLogEntry counts one live stream entry.
func (c *Collector) CountLogEntry(severity models.Severity) {
	if c == nil {
		return
	}
	c.LogEntries.WithLabelValues(string(severity)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil || c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
