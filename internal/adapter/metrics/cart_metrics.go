package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics exports cart operation counters, latencies and the size of
// the committed cart.
type CartMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	lines      prometheus.Gauge
	units      prometheus.Gauge
}

func NewCartMetrics(registerer prometheus.Registerer) *CartMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &CartMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Cart operations by operation and outcome",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cart_operation_duration_seconds",
			Help:    "Duration of cart operations including stock oracle round trips",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"op"}),
		lines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_lines",
			Help: "Distinct products in the committed cart",
		}),
		units: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cart_units",
			Help: "Units across all lines of the committed cart",
		}),
	}

	m.operations = register(registerer, m.operations)
	m.duration = register(registerer, m.duration)
	m.lines = register(registerer, m.lines)
	m.units = register(registerer, m.units)
	return m
}

func (m *CartMetrics) ObserveOperation(op, outcome string, elapsed time.Duration) {
	m.operations.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *CartMetrics) SetCartSize(lines, units int) {
	m.lines.Set(float64(lines))
	m.units.Set(float64(units))
}

// register reuses a collector that is already registered, so building the
// metrics twice against one registry does not panic.
func register[C prometheus.Collector](registerer prometheus.Registerer, c C) C {
	if err := registerer.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
