package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects booking outcomes and lock contention. A nil *Metrics
// is valid and records nothing, so tests can skip registration.
type Metrics struct {
	bookings *prometheus.CounterVec
	lockWait prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campsited_bookings_total",
			Help: "Booking operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "campsited_lock_wait_seconds",
			Help:    "Time spent waiting for the booking lock.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
	reg.MustRegister(m.bookings, m.lockWait)
	return m
}

func (m *Metrics) Outcome(op, outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) LockWait(d time.Duration) {
	if m == nil {
		return
	}
	m.lockWait.Observe(d.Seconds())
}
