package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the agent's Prometheus metrics.
type Collector struct {
	ticks           *prometheus.CounterVec
	tickDuration    prometheus.Histogram
	jobsDeleted     prometheus.Counter
	bookingsDeleted prometheus.Counter
	reserved        *prometheus.GaugeVec
	featuresTracked prometheus.Gauge
}

// NewCollector creates the collector and registers every metric on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		ticks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "license_manager_ticks_total",
			Help: "Total number of reconciliation ticks by result",
		}, []string{"result"}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "license_manager_tick_duration_seconds",
			Help:    "Reconciliation tick duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		jobsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "license_manager_jobs_deleted_total",
			Help: "Total number of stale jobs removed from the backend",
		}),
		bookingsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "license_manager_bookings_deleted_total",
			Help: "Total number of matched bookings removed from the backend",
		}),
		reserved: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "license_manager_reserved_licenses",
			Help: "Licenses currently held by the scheduler reservation",
		}, []string{"feature"}),
		featuresTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "license_manager_features_tracked",
			Help: "Number of features covered by the last usage report",
		}),
	}

	reg.MustRegister(c.ticks, c.tickDuration, c.jobsDeleted, c.bookingsDeleted, c.reserved, c.featuresTracked)
	return c
}

// RecordTick records the outcome of one reconciliation pass. A nil
// collector is a no-op so callers can run without metrics wired.
func (c *Collector) RecordTick(seconds float64, failed bool) {
	if c == nil {
		return
	}
	result := "ok"
	if failed {
		result = "error"
	}
	c.ticks.WithLabelValues(result).Inc()
	c.tickDuration.Observe(seconds)
}

func (c *Collector) RecordCleanup(jobs, bookings int) {
	if c == nil {
		return
	}
	c.jobsDeleted.Add(float64(jobs))
	c.bookingsDeleted.Add(float64(bookings))
}

func (c *Collector) RecordFeatures(count int) {
	if c == nil {
		return
	}
	c.featuresTracked.Set(float64(count))
}

// RecordReservation resets the per-feature gauge to the amounts in the
// current reservation.
func (c *Collector) RecordReservation(amounts map[string]int) {
	if c == nil {
		return
	}
	c.reserved.Reset()
	for feature, amount := range amounts {
		c.reserved.WithLabelValues(feature).Set(float64(amount))
	}
}
