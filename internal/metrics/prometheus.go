package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusSink implements Sink using the Prometheus client library.
// Registration errors are logged but never propagated.
type PrometheusSink struct {
	sweepsTotal      prometheus.Counter
	sweepErrorsTotal prometheus.Counter
	dueTotal         prometheus.Counter
	sweepDuration    prometheus.Histogram

	deliveriesTotal *prometheus.CounterVec

	staleSchedules prometheus.Counter
	staleLateness  prometheus.Histogram
}

// NewPrometheusSink creates a new Prometheus metrics sink registered on reg.
func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	s := &PrometheusSink{
		sweepsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "locutus_scheduler_sweeps_total",
			Help: "Total number of scheduler sweeps performed.",
		}),
		sweepErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "locutus_scheduler_sweep_errors_total",
			Help: "Total number of sweeps that failed to query due schedules.",
		}),
		dueTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "locutus_scheduler_due_schedules_total",
			Help: "Total number of due schedules selected across all sweeps.",
		}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "locutus_scheduler_sweep_duration_seconds",
			Help:    "Duration of each scheduler sweep in seconds.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		}),
		deliveriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "locutus_deliveries_total",
			Help: "Total number of reminder deliveries by outcome.",
		}, []string{"outcome"}),
		staleSchedules: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "locutus_stale_schedules_total",
			Help: "Times a schedule was observed still due beyond one poll interval.",
		}),
		staleLateness: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "locutus_stale_schedule_lateness_seconds",
			Help:    "How far past its effective fire time a stale schedule was.",
			Buckets: []float64{60, 120, 300, 600, 1800, 3600, 86400},
		}),
	}

	s.register(reg, s.sweepsTotal, "locutus_scheduler_sweeps_total")
	s.register(reg, s.sweepErrorsTotal, "locutus_scheduler_sweep_errors_total")
	s.register(reg, s.dueTotal, "locutus_scheduler_due_schedules_total")
	s.register(reg, s.sweepDuration, "locutus_scheduler_sweep_duration_seconds")
	s.register(reg, s.deliveriesTotal, "locutus_deliveries_total")
	s.register(reg, s.staleSchedules, "locutus_stale_schedules_total")
	s.register(reg, s.staleLateness, "locutus_stale_schedule_lateness_seconds")

	return s
}

func (s *PrometheusSink) register(reg prometheus.Registerer, c prometheus.Collector, name string) {
	if err := reg.Register(c); err != nil {
		log.Printf("WARNING: failed to register metric %s: %v", name, err)
	}
}

func (s *PrometheusSink) SweepStarted() {
	s.sweepsTotal.Inc()
}

func (s *PrometheusSink) SweepCompleted(duration time.Duration, due int, err error) {
	s.sweepDuration.Observe(duration.Seconds())
	s.dueTotal.Add(float64(due))
	if err != nil {
		s.sweepErrorsTotal.Inc()
	}
}

func (s *PrometheusSink) DeliveryOutcome(outcome string) {
	s.deliveriesTotal.WithLabelValues(outcome).Inc()
}

func (s *PrometheusSink) ScheduleStale(lateBy time.Duration) {
	s.staleSchedules.Inc()
	s.staleLateness.Observe(lateBy.Seconds())
}
