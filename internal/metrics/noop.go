package metrics

import "time"

// NoopSink discards all metrics. Used in tests and when metrics are disabled.
type NoopSink struct{}

func NewNoopSink() *NoopSink { return &NoopSink{} }

func (*NoopSink) SweepStarted()                            {}
func (*NoopSink) SweepCompleted(time.Duration, int, error) {}
func (*NoopSink) DeliveryOutcome(string)                   {}
func (*NoopSink) ScheduleStale(time.Duration)              {}
