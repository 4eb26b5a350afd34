package metrics

import "time"

// Sink defines the interface for recording scheduler metrics.
// All methods are fire-and-forget: implementations MUST NOT block or
// propagate errors.
type Sink interface {
	// Sweep metrics
	SweepStarted()
	SweepCompleted(duration time.Duration, due int, err error)

	// Delivery metrics
	DeliveryOutcome(outcome string)

	// ScheduleStale records a schedule still due more than one poll interval
	// past its effective fire time. This is an operator alert, not a cutoff.
	ScheduleStale(lateBy time.Duration)
}

// Outcome constants for DeliveryOutcome.
const (
	OutcomeSuccess   = "success"
	OutcomeRetryable = "retryable"
	OutcomePermanent = "permanent"
)
