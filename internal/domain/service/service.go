package service

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ComputerEndProgram/locutus/internal/domain/contract"
	"github.com/ComputerEndProgram/locutus/internal/metrics"
)

type Services struct {
	Admin     *adminService
	Scheduler *scheduler
}

// Option configures the service layer.
type Option func(*scheduler)

// WithPollInterval overrides the sweep interval (default 60s).
func WithPollInterval(d time.Duration) Option {
	return func(s *scheduler) { s.pollInterval = d }
}

// WithWorkers bounds concurrent dispatches within a sweep (default 4).
func WithWorkers(n int) Option {
	return func(s *scheduler) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithDispatchRate caps outgoing notifier calls per second (default 5).
func WithDispatchRate(perSec int) Option {
	return func(s *scheduler) {
		if perSec > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSec), perSec)
		}
	}
}

// WithNow replaces the clock. Used in tests.
func WithNow(nowFn func() time.Time) Option {
	return func(s *scheduler) { s.nowFn = nowFn }
}

func New(dm contract.DataManager, notifier contract.Notifier, log zerolog.Logger, sink metrics.Sink, opts ...Option) *Services {
	admin := newAdmin(dm, log)
	sched := newScheduler(dm, notifier, log, sink, opts...)

	// The admin side wakes the scheduler when timing config changes; set after
	// construction to avoid a circular dependency.
	admin.setScheduler(sched)

	return &Services{
		Admin:     admin,
		Scheduler: sched,
	}
}
