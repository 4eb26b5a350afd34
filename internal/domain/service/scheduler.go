package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ComputerEndProgram/locutus/internal/domain"
	"github.com/ComputerEndProgram/locutus/internal/domain/contract"
	"github.com/ComputerEndProgram/locutus/internal/domain/entity"
	"github.com/ComputerEndProgram/locutus/internal/metrics"
)

const (
	defaultPollInterval = time.Minute
	defaultWorkers      = 4
	defaultRatePerSec   = 5
)

// scheduler runs the sweep loop: every poll interval it selects due schedules
// across all guilds, dispatches them, and re-arms each successful one a week
// ahead. Firing rides on the persisted next_run_utc, so a restart at most
// delays a reminder by one interval and never loses or duplicates it.
//
// Start and Stop are not safe for concurrent use; the composition root owns
// the lifecycle and calls them from a single goroutine.
type scheduler struct {
	dm       contract.DataManager
	notifier contract.Notifier
	log      zerolog.Logger
	sink     metrics.Sink

	pollInterval time.Duration
	workers      int
	limiter      *rate.Limiter
	nowFn        func() time.Time

	configChanged chan struct{}
	stopChan      chan struct{}
	doneChan      chan struct{}
	running       bool
}

func newScheduler(dm contract.DataManager, notifier contract.Notifier, log zerolog.Logger, sink metrics.Sink, opts ...Option) *scheduler {
	s := &scheduler{
		dm:            dm,
		notifier:      notifier,
		log:           log.With().Str("component", "scheduler").Logger(),
		sink:          sink,
		pollInterval:  defaultPollInterval,
		workers:       defaultWorkers,
		limiter:       rate.NewLimiter(rate.Limit(defaultRatePerSec), defaultRatePerSec),
		nowFn:         time.Now,
		configChanged: make(chan struct{}, 1),
		stopChan:      make(chan struct{}),
		doneChan:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.log.Info().Dur("poll_interval", s.pollInterval).Msg("scheduler starting")
	go s.mainLoop()
}

func (s *scheduler) Stop() {
	if !s.running {
		return
	}
	s.log.Info().Msg("scheduler stopping")
	close(s.stopChan)
	<-s.doneChan
	s.running = false
}

// NotifyConfigChange wakes the loop for an immediate sweep after a schedule
// was created or its timing edited. Non-blocking; a full channel means a
// sweep is already pending.
func (s *scheduler) NotifyConfigChange() {
	select {
	case s.configChanged <- struct{}{}:
	default:
	}
}

func (s *scheduler) mainLoop() {
	defer close(s.doneChan)

	ctx := context.Background()

	// Sweep immediately on startup so anything that came due while the
	// process was down goes out now rather than one interval later.
	s.sweep(ctx)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.configChanged:
			s.sweep(ctx)
		case <-s.stopChan:
			return
		}
	}
}

func (s *scheduler) sweep(ctx context.Context) {
	start := time.Now()
	asOf := s.nowFn().UTC()
	sweepID := uuid.NewString()
	log := s.log.With().Str("sweep_id", sweepID).Logger()

	s.sink.SweepStarted()

	due, err := s.dm.Schedule().ListDue(asOf)
	if err != nil {
		log.Error().Err(err).Msg("failed to query due schedules")
		s.sink.SweepCompleted(time.Since(start), 0, err)
		return
	}

	if len(due) > 0 {
		log.Info().Int("due", len(due)).Time("as_of", asOf).Msg("dispatching due schedules")
	}

	// Bounded fan-out: at most `workers` in flight, all throttled by the
	// shared rate limiter so a large backlog cannot hammer the Discord API.
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for _, sched := range due {
		if err := s.limiter.Wait(ctx); err != nil {
			log.Error().Err(err).Msg("rate limiter interrupted")
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(sched *entity.Schedule) {
			defer wg.Done()
			defer func() { <-sem }()
			s.fire(ctx, log, sched, asOf)
		}(sched)
	}
	wg.Wait()

	s.sink.SweepCompleted(time.Since(start), len(due), nil)
}

// fire delivers one due schedule and re-arms it. Outcomes:
//   - success: advance next_run_utc one week past the fired nominal instant;
//   - permanent delivery failure or dead references: disable the schedule;
//   - retryable failure: leave it armed, the next sweep picks it up again.
func (s *scheduler) fire(ctx context.Context, log zerolog.Logger, sched *entity.Schedule, asOf time.Time) {
	log = log.With().
		Int64("schedule_id", sched.ID).
		Str("guild_id", sched.GuildID).
		Str("system", sched.SystemName).
		Logger()

	effective := domain.EffectiveFireTime(sched.NextRunUTC, sched.AdvanceMinutes)
	if lateBy := asOf.Sub(effective); lateBy > s.pollInterval {
		log.Warn().Dur("late_by", lateBy).Msg("schedule firing late")
		s.sink.ScheduleStale(lateBy)
	}

	cfg, err := s.dm.GuildConfig().Get(sched.GuildID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load guild config, will retry")
		return
	}
	if cfg == nil {
		s.disable(log, sched, "guild config missing")
		return
	}

	channelID := sched.ChannelID
	if channelID == "" {
		channelID = cfg.DefaultChannelID
	}
	if channelID == "" {
		s.disable(log, sched, "no destination channel configured")
		return
	}

	tpl, err := s.dm.Template().GetByID(sched.GuildID, sched.TemplateID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load template, will retry")
		return
	}
	if tpl == nil {
		s.disable(log, sched, "template missing")
		return
	}

	fields := map[string]string{
		domain.FieldSystemName: sched.SystemName,
	}
	if domain.ValidateRoleID(cfg.RoleID) == nil {
		fields[domain.FieldRoleID] = cfg.RoleID
	}
	message := domain.Render(tpl.Content, fields)

	if err := s.notifier.Send(ctx, channelID, message); err != nil {
		if domain.IsPermanentDelivery(err) {
			s.sink.DeliveryOutcome(metrics.OutcomePermanent)
			s.disable(log, sched, err.Error())
			return
		}
		s.sink.DeliveryOutcome(metrics.OutcomeRetryable)
		log.Warn().Err(err).Msg("delivery failed, will retry next sweep")
		return
	}

	s.sink.DeliveryOutcome(metrics.OutcomeSuccess)

	next, err := s.dm.Schedule().Advance(sched.ID, sched.NextRunUTC)
	switch {
	case err == nil:
		log.Info().Str("channel_id", channelID).Time("next_run_utc", next).Msg("reminder sent")
	case domain.IsConflict(err):
		// Another sweep advanced this firing first; the message went out once
		// from each racer at worst, the arm state is correct either way.
		log.Warn().Err(err).Msg("schedule already advanced, skipping re-arm")
	case domain.IsConsistency(err):
		log.Error().Err(err).Msg("recurrence invariant violated, disabling schedule")
		s.disable(log, sched, err.Error())
	default:
		log.Error().Err(err).Msg("failed to advance schedule")
	}
}

func (s *scheduler) disable(log zerolog.Logger, sched *entity.Schedule, reason string) {
	log.Error().Str("reason", reason).Msg("disabling schedule")
	if err := s.dm.Schedule().SetEnabled(sched.GuildID, sched.ID, false); err != nil {
		log.Error().Err(err).Msg("failed to disable schedule")
	}
}
