package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ComputerEndProgram/locutus/assets"
	"github.com/ComputerEndProgram/locutus/internal/domain"
	"github.com/ComputerEndProgram/locutus/internal/domain/contract"
	"github.com/ComputerEndProgram/locutus/internal/domain/entity"
)

type adminService struct {
	dm        contract.DataManager
	log       zerolog.Logger
	scheduler *scheduler
	nowFn     func() time.Time
}

func newAdmin(dm contract.DataManager, log zerolog.Logger) *adminService {
	return &adminService{
		dm:    dm,
		log:   log.With().Str("component", "admin").Logger(),
		nowFn: time.Now,
	}
}

var _ contract.AdminService = (*adminService)(nil)

func (s *adminService) setScheduler(sched *scheduler) {
	s.scheduler = sched
}

func (s *adminService) notifyConfigChange() {
	if s.scheduler != nil {
		s.scheduler.NotifyConfigChange()
	}
}

// UpsertGuildConfig saves the guild's timezone, defense role and fallback
// channel. The first save also seeds the built-in preset templates so a fresh
// guild can create schedules immediately.
func (s *adminService) UpsertGuildConfig(ctx context.Context, guildID, timezone, roleID, defaultChannelID string) (*entity.GuildConfig, error) {
	if guildID == "" {
		return nil, domain.NewValidationError("guild_id", "must not be empty")
	}
	if _, err := domain.LoadTimezone(timezone); err != nil {
		return nil, err
	}
	if roleID != "" {
		if err := domain.ValidateRoleID(roleID); err != nil {
			return nil, err
		}
	}

	cfg := &entity.GuildConfig{
		GuildID:          guildID,
		Timezone:         timezone,
		RoleID:           roleID,
		DefaultChannelID: defaultChannelID,
	}

	if err := s.dm.GuildConfig().Upsert(cfg); err != nil {
		return nil, fmt.Errorf("failed to save guild config: %w", err)
	}

	if err := s.seedPresetTemplates(ctx, guildID); err != nil {
		// The config itself saved; a seeding failure should not fail the call.
		s.log.Error().Err(err).Str("guild_id", guildID).Msg("failed to seed preset templates")
	}

	return cfg, nil
}

func (s *adminService) GetGuildConfig(ctx context.Context, guildID string) (*entity.GuildConfig, error) {
	cfg, err := s.dm.GuildConfig().Get(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	if cfg == nil {
		return nil, domain.NewNotFoundError("guild config", guildID)
	}
	return cfg, nil
}

// seedPresetTemplates creates the built-in templates for a guild that has
// none yet. The first preset becomes the default.
func (s *adminService) seedPresetTemplates(ctx context.Context, guildID string) error {
	existing, err := s.dm.Template().ListByGuild(guildID)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	return s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		for i, preset := range assets.Presets() {
			tpl := &entity.Template{
				GuildID:   guildID,
				Name:      preset.Name,
				Content:   preset.Content,
				IsDefault: i == 0,
			}
			if err := tx.Template().Create(tpl); err != nil {
				return fmt.Errorf("failed to create preset template %q: %w", preset.Name, err)
			}
		}
		s.log.Info().Str("guild_id", guildID).Int("count", len(assets.Presets())).Msg("seeded preset templates")
		return nil
	})
}

func (s *adminService) CreateTemplate(ctx context.Context, guildID, name, content string, isDefault bool) (*entity.Template, error) {
	if err := validateTemplateFields(name, content); err != nil {
		return nil, err
	}

	tpl := &entity.Template{
		GuildID:   guildID,
		Name:      name,
		Content:   content,
		IsDefault: isDefault,
	}

	if !isDefault {
		if err := s.dm.Template().Create(tpl); err != nil {
			return nil, err
		}
		return tpl, nil
	}

	// Becoming the default must demote the previous default in the same
	// transaction; at most one default per guild.
	err := s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		if err := tx.Template().ClearDefault(guildID); err != nil {
			return fmt.Errorf("failed to clear previous default: %w", err)
		}
		return tx.Template().Create(tpl)
	})
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *adminService) UpdateTemplate(ctx context.Context, guildID string, id int64, name, content string) (*entity.Template, error) {
	if err := validateTemplateFields(name, content); err != nil {
		return nil, err
	}

	tpl, err := s.dm.Template().GetByID(guildID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	if tpl == nil {
		return nil, domain.NewNotFoundError("template", id)
	}

	tpl.Name = name
	tpl.Content = content
	if err := s.dm.Template().Update(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// DeleteTemplate refuses to remove a template any schedule still references;
// a schedule must never point at a missing template.
func (s *adminService) DeleteTemplate(ctx context.Context, guildID string, id int64) error {
	count, err := s.dm.Schedule().CountByTemplate(guildID, id)
	if err != nil {
		return fmt.Errorf("failed to count referencing schedules: %w", err)
	}
	if count > 0 {
		return domain.NewConflictError("template %d is referenced by %d schedule(s); delete or repoint them first", id, count)
	}

	return s.dm.Template().Delete(guildID, id)
}

func (s *adminService) ListTemplates(ctx context.Context, guildID string) ([]*entity.Template, error) {
	return s.dm.Template().ListByGuild(guildID)
}

func (s *adminService) SetDefaultTemplate(ctx context.Context, guildID string, id int64) error {
	return s.dm.WithTransaction(ctx, func(tx contract.DataManager) error {
		tpl, err := tx.Template().GetByID(guildID, id)
		if err != nil {
			return fmt.Errorf("failed to get template: %w", err)
		}
		if tpl == nil {
			return domain.NewNotFoundError("template", id)
		}

		if err := tx.Template().ClearDefault(guildID); err != nil {
			return fmt.Errorf("failed to clear previous default: %w", err)
		}
		return tx.Template().SetDefault(guildID, id)
	})
}

// CreateSchedule validates the input, arms next_run_utc with the first
// occurrence, and wakes the scheduler. The guild must be configured first:
// its timezone is the fallback when the schedule does not carry its own.
func (s *adminService) CreateSchedule(ctx context.Context, guildID string, in contract.ScheduleInput) (*entity.Schedule, error) {
	cfg, err := s.dm.GuildConfig().Get(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	if cfg == nil {
		return nil, domain.NewNotFoundError("guild config", guildID)
	}

	if strings.TrimSpace(in.SystemName) == "" {
		return nil, domain.NewValidationError("system_name", "must not be empty")
	}
	if in.AdvanceMinutes < 0 || in.AdvanceMinutes > domain.MaxAdvanceMinutes {
		return nil, domain.NewValidationError("advance_minutes", "must be between 0 and %d, got %d", domain.MaxAdvanceMinutes, in.AdvanceMinutes)
	}

	tz := in.Timezone
	if tz == "" {
		tz = cfg.Timezone
	}

	tpl, err := s.dm.Template().GetByID(guildID, in.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	if tpl == nil {
		return nil, domain.NewNotFoundError("template", in.TemplateID)
	}

	// ComputeFirstRun also validates weekday, time_local and timezone.
	next, err := domain.ComputeFirstRun(in.Weekday, in.TimeLocal, tz, s.nowFn().UTC())
	if err != nil {
		return nil, err
	}

	sched := &entity.Schedule{
		GuildID:         guildID,
		TemplateID:      in.TemplateID,
		SystemName:      in.SystemName,
		Weekday:         in.Weekday,
		TimeLocal:       in.TimeLocal,
		Timezone:        tz,
		AdvanceMinutes:  in.AdvanceMinutes,
		ChannelID:       in.ChannelID,
		Enabled:         true,
		CreatedByUserID: in.CreatedByUserID,
		NextRunUTC:      next,
	}

	if err := s.dm.Schedule().Create(sched); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	s.log.Info().
		Str("guild_id", guildID).
		Int64("schedule_id", sched.ID).
		Str("system", sched.SystemName).
		Time("next_run_utc", next).
		Msg("schedule created")

	s.notifyConfigChange()
	return sched, nil
}

// UpdateSchedule applies a partial edit. Editing weekday, time_local or
// timezone recomputes next_run_utc from now; other fields leave the armed
// instant untouched.
func (s *adminService) UpdateSchedule(ctx context.Context, guildID string, id int64, in contract.ScheduleUpdate) (*entity.Schedule, error) {
	sched, err := s.dm.Schedule().GetByID(guildID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	if sched == nil {
		return nil, domain.NewNotFoundError("schedule", id)
	}

	if in.TemplateID != nil {
		tpl, err := s.dm.Template().GetByID(guildID, *in.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("failed to get template: %w", err)
		}
		if tpl == nil {
			return nil, domain.NewNotFoundError("template", *in.TemplateID)
		}
		sched.TemplateID = *in.TemplateID
	}
	if in.SystemName != nil {
		if strings.TrimSpace(*in.SystemName) == "" {
			return nil, domain.NewValidationError("system_name", "must not be empty")
		}
		sched.SystemName = *in.SystemName
	}
	if in.AdvanceMinutes != nil {
		if *in.AdvanceMinutes < 0 || *in.AdvanceMinutes > domain.MaxAdvanceMinutes {
			return nil, domain.NewValidationError("advance_minutes", "must be between 0 and %d, got %d", domain.MaxAdvanceMinutes, *in.AdvanceMinutes)
		}
		sched.AdvanceMinutes = *in.AdvanceMinutes
	}
	if in.ChannelID != nil {
		sched.ChannelID = *in.ChannelID
	}
	if in.Enabled != nil {
		sched.Enabled = *in.Enabled
	}

	timingChanged := in.Weekday != nil || in.TimeLocal != nil || in.Timezone != nil
	if in.Weekday != nil {
		sched.Weekday = *in.Weekday
	}
	if in.TimeLocal != nil {
		sched.TimeLocal = *in.TimeLocal
	}
	if in.Timezone != nil {
		sched.Timezone = *in.Timezone
	}

	if timingChanged {
		next, err := domain.ComputeFirstRun(sched.Weekday, sched.TimeLocal, sched.Timezone, s.nowFn().UTC())
		if err != nil {
			return nil, err
		}
		sched.NextRunUTC = next
	}

	if err := s.dm.Schedule().Update(sched); err != nil {
		return nil, err
	}

	s.notifyConfigChange()
	return sched, nil
}

func (s *adminService) DeleteSchedule(ctx context.Context, guildID string, id int64) error {
	if err := s.dm.Schedule().Delete(guildID, id); err != nil {
		return err
	}
	s.notifyConfigChange()
	return nil
}

func (s *adminService) ListSchedules(ctx context.Context, guildID string) ([]*entity.Schedule, error) {
	return s.dm.Schedule().ListByGuild(guildID)
}

func validateTemplateFields(name, content string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if strings.TrimSpace(content) == "" {
		return domain.NewValidationError("content", "must not be empty")
	}
	return nil
}
