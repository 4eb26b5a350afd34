package contract

import (
	"context"

	"github.com/ComputerEndProgram/locutus/internal/domain/entity"
)

// ScheduleInput carries the fields needed to create a schedule.
type ScheduleInput struct {
	TemplateID      int64
	SystemName      string
	Weekday         int
	TimeLocal       string
	Timezone        string // optional; falls back to the guild's timezone
	AdvanceMinutes  int
	ChannelID       string // optional; dispatch falls back to the guild default
	CreatedByUserID string
}

// ScheduleUpdate carries a partial schedule edit; nil fields are unchanged.
// Changing Weekday, TimeLocal or Timezone recomputes the next run from now.
type ScheduleUpdate struct {
	TemplateID     *int64
	SystemName     *string
	Weekday        *int
	TimeLocal      *string
	Timezone       *string
	AdvanceMinutes *int
	ChannelID      *string
	Enabled        *bool
}

// AdminService is the CRUD surface consumed by UI/CLI transports. Validation
// failures, missing references and conflicts surface as the typed errors in
// the domain package; they never reach the scheduler loop.
type AdminService interface {
	UpsertGuildConfig(ctx context.Context, guildID, timezone, roleID, defaultChannelID string) (*entity.GuildConfig, error)
	GetGuildConfig(ctx context.Context, guildID string) (*entity.GuildConfig, error)

	CreateTemplate(ctx context.Context, guildID, name, content string, isDefault bool) (*entity.Template, error)
	UpdateTemplate(ctx context.Context, guildID string, id int64, name, content string) (*entity.Template, error)
	DeleteTemplate(ctx context.Context, guildID string, id int64) error
	ListTemplates(ctx context.Context, guildID string) ([]*entity.Template, error)
	SetDefaultTemplate(ctx context.Context, guildID string, id int64) error

	CreateSchedule(ctx context.Context, guildID string, in ScheduleInput) (*entity.Schedule, error)
	UpdateSchedule(ctx context.Context, guildID string, id int64, in ScheduleUpdate) (*entity.Schedule, error)
	DeleteSchedule(ctx context.Context, guildID string, id int64) error
	ListSchedules(ctx context.Context, guildID string) ([]*entity.Schedule, error)
}
