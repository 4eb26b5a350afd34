package contract

import (
	"context"
	"time"

	"github.com/ComputerEndProgram/locutus/internal/domain/entity"
)

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	GuildConfig() GuildConfigRepo
	Template() TemplateRepo
	Schedule() ScheduleRepo
}

// GuildConfigRepo defines the contract for guild configuration storage.
// Lookups return (nil, nil) when no row exists.
type GuildConfigRepo interface {
	Upsert(cfg *entity.GuildConfig) error
	Get(guildID string) (*entity.GuildConfig, error)
}

// TemplateRepo defines the contract for template storage. Every operation is
// scoped by guildID; a template belonging to another guild behaves as absent.
type TemplateRepo interface {
	Create(tpl *entity.Template) error
	Update(tpl *entity.Template) error
	Delete(guildID string, id int64) error
	GetByID(guildID string, id int64) (*entity.Template, error)
	ListByGuild(guildID string) ([]*entity.Template, error)
	// ClearDefault and SetDefault are the two halves of the atomic default
	// swap; callers run them inside WithTransaction.
	ClearDefault(guildID string) error
	SetDefault(guildID string, id int64) error
}

// ScheduleRepo defines the contract for schedule storage. ListDue is the one
// deliberately cross-tenant read; everything else is scoped by guildID.
type ScheduleRepo interface {
	Create(s *entity.Schedule) error
	Update(s *entity.Schedule) error
	Delete(guildID string, id int64) error
	GetByID(guildID string, id int64) (*entity.Schedule, error)
	ListByGuild(guildID string) ([]*entity.Schedule, error)
	CountByTemplate(guildID string, templateID int64) (int, error)
	SetEnabled(guildID string, id int64, enabled bool) error

	// ListDue returns all enabled schedules across all guilds whose
	// advance-adjusted effective fire time is at or before asOf, earliest
	// nominal run first.
	ListDue(asOf time.Time) ([]*entity.Schedule, error)

	// Advance re-arms a schedule one week past firedNominalUTC and returns
	// the new nominal instant. It is a compare-and-swap on next_run_utc: a
	// repeat call with the same fired instant is rejected as stale with a
	// ConflictError, so a firing is never double-advanced.
	Advance(id int64, firedNominalUTC time.Time) (time.Time, error)
}
