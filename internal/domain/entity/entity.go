package entity

import "time"

// GuildConfig is the per-tenant configuration row. GuildID is the sole tenant
// boundary; every other entity carries it and no query spans tenants
// implicitly.
type GuildConfig struct {
	GuildID          string
	Timezone         string
	RoleID           string
	DefaultChannelID string
	UpdatedAt        time.Time
}

// Template is a named message body owned by exactly one guild. Content may
// contain {system_name} / {role_id} placeholders. At most one template per
// guild carries IsDefault.
type Template struct {
	ID        int64
	GuildID   string
	Name      string
	Content   string
	IsDefault bool
}

// Schedule is a weekly recurring reminder owned by exactly one guild and
// bound to one of its templates.
//
// NextRunUTC always holds the NOMINAL firing instant derived from
// weekday/time/timezone; the advance-notice offset is applied only when
// selecting due schedules. Timezone is captured at creation so a later guild
// timezone change does not silently move existing schedules.
type Schedule struct {
	ID              int64
	GuildID         string
	TemplateID      int64
	SystemName      string
	Weekday         int // 0=Monday .. 6=Sunday
	TimeLocal       string
	Timezone        string
	AdvanceMinutes  int
	ChannelID       string
	Enabled         bool
	CreatedByUserID string
	NextRunUTC      time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
