package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ComputerEndProgram/locutus/internal/domain/contract"
	"github.com/ComputerEndProgram/locutus/internal/domain/entity"
)

type guildConfigRepo struct {
	db dbConn
}

func newGuildConfigRepo(db dbConn) contract.GuildConfigRepo {
	return &guildConfigRepo{db: db}
}

// Upsert inserts or replaces the configuration row for cfg.GuildID. Guild
// configs are never hard-deleted; repeated upserts by guild_id are the only
// write path.
func (r *guildConfigRepo) Upsert(cfg *entity.GuildConfig) error {
	query := `
		INSERT INTO guild_configs (guild_id, timezone, role_id, default_channel_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (guild_id) DO UPDATE SET
			timezone = excluded.timezone,
			role_id = excluded.role_id,
			default_channel_id = excluded.default_channel_id,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC()
	_, err := r.db.Exec(query,
		cfg.GuildID,
		cfg.Timezone,
		cfg.RoleID,
		cfg.DefaultChannelID,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert guild config: %w", err)
	}

	cfg.UpdatedAt = now
	return nil
}

func (r *guildConfigRepo) Get(guildID string) (*entity.GuildConfig, error) {
	cfg := &entity.GuildConfig{}
	query := `
		SELECT guild_id, timezone, role_id, default_channel_id, updated_at
		FROM guild_configs
		WHERE guild_id = ?
	`

	err := r.db.QueryRow(query, guildID).Scan(
		&cfg.GuildID,
		&cfg.Timezone,
		&cfg.RoleID,
		&cfg.DefaultChannelID,
		&cfg.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	return cfg, nil
}
