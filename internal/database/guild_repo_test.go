package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ComputerEndProgram/locutus/internal/domain/entity"
)

func TestGuildConfigRepository_Upsert(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newGuildConfigRepo(db.conn)

	cfg := &entity.GuildConfig{
		GuildID:          "guild-1",
		Timezone:         "Europe/Berlin",
		RoleID:           "123456789012345678",
		DefaultChannelID: "chan-1",
	}

	err := repo.Upsert(cfg)
	require.NoError(t, err, "Failed to upsert guild config")
	assert.False(t, cfg.UpdatedAt.IsZero(), "Expected updated_at to be set")

	// Upsert again with new values replaces the row, never duplicates it
	cfg.Timezone = "America/New_York"
	cfg.DefaultChannelID = "chan-2"
	err = repo.Upsert(cfg)
	require.NoError(t, err, "Failed to re-upsert guild config")

	found, err := repo.Get("guild-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "America/New_York", found.Timezone)
	assert.Equal(t, "chan-2", found.DefaultChannelID)
	assert.Equal(t, "123456789012345678", found.RoleID)
}

func TestGuildConfigRepository_Get(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	repo := newGuildConfigRepo(db.conn)

	// Not found returns nil, nil
	found, err := repo.Get("missing")
	require.NoError(t, err, "Unexpected error when config not found")
	assert.Nil(t, found, "Expected nil when config not found")

	original := &entity.GuildConfig{
		GuildID:  "guild-1",
		Timezone: "UTC",
	}
	require.NoError(t, repo.Upsert(original))

	found, err = repo.Get("guild-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, original.GuildID, found.GuildID)
	assert.Equal(t, original.Timezone, found.Timezone)
}
