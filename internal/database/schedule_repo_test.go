package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ComputerEndProgram/locutus/internal/domain"
	"github.com/ComputerEndProgram/locutus/internal/domain/entity"
)

func mustInstant(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed.UTC()
}

func createTestTemplate(t *testing.T, db *DB, guildID string) *entity.Template {
	t.Helper()
	tpl := &entity.Template{
		GuildID: guildID,
		Name:    "Default",
		Content: "Defense of {system_name}!",
	}
	require.NoError(t, newTemplateRepo(db.conn).Create(tpl), "Failed to create test template")
	return tpl
}

func testSchedule(guildID string, templateID int64, nextRun time.Time) *entity.Schedule {
	return &entity.Schedule{
		GuildID:         guildID,
		TemplateID:      templateID,
		SystemName:      "Sol",
		Weekday:         domain.Monday,
		TimeLocal:       "09:00",
		Timezone:        "UTC",
		AdvanceMinutes:  0,
		Enabled:         true,
		CreatedByUserID: "user-1",
		NextRunUTC:      nextRun,
	}
}

func TestScheduleRepository_CreateAndGet(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	createTestGuild(t, db, "guild-1")
	tpl := createTestTemplate(t, db, "guild-1")
	repo := newScheduleRepo(db.conn)

	nextRun := mustInstant(t, "2025-09-08T09:00:00Z")
	sched := testSchedule("guild-1", tpl.ID, nextRun)

	err := repo.Create(sched)
	require.NoError(t, err, "Failed to create schedule")
	assert.NotZero(t, sched.ID, "Expected schedule ID to be set after creation")

	found, err := repo.GetByID("guild-1", sched.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Sol", found.SystemName)
	assert.Equal(t, domain.Monday, found.Weekday)
	assert.Equal(t, "09:00", found.TimeLocal)
	assert.True(t, found.Enabled)
	assert.True(t, found.NextRunUTC.Equal(nextRun), "Stored instant must round-trip exactly")

	// Invisible under another tenant
	createTestGuild(t, db, "guild-2")
	foreign, err := repo.GetByID("guild-2", sched.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)
}

func TestScheduleRepository_Update(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	createTestGuild(t, db, "guild-1")
	tpl := createTestTemplate(t, db, "guild-1")
	repo := newScheduleRepo(db.conn)

	sched := testSchedule("guild-1", tpl.ID, mustInstant(t, "2025-09-08T09:00:00Z"))
	require.NoError(t, repo.Create(sched))

	sched.SystemName = "Proxima"
	sched.AdvanceMinutes = 30
	sched.NextRunUTC = mustInstant(t, "2025-09-15T09:00:00Z")
	require.NoError(t, repo.Update(sched))

	found, err := repo.GetByID("guild-1", sched.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Proxima", found.SystemName)
	assert.Equal(t, 30, found.AdvanceMinutes)
	assert.True(t, found.NextRunUTC.Equal(sched.NextRunUTC))

	missing := testSchedule("guild-1", tpl.ID, sched.NextRunUTC)
	missing.ID = 9999
	err = repo.Update(missing)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestScheduleRepository_DeleteAndSetEnabled(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	createTestGuild(t, db, "guild-1")
	tpl := createTestTemplate(t, db, "guild-1")
	repo := newScheduleRepo(db.conn)

	sched := testSchedule("guild-1", tpl.ID, mustInstant(t, "2025-09-08T09:00:00Z"))
	require.NoError(t, repo.Create(sched))

	require.NoError(t, repo.SetEnabled("guild-1", sched.ID, false))
	found, err := repo.GetByID("guild-1", sched.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.Enabled)

	// Tenant-scoped: another guild cannot toggle it
	createTestGuild(t, db, "guild-2")
	err = repo.SetEnabled("guild-2", sched.ID, true)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, repo.Delete("guild-1", sched.ID))
	err = repo.Delete("guild-1", sched.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestScheduleRepository_CountByTemplate(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	createTestGuild(t, db, "guild-1")
	tpl := createTestTemplate(t, db, "guild-1")
	repo := newScheduleRepo(db.conn)

	count, err := repo.CountByTemplate("guild-1", tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, repo.Create(testSchedule("guild-1", tpl.ID, mustInstant(t, "2025-09-08T09:00:00Z"))))
	require.NoError(t, repo.Create(testSchedule("guild-1", tpl.ID, mustInstant(t, "2025-09-09T09:00:00Z"))))

	count, err = repo.CountByTemplate("guild-1", tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestScheduleRepository_ListDue(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	createTestGuild(t, db, "guild-1")
	createTestGuild(t, db, "guild-2")
	tpl1 := createTestTemplate(t, db, "guild-1")
	tpl2 := createTestTemplate(t, db, "guild-2")
	repo := newScheduleRepo(db.conn)

	asOf := mustInstant(t, "2025-09-08T09:00:00Z")

	// Past due, plain
	overdue := testSchedule("guild-1", tpl1.ID, mustInstant(t, "2025-09-08T08:00:00Z"))
	require.NoError(t, repo.Create(overdue))

	// Nominal is ahead but the advance offset pulls it due
	early := testSchedule("guild-2", tpl2.ID, mustInstant(t, "2025-09-08T09:30:00Z"))
	early.AdvanceMinutes = 45
	require.NoError(t, repo.Create(early))

	// Not due yet
	future := testSchedule("guild-1", tpl1.ID, mustInstant(t, "2025-09-08T10:00:00Z"))
	require.NoError(t, repo.Create(future))

	// Due but disabled: never selected
	disabled := testSchedule("guild-1", tpl1.ID, mustInstant(t, "2025-09-08T07:00:00Z"))
	disabled.Enabled = false
	require.NoError(t, repo.Create(disabled))

	due, err := repo.ListDue(asOf)
	require.NoError(t, err)
	require.Len(t, due, 2)

	// Ordered by nominal next run, earliest first; spans both guilds
	assert.Equal(t, overdue.ID, due[0].ID)
	assert.Equal(t, early.ID, due[1].ID)
	assert.Equal(t, "guild-1", due[0].GuildID)
	assert.Equal(t, "guild-2", due[1].GuildID)
}

func TestScheduleRepository_Advance(t *testing.T) {
	db := SetupTestDB(t)
	defer CleanupTestDB(t, db)

	createTestGuild(t, db, "guild-1")
	tpl := createTestTemplate(t, db, "guild-1")
	repo := newScheduleRepo(db.conn)

	fired := mustInstant(t, "2025-09-08T09:00:00Z") // Monday 09:00 UTC
	sched := testSchedule("guild-1", tpl.ID, fired)
	require.NoError(t, repo.Create(sched))

	next, err := repo.Advance(sched.ID, fired)
	require.NoError(t, err, "Failed to advance schedule")
	assert.True(t, next.Equal(mustInstant(t, "2025-09-15T09:00:00Z")), "Expected next run one week later, got %s", next)

	found, err := repo.GetByID("guild-1", sched.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.NextRunUTC.Equal(next))

	// Re-arming from the already-consumed instant is rejected as stale
	_, err = repo.Advance(sched.ID, fired)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err), "Expected conflict on stale advance, got %v", err)

	// Unknown schedule
	_, err = repo.Advance(9999, fired)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
