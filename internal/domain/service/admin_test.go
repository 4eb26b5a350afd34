package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ComputerEndProgram/locutus/internal/domain"
	"github.com/ComputerEndProgram/locutus/internal/domain/contract"
	"github.com/ComputerEndProgram/locutus/internal/domain/entity"
)

// Wednesday 2025-09-03 12:00 UTC, used as the fixed clock in admin tests.
var testNow = time.Date(2025, 9, 3, 12, 0, 0, 0, time.UTC)

func newTestAdmin(m allMocks) *adminService {
	svc := newAdmin(m.mockDataManager, testLogger())
	svc.nowFn = func() time.Time { return testNow }
	return svc
}

func Test_adminService_UpsertGuildConfig(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		guildID   string
		timezone  string
		roleID    string
		buildMock func(m allMocks)
		wantErr   func(t *testing.T, err error)
	}{
		{
			name:     "Should save config and skip seeding when templates exist",
			guildID:  "guild-1",
			timezone: "Europe/Berlin",
			roleID:   "123456789012345678",
			buildMock: func(m allMocks) {
				m.mockGuildRepo.EXPECT().
					Upsert(gomock.Any()).
					DoAndReturn(func(cfg *entity.GuildConfig) error {
						require.Equal(t, "guild-1", cfg.GuildID)
						require.Equal(t, "Europe/Berlin", cfg.Timezone)
						return nil
					}).Times(1)

				m.mockTemplateRepo.EXPECT().
					ListByGuild("guild-1").
					Return([]*entity.Template{{ID: 1}}, nil).Times(1)
			},
		},
		{
			name:     "Should seed preset templates on first save",
			guildID:  "guild-1",
			timezone: "Europe/Berlin",
			buildMock: func(m allMocks) {
				m.mockGuildRepo.EXPECT().Upsert(gomock.Any()).Return(nil).Times(1)
				m.mockTemplateRepo.EXPECT().ListByGuild("guild-1").Return(nil, nil).Times(1)

				m.mockDataManager.EXPECT().
					WithTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, fn func(contract.DataManager) error) error {
						return fn(m.mockDataManager)
					}).Times(1)

				seeded := 0
				m.mockTemplateRepo.EXPECT().
					Create(gomock.Any()).
					DoAndReturn(func(tpl *entity.Template) error {
						require.Equal(t, "guild-1", tpl.GuildID)
						require.NotEmpty(t, tpl.Content)
						// only the first preset is the default
						require.Equal(t, seeded == 0, tpl.IsDefault)
						seeded++
						return nil
					}).Times(2)
			},
		},
		{
			name:      "Should reject unknown timezone",
			guildID:   "guild-1",
			timezone:  "Mars/Olympus",
			buildMock: func(m allMocks) {},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, domain.IsValidation(err))
			},
		},
		{
			name:      "Should reject non-numeric role id",
			guildID:   "guild-1",
			timezone:  "UTC",
			roleID:    "not-a-snowflake",
			buildMock: func(m allMocks) {},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, domain.IsValidation(err))
			},
		},
		{
			name:      "Should reject empty guild id",
			timezone:  "UTC",
			buildMock: func(m allMocks) {},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, domain.IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()
			tt.buildMock(m)

			svc := newTestAdmin(m)
			cfg, err := svc.UpsertGuildConfig(ctx, tt.guildID, tt.timezone, tt.roleID, "")
			if tt.wantErr != nil {
				require.Error(t, err)
				tt.wantErr(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			assert.Equal(t, tt.timezone, cfg.Timezone)
		})
	}
}

func Test_adminService_CreateSchedule(t *testing.T) {
	ctx := context.Background()

	validInput := contract.ScheduleInput{
		TemplateID:      7,
		SystemName:      "Sol",
		Weekday:         domain.Monday,
		TimeLocal:       "09:00",
		AdvanceMinutes:  10,
		CreatedByUserID: "user-1",
	}

	berlinGuild := &entity.GuildConfig{GuildID: "guild-1", Timezone: "Europe/Berlin"}

	tests := []struct {
		name      string
		input     contract.ScheduleInput
		buildMock func(m allMocks)
		check     func(t *testing.T, sched *entity.Schedule, err error)
	}{
		{
			name:  "Should create schedule armed with first occurrence",
			input: validInput,
			buildMock: func(m allMocks) {
				m.mockGuildRepo.EXPECT().Get("guild-1").Return(berlinGuild, nil).Times(1)
				m.mockTemplateRepo.EXPECT().GetByID("guild-1", int64(7)).Return(&entity.Template{ID: 7}, nil).Times(1)
				m.mockScheduleRepo.EXPECT().
					Create(gomock.Any()).
					DoAndReturn(func(sched *entity.Schedule) error {
						sched.ID = 1
						return nil
					}).Times(1)
			},
			check: func(t *testing.T, sched *entity.Schedule, err error) {
				require.NoError(t, err)
				require.NotNil(t, sched)
				assert.True(t, sched.Enabled)
				// guild timezone fills the blank schedule timezone
				assert.Equal(t, "Europe/Berlin", sched.Timezone)
				// next Monday 09:00 Berlin (CEST) after Wednesday noon
				want := time.Date(2025, 9, 8, 7, 0, 0, 0, time.UTC)
				assert.True(t, sched.NextRunUTC.Equal(want), "got %s", sched.NextRunUTC)
			},
		},
		{
			name:  "Should fail when guild is not configured",
			input: validInput,
			buildMock: func(m allMocks) {
				m.mockGuildRepo.EXPECT().Get("guild-1").Return(nil, nil).Times(1)
			},
			check: func(t *testing.T, sched *entity.Schedule, err error) {
				require.Error(t, err)
				assert.True(t, domain.IsNotFound(err))
			},
		},
		{
			name:  "Should fail when template does not exist",
			input: validInput,
			buildMock: func(m allMocks) {
				m.mockGuildRepo.EXPECT().Get("guild-1").Return(berlinGuild, nil).Times(1)
				m.mockTemplateRepo.EXPECT().GetByID("guild-1", int64(7)).Return(nil, nil).Times(1)
			},
			check: func(t *testing.T, sched *entity.Schedule, err error) {
				require.Error(t, err)
				assert.True(t, domain.IsNotFound(err))
			},
		},
		{
			name: "Should reject advance minutes above the cap",
			input: func() contract.ScheduleInput {
				in := validInput
				in.AdvanceMinutes = domain.MaxAdvanceMinutes + 1
				return in
			}(),
			buildMock: func(m allMocks) {
				m.mockGuildRepo.EXPECT().Get("guild-1").Return(berlinGuild, nil).Times(1)
			},
			check: func(t *testing.T, sched *entity.Schedule, err error) {
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
			},
		},
		{
			name: "Should reject empty system name",
			input: func() contract.ScheduleInput {
				in := validInput
				in.SystemName = "  "
				return in
			}(),
			buildMock: func(m allMocks) {
				m.mockGuildRepo.EXPECT().Get("guild-1").Return(berlinGuild, nil).Times(1)
			},
			check: func(t *testing.T, sched *entity.Schedule, err error) {
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
			},
		},
		{
			name: "Should reject invalid weekday",
			input: func() contract.ScheduleInput {
				in := validInput
				in.Weekday = 9
				return in
			}(),
			buildMock: func(m allMocks) {
				m.mockGuildRepo.EXPECT().Get("guild-1").Return(berlinGuild, nil).Times(1)
				m.mockTemplateRepo.EXPECT().GetByID("guild-1", int64(7)).Return(&entity.Template{ID: 7}, nil).Times(1)
			},
			check: func(t *testing.T, sched *entity.Schedule, err error) {
				require.Error(t, err)
				assert.True(t, domain.IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newServiceTestMock(t)
			defer ctrl.Finish()
			tt.buildMock(m)

			svc := newTestAdmin(m)
			sched, err := svc.CreateSchedule(ctx, "guild-1", tt.input)
			tt.check(t, sched, err)
		})
	}
}

func Test_adminService_UpdateSchedule(t *testing.T) {
	ctx := context.Background()

	existing := func() *entity.Schedule {
		return &entity.Schedule{
			ID:             3,
			GuildID:        "guild-1",
			TemplateID:     7,
			SystemName:     "Sol",
			Weekday:        domain.Monday,
			TimeLocal:      "09:00",
			Timezone:       "Europe/Berlin",
			AdvanceMinutes: 10,
			Enabled:        true,
			NextRunUTC:     time.Date(2025, 9, 8, 7, 0, 0, 0, time.UTC),
		}
	}

	t.Run("Should keep armed instant on non-timing edit", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		before := existing()
		m.mockScheduleRepo.EXPECT().GetByID("guild-1", int64(3)).Return(before, nil).Times(1)
		m.mockScheduleRepo.EXPECT().Update(gomock.Any()).Return(nil).Times(1)

		svc := newTestAdmin(m)
		name := "Proxima"
		sched, err := svc.UpdateSchedule(ctx, "guild-1", 3, contract.ScheduleUpdate{SystemName: &name})
		require.NoError(t, err)
		assert.Equal(t, "Proxima", sched.SystemName)
		assert.True(t, sched.NextRunUTC.Equal(existing().NextRunUTC), "non-timing edit must not re-arm")
	})

	t.Run("Should recompute armed instant on timing edit", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockScheduleRepo.EXPECT().GetByID("guild-1", int64(3)).Return(existing(), nil).Times(1)
		m.mockScheduleRepo.EXPECT().Update(gomock.Any()).Return(nil).Times(1)

		svc := newTestAdmin(m)
		newTime := "18:00"
		sched, err := svc.UpdateSchedule(ctx, "guild-1", 3, contract.ScheduleUpdate{TimeLocal: &newTime})
		require.NoError(t, err)

		// Wednesday noon clock: next Monday 18:00 Berlin (CEST) is 16:00 UTC
		want := time.Date(2025, 9, 8, 16, 0, 0, 0, time.UTC)
		assert.True(t, sched.NextRunUTC.Equal(want), "got %s", sched.NextRunUTC)
	})

	t.Run("Should fail on unknown schedule", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockScheduleRepo.EXPECT().GetByID("guild-1", int64(3)).Return(nil, nil).Times(1)

		svc := newTestAdmin(m)
		_, err := svc.UpdateSchedule(ctx, "guild-1", 3, contract.ScheduleUpdate{})
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})
}

func Test_adminService_DeleteTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should delete unreferenced template", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockScheduleRepo.EXPECT().CountByTemplate("guild-1", int64(7)).Return(0, nil).Times(1)
		m.mockTemplateRepo.EXPECT().Delete("guild-1", int64(7)).Return(nil).Times(1)

		svc := newTestAdmin(m)
		require.NoError(t, svc.DeleteTemplate(ctx, "guild-1", 7))
	})

	t.Run("Should refuse to delete referenced template", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockScheduleRepo.EXPECT().CountByTemplate("guild-1", int64(7)).Return(2, nil).Times(1)

		svc := newTestAdmin(m)
		err := svc.DeleteTemplate(ctx, "guild-1", 7)
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))
	})
}

func Test_adminService_SetDefaultTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should swap default inside a transaction", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockDataManager.EXPECT().
			WithTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(contract.DataManager) error) error {
				return fn(m.mockDataManager)
			}).Times(1)

		m.mockTemplateRepo.EXPECT().GetByID("guild-1", int64(7)).Return(&entity.Template{ID: 7}, nil).Times(1)
		m.mockTemplateRepo.EXPECT().ClearDefault("guild-1").Return(nil).Times(1)
		m.mockTemplateRepo.EXPECT().SetDefault("guild-1", int64(7)).Return(nil).Times(1)

		svc := newTestAdmin(m)
		require.NoError(t, svc.SetDefaultTemplate(ctx, "guild-1", 7))
	})

	t.Run("Should fail on unknown template", func(t *testing.T) {
		m, ctrl := newServiceTestMock(t)
		defer ctrl.Finish()

		m.mockDataManager.EXPECT().
			WithTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(contract.DataManager) error) error {
				return fn(m.mockDataManager)
			}).Times(1)

		m.mockTemplateRepo.EXPECT().GetByID("guild-1", int64(7)).Return(nil, nil).Times(1)

		svc := newTestAdmin(m)
		err := svc.SetDefaultTemplate(ctx, "guild-1", 7)
		require.Error(t, err)
		assert.True(t, domain.IsNotFound(err))
	})
}
