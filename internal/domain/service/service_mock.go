package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ComputerEndProgram/locutus/mocks"
)

func testLogger() zerolog.Logger { return zerolog.Nop() }

type allMocks struct {
	mockDataManager  *mocks.MockDataManager
	mockGuildRepo    *mocks.MockGuildConfigRepo
	mockTemplateRepo *mocks.MockTemplateRepo
	mockScheduleRepo *mocks.MockScheduleRepo
	mockNotifier     *mocks.MockNotifier
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	guildRepo := mocks.NewMockGuildConfigRepo(ctrl)
	dm.EXPECT().GuildConfig().Return(guildRepo).AnyTimes()

	templateRepo := mocks.NewMockTemplateRepo(ctrl)
	dm.EXPECT().Template().Return(templateRepo).AnyTimes()

	scheduleRepo := mocks.NewMockScheduleRepo(ctrl)
	dm.EXPECT().Schedule().Return(scheduleRepo).AnyTimes()

	notifier := mocks.NewMockNotifier(ctrl)

	m = allMocks{
		mockDataManager:  dm,
		mockGuildRepo:    guildRepo,
		mockTemplateRepo: templateRepo,
		mockScheduleRepo: scheduleRepo,
		mockNotifier:     notifier,
	}

	// validate service creation
	require.NotNil(t, newAdmin(dm, testLogger()))

	return
}
