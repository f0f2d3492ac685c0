package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type statsRepos struct {
	tasks       *MockTaskRepository
	meetings    *MockMeetingRepository
	logs        *MockLogRepository
	memberships *MockMembershipRepository
}

func setupStatsService(env *serviceEnv) (StatsService, statsRepos) {
	repos := statsRepos{
		tasks:       new(MockTaskRepository),
		meetings:    new(MockMeetingRepository),
		logs:        new(MockLogRepository),
		memberships: new(MockMembershipRepository),
	}
	service := NewStatsService(repos.tasks, repos.meetings, repos.logs, repos.memberships, env.cache, env.identity, env.session)
	return service, repos
}

func TestStatsService_GetTeamStats(t *testing.T) {
	t.Run("счетчики активной команды", func(t *testing.T) {
		env := newServiceEnv(t)
		service, repos := setupStatsService(env)

		repos.tasks.On("CountByStatus", mock.Anything, "t1").Return(map[domain.TaskStatus]int{
			domain.TaskTodo:  2,
			domain.TaskDoing: 1,
			domain.TaskDone:  4,
		}, nil).Once()
		repos.meetings.On("CountByTeam", mock.Anything, "t1").Return(6, nil).Once()
		repos.meetings.On("CountUpcoming", mock.Anything, "t1", mock.AnythingOfType("time.Time")).Return(2, nil).Once()
		repos.logs.On("CountByTeam", mock.Anything, "t1").Return(11, nil).Once()
		repos.memberships.On("CountByTeam", mock.Anything, "t1").Return(3, nil).Once()

		stats, err := service.GetTeamStats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "t1", stats.TeamID)
		assert.Equal(t, 4, stats.Tasks[domain.TaskDone])
		assert.Equal(t, 6, stats.Meetings)
		assert.Equal(t, 2, stats.UpcomingMeetings)
		assert.Equal(t, 11, stats.Logs)
		assert.Equal(t, 3, stats.Members)

		_, err = service.GetTeamStats(context.Background())
		require.NoError(t, err)
		repos.tasks.AssertNumberOfCalls(t, "CountByStatus", 1)
	})

	t.Run("ошибка одного счетчика", func(t *testing.T) {
		env := newServiceEnv(t)
		service, repos := setupStatsService(env)

		repos.tasks.On("CountByStatus", mock.Anything, "t1").Return(nil, errors.New("database error")).Once()

		stats, err := service.GetTeamStats(context.Background())

		assert.Nil(t, stats)
		assert.EqualError(t, err, "database error")
		repos.meetings.AssertNotCalled(t, "CountByTeam", mock.Anything, mock.Anything)
	})

	t.Run("без активной команды", func(t *testing.T) {
		env := newServiceEnv(t)
		env.session.SyncTeams(nil)
		service, _ := setupStatsService(env)

		stats, err := service.GetTeamStats(context.Background())

		require.NoError(t, err)
		assert.Nil(t, stats)
	})
}
