package app

import (
	"context"

	"github.com/bagdasarian/team-dashboard/internal/cache"
	"github.com/bagdasarian/team-dashboard/internal/domain"
)

func (a *App) TeamsQuery() *Query[[]*domain.Team] {
	return NewQuery(a, a.Teams.GetTeams, WatchKeys(cache.TeamsKey()))
}

func (a *App) TasksQuery() *Query[[]*domain.Task] {
	return NewQuery(a, a.Tasks.GetTasks, WatchKeys(cache.NewKey(cache.ResourceTasks)), FollowActiveTeam())
}

func (a *App) TaskBoardQuery() *Query[*domain.TaskBoard] {
	return NewQuery(a, a.Tasks.GetTaskBoard, WatchKeys(cache.NewKey(cache.ResourceBoard)), FollowActiveTeam())
}

func (a *App) MeetingsQuery() *Query[[]*domain.Meeting] {
	return NewQuery(a, a.Meetings.GetMeetings, WatchKeys(cache.NewKey(cache.ResourceMeetings)), FollowActiveTeam())
}

func (a *App) UpcomingMeetingsQuery() *Query[[]*domain.Meeting] {
	return NewQuery(a, a.Meetings.GetUpcoming, WatchKeys(cache.NewKey(cache.ResourceMeetings)), FollowActiveTeam())
}

func (a *App) PastMeetingsQuery() *Query[[]*domain.Meeting] {
	return NewQuery(a, a.Meetings.GetPast, WatchKeys(cache.NewKey(cache.ResourceMeetings)), FollowActiveTeam())
}

func (a *App) LogsQuery() *Query[[]*domain.Log] {
	return NewQuery(a, a.Logs.GetLogs, WatchKeys(cache.NewKey(cache.ResourceLogs)), FollowActiveTeam())
}

func (a *App) StatsQuery() *Query[*domain.TeamStats] {
	return NewQuery(a, a.Stats.GetTeamStats, WatchKeys(cache.NewKey(cache.ResourceStats)), FollowActiveTeam())
}

func (a *App) CreateTeamMutation() *Mutation[domain.TeamInput, *domain.Team] {
	return NewMutation(a.Teams.CreateTeam)
}

func (a *App) DeleteTeamMutation() *Mutation[string, struct{}] {
	return NewMutation(func(ctx context.Context, id string) (struct{}, error) {
		return struct{}{}, a.Teams.DeleteTeam(ctx, id)
	})
}

func (a *App) CreateTaskMutation() *Mutation[domain.TaskInput, *domain.Task] {
	return NewMutation(a.Tasks.CreateTask)
}

// TaskStatusChange - аргумент мутации смены статуса задачи
type TaskStatusChange struct {
	TaskID string
	Status domain.TaskStatus
}

func (a *App) UpdateTaskStatusMutation() *Mutation[TaskStatusChange, *domain.Task] {
	return NewMutation(func(ctx context.Context, change TaskStatusChange) (*domain.Task, error) {
		return a.Tasks.UpdateTaskStatus(ctx, change.TaskID, change.Status)
	})
}

func (a *App) CreateMeetingMutation() *Mutation[domain.MeetingInput, *domain.Meeting] {
	return NewMutation(a.Meetings.CreateMeeting)
}

func (a *App) CreateLogMutation() *Mutation[domain.LogInput, *domain.Log] {
	return NewMutation(a.Logs.CreateLog)
}
