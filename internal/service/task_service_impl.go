package service

import (
	"context"
	"strings"

	"github.com/bagdasarian/team-dashboard/internal/cache"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/bagdasarian/team-dashboard/internal/repository"
	"github.com/bagdasarian/team-dashboard/internal/session"
)

type taskService struct {
	taskRepo    repository.TaskRepository
	cache       *cache.Cache
	coordinator *Coordinator
	scope       scope
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	c *cache.Cache,
	coordinator *Coordinator,
	identity Identity,
	sess *session.Session,
) TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		cache:       c,
		coordinator: coordinator,
		scope:       scope{identity: identity, session: sess},
	}
}

// GetTasks возвращает задачи активной команды; без активной команды - пустой список
func (s *taskService) GetTasks(ctx context.Context) ([]*domain.Task, error) {
	teamID, ok, err := s.scope.readTeam()
	if err != nil || !ok {
		return []*domain.Task{}, err
	}
	return cache.Get(ctx, s.cache, cache.TasksKey(teamID), func(ctx context.Context) ([]*domain.Task, error) {
		return s.taskRepo.ListByTeam(ctx, teamID)
	})
}

// GetTaskBoard возвращает задачи, сгруппированные по статусам, под отдельным ключом
func (s *taskService) GetTaskBoard(ctx context.Context) (*domain.TaskBoard, error) {
	teamID, ok, err := s.scope.readTeam()
	if err != nil || !ok {
		return domain.GroupTasksByStatus(nil), err
	}
	return cache.Get(ctx, s.cache, cache.TaskBoardKey(teamID), func(ctx context.Context) (*domain.TaskBoard, error) {
		tasks, err := s.taskRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return domain.GroupTasksByStatus(tasks), nil
	})
}

func (s *taskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if _, err := s.scope.user(); err != nil {
		return nil, err
	}
	return cache.Get(ctx, s.cache, cache.TaskKey(id), func(ctx context.Context) (*domain.Task, error) {
		return s.taskRepo.GetByID(ctx, id)
	})
}

func (s *taskService) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	var user *domain.User
	var teamID string

	return Run(ctx, s.coordinator, Mutation[*domain.Task]{
		Name: "create task",
		Validate: func() (err error) {
			if teamID, err = s.scope.activeTeam(); err != nil {
				return err
			}
			if user, err = s.scope.user(); err != nil {
				return err
			}
			return input.Validate()
		},
		Call: func(ctx context.Context) (*domain.Task, error) {
			task := &domain.Task{
				Title:       strings.TrimSpace(input.Title),
				Description: input.Description,
				Status:      input.Status,
				Priority:    input.Priority,
				TeamID:      teamID,
				CreatedBy:   user.ID,
				AssigneeID:  input.AssigneeID,
				DueDate:     input.DueDate,
			}
			if err := s.taskRepo.Create(ctx, task); err != nil {
				return nil, err
			}
			return task, nil
		},
		Invalidate: taskKeys,
		Success:    "Task created",
	})
}

func (s *taskService) UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error) {
	return Run(ctx, s.coordinator, Mutation[*domain.Task]{
		Name: "update task",
		Validate: func() error {
			if _, err := s.scope.user(); err != nil {
				return err
			}
			return update.Validate()
		},
		Call: func(ctx context.Context) (*domain.Task, error) {
			return s.taskRepo.Update(ctx, id, update)
		},
		Invalidate: taskKeys,
		Success:    "Task updated",
	})
}

// UpdateTaskStatus меняет статус; инвалидирует и список, и группировку по статусам
func (s *taskService) UpdateTaskStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	return Run(ctx, s.coordinator, Mutation[*domain.Task]{
		Name: "update task status",
		Validate: func() error {
			if _, err := s.scope.user(); err != nil {
				return err
			}
			if !status.Valid() {
				return domain.NewValidationError("status", "unknown task status "+string(status))
			}
			return nil
		},
		Call: func(ctx context.Context) (*domain.Task, error) {
			return s.taskRepo.Update(ctx, id, domain.TaskUpdate{Status: &status})
		},
		Invalidate: taskKeys,
		Success:    "Task status updated",
	})
}

func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	var teamID string

	_, err := Run(ctx, s.coordinator, Mutation[*domain.Task]{
		Name: "delete task",
		Validate: func() (err error) {
			teamID, err = s.scope.activeTeam()
			return err
		},
		Call: func(ctx context.Context) (*domain.Task, error) {
			return &domain.Task{ID: id, TeamID: teamID}, s.taskRepo.Delete(ctx, id)
		},
		Invalidate: taskKeys,
		Success:    "Task deleted",
	})
	return err
}

func taskKeys(task *domain.Task) []cache.Key {
	return []cache.Key{
		cache.TasksKey(task.TeamID),
		cache.TaskBoardKey(task.TeamID),
		cache.TaskKey(task.ID),
		cache.StatsKey(task.TeamID),
	}
}
