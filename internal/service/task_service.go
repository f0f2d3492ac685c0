package service

import (
	"context"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

type TaskService interface {
	GetTasks(ctx context.Context) ([]*domain.Task, error)
	GetTaskBoard(ctx context.Context) (*domain.TaskBoard, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
