package repository

import (
	"context"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

type TaskRepository interface {
	ListByTeam(ctx context.Context, teamID string) ([]*domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, teamID string) (map[domain.TaskStatus]int, error)
}
