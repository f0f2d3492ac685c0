package repository

import (
	"context"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

type LogRepository interface {
	ListByTeam(ctx context.Context, teamID string) ([]*domain.Log, error)
	GetByID(ctx context.Context, id string) (*domain.Log, error)
	ListByDateRange(ctx context.Context, teamID string, from, to time.Time) ([]*domain.Log, error)
	ListByTags(ctx context.Context, teamID string, tags []string) ([]*domain.Log, error)
	Search(ctx context.Context, teamID, term string) ([]*domain.Log, error)
	Create(ctx context.Context, log *domain.Log) error
	Update(ctx context.Context, id string, update domain.LogUpdate) (*domain.Log, error)
	Delete(ctx context.Context, id string) error
	CountByTeam(ctx context.Context, teamID string) (int, error)
}
