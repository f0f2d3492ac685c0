package service

import (
	"context"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

type LogService interface {
	GetLogs(ctx context.Context) ([]*domain.Log, error)
	GetLog(ctx context.Context, id string) (*domain.Log, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Log, error)
	GetByTags(ctx context.Context, tags []string) ([]*domain.Log, error)
	Search(ctx context.Context, term string) ([]*domain.Log, error)
	CreateLog(ctx context.Context, input domain.LogInput) (*domain.Log, error)
	UpdateLog(ctx context.Context, id string, update domain.LogUpdate) (*domain.Log, error)
	DeleteLog(ctx context.Context, id string) error
}
