package repository

import (
	"context"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

type MeetingRepository interface {
	ListByTeam(ctx context.Context, teamID string) ([]*domain.Meeting, error)
	GetByID(ctx context.Context, id string) (*domain.Meeting, error)
	ListUpcoming(ctx context.Context, teamID string, from time.Time, limit int) ([]*domain.Meeting, error)
	ListPast(ctx context.Context, teamID string, before time.Time, limit int) ([]*domain.Meeting, error)
	Create(ctx context.Context, meeting *domain.Meeting) error
	Update(ctx context.Context, id string, update domain.MeetingUpdate) (*domain.Meeting, error)
	Delete(ctx context.Context, id string) error
	CountByTeam(ctx context.Context, teamID string) (int, error)
	CountUpcoming(ctx context.Context, teamID string, from time.Time) (int, error)
}
