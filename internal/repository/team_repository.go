package repository

import (
	"context"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

type TeamRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Team, error)
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	Create(ctx context.Context, team *domain.Team) error
	Update(ctx context.Context, id string, update domain.TeamUpdate) (*domain.Team, error)
	Delete(ctx context.Context, id string) error
}

type MembershipRepository interface {
	ListByTeam(ctx context.Context, teamID string) ([]*domain.TeamMember, error)
	Get(ctx context.Context, teamID, userID string) (*domain.TeamMember, error)
	Upsert(ctx context.Context, member *domain.TeamMember) error
	Add(ctx context.Context, member *domain.TeamMember) error
	Remove(ctx context.Context, teamID, userID string) error
	RemoveAllByTeam(ctx context.Context, teamID string) error
	UpdateRole(ctx context.Context, teamID, userID string, role domain.Role) (*domain.TeamMember, error)
	CountByTeam(ctx context.Context, teamID string) (int, error)
}
