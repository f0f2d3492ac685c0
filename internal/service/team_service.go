package service

import (
	"context"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

type TeamService interface {
	GetTeams(ctx context.Context) ([]*domain.Team, error)
	GetTeam(ctx context.Context, id string) (*domain.Team, error)
	CreateTeam(ctx context.Context, input domain.TeamInput) (*domain.Team, error)
	UpdateTeam(ctx context.Context, id string, update domain.TeamUpdate) (*domain.Team, error)
	DeleteTeam(ctx context.Context, id string) error
	GetMembers(ctx context.Context, teamID string) ([]*domain.TeamMember, error)
	AddMember(ctx context.Context, teamID, userID string, role domain.Role) (*domain.TeamMember, error)
	RemoveMember(ctx context.Context, teamID, userID string) error
	UpdateMemberRole(ctx context.Context, teamID, userID string, role domain.Role) (*domain.TeamMember, error)
}
