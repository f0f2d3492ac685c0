package service

import (
	"context"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

type StatsService interface {
	GetTeamStats(ctx context.Context) (*domain.TeamStats, error)
}
