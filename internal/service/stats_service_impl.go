package service

import (
	"context"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/cache"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/bagdasarian/team-dashboard/internal/repository"
	"github.com/bagdasarian/team-dashboard/internal/session"
)

type statsService struct {
	taskRepo       repository.TaskRepository
	meetingRepo    repository.MeetingRepository
	logRepo        repository.LogRepository
	membershipRepo repository.MembershipRepository
	cache          *cache.Cache
	scope          scope
	now            func() time.Time
}

func NewStatsService(
	taskRepo repository.TaskRepository,
	meetingRepo repository.MeetingRepository,
	logRepo repository.LogRepository,
	membershipRepo repository.MembershipRepository,
	c *cache.Cache,
	identity Identity,
	sess *session.Session,
) StatsService {
	return &statsService{
		taskRepo:       taskRepo,
		meetingRepo:    meetingRepo,
		logRepo:        logRepo,
		membershipRepo: membershipRepo,
		cache:          c,
		scope:          scope{identity: identity, session: sess},
		now:            time.Now,
	}
}

// GetTeamStats собирает счетчики панели активной команды; без активной команды - nil
func (s *statsService) GetTeamStats(ctx context.Context) (*domain.TeamStats, error) {
	teamID, ok, err := s.scope.readTeam()
	if err != nil || !ok {
		return nil, err
	}

	return cache.Get(ctx, s.cache, cache.StatsKey(teamID), func(ctx context.Context) (*domain.TeamStats, error) {
		stats := &domain.TeamStats{TeamID: teamID}

		tasks, err := s.taskRepo.CountByStatus(ctx, teamID)
		if err != nil {
			return nil, err
		}
		stats.Tasks = tasks

		if stats.Meetings, err = s.meetingRepo.CountByTeam(ctx, teamID); err != nil {
			return nil, err
		}
		if stats.UpcomingMeetings, err = s.meetingRepo.CountUpcoming(ctx, teamID, today(s.now())); err != nil {
			return nil, err
		}
		if stats.Logs, err = s.logRepo.CountByTeam(ctx, teamID); err != nil {
			return nil, err
		}
		if stats.Members, err = s.membershipRepo.CountByTeam(ctx, teamID); err != nil {
			return nil, err
		}
		return stats, nil
	})
}
