package service

import (
	"context"
	"strings"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/cache"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/bagdasarian/team-dashboard/internal/repository"
	"github.com/bagdasarian/team-dashboard/internal/session"
)

type logService struct {
	logRepo     repository.LogRepository
	cache       *cache.Cache
	coordinator *Coordinator
	scope       scope
}

func NewLogService(
	logRepo repository.LogRepository,
	c *cache.Cache,
	coordinator *Coordinator,
	identity Identity,
	sess *session.Session,
) LogService {
	return &logService{
		logRepo:     logRepo,
		cache:       c,
		coordinator: coordinator,
		scope:       scope{identity: identity, session: sess},
	}
}

func (s *logService) GetLogs(ctx context.Context) ([]*domain.Log, error) {
	return s.list(ctx, cache.LogsKey, func(ctx context.Context, teamID string) ([]*domain.Log, error) {
		return s.logRepo.ListByTeam(ctx, teamID)
	})
}

func (s *logService) GetLog(ctx context.Context, id string) (*domain.Log, error) {
	if _, err := s.scope.user(); err != nil {
		return nil, err
	}
	return cache.Get(ctx, s.cache, cache.LogKey(id), func(ctx context.Context) (*domain.Log, error) {
		return s.logRepo.GetByID(ctx, id)
	})
}

func (s *logService) GetByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Log, error) {
	if to.Before(from) {
		return nil, domain.NewValidationError("range", "end date is before start date")
	}
	key := func(teamID string) cache.Key { return cache.LogsRangeKey(teamID, from, to) }
	return s.list(ctx, key, func(ctx context.Context, teamID string) ([]*domain.Log, error) {
		return s.logRepo.ListByDateRange(ctx, teamID, from, to)
	})
}

func (s *logService) GetByTags(ctx context.Context, tags []string) ([]*domain.Log, error) {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}

	key := func(teamID string) cache.Key { return cache.LogsTagsKey(teamID, cleaned) }
	return s.list(ctx, key, func(ctx context.Context, teamID string) ([]*domain.Log, error) {
		return s.logRepo.ListByTags(ctx, teamID, cleaned)
	})
}

func (s *logService) Search(ctx context.Context, term string) ([]*domain.Log, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.GetLogs(ctx)
	}

	key := func(teamID string) cache.Key { return cache.LogsSearchKey(teamID, term) }
	return s.list(ctx, key, func(ctx context.Context, teamID string) ([]*domain.Log, error) {
		return s.logRepo.Search(ctx, teamID, term)
	})
}

func (s *logService) list(
	ctx context.Context,
	key func(teamID string) cache.Key,
	fetch func(ctx context.Context, teamID string) ([]*domain.Log, error),
) ([]*domain.Log, error) {
	teamID, ok, err := s.scope.readTeam()
	if err != nil || !ok {
		return []*domain.Log{}, err
	}
	return cache.Get(ctx, s.cache, key(teamID), func(ctx context.Context) ([]*domain.Log, error) {
		return fetch(ctx, teamID)
	})
}

func (s *logService) CreateLog(ctx context.Context, input domain.LogInput) (*domain.Log, error) {
	var user *domain.User
	var teamID string

	return Run(ctx, s.coordinator, Mutation[*domain.Log]{
		Name: "create log",
		Validate: func() (err error) {
			if teamID, err = s.scope.activeTeam(); err != nil {
				return err
			}
			if user, err = s.scope.user(); err != nil {
				return err
			}
			return input.Validate()
		},
		Call: func(ctx context.Context) (*domain.Log, error) {
			entry := &domain.Log{
				Title:      strings.TrimSpace(input.Title),
				Content:    input.Content,
				Date:       input.Date,
				Time:       input.Time,
				Tags:       input.Tags,
				TeamID:     teamID,
				CreatedBy:  user.ID,
				AuthorName: user.Name,
			}
			if err := s.logRepo.Create(ctx, entry); err != nil {
				return nil, err
			}
			return entry, nil
		},
		Invalidate: logKeys,
		Success:    "Log entry created",
	})
}

func (s *logService) UpdateLog(ctx context.Context, id string, update domain.LogUpdate) (*domain.Log, error) {
	return Run(ctx, s.coordinator, Mutation[*domain.Log]{
		Name: "update log",
		Validate: func() error {
			if _, err := s.scope.user(); err != nil {
				return err
			}
			return update.Validate()
		},
		Call: func(ctx context.Context) (*domain.Log, error) {
			return s.logRepo.Update(ctx, id, update)
		},
		Invalidate: logKeys,
		Success:    "Log entry updated",
	})
}

func (s *logService) DeleteLog(ctx context.Context, id string) error {
	var teamID string

	_, err := Run(ctx, s.coordinator, Mutation[*domain.Log]{
		Name: "delete log",
		Validate: func() (err error) {
			teamID, err = s.scope.activeTeam()
			return err
		},
		Call: func(ctx context.Context) (*domain.Log, error) {
			return &domain.Log{ID: id, TeamID: teamID}, s.logRepo.Delete(ctx, id)
		},
		Invalidate: logKeys,
		Success:    "Log entry deleted",
	})
	return err
}

// LogsKey как шаблон покрывает все фильтрованные выборки журнала
func logKeys(entry *domain.Log) []cache.Key {
	return []cache.Key{
		cache.LogsKey(entry.TeamID),
		cache.LogKey(entry.ID),
		cache.StatsKey(entry.TeamID),
	}
}
