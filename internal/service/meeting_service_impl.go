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

const (
	upcomingMeetingsLimit = 5
	pastMeetingsLimit     = 10
)

type meetingService struct {
	meetingRepo repository.MeetingRepository
	cache       *cache.Cache
	coordinator *Coordinator
	scope       scope
	now         func() time.Time
}

func NewMeetingService(
	meetingRepo repository.MeetingRepository,
	c *cache.Cache,
	coordinator *Coordinator,
	identity Identity,
	sess *session.Session,
) MeetingService {
	return &meetingService{
		meetingRepo: meetingRepo,
		cache:       c,
		coordinator: coordinator,
		scope:       scope{identity: identity, session: sess},
		now:         time.Now,
	}
}

func (s *meetingService) GetMeetings(ctx context.Context) ([]*domain.Meeting, error) {
	teamID, ok, err := s.scope.readTeam()
	if err != nil || !ok {
		return []*domain.Meeting{}, err
	}
	return cache.Get(ctx, s.cache, cache.MeetingsKey(teamID), func(ctx context.Context) ([]*domain.Meeting, error) {
		return s.meetingRepo.ListByTeam(ctx, teamID)
	})
}

func (s *meetingService) GetMeeting(ctx context.Context, id string) (*domain.Meeting, error) {
	if _, err := s.scope.user(); err != nil {
		return nil, err
	}
	return cache.Get(ctx, s.cache, cache.MeetingKey(id), func(ctx context.Context) (*domain.Meeting, error) {
		return s.meetingRepo.GetByID(ctx, id)
	})
}

// GetUpcoming возвращает ближайшие запланированные встречи начиная с сегодняшнего дня
func (s *meetingService) GetUpcoming(ctx context.Context) ([]*domain.Meeting, error) {
	teamID, ok, err := s.scope.readTeam()
	if err != nil || !ok {
		return []*domain.Meeting{}, err
	}
	return cache.Get(ctx, s.cache, cache.UpcomingMeetingsKey(teamID), func(ctx context.Context) ([]*domain.Meeting, error) {
		return s.meetingRepo.ListUpcoming(ctx, teamID, today(s.now()), upcomingMeetingsLimit)
	})
}

func (s *meetingService) GetPast(ctx context.Context) ([]*domain.Meeting, error) {
	teamID, ok, err := s.scope.readTeam()
	if err != nil || !ok {
		return []*domain.Meeting{}, err
	}
	return cache.Get(ctx, s.cache, cache.PastMeetingsKey(teamID), func(ctx context.Context) ([]*domain.Meeting, error) {
		return s.meetingRepo.ListPast(ctx, teamID, today(s.now()), pastMeetingsLimit)
	})
}

func (s *meetingService) CreateMeeting(ctx context.Context, input domain.MeetingInput) (*domain.Meeting, error) {
	var user *domain.User
	var teamID string

	return Run(ctx, s.coordinator, Mutation[*domain.Meeting]{
		Name: "create meeting",
		Validate: func() (err error) {
			if teamID, err = s.scope.activeTeam(); err != nil {
				return err
			}
			if user, err = s.scope.user(); err != nil {
				return err
			}
			return input.Validate()
		},
		Call: func(ctx context.Context) (*domain.Meeting, error) {
			meeting := &domain.Meeting{
				Name:        strings.TrimSpace(input.Name),
				Description: input.Description,
				Date:        input.Date,
				StartTime:   input.StartTime,
				EndTime:     input.EndTime,
				VideoURL:    input.VideoURL,
				VideoID:     domain.ExtractVideoID(input.VideoURL),
				Transcript:  input.Transcript,
				Status:      input.Status,
				TeamID:      teamID,
				CreatedBy:   user.ID,
			}
			if err := s.meetingRepo.Create(ctx, meeting); err != nil {
				return nil, err
			}
			return meeting, nil
		},
		Invalidate: meetingKeys,
		Success:    "Meeting created",
	})
}

// UpdateMeeting применяет частичное обновление; идентификатор видео выводится из ссылки
func (s *meetingService) UpdateMeeting(ctx context.Context, id string, update domain.MeetingUpdate) (*domain.Meeting, error) {
	if update.VideoURL != nil {
		videoID := domain.ExtractVideoID(*update.VideoURL)
		update.VideoID = &videoID
	}
	return s.update(ctx, "update meeting", "Meeting updated", id, update)
}

func (s *meetingService) UpdateStatus(ctx context.Context, id string, status domain.MeetingStatus) (*domain.Meeting, error) {
	return s.update(ctx, "update meeting status", "Meeting status updated", id, domain.MeetingUpdate{Status: &status})
}

func (s *meetingService) AddTranscript(ctx context.Context, id, transcript string) (*domain.Meeting, error) {
	return s.update(ctx, "add transcript", "Transcript saved", id, domain.MeetingUpdate{Transcript: &transcript})
}

func (s *meetingService) AttachVideo(ctx context.Context, id, videoURL string) (*domain.Meeting, error) {
	videoID := domain.ExtractVideoID(videoURL)
	return s.update(ctx, "attach video", "Video attached", id, domain.MeetingUpdate{
		VideoURL: &videoURL,
		VideoID:  &videoID,
	})
}

func (s *meetingService) update(ctx context.Context, name, success, id string, update domain.MeetingUpdate) (*domain.Meeting, error) {
	return Run(ctx, s.coordinator, Mutation[*domain.Meeting]{
		Name: name,
		Validate: func() error {
			if _, err := s.scope.user(); err != nil {
				return err
			}
			return update.Validate()
		},
		Call: func(ctx context.Context) (*domain.Meeting, error) {
			return s.meetingRepo.Update(ctx, id, update)
		},
		Invalidate: meetingKeys,
		Success:    success,
	})
}

func (s *meetingService) DeleteMeeting(ctx context.Context, id string) error {
	var teamID string

	_, err := Run(ctx, s.coordinator, Mutation[*domain.Meeting]{
		Name: "delete meeting",
		Validate: func() (err error) {
			teamID, err = s.scope.activeTeam()
			return err
		},
		Call: func(ctx context.Context) (*domain.Meeting, error) {
			return &domain.Meeting{ID: id, TeamID: teamID}, s.meetingRepo.Delete(ctx, id)
		},
		Invalidate: meetingKeys,
		Success:    "Meeting deleted",
	})
	return err
}

// MeetingsKey как шаблон покрывает также ближайшие и прошедшие встречи
func meetingKeys(meeting *domain.Meeting) []cache.Key {
	return []cache.Key{
		cache.MeetingsKey(meeting.TeamID),
		cache.MeetingKey(meeting.ID),
		cache.StatsKey(meeting.TeamID),
	}
}

func today(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}
