package service

import (
	"context"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

type MeetingService interface {
	GetMeetings(ctx context.Context) ([]*domain.Meeting, error)
	GetMeeting(ctx context.Context, id string) (*domain.Meeting, error)
	GetUpcoming(ctx context.Context) ([]*domain.Meeting, error)
	GetPast(ctx context.Context) ([]*domain.Meeting, error)
	CreateMeeting(ctx context.Context, input domain.MeetingInput) (*domain.Meeting, error)
	UpdateMeeting(ctx context.Context, id string, update domain.MeetingUpdate) (*domain.Meeting, error)
	UpdateStatus(ctx context.Context, id string, status domain.MeetingStatus) (*domain.Meeting, error)
	AddTranscript(ctx context.Context, id, transcript string) (*domain.Meeting, error)
	AttachVideo(ctx context.Context, id, videoURL string) (*domain.Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error
}
