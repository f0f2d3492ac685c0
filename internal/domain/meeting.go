package domain

import (
	"regexp"
	"strings"
	"time"
)

type Meeting struct {
	ID          string
	Name        string
	Description string
	Date        time.Time
	StartTime   string
	EndTime     string
	VideoURL    string
	VideoID     string
	Transcript  string
	Status      MeetingStatus
	TeamID      string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type MeetingStatus string

const (
	MeetingPlanned    MeetingStatus = "planned"
	MeetingInProgress MeetingStatus = "in_progress"
	MeetingFinished   MeetingStatus = "finished"
	MeetingCancelled  MeetingStatus = "cancelled"
)

func (s MeetingStatus) Valid() bool {
	switch s {
	case MeetingPlanned, MeetingInProgress, MeetingFinished, MeetingCancelled:
		return true
	}
	return false
}

const minMeetingNameLength = 3

var (
	clockPattern   = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	youtubePattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)
)

// ValidClock проверяет время в формате HH:MM
func ValidClock(value string) bool {
	return clockPattern.MatchString(value)
}

// ExtractVideoID возвращает идентификатор видео YouTube или пустую строку
func ExtractVideoID(url string) string {
	match := youtubePattern.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	return match[1]
}

type MeetingInput struct {
	Name        string
	Description string
	Date        time.Time
	StartTime   string
	EndTime     string
	VideoURL    string
	Transcript  string
	Status      MeetingStatus
}

func (in *MeetingInput) Validate() error {
	if len([]rune(strings.TrimSpace(in.Name))) < minMeetingNameLength {
		return NewValidationError("name", "meeting name must have at least 3 characters")
	}
	if in.Date.IsZero() {
		return NewValidationError("date", "meeting date is required")
	}
	if !ValidClock(in.StartTime) {
		return NewValidationError("start_time", "invalid format (HH:MM)")
	}
	if !ValidClock(in.EndTime) {
		return NewValidationError("end_time", "invalid format (HH:MM)")
	}
	if in.Status == "" {
		in.Status = MeetingPlanned
	}
	if !in.Status.Valid() {
		return NewValidationError("status", "unknown meeting status "+string(in.Status))
	}
	return nil
}

type MeetingUpdate struct {
	Name        *string
	Description *string
	Date        *time.Time
	StartTime   *string
	EndTime     *string
	VideoURL    *string
	VideoID     *string
	Transcript  *string
	Status      *MeetingStatus
}

func (u MeetingUpdate) Validate() error {
	if u.Name != nil && len([]rune(strings.TrimSpace(*u.Name))) < minMeetingNameLength {
		return NewValidationError("name", "meeting name must have at least 3 characters")
	}
	if u.StartTime != nil && !ValidClock(*u.StartTime) {
		return NewValidationError("start_time", "invalid format (HH:MM)")
	}
	if u.EndTime != nil && !ValidClock(*u.EndTime) {
		return NewValidationError("end_time", "invalid format (HH:MM)")
	}
	if u.Status != nil && !u.Status.Valid() {
		return NewValidationError("status", "unknown meeting status "+string(*u.Status))
	}
	return nil
}
