package domain

import (
	"strings"
	"time"
)

type Log struct {
	ID         string
	Title      string
	Content    string
	Date       time.Time
	Time       string
	Tags       string
	TeamID     string
	CreatedBy  string
	AuthorName string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

type LogInput struct {
	Title   string
	Content string
	Date    time.Time
	Time    string
	Tags    string
}

func (in LogInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return NewValidationError("title", "log title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return NewValidationError("content", "log content is required")
	}
	if in.Date.IsZero() {
		return NewValidationError("date", "log date is required")
	}
	if !ValidClock(in.Time) {
		return NewValidationError("time", "invalid format (HH:MM)")
	}
	return nil
}

type LogUpdate struct {
	Title   *string
	Content *string
	Date    *time.Time
	Time    *string
	Tags    *string
}

func (u LogUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return NewValidationError("title", "log title is required")
	}
	if u.Content != nil && strings.TrimSpace(*u.Content) == "" {
		return NewValidationError("content", "log content is required")
	}
	if u.Time != nil && !ValidClock(*u.Time) {
		return NewValidationError("time", "invalid format (HH:MM)")
	}
	return nil
}
