package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

const meetingColumns = `id, name, description, meeting_date, start_time, end_time, video_url, video_id,
	transcript, status, team_id, created_by, created_at, updated_at`

type meetingRepository struct {
	executor DBExecutor
}

func NewMeetingRepository(db *sql.DB) *meetingRepository {
	return &meetingRepository{executor: db}
}

func scanMeeting(row rowScanner) (*domain.Meeting, error) {
	meeting := &domain.Meeting{}
	var status string
	var updatedAt sql.NullTime
	err := row.Scan(
		&meeting.ID,
		&meeting.Name,
		&meeting.Description,
		&meeting.Date,
		&meeting.StartTime,
		&meeting.EndTime,
		&meeting.VideoURL,
		&meeting.VideoID,
		&meeting.Transcript,
		&status,
		&meeting.TeamID,
		&meeting.CreatedBy,
		&meeting.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	meeting.Status = domain.MeetingStatus(status)
	meeting.UpdatedAt = nullTimePtr(updatedAt)
	return meeting, nil
}

func (r *meetingRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Meeting, error) {
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, normalizeError(err, "meetings")
	}
	defer rows.Close()

	meetings := make([]*domain.Meeting, 0)
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, normalizeError(err, "meetings")
		}
		meetings = append(meetings, meeting)
	}

	return meetings, normalizeError(rows.Err(), "meetings")
}

func (r *meetingRepository) ListByTeam(ctx context.Context, teamID string) ([]*domain.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE team_id = $1
		ORDER BY meeting_date DESC
	`
	return r.list(ctx, query, teamID)
}

func (r *meetingRepository) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	query := "SELECT " + meetingColumns + " FROM meetings WHERE id = $1"

	meeting, err := scanMeeting(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, normalizeError(err, "meeting with id "+id)
	}
	return meeting, nil
}

// ListUpcoming возвращает запланированные встречи начиная с даты from, ближайшие первыми
func (r *meetingRepository) ListUpcoming(ctx context.Context, teamID string, from time.Time, limit int) ([]*domain.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE team_id = $1 AND meeting_date >= $2 AND status = $3
		ORDER BY meeting_date ASC, start_time ASC
		LIMIT $4
	`
	return r.list(ctx, query, teamID, from, string(domain.MeetingPlanned), limit)
}

// ListPast возвращает встречи до даты before, последние первыми
func (r *meetingRepository) ListPast(ctx context.Context, teamID string, before time.Time, limit int) ([]*domain.Meeting, error) {
	query := `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE team_id = $1 AND meeting_date < $2
		ORDER BY meeting_date DESC
		LIMIT $3
	`
	return r.list(ctx, query, teamID, before, limit)
}

func (r *meetingRepository) Create(ctx context.Context, meeting *domain.Meeting) error {
	if meeting.ID == "" {
		meeting.ID = newID()
	}

	query := `
		INSERT INTO meetings (id, name, description, meeting_date, start_time, end_time, video_url, video_id,
			transcript, status, team_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`

	var updatedAt sql.NullTime
	err := r.executor.QueryRowContext(
		ctx,
		query,
		meeting.ID,
		meeting.Name,
		meeting.Description,
		meeting.Date,
		meeting.StartTime,
		meeting.EndTime,
		meeting.VideoURL,
		meeting.VideoID,
		meeting.Transcript,
		string(meeting.Status),
		meeting.TeamID,
		meeting.CreatedBy,
		time.Now(),
	).Scan(&meeting.CreatedAt, &updatedAt)
	if err != nil {
		return normalizeError(err, "meeting")
	}

	meeting.UpdatedAt = nullTimePtr(updatedAt)
	return nil
}

func (r *meetingRepository) Update(ctx context.Context, id string, update domain.MeetingUpdate) (*domain.Meeting, error) {
	set := &setClause{}
	if update.Name != nil {
		set.add("name", *update.Name)
	}
	if update.Description != nil {
		set.add("description", *update.Description)
	}
	if update.Date != nil {
		set.add("meeting_date", *update.Date)
	}
	if update.StartTime != nil {
		set.add("start_time", *update.StartTime)
	}
	if update.EndTime != nil {
		set.add("end_time", *update.EndTime)
	}
	if update.VideoURL != nil {
		set.add("video_url", *update.VideoURL)
	}
	if update.VideoID != nil {
		set.add("video_id", *update.VideoID)
	}
	if update.Transcript != nil {
		set.add("transcript", *update.Transcript)
	}
	if update.Status != nil {
		set.add("status", string(*update.Status))
	}

	query, args := set.build("meetings", id, meetingColumns)
	meeting, err := scanMeeting(r.executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, normalizeError(err, "meeting with id "+id)
	}
	return meeting, nil
}

func (r *meetingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.executor.ExecContext(ctx, "DELETE FROM meetings WHERE id = $1", id)
	return normalizeError(err, "meeting with id "+id)
}

func (r *meetingRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	var count int
	err := r.executor.QueryRowContext(ctx, "SELECT COUNT(*) FROM meetings WHERE team_id = $1", teamID).Scan(&count)
	return count, normalizeError(err, "meetings")
}

func (r *meetingRepository) CountUpcoming(ctx context.Context, teamID string, from time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM meetings
		WHERE team_id = $1 AND meeting_date >= $2 AND status = $3
	`

	var count int
	err := r.executor.QueryRowContext(ctx, query, teamID, from, string(domain.MeetingPlanned)).Scan(&count)
	return count, normalizeError(err, "meetings")
}
