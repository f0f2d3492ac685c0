package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

// запись журнала вместе с именем автора
const logSelect = `
	SELECT l.id, l.title, l.content, l.log_date, l.log_time, l.tags, l.team_id, l.created_by,
		l.created_at, l.updated_at, u.name
	FROM logs l
	LEFT JOIN users u ON u.id = l.created_by
`

const logOrder = "ORDER BY l.log_date DESC, l.log_time DESC"

type logRepository struct {
	executor DBExecutor
}

func NewLogRepository(db *sql.DB) *logRepository {
	return &logRepository{executor: db}
}

func scanLog(row rowScanner) (*domain.Log, error) {
	entry := &domain.Log{}
	var updatedAt sql.NullTime
	var authorName sql.NullString
	err := row.Scan(
		&entry.ID,
		&entry.Title,
		&entry.Content,
		&entry.Date,
		&entry.Time,
		&entry.Tags,
		&entry.TeamID,
		&entry.CreatedBy,
		&entry.CreatedAt,
		&updatedAt,
		&authorName,
	)
	if err != nil {
		return nil, err
	}
	entry.UpdatedAt = nullTimePtr(updatedAt)
	entry.AuthorName = authorName.String
	return entry, nil
}

func (r *logRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Log, error) {
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, normalizeError(err, "logs")
	}
	defer rows.Close()

	logs := make([]*domain.Log, 0)
	for rows.Next() {
		entry, err := scanLog(rows)
		if err != nil {
			return nil, normalizeError(err, "logs")
		}
		logs = append(logs, entry)
	}

	return logs, normalizeError(rows.Err(), "logs")
}

func (r *logRepository) ListByTeam(ctx context.Context, teamID string) ([]*domain.Log, error) {
	return r.list(ctx, logSelect+"WHERE l.team_id = $1\n"+logOrder, teamID)
}

func (r *logRepository) GetByID(ctx context.Context, id string) (*domain.Log, error) {
	entry, err := scanLog(r.executor.QueryRowContext(ctx, logSelect+"WHERE l.id = $1", id))
	if err != nil {
		return nil, normalizeError(err, "log with id "+id)
	}
	return entry, nil
}

func (r *logRepository) ListByDateRange(ctx context.Context, teamID string, from, to time.Time) ([]*domain.Log, error) {
	query := logSelect + "WHERE l.team_id = $1 AND l.log_date >= $2 AND l.log_date <= $3\n" + logOrder
	return r.list(ctx, query, teamID, from, to)
}

// ListByTags возвращает записи, у которых tags содержит хотя бы один из тегов
func (r *logRepository) ListByTags(ctx context.Context, teamID string, tags []string) ([]*domain.Log, error) {
	if len(tags) == 0 {
		return []*domain.Log{}, nil
	}

	args := []any{teamID}
	conditions := make([]string, 0, len(tags))
	for _, tag := range tags {
		args = append(args, "%"+tag+"%")
		conditions = append(conditions, fmt.Sprintf("l.tags ILIKE $%d", len(args)))
	}

	query := logSelect + "WHERE l.team_id = $1 AND (" + strings.Join(conditions, " OR ") + ")\n" + logOrder
	return r.list(ctx, query, args...)
}

func (r *logRepository) Search(ctx context.Context, teamID, term string) ([]*domain.Log, error) {
	query := logSelect + `WHERE l.team_id = $1
		AND (l.title ILIKE $2 OR l.content ILIKE $2 OR l.tags ILIKE $2)
	` + logOrder
	return r.list(ctx, query, teamID, "%"+term+"%")
}

func (r *logRepository) Create(ctx context.Context, entry *domain.Log) error {
	if entry.ID == "" {
		entry.ID = newID()
	}

	query := `
		INSERT INTO logs (id, title, content, log_date, log_time, tags, team_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	var updatedAt sql.NullTime
	err := r.executor.QueryRowContext(
		ctx,
		query,
		entry.ID,
		entry.Title,
		entry.Content,
		entry.Date,
		entry.Time,
		entry.Tags,
		entry.TeamID,
		entry.CreatedBy,
		time.Now(),
	).Scan(&entry.CreatedAt, &updatedAt)
	if err != nil {
		return normalizeError(err, "log")
	}

	entry.UpdatedAt = nullTimePtr(updatedAt)
	return nil
}

func (r *logRepository) Update(ctx context.Context, id string, update domain.LogUpdate) (*domain.Log, error) {
	set := &setClause{}
	if update.Title != nil {
		set.add("title", *update.Title)
	}
	if update.Content != nil {
		set.add("content", *update.Content)
	}
	if update.Date != nil {
		set.add("log_date", *update.Date)
	}
	if update.Time != nil {
		set.add("log_time", *update.Time)
	}
	if update.Tags != nil {
		set.add("tags", *update.Tags)
	}

	query, args := set.build("logs", id, "id")
	var updatedID string
	if err := r.executor.QueryRowContext(ctx, query, args...).Scan(&updatedID); err != nil {
		return nil, normalizeError(err, "log with id "+id)
	}

	return r.GetByID(ctx, updatedID)
}

func (r *logRepository) Delete(ctx context.Context, id string) error {
	_, err := r.executor.ExecContext(ctx, "DELETE FROM logs WHERE id = $1", id)
	return normalizeError(err, "log with id "+id)
}

func (r *logRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	var count int
	err := r.executor.QueryRowContext(ctx, "SELECT COUNT(*) FROM logs WHERE team_id = $1", teamID).Scan(&count)
	return count, normalizeError(err, "logs")
}
