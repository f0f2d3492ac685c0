package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

// задача вместе с создателем и исполнителем (LEFT JOIN, исполнитель может отсутствовать)
const taskSelect = `
	SELECT t.id, t.title, t.description, t.status, t.priority, t.team_id, t.created_by,
		t.assignee_id, t.due_date, t.created_at, t.updated_at,
		c.email, c.name, a.email, a.name
	FROM tasks t
	LEFT JOIN users c ON c.id = t.created_by
	LEFT JOIN users a ON a.id = t.assignee_id
`

type taskRepository struct {
	executor DBExecutor
}

func NewTaskRepository(db *sql.DB) *taskRepository {
	return &taskRepository{executor: db}
}

func scanTask(row rowScanner) (*domain.Task, error) {
	task := &domain.Task{}
	var status, priority string
	var dueDate, updatedAt sql.NullTime
	var creatorEmail, creatorName, assigneeEmail, assigneeName sql.NullString
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&priority,
		&task.TeamID,
		&task.CreatedBy,
		&task.AssigneeID,
		&dueDate,
		&task.CreatedAt,
		&updatedAt,
		&creatorEmail,
		&creatorName,
		&assigneeEmail,
		&assigneeName,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.Priority(priority)
	task.DueDate = nullTimePtr(dueDate)
	task.UpdatedAt = nullTimePtr(updatedAt)
	if creatorEmail.Valid {
		task.Creator = &domain.User{ID: task.CreatedBy, Email: creatorEmail.String, Name: creatorName.String}
	}
	if task.AssigneeID != nil && assigneeEmail.Valid {
		task.Assignee = &domain.User{ID: *task.AssigneeID, Email: assigneeEmail.String, Name: assigneeName.String}
	}
	return task, nil
}

func (r *taskRepository) ListByTeam(ctx context.Context, teamID string) ([]*domain.Task, error) {
	query := taskSelect + `
		WHERE t.team_id = $1
		ORDER BY t.created_at DESC
	`

	rows, err := r.executor.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, normalizeError(err, "tasks")
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, normalizeError(err, "tasks")
		}
		tasks = append(tasks, task)
	}

	return tasks, normalizeError(rows.Err(), "tasks")
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := taskSelect + "WHERE t.id = $1"

	task, err := scanTask(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, normalizeError(err, "task with id "+id)
	}
	return task, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = newID()
	}

	query := `
		INSERT INTO tasks (id, title, description, status, priority, team_id, created_by, assignee_id, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	var updatedAt sql.NullTime
	err := r.executor.QueryRowContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		string(task.Priority),
		task.TeamID,
		task.CreatedBy,
		task.AssigneeID,
		task.DueDate,
		time.Now(),
	).Scan(&task.CreatedAt, &updatedAt)
	if err != nil {
		return normalizeError(err, "task")
	}

	task.UpdatedAt = nullTimePtr(updatedAt)
	return nil
}

// Update применяет частичное обновление и перечитывает задачу со связанными пользователями
func (r *taskRepository) Update(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error) {
	set := &setClause{}
	if update.Title != nil {
		set.add("title", *update.Title)
	}
	if update.Description != nil {
		set.add("description", *update.Description)
	}
	if update.Status != nil {
		set.add("status", string(*update.Status))
	}
	if update.Priority != nil {
		set.add("priority", string(*update.Priority))
	}
	if update.AssigneeID != nil {
		set.add("assignee_id", *update.AssigneeID)
	}
	if update.DueDate != nil {
		set.add("due_date", *update.DueDate)
	}

	query, args := set.build("tasks", id, "id")
	var updatedID string
	if err := r.executor.QueryRowContext(ctx, query, args...).Scan(&updatedID); err != nil {
		return nil, normalizeError(err, "task with id "+id)
	}

	return r.GetByID(ctx, updatedID)
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.executor.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	return normalizeError(err, "task with id "+id)
}

func (r *taskRepository) CountByStatus(ctx context.Context, teamID string) (map[domain.TaskStatus]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM tasks
		WHERE team_id = $1
		GROUP BY status
	`

	rows, err := r.executor.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, normalizeError(err, "task stats")
	}
	defer rows.Close()

	counts := map[domain.TaskStatus]int{
		domain.TaskTodo:  0,
		domain.TaskDoing: 0,
		domain.TaskDone:  0,
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, normalizeError(err, "task stats")
		}
		counts[domain.TaskStatus(status)] = count
	}

	return counts, normalizeError(rows.Err(), "task stats")
}
