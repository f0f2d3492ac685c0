package domain

import (
	"strings"
	"time"
)

type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    Priority
	TeamID      string
	CreatedBy   string
	AssigneeID  *string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	Creator     *User
	Assignee    *User
}

type TaskStatus string

const (
	TaskTodo  TaskStatus = "todo"
	TaskDoing TaskStatus = "doing"
	TaskDone  TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskDoing, TaskDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskBoard - задачи команды, разложенные по статусам для канбан-доски
type TaskBoard struct {
	Todo  []*Task
	Doing []*Task
	Done  []*Task
}

// GroupTasksByStatus раскладывает задачи по статусам, сохраняя исходный порядок
func GroupTasksByStatus(tasks []*Task) *TaskBoard {
	board := &TaskBoard{
		Todo:  []*Task{},
		Doing: []*Task{},
		Done:  []*Task{},
	}
	for _, task := range tasks {
		switch task.Status {
		case TaskTodo:
			board.Todo = append(board.Todo, task)
		case TaskDoing:
			board.Doing = append(board.Doing, task)
		case TaskDone:
			board.Done = append(board.Done, task)
		}
	}
	return board
}

type TaskInput struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    Priority
	AssigneeID  *string
	DueDate     *time.Time
}

// Validate проверяет обязательные поля и проставляет значения по умолчанию
func (in *TaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return NewValidationError("title", "task title is required")
	}
	if in.Status == "" {
		in.Status = TaskTodo
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !in.Status.Valid() {
		return NewValidationError("status", "unknown task status "+string(in.Status))
	}
	if !in.Priority.Valid() {
		return NewValidationError("priority", "unknown task priority "+string(in.Priority))
	}
	return nil
}

type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *Priority
	AssigneeID  *string
	DueDate     *time.Time
}

func (u TaskUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return NewValidationError("title", "task title is required")
	}
	if u.Status != nil && !u.Status.Valid() {
		return NewValidationError("status", "unknown task status "+string(*u.Status))
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return NewValidationError("priority", "unknown task priority "+string(*u.Priority))
	}
	return nil
}
