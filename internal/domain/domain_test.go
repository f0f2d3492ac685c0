package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskInput_Validate(t *testing.T) {
	t.Run("значения по умолчанию", func(t *testing.T) {
		in := TaskInput{Title: "Write docs"}

		require.NoError(t, in.Validate())
		assert.Equal(t, TaskTodo, in.Status)
		assert.Equal(t, PriorityMedium, in.Priority)
	})

	t.Run("пустой заголовок", func(t *testing.T) {
		in := TaskInput{Title: "   "}

		err := in.Validate()

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("неизвестный статус", func(t *testing.T) {
		in := TaskInput{Title: "x", Status: "blocked"}

		assert.True(t, errors.Is(in.Validate(), ErrValidation))
	})

	t.Run("неизвестный приоритет в обновлении", func(t *testing.T) {
		p := Priority("urgent")

		assert.True(t, errors.Is(TaskUpdate{Priority: &p}.Validate(), ErrValidation))
	})
}

func TestMeetingInput_Validate(t *testing.T) {
	valid := func() MeetingInput {
		return MeetingInput{
			Name:      "Weekly sync",
			Date:      time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			EndTime:   "9:45",
		}
	}

	t.Run("корректная встреча", func(t *testing.T) {
		in := valid()

		require.NoError(t, in.Validate())
		assert.Equal(t, MeetingPlanned, in.Status)
	})

	tests := []struct {
		name   string
		mutate func(*MeetingInput)
	}{
		{"короткое имя", func(in *MeetingInput) { in.Name = "ab" }},
		{"нет даты", func(in *MeetingInput) { in.Date = time.Time{} }},
		{"время начала 24:00", func(in *MeetingInput) { in.StartTime = "24:00" }},
		{"время окончания без минут", func(in *MeetingInput) { in.EndTime = "10" }},
		{"неизвестный статус", func(in *MeetingInput) { in.Status = "postponed" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)

			assert.True(t, errors.Is(in.Validate(), ErrValidation))
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0", "dQw4w9WgXcQ"},
		{"https://vimeo.com/12345", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractVideoID(tt.url), tt.url)
	}
}

func TestGroupTasksByStatus(t *testing.T) {
	tasks := []*Task{
		{ID: "1", Status: TaskDone},
		{ID: "2", Status: TaskTodo},
		{ID: "3", Status: TaskDoing},
		{ID: "4", Status: TaskTodo},
	}

	board := GroupTasksByStatus(tasks)

	require.Len(t, board.Todo, 2)
	assert.Equal(t, "2", board.Todo[0].ID)
	assert.Equal(t, "4", board.Todo[1].ID)
	require.Len(t, board.Doing, 1)
	require.Len(t, board.Done, 1)
	assert.Equal(t, "1", board.Done[0].ID)
}

func TestLogInput_Validate(t *testing.T) {
	in := LogInput{Title: "Deploy", Content: "", Date: time.Now(), Time: "10:00"}
	assert.True(t, errors.Is(in.Validate(), ErrValidation))

	in.Content = "rolled out v2"
	assert.NoError(t, in.Validate())
}

func TestNewRemoteError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, NewRemoteError(nil))
	})

	t.Run("сообщение бэкенда из PgError", func(t *testing.T) {
		pgErr := &pgconn.PgError{Message: "duplicate key value", Detail: "Key (name)=(Acme) already exists."}

		err := NewRemoteError(pgErr)

		assert.True(t, errors.Is(err, ErrRemote))
		assert.Equal(t, "duplicate key value: Key (name)=(Acme) already exists.", err.Error())
		assert.True(t, errors.Is(err, pgErr))
	})

	t.Run("доменная ошибка не переупаковывается", func(t *testing.T) {
		err := NewRemoteError(NewNotFoundError("task"))

		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrRemote))
		assert.True(t, IsRemote(err))
	})
}
