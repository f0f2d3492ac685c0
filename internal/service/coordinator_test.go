package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bagdasarian/team-dashboard/internal/cache"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun(t *testing.T) {
	t.Run("ошибка проверки: бэкенд не вызывается", func(t *testing.T) {
		env := newServiceEnv(t)
		called := false

		_, err := Run(context.Background(), env.coordinator, Mutation[string]{
			Name:     "create task",
			Validate: func() error { return domain.NewValidationError("title", "task title is required") },
			Call: func(ctx context.Context) (string, error) {
				called = true
				return "", nil
			},
		})

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.False(t, called)
		assert.Empty(t, env.notifier.Recent())
	})

	t.Run("ошибка бэкенда: кэш не меняется, уведомление об ошибке", func(t *testing.T) {
		env := newServiceEnv(t)
		warmKey(t, env, cache.TasksKey("t1"))

		_, err := Run(context.Background(), env.coordinator, Mutation[string]{
			Name: "create task",
			Call: func(ctx context.Context) (string, error) {
				return "", errors.New("new row violates row-level security policy")
			},
			Invalidate: func(string) []cache.Key { return []cache.Key{cache.TasksKey("t1")} },
			Success:    "Task created",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrRemote)
		assert.Equal(t, "new row violates row-level security policy", err.Error())
		assert.Equal(t, cache.StateFresh, env.cache.Peek(cache.TasksKey("t1")).State)

		notification := env.lastNotification()
		assert.Equal(t, NotificationError, notification.Level)
		assert.Equal(t, "new row violates row-level security policy", notification.Message)
	})

	t.Run("успех: инвалидация после ответа бэкенда, затем уведомление", func(t *testing.T) {
		env := newServiceEnv(t)
		warmKey(t, env, cache.TasksKey("t1"))
		var stateDuringCall cache.State
		var afterCalled bool

		result, err := Run(context.Background(), env.coordinator, Mutation[string]{
			Name: "create task",
			Call: func(ctx context.Context) (string, error) {
				stateDuringCall = env.cache.Peek(cache.TasksKey("t1")).State
				return "k1", nil
			},
			Invalidate: func(id string) []cache.Key {
				return []cache.Key{cache.TasksKey("t1"), cache.TaskKey(id)}
			},
			After: func(string) {
				afterCalled = true
				assert.Equal(t, cache.StateStale, env.cache.Peek(cache.TasksKey("t1")).State)
			},
			Success: "Task created",
		})

		require.NoError(t, err)
		assert.Equal(t, "k1", result)
		assert.Equal(t, cache.StateFresh, stateDuringCall, "до подтверждения бэкенда кэш не трогается")
		assert.Equal(t, cache.StateStale, env.cache.Peek(cache.TasksKey("t1")).State)
		assert.True(t, afterCalled)

		notification := env.lastNotification()
		assert.Equal(t, NotificationSuccess, notification.Level)
		assert.Equal(t, "Task created", notification.Message)
	})
}

func TestLogNotifier_KeepsLastItems(t *testing.T) {
	notifier := NewLogNotifier(zap.NewNop(), 2)

	notifier.Success(context.Background(), "a", "first")
	notifier.Success(context.Background(), "b", "second")
	notifier.Failure(context.Background(), "c", errors.New("third"))

	items := notifier.Recent()
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Message)
	assert.Equal(t, "third", items[1].Message)
	assert.Equal(t, NotificationError, items[1].Level)
}
