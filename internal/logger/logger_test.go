package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		t.Run(env, func(t *testing.T) {
			log, err := New(env)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestWithContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	t.Run("добавляет request_id", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-1")
		WithContext(ctx, base).Info("hello")

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	})

	t.Run("без request_id", func(t *testing.T) {
		WithContext(context.Background(), base).Info("hello")

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.NotContains(t, entries[0].ContextMap(), "request_id")
	})

	t.Run("nil контекст", func(t *testing.T) {
		assert.Equal(t, base, WithContext(nil, base))
	})
}
