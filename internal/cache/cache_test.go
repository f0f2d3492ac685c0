package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*Cache, *Metrics) {
	t.Helper()
	metrics := NewMetrics(prometheus.NewRegistry())
	return New(metrics, zap.NewNop()), metrics
}

// countingFetcher возвращает value и считает вызовы
func countingFetcher(calls *atomic.Int32, value any) Fetcher {
	return func(ctx context.Context) (any, error) {
		calls.Add(1)
		return value, nil
	}
}

func TestCache_Read(t *testing.T) {
	t.Run("свежая запись читается без загрузки", func(t *testing.T) {
		c, metrics := newTestCache(t)
		var calls atomic.Int32

		first, err := c.Read(context.Background(), TasksKey("t1"), countingFetcher(&calls, "v1"))
		require.NoError(t, err)
		second, err := c.Read(context.Background(), TasksKey("t1"), countingFetcher(&calls, "v2"))
		require.NoError(t, err)

		assert.Equal(t, "v1", first)
		assert.Equal(t, "v1", second)
		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, StateFresh, c.Peek(TasksKey("t1")).State)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.hits.WithLabelValues(ResourceTasks)))
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.misses.WithLabelValues(ResourceTasks)))
	})

	t.Run("ошибка загрузки сохраняется, следующее чтение повторяет загрузку", func(t *testing.T) {
		c, metrics := newTestCache(t)
		fetchErr := errors.New("permission denied")
		var calls atomic.Int32

		_, err := c.Read(context.Background(), TeamsKey(), func(ctx context.Context) (any, error) {
			calls.Add(1)
			return nil, fetchErr
		})
		require.ErrorIs(t, err, fetchErr)

		snapshot := c.Peek(TeamsKey())
		assert.Equal(t, StateErrored, snapshot.State)
		assert.Equal(t, fetchErr, snapshot.Err)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.fetchErrors.WithLabelValues(ResourceTeams)))

		value, err := c.Read(context.Background(), TeamsKey(), countingFetcher(&calls, "teams"))
		require.NoError(t, err)
		assert.Equal(t, "teams", value)
		assert.Equal(t, int32(2), calls.Load())
		assert.Nil(t, c.Peek(TeamsKey()).Err)
	})
}

func TestCache_Read_Deduplication(t *testing.T) {
	c, _ := newTestCache(t)

	const readers = 10
	var calls atomic.Int32
	release := make(chan struct{})

	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return []string{"k1", "k2"}, nil
	}

	var wg sync.WaitGroup
	results := make([]any, readers)
	errs := make([]error, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Read(context.Background(), TasksKey("t1"), fetch)
		}(i)
	}

	require.Eventually(t, func() bool {
		return c.Peek(TasksKey("t1")).State == StateLoading
	}, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "одна загрузка на ключ")
	for i := 0; i < readers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, []string{"k1", "k2"}, results[i])
	}
}

func TestCache_Read_SharedError(t *testing.T) {
	c, _ := newTestCache(t)

	release := make(chan struct{})
	fetchErr := errors.New("network error")
	var calls atomic.Int32

	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return nil, fetchErr
	}

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Read(context.Background(), StatsKey("t1"), fetch)
		}(i)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, err := range errs {
		assert.ErrorIs(t, err, fetchErr)
	}
}

func TestCache_Invalidate(t *testing.T) {
	t.Run("свежая запись становится устаревшей и перезагружается", func(t *testing.T) {
		c, metrics := newTestCache(t)
		var calls atomic.Int32

		_, err := c.Read(context.Background(), TasksKey("t1"), countingFetcher(&calls, "before"))
		require.NoError(t, err)

		c.Invalidate(TasksKey("t1"))

		snapshot := c.Peek(TasksKey("t1"))
		assert.Equal(t, StateStale, snapshot.State)
		assert.Equal(t, "before", snapshot.Value, "последнее значение сохраняется")
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.invalidations.WithLabelValues(ResourceTasks)))

		value, err := c.Read(context.Background(), TasksKey("t1"), countingFetcher(&calls, "after"))
		require.NoError(t, err)
		assert.Equal(t, "after", value)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("шаблон покрывает только совпадающие ключи", func(t *testing.T) {
		c, _ := newTestCache(t)
		var calls atomic.Int32
		ctx := context.Background()

		for _, key := range []Key{TeamsKey(), TeamMembersKey("t1"), TasksKey("t1")} {
			_, err := c.Read(ctx, key, countingFetcher(&calls, key.String()))
			require.NoError(t, err)
		}

		c.Invalidate(TeamsKey())

		assert.Equal(t, StateStale, c.Peek(TeamsKey()).State)
		assert.Equal(t, StateStale, c.Peek(TeamMembersKey("t1")).State)
		assert.Equal(t, StateFresh, c.Peek(TasksKey("t1")).State)
	})

	t.Run("загрузка, начатая до инвалидации, сохраняется как устаревшая", func(t *testing.T) {
		c, _ := newTestCache(t)
		release := make(chan struct{})
		var calls atomic.Int32

		done := make(chan any)
		go func() {
			value, _ := c.Read(context.Background(), TasksKey("t1"), func(ctx context.Context) (any, error) {
				calls.Add(1)
				<-release
				return "old", nil
			})
			done <- value
		}()

		require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
		c.Invalidate(TasksKey("t1"))
		close(release)

		assert.Equal(t, "old", <-done, "ожидающий получает результат своей загрузки")
		assert.Equal(t, StateStale, c.Peek(TasksKey("t1")).State)

		value, err := c.Read(context.Background(), TasksKey("t1"), countingFetcher(&calls, "new"))
		require.NoError(t, err)
		assert.Equal(t, "new", value)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("чтение после инвалидации не присоединяется к старой загрузке", func(t *testing.T) {
		c, _ := newTestCache(t)
		releaseOld := make(chan struct{})
		var calls atomic.Int32

		oldDone := make(chan struct{})
		go func() {
			defer close(oldDone)
			_, _ = c.Read(context.Background(), TasksKey("t1"), func(ctx context.Context) (any, error) {
				calls.Add(1)
				<-releaseOld
				return "old", nil
			})
		}()
		require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

		c.Invalidate(TasksKey("t1"))

		value, err := c.Read(context.Background(), TasksKey("t1"), countingFetcher(&calls, "new"))
		require.NoError(t, err)
		assert.Equal(t, "new", value)

		close(releaseOld)
		<-oldDone

		snapshot := c.Peek(TasksKey("t1"))
		assert.Equal(t, StateFresh, snapshot.State)
		assert.Equal(t, "new", snapshot.Value, "поздний результат старой загрузки не перезаписывает новый")
	})

	t.Run("подписчики получают инвалидированные ключи", func(t *testing.T) {
		c, _ := newTestCache(t)
		var calls atomic.Int32
		_, err := c.Read(context.Background(), LogsKey("t1"), countingFetcher(&calls, "logs"))
		require.NoError(t, err)

		var received []Key
		unsubscribe := c.OnInvalidate(func(key Key) { received = append(received, key) })

		c.Invalidate(LogsKey("t1"))
		unsubscribe()
		c.Invalidate(LogsKey("t1"))

		require.Len(t, received, 1)
		assert.Equal(t, "logs:t1", received[0].String())
	})
}

func TestCache_RemoveAndReset(t *testing.T) {
	c, _ := newTestCache(t)
	var calls atomic.Int32
	ctx := context.Background()

	_, _ = c.Read(ctx, TeamsKey(), countingFetcher(&calls, "teams"))
	_, _ = c.Read(ctx, TeamMembersKey("t1"), countingFetcher(&calls, "members"))
	_, _ = c.Read(ctx, StatsKey("t1"), countingFetcher(&calls, "stats"))

	c.Remove(TeamsKey())

	assert.Equal(t, StateAbsent, c.Peek(TeamsKey()).State)
	assert.Equal(t, StateAbsent, c.Peek(TeamMembersKey("t1")).State)
	assert.Equal(t, StateFresh, c.Peek(StatsKey("t1")).State)

	c.Reset()

	assert.Equal(t, StateAbsent, c.Peek(StatsKey("t1")).State)
}

func TestGet(t *testing.T) {
	c, _ := newTestCache(t)

	type team struct{ Name string }
	teams, err := Get(context.Background(), c, TeamsKey(), func(ctx context.Context) ([]team, error) {
		return []team{{Name: "Acme"}}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Acme", teams[0].Name)

	_, err = Get(context.Background(), c, TeamKey("t9"), func(ctx context.Context) (*team, error) {
		return nil, errors.New("team not found")
	})
	assert.EqualError(t, err, "team not found")
}

func TestNewMetrics_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewMetrics(reg)
	second := NewMetrics(reg)

	first.hits.WithLabelValues(ResourceTeams).Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.hits.WithLabelValues(ResourceTeams)))
}
