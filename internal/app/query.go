package app

import (
	"context"
	"errors"
	"sync"

	"github.com/bagdasarian/team-dashboard/internal/cache"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"go.uber.org/zap"
)

var ErrClosed = errors.New("accessor is closed")

type queryConfig struct {
	watch      []cache.Key
	followTeam bool
}

type QueryOption func(*queryConfig)

// WatchKeys перезагружает Query, когда инвалидируется запись, покрываемая одним из шаблонов
func WatchKeys(patterns ...cache.Key) QueryOption {
	return func(c *queryConfig) {
		c.watch = append(c.watch, patterns...)
	}
}

// FollowActiveTeam перезагружает Query при смене активной команды
func FollowActiveTeam() QueryOption {
	return func(c *queryConfig) {
		c.followTeam = true
	}
}

// Query - наблюдаемое чтение: значение, признак загрузки, ошибка и ручная перезагрузка.
// После Close результаты загрузок отбрасываются; начатые запросы к бэкенду не прерываются.
type Query[T any] struct {
	fetch  func(ctx context.Context) (T, error)
	logger *zap.Logger

	mu       sync.Mutex
	value    T
	hasValue bool
	err      error
	loading  bool
	closed   bool
	// каждая загрузка получает номер; применяется только результат последней
	version uint64
	stops   []func()
}

// NewQuery создает Query и сразу запускает первую загрузку в фоне
func NewQuery[T any](a *App, fetch func(ctx context.Context) (T, error), opts ...QueryOption) *Query[T] {
	var cfg queryConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	q := &Query[T]{
		fetch:  fetch,
		logger: a.logger.Named("query"),
	}

	if len(cfg.watch) > 0 {
		q.stops = append(q.stops, a.Cache.OnInvalidate(func(key cache.Key) {
			for _, pattern := range cfg.watch {
				if pattern.Matches(key) {
					q.background()
					return
				}
			}
		}))
	}
	if cfg.followTeam {
		q.stops = append(q.stops, a.Session.Subscribe(func(*domain.Team) {
			q.background()
		}))
	}

	a.track(q.Close)
	q.background()
	return q
}

// Value возвращает последнее загруженное значение; ok=false, если загрузок еще не было
// или последняя загрузка завершилась ошибкой
func (q *Query[T]) Value() (value T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.value, q.hasValue
}

func (q *Query[T]) Loading() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loading
}

func (q *Query[T]) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

// Refetch загружает значение заново и применяет его, если Query еще открыт и загрузка последняя
func (q *Query[T]) Refetch(ctx context.Context) (T, error) {
	version, err := q.begin()
	if err != nil {
		var zero T
		return zero, err
	}
	return q.run(ctx, version)
}

// begin открывает новую загрузку под q.mu: Loading() становится true до обращения к бэкенду
func (q *Query[T]) begin() (uint64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return 0, ErrClosed
	}
	q.version++
	q.loading = true
	return q.version, nil
}

func (q *Query[T]) run(ctx context.Context, version uint64) (T, error) {
	value, err := q.fetch(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || version != q.version {
		return value, err
	}
	q.loading = false
	if err != nil {
		// при ошибке прежнее значение не показывается
		var zero T
		q.value = zero
		q.hasValue = false
		q.err = err
		return value, err
	}
	q.value = value
	q.hasValue = true
	q.err = nil
	return value, nil
}

// Close отписывает Query от кэша и сессии; значение после этого не меняется
func (q *Query[T]) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.loading = false
	stops := q.stops
	q.stops = nil
	q.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
}

func (q *Query[T]) background() {
	version, err := q.begin()
	if err != nil {
		return
	}
	go func() {
		if _, err := q.run(context.Background(), version); err != nil {
			q.logger.Debug("query refetch failed", zap.Error(err))
		}
	}()
}
