package cache

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// State - состояние свежести записи
type State int

const (
	StateAbsent State = iota
	StateFresh
	StateStale
	StateLoading
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	case StateLoading:
		return "loading"
	case StateErrored:
		return "errored"
	}
	return "absent"
}

// Fetcher загружает значение записи из бэкенда
type Fetcher func(ctx context.Context) (any, error)

// Snapshot - копия записи на момент вызова Peek
type Snapshot struct {
	State      State
	Value      any
	HasValue   bool
	Err        error
	Generation uint64
}

type entry struct {
	key        Key
	value      any
	hasValue   bool
	err        error
	state      State
	generation uint64
	// поколение, в котором был сохранен последний результат загрузки
	resultGeneration uint64
}

// Cache - кэш запросов с дедупликацией загрузок по ключу.
// Все изменения записей выполняются под мьютексом, загрузки выполняются вне его.
type Cache struct {
	mu        sync.Mutex
	entries   map[string]*entry
	listeners map[int]func(Key)
	nextID    int

	group   singleflight.Group
	metrics *Metrics
	logger  *zap.Logger
}

func New(metrics *Metrics, logger *zap.Logger) *Cache {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Cache{
		entries:   make(map[string]*entry),
		listeners: make(map[int]func(Key)),
		metrics:   metrics,
		logger:    logger,
	}
}

// Read возвращает свежее значение без обращения к бэкенду.
// Иначе запускает загрузку; параллельные чтения одного ключа ждут одну и ту же загрузку.
func (c *Cache) Read(ctx context.Context, key Key, fetch Fetcher) (any, error) {
	name := key.String()

	c.mu.Lock()
	e := c.lookup(key)
	if e.state == StateFresh {
		value := e.value
		c.mu.Unlock()
		c.metrics.hits.WithLabelValues(key.Resource).Inc()
		return value, nil
	}
	c.mu.Unlock()

	ch := c.group.DoChan(name, func() (any, error) {
		return c.load(ctx, key, fetch)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) load(ctx context.Context, key Key, fetch Fetcher) (any, error) {
	name := key.String()

	c.mu.Lock()
	e := c.lookup(key)
	if e.state == StateFresh {
		// предыдущая загрузка завершилась между проверкой в Read и входом в группу
		value := e.value
		c.mu.Unlock()
		c.metrics.hits.WithLabelValues(key.Resource).Inc()
		return value, nil
	}
	e.state = StateLoading
	generation := e.generation
	c.mu.Unlock()

	c.metrics.misses.WithLabelValues(key.Resource).Inc()
	c.logger.Debug("cache fetch started", zap.String("key", name))

	// загрузку не прерываем, если первый ожидающий ушел
	value, err := fetch(context.WithoutCancel(ctx))

	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.entries[name]
	if !ok || current != e {
		// запись удалена во время загрузки
		return value, err
	}

	if err != nil {
		c.metrics.fetchErrors.WithLabelValues(key.Resource).Inc()
		c.logger.Debug("cache fetch failed", zap.String("key", name), zap.Error(err))
	}

	if e.generation != generation {
		// инвалидация во время загрузки: результат сохраняется как устаревший
		if e.state == StateLoading || e.resultGeneration > generation {
			return value, err
		}
		if err == nil {
			e.value = value
			e.hasValue = true
		}
		e.state = StateStale
		e.resultGeneration = generation
		return value, err
	}

	e.resultGeneration = generation
	if err != nil {
		e.state = StateErrored
		e.err = err
		return value, err
	}

	e.value = value
	e.hasValue = true
	e.err = nil
	e.state = StateFresh
	return value, nil
}

// lookup возвращает запись ключа, создавая ее при отсутствии. Вызывается под c.mu.
func (c *Cache) lookup(key Key) *entry {
	name := key.String()
	e, ok := c.entries[name]
	if !ok {
		e = &entry{key: key, state: StateAbsent}
		c.entries[name] = e
	}
	return e
}

// Invalidate помечает устаревшими все записи, покрываемые шаблоном.
// Значения не перезагружаются; следующее чтение выполнит новую загрузку.
func (c *Cache) Invalidate(pattern Key) {
	c.mu.Lock()
	matched := make([]Key, 0)
	for name, e := range c.entries {
		if !pattern.Matches(e.key) {
			continue
		}
		e.generation++
		e.state = StateStale
		c.group.Forget(name)
		matched = append(matched, e.key)
		c.metrics.invalidations.WithLabelValues(e.key.Resource).Inc()
	}
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	c.logger.Debug("cache invalidated",
		zap.String("pattern", pattern.String()),
		zap.Int("entries", len(matched)),
	)

	for _, key := range matched {
		for _, listener := range listeners {
			listener(key)
		}
	}
}

// Remove удаляет записи, покрываемые шаблоном
func (c *Cache) Remove(pattern Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name, e := range c.entries {
		if pattern.Matches(e.key) {
			delete(c.entries, name)
			c.group.Forget(name)
		}
	}
}

// Reset удаляет все записи
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for name := range c.entries {
		c.group.Forget(name)
	}
	c.entries = make(map[string]*entry)
}

func (c *Cache) Peek(key Key) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return Snapshot{State: StateAbsent}
	}
	return Snapshot{
		State:      e.state,
		Value:      e.value,
		HasValue:   e.hasValue,
		Err:        e.err,
		Generation: e.generation,
	}
}

// OnInvalidate подписывает listener на инвалидацию записей; возвращает функцию отписки
func (c *Cache) OnInvalidate(listener func(Key)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = listener

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Cache) snapshotListeners() []func(Key) {
	listeners := make([]func(Key), 0, len(c.listeners))
	for _, listener := range c.listeners {
		listeners = append(listeners, listener)
	}
	return listeners
}

// Get - типизированная обертка над Read
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	value, err := c.Read(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		panic(fmt.Sprintf("cache: key %s holds %T, not the requested type", key, value))
	}
	return typed, nil
}
