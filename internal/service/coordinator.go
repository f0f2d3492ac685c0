package service

import (
	"context"

	"github.com/bagdasarian/team-dashboard/internal/cache"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/bagdasarian/team-dashboard/internal/logger"
	"go.uber.org/zap"
)

// Mutation описывает одну операцию создания, изменения или удаления
type Mutation[T any] struct {
	// Name используется в уведомлениях и логах
	Name     string
	Validate func() error
	Call     func(ctx context.Context) (T, error)
	// Invalidate возвращает ключи (шаблоны), затронутые успешной мутацией
	Invalidate func(result T) []cache.Key
	// After выполняется после инвалидации, до уведомления об успехе
	After   func(result T)
	Success string
}

// Coordinator - единая точка прохождения мутаций: проверка, вызов бэкенда,
// инвалидация кэша строго после подтверждения бэкенда, уведомление
type Coordinator struct {
	cache    *cache.Cache
	notifier Notifier
	logger   *zap.Logger
}

func NewCoordinator(c *cache.Cache, notifier Notifier, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		cache:    c,
		notifier: notifier,
		logger:   logger,
	}
}

// Run выполняет мутацию. Ошибка проверки возвращается без обращения к бэкенду и без уведомления;
// ошибка бэкенда приводится к доменной, кэш при этом не меняется.
func Run[T any](ctx context.Context, c *Coordinator, m Mutation[T]) (T, error) {
	var zero T
	log := logger.WithContext(ctx, c.logger).With(zap.String("operation", m.Name))

	if m.Validate != nil {
		if err := m.Validate(); err != nil {
			log.Debug("mutation rejected", zap.Error(err))
			return zero, err
		}
	}

	result, err := m.Call(ctx)
	if err != nil {
		err = domain.NewRemoteError(err)
		c.notifier.Failure(ctx, m.Name, err)
		return zero, err
	}

	if m.Invalidate != nil {
		for _, key := range m.Invalidate(result) {
			c.cache.Invalidate(key)
		}
	}
	if m.After != nil {
		m.After(result)
	}

	if m.Success != "" {
		c.notifier.Success(ctx, m.Name, m.Success)
	}
	log.Debug("mutation committed")
	return result, nil
}
