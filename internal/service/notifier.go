package service

import (
	"context"
	"sync"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/logger"
	"go.uber.org/zap"
)

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification - сообщение пользователю о результате мутации
type Notification struct {
	Level     NotificationLevel `json:"level"`
	Operation string            `json:"operation"`
	Message   string            `json:"message"`
	Time      time.Time         `json:"time"`
}

type Notifier interface {
	Success(ctx context.Context, operation, message string)
	Failure(ctx context.Context, operation string, err error)
}

// LogNotifier пишет уведомления в лог и хранит последние limit штук для опроса
type LogNotifier struct {
	logger *zap.Logger
	limit  int

	mu    sync.Mutex
	items []Notification
}

func NewLogNotifier(logger *zap.Logger, limit int) *LogNotifier {
	if limit <= 0 {
		limit = 50
	}
	return &LogNotifier{
		logger: logger,
		limit:  limit,
	}
}

func (n *LogNotifier) Success(ctx context.Context, operation, message string) {
	logger.WithContext(ctx, n.logger).Info(message, zap.String("operation", operation))
	n.push(Notification{
		Level:     NotificationSuccess,
		Operation: operation,
		Message:   message,
		Time:      time.Now(),
	})
}

func (n *LogNotifier) Failure(ctx context.Context, operation string, err error) {
	logger.WithContext(ctx, n.logger).Error("mutation failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	n.push(Notification{
		Level:     NotificationError,
		Operation: operation,
		Message:   err.Error(),
		Time:      time.Now(),
	})
}

// Recent возвращает сохраненные уведомления, новые последними
func (n *LogNotifier) Recent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.items...)
}

func (n *LogNotifier) push(item Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.items = append(n.items, item)
	if len(n.items) > n.limit {
		n.items = n.items[len(n.items)-n.limit:]
	}
}
