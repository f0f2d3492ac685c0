package service

import (
	"context"
	"testing"

	"github.com/bagdasarian/team-dashboard/internal/cache"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/bagdasarian/team-dashboard/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubIdentity struct {
	user *domain.User
}

func (s *stubIdentity) CurrentUser() *domain.User {
	return s.user
}

type serviceEnv struct {
	cache       *cache.Cache
	session     *session.Session
	identity    *stubIdentity
	notifier    *LogNotifier
	coordinator *Coordinator
}

// newServiceEnv - пользователь u1 с командами t1 (активна) и t2
func newServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()

	logger := zap.NewNop()
	c := cache.New(cache.NewMetrics(prometheus.NewRegistry()), logger)
	sess := session.New(logger)
	identity := &stubIdentity{user: &domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}}
	sess.SetUser(identity.user)
	sess.SyncTeams([]*domain.Team{{ID: "t1", Name: "Acme"}, {ID: "t2", Name: "Beta"}})
	notifier := NewLogNotifier(logger, 10)

	return &serviceEnv{
		cache:       c,
		session:     sess,
		identity:    identity,
		notifier:    notifier,
		coordinator: NewCoordinator(c, notifier, logger),
	}
}

func (e *serviceEnv) signOut() {
	e.identity.user = nil
	e.session.SetUser(nil)
}

func (e *serviceEnv) lastNotification() Notification {
	items := e.notifier.Recent()
	if len(items) == 0 {
		return Notification{}
	}
	return items[len(items)-1]
}

// warmKey загружает в кэш фиктивное значение, чтобы проверить последующую инвалидацию
func warmKey(t *testing.T, env *serviceEnv, key cache.Key) {
	t.Helper()

	_, err := env.cache.Read(context.Background(), key, func(context.Context) (any, error) {
		return "warm", nil
	})
	require.NoError(t, err)
	require.Equal(t, cache.StateFresh, env.cache.Peek(key).State)
}
