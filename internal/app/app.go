package app

import (
	"sync"

	"github.com/bagdasarian/team-dashboard/internal/cache"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/bagdasarian/team-dashboard/internal/repository"
	"github.com/bagdasarian/team-dashboard/internal/service"
	"github.com/bagdasarian/team-dashboard/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Identity - источник текущего пользователя с потоком его смены (auth.Service)
type Identity interface {
	service.Identity
	Subscribe(listener func(*domain.User)) func()
}

type Deps struct {
	Teams       repository.TeamRepository
	Memberships repository.MembershipRepository
	Users       repository.UserRepository
	Tasks       repository.TaskRepository
	Meetings    repository.MeetingRepository
	Logs        repository.LogRepository

	Identity   Identity
	Registerer prometheus.Registerer
	Logger     *zap.Logger
	// NotificationLimit - сколько последних уведомлений хранить для опроса
	NotificationLimit int
}

// App - явный контекст клиента: кэш, активная команда, координатор мутаций и сервисы.
// Создается один раз на процесс, освобождается через Close.
type App struct {
	Cache    *cache.Cache
	Session  *session.Session
	Notifier *service.LogNotifier

	Teams    service.TeamService
	Tasks    service.TaskService
	Meetings service.MeetingService
	Logs     service.LogService
	Stats    service.StatsService
	Users    service.UserService

	identity Identity
	logger   *zap.Logger

	mu      sync.Mutex
	closers []func()
	closed  bool
}

func New(deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := cache.New(cache.NewMetrics(deps.Registerer), logger.Named("cache"))
	sess := session.New(logger.Named("session"))
	notifier := service.NewLogNotifier(logger.Named("notifier"), deps.NotificationLimit)
	coordinator := service.NewCoordinator(c, notifier, logger)

	a := &App{
		Cache:    c,
		Session:  sess,
		Notifier: notifier,
		Teams: service.NewTeamService(
			deps.Teams, deps.Memberships, c, coordinator, deps.Identity, sess, logger.Named("saga"),
		),
		Tasks:    service.NewTaskService(deps.Tasks, c, coordinator, deps.Identity, sess),
		Meetings: service.NewMeetingService(deps.Meetings, c, coordinator, deps.Identity, sess),
		Logs:     service.NewLogService(deps.Logs, c, coordinator, deps.Identity, sess),
		Stats: service.NewStatsService(
			deps.Tasks, deps.Meetings, deps.Logs, deps.Memberships, c, deps.Identity, sess,
		),
		Users:    service.NewUserService(deps.Users, c, deps.Identity),
		identity: deps.Identity,
		logger:   logger,
	}

	sess.SetUser(deps.Identity.CurrentUser())
	a.track(deps.Identity.Subscribe(a.onUserChanged))

	return a
}

// onUserChanged: смена пользователя сбрасывает активную команду и все закэшированные данные
func (a *App) onUserChanged(user *domain.User) {
	previous := a.Session.User()
	a.Session.SetUser(user)

	if previous != nil && user != nil && previous.ID == user.ID {
		return
	}
	a.Cache.Reset()

	if user == nil {
		a.logger.Info("user signed out, client state cleared")
		return
	}
	a.logger.Info("user changed, client state cleared", zap.String("user_id", user.ID))
}

// ActiveTeam возвращает активную команду или nil
func (a *App) ActiveTeam() *domain.Team {
	return a.Session.ActiveTeam()
}

func (a *App) SetActiveTeam(teamID string) error {
	return a.Session.SetActiveTeam(teamID)
}

func (a *App) CurrentUser() *domain.User {
	return a.identity.CurrentUser()
}

// Close отписывает все слушатели, закрывает выданные Query и очищает кэш. Повторный вызов ничего не делает.
func (a *App) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
	a.Cache.Reset()
	a.logger.Info("app closed")
}

func (a *App) track(closer func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		closer()
		return
	}
	a.closers = append(a.closers, closer)
}
