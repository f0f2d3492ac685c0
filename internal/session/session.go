package session

import (
	"sync"

	"github.com/bagdasarian/team-dashboard/internal/domain"
	"go.uber.org/zap"
)

// Session хранит указатель на активную команду и известный список команд пользователя.
// Указатель всегда либо пуст, либо указывает на команду из последнего загруженного списка.
type Session struct {
	mu        sync.RWMutex
	user      *domain.User
	teams     []*domain.Team
	activeID  string
	listeners map[int]func(*domain.Team)
	nextID    int
	logger    *zap.Logger
}

func New(logger *zap.Logger) *Session {
	return &Session{
		listeners: make(map[int]func(*domain.Team)),
		logger:    logger,
	}
}

// ActiveTeam возвращает активную команду или nil, если команды еще не загружены
func (s *Session) ActiveTeam() *domain.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(s.activeID)
}

func (s *Session) ActiveTeamID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// SetActiveTeam выбирает команду из известного списка; неизвестный id не меняет состояние
func (s *Session) SetActiveTeam(teamID string) error {
	s.mu.Lock()
	team := s.findLocked(teamID)
	if team == nil {
		s.mu.Unlock()
		s.logger.Warn("attempt to select unknown team", zap.String("team_id", teamID))
		return domain.ErrUnknownTeam
	}
	changed := s.activeID != teamID
	s.activeID = teamID
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if changed {
		s.notify(listeners, team)
	}
	return nil
}

// SyncTeams применяет свежий список команд: сбрасывает указатель на исчезнувшую команду
// и выбирает первую команду списка, если указатель пуст
func (s *Session) SyncTeams(teams []*domain.Team) {
	s.mu.Lock()
	previous := s.activeID
	s.teams = append([]*domain.Team(nil), teams...)

	if s.activeID != "" && s.findLocked(s.activeID) == nil {
		s.logger.Info("active team is gone, clearing selection", zap.String("team_id", s.activeID))
		s.activeID = ""
	}
	if s.activeID == "" && len(s.teams) > 0 {
		s.activeID = s.teams[0].ID
	}

	current := s.activeID
	active := s.findLocked(current)
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if previous != current {
		s.notify(listeners, active)
	}
}

// ClearIfActive сбрасывает указатель, если он указывает на teamID.
// Новый выбор произойдет при следующей синхронизации списка.
func (s *Session) ClearIfActive(teamID string) {
	s.mu.Lock()
	if s.activeID != teamID {
		s.mu.Unlock()
		return
	}
	s.activeID = ""
	filtered := make([]*domain.Team, 0, len(s.teams))
	for _, team := range s.teams {
		if team.ID != teamID {
			filtered = append(filtered, team)
		}
	}
	s.teams = filtered
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.notify(listeners, nil)
}

func (s *Session) Teams() []*domain.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.Team(nil), s.teams...)
}

// SetUser меняет пользователя сессии; при смене пользователя список команд и указатель сбрасываются
func (s *Session) SetUser(user *domain.User) {
	s.mu.Lock()
	if sameUser(s.user, user) {
		s.user = user
		s.mu.Unlock()
		return
	}

	hadActive := s.activeID != ""
	s.user = user
	s.teams = nil
	s.activeID = ""
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if hadActive {
		s.notify(listeners, nil)
	}
}

func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Subscribe регистрирует слушателя смены активной команды; возвращает функцию отписки
func (s *Session) Subscribe(listener func(*domain.Team)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = listener

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Session) findLocked(teamID string) *domain.Team {
	if teamID == "" {
		return nil
	}
	for _, team := range s.teams {
		if team.ID == teamID {
			return team
		}
	}
	return nil
}

func (s *Session) snapshotListeners() []func(*domain.Team) {
	listeners := make([]func(*domain.Team), 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	return listeners
}

func (s *Session) notify(listeners []func(*domain.Team), team *domain.Team) {
	for _, listener := range listeners {
		listener(team)
	}
}

func sameUser(a, b *domain.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
