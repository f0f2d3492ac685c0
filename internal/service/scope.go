package service

import (
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/bagdasarian/team-dashboard/internal/session"
)

// Identity - источник текущего аутентифицированного пользователя
type Identity interface {
	CurrentUser() *domain.User
}

// scope определяет пользователя и активную команду для операций сервиса
type scope struct {
	identity Identity
	session  *session.Session
}

func (s scope) user() (*domain.User, error) {
	user := s.identity.CurrentUser()
	if user == nil {
		return nil, domain.ErrSession
	}
	return user, nil
}

// activeTeam возвращает активную команду для мутаций; без нее мутация невозможна
func (s scope) activeTeam() (string, error) {
	if _, err := s.user(); err != nil {
		return "", err
	}
	teamID := s.session.ActiveTeamID()
	if teamID == "" {
		return "", domain.ErrNoActiveTeam
	}
	return teamID, nil
}

// readTeam возвращает активную команду для чтения; ok=false означает "данных нет"
func (s scope) readTeam() (teamID string, ok bool, err error) {
	if _, err := s.user(); err != nil {
		return "", false, err
	}
	teamID = s.session.ActiveTeamID()
	return teamID, teamID != "", nil
}
