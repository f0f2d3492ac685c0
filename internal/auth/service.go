package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/bagdasarian/team-dashboard/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minPasswordLength = 6

// Session - результат успешного входа
type Session struct {
	Token     string
	User      *domain.User
	ExpiresAt time.Time
}

// Service - аутентификация и поток смены пользователя.
// Текущий пользователь один на процесс клиента.
type Service struct {
	users  repository.UserRepository
	store  *SessionStore
	tokens *TokenIssuer
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu        sync.RWMutex
	current   *domain.User
	sessionID string
	listeners map[int]func(*domain.User)
	nextID    int
}

func NewService(
	users repository.UserRepository,
	store *SessionStore,
	tokens *TokenIssuer,
	ttl time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:     users,
		store:     store,
		tokens:    tokens,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
		listeners: make(map[int]func(*domain.User)),
	}
}

func (s *Service) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.NewValidationError("email", "invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, domain.NewValidationError("password", "password must be at least 6 characters")
	}
	if strings.TrimSpace(name) == "" {
		name = strings.Split(email, "@")[0]
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return s.startSession(ctx, user)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, domain.NewValidationError("credentials", "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !checkPassword(password, user.PasswordHash) {
		s.logger.Warn("failed sign in attempt", zap.String("user_id", user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

// SignOut удаляет сессию из Redis и сбрасывает текущего пользователя.
// Если Redis недоступен, пользователь остается текущим.
func (s *Service) SignOut(ctx context.Context) error {
	s.mu.RLock()
	sessionID := s.sessionID
	s.mu.RUnlock()

	if sessionID != "" {
		if err := s.store.Delete(ctx, sessionID); err != nil {
			return domain.NewRemoteError(err)
		}
	}

	s.mu.Lock()
	if s.sessionID != sessionID {
		// за время удаления началась другая сессия
		s.mu.Unlock()
		return nil
	}
	hadUser := s.current != nil
	s.current = nil
	s.sessionID = ""
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if hadUser {
		s.notify(listeners, nil)
	}
	return nil
}

func (s *Service) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Session проверяет токен и сессию в Redis и возвращает пользователя сессии
func (s *Service) Session(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, &domain.DomainError{Code: domain.CodeSession, Message: err.Error(), Err: err}
	}

	data, err := s.store.Get(ctx, claims.SessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, domain.ErrSession
	}
	if err != nil {
		return nil, domain.NewRemoteError(err)
	}
	if data.UserID != claims.UserID {
		return nil, domain.ErrSession
	}

	user, err := s.users.GetByID(ctx, data.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrSession
	}
	return user, err
}

// Restore делает пользователя сессии текущим (например, после перезапуска клиента)
func (s *Service) Restore(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.Session(ctx, token)
	if err != nil {
		return nil, err
	}

	claims, _ := s.tokens.Validate(token)
	s.setCurrent(user, claims.SessionID)
	return user, nil
}

// Subscribe регистрирует слушателя смены пользователя; nil означает выход
func (s *Service) Subscribe(listener func(*domain.User)) func() {
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

func (s *Service) startSession(ctx context.Context, user *domain.User) (*Session, error) {
	sessionID := uuid.NewString()
	now := s.now()

	token, expiresAt, err := s.tokens.Issue(user.ID, sessionID, now)
	if err != nil {
		return nil, err
	}

	data := &SessionData{
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
	}
	if err := s.store.Create(ctx, sessionID, data, s.ttl); err != nil {
		return nil, domain.NewRemoteError(err)
	}

	s.setCurrent(user, sessionID)
	s.logger.Info("session started", zap.String("user_id", user.ID))

	return &Session{
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) setCurrent(user *domain.User, sessionID string) {
	s.mu.Lock()
	s.current = user
	s.sessionID = sessionID
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.notify(listeners, user)
}

func (s *Service) snapshotListeners() []func(*domain.User) {
	listeners := make([]func(*domain.User), 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	return listeners
}

func (s *Service) notify(listeners []func(*domain.User), user *domain.User) {
	for _, listener := range listeners {
		listener(user)
	}
}
