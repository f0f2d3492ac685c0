package service

import (
	"context"

	"github.com/bagdasarian/team-dashboard/internal/cache"
	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/bagdasarian/team-dashboard/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
	cache    *cache.Cache
	identity Identity
}

func NewUserService(userRepo repository.UserRepository, c *cache.Cache, identity Identity) UserService {
	return &userService{
		userRepo: userRepo,
		cache:    c,
		identity: identity,
	}
}

// GetUsers возвращает всех пользователей (выбор нового участника команды)
func (s *userService) GetUsers(ctx context.Context) ([]*domain.User, error) {
	if s.identity.CurrentUser() == nil {
		return nil, domain.ErrSession
	}
	users, err := cache.Get(ctx, s.cache, cache.UsersKey(), s.userRepo.List)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if s.identity.CurrentUser() == nil {
		return nil, domain.ErrSession
	}
	return cache.Get(ctx, s.cache, cache.NewKey(cache.ResourceUsers, id), func(ctx context.Context) (*domain.User, error) {
		return s.userRepo.GetByID(ctx, id)
	})
}
