package service

import (
	"context"

	"github.com/bagdasarian/team-dashboard/internal/domain"
)

type UserService interface {
	GetUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}
