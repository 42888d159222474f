package service

import (
	"context"

	"github.com/pickhacks/portal/internal/domain/entity"
)

type UserStorage interface {
	Get(ctx context.Context, id string) (*entity.User, error)
}

type UserService struct {
	userStorage UserStorage
}

func NewUserService(userStorage UserStorage) *UserService {
	return &UserService{
		userStorage: userStorage,
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.userStorage.Get(ctx, id)
}
