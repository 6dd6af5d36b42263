package user

import (
	"context"
	"errors"
)

type Service interface {
	GetUser(ctx context.Context, userId int64) (User, error)
	FindOrCreate(ctx context.Context, user User) (User, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewUserService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetUser(ctx context.Context, userId int64) (User, error) {
	return s.repo.Get(ctx, userId)
}

// FindOrCreate resolves a signed-in Google profile to an account, creating it
// on first sign-in. Matching is by lower-cased email. Authorization (the
// allow-list) happens BEFORE this call; once here, the account is welcome.
func (s *ServiceImpl) FindOrCreate(ctx context.Context, user User) (User, error) {
	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}
	return s.repo.Store(ctx, user)
}
