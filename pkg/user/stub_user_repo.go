package user

import (
	"context"
	"strings"
)

type RepositoryStub struct {
	nextId int64
	users  map[int64]User
}

func NewStubUserRepo() *RepositoryStub {
	return &RepositoryStub{users: map[int64]User{}}
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.users = map[int64]User{}
}

func (s *RepositoryStub) Store(ctx context.Context, user User) (User, error) {
	s.nextId++
	user.Id = s.nextId
	user.Email = strings.ToLower(user.Email)
	s.users[user.Id] = user
	return user, nil
}

func (s *RepositoryStub) Get(ctx context.Context, userId int64) (User, error) {
	if user, exists := s.users[userId]; exists {
		return user, nil
	}
	return User{}, ErrUserNotFound
}

func (s *RepositoryStub) FindByEmail(ctx context.Context, email string) (User, error) {
	for _, user := range s.users {
		if user.Email == strings.ToLower(email) {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}
