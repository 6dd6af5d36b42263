package auth

import "context"

type SessionRepositoryStub struct {
	sessions map[string]Session
}

func NewStubSessionRepo() *SessionRepositoryStub {
	return &SessionRepositoryStub{sessions: map[string]Session{}}
}

func (s *SessionRepositoryStub) Cleanup() {
	s.sessions = map[string]Session{}
}

func (s *SessionRepositoryStub) Store(ctx context.Context, session Session) error {
	s.sessions[session.Token] = session
	return nil
}

func (s *SessionRepositoryStub) Find(ctx context.Context, token string) (Session, error) {
	if session, exists := s.sessions[token]; exists {
		return session, nil
	}
	return Session{}, ErrSessionNotFound
}

func (s *SessionRepositoryStub) Delete(ctx context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}
