package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/giftledger/giftledger/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionCookieName is the http-only cookie carrying the session token.
const SessionCookieName = "giftledger_session"

type Session struct {
	Token     string
	UserId    int64
	ExpiresAt time.Time
}

type SessionRepository interface {
	Store(ctx context.Context, session Session) error
	Find(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

type SessionRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewSessionRepo(db *pgxpool.Pool) *SessionRepositoryImpl {
	return &SessionRepositoryImpl{db: db}
}

func (r *SessionRepositoryImpl) Store(ctx context.Context, session Session) error {
	query := `INSERT INTO session (token, account_id, expires_at) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, session.Token, session.UserId, session.ExpiresAt)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *SessionRepositoryImpl) Find(ctx context.Context, token string) (Session, error) {
	query := `SELECT account_id, expires_at FROM session WHERE token = $1`
	session := Session{Token: token}
	err := r.db.QueryRow(ctx, query, token).Scan(&session.UserId, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		err := fmt.Errorf("error scanning row: %w", err)
		log.Error(err)
		return Session{}, err
	}
	return session, nil
}

func (r *SessionRepositoryImpl) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM session WHERE token = $1`
	_, err := r.db.Exec(ctx, query, token)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

// SessionService issues and resolves bearer session tokens.
type SessionService struct {
	repo  SessionRepository
	clock utils.Clock
	ttl   time.Duration
}

func NewSessionService(repo SessionRepository, clock utils.Clock, ttl time.Duration) *SessionService {
	return &SessionService{repo: repo, clock: clock, ttl: ttl}
}

func (s *SessionService) Create(ctx context.Context, userId int64) (Session, error) {
	session := Session{
		Token:     uuid.New().String(),
		UserId:    userId,
		ExpiresAt: s.clock.Now().Add(s.ttl),
	}
	if err := s.repo.Store(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Resolve maps a token to the owning user id. Expired sessions are removed
// and reported as not found.
func (s *SessionService) Resolve(ctx context.Context, token string) (int64, error) {
	session, err := s.repo.Find(ctx, token)
	if err != nil {
		return 0, err
	}
	if session.ExpiresAt.Before(s.clock.Now()) {
		if err := s.repo.Delete(ctx, token); err != nil {
			log.Warnf("failed to delete expired session: %v", err)
		}
		return 0, ErrSessionNotFound
	}
	return session.UserId, nil
}

func (s *SessionService) Revoke(ctx context.Context, token string) error {
	return s.repo.Delete(ctx, token)
}
