package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	Store(ctx context.Context, user User) (User, error)
	Get(ctx context.Context, userId int64) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, user User) (User, error) {
	query := `INSERT INTO account (email, display_name, photo_url) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRow(ctx, query, strings.ToLower(user.Email), user.DisplayName, user.PhotoUrl).Scan(&user.Id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return User{}, err
	}
	return user, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int64) (User, error) {
	query := `SELECT email, display_name, photo_url FROM account WHERE id = $1`
	user := User{Id: userId}
	err := r.db.QueryRow(ctx, query, userId).Scan(&user.Email, &user.DisplayName, &user.PhotoUrl)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		err := fmt.Errorf("error scanning row: %w", err)
		log.Error(err)
		return User{}, err
	}
	return user, nil
}

func (r *RepositoryImpl) FindByEmail(ctx context.Context, email string) (User, error) {
	query := `SELECT id, email, display_name, photo_url FROM account WHERE email = $1`
	var user User
	err := r.db.QueryRow(ctx, query, strings.ToLower(email)).
		Scan(&user.Id, &user.Email, &user.DisplayName, &user.PhotoUrl)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		err := fmt.Errorf("error scanning row: %w", err)
		log.Error(err)
		return User{}, err
	}
	return user, nil
}
