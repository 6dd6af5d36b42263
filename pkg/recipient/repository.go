package recipient

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrRecipientNotFound = errors.New("recipient not found")
var ErrEmptyName = errors.New("recipient name must not be empty")
var ErrNegativeBudget = errors.New("recipient budget must not be negative")

type Repository interface {
	Store(ctx context.Context, recipient Recipient) (Recipient, error)
	Get(ctx context.Context, recipientId int64) (Recipient, error)
	ListAll(ctx context.Context) ([]Recipient, error)
	Update(ctx context.Context, recipientId int64, patch Patch) (bool, error)
	Delete(ctx context.Context, recipientId int64) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRecipientRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// Store inserts the recipient. The sort order comes from a dedicated sequence,
// so ranks are monotonic and never reused, even when the highest-ranked
// recipient has been deleted in the meantime.
func (r *RepositoryImpl) Store(ctx context.Context, recipient Recipient) (Recipient, error) {
	query := `INSERT INTO recipient (name, budget, sort_order)
				VALUES ($1, $2, nextval('recipient_sort_order_seq'))
				RETURNING id, sort_order`
	err := r.db.QueryRow(ctx, query, recipient.Name, recipient.Budget).
		Scan(&recipient.Id, &recipient.SortOrder)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Recipient{}, err
	}
	return recipient, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, recipientId int64) (Recipient, error) {
	query := `SELECT name, budget, sort_order FROM recipient WHERE id = $1`

	recipient := Recipient{Id: recipientId}
	err := r.db.QueryRow(ctx, query, recipientId).
		Scan(&recipient.Name, &recipient.Budget, &recipient.SortOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Recipient{}, ErrRecipientNotFound
		}
		err := fmt.Errorf("error scanning row: %w", err)
		log.Error(err)
		return Recipient{}, err
	}

	return recipient, nil
}

func (r *RepositoryImpl) ListAll(ctx context.Context) ([]Recipient, error) {
	query := `SELECT id, name, budget, sort_order FROM recipient ORDER BY sort_order`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query recipients: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var recipients []Recipient
	for rows.Next() {
		var recipient Recipient
		if err := rows.Scan(&recipient.Id, &recipient.Name, &recipient.Budget, &recipient.SortOrder); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		recipients = append(recipients, recipient)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return recipients, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, recipientId int64, patch Patch) (bool, error) {
	query := `UPDATE recipient SET
				  name = COALESCE($2, name),
				  budget = COALESCE($3, budget)
			  WHERE id = $1`
	result, err := r.db.Exec(ctx, query, recipientId, patch.Name, patch.Budget)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, recipientId int64) (bool, error) {
	query := `DELETE FROM recipient WHERE id = $1`
	result, err := r.db.Exec(ctx, query, recipientId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
