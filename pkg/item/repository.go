package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrItemNotFound = errors.New("item not found")
var ErrInvalidStatus = errors.New("invalid item status")

type Repository interface {
	Store(ctx context.Context, item Item) (int64, error)
	Get(ctx context.Context, itemId int64) (Item, error)
	ListByRecipient(ctx context.Context, recipientId int64) ([]Item, error)
	ListAll(ctx context.Context) ([]Item, error)
	Update(ctx context.Context, itemId int64, patch Patch) (bool, error)
	Delete(ctx context.Context, itemId int64) (bool, error)
	DeleteByRecipient(ctx context.Context, recipientId int64) (int64, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewItemRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, item Item) (int64, error) {
	query := `INSERT INTO item (recipient_id, name, cost, status, notes)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var lastInsertID int64
	err := r.db.QueryRow(ctx, query,
		item.RecipientId,
		item.Name,
		item.Cost,
		string(item.Status),
		item.Notes,
	).Scan(&lastInsertID)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}

	return lastInsertID, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, itemId int64) (Item, error) {
	query := `SELECT recipient_id, name, cost, status, notes FROM item WHERE id = $1`

	item := Item{Id: itemId}
	var status string
	err := r.db.QueryRow(ctx, query, itemId).
		Scan(&item.RecipientId, &item.Name, &item.Cost, &status, &item.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		err := fmt.Errorf("error scanning row: %w", err)
		log.Error(err)
		return Item{}, err
	}
	item.Status = Status(status)

	return item, nil
}

func (r *RepositoryImpl) ListByRecipient(ctx context.Context, recipientId int64) ([]Item, error) {
	query := `SELECT id, recipient_id, name, cost, status, notes FROM item
				WHERE recipient_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, recipientId)
	if err != nil {
		err := fmt.Errorf("could not query items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *RepositoryImpl) ListAll(ctx context.Context) ([]Item, error) {
	query := `SELECT id, recipient_id, name, cost, status, notes FROM item ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// Update patches only the fields named in patch; nil fields keep their stored
// value (COALESCE against a NULL parameter).
func (r *RepositoryImpl) Update(ctx context.Context, itemId int64, patch Patch) (bool, error) {
	query := `UPDATE item SET
				  name = COALESCE($2, name),
				  cost = COALESCE($3, cost),
				  status = COALESCE($4, status),
				  notes = COALESCE($5, notes)
			  WHERE id = $1`

	var status *string
	if patch.Status != nil {
		s := string(*patch.Status)
		status = &s
	}
	result, err := r.db.Exec(ctx, query, itemId, patch.Name, patch.Cost, status, patch.Notes)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}

	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, itemId int64) (bool, error) {
	query := `DELETE FROM item WHERE id = $1`
	result, err := r.db.Exec(ctx, query, itemId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

// DeleteByRecipient removes every item owned by the recipient. Deleting zero
// rows is not an error, so a retried cascade is a no-op for already-deleted
// items.
func (r *RepositoryImpl) DeleteByRecipient(ctx context.Context, recipientId int64) (int64, error) {
	query := `DELETE FROM item WHERE recipient_id = $1`
	result, err := r.db.Exec(ctx, query, recipientId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return result.RowsAffected(), nil
}

func scanItems(rows pgx.Rows) ([]Item, error) {
	var items []Item
	for rows.Next() {
		var item Item
		var status string
		if err := rows.Scan(&item.Id, &item.RecipientId, &item.Name, &item.Cost, &status, &item.Notes); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		item.Status = Status(status)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return items, nil
}
