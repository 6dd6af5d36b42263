package item

import (
	"context"
	"fmt"

	"github.com/giftledger/giftledger/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	ListByRecipient(ctx context.Context, recipientId int64) ([]Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, itemId int64, patch Patch) (Item, error)
	Delete(ctx context.Context, itemId int64) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewItemService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) ListByRecipient(ctx context.Context, recipientId int64) ([]Item, error) {
	return s.repo.ListByRecipient(ctx, recipientId)
}

// Create inserts a new gift item. The "add idea" affordance in the UI always
// calls this with status=idea, cost=0 and empty name/notes; other callers may
// pass any valid status.
func (s *ServiceImpl) Create(ctx context.Context, item Item) (Item, error) {
	if _, err := ParseStatus(string(item.Status)); err != nil {
		return Item{}, err
	}

	id, err := s.repo.Store(ctx, item)
	if err != nil {
		return Item{}, err
	}
	item.Id = id

	s.publishChanged(ctx, item.Id, item.RecipientId)
	return item, nil
}

func (s *ServiceImpl) Update(ctx context.Context, itemId int64, patch Patch) (Item, error) {
	if patch.Status != nil {
		if _, err := ParseStatus(string(*patch.Status)); err != nil {
			return Item{}, err
		}
	}

	updated, err := s.repo.Update(ctx, itemId, patch)
	if err != nil {
		return Item{}, err
	}
	if !updated {
		return Item{}, fmt.Errorf("could not update item %d: %w", itemId, ErrItemNotFound)
	}

	item, err := s.repo.Get(ctx, itemId)
	if err != nil {
		return Item{}, err
	}

	s.publishChanged(ctx, item.Id, item.RecipientId)
	return item, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, itemId int64) error {
	// Read before delete so the change event can carry the owning recipient.
	item, err := s.repo.Get(ctx, itemId)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, itemId)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("could not delete item %d: %w", itemId, ErrItemNotFound)
	}

	s.publishChanged(ctx, item.Id, item.RecipientId)
	return nil
}

// publishChanged notifies live-query subscribers after a committed write.
// The write has already happened, so a failing subscriber only means a stale
// push, never lost data; re-saving the item delivers a fresh one.
func (s *ServiceImpl) publishChanged(ctx context.Context, itemId, recipientId int64) {
	err := s.eventBus.Publish(event_bus.NewEvent(
		ctx,
		event_bus.ItemChangedEvent,
		event_bus.ItemChanged{Id: itemId, RecipientId: recipientId},
	))
	if err != nil {
		log.Errorf("failed to publish item change event: %v", err)
	}
}
