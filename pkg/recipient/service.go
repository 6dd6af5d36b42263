package recipient

import (
	"context"
	"fmt"
	"strings"

	"github.com/giftledger/giftledger/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// ItemRemover is the slice of the item store the cascade needs: a bulk,
// idempotent delete of everything a recipient owns.
type ItemRemover interface {
	DeleteByRecipient(ctx context.Context, recipientId int64) (int64, error)
}

type Service interface {
	Get(ctx context.Context, recipientId int64) (Recipient, error)
	Create(ctx context.Context, name string, budget float64) (Recipient, error)
	Update(ctx context.Context, recipientId int64, patch Patch) (Recipient, error)
	Delete(ctx context.Context, recipientId int64) error
}

type ServiceImpl struct {
	repo        Repository
	itemRemover ItemRemover
	eventBus    *event_bus.EventBus
}

func NewRecipientService(repo Repository, itemRemover ItemRemover, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, itemRemover: itemRemover, eventBus: eventBus}
}

func (s *ServiceImpl) Get(ctx context.Context, recipientId int64) (Recipient, error) {
	return s.repo.Get(ctx, recipientId)
}

func (s *ServiceImpl) Create(ctx context.Context, name string, budget float64) (Recipient, error) {
	if strings.TrimSpace(name) == "" {
		return Recipient{}, ErrEmptyName
	}
	if budget < 0 {
		return Recipient{}, ErrNegativeBudget
	}

	created, err := s.repo.Store(ctx, Recipient{Name: name, Budget: budget})
	if err != nil {
		return Recipient{}, err
	}

	s.publishChanged(ctx, created.Id)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, recipientId int64, patch Patch) (Recipient, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return Recipient{}, ErrEmptyName
	}
	if patch.Budget != nil && *patch.Budget < 0 {
		return Recipient{}, ErrNegativeBudget
	}

	updated, err := s.repo.Update(ctx, recipientId, patch)
	if err != nil {
		return Recipient{}, err
	}
	if !updated {
		return Recipient{}, fmt.Errorf("could not update recipient %d: %w", recipientId, ErrRecipientNotFound)
	}

	recipient, err := s.repo.Get(ctx, recipientId)
	if err != nil {
		return Recipient{}, err
	}

	s.publishChanged(ctx, recipientId)
	return recipient, nil
}

// Delete cascades: items go first, then the recipient. The two steps are
// deliberately independent statements rather than one transaction. An
// interruption between them leaves a recipient with zero items, never items
// pointing at a missing recipient, and every step is idempotent so the whole
// cascade is safe to retry.
func (s *ServiceImpl) Delete(ctx context.Context, recipientId int64) error {
	if _, err := s.repo.Get(ctx, recipientId); err != nil {
		return err
	}

	removed, err := s.itemRemover.DeleteByRecipient(ctx, recipientId)
	if err != nil {
		return fmt.Errorf("cascade delete of items for recipient %d failed: %w", recipientId, err)
	}
	if removed > 0 {
		log.Debugf("cascade deleted %d items of recipient %d", removed, recipientId)
	}

	deleted, err := s.repo.Delete(ctx, recipientId)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("could not delete recipient %d: %w", recipientId, ErrRecipientNotFound)
	}

	s.publishChanged(ctx, recipientId)
	if removed > 0 {
		// Dependent items are gone too; wake up item-scoped subscriptions.
		err := s.eventBus.Publish(event_bus.NewEvent(
			ctx,
			event_bus.ItemChangedEvent,
			event_bus.ItemChanged{RecipientId: recipientId},
		))
		if err != nil {
			log.Errorf("failed to publish item change event: %v", err)
		}
	}
	return nil
}

func (s *ServiceImpl) publishChanged(ctx context.Context, recipientId int64) {
	err := s.eventBus.Publish(event_bus.NewEvent(
		ctx,
		event_bus.RecipientChangedEvent,
		event_bus.RecipientChanged{Id: recipientId},
	))
	if err != nil {
		log.Errorf("failed to publish recipient change event: %v", err)
	}
}
