package live

import (
	"context"
	"errors"
	"sync"

	"github.com/giftledger/giftledger/internal/event_bus"
	"github.com/giftledger/giftledger/pkg/budget"
	"github.com/giftledger/giftledger/pkg/item"
	log "github.com/sirupsen/logrus"
)

var ErrUnknownQuery = errors.New("unknown live query")

// QueryName identifies one of the supported live queries.
type QueryName string

const (
	// RecipientsList is the ordered recipient overview with committed/spent.
	RecipientsList QueryName = "recipients.list"
	// BudgetGlobal is the household-wide budget summary.
	BudgetGlobal QueryName = "budget.global"
	// ItemsByRecipient is one recipient's gift items.
	ItemsByRecipient QueryName = "items.byRecipient"
)

// Result is one delivery to a subscriber: the freshly evaluated query output.
type Result struct {
	Query QueryName `json:"query"`
	Data  any       `json:"data"`
}

type subscription struct {
	id          uint64
	query       QueryName
	recipientId int64
	out         chan Result
}

// wants reports whether a change to the given entity set touches this
// subscription. Recipient-list and global queries read both collections;
// the per-recipient item query only cares about its own recipient's items.
func (s *subscription) wants(eventType event_bus.EventType, recipientId int64) bool {
	switch s.query {
	case RecipientsList, BudgetGlobal:
		return true
	case ItemsByRecipient:
		return eventType == event_bus.ItemChangedEvent && s.recipientId == recipientId
	}
	return false
}

// Broker reproduces the push-query model: a subscriber registers interest in
// the entity sets its query reads, and every relevant write re-evaluates the
// query against current storage and redelivers the full result.
type Broker struct {
	mu     sync.Mutex
	subs   map[uint64]*subscription
	nextID uint64

	budgets budget.Service
	items   item.Service
}

func NewBroker(bus *event_bus.EventBus, budgets budget.Service, items item.Service) *Broker {
	b := &Broker{
		subs:    map[uint64]*subscription{},
		budgets: budgets,
		items:   items,
	}

	event_bus.SubscribeTyped(bus, event_bus.RecipientChangedEvent,
		func(e event_bus.EventT[event_bus.RecipientChanged]) error {
			b.notify(e.Context(), event_bus.RecipientChangedEvent, e.Data.Id)
			return nil
		})
	event_bus.SubscribeTyped(bus, event_bus.ItemChangedEvent,
		func(e event_bus.EventT[event_bus.ItemChanged]) error {
			b.notify(e.Context(), event_bus.ItemChangedEvent, e.Data.RecipientId)
			return nil
		})

	return b
}

// Subscribe registers a live query and returns its delivery channel together
// with an unsubscribe function. The channel carries no initial result; the
// caller evaluates once via Evaluate before waiting for pushes.
func (b *Broker) Subscribe(query QueryName, recipientId int64) (<-chan Result, func(), error) {
	switch query {
	case RecipientsList, BudgetGlobal, ItemsByRecipient:
	default:
		return nil, nil, ErrUnknownQuery
	}

	b.mu.Lock()
	b.nextID++
	sub := &subscription{
		id:          b.nextID,
		query:       query,
		recipientId: recipientId,
		out:         make(chan Result, 1),
	}
	b.subs[sub.id] = sub
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, sub.id)
	}
	return sub.out, unsubscribe, nil
}

// Evaluate runs the query once against current storage.
func (b *Broker) Evaluate(ctx context.Context, query QueryName, recipientId int64) (Result, error) {
	switch query {
	case RecipientsList:
		overviews, err := b.budgets.ListRecipients(ctx)
		if err != nil {
			return Result{}, err
		}
		dtos := make([]budget.RecipientOverviewDTO, 0, len(overviews))
		for _, overview := range overviews {
			dtos = append(dtos, budget.OverviewToDTO(overview))
		}
		return Result{Query: query, Data: dtos}, nil
	case BudgetGlobal:
		global, err := b.budgets.GetGlobalBudget(ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{Query: query, Data: budget.GlobalToDTO(global)}, nil
	case ItemsByRecipient:
		items, err := b.items.ListByRecipient(ctx, recipientId)
		if err != nil {
			return Result{}, err
		}
		dtos := make([]item.ItemDTO, 0, len(items))
		for _, it := range items {
			dtos = append(dtos, item.ItemToDTO(it))
		}
		return Result{Query: query, Data: dtos}, nil
	}
	return Result{}, ErrUnknownQuery
}

// notify re-evaluates and redelivers every subscription interested in the
// changed entity set. Delivery replaces any undrained result, so a slow
// consumer skips intermediate states and always sees the latest one.
func (b *Broker) notify(ctx context.Context, eventType event_bus.EventType, recipientId int64) {
	b.mu.Lock()
	interested := make([]*subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.wants(eventType, recipientId) {
			interested = append(interested, sub)
		}
	}
	b.mu.Unlock()

	for _, sub := range interested {
		result, err := b.Evaluate(ctx, sub.query, sub.recipientId)
		if err != nil {
			log.Errorf("failed to evaluate live query %s: %v", sub.query, err)
			continue
		}
		select {
		case sub.out <- result:
		default:
			// Drop the stale undelivered result, keep the fresh one.
			select {
			case <-sub.out:
			default:
			}
			select {
			case sub.out <- result:
			default:
			}
		}
	}
}
