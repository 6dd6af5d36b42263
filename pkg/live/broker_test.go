package live

import (
	"context"
	"testing"
	"time"

	"github.com/giftledger/giftledger/internal/event_bus"
	"github.com/giftledger/giftledger/pkg/budget"
	"github.com/giftledger/giftledger/pkg/item"
	"github.com/giftledger/giftledger/pkg/recipient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var recipientRepoStub = recipient.NewStubRecipientRepo()
var itemRepoStub = item.NewStubItemRepo()

var recipientService recipient.Service
var itemService item.Service
var broker *Broker

func setup(t *testing.T) func() {
	bus := event_bus.NewEventBus()
	recipientService = recipient.NewRecipientService(recipientRepoStub, itemRepoStub, bus)
	itemService = item.NewItemService(itemRepoStub, bus)
	broker = NewBroker(bus, budget.NewBudgetService(recipientRepoStub, itemRepoStub), itemService)
	return func() {
		t.Log("Teardown after test")
		recipientRepoStub.Cleanup()
		itemRepoStub.Cleanup()
	}
}

func receiveResult(t *testing.T, results <-chan Result) Result {
	t.Helper()
	select {
	case result := <-results:
		return result
	case <-time.After(time.Second):
		t.Fatal("expected a pushed result")
		return Result{}
	}
}

func assertNoResult(t *testing.T, results <-chan Result) {
	t.Helper()
	select {
	case result := <-results:
		t.Fatalf("expected no pushed result, got %v", result)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroker_Subscribe(t *testing.T) {
	t.Run("should reject an unknown query", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, _, err := broker.Subscribe("recipients.all", 0)

		// then
		assert.ErrorIs(t, err, ErrUnknownQuery)
	})

	t.Run("should push the recipient list after a recipient write", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		results, unsubscribe, err := broker.Subscribe(RecipientsList, 0)
		require.NoError(t, err)
		defer unsubscribe()

		// when
		created, err := recipientService.Create(ctx, "Mom", 100)
		require.NoError(t, err)

		// then
		result := receiveResult(t, results)
		assert.Equal(t, RecipientsList, result.Query)
		overviews, ok := result.Data.([]budget.RecipientOverviewDTO)
		require.True(t, ok)
		require.Len(t, overviews, 1)
		assert.Equal(t, created.Id, overviews[0].Id)
		assert.Equal(t, "Mom", overviews[0].Name)
	})

	t.Run("should push the global budget after an item write", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := recipientService.Create(ctx, "Mom", 100)
		results, unsubscribe, err := broker.Subscribe(BudgetGlobal, 0)
		require.NoError(t, err)
		defer unsubscribe()

		// when
		_, err = itemService.Create(ctx, item.Item{RecipientId: created.Id, Name: "Socks", Cost: 30, Status: item.StatusPlanned})
		require.NoError(t, err)

		// then
		result := receiveResult(t, results)
		assert.Equal(t, BudgetGlobal, result.Query)
		global, ok := result.Data.(budget.GlobalBudgetDTO)
		require.True(t, ok)
		assert.Equal(t, 100.0, global.TotalBudget)
		assert.Equal(t, 30.0, global.TotalCommitted)
		assert.Equal(t, 70.0, global.Available)
	})

	t.Run("should only push item changes of the subscribed recipient", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		mom, _ := recipientService.Create(ctx, "Mom", 100)
		dad, _ := recipientService.Create(ctx, "Dad", 50)
		results, unsubscribe, err := broker.Subscribe(ItemsByRecipient, mom.Id)
		require.NoError(t, err)
		defer unsubscribe()

		// when: another recipient's item changes
		_, err = itemService.Create(ctx, item.Item{RecipientId: dad.Id, Name: "Mug", Status: item.StatusIdea})
		require.NoError(t, err)

		// then
		assertNoResult(t, results)

		// when: the subscribed recipient's item changes
		created, err := itemService.Create(ctx, item.Item{RecipientId: mom.Id, Name: "Socks", Status: item.StatusIdea})
		require.NoError(t, err)

		// then
		result := receiveResult(t, results)
		assert.Equal(t, ItemsByRecipient, result.Query)
		items, ok := result.Data.([]item.ItemDTO)
		require.True(t, ok)
		require.Len(t, items, 1)
		assert.Equal(t, created.Id, items[0].Id)
	})

	t.Run("should stop pushing after unsubscribe", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		results, unsubscribe, err := broker.Subscribe(RecipientsList, 0)
		require.NoError(t, err)

		// when
		unsubscribe()
		_, err = recipientService.Create(ctx, "Mom", 100)
		require.NoError(t, err)

		// then
		assertNoResult(t, results)
	})

	t.Run("a slow consumer sees the latest state", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given: nobody drains the channel between writes
		results, unsubscribe, err := broker.Subscribe(RecipientsList, 0)
		require.NoError(t, err)
		defer unsubscribe()

		// when
		recipientService.Create(ctx, "Mom", 100)
		recipientService.Create(ctx, "Dad", 50)

		// then: the undrained first result was replaced by the second
		result := receiveResult(t, results)
		overviews, ok := result.Data.([]budget.RecipientOverviewDTO)
		require.True(t, ok)
		assert.Len(t, overviews, 2)
	})
}

func TestBroker_Evaluate(t *testing.T) {
	t.Run("should answer a one-shot query without a subscription", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := recipientService.Create(ctx, "Mom", 100)
		itemService.Create(ctx, item.Item{RecipientId: created.Id, Name: "Socks", Cost: 20, Status: item.StatusBought})

		// when
		result, err := broker.Evaluate(ctx, ItemsByRecipient, created.Id)

		// then
		assert.NoError(t, err)
		items, ok := result.Data.([]item.ItemDTO)
		require.True(t, ok)
		require.Len(t, items, 1)
		assert.Equal(t, "Socks", items[0].Name)
	})

	t.Run("should reject an unknown query", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := broker.Evaluate(ctx, "budget.total", 0)

		// then
		assert.ErrorIs(t, err, ErrUnknownQuery)
	})
}
