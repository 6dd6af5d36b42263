package recipient

import (
	"context"
	"testing"

	"github.com/giftledger/giftledger/internal/event_bus"
	"github.com/giftledger/giftledger/pkg/item"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var recipientRepoStub = NewStubRecipientRepo()
var itemRepoStub = item.NewStubItemRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewRecipientService(recipientRepoStub, itemRepoStub, event_bus.NewEventBus())
	return func() {
		t.Log("Teardown after test")
		recipientRepoStub.Cleanup()
		itemRepoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should assign sort order 0 to the first recipient", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, "Mom", 100)

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.Equal(t, "Mom", created.Name)
		assert.Equal(t, 100.0, created.Budget)
		assert.Equal(t, 0, created.SortOrder)
	})

	t.Run("should assign increasing sort orders", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		first, _ := service.Create(ctx, "Mom", 100)

		// when
		second, err := service.Create(ctx, "Dad", 50)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 0, first.SortOrder)
		assert.Equal(t, 1, second.SortOrder)
	})

	t.Run("should never reuse a sort order after deletion", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given: the only recipient (rank 0) is deleted again
		first, _ := service.Create(ctx, "Mom", 100)
		require.NoError(t, service.Delete(ctx, first.Id))

		// when
		second, err := service.Create(ctx, "Dad", 50)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 1, second.SortOrder)
	})

	t.Run("should reject an empty name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, "   ", 100)

		// then
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("should reject a negative budget", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, "Mom", -1)

		// then
		assert.ErrorIs(t, err, ErrNegativeBudget)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should patch only the supplied fields", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, "Mom", 100)
		newBudget := 150.0

		// when
		updated, err := service.Update(ctx, created.Id, Patch{Budget: &newBudget})

		// then
		assert.NoError(t, err)
		assert.Equal(t, "Mom", updated.Name)
		assert.Equal(t, 150.0, updated.Budget)
		assert.Equal(t, created.SortOrder, updated.SortOrder)
	})

	t.Run("should fail with not found for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		name := "Anyone"
		_, err := service.Update(ctx, 42, Patch{Name: &name})

		// then
		assert.ErrorIs(t, err, ErrRecipientNotFound)
	})

	t.Run("should reject patching the name to empty", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, "Mom", 100)
		empty := ""

		// when
		_, err := service.Update(ctx, created.Id, Patch{Name: &empty})

		// then
		assert.ErrorIs(t, err, ErrEmptyName)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete the recipient's items before the recipient", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		mom, _ := service.Create(ctx, "Mom", 100)
		dad, _ := service.Create(ctx, "Dad", 50)
		itemRepoStub.Store(ctx, item.Item{RecipientId: mom.Id, Name: "Socks", Status: item.StatusIdea})
		itemRepoStub.Store(ctx, item.Item{RecipientId: mom.Id, Name: "Book", Status: item.StatusPlanned})
		keeper, _ := itemRepoStub.Store(ctx, item.Item{RecipientId: dad.Id, Name: "Mug", Status: item.StatusBought})

		// when
		err := service.Delete(ctx, mom.Id)

		// then
		assert.NoError(t, err)
		_, err = service.Get(ctx, mom.Id)
		assert.ErrorIs(t, err, ErrRecipientNotFound)

		momItems, err := itemRepoStub.ListByRecipient(ctx, mom.Id)
		require.NoError(t, err)
		assert.Empty(t, momItems)

		dadItems, err := itemRepoStub.ListByRecipient(ctx, dad.Id)
		require.NoError(t, err)
		require.Len(t, dadItems, 1)
		assert.Equal(t, keeper, dadItems[0].Id)
	})

	t.Run("should fail with not found for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.Delete(ctx, 42)

		// then
		assert.ErrorIs(t, err, ErrRecipientNotFound)
	})

	t.Run("deleting a recipient with no items is fine", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, "Mom", 100)

		// when
		err := service.Delete(ctx, created.Id)

		// then
		assert.NoError(t, err)
	})
}
