package item

import (
	"context"
	"testing"

	"github.com/giftledger/giftledger/internal/event_bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var itemRepoStub = NewStubItemRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewItemService(itemRepoStub, event_bus.NewEventBus())
	return func() {
		t.Log("Teardown after test")
		itemRepoStub.Cleanup()
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create an item with the given fields", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, Item{
			RecipientId: 1,
			Name:        "Wool socks",
			Cost:        12.5,
			Status:      StatusPlanned,
			Notes:       "size 42",
		})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.Equal(t, "Wool socks", created.Name)
		assert.Equal(t, 12.5, created.Cost)
		assert.Equal(t, StatusPlanned, created.Status)
		assert.Equal(t, "size 42", created.Notes)
	})

	t.Run("should accept an empty idea with zero cost", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, Item{RecipientId: 1, Status: StatusIdea})

		// then
		assert.NoError(t, err)
		assert.Equal(t, "", created.Name)
		assert.Equal(t, 0.0, created.Cost)
		assert.Equal(t, StatusIdea, created.Status)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, Item{RecipientId: 1, Status: "ordered"})

		// then
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should change only the supplied fields", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, Item{
			RecipientId: 1,
			Name:        "Wool socks",
			Cost:        12.5,
			Status:      StatusIdea,
			Notes:       "size 42",
		})
		newCost := 15.0

		// when
		updated, err := service.Update(ctx, created.Id, Patch{Cost: &newCost})

		// then
		assert.NoError(t, err)
		assert.Equal(t, 15.0, updated.Cost)
		assert.Equal(t, "Wool socks", updated.Name)
		assert.Equal(t, StatusIdea, updated.Status)
		assert.Equal(t, "size 42", updated.Notes)
	})

	t.Run("should move an item through its status lifecycle", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, Item{RecipientId: 1, Name: "Book", Status: StatusIdea})

		// when
		for _, status := range []Status{StatusPlanned, StatusBought, StatusShipped, StatusWrapped} {
			updated, err := service.Update(ctx, created.Id, Patch{Status: &status})

			// then
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)
		}
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, Item{RecipientId: 1, Name: "Book", Status: StatusIdea})
		bad := Status("ordered")

		// when
		_, err := service.Update(ctx, created.Id, Patch{Status: &bad})

		// then
		assert.ErrorIs(t, err, ErrInvalidStatus)
		item, _ := itemRepoStub.Get(ctx, created.Id)
		assert.Equal(t, StatusIdea, item.Status)
	})

	t.Run("should fail with not found for an unknown id and leave storage unchanged", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, Item{RecipientId: 1, Name: "Book", Status: StatusIdea})
		name := "Stolen"

		// when
		_, err := service.Update(ctx, created.Id+100, Patch{Name: &name})

		// then
		assert.ErrorIs(t, err, ErrItemNotFound)
		items, _ := itemRepoStub.ListAll(ctx)
		require.Len(t, items, 1)
		assert.Equal(t, "Book", items[0].Name)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an item", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, _ := service.Create(ctx, Item{RecipientId: 1, Name: "Book", Status: StatusIdea})

		// when
		err := service.Delete(ctx, created.Id)

		// then
		assert.NoError(t, err)
		_, err = itemRepoStub.Get(ctx, created.Id)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("should fail with not found for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.Delete(ctx, 42)

		// then
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestServiceImpl_ListByRecipient(t *testing.T) {
	t.Run("should list only the recipient's items in insertion order", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		first, _ := service.Create(ctx, Item{RecipientId: 1, Name: "Socks", Status: StatusIdea})
		second, _ := service.Create(ctx, Item{RecipientId: 1, Name: "Book", Status: StatusPlanned})
		service.Create(ctx, Item{RecipientId: 2, Name: "Mug", Status: StatusBought})

		// when
		items, err := service.ListByRecipient(ctx, 1)

		// then
		assert.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, first.Id, items[0].Id)
		assert.Equal(t, second.Id, items[1].Id)
	})

	t.Run("should return an empty list for a recipient with no items", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		items, err := service.ListByRecipient(ctx, 7)

		// then
		assert.NoError(t, err)
		assert.Empty(t, items)
	})
}
