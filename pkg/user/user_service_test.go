package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var userRepoStub = NewStubUserRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewUserService(userRepoStub)
	return func() {
		t.Log("Teardown after test")
		userRepoStub.Cleanup()
	}
}

func TestServiceImpl_FindOrCreate(t *testing.T) {
	t.Run("should create an account on first sign-in", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.FindOrCreate(ctx, User{
			Email:       "mom@example.com",
			DisplayName: "Mom",
			PhotoUrl:    "https://example.com/mom.jpg",
		})

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.Equal(t, "mom@example.com", created.Email)
		assert.Equal(t, "Mom", created.DisplayName)
	})

	t.Run("should return the existing account on a later sign-in", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		first, err := service.FindOrCreate(ctx, User{Email: "mom@example.com", DisplayName: "Mom"})
		require.NoError(t, err)

		// when
		second, err := service.FindOrCreate(ctx, User{Email: "mom@example.com", DisplayName: "Mom"})

		// then
		require.NoError(t, err)
		assert.Equal(t, first.Id, second.Id)
	})

	t.Run("should match accounts case-insensitively by email", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		first, err := service.FindOrCreate(ctx, User{Email: "Mom@Example.com", DisplayName: "Mom"})
		require.NoError(t, err)

		// when
		second, err := service.FindOrCreate(ctx, User{Email: "mom@example.COM", DisplayName: "Mom"})

		// then
		require.NoError(t, err)
		assert.Equal(t, first.Id, second.Id)
	})
}

func TestServiceImpl_GetUser(t *testing.T) {
	t.Run("should fail for an unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.GetUser(ctx, 42)

		// then
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
