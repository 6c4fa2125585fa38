package repository

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMongo_CreateFindDuplicate(t *testing.T) {
	ctx := context.Background()
	users := NewUserMongoRepository(newTestMongoDB(t))

	u := &model.User{Email: "alice@example.com", PasswordHash: "hash", Name: "Alice"}
	require.NoError(t, users.Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	got, err := users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	err = users.Create(ctx, &model.User{Email: "alice@example.com", PasswordHash: "h", Name: "Other"})
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	_, err = users.FindByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
}
