package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"nest/internal/models"
	"nest/internal/testutil"
)

func TestUserService_CreateHashesPassword(t *testing.T) {
	repo := &testutil.MemoryUserRepository{}
	svc := NewUserService(repo)
	svc.cost = bcrypt.MinCost

	user, err := svc.Create(context.Background(), &models.CreateUserRequest{Username: "river", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))

	got, err := svc.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "river", got.Username)
}

func TestUserService_DuplicateUsername(t *testing.T) {
	svc := NewUserService(&testutil.MemoryUserRepository{})
	svc.cost = bcrypt.MinCost
	req := &models.CreateUserRequest{Username: "river", Password: "s3cret-pass"}

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestUserService_GetMissing(t *testing.T) {
	svc := NewUserService(&testutil.MemoryUserRepository{})
	_, err := svc.Get(context.Background(), 5)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
