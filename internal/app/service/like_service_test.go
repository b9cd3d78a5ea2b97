package service

import (
	"testing"

	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/internal/app/repository"
	apperrors "github.com/ikkim/cafe-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeService(t *testing.T) {
	testDB := setupTestDB(t)
	cafeRepo := repository.NewCafeRepository(testDB)
	svc := NewLikeService(repository.NewLikeRepository(testDB), cafeRepo)

	user := &model.User{Username: "test", Email: "t@test.com", FirstName: "T", LastName: "U", ImageURL: model.DefaultUserImage, HashedPassword: "x"}
	require.NoError(t, testDB.Create(user).Error)
	cafe := &model.Cafe{Name: "Test Cafe", Address: "500 Sansome St", CityCode: "sf"}
	require.NoError(t, cafeRepo.Create(cafe))

	liked, err := svc.IsLiked(user.ID, cafe.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, svc.Like(user.ID, cafe.ID))
	liked, err = svc.IsLiked(user.ID, cafe.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	cafes, err := svc.LikedCafes(user.ID)
	require.NoError(t, err)
	require.Len(t, cafes, 1)
	assert.Equal(t, "Test Cafe", cafes[0].Name)

	t.Run("Liking twice fails at the uniqueness constraint", func(t *testing.T) {
		err := svc.Like(user.ID, cafe.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsDuplicateKey(err))
	})

	require.NoError(t, svc.Unlike(user.ID, cafe.ID))
	liked, err = svc.IsLiked(user.ID, cafe.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	t.Run("Unliking a missing like", func(t *testing.T) {
		assert.ErrorIs(t, svc.Unlike(user.ID, cafe.ID), ErrLikeNotFound)
	})

	t.Run("Unknown cafe", func(t *testing.T) {
		_, err := svc.IsLiked(user.ID, 9999)
		assert.ErrorIs(t, err, ErrCafeNotFound)
		assert.ErrorIs(t, svc.Like(user.ID, 9999), ErrCafeNotFound)
		assert.ErrorIs(t, svc.Unlike(user.ID, 9999), ErrCafeNotFound)
	})
}
