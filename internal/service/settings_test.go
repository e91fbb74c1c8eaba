package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartsuite/internal/model"
	repoMocks "smartsuite/internal/repository/mocks"
)

func TestSettingsService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row resolves to all-enabled defaults", func(t *testing.T) {
		mRepo := new(repoMocks.MockSettingsRepository)
		mRepo.On("Find", ctx, testUserID).Return(nil, sql.ErrNoRows)

		svc := NewSettingsService(mRepo)
		got, err := svc.Get(ctx, testUserID)

		require.NoError(t, err)
		assert.Equal(t, model.DefaultNotificationSettings(testUserID), got)
		assert.True(t, got.Enabled)
		assert.True(t, got.Notify1)
	})

	t.Run("stored row wins over defaults", func(t *testing.T) {
		mRepo := new(repoMocks.MockSettingsRepository)
		stored := model.NotificationSettings{UserID: testUserID, Enabled: true, Notify30: false, Notify14: true}
		mRepo.On("Find", ctx, testUserID).Return(&stored, nil)

		svc := NewSettingsService(mRepo)
		got, err := svc.Get(ctx, testUserID)

		require.NoError(t, err)
		assert.False(t, got.Notify30)
		assert.True(t, got.Notify14)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		mRepo := new(repoMocks.MockSettingsRepository)
		mRepo.On("Find", ctx, testUserID).Return(nil, errors.New("db down"))

		svc := NewSettingsService(mRepo)
		_, err := svc.Get(ctx, testUserID)
		assert.Error(t, err)
	})

	t.Run("empty user id", func(t *testing.T) {
		svc := NewSettingsService(new(repoMocks.MockSettingsRepository))
		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, ErrUserRequired)
	})
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockSettingsRepository)
	mRepo.On("Upsert", ctx, &model.NotificationSettings{
		UserID:   testUserID,
		Enabled:  true,
		Notify30: false,
		Notify14: true,
		Notify7:  true,
		Notify1:  true,
	}).Return(nil)

	svc := NewSettingsService(mRepo)
	got, err := svc.Update(ctx, testUserID, SettingsUpdate{
		Enabled:  true,
		Notify30: false,
		Notify14: true,
		Notify7:  true,
		Notify1:  true,
	})

	require.NoError(t, err)
	assert.False(t, got.Notify30)
	mRepo.AssertExpectations(t)
}
