package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/warbler/internal/models"
	"github.com/sbilibin2017/warbler/internal/repositories"
	"github.com/sbilibin2017/warbler/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetByID(t *testing.T) {
	user := &models.UserDB{ID: 1, Username: "test_user2", Email: "test2@test.com"}

	t.Run("cache hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reader := services.NewMockUserReader(ctrl)
		cache := services.NewMockUserCache(ctrl)
		svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), cache)

		cache.EXPECT().Get(gomock.Any(), int64(1)).Return(user, nil)

		got, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("cache miss reads through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reader := services.NewMockUserReader(ctrl)
		cache := services.NewMockUserCache(ctrl)
		svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), cache)

		gomock.InOrder(
			cache.EXPECT().Get(gomock.Any(), int64(1)).Return(nil, nil),
			reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(user, nil),
			cache.EXPECT().Set(gomock.Any(), user).Return(nil),
		)

		got, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("cache failure falls back to database", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reader := services.NewMockUserReader(ctrl)
		cache := services.NewMockUserCache(ctrl)
		svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), cache)

		cache.EXPECT().Get(gomock.Any(), int64(1)).Return(nil, errors.New("redis down"))
		reader.EXPECT().GetByID(gomock.Any(), int64(1)).Return(user, nil)
		cache.EXPECT().Set(gomock.Any(), user).Return(errors.New("redis down"))

		got, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("not found without cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reader := services.NewMockUserReader(ctrl)
		svc := services.NewUserService(reader, services.NewMockUserWriter(ctrl), nil)

		reader.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, nil)

		got, err := svc.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, got)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("evicts cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := services.NewMockUserWriter(ctrl)
		cache := services.NewMockUserCache(ctrl)
		svc := services.NewUserService(services.NewMockUserReader(ctrl), writer, cache)

		gomock.InOrder(
			writer.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil),
			cache.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil),
		)

		assert.NoError(t, svc.Delete(context.Background(), 5))
	})

	t.Run("eviction waits for commit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := services.NewMockUserWriter(ctrl)
		cache := services.NewMockUserCache(ctrl)
		svc := services.NewUserService(services.NewMockUserReader(ctrl), writer, cache)

		ctx, commit := repositories.WithCommitHooks(context.Background())
		writer.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)

		require.NoError(t, svc.Delete(ctx, 5))

		cache.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)
		commit()
	})

	t.Run("writer error keeps cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := services.NewMockUserWriter(ctrl)
		cache := services.NewMockUserCache(ctrl)
		svc := services.NewUserService(services.NewMockUserReader(ctrl), writer, cache)

		writer.EXPECT().Delete(gomock.Any(), int64(5)).Return(errors.New("db error"))

		assert.EqualError(t, svc.Delete(context.Background(), 5), "db error")
	})
}
