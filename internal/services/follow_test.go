package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/warbler/internal/models"
	"github.com/sbilibin2017/warbler/internal/repositories"
	"github.com/sbilibin2017/warbler/internal/services"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_IsFollowingAndIsFollowedBy(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := services.NewMockFollowReader(ctrl)
	svc := services.NewFollowService(reader, services.NewMockFollowWriter(ctrl), nil)
	ctx := context.Background()

	testuser := &models.UserDB{ID: 1, Username: "test_user2"}
	testuser2 := &models.UserDB{ID: 2, Username: "testing_new_user"}

	// testuser2 follows testuser, not the other way around
	reader.EXPECT().Exists(gomock.Any(), int64(2), int64(1)).Return(true, nil).Times(2)
	reader.EXPECT().Exists(gomock.Any(), int64(1), int64(2)).Return(false, nil).Times(2)

	ok, err := svc.IsFollowing(ctx, testuser2, testuser)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsFollowing(ctx, testuser, testuser2)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsFollowedBy(ctx, testuser, testuser2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsFollowedBy(ctx, testuser2, testuser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowService_IsFollowingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := services.NewMockFollowReader(ctrl)
	svc := services.NewFollowService(reader, services.NewMockFollowWriter(ctrl), nil)

	reader.EXPECT().Exists(gomock.Any(), int64(1), int64(2)).Return(false, errors.New("db error"))

	ok, err := svc.IsFollowing(context.Background(), &models.UserDB{ID: 1}, &models.UserDB{ID: 2})
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestFollowService_Follow(t *testing.T) {
	tests := []struct {
		name        string
		followerID  int64
		followedID  int64
		created     bool
		writerErr   error
		publish     bool
		kafkaErr    error
		wantErr     error
		expectWrite bool
	}{
		{name: "new edge publishes event", followerID: 2, followedID: 1, created: true, publish: true, expectWrite: true},
		{name: "publish failure is not fatal", followerID: 2, followedID: 1, created: true, publish: true, kafkaErr: errors.New("broker down"), expectWrite: true},
		{name: "existing edge is a no-op", followerID: 2, followedID: 1, expectWrite: true},
		{name: "self follow", followerID: 1, followedID: 1, wantErr: services.ErrSelfFollow},
		{name: "unknown user", followerID: 2, followedID: 42, writerErr: repositories.ErrReferenceNotFound, wantErr: services.ErrUserNotFound, expectWrite: true},
		{name: "writer error", followerID: 2, followedID: 1, writerErr: errors.New("db error"), wantErr: errors.New("db error"), expectWrite: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			writer := services.NewMockFollowWriter(ctrl)
			kafkaWriter := services.NewMockKafkaWriter(ctrl)
			svc := services.NewFollowService(services.NewMockFollowReader(ctrl), writer, kafkaWriter)

			if tt.expectWrite {
				writer.EXPECT().Save(gomock.Any(), tt.followerID, tt.followedID).Return(tt.created, tt.writerErr)
			}
			if tt.publish {
				kafkaWriter.EXPECT().
					WriteMessages(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
						require.Len(t, msgs, 1)
						var event models.FollowEvent
						require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
						assert.Equal(t, models.FollowOperation, event.Operation)
						assert.Equal(t, tt.followerID, event.UserFollowingID)
						assert.Equal(t, tt.followedID, event.UserBeingFollowedID)
						assert.NotEmpty(t, event.EventID)
						return tt.kafkaErr
					})
			}

			err := svc.Follow(context.Background(), tt.followerID, tt.followedID)
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFollowService_Unfollow(t *testing.T) {
	t.Run("removed edge publishes event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := services.NewMockFollowWriter(ctrl)
		kafkaWriter := services.NewMockKafkaWriter(ctrl)
		svc := services.NewFollowService(services.NewMockFollowReader(ctrl), writer, kafkaWriter)

		writer.EXPECT().Delete(gomock.Any(), int64(2), int64(1)).Return(true, nil)
		kafkaWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Unfollow(context.Background(), 2, 1))
	})

	t.Run("missing edge without kafka", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := services.NewMockFollowWriter(ctrl)
		svc := services.NewFollowService(services.NewMockFollowReader(ctrl), writer, nil)

		writer.EXPECT().Delete(gomock.Any(), int64(2), int64(1)).Return(false, nil)

		assert.NoError(t, svc.Unfollow(context.Background(), 2, 1))
	})

	t.Run("writer error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := services.NewMockFollowWriter(ctrl)
		svc := services.NewFollowService(services.NewMockFollowReader(ctrl), writer, nil)

		writer.EXPECT().Delete(gomock.Any(), int64(2), int64(1)).Return(false, errors.New("db error"))

		assert.EqualError(t, svc.Unfollow(context.Background(), 2, 1), "db error")
	})
}

func TestFollowService_Lists(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := services.NewMockFollowReader(ctrl)
	svc := services.NewFollowService(reader, services.NewMockFollowWriter(ctrl), nil)
	ctx := context.Background()

	reader.EXPECT().ListFollowers(gomock.Any(), int64(1)).Return([]models.UserDB{{ID: 2}}, nil)
	reader.EXPECT().ListFollowing(gomock.Any(), int64(1)).Return([]models.UserDB{}, nil)
	reader.EXPECT().ListFollowers(gomock.Any(), int64(3)).Return(nil, errors.New("db error"))

	followers, err := svc.Followers(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, followers, 1)

	following, err := svc.Following(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, following, 0)

	_, err = svc.Followers(ctx, 3)
	assert.Error(t, err)
}

func TestFollowService_EventsWaitForCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := services.NewMockFollowWriter(ctrl)
	kafkaWriter := services.NewMockKafkaWriter(ctrl)
	svc := services.NewFollowService(services.NewMockFollowReader(ctrl), writer, kafkaWriter)

	t.Run("published after commit", func(t *testing.T) {
		ctx, commit := repositories.WithCommitHooks(context.Background())
		writer.EXPECT().Save(gomock.Any(), int64(2), int64(1)).Return(true, nil)

		require.NoError(t, svc.Follow(ctx, 2, 1))

		kafkaWriter.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)
		commit()
	})

	t.Run("dropped on rollback", func(t *testing.T) {
		ctx, _ := repositories.WithCommitHooks(context.Background())
		writer.EXPECT().Delete(gomock.Any(), int64(2), int64(1)).Return(true, nil)

		// no WriteMessages expectation: the hooks are never run
		require.NoError(t, svc.Unfollow(ctx, 2, 1))
	})
}
