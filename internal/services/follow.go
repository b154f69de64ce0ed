package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/warbler/internal/logger"
	"github.com/sbilibin2017/warbler/internal/metrics"
	"github.com/sbilibin2017/warbler/internal/models"
	"github.com/sbilibin2017/warbler/internal/repositories"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=follow.go -destination=mock_follow.go -package=services

// ErrSelfFollow is returned when a user tries to follow themself.
var ErrSelfFollow = errors.New("users cannot follow themselves")

// FollowReader reads follow edges.
type FollowReader interface {
	Exists(ctx context.Context, followingID, followedID int64) (bool, error)
	ListFollowers(ctx context.Context, userID int64) ([]models.UserDB, error)
	ListFollowing(ctx context.Context, userID int64) ([]models.UserDB, error)
}

// FollowWriter creates and removes follow edges. Both methods report
// whether a row actually changed.
type FollowWriter interface {
	Save(ctx context.Context, followingID, followedID int64) (bool, error)
	Delete(ctx context.Context, followingID, followedID int64) (bool, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// FollowService manages the directed follow relation between users.
type FollowService struct {
	reader      FollowReader
	writer      FollowWriter
	kafkaWriter KafkaWriter
}

// NewFollowService creates a FollowService. kafkaWriter may be nil.
func NewFollowService(reader FollowReader, writer FollowWriter, kafkaWriter KafkaWriter) *FollowService {
	return &FollowService{
		reader:      reader,
		writer:      writer,
		kafkaWriter: kafkaWriter,
	}
}

// IsFollowing reports whether follower follows followee.
func (s *FollowService) IsFollowing(ctx context.Context, follower, followee *models.UserDB) (bool, error) {
	ok, err := s.reader.Exists(ctx, follower.ID, followee.ID)
	if err != nil {
		logger.Log.Errorw("failed to check follow", "follower", follower.ID, "followee", followee.ID, "error", err)
		return false, err
	}
	return ok, nil
}

// IsFollowedBy reports whether user is followed by other.
func (s *FollowService) IsFollowedBy(ctx context.Context, user, other *models.UserDB) (bool, error) {
	return s.IsFollowing(ctx, other, user)
}

// Follow makes followerID follow followedID. Following twice is a no-op.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID int64) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	created, err := s.writer.Save(ctx, followerID, followedID)
	if err != nil {
		if errors.Is(err, repositories.ErrReferenceNotFound) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to save follow", "follower", followerID, "followed", followedID, "error", err)
		return err
	}

	if created {
		repositories.AfterCommit(ctx, func() {
			metrics.RecordFollowChange(models.FollowOperation)
			s.publishEvent(ctx, models.FollowOperation, followerID, followedID)
		})
	}
	return nil
}

// Unfollow removes the edge followerID -> followedID. Missing edges are ignored.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID int64) error {
	deleted, err := s.writer.Delete(ctx, followerID, followedID)
	if err != nil {
		logger.Log.Errorw("failed to delete follow", "follower", followerID, "followed", followedID, "error", err)
		return err
	}

	if deleted {
		repositories.AfterCommit(ctx, func() {
			metrics.RecordFollowChange(models.UnfollowOperation)
			s.publishEvent(ctx, models.UnfollowOperation, followerID, followedID)
		})
	}
	return nil
}

// Followers lists the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID int64) ([]models.UserDB, error) {
	users, err := s.reader.ListFollowers(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list followers", "user_id", userID, "error", err)
		return nil, err
	}
	return users, nil
}

// Following lists the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID int64) ([]models.UserDB, error) {
	users, err := s.reader.ListFollowing(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list following", "user_id", userID, "error", err)
		return nil, err
	}
	return users, nil
}

// publishEvent publishes a follow change to Kafka.
// Failures are logged; the follow itself already succeeded.
func (s *FollowService) publishEvent(ctx context.Context, operation string, followerID, followedID int64) {
	event := models.FollowEvent{
		EventID:             uuid.NewString(),
		Timestamp:           time.Now().Unix(),
		Operation:           operation,
		UserFollowingID:     followerID,
		UserBeingFollowedID: followedID,
	}

	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal follow event", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(followedID, 10)),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish follow event", "event_id", event.EventID, "error", err)
		return
	}
	logger.Log.Infow("follow event published", "event_id", event.EventID, "operation", operation)
}
