package services

import (
	"context"

	"github.com/sbilibin2017/warbler/internal/logger"
	"github.com/sbilibin2017/warbler/internal/metrics"
	"github.com/sbilibin2017/warbler/internal/models"
	"github.com/sbilibin2017/warbler/internal/repositories"
)

//go:generate mockgen -source=user.go -destination=mock_user.go -package=services

// UserCache caches user profiles. Get returns nil on a miss.
type UserCache interface {
	Get(ctx context.Context, id int64) (*models.UserDB, error)
	Set(ctx context.Context, user *models.UserDB) error
	Delete(ctx context.Context, id int64) error
}

// UserService serves user profiles.
type UserService struct {
	reader UserReader
	writer UserWriter
	cache  UserCache
}

// NewUserService creates a UserService. cache may be nil.
func NewUserService(reader UserReader, writer UserWriter, cache UserCache) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		cache:  cache,
	}
}

// GetByID returns the user with id, reading through the cache.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.Log.Warnw("user cache unavailable", "user_id", id, "error", err)
		}
		if cached != nil {
			metrics.RecordCacheHit()
			return cached, nil
		}
		metrics.RecordCacheMiss()
	}

	user, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", id, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			logger.Log.Warnw("failed to cache user", "user_id", id, "error", err)
		}
	}

	return user, nil
}

// Delete removes the user together with their follows and messages.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.writer.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete user", "user_id", id, "error", err)
		return err
	}

	if s.cache != nil {
		// evict once the delete is visible to readers
		repositories.AfterCommit(ctx, func() {
			if err := s.cache.Delete(ctx, id); err != nil {
				logger.Log.Warnw("failed to evict user from cache", "user_id", id, "error", err)
			}
		})
	}

	logger.Log.Infow("user deleted", "user_id", id)
	return nil
}
