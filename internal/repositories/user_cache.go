package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/warbler/internal/logger"
	"github.com/sbilibin2017/warbler/internal/models"
)

// UserCacheRepository caches user profiles in Redis.
// Cached entries never carry the password hash.
type UserCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

func NewUserCacheRepository(client *redis.Client, expiration time.Duration) *UserCacheRepository {
	return &UserCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("warbler:user:%d", id)
}

// Get returns the cached user, or nil on a miss.
func (r *UserCacheRepository) Get(ctx context.Context, id int64) (*models.UserDB, error) {
	key := userCacheKey(id)

	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.Log.Infow("cache get", "key", key, "result", "miss")
		return nil, nil
	}
	if err != nil {
		logger.Log.Errorw("cache get", "key", key, "error", err)
		return nil, err
	}

	var user models.UserDB
	if err := json.Unmarshal(val, &user); err != nil {
		logger.Log.Errorw("cache decode", "key", key, "error", err)
		return nil, err
	}

	logger.Log.Infow("cache get", "key", key, "result", "hit")
	return &user, nil
}

// Set caches user until the configured expiration.
func (r *UserCacheRepository) Set(ctx context.Context, user *models.UserDB) error {
	key := userCacheKey(user.ID)

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("cache set", "key", key, "ttl", r.exp, "error", err)
	return err
}

// Delete evicts the cached user.
func (r *UserCacheRepository) Delete(ctx context.Context, id int64) error {
	key := userCacheKey(id)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("cache delete", "key", key, "error", err)
	return err
}
