package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/warbler/internal/models"
)

// FollowReadRepository answers questions about follow edges.
type FollowReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

// NewFollowReadRepository creates a FollowReadRepository. Reads join the request
// transaction returned by txGetter, if any.
func NewFollowReadRepository(db *sqlx.DB, txGetter TxGetter) *FollowReadRepository {
	return &FollowReadRepository{db: db, txGetter: txGetter}
}

// Exists reports whether followingID follows followedID.
func (r *FollowReadRepository) Exists(ctx context.Context, followingID, followedID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM follows
			WHERE user_following_id = $1 AND user_being_followed_id = $2
		)
	`
	var exists bool
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &exists, query, followingID, followedID)
	logQuery(query, []any{followingID, followedID}, exists, err)

	return exists, err
}

// ListFollowers returns the users following userID.
func (r *FollowReadRepository) ListFollowers(ctx context.Context, userID int64) ([]models.UserDB, error) {
	const query = `
		SELECT u.id, u.email, u.username, u.image_url, u.header_image_url, u.bio, u.location, u.password, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.user_following_id
		WHERE f.user_being_followed_id = $1
		ORDER BY f.created_at DESC, u.id
	`
	return r.list(ctx, query, userID)
}

// ListFollowing returns the users userID follows.
func (r *FollowReadRepository) ListFollowing(ctx context.Context, userID int64) ([]models.UserDB, error) {
	const query = `
		SELECT u.id, u.email, u.username, u.image_url, u.header_image_url, u.bio, u.location, u.password, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.user_being_followed_id
		WHERE f.user_following_id = $1
		ORDER BY f.created_at DESC, u.id
	`
	return r.list(ctx, query, userID)
}

func (r *FollowReadRepository) list(ctx context.Context, query string, userID int64) ([]models.UserDB, error) {
	users := []models.UserDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &users, query, userID)
	logQuery(query, []any{userID}, len(users), err)

	if err != nil {
		return nil, err
	}
	return users, nil
}

// FollowWriteRepository creates and removes follow edges.
type FollowWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewFollowWriteRepository(db *sqlx.DB, txGetter TxGetter) *FollowWriteRepository {
	return &FollowWriteRepository{db: db, txGetter: txGetter}
}

// Save records that followingID follows followedID.
// It reports false when the edge already existed.
func (r *FollowWriteRepository) Save(ctx context.Context, followingID, followedID int64) (bool, error) {
	const query = `
		INSERT INTO follows (user_being_followed_id, user_following_id)
		VALUES ($1, $2)
		ON CONFLICT (user_being_followed_id, user_following_id) DO NOTHING
	`
	args := []any{followedID, followingID}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	err = translateError(err)
	var rowsAffected int64
	if res != nil && err == nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args, rowsAffected, err)

	return rowsAffected > 0, err
}

// Delete removes the edge followingID -> followedID.
// It reports false when there was nothing to remove.
func (r *FollowWriteRepository) Delete(ctx context.Context, followingID, followedID int64) (bool, error) {
	const query = `
		DELETE FROM follows
		WHERE user_being_followed_id = $1 AND user_following_id = $2
	`
	args := []any{followedID, followingID}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil && err == nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args, rowsAffected, err)

	return rowsAffected > 0, err
}
