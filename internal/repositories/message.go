package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/warbler/internal/models"
)

// MessageReadRepository handles message reads.
type MessageReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

// NewMessageReadRepository creates a MessageReadRepository. Reads join the request
// transaction returned by txGetter, if any.
func NewMessageReadRepository(db *sqlx.DB, txGetter TxGetter) *MessageReadRepository {
	return &MessageReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the message with id, or nil when there is none.
func (r *MessageReadRepository) GetByID(ctx context.Context, id int64) (*models.MessageDB, error) {
	const query = `SELECT id, text, timestamp, user_id FROM messages WHERE id = $1`

	var msg models.MessageDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &msg, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		logQuery(query, []any{id}, nil, nil)
		return nil, nil
	}
	logQuery(query, []any{id}, msg.ID, err)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListByUserID returns the newest messages written by userID.
func (r *MessageReadRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]models.MessageDB, error) {
	const query = `
		SELECT id, text, timestamp, user_id
		FROM messages
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2
	`
	messages := []models.MessageDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &messages, query, userID, limit)
	logQuery(query, []any{userID, limit}, len(messages), err)

	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListTimeline returns the newest messages written by userID or anyone userID follows.
func (r *MessageReadRepository) ListTimeline(ctx context.Context, userID int64, limit int) ([]models.TimelineMessage, error) {
	const query = `
		SELECT m.id, m.text, m.timestamp, m.user_id, u.username, u.image_url
		FROM messages m
		JOIN users u ON u.id = m.user_id
		WHERE m.user_id = $1
		   OR m.user_id IN (SELECT user_being_followed_id FROM follows WHERE user_following_id = $1)
		ORDER BY m.timestamp DESC, m.id DESC
		LIMIT $2
	`
	messages := []models.TimelineMessage{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &messages, query, userID, limit)
	logQuery(query, []any{userID, limit}, len(messages), err)

	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MessageWriteRepository handles message writes.
type MessageWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewMessageWriteRepository(db *sqlx.DB, txGetter TxGetter) *MessageWriteRepository {
	return &MessageWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts msg and fills in its id and timestamp.
func (r *MessageWriteRepository) Save(ctx context.Context, msg *models.MessageDB) error {
	const query = `
		INSERT INTO messages (text, user_id)
		VALUES ($1, $2)
		RETURNING id, timestamp
	`
	args := []any{msg.Text, msg.UserID}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := translateError(row.Scan(&msg.ID, &msg.Timestamp))
	logQuery(query, args, msg.ID, err)

	return err
}

// Delete removes the message with id.
func (r *MessageWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM messages WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, []any{id}, rowsAffected, err)

	return err
}
