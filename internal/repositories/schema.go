package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/warbler/internal/logger"
)

// Schema creates the Warbler tables if they do not exist.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	username VARCHAR(20) NOT NULL UNIQUE,
	image_url TEXT NOT NULL DEFAULT '/static/images/default-pic.png',
	header_image_url TEXT NOT NULL DEFAULT '/static/images/warbler-hero.jpg',
	bio TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	password TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS follows (
	user_being_followed_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	user_following_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (user_being_followed_id, user_following_id)
);

CREATE INDEX IF NOT EXISTS follows_user_following_id_idx ON follows (user_following_id);

CREATE TABLE IF NOT EXISTS messages (
	id BIGSERIAL PRIMARY KEY,
	text VARCHAR(140) NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	user_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS messages_user_id_timestamp_idx ON messages (user_id, timestamp DESC);
`

// Migrate applies Schema, retrying once per second while the database is starting up.
func Migrate(ctx context.Context, db *sqlx.DB, retries int) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if _, err = db.ExecContext(ctx, Schema); err == nil {
			logger.Log.Infow("schema applied", "attempt", attempt+1)
			return nil
		}
		logger.Log.Warnw("failed to apply schema", "attempt", attempt+1, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return err
}
