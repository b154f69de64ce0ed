package models

import "time"

// MaxMessageLength is the longest message text accepted.
const MaxMessageLength = 140

// MessageDB represents a message row in the database
type MessageDB struct {
	ID        int64     `json:"id" db:"id"`               // Primary key
	Text      string    `json:"text" db:"text"`           // Message body
	Timestamp time.Time `json:"timestamp" db:"timestamp"` // Publication time
	UserID    int64     `json:"user_id" db:"user_id"`     // Owner
}

// TimelineMessage is a message joined with its author.
type TimelineMessage struct {
	MessageDB
	Username string `json:"username" db:"username"`
	ImageURL string `json:"image_url" db:"image_url"`
}
