package models

import "time"

// FollowDB is a directed edge: UserFollowingID follows UserBeingFollowedID.
type FollowDB struct {
	UserBeingFollowedID int64     `json:"user_being_followed_id" db:"user_being_followed_id"`
	UserFollowingID     int64     `json:"user_following_id" db:"user_following_id"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// Follow event operations
const (
	FollowOperation   = "follow"
	UnfollowOperation = "unfollow"
)

// FollowEvent is published whenever a follow edge is created or removed.
type FollowEvent struct {
	EventID             string `json:"event_id"`
	Timestamp           int64  `json:"timestamp"`
	Operation           string `json:"operation"`
	UserFollowingID     int64  `json:"user_following_id"`
	UserBeingFollowedID int64  `json:"user_being_followed_id"`
}
