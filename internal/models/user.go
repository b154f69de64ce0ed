package models

import (
	"fmt"
	"time"
)

// Defaults applied when a user signs up without images.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

// UserDB represents a user record in the database
type UserDB struct {
	ID             int64     `json:"id" db:"id"`                             // Primary key
	Email          string    `json:"email" db:"email"`                       // Unique email
	Username       string    `json:"username" db:"username"`                 // Unique username
	ImageURL       string    `json:"image_url" db:"image_url"`               // Profile image
	HeaderImageURL string    `json:"header_image_url" db:"header_image_url"` // Profile header image
	Bio            string    `json:"bio" db:"bio"`                           // Free text bio
	Location       string    `json:"location" db:"location"`                 // Free text location
	Password       string    `json:"-" db:"password"`                        // Bcrypt hash
	CreatedAt      time.Time `json:"created_at" db:"created_at"`             // Creation timestamp
}

// String renders the user as "<User #id: username, email>".
func (u *UserDB) String() string {
	return fmt.Sprintf("<User #%d: %s, %s>", u.ID, u.Username, u.Email)
}
