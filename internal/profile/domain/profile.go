package domain

import (
	"errors"
	"time"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrEmptyUsername   = errors.New("username cannot be empty")
)

// Profile is the public face of a user. Its ID is the user's ID.
type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}
