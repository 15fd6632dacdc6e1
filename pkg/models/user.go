package models

import (
	"time"
)

// User represents a registered account. A user is also a channel:
// other users subscribe to it and its published videos form its feed.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"full_name" db:"full_name"`
	Avatar       string    `json:"avatar" db:"avatar"`
	AvatarKey    string    `json:"-" db:"avatar_key"`
	CoverImage   string    `json:"cover_image" db:"cover_image"`
	CoverKey     string    `json:"-" db:"cover_key"`
	PasswordHash string    `json:"-" db:"password_hash"`
	RefreshToken *string   `json:"-" db:"refresh_token"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// TokenPair holds the two credentials issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
