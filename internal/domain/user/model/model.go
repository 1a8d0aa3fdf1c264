package model

import (
	"time"
)

// User is the persisted identity record. The password hash never leaves the
// service: it is excluded from JSON and cleared from outward views.
type User struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"column:password_hash;not null" json:"-"`
	ProfilePicture string    `gorm:"column:profile_picture" json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	UserID       uint64
}

// Identity is the authenticated caller, decoded from a verified access token.
// Services take it as an explicit argument; nothing reads it from ambient
// request context below the transport layer.
type Identity struct {
	UserID uint64
	Email  string
}
