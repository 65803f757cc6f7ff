// Package models contains the database models and API response shapes.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a registered account.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	// ResonanceReceived has no writer in the API; it is persisted with its
	// default only.
	ResonanceReceived int `gorm:"not null;default:0" json:"resonanceReceived"`

	// ResonanceGiven is the ordered list of post IDs this user has resonated
	// with; computed at query time.
	ResonanceGiven []uint `gorm:"-" json:"resonanceGiven"`

	CreatedAt time.Time      `json:"dateJoined"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PublicProfile is the subset of a user that other users may see.
type PublicProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Public returns the user's public profile.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}
