package models

import "time"

// Resonance records that a user reacted to a post. The unique index on
// (user_id, post_id) is what makes the reaction one-time: inserting with
// ON CONFLICT DO NOTHING either lands the row or tells us the user already
// resonated. The set of rows for a user is their resonanceGiven membership
// set.
type Resonance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
