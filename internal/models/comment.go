package models

import "time"

// MaxCommentLength is the ceiling on comment content.
const MaxCommentLength = 500

// Comment is a reply attached to a post. There is no API endpoint that
// creates comments; they are read-only in responses and written only by the
// seeder.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

// CommentView is a comment as embedded in post responses, with the author
// resolved to public profile fields.
type CommentView struct {
	ID        uint          `json:"id"`
	Author    PublicProfile `json:"author"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
}

// View resolves the comment's author for embedding in a post response.
func (c *Comment) View() CommentView {
	return CommentView{
		ID:        c.ID,
		Author:    c.User.Public(),
		Content:   c.Content,
		Timestamp: c.CreatedAt,
	}
}
