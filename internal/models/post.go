package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxContentLength is the ceiling on post content.
const MaxContentLength = 2000

// Post is a short text post in the global feed.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"-"`
	User    User   `gorm:"foreignKey:UserID" json:"-"`
	Content string `gorm:"not null" json:"content"`
	// Resonance is the denormalized reaction counter. It is only ever
	// incremented inside the same transaction that records the reacting
	// user's membership row, so it always equals the number of resonance
	// rows for this post.
	Resonance int `gorm:"not null;default:0" json:"resonance"`
	// Shares has no writer in the API; it is persisted with its default only.
	Shares   int       `gorm:"not null;default:0" json:"shares"`
	Tags     []PostTag `gorm:"foreignKey:PostID" json:"-"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"-"`

	// Author is the post owner's public profile, resolved from User after
	// loading; computed at query time.
	Author PublicProfile `gorm:"-" json:"author"`
	// TagList is the ordered tag names, flattened from Tags; computed at
	// query time.
	TagList []string `gorm:"-" json:"tags"`
	// CommentList is Comments with each author resolved; computed at query
	// time.
	CommentList []CommentView `gorm:"-" json:"comments"`

	CreatedAt time.Time      `json:"timestamp"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostTag is one normalized tag on a post. Position preserves the order the
// tags were submitted in.
type PostTag struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	Position int    `gorm:"not null" json:"position"`
	Name     string `gorm:"not null;index" json:"name"`
}

// Resolve fills the computed response fields from the preloaded
// associations. Tags must have been preloaded ordered by position.
func (p *Post) Resolve() {
	p.Author = p.User.Public()

	p.TagList = make([]string, len(p.Tags))
	for i, t := range p.Tags {
		p.TagList[i] = t.Name
	}

	p.CommentList = make([]CommentView, len(p.Comments))
	for i := range p.Comments {
		p.CommentList[i] = p.Comments[i].View()
	}
}

// FeedPage is one page of the global feed.
type FeedPage struct {
	Posts       []*Post `json:"posts"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
}
