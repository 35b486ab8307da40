package models

import "time"

// PostOptions holds optional display settings for a post
type PostOptions struct {
	BackgroundColor string `json:"background_color,omitempty"`
}

// Post represents a piece of content published into zero or more groups.
// AuthorID is immutable after creation; the group set lives in
// PostPublication rows.
type Post struct {
	ID        uint         `gorm:"primarykey" json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	AuthorID  uint         `gorm:"not null;index" json:"author_id"`
	Content   string       `gorm:"not null" json:"content"`
	Options   *PostOptions `gorm:"serializer:json" json:"options,omitempty"`

	// Relationships
	Author       User              `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Publications []PostPublication `gorm:"foreignKey:PostID" json:"publications,omitempty"`
}

// PostPublication records that a post is published to a group.
// The unique pair index backs the no-duplicate-publish invariant under
// concurrent requests.
type PostPublication struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_group" json:"post_id"`
	GroupID   uint      `gorm:"not null;uniqueIndex:idx_post_group;index" json:"group_id"`
}
