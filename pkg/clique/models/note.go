package models

import "time"

// Note is a free-text annotation attached to a post.
// At most one note may exist per target post.
type Note struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Body      string    `gorm:"not null" json:"note"`
	TargetID  uint      `gorm:"not null;index" json:"target_id"`

	// Relationships
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Target Post `gorm:"foreignKey:TargetID" json:"target,omitempty"`
}
