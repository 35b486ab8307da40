package models

import "time"

// Link is a URL attachment on a post
type Link struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	URL         string    `gorm:"not null" json:"url"`
	DisplayText string    `json:"display_text"`
	TargetID    uint      `gorm:"not null;index" json:"target_id"`
	Paywall     bool      `gorm:"default:false" json:"paywall"`

	// Relationships
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Target Post `gorm:"foreignKey:TargetID" json:"target,omitempty"`
}
