package models

import "time"

// Group represents a group that posts can be published to.
// One user (AdminID) owns membership and name mutations; the roster
// itself lives in GroupMembership rows.
type Group struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	AdminID   uint      `gorm:"not null;index" json:"admin_id"`

	// Relationships
	Admin   User              `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Members []GroupMembership `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}
