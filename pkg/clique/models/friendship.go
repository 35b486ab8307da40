package models

import "time"

// FriendshipStatus is the state of the edge between two users
type FriendshipStatus string

const (
	// FriendshipStatusPending is a directional, unconfirmed request
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted is a confirmed, symmetric friendship
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// Friendship is the single edge between a pair of users. Direction
// (requester/addressee) is preserved so pending requests can be split into
// incoming and outgoing; accepted edges are queried symmetrically. At most
// one row exists per unordered pair.
type Friendship struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	RequesterID uint             `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"requester_id"`
	AddresseeID uint             `gorm:"not null;uniqueIndex:idx_friendship_pair;index" json:"addressee_id"`
	Status      FriendshipStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Addressee User `gorm:"foreignKey:AddresseeID" json:"addressee,omitempty"`
}
