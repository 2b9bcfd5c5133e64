package models

import "time"

// RequestStatus defines the state of a friend request.
type RequestStatus string

const (
	// StatusPending means the request has been sent but not yet resolved.
	StatusPending RequestStatus = "pending"

	// StatusResolved is never persisted: accepting or rejecting a request
	// deletes its row. It exists for relationship query responses.
	StatusResolved RequestStatus = "resolved"
)

// FriendRequest represents a pending social invitation. At most one row per
// ordered (sender, receiver) pair; the row is deleted on accept or reject.
type FriendRequest struct {
	SenderID   uint          `gorm:"primaryKey"`
	ReceiverID uint          `gorm:"primaryKey"`
	Status     RequestStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt  time.Time

	Sender   User `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Receiver User `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Friendship is a confirmed, symmetric relationship stored as a single edge.
// UserAID is always the smaller of the two ids, so a pair has exactly one
// possible row and symmetry holds by construction.
type Friendship struct {
	UserAID   uint `gorm:"primaryKey"`
	UserBID   uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserA User `gorm:"foreignKey:UserAID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserB User `gorm:"foreignKey:UserBID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CanonicalPair orders two user ids so (a,b) and (b,a) map to the same key.
func CanonicalPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}
