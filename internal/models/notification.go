package models

import "gorm.io/gorm"

// Notification is a user-facing event recorded on friend-request
// transitions. Unseen by default; only the seen flag is ever mutated.
type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index"`
	Content string `gorm:"type:text;not null"`
	Seen    bool   `gorm:"not null;default:false;index"`
}
