package models

import "gorm.io/gorm"

// ChatLog is the durable conversation container for exactly two users.
// The member pair is stored in canonical order (UserAID < UserBID) under a
// unique index, so a pair has at most one conversation regardless of who
// opened it first.
type ChatLog struct {
	gorm.Model
	UserAID uint `gorm:"uniqueIndex:idx_chat_log_pair;not null"`
	UserBID uint `gorm:"uniqueIndex:idx_chat_log_pair;not null"`

	Messages []Message `gorm:"foreignKey:ChatLogID"`
}

// Message belongs to a ChatLog and is immutable once created. Content may be
// empty for image-only messages and vice versa; the store does not enforce
// that at least one is set.
type Message struct {
	gorm.Model
	ChatLogID uint   `gorm:"not null;index"`
	SenderID  uint   `gorm:"not null;index"`
	Content   string `gorm:"type:text"`
	ImageURL  string `gorm:"size:1024"`
}
