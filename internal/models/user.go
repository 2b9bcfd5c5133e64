package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the identity anchor. Personal data lives on the 1:1 Profile;
// relationships are edge rows (Friendship, FriendRequest, Block).
type User struct {
	gorm.Model
	Profile Profile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Profile holds a user's personal data. Exactly one per user, created
// atomically with it at signup.
type Profile struct {
	gorm.Model
	UserID       uint   `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FirstName    string `gorm:"size:255"`
	LastName     string `gorm:"size:255"`
	Username     string `gorm:"size:255;unique;not null"`
	PhoneNumber  string `gorm:"size:50"`
	Gender       string `gorm:"size:50"`
	DateOfBirth  *time.Time
	AvatarURL    string `gorm:"size:1024"`
}
