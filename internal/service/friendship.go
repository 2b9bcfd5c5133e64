package service

import (
	"errors"
	"fmt"

	"linkup/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendshipService implements the friend-request state machine over the
// FriendRequest and Friendship tables.
type FriendshipService struct {
	db            *gorm.DB
	users         *UserService
	notifications *NotificationService
}

func NewFriendshipService(db *gorm.DB, users *UserService, notifications *NotificationService) *FriendshipService {
	return &FriendshipService{db: db, users: users, notifications: notifications}
}

// Relationship is the composite answer to "how do these two users relate":
// used by clients to pick the right affordance (Add/Pending/Accept/Remove).
type Relationship struct {
	IsFriend   bool                  `json:"isFriend"`
	IsSender   bool                  `json:"isSender"`
	IsReceiver bool                  `json:"isReceiver"`
	Status     *models.RequestStatus `json:"status"`
}

// SendRequest creates a pending friend request and notifies the receiver.
func (s *FriendshipService) SendRequest(senderID, receiverID uint) (*models.FriendRequest, error) {
	if senderID == receiverID {
		return nil, ErrSelfReference
	}

	senderProfile, err := s.users.GetProfileByUserID(senderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(receiverID); err != nil {
		return nil, err
	}

	friends, err := s.AreFriends(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	// Symmetric lookup: a pending request in either direction blocks a new one.
	var count int64
	err = s.db.Model(&models.FriendRequest{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			senderID, receiverID, receiverID, senderID).
		Where("status = ?", models.StatusPending).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateRequest
	}

	request := models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.StatusPending,
	}
	if err := s.db.Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}

	content := fmt.Sprintf("%s sent you a friend request.", displayName(senderProfile))
	if _, err := s.notifications.Create(receiverID, content); err != nil {
		return nil, err
	}

	return &request, nil
}

// AcceptRequest resolves the pending request sent by senderID to receiverID.
// Only the original receiver may accept. The row deletion and the friendship
// edge insert happen in one transaction: whichever of a concurrent accept and
// reject deletes the row first wins, the other sees ErrRequestNotFound.
func (s *FriendshipService) AcceptRequest(receiverID, senderID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("sender_id = ? AND receiver_id = ? AND status = ?",
			senderID, receiverID, models.StatusPending).
			Delete(&models.FriendRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotFound
		}

		// If both users had pended a request at each other, resolve the
		// reverse one too so it cannot be accepted into a second edge.
		if err := tx.Where("sender_id = ? AND receiver_id = ? AND status = ?",
			receiverID, senderID, models.StatusPending).
			Delete(&models.FriendRequest{}).Error; err != nil {
			return err
		}

		a, b := models.CanonicalPair(senderID, receiverID)
		edge := models.Friendship{UserAID: a, UserBID: b}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
	})
	if err != nil {
		return err
	}

	receiverProfile, err := s.users.GetProfileByUserID(receiverID)
	if err != nil {
		return err
	}
	content := fmt.Sprintf("%s accepted your friend request.", displayName(receiverProfile))
	_, err = s.notifications.Create(senderID, content)
	return err
}

// RejectRequest deletes the pending request without any friendship change.
func (s *FriendshipService) RejectRequest(receiverID, senderID uint) error {
	if receiverID == senderID {
		return ErrSelfReference
	}

	res := s.db.Where("sender_id = ? AND receiver_id = ? AND status = ?",
		senderID, receiverID, models.StatusPending).
		Delete(&models.FriendRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// CancelRequest withdraws a request the sender no longer wants to pend.
func (s *FriendshipService) CancelRequest(senderID, receiverID uint) error {
	if senderID == receiverID {
		return ErrSelfReference
	}

	res := s.db.Where("sender_id = ? AND receiver_id = ? AND status = ?",
		senderID, receiverID, models.StatusPending).
		Delete(&models.FriendRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// DeleteFriend removes the friendship edge between two users.
func (s *FriendshipService) DeleteFriend(userID1, userID2 uint) error {
	if userID1 == userID2 {
		return ErrSelfReference
	}
	if _, err := s.users.GetByID(userID1); err != nil {
		return err
	}
	if _, err := s.users.GetByID(userID2); err != nil {
		return err
	}

	a, b := models.CanonicalPair(userID1, userID2)
	res := s.db.Where("user_a_id = ? AND user_b_id = ?", a, b).Delete(&models.Friendship{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFriends
	}
	return nil
}

// AreFriends reports whether the symmetric friendship edge exists.
func (s *FriendshipService) AreFriends(userID1, userID2 uint) (bool, error) {
	a, b := models.CanonicalPair(userID1, userID2)
	var count int64
	err := s.db.Model(&models.Friendship{}).
		Where("user_a_id = ? AND user_b_id = ?", a, b).
		Count(&count).Error
	return count > 0, err
}

// CheckRelationship is the read-only composite query backing the
// relationship-check endpoint. When requests exist in both directions the
// reported status is the sent request's (checked last, deliberately matching
// the sequential precedence of the reference behavior).
func (s *FriendshipService) CheckRelationship(userID, otherUserID uint) (*Relationship, error) {
	rel := &Relationship{}

	var received models.FriendRequest
	err := s.db.Where("sender_id = ? AND receiver_id = ? AND status = ?",
		otherUserID, userID, models.StatusPending).First(&received).Error
	if err == nil {
		rel.IsReceiver = true
		rel.Status = &received.Status
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var sent models.FriendRequest
	err = s.db.Where("sender_id = ? AND receiver_id = ? AND status = ?",
		userID, otherUserID, models.StatusPending).First(&sent).Error
	if err == nil {
		rel.IsSender = true
		rel.Status = &sent.Status
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	friends, err := s.AreFriends(userID, otherUserID)
	if err != nil {
		return nil, err
	}
	rel.IsFriend = friends

	return rel, nil
}

// CountFriends returns the size of a user's friend set.
func (s *FriendshipService) CountFriends(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Friendship{}).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

// ListFriends returns the full user records of a user's friends,
// profiles included, for the chat sidebar.
func (s *FriendshipService) ListFriends(userID uint) ([]models.User, error) {
	var edges []models.Friendship
	err := s.db.Where("user_a_id = ? OR user_b_id = ?", userID, userID).Find(&edges).Error
	if err != nil {
		return nil, err
	}

	if len(edges) == 0 {
		return []models.User{}, nil
	}

	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		if e.UserAID == userID {
			ids = append(ids, e.UserBID)
		} else {
			ids = append(ids, e.UserAID)
		}
	}

	var friends []models.User
	if err := s.db.Preload("Profile").Where("id IN ?", ids).Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}

func displayName(profile *models.Profile) string {
	if profile == nil || profile.Username == "" {
		return "Someone"
	}
	return "@" + profile.Username
}
