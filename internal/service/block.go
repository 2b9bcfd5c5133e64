package service

import (
	"errors"

	"linkup/backend/internal/models"

	"gorm.io/gorm"
)

// BlockService maintains the directional blocked set. Blocking does not
// unfriend, cancel pending requests or hide conversation history.
type BlockService struct {
	db    *gorm.DB
	users *UserService
}

func NewBlockService(db *gorm.DB, users *UserService) *BlockService {
	return &BlockService{db: db, users: users}
}

// Block adds targetID to userID's blocked set.
func (s *BlockService) Block(userID, targetID uint) error {
	if userID == targetID {
		return ErrSelfReference
	}
	if _, err := s.users.GetByID(userID); err != nil {
		return err
	}

	blocked, err := s.IsBlocked(userID, targetID)
	if err != nil {
		return err
	}
	if blocked {
		return ErrAlreadyBlocked
	}

	block := models.Block{BlockerID: userID, BlockedID: targetID}
	if err := s.db.Create(&block).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyBlocked
		}
		return err
	}
	return nil
}

// Unblock removes targetID from userID's blocked set. Idempotent.
func (s *BlockService) Unblock(userID, targetID uint) error {
	return s.db.Where("blocker_id = ? AND blocked_id = ?", userID, targetID).
		Delete(&models.Block{}).Error
}

// IsBlocked reports whether userID has blocked targetID. Directional.
func (s *BlockService) IsBlocked(userID, targetID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", userID, targetID).
		Count(&count).Error
	return count > 0, err
}

// ListBlocked returns the users in userID's blocked set.
func (s *BlockService) ListBlocked(userID uint) ([]models.User, error) {
	var blocks []models.Block
	if err := s.db.Where("blocker_id = ?", userID).Find(&blocks).Error; err != nil {
		return nil, err
	}

	if len(blocks) == 0 {
		return []models.User{}, nil
	}

	ids := make([]uint, len(blocks))
	for i, b := range blocks {
		ids[i] = b.BlockedID
	}

	var users []models.User
	if err := s.db.Preload("Profile").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
