package service

import (
	"linkup/backend/internal/models"

	"gorm.io/gorm"
)

// NotificationService records user-facing events for the notification
// center. Only the seen flag is ever mutated after creation.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Create records an unseen notification for a user.
func (s *NotificationService) Create(userID uint, content string) (*models.Notification, error) {
	notification := models.Notification{
		UserID:  userID,
		Content: content,
		Seen:    false,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkSeen flips a single notification to seen.
func (s *NotificationService) MarkSeen(notificationID uint) error {
	res := s.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("seen", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllSeen flips every notification of a user to seen.
func (s *NotificationService) MarkAllSeen(userID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND seen = ?", userID, false).
		Update("seen", true).Error
}

// ListSeen returns a user's seen notifications, newest first.
func (s *NotificationService) ListSeen(userID uint) ([]models.Notification, error) {
	return s.list(userID, true)
}

// ListUnseen returns a user's unseen notifications, newest first.
func (s *NotificationService) ListUnseen(userID uint) ([]models.Notification, error) {
	return s.list(userID, false)
}

func (s *NotificationService) list(userID uint, seen bool) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ? AND seen = ?", userID, seen).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}
