package service

import (
	"errors"

	"linkup/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationService owns chat logs and messages. A conversation is keyed
// by the canonical user pair and created lazily on first access.
type ConversationService struct {
	db *gorm.DB
}

func NewConversationService(db *gorm.DB) *ConversationService {
	return &ConversationService{db: db}
}

// FindOrCreate returns the single chat log for the unordered pair, creating
// it if absent. Safe under concurrent calls: the unique pair index makes the
// insert race resolve to one row, and the loser re-reads it.
func (s *ConversationService) FindOrCreate(userID1, userID2 uint) (*models.ChatLog, error) {
	a, b := models.CanonicalPair(userID1, userID2)

	var chatLog models.ChatLog
	err := s.db.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&chatLog).Error
	if err == nil {
		return &chatLog, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	chatLog = models.ChatLog{UserAID: a, UserBID: b}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&chatLog).Error; err != nil {
		return nil, err
	}

	// A concurrent creator may have won the insert; read back the
	// authoritative row either way.
	if err := s.db.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&chatLog).Error; err != nil {
		return nil, err
	}
	return &chatLog, nil
}

// Find returns the chat log for the unordered pair without creating one.
func (s *ConversationService) Find(userID1, userID2 uint) (*models.ChatLog, error) {
	a, b := models.CanonicalPair(userID1, userID2)

	var chatLog models.ChatLog
	err := s.db.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&chatLog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chatLog, nil
}

// GetWithMessages loads the conversation for the pair with its messages in
// creation order, creating the conversation if it does not exist yet.
func (s *ConversationService) GetWithMessages(userID1, userID2 uint) (*models.ChatLog, error) {
	chatLog, err := s.FindOrCreate(userID1, userID2)
	if err != nil {
		return nil, err
	}

	messages, err := s.ListMessages(chatLog.ID)
	if err != nil {
		return nil, err
	}
	chatLog.Messages = messages
	return chatLog, nil
}

// AppendMessage stores a new message in the given chat log. Content and
// image may each be empty; callers are expected to supply at least one.
func (s *ConversationService) AppendMessage(chatLogID, senderID uint, content, imageURL string) (*models.Message, error) {
	var chatLog models.ChatLog
	if err := s.db.First(&chatLog, chatLogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	message := models.Message{
		ChatLogID: chatLogID,
		SenderID:  senderID,
		Content:   content,
		ImageURL:  imageURL,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListMessages returns the chat log's messages in creation order.
func (s *ConversationService) ListMessages(chatLogID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Where("chat_log_id = ?", chatLogID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}
