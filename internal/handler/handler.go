package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"linkup/backend/internal/models"
	"linkup/backend/internal/service"
	"linkup/backend/internal/storage"
	"linkup/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Package-level services, wired once at startup (and per-test).
var (
	users         *service.UserService
	friendships   *service.FriendshipService
	blocks        *service.BlockService
	conversations *service.ConversationService
	notifications *service.NotificationService
	images        *storage.ImageStore
)

// Setup wires the handler package's services against a database connection.
// The image store may be nil; image uploads then fail with a clear error.
func Setup(db *gorm.DB, store *storage.ImageStore) {
	users = service.NewUserService(db)
	notifications = service.NewNotificationService(db)
	friendships = service.NewFriendshipService(db, users, notifications)
	blocks = service.NewBlockService(db, users)
	conversations = service.NewConversationService(db)
	images = store
}

// region --- DTOs ---

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// PublicUserResponse is a user as shown to other users.
type PublicUserResponse struct {
	ID        uint   `json:"id" example:"1"`
	Username  string `json:"username" example:"alice"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl"`
}

// ProfileResponse is the full profile, returned to its owner and on the
// profile page.
type ProfileResponse struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"userId"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	PhoneNumber string     `json:"phoneNumber"`
	Gender      string     `json:"gender"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	AvatarURL   string     `json:"avatarUrl"`
	CreatedAt   time.Time  `json:"dateRegistered"`
}

// MessageResponse is a stored message; also the newMessage push payload, so
// live delivery and later fetches observe identical data.
type MessageResponse struct {
	ID        uint      `json:"id"`
	ChatLogID uint      `json:"chatLogId"`
	SenderID  uint      `json:"senderId"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"timeStamp"`
}

// ChatLogResponse is a conversation with its messages in creation order.
type ChatLogResponse struct {
	ID       uint              `json:"id"`
	UserIDs  []uint            `json:"userIds"`
	Messages []MessageResponse `json:"messages"`
}

// NotificationResponse is a notification-center entry.
type NotificationResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	Content   string    `json:"content"`
	Seen      bool      `json:"seen"`
	CreatedAt time.Time `json:"timeStamp"`
}

// endregion

// region --- Helpers ---

func currentUserID(c *gin.Context) uint {
	id, _ := c.Get("userID")
	return id.(uint)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func parseIDQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing " + name})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps a service error to its HTTP status. Unrecognized
// errors become opaque 500s; the cause is logged, never surfaced.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelfReference),
		errors.Is(err, service.ErrNotFriends):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyFriends),
		errors.Is(err, service.ErrDuplicateRequest),
		errors.Is(err, service.ErrAlreadyBlocked),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrConversationNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func buildPublicUserResponse(user models.User) PublicUserResponse {
	return PublicUserResponse{
		ID:        user.ID,
		Username:  user.Profile.Username,
		FirstName: user.Profile.FirstName,
		LastName:  user.Profile.LastName,
		AvatarURL: user.Profile.AvatarURL,
	}
}

func buildProfileResponse(profile *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          profile.ID,
		UserID:      profile.UserID,
		Email:       profile.Email,
		Username:    profile.Username,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		PhoneNumber: profile.PhoneNumber,
		Gender:      profile.Gender,
		DateOfBirth: profile.DateOfBirth,
		AvatarURL:   profile.AvatarURL,
		CreatedAt:   profile.CreatedAt,
	}
}

func buildMessageResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ChatLogID: m.ChatLogID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		Image:     m.ImageURL,
		CreatedAt: m.CreatedAt,
	}
}

func buildNotificationResponse(n models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Content:   n.Content,
		Seen:      n.Seen,
		CreatedAt: n.CreatedAt,
	}
}

// endregion
