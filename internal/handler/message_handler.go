package handler

import (
	"net/http"
	"time"

	"linkup/backend/internal/database"
	"linkup/backend/internal/hub"
	"linkup/backend/internal/models"
	"linkup/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SendMessageInput carries an outgoing message. Content and image may each
// be empty; clients are expected to provide at least one.
type SendMessageInput struct {
	Content string `json:"content"`
	Image   string `json:"image"`
}

const (
	messageRateLimit  = 30
	messageRateWindow = time.Minute
)

// GetUsersForSidebar godoc
// @Summary      List chat contacts
// @Description  Returns the caller's friends for the conversation sidebar.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]PublicUserResponse
// @Router       /messages/users [get]
func GetUsersForSidebar(c *gin.Context) {
	userID := currentUserID(c)

	friends, err := friendships.ListFriends(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]PublicUserResponse, len(friends))
	for i, u := range friends {
		responses[i] = buildPublicUserResponse(u)
	}

	c.JSON(http.StatusOK, gin.H{"users": responses})
}

// GetConversation godoc
// @Summary      Fetch the conversation with a user
// @Description  Returns the chat log with the given user, creating it on first access.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "Other user ID"
// @Success      200  {object}  ChatLogResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /messages/chat/{userId} [get]
func GetConversation(c *gin.Context) {
	userID := currentUserID(c)

	otherID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	chatLog, err := conversations.GetWithMessages(userID, otherID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildChatLogResponse(chatLog))
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Persists a message in the conversation with the recipient and pushes it to their live connection if they are online.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Recipient user ID"
// @Param        input body SendMessageInput true "Message"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No conversation with that user yet"
// @Failure      429  {object}  ErrorResponse
// @Router       /messages/chat/send/{id} [post]
func SendMessage(c *gin.Context) {
	senderID := currentUserID(c)

	receiverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allowed, err := database.CheckRateLimit(senderID, "send_message", messageRateLimit, messageRateWindow)
	if err != nil {
		logger.Warn().Err(err).Msg("Rate limit check failed, allowing request")
	} else if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many messages, slow down"})
		return
	}

	// The conversation must already exist (it is created when the chat is
	// first opened); sending into a never-opened chat is a 404.
	chatLog, err := conversations.Find(senderID, receiverID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	imageURL := ""
	if input.Image != "" {
		if images == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage not configured"})
			return
		}
		imageURL, err = images.Upload(c.Request.Context(), "chat", input.Image)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to store image"})
			return
		}
	}

	message, err := conversations.AppendMessage(chatLog.ID, senderID, input.Content, imageURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Live delivery is a best-effort side effect: the message is durable
	// regardless, offline recipients see it on their next fetch.
	response := buildMessageResponse(*message)
	hub.GlobalHub.PushToUser(receiverID, hub.Event{
		Type:    hub.EventNewMessage,
		Payload: response,
	})

	c.JSON(http.StatusCreated, response)
}

func buildChatLogResponse(chatLog *models.ChatLog) ChatLogResponse {
	messages := make([]MessageResponse, len(chatLog.Messages))
	for i, m := range chatLog.Messages {
		messages[i] = buildMessageResponse(m)
	}
	return ChatLogResponse{
		ID:       chatLog.ID,
		UserIDs:  []uint{chatLog.UserAID, chatLog.UserBID},
		Messages: messages,
	}
}
