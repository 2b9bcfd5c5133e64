package handler

import (
	"net/http"

	"linkup/backend/internal/hub"

	"github.com/gin-gonic/gin"
)

// SendRequestInput carries the target of a new friend request.
type SendRequestInput struct {
	ReceiverID uint `json:"receiverId" binding:"required" example:"2"`
}

// AcceptRequestInput identifies the request being accepted by its sender.
type AcceptRequestInput struct {
	SenderID uint `json:"senderId" binding:"required" example:"2"`
}

// SendFriendRequest godoc
// @Summary      Send a friend request
// @Description  Creates a pending request and notifies the receiver.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendRequestInput true "Receiver"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Receiver not found"
// @Failure      409  {object}  ErrorResponse "Already friends or already pending"
// @Router       /friendRequest/send [post]
func SendFriendRequest(c *gin.Context) {
	senderID := currentUserID(c)

	var input SendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := friendships.SendRequest(senderID, input.ReceiverID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pushUnseenNotifications(input.ReceiverID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Friend request sent",
		"data": gin.H{
			"senderId":   request.SenderID,
			"receiverId": request.ReceiverID,
			"status":     request.Status,
			"timeStamp":  request.CreatedAt,
		},
	})
}

// AcceptFriendRequest godoc
// @Summary      Accept a friend request
// @Description  Resolves the pending request and makes the two users friends.
// @Tags         friendship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body AcceptRequestInput true "Original sender"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "No pending request from that sender"
// @Router       /friendRequest/accept [patch]
func AcceptFriendRequest(c *gin.Context) {
	receiverID := currentUserID(c)

	var input AcceptRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := friendships.AcceptRequest(receiverID, input.SenderID); err != nil {
		respondServiceError(c, err)
		return
	}

	pushUnseenNotifications(input.SenderID)

	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
}

// RejectFriendRequest godoc
// @Summary      Reject a friend request
// @Description  Deletes the pending request; no friendship change, no notification.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        senderId query int true "Original sender ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friendRequest/reject [delete]
func RejectFriendRequest(c *gin.Context) {
	receiverID := currentUserID(c)

	senderID, ok := parseIDQuery(c, "senderId")
	if !ok {
		return
	}

	if err := friendships.RejectRequest(receiverID, senderID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request rejected"})
}

// CancelFriendRequest godoc
// @Summary      Withdraw a sent friend request
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        receiverId query int true "User the request was sent to"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /friendRequest/cancel [delete]
func CancelFriendRequest(c *gin.Context) {
	senderID := currentUserID(c)

	receiverID, ok := parseIDQuery(c, "receiverId")
	if !ok {
		return
	}

	if err := friendships.CancelRequest(senderID, receiverID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request cancelled"})
}

// DeleteFriend godoc
// @Summary      Remove a friend
// @Description  Severs the symmetric friendship between the caller and the target.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        targetId query int true "Friend to remove"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse "Not friends, or self-targeted"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /friendRequest/delete [delete]
func DeleteFriend(c *gin.Context) {
	userID := currentUserID(c)

	targetID, ok := parseIDQuery(c, "targetId")
	if !ok {
		return
	}

	if err := friendships.DeleteFriend(userID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

// CheckRelationship godoc
// @Summary      Query the relationship with another user
// @Description  Reports friendship and pending-request state in both directions.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        userId query int true "Other user ID"
// @Success      200  {object}  service.Relationship
// @Failure      400  {object}  ErrorResponse
// @Router       /friendRequest/check [get]
func CheckRelationship(c *gin.Context) {
	userID := currentUserID(c)

	otherID, ok := parseIDQuery(c, "userId")
	if !ok {
		return
	}

	relationship, err := friendships.CheckRelationship(userID, otherID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, relationship)
}

// pushUnseenNotifications pushes a user's fresh unseen notifications over
// their live connection, if any. Best effort.
func pushUnseenNotifications(userID uint) {
	if !hub.GlobalHub.IsOnline(userID) {
		return
	}
	unseen, err := notifications.ListUnseen(userID)
	if err != nil || len(unseen) == 0 {
		return
	}
	hub.GlobalHub.PushToUser(userID, hub.Event{
		Type:    hub.EventNewNotification,
		Payload: buildNotificationResponse(unseen[0]),
	})
}
