package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSeenNotifications godoc
// @Summary      List seen notifications
// @Tags         notification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]NotificationResponse
// @Router       /notification/seen [get]
func GetSeenNotifications(c *gin.Context) {
	listNotifications(c, true)
}

// GetUnseenNotifications godoc
// @Summary      List unseen notifications
// @Tags         notification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]NotificationResponse
// @Router       /notification/unseen [get]
func GetUnseenNotifications(c *gin.Context) {
	listNotifications(c, false)
}

func listNotifications(c *gin.Context, seen bool) {
	userID := currentUserID(c)

	var err error
	var list []NotificationResponse
	if seen {
		items, e := notifications.ListSeen(userID)
		err = e
		for _, n := range items {
			list = append(list, buildNotificationResponse(n))
		}
	} else {
		items, e := notifications.ListUnseen(userID)
		err = e
		for _, n := range items {
			list = append(list, buildNotificationResponse(n))
		}
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if list == nil {
		list = []NotificationResponse{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// MarkNotificationSeen godoc
// @Summary      Mark one notification as seen
// @Tags         notification
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Notification ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /notification/seen/{id} [put]
func MarkNotificationSeen(c *gin.Context) {
	notificationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := notifications.MarkSeen(notificationID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as seen"})
}

// MarkAllNotificationsSeen godoc
// @Summary      Mark all notifications as seen
// @Tags         notification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /notification/markAllSeen [put]
func MarkAllNotificationsSeen(c *gin.Context) {
	userID := currentUserID(c)

	if err := notifications.MarkAllSeen(userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as seen"})
}
