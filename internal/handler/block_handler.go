package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BlockInput carries the target of a block.
type BlockInput struct {
	TargetUserID uint `json:"targetUserId" binding:"required" example:"2"`
}

// BlockUser godoc
// @Summary      Block another user
// @Description  Adds the target to the caller's blocked set. Directional; does not unfriend.
// @Tags         block
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body BlockInput true "Target"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse "Self-targeted"
// @Failure      409  {object}  ErrorResponse "Already blocked"
// @Router       /blockOtherUser/block [post]
func BlockUser(c *gin.Context) {
	userID := currentUserID(c)

	var input BlockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := blocks.Block(userID, input.TargetUserID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

// UnblockUser godoc
// @Summary      Unblock a user
// @Description  Removes the target from the caller's blocked set. Idempotent.
// @Tags         block
// @Produce      json
// @Security     BearerAuth
// @Param        targetId query int true "User to unblock"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Router       /blockOtherUser/unblock [delete]
func UnblockUser(c *gin.Context) {
	userID := currentUserID(c)

	targetID, ok := parseIDQuery(c, "targetId")
	if !ok {
		return
	}

	if err := blocks.Unblock(userID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unblocked"})
}

// ListBlockedUsers godoc
// @Summary      List blocked users
// @Tags         block
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]PublicUserResponse
// @Router       /blockOtherUser/list [get]
func ListBlockedUsers(c *gin.Context) {
	userID := currentUserID(c)

	blocked, err := blocks.ListBlocked(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]PublicUserResponse, len(blocked))
	for i, u := range blocked {
		responses[i] = buildPublicUserResponse(u)
	}

	c.JSON(http.StatusOK, gin.H{"blocked": responses})
}
