package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchUserByUsername godoc
// @Summary      Find a user by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Exact username"
// @Success      200  {object}  PublicUserResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /user/search/{username} [get]
func SearchUserByUsername(c *gin.Context) {
	username := c.Param("username")

	user, err := users.GetByUsername(username)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildPublicUserResponse(*user))
}
