package handler

import (
	"net/http"
	"time"

	"linkup/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileInput lists the mutable profile fields. Absent fields are
// left untouched.
type UpdateProfileInput struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Gender      *string `json:"gender"`
	DateOfBirth *string `json:"dateOfBirth" example:"1999-01-31"`
	ImageURL    *string `json:"imageUrl"`
}

// GetProfile godoc
// @Summary      Get a user's profile
// @Tags         userProfile
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200  {object}  ProfileResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /userProfile/{id} [get]
func GetProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := users.GetProfileByUserID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildProfileResponse(profile))
}

// UpdateProfile godoc
// @Summary      Update the caller's profile
// @Description  Applies a partial update. A replaced avatar releases the previously stored image.
// @Tags         userProfile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateProfileInput true "Changes"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /userProfile/updateProfile [put]
func UpdateProfile(c *gin.Context) {
	userID := currentUserID(c)

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := service.ProfileUpdate{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Gender:      input.Gender,
		AvatarURL:   input.ImageURL,
	}
	if input.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *input.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateOfBirth, expected YYYY-MM-DD"})
			return
		}
		update.DateOfBirth = &dob
	}

	profile, replacedAvatar, err := users.UpdateProfile(userID, update)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if replacedAvatar != "" && images != nil {
		images.Delete(c.Request.Context(), replacedAvatar)
	}

	c.JSON(http.StatusOK, buildProfileResponse(profile))
}

// CountFriends godoc
// @Summary      Count a user's friends
// @Tags         userProfile
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200  {object}  map[string]int64 "{"count": 3}"
// @Router       /userProfile/countFriend/{id} [get]
func CountFriends(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	count, err := friendships.CountFriends(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
