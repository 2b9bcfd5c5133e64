package handler

import (
	"net/http"
	"time"

	"linkup/backend/internal/service"
	"linkup/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const sessionCookieMaxAge = 7 * 24 * 60 * 60 // matches the token lifetime

// SignupInput defines the structure for user registration.
type SignupInput struct {
	Email       string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password    string `json:"password" binding:"required,min=8" example:"password123"`
	Username    string `json:"username" binding:"required" example:"alice"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth" example:"1999-01-31"`
	ImageURL    string `json:"imageUrl"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// Signup godoc
// @Summary      Register a new user
// @Description  Creates a user with its profile and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body SignupInput true "Registration Info"
// @Success      201  {object}  map[string]interface{} "{"user": {...}, "token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/signup [post]
func Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	signup := service.SignupInput{
		Email:       input.Email,
		Password:    input.Password,
		Username:    input.Username,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Gender:      input.Gender,
		AvatarURL:   input.ImageURL,
	}
	if input.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateOfBirth, expected YYYY-MM-DD"})
			return
		}
		signup.DateOfBirth = &dob
	}

	user, err := users.CreateWithProfile(signup)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"user":  buildPublicUserResponse(*user),
		"token": token,
	})
}

// Login godoc
// @Summary      Log in a user
// @Description  Authenticates with email and password, returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]interface{} "{"user": {...}, "token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := users.Authenticate(input.Email, input.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"user":  buildPublicUserResponse(*user),
		"token": token,
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Clears the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func Logout(c *gin.Context) {
	c.SetCookie("jwt", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// CheckAuth godoc
// @Summary      Check session validity
// @Description  Returns the authenticated user, proving the session is valid.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PublicUserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/check [get]
func CheckAuth(c *gin.Context) {
	user, err := users.GetByID(currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildPublicUserResponse(*user))
}

// UploadImage godoc
// @Summary      Upload a profile image
// @Description  Stores a base64 data-URL image and returns its public URL.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body map[string]string true "{"image": "data:image/png;base64,..."}"
// @Success      200  {object}  map[string]string "{"imageUrl": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      503  {object}  ErrorResponse
// @Router       /auth/upload [post]
func UploadImage(c *gin.Context) {
	var input struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage not configured"})
		return
	}

	url, err := images.Upload(c.Request.Context(), "profile", input.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to store image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("jwt", token, sessionCookieMaxAge, "/", "", false, true)
}
