package handler

import (
	"net/http"

	"linkup/backend/internal/auth"
	"linkup/backend/internal/hub"
	"linkup/backend/pkg/jwt"
	"linkup/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// WebSocket godoc
// @Summary      Open the real-time channel
// @Description  Upgrades to a websocket carrying the caller's session. The server pushes getOnlineUsers on every presence change and newMessage / newNotification events addressed to this user.
// @Tags         realtime
// @Param        token query string false "Session token (alternative to cookie)"
// @Success      101
// @Failure      401  {object}  ErrorResponse
// @Router       /ws [get]
func WebSocket(c *gin.Context) {
	tokenString := auth.TokenFromRequest(c)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	userID, err := jwt.ParseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := hub.ServeWS(hub.GlobalHub, userID, c.Writer, c.Request); err != nil {
		logger.Warn().Err(err).Uint("userID", userID).Msg("Websocket upgrade failed")
	}
}
