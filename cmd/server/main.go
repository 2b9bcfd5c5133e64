package main

import (
	"context"
	"net/http"
	"time"

	"linkup/backend/internal/auth"
	"linkup/backend/internal/config"
	"linkup/backend/internal/database"
	"linkup/backend/internal/handler"
	"linkup/backend/internal/hub"
	"linkup/backend/internal/storage"
	"linkup/backend/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "linkup/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
	logger.Init(config.AppConfig.Environment)
}

// @title           LinkUp API
// @version         1.0
// @description     This is the API for the LinkUp social service.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	database.Connect(config.AppConfig.DatabaseURL)
	database.InitRedis()

	// Presence changes are mirrored into redis so other instances and ops
	// tooling can see who is connected here.
	hub.GlobalHub.OnPresenceChange = database.MarkOnline

	var store *storage.ImageStore
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.NewImageStore(ctx)
	cancel()
	if err != nil {
		logger.Warn().Err(err).Msg("Image storage unavailable, uploads disabled")
		store = nil
	}

	handler.Setup(database.DB, store)

	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Real-time channel; authenticates itself via cookie or token query param.
	router.GET("/ws", handler.WebSocket)

	api := router.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", handler.Signup)
			authRoutes.POST("/login", handler.Login)
			authRoutes.POST("/logout", handler.Logout)

			authRoutes.GET("/check", auth.AuthMiddleware(), handler.CheckAuth)
			authRoutes.POST("/upload", auth.AuthMiddleware(), handler.UploadImage)
		}

		// Everything below requires a session.
		protected := api.Group("")
		protected.Use(auth.AuthMiddleware())
		{
			friendRoutes := protected.Group("/friendRequest")
			{
				friendRoutes.POST("/send", handler.SendFriendRequest)
				friendRoutes.PATCH("/accept", handler.AcceptFriendRequest)
				friendRoutes.DELETE("/reject", handler.RejectFriendRequest)
				friendRoutes.DELETE("/cancel", handler.CancelFriendRequest)
				friendRoutes.DELETE("/delete", handler.DeleteFriend)
				friendRoutes.GET("/check", handler.CheckRelationship)
			}

			blockRoutes := protected.Group("/blockOtherUser")
			{
				blockRoutes.POST("/block", handler.BlockUser)
				blockRoutes.DELETE("/unblock", handler.UnblockUser)
				blockRoutes.GET("/list", handler.ListBlockedUsers)
			}

			messageRoutes := protected.Group("/messages")
			{
				messageRoutes.GET("/users", handler.GetUsersForSidebar)
				messageRoutes.GET("/chat/:userId", handler.GetConversation)
				messageRoutes.POST("/chat/send/:id", handler.SendMessage)
			}

			notificationRoutes := protected.Group("/notification")
			{
				notificationRoutes.GET("/seen", handler.GetSeenNotifications)
				notificationRoutes.GET("/unseen", handler.GetUnseenNotifications)
				notificationRoutes.PUT("/seen/:id", handler.MarkNotificationSeen)
				notificationRoutes.PUT("/markAllSeen", handler.MarkAllNotificationsSeen)
			}

			profileRoutes := protected.Group("/userProfile")
			{
				profileRoutes.PUT("/updateProfile", handler.UpdateProfile)
				profileRoutes.GET("/countFriend/:id", handler.CountFriends)
				profileRoutes.GET("/:id", handler.GetProfile)
			}

			protected.GET("/user/search/:username", handler.SearchUserByUsername)
		}
	}

	addr := ":" + config.AppConfig.Port
	logger.Info().Str("addr", addr).Msg("Server is running")
	logger.Info().Msg("Swagger UI is available at http://localhost:" + config.AppConfig.Port + "/swagger/index.html")
	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("Server exited")
	}
}
