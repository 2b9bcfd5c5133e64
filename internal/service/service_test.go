package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"linkup/backend/internal/database"
	"linkup/backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database with the full schema. Each test
// gets its own named memory database so parallel tests cannot see each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// createTestUser inserts a user with a minimal profile directly, bypassing
// the signup path so tests do not pay for bcrypt.
func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Profile: models.Profile{
			Email:        username + "@example.com",
			PasswordHash: "not-a-real-hash",
			Username:     username,
			FirstName:    username,
			LastName:     "Test",
		},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func newServices(db *gorm.DB) (*UserService, *NotificationService, *FriendshipService, *BlockService, *ConversationService) {
	users := NewUserService(db)
	notifications := NewNotificationService(db)
	friendships := NewFriendshipService(db, users, notifications)
	blocks := NewBlockService(db, users)
	conversations := NewConversationService(db)
	return users, notifications, friendships, blocks, conversations
}
